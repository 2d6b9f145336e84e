package domain

import "errors"

var (
	// ErrCatalogItemNotFound is returned when a purchase references a missing or inactive catalog row
	ErrCatalogItemNotFound = errors.New("catalog item not found")

	// ErrAlreadyOwned is returned when a user attempts to buy a catalog entry they already unlocked
	ErrAlreadyOwned = errors.New("catalog item already owned")

	// ErrInsufficientCoins is returned when the locked balance cannot cover the item price
	ErrInsufficientCoins = errors.New("insufficient coins")

	// ErrUnlockNotOwned is returned when an avatar slot references an unlock row that belongs to another user
	ErrUnlockNotOwned = errors.New("unlock not owned by user")

	// ErrAvatarNotFound is returned when a user has no avatar row
	ErrAvatarNotFound = errors.New("avatar not found")

	// ErrUserNotFound is returned when a user id or email does not resolve
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when registering with an email that already has an account
	ErrEmailTaken = errors.New("email already registered")
)
