package store

import (
	"context"
	"time"

	"github.com/IN4XI4/xlo-server/internal/domain"
	"github.com/IN4XI4/xlo-server/internal/store/schema"
)

// CreateUserInput holds the fields for creating a new account
type CreateUserInput struct {
	Email        string
	Username     string
	PasswordHash string
	Birthday     *time.Time
}

// RegisterAccountInput holds the fields for the atomic account bootstrap
type RegisterAccountInput struct {
	User CreateUserInput
	// StarterCoins is credited through the ledger before seeding; zero skips
	// the credit
	StarterCoins int64
}

// PurchaseResult is returned by a successful purchase transaction
type PurchaseResult struct {
	// UnlockID is the id of the ownership row created by this purchase
	UnlockID int64
	// NewBalance is the user's coin balance after the debit
	NewBalance int64
	// SpendReference is the ULID of the ledger entry recording the debit
	SpendReference string
}

// ItemCatalogFilter narrows the annotated item catalog listing
type ItemCatalogFilter struct {
	ItemType   *domain.ItemType
	AvatarType *domain.AvatarType
	Limit      int
	Offset     int
}

// AnnotatedItem is an active item catalog row annotated with the requesting
// user's ownership state
type AnnotatedItem struct {
	schema.ItemCatalog `gorm:"embedded"`
	Owned              bool   `gorm:"column:owned"`
	UnlockedItemID     *int64 `gorm:"column:unlocked_item_id"`
}

// AnnotatedColor is an active color catalog row annotated with ownership state
type AnnotatedColor struct {
	schema.ColorCatalog `gorm:"embedded"`
	Owned               bool   `gorm:"column:owned"`
	UnlockedItemID      *int64 `gorm:"column:unlocked_item_id"`
}

// AnnotatedSkinColor is an active skin color catalog row annotated with ownership state
type AnnotatedSkinColor struct {
	schema.SkinColorCatalog `gorm:"embedded"`
	Owned                   bool   `gorm:"column:owned"`
	UnlockedItemID          *int64 `gorm:"column:unlocked_item_id"`
}

// UpdateAvatarInput holds the slot references for an avatar update. Nil fields
// keep the current selection; accessory slots may be cleared explicitly.
type UpdateAvatarInput struct {
	AvatarType *domain.AvatarType

	HairItemID   *int64
	HairColorID  *int64
	FaceItemID   *int64
	EyesColorID  *int64
	ShirtItemID  *int64
	ShirtColorID *int64
	PantsItemID  *int64
	PantsColorID *int64
	ShoesItemID  *int64
	ShoesColorID *int64
	SkinColorID  *int64

	AccessoryItemID  *int64
	AccessoryColorID *int64
	ClearAccessory   bool
}

// CreditCoinsInput holds the fields for an idempotent balance credit
type CreditCoinsInput struct {
	UserID         int64
	Amount         int64
	ReferenceID    string
	IdempotencyKey string
}

// CreditResult is returned by CreditCoins. Replayed is true when the
// idempotency key matched an existing entry and no new credit was applied.
type CreditResult struct {
	Entry      *schema.CoinLedgerEntry
	NewBalance int64
	Replayed   bool
}

// Store defines the interface for database operations
type Store interface {
	// CreateUser creates a new account row
	CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error)
	// GetUserByEmail retrieves a user by login email, nil when absent
	GetUserByEmail(ctx context.Context, email string) (*schema.User, error)
	// GetUserByID retrieves a user by id, nil when absent
	GetUserByID(ctx context.Context, id int64) (*schema.User, error)
	// RegisterAccount creates the user row, credits the starter balance and
	// seeds the starter avatar in one transaction; any failure rolls back the
	// whole bootstrap so the email stays available for a retry
	RegisterAccount(ctx context.Context, input RegisterAccountInput) (*schema.User, error)

	// PurchaseItem runs the locked purchase transaction against the item catalog
	PurchaseItem(ctx context.Context, userID, catalogID int64) (*PurchaseResult, error)
	// PurchaseColor runs the locked purchase transaction against the color catalog
	PurchaseColor(ctx context.Context, userID, catalogID int64) (*PurchaseResult, error)
	// PurchaseSkinColor runs the locked purchase transaction against the skin color catalog
	PurchaseSkinColor(ctx context.Context, userID, catalogID int64) (*PurchaseResult, error)

	// ListItemCatalog lists active item catalog rows annotated with ownership,
	// owned rows first; returns the page and the total count
	ListItemCatalog(ctx context.Context, userID int64, filter ItemCatalogFilter) ([]AnnotatedItem, int64, error)
	// ListColorCatalog lists active color catalog rows annotated with ownership
	ListColorCatalog(ctx context.Context, userID int64, limit, offset int) ([]AnnotatedColor, int64, error)
	// ListSkinColorCatalog lists active skin color catalog rows annotated with ownership
	ListSkinColorCatalog(ctx context.Context, userID int64, limit, offset int) ([]AnnotatedSkinColor, int64, error)

	// ListUnlockedItems lists the user's unlocked items with their catalog rows,
	// optionally filtered by item type, ordered by item type then code
	ListUnlockedItems(ctx context.Context, userID int64, itemType *domain.ItemType) ([]schema.UnlockedItem, error)
	// GetDefaultUnlocks returns the user's first unlock per non-accessory slot
	// for one avatar type, keyed by item type
	GetDefaultUnlocks(ctx context.Context, userID int64, avatarType domain.AvatarType) (map[domain.ItemType]schema.UnlockedItem, error)
	// ListUnlockedColors lists the user's unlocked colors with catalog rows
	ListUnlockedColors(ctx context.Context, userID int64) ([]schema.UnlockedColor, error)
	// ListUnlockedSkinColors lists the user's unlocked skin colors with catalog rows
	ListUnlockedSkinColors(ctx context.Context, userID int64) ([]schema.UnlockedSkinColor, error)

	// SeedStarterAvatar grants the free starter unlocks plus a random bonus
	// color and skin color, then creates the avatar row pointing at the defaults
	SeedStarterAvatar(ctx context.Context, userID int64) (*schema.Avatar, error)
	// GetAvatarByUserID retrieves a user's avatar with slots preloaded, nil when absent
	GetAvatarByUserID(ctx context.Context, userID int64) (*schema.Avatar, error)
	// UpdateAvatar applies a slot update after verifying every referenced unlock
	// belongs to the user
	UpdateAvatar(ctx context.Context, userID int64, input UpdateAvatarInput) (*schema.Avatar, error)

	// GetCoinBalance reads the user's current balance
	GetCoinBalance(ctx context.Context, userID int64) (int64, error)
	// ListCoinSpends lists the user's spend history, newest first
	ListCoinSpends(ctx context.Context, userID int64, limit, offset int) ([]schema.CoinSpend, int64, error)
	// CreditCoins applies an idempotent balance credit
	CreditCoins(ctx context.Context, input CreditCoinsInput) (*CreditResult, error)

	// UpsertItemCatalog upserts item catalog rows by code (seeder)
	UpsertItemCatalog(ctx context.Context, rows []schema.ItemCatalog) error
	// UpsertColorCatalog upserts color catalog rows by code (seeder)
	UpsertColorCatalog(ctx context.Context, rows []schema.ColorCatalog) error
	// UpsertSkinColorCatalog upserts skin color catalog rows by code (seeder)
	UpsertSkinColorCatalog(ctx context.Context, rows []schema.SkinColorCatalog) error
}
