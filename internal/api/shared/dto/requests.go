package dto

import (
	"errors"
	"net/mail"
	"time"

	"github.com/IN4XI4/xlo-server/internal/domain"
)

// RegisterRequest represents the request body for POST /auth/register
type RegisterRequest struct {
	Email    string     `json:"email"`
	Username string     `json:"username"`
	Password string     `json:"password"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// Validate validates the register request
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email is not a valid address")
	}
	if r.Username == "" {
		return errors.New("username is required")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// LoginRequest represents the request body for POST /auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// UpdateAvatarRequest represents the request body for PUT /avatar. Omitted
// fields keep the current selection.
type UpdateAvatarRequest struct {
	AvatarType *string `json:"avatar_type,omitempty"`

	HairItemID   *int64 `json:"hair_item_id,omitempty"`
	HairColorID  *int64 `json:"hair_color_id,omitempty"`
	FaceItemID   *int64 `json:"face_item_id,omitempty"`
	EyesColorID  *int64 `json:"eyes_color_id,omitempty"`
	ShirtItemID  *int64 `json:"shirt_item_id,omitempty"`
	ShirtColorID *int64 `json:"shirt_color_id,omitempty"`
	PantsItemID  *int64 `json:"pants_item_id,omitempty"`
	PantsColorID *int64 `json:"pants_color_id,omitempty"`
	ShoesItemID  *int64 `json:"shoes_item_id,omitempty"`
	ShoesColorID *int64 `json:"shoes_color_id,omitempty"`
	SkinColorID  *int64 `json:"skin_color_id,omitempty"`

	AccessoryItemID  *int64 `json:"accessory_item_id,omitempty"`
	AccessoryColorID *int64 `json:"accessory_color_id,omitempty"`
	ClearAccessory   bool   `json:"clear_accessory,omitempty"`
}

// Validate validates the avatar update request
func (r *UpdateAvatarRequest) Validate() error {
	if r.AvatarType != nil && !domain.IsValidAvatarType(domain.AvatarType(*r.AvatarType)) {
		return errors.New("avatar_type must be BOY or GIRL")
	}
	if r.ClearAccessory && (r.AccessoryItemID != nil || r.AccessoryColorID != nil) {
		return errors.New("clear_accessory cannot be combined with accessory slot updates")
	}
	ids := []*int64{
		r.HairItemID, r.HairColorID, r.FaceItemID, r.EyesColorID,
		r.ShirtItemID, r.ShirtColorID, r.PantsItemID, r.PantsColorID,
		r.ShoesItemID, r.ShoesColorID, r.SkinColorID,
		r.AccessoryItemID, r.AccessoryColorID,
	}
	for _, id := range ids {
		if id != nil && *id <= 0 {
			return errors.New("slot references must be positive ids")
		}
	}
	return nil
}

// CreditWalletRequest represents the request body for POST /wallet/credit.
// Clients must send a fresh idempotency key per logical credit; retries of the
// same credit reuse the key.
type CreditWalletRequest struct {
	UserID         int64  `json:"user_id"`
	Amount         int64  `json:"amount"`
	ReferenceID    string `json:"reference_id"`
	IdempotencyKey string `json:"idempotency_key"`
}

// Validate validates the credit request
func (r *CreditWalletRequest) Validate() error {
	if r.UserID <= 0 {
		return errors.New("user_id is required")
	}
	if r.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if r.IdempotencyKey == "" {
		return errors.New("idempotency_key is required")
	}
	return nil
}
