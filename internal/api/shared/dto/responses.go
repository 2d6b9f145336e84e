package dto

import (
	"time"

	"github.com/IN4XI4/xlo-server/internal/domain"
)

// UserResponse represents an account in API responses
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	CoinBalance int64     `json:"coin_balance"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthResponse represents the response for register and login
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// CatalogItemResponse represents an item catalog row annotated with ownership
type CatalogItemResponse struct {
	ID             int64             `json:"id"`
	Code           string            `json:"code"`
	Name           string            `json:"name"`
	ItemType       domain.ItemType   `json:"item_type"`
	AvatarType     domain.AvatarType `json:"avatar_type"`
	Price          int64             `json:"price"`
	SVG            string            `json:"svg"`
	IsDefault      bool              `json:"is_default"`
	Owned          bool              `json:"owned"`
	UnlockedItemID *int64            `json:"unlocked_item_id,omitempty"`
}

// CatalogItemListResponse represents a paginated item catalog listing
type CatalogItemListResponse struct {
	Items  []CatalogItemResponse `json:"items"`
	Offset *int                  `json:"offset,omitempty"`
	Total  int64                 `json:"total"`
}

// CatalogColorResponse represents a color catalog row annotated with ownership
type CatalogColorResponse struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	Hex            string `json:"hex"`
	Price          int64  `json:"price"`
	IsDefault      bool   `json:"is_default"`
	Owned          bool   `json:"owned"`
	UnlockedItemID *int64 `json:"unlocked_item_id,omitempty"`
}

// CatalogColorListResponse represents a paginated color catalog listing
type CatalogColorListResponse struct {
	Colors []CatalogColorResponse `json:"colors"`
	Offset *int                   `json:"offset,omitempty"`
	Total  int64                  `json:"total"`
}

// CatalogSkinColorResponse represents a skin color catalog row annotated with ownership
type CatalogSkinColorResponse struct {
	ID             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	MainColor      string `json:"main_color"`
	SecondColor    string `json:"second_color"`
	Price          int64  `json:"price"`
	IsDefault      bool   `json:"is_default"`
	Owned          bool   `json:"owned"`
	UnlockedItemID *int64 `json:"unlocked_item_id,omitempty"`
}

// CatalogSkinColorListResponse represents a paginated skin color catalog listing
type CatalogSkinColorListResponse struct {
	SkinColors []CatalogSkinColorResponse `json:"skin_colors"`
	Offset     *int                       `json:"offset,omitempty"`
	Total      int64                      `json:"total"`
}

// PurchaseResponse represents the response for a successful purchase
type PurchaseResponse struct {
	UnlockID    int64  `json:"unlock_id"`
	CoinBalance int64  `json:"coin_balance"`
	Reference   string `json:"reference"`
}

// UnlockedItemResponse represents an owned item with its catalog row
type UnlockedItemResponse struct {
	ID            int64             `json:"id"`
	CatalogItemID int64             `json:"catalog_item_id"`
	Code          string            `json:"code"`
	Name          string            `json:"name"`
	ItemType      domain.ItemType   `json:"item_type"`
	AvatarType    domain.AvatarType `json:"avatar_type"`
	SVG           string            `json:"svg"`
	UnlockedAt    time.Time         `json:"unlocked_at"`
}

// UnlockedItemListResponse represents the user's unlocked items
type UnlockedItemListResponse struct {
	Items []UnlockedItemResponse `json:"items"`
}

// GroupedUnlocksResponse represents the user's unlocked items grouped by slot
type GroupedUnlocksResponse struct {
	Groups map[domain.ItemType][]UnlockedItemResponse `json:"groups"`
}

// DefaultUnlocksResponse represents the user's fallback unlock per slot for
// one body variant
type DefaultUnlocksResponse struct {
	AvatarType domain.AvatarType                        `json:"avatar_type"`
	Defaults   map[domain.ItemType]UnlockedItemResponse `json:"defaults"`
}

// UnlockedColorResponse represents an owned color with its catalog row
type UnlockedColorResponse struct {
	ID            int64     `json:"id"`
	CatalogItemID int64     `json:"catalog_item_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	Hex           string    `json:"hex"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// UnlockedSkinColorResponse represents an owned skin color with its catalog row
type UnlockedSkinColorResponse struct {
	ID            int64     `json:"id"`
	CatalogItemID int64     `json:"catalog_item_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	MainColor     string    `json:"main_color"`
	SecondColor   string    `json:"second_color"`
	UnlockedAt    time.Time `json:"unlocked_at"`
}

// UnlockedColorsResponse represents the user's unlocked colors and skin colors
type UnlockedColorsResponse struct {
	Colors     []UnlockedColorResponse     `json:"colors"`
	SkinColors []UnlockedSkinColorResponse `json:"skin_colors"`
}

// AvatarItemSlot represents an item slot in the composed avatar
type AvatarItemSlot struct {
	UnlockID      int64           `json:"unlock_id"`
	CatalogItemID int64           `json:"catalog_item_id"`
	Code          string          `json:"code"`
	ItemType      domain.ItemType `json:"item_type"`
	SVG           string          `json:"svg"`
}

// AvatarColorSlot represents a color slot in the composed avatar
type AvatarColorSlot struct {
	UnlockID      int64  `json:"unlock_id"`
	CatalogItemID int64  `json:"catalog_item_id"`
	Code          string `json:"code"`
	Hex           string `json:"hex"`
}

// AvatarEyesSlot represents the eyes color slot; eyes colors have no catalog
type AvatarEyesSlot struct {
	UnlockID  int64  `json:"unlock_id"`
	ColorCode string `json:"color_code"`
}

// AvatarSkinSlot represents the skin color slot
type AvatarSkinSlot struct {
	UnlockID      int64  `json:"unlock_id"`
	CatalogItemID int64  `json:"catalog_item_id"`
	Code          string `json:"code"`
	MainColor     string `json:"main_color"`
	SecondColor   string `json:"second_color"`
}

// AvatarResponse represents the user's composed avatar
type AvatarResponse struct {
	AvatarType domain.AvatarType `json:"avatar_type"`
	UpdatedAt  time.Time         `json:"updated_at"`

	Hair       AvatarItemSlot  `json:"hair"`
	HairColor  AvatarColorSlot `json:"hair_color"`
	Face       AvatarItemSlot  `json:"face"`
	EyesColor  AvatarEyesSlot  `json:"eyes_color"`
	Shirt      AvatarItemSlot  `json:"shirt"`
	ShirtColor AvatarColorSlot `json:"shirt_color"`
	Pants      AvatarItemSlot  `json:"pants"`
	PantsColor AvatarColorSlot `json:"pants_color"`
	Shoes      AvatarItemSlot  `json:"shoes"`
	ShoesColor AvatarColorSlot `json:"shoes_color"`
	SkinColor  AvatarSkinSlot  `json:"skin_color"`

	Accessory      *AvatarItemSlot  `json:"accessory,omitempty"`
	AccessoryColor *AvatarColorSlot `json:"accessory_color,omitempty"`
}

// BalanceResponse represents the wallet balance
type BalanceResponse struct {
	CoinBalance int64 `json:"coin_balance"`
}

// SpendResponse represents one entry of the spend history
type SpendResponse struct {
	Reference  string             `json:"reference"`
	Reason     domain.SpendReason `json:"reason"`
	Coins      int64              `json:"coins"`
	TargetType string             `json:"target_type"`
	TargetID   string             `json:"target_id"`
	CreatedAt  time.Time          `json:"created_at"`
}

// SpendListResponse represents the paginated spend history
type SpendListResponse struct {
	Spends []SpendResponse `json:"spends"`
	Offset *int            `json:"offset,omitempty"`
	Total  int64           `json:"total"`
}

// CreditWalletResponse represents the response for a wallet credit
type CreditWalletResponse struct {
	CoinBalance int64 `json:"coin_balance"`
	Replayed    bool  `json:"replayed"`
}
