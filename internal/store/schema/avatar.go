package schema

import (
	"time"

	"github.com/IN4XI4/xlo-server/internal/domain"
)

// Avatar represents the avatars table - each user's current composed selection of
// owned cosmetic slots. Every non-nil slot reference must point at an unlock row
// belonging to the same user; the store validates this on update.
type Avatar struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// UserID is the owning account, one avatar per user
	UserID int64 `gorm:"column:user_id;not null;uniqueIndex"`
	// AvatarType is the body variant currently selected
	AvatarType domain.AvatarType `gorm:"column:avatar_type;not null;type:text;default:BOY"`

	HairItemID   int64 `gorm:"column:hair_item_id;not null"`
	HairColorID  int64 `gorm:"column:hair_color_id;not null"`
	FaceItemID   int64 `gorm:"column:face_item_id;not null"`
	EyesColorID  int64 `gorm:"column:eyes_color_id;not null"`
	ShirtItemID  int64 `gorm:"column:shirt_item_id;not null"`
	ShirtColorID int64 `gorm:"column:shirt_color_id;not null"`
	PantsItemID  int64 `gorm:"column:pants_item_id;not null"`
	PantsColorID int64 `gorm:"column:pants_color_id;not null"`
	ShoesItemID  int64 `gorm:"column:shoes_item_id;not null"`
	ShoesColorID int64 `gorm:"column:shoes_color_id;not null"`
	SkinColorID  int64 `gorm:"column:skin_color_id;not null"`

	// Accessory slots are optional
	AccessoryItemID  *int64 `gorm:"column:accessory_item_id"`
	AccessoryColorID *int64 `gorm:"column:accessory_color_id"`

	// UpdatedAt is the timestamp when the composition was last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`

	// Associations
	User           User              `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	HairItem       UnlockedItem      `gorm:"foreignKey:HairItemID;constraint:OnDelete:RESTRICT"`
	HairColor      UnlockedColor     `gorm:"foreignKey:HairColorID;constraint:OnDelete:RESTRICT"`
	FaceItem       UnlockedItem      `gorm:"foreignKey:FaceItemID;constraint:OnDelete:RESTRICT"`
	EyesColor      UnlockedEyesColor `gorm:"foreignKey:EyesColorID;constraint:OnDelete:RESTRICT"`
	ShirtItem      UnlockedItem      `gorm:"foreignKey:ShirtItemID;constraint:OnDelete:RESTRICT"`
	ShirtColor     UnlockedColor     `gorm:"foreignKey:ShirtColorID;constraint:OnDelete:RESTRICT"`
	PantsItem      UnlockedItem      `gorm:"foreignKey:PantsItemID;constraint:OnDelete:RESTRICT"`
	PantsColor     UnlockedColor     `gorm:"foreignKey:PantsColorID;constraint:OnDelete:RESTRICT"`
	ShoesItem      UnlockedItem      `gorm:"foreignKey:ShoesItemID;constraint:OnDelete:RESTRICT"`
	ShoesColor     UnlockedColor     `gorm:"foreignKey:ShoesColorID;constraint:OnDelete:RESTRICT"`
	SkinColor      UnlockedSkinColor `gorm:"foreignKey:SkinColorID;constraint:OnDelete:RESTRICT"`
	AccessoryItem  *UnlockedItem     `gorm:"foreignKey:AccessoryItemID;constraint:OnDelete:SET NULL"`
	AccessoryColor *UnlockedColor    `gorm:"foreignKey:AccessoryColorID;constraint:OnDelete:SET NULL"`
}

// TableName specifies the table name for the Avatar model
func (Avatar) TableName() string {
	return "avatars"
}
