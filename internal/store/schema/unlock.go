package schema

import (
	"time"
)

// UnlockedItem represents the unlocked_items table - proof that a user owns a
// specific item catalog row, either by purchase or by the free starter grant.
// The (user, catalog item) pair is unique; rows are never updated.
type UnlockedItem struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        int64     `gorm:"column:user_id;not null;uniqueIndex:idx_unlocked_items_user_catalog,priority:1"`
	CatalogItemID int64     `gorm:"column:catalog_item_id;not null;uniqueIndex:idx_unlocked_items_user_catalog,priority:2"`
	UnlockedAt    time.Time `gorm:"column:unlocked_at;not null;default:now();type:timestamptz"`

	// Associations
	User        User        `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CatalogItem ItemCatalog `gorm:"foreignKey:CatalogItemID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the UnlockedItem model
func (UnlockedItem) TableName() string {
	return "unlocked_items"
}

// UnlockedColor represents the unlocked_colors table
type UnlockedColor struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        int64     `gorm:"column:user_id;not null;uniqueIndex:idx_unlocked_colors_user_catalog,priority:1"`
	CatalogItemID int64     `gorm:"column:catalog_item_id;not null;uniqueIndex:idx_unlocked_colors_user_catalog,priority:2"`
	UnlockedAt    time.Time `gorm:"column:unlocked_at;not null;default:now();type:timestamptz"`

	// Associations
	User        User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CatalogItem ColorCatalog `gorm:"foreignKey:CatalogItemID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the UnlockedColor model
func (UnlockedColor) TableName() string {
	return "unlocked_colors"
}

// UnlockedSkinColor represents the unlocked_skin_colors table
type UnlockedSkinColor struct {
	ID            int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID        int64     `gorm:"column:user_id;not null;uniqueIndex:idx_unlocked_skin_colors_user_catalog,priority:1"`
	CatalogItemID int64     `gorm:"column:catalog_item_id;not null;uniqueIndex:idx_unlocked_skin_colors_user_catalog,priority:2"`
	UnlockedAt    time.Time `gorm:"column:unlocked_at;not null;default:now();type:timestamptz"`

	// Associations
	User        User             `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CatalogItem SkinColorCatalog `gorm:"foreignKey:CatalogItemID;constraint:OnDelete:RESTRICT"`
}

// TableName specifies the table name for the UnlockedSkinColor model
func (UnlockedSkinColor) TableName() string {
	return "unlocked_skin_colors"
}

// UnlockedEyesColor represents the unlocked_eyes_colors table. Eyes colors have
// no catalog; the color code itself is the reference.
type UnlockedEyesColor struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID     int64     `gorm:"column:user_id;not null;uniqueIndex:idx_unlocked_eyes_colors_user_code,priority:1"`
	ColorCode  string    `gorm:"column:color_code;not null;type:text;uniqueIndex:idx_unlocked_eyes_colors_user_code,priority:2"`
	UnlockedAt time.Time `gorm:"column:unlocked_at;not null;default:now();type:timestamptz"`

	// Associations
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the UnlockedEyesColor model
func (UnlockedEyesColor) TableName() string {
	return "unlocked_eyes_colors"
}
