package schema

import (
	"time"

	"github.com/IN4XI4/xlo-server/internal/domain"
)

// ItemCatalog represents the item_catalog table - admin-managed reference rows for
// purchasable cosmetic items (faces, hair, shirts, pants, shoes, accessories)
type ItemCatalog struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Code is the stable unique identifier used by seed files and clients
	Code string `gorm:"column:code;not null;uniqueIndex;type:text"`
	// Name is the display name
	Name string `gorm:"column:name;not null;type:text"`
	// Price is the coin cost; zero for free rows
	Price int64 `gorm:"column:price;not null;default:0;check:price >= 0"`
	// ItemType is the cosmetic slot this item fills
	ItemType domain.ItemType `gorm:"column:item_type;not null;type:text;index:idx_item_catalog_type_avatar_active,priority:1"`
	// AvatarType is the body variant this item is drawn for
	AvatarType domain.AvatarType `gorm:"column:avatar_type;not null;type:text;index:idx_item_catalog_type_avatar_active,priority:2"`
	// SVG is the frontend asset name for rendering
	SVG string `gorm:"column:svg;not null;type:text"`
	// IsActive soft-deletes a row; inactive rows cannot be bought but stay
	// referenced by existing unlocks
	IsActive bool `gorm:"column:is_active;not null;default:true;index:idx_item_catalog_type_avatar_active,priority:3"`
	// IsDefault marks the starter set granted free at registration
	IsDefault bool `gorm:"column:is_default;not null;default:false"`
	// SortOrder controls display ordering within a slot
	SortOrder int `gorm:"column:sort_order;not null;default:0"`
	// CreatedAt is the timestamp when the row was seeded
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when the row was last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ItemCatalog model
func (ItemCatalog) TableName() string {
	return "item_catalog"
}

// ColorCatalog represents the color_catalog table - purchasable colors for clothing and hair
type ColorCatalog struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Code      string    `gorm:"column:code;not null;uniqueIndex;type:text"`
	Name      string    `gorm:"column:name;not null;type:text"`
	Price     int64     `gorm:"column:price;not null;default:0;check:price >= 0"`
	Hex       string    `gorm:"column:hex;not null;type:text"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	IsDefault bool      `gorm:"column:is_default;not null;default:false"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ColorCatalog model
func (ColorCatalog) TableName() string {
	return "color_catalog"
}

// SkinColorCatalog represents the skin_color_catalog table - purchasable skin tones,
// each a main/shade color pair
type SkinColorCatalog struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Code        string    `gorm:"column:code;not null;uniqueIndex;type:text"`
	Name        string    `gorm:"column:name;not null;type:text"`
	Price       int64     `gorm:"column:price;not null;default:0;check:price >= 0"`
	MainColor   string    `gorm:"column:main_color;not null;type:text"`
	SecondColor string    `gorm:"column:second_color;not null;type:text"`
	IsActive    bool      `gorm:"column:is_active;not null;default:true"`
	IsDefault   bool      `gorm:"column:is_default;not null;default:false"`
	SortOrder   int       `gorm:"column:sort_order;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the SkinColorCatalog model
func (SkinColorCatalog) TableName() string {
	return "skin_color_catalog"
}
