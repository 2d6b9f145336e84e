package registry

import (
	"fmt"

	"github.com/IN4XI4/xlo-server/internal/adapter"
	"github.com/IN4XI4/xlo-server/internal/domain"
)

// CatalogRegistry defines the interface for catalog seed data operations
type CatalogRegistry interface {
	// Items returns the item catalog seed entries
	Items() []ItemEntry

	// Colors returns the color catalog seed entries
	Colors() []ColorEntry

	// SkinColors returns the skin color catalog seed entries
	SkinColors() []SkinColorEntry
}

// ItemEntry represents an item catalog row in the seed file
type ItemEntry struct {
	Code       string            `json:"code"`
	Name       string            `json:"name"`
	ItemType   domain.ItemType   `json:"item_type"`
	AvatarType domain.AvatarType `json:"avatar_type"`
	Price      int64             `json:"price"`
	SVG        string            `json:"svg"`
	IsActive   bool              `json:"is_active"`
	IsDefault  bool              `json:"is_default"`
	SortOrder  int               `json:"sort_order"`
}

// ColorEntry represents a color catalog row in the seed file
type ColorEntry struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Hex       string `json:"hex"`
	Price     int64  `json:"price"`
	IsActive  bool   `json:"is_active"`
	IsDefault bool   `json:"is_default"`
	SortOrder int    `json:"sort_order"`
}

// SkinColorEntry represents a skin color catalog row in the seed file
type SkinColorEntry struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	MainColor   string `json:"main_color"`
	SecondColor string `json:"second_color"`
	Price       int64  `json:"price"`
	IsActive    bool   `json:"is_active"`
	IsDefault   bool   `json:"is_default"`
	SortOrder   int    `json:"sort_order"`
}

// CatalogData represents the structure of the catalog seed JSON file
type CatalogData struct {
	Version    int              `json:"version"`
	Items      []ItemEntry      `json:"items"`
	Colors     []ColorEntry     `json:"colors"`
	SkinColors []SkinColorEntry `json:"skin_colors"`
}

// catalogRegistry is the internal implementation of CatalogRegistry interface
type catalogRegistry struct {
	data *CatalogData
}

// LoadCatalog loads and validates the catalog seed registry from a JSON file
func LoadCatalog(fs adapter.FileSystem, codec adapter.JSON, filePath string) (CatalogRegistry, error) {
	raw, err := fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var data CatalogData
	if err := codec.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}

	if err := validateCatalog(&data); err != nil {
		return nil, fmt.Errorf("invalid catalog file %s: %w", filePath, err)
	}

	return &catalogRegistry{data: &data}, nil
}

// validateCatalog rejects seed files that would leave registration unable to
// compose a starter avatar: duplicate codes, unknown enum values, negative
// prices, or a missing default for any non-accessory slot of either body
// variant.
func validateCatalog(data *CatalogData) error {
	itemCodes := make(map[string]bool, len(data.Items))
	type slotKey struct {
		avatarType domain.AvatarType
		itemType   domain.ItemType
	}
	defaultSlots := make(map[slotKey]bool)

	for _, item := range data.Items {
		if item.Code == "" {
			return fmt.Errorf("item with empty code")
		}
		if itemCodes[item.Code] {
			return fmt.Errorf("duplicate item code %s", item.Code)
		}
		itemCodes[item.Code] = true
		if !domain.IsValidItemType(item.ItemType) {
			return fmt.Errorf("item %s has unknown item type %s", item.Code, item.ItemType)
		}
		if !domain.IsValidAvatarType(item.AvatarType) {
			return fmt.Errorf("item %s has unknown avatar type %s", item.Code, item.AvatarType)
		}
		if item.Price < 0 {
			return fmt.Errorf("item %s has negative price", item.Code)
		}
		if item.IsDefault && item.IsActive {
			defaultSlots[slotKey{item.AvatarType, item.ItemType}] = true
		}
	}

	for _, avatarType := range domain.AvatarTypes {
		for _, itemType := range domain.ItemTypes {
			if itemType == domain.ItemTypeAccessory {
				continue
			}
			if !defaultSlots[slotKey{avatarType, itemType}] {
				return fmt.Errorf("no default %s item for %s", itemType, avatarType)
			}
		}
	}

	colorCodes := make(map[string]bool, len(data.Colors))
	hasDefaultColor := false
	for _, color := range data.Colors {
		if color.Code == "" {
			return fmt.Errorf("color with empty code")
		}
		if colorCodes[color.Code] {
			return fmt.Errorf("duplicate color code %s", color.Code)
		}
		colorCodes[color.Code] = true
		if color.Price < 0 {
			return fmt.Errorf("color %s has negative price", color.Code)
		}
		if color.IsDefault && color.IsActive {
			hasDefaultColor = true
		}
	}
	if !hasDefaultColor {
		return fmt.Errorf("no default color")
	}

	skinCodes := make(map[string]bool, len(data.SkinColors))
	hasDefaultSkin := false
	for _, skin := range data.SkinColors {
		if skin.Code == "" {
			return fmt.Errorf("skin color with empty code")
		}
		if skinCodes[skin.Code] {
			return fmt.Errorf("duplicate skin color code %s", skin.Code)
		}
		skinCodes[skin.Code] = true
		if skin.Price < 0 {
			return fmt.Errorf("skin color %s has negative price", skin.Code)
		}
		if skin.IsDefault && skin.IsActive {
			hasDefaultSkin = true
		}
	}
	if !hasDefaultSkin {
		return fmt.Errorf("no default skin color")
	}

	return nil
}

// Items returns the item catalog seed entries
func (r *catalogRegistry) Items() []ItemEntry {
	return r.data.Items
}

// Colors returns the color catalog seed entries
func (r *catalogRegistry) Colors() []ColorEntry {
	return r.data.Colors
}

// SkinColors returns the skin color catalog seed entries
func (r *catalogRegistry) SkinColors() []SkinColorEntry {
	return r.data.SkinColors
}
