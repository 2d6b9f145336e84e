package domain

// ItemType represents the cosmetic slot a catalog item belongs to
type ItemType string

const (
	ItemTypeFace      ItemType = "FACE"
	ItemTypeHair      ItemType = "HAIR"
	ItemTypeShirt     ItemType = "SHIRT"
	ItemTypePants     ItemType = "PANTS"
	ItemTypeShoes     ItemType = "SHOES"
	ItemTypeAccessory ItemType = "ACCESSORY"
)

// ItemTypes lists every cosmetic slot in display order
var ItemTypes = []ItemType{
	ItemTypeFace,
	ItemTypeHair,
	ItemTypeShirt,
	ItemTypePants,
	ItemTypeShoes,
	ItemTypeAccessory,
}

// IsValidItemType checks if an item type is valid
func IsValidItemType(t ItemType) bool {
	for _, known := range ItemTypes {
		if t == known {
			return true
		}
	}
	return false
}

// AvatarType represents the avatar body variant a catalog item is drawn for
type AvatarType string

const (
	AvatarTypeBoy  AvatarType = "BOY"
	AvatarTypeGirl AvatarType = "GIRL"
)

// AvatarTypes lists every avatar body variant
var AvatarTypes = []AvatarType{AvatarTypeBoy, AvatarTypeGirl}

// IsValidAvatarType checks if an avatar type is valid
func IsValidAvatarType(t AvatarType) bool {
	return t == AvatarTypeBoy || t == AvatarTypeGirl
}

// CatalogKind identifies which of the three cosmetic catalogs an operation targets
type CatalogKind string

const (
	CatalogKindItem      CatalogKind = "item"
	CatalogKindColor     CatalogKind = "color"
	CatalogKindSkinColor CatalogKind = "skin_color"
)

// SpendReason tags a coin debit with the flow that produced it
type SpendReason string

const (
	SpendReasonBuyItem      SpendReason = "buy_item"
	SpendReasonBuyColor     SpendReason = "buy_color"
	SpendReasonBuySkinColor SpendReason = "buy_skin_color"
)

// LedgerEntryType represents the direction of a coin ledger entry
type LedgerEntryType string

const (
	LedgerEntryCredit LedgerEntryType = "credit"
	LedgerEntryDebit  LedgerEntryType = "debit"
)
