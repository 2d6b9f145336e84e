package dto

import (
	"github.com/IN4XI4/xlo-server/internal/store"
	"github.com/IN4XI4/xlo-server/internal/store/schema"
)

// MapUserToDTO maps a user row to its API representation
func MapUserToDTO(user *schema.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		CoinBalance: user.CoinBalance,
		CreatedAt:   user.CreatedAt,
	}
}

// MapAnnotatedItemToDTO maps an annotated item catalog row to its API representation
func MapAnnotatedItemToDTO(row *store.AnnotatedItem) CatalogItemResponse {
	return CatalogItemResponse{
		ID:             row.ID,
		Code:           row.Code,
		Name:           row.Name,
		ItemType:       row.ItemType,
		AvatarType:     row.AvatarType,
		Price:          row.Price,
		SVG:            row.SVG,
		IsDefault:      row.IsDefault,
		Owned:          row.Owned,
		UnlockedItemID: row.UnlockedItemID,
	}
}

// MapAnnotatedColorToDTO maps an annotated color catalog row to its API representation
func MapAnnotatedColorToDTO(row *store.AnnotatedColor) CatalogColorResponse {
	return CatalogColorResponse{
		ID:             row.ID,
		Code:           row.Code,
		Name:           row.Name,
		Hex:            row.Hex,
		Price:          row.Price,
		IsDefault:      row.IsDefault,
		Owned:          row.Owned,
		UnlockedItemID: row.UnlockedItemID,
	}
}

// MapAnnotatedSkinColorToDTO maps an annotated skin color catalog row to its API representation
func MapAnnotatedSkinColorToDTO(row *store.AnnotatedSkinColor) CatalogSkinColorResponse {
	return CatalogSkinColorResponse{
		ID:             row.ID,
		Code:           row.Code,
		Name:           row.Name,
		MainColor:      row.MainColor,
		SecondColor:    row.SecondColor,
		Price:          row.Price,
		IsDefault:      row.IsDefault,
		Owned:          row.Owned,
		UnlockedItemID: row.UnlockedItemID,
	}
}

// MapUnlockedItemToDTO maps an unlocked item with its preloaded catalog row
func MapUnlockedItemToDTO(row *schema.UnlockedItem) UnlockedItemResponse {
	return UnlockedItemResponse{
		ID:            row.ID,
		CatalogItemID: row.CatalogItemID,
		Code:          row.CatalogItem.Code,
		Name:          row.CatalogItem.Name,
		ItemType:      row.CatalogItem.ItemType,
		AvatarType:    row.CatalogItem.AvatarType,
		SVG:           row.CatalogItem.SVG,
		UnlockedAt:    row.UnlockedAt,
	}
}

// MapUnlockedColorToDTO maps an unlocked color with its preloaded catalog row
func MapUnlockedColorToDTO(row *schema.UnlockedColor) UnlockedColorResponse {
	return UnlockedColorResponse{
		ID:            row.ID,
		CatalogItemID: row.CatalogItemID,
		Code:          row.CatalogItem.Code,
		Name:          row.CatalogItem.Name,
		Hex:           row.CatalogItem.Hex,
		UnlockedAt:    row.UnlockedAt,
	}
}

// MapUnlockedSkinColorToDTO maps an unlocked skin color with its preloaded catalog row
func MapUnlockedSkinColorToDTO(row *schema.UnlockedSkinColor) UnlockedSkinColorResponse {
	return UnlockedSkinColorResponse{
		ID:            row.ID,
		CatalogItemID: row.CatalogItemID,
		Code:          row.CatalogItem.Code,
		Name:          row.CatalogItem.Name,
		MainColor:     row.CatalogItem.MainColor,
		SecondColor:   row.CatalogItem.SecondColor,
		UnlockedAt:    row.UnlockedAt,
	}
}

// MapSpendToDTO maps a spend ledger row to its API representation
func MapSpendToDTO(row *schema.CoinSpend) SpendResponse {
	return SpendResponse{
		Reference:  row.Reference,
		Reason:     row.Reason,
		Coins:      row.Coins,
		TargetType: row.TargetType,
		TargetID:   row.TargetID,
		CreatedAt:  row.CreatedAt,
	}
}

func mapItemSlot(row *schema.UnlockedItem) AvatarItemSlot {
	return AvatarItemSlot{
		UnlockID:      row.ID,
		CatalogItemID: row.CatalogItemID,
		Code:          row.CatalogItem.Code,
		ItemType:      row.CatalogItem.ItemType,
		SVG:           row.CatalogItem.SVG,
	}
}

func mapColorSlot(row *schema.UnlockedColor) AvatarColorSlot {
	return AvatarColorSlot{
		UnlockID:      row.ID,
		CatalogItemID: row.CatalogItemID,
		Code:          row.CatalogItem.Code,
		Hex:           row.CatalogItem.Hex,
	}
}

// MapAvatarToDTO maps an avatar with all slots preloaded to its API representation
func MapAvatarToDTO(avatar *schema.Avatar) *AvatarResponse {
	resp := &AvatarResponse{
		AvatarType: avatar.AvatarType,
		UpdatedAt:  avatar.UpdatedAt,
		Hair:       mapItemSlot(&avatar.HairItem),
		HairColor:  mapColorSlot(&avatar.HairColor),
		Face:       mapItemSlot(&avatar.FaceItem),
		EyesColor: AvatarEyesSlot{
			UnlockID:  avatar.EyesColor.ID,
			ColorCode: avatar.EyesColor.ColorCode,
		},
		Shirt:      mapItemSlot(&avatar.ShirtItem),
		ShirtColor: mapColorSlot(&avatar.ShirtColor),
		Pants:      mapItemSlot(&avatar.PantsItem),
		PantsColor: mapColorSlot(&avatar.PantsColor),
		Shoes:      mapItemSlot(&avatar.ShoesItem),
		ShoesColor: mapColorSlot(&avatar.ShoesColor),
		SkinColor: AvatarSkinSlot{
			UnlockID:      avatar.SkinColor.ID,
			CatalogItemID: avatar.SkinColor.CatalogItemID,
			Code:          avatar.SkinColor.CatalogItem.Code,
			MainColor:     avatar.SkinColor.CatalogItem.MainColor,
			SecondColor:   avatar.SkinColor.CatalogItem.SecondColor,
		},
	}

	if avatar.AccessoryItem != nil {
		slot := mapItemSlot(avatar.AccessoryItem)
		resp.Accessory = &slot
	}
	if avatar.AccessoryColor != nil {
		slot := mapColorSlot(avatar.AccessoryColor)
		resp.AccessoryColor = &slot
	}

	return resp
}
