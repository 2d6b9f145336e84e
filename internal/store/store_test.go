package store

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IN4XI4/xlo-server/internal/domain"
	"github.com/IN4XI4/xlo-server/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

// testCatalog holds the seeded catalog rows keyed by code
type testCatalog struct {
	items  map[string]schema.ItemCatalog
	colors map[string]schema.ColorCatalog
	skins  map[string]schema.SkinColorCatalog
}

// buildTestItems returns the item catalog rows used by the suite: a free
// default per (avatar type, slot), some purchasable extras, and one retired row
func buildTestItems() []schema.ItemCatalog {
	items := []schema.ItemCatalog{}
	for _, avatarType := range domain.AvatarTypes {
		for _, itemType := range []domain.ItemType{
			domain.ItemTypeFace,
			domain.ItemTypeHair,
			domain.ItemTypeShirt,
			domain.ItemTypePants,
			domain.ItemTypeShoes,
		} {
			code := fmt.Sprintf("%s_%s_DEFAULT", itemType, avatarType)
			items = append(items, schema.ItemCatalog{
				Code:       code,
				Name:       code,
				Price:      0,
				ItemType:   itemType,
				AvatarType: avatarType,
				SVG:        code,
				IsActive:   true,
				IsDefault:  true,
			})
		}
	}

	items = append(items,
		schema.ItemCatalog{
			Code: "HAIR_BOY_MOHAWK", Name: "Mohawk", Price: 80,
			ItemType: domain.ItemTypeHair, AvatarType: domain.AvatarTypeBoy,
			SVG: "hair_boy_mohawk", IsActive: true,
		},
		schema.ItemCatalog{
			Code: "SHIRT_BOY_HOODIE", Name: "Hoodie", Price: 50,
			ItemType: domain.ItemTypeShirt, AvatarType: domain.AvatarTypeBoy,
			SVG: "shirt_boy_hoodie", IsActive: true,
		},
		schema.ItemCatalog{
			Code: "ACCESSORY_CAP", Name: "Cap", Price: 10,
			ItemType: domain.ItemTypeAccessory, AvatarType: domain.AvatarTypeBoy,
			SVG: "accessory_cap", IsActive: true,
		},
		schema.ItemCatalog{
			Code: "HAIR_BOY_RETIRED", Name: "Retired Hair", Price: 10,
			ItemType: domain.ItemTypeHair, AvatarType: domain.AvatarTypeBoy,
			SVG: "hair_boy_retired", IsActive: false,
		},
	)
	return items
}

// buildTestColors returns the color catalog rows used by the suite
func buildTestColors() []schema.ColorCatalog {
	return []schema.ColorCatalog{
		{Code: "BLACK", Name: "Black", Hex: "#000000", Price: 0, IsActive: true, IsDefault: true},
		{Code: "RED", Name: "Red", Hex: "#E53935", Price: 20, IsActive: true},
		{Code: "NEON", Name: "Neon", Hex: "#39FF14", Price: 5, IsActive: false},
	}
}

// buildTestSkinColors returns the skin color catalog rows used by the suite
func buildTestSkinColors() []schema.SkinColorCatalog {
	return []schema.SkinColorCatalog{
		{Code: "SKIN_LIGHT", Name: "Light", MainColor: "#FFDBB4", SecondColor: "#EAC086", Price: 0, IsActive: true, IsDefault: true},
		{Code: "SKIN_OLIVE", Name: "Olive", MainColor: "#C5985C", SecondColor: "#A37B42", Price: 30, IsActive: true},
	}
}

// seedTestCatalog upserts the full test catalog and returns the rows by code
func seedTestCatalog(t *testing.T, s Store) testCatalog {
	ctx := context.Background()

	items := buildTestItems()
	require.NoError(t, s.UpsertItemCatalog(ctx, items))
	colors := buildTestColors()
	require.NoError(t, s.UpsertColorCatalog(ctx, colors))
	skins := buildTestSkinColors()
	require.NoError(t, s.UpsertSkinColorCatalog(ctx, skins))

	catalog := testCatalog{
		items:  make(map[string]schema.ItemCatalog, len(items)),
		colors: make(map[string]schema.ColorCatalog, len(colors)),
		skins:  make(map[string]schema.SkinColorCatalog, len(skins)),
	}
	for _, item := range items {
		require.NotZero(t, item.ID, "upsert should populate item id for %s", item.Code)
		catalog.items[item.Code] = item
	}
	for _, color := range colors {
		require.NotZero(t, color.ID)
		catalog.colors[color.Code] = color
	}
	for _, skin := range skins {
		require.NotZero(t, skin.ID)
		catalog.skins[skin.Code] = skin
	}
	return catalog
}

// createTestUser creates an account row for tests
func createTestUser(t *testing.T, s Store, email string) *schema.User {
	user, err := s.CreateUser(context.Background(), CreateUserInput{
		Email:        email,
		Username:     "tester",
		PasswordHash: "$2a$10$testhashtesthashtesthash",
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	return user
}

// fundUser credits coins with a unique idempotency key
func fundUser(t *testing.T, s Store, userID int64, amount int64) {
	_, err := s.CreditCoins(context.Background(), CreditCoinsInput{
		UserID:         userID,
		Amount:         amount,
		ReferenceID:    "test-funding",
		IdempotencyKey: fmt.Sprintf("test-fund:%d:%d", userID, amount),
	})
	require.NoError(t, err)
}

// =============================================================================
// Users
// =============================================================================

func testUserAccounts(t *testing.T, s Store) {
	ctx := context.Background()

	t.Run("create and retrieve a user", func(t *testing.T) {
		user := createTestUser(t, s, "alice@test.local")
		assert.Equal(t, "alice@test.local", user.Email)
		assert.Equal(t, int64(0), user.CoinBalance)
		assert.False(t, user.IsAdmin)

		byEmail, err := s.GetUserByEmail(ctx, "alice@test.local")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, user.ID, byEmail.ID)

		byID, err := s.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, user.Email, byID.Email)
	})

	t.Run("missing users resolve to nil", func(t *testing.T) {
		byEmail, err := s.GetUserByEmail(ctx, "nobody@test.local")
		require.NoError(t, err)
		assert.Nil(t, byEmail)

		byID, err := s.GetUserByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, byID)
	})

	// Keep this case last: the failed insert aborts the isolation transaction
	t.Run("duplicate email is rejected", func(t *testing.T) {
		_, err := s.CreateUser(ctx, CreateUserInput{
			Email:        "alice@test.local",
			Username:     "alice2",
			PasswordHash: "hash",
		})
		assert.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

// =============================================================================
// Purchases
// =============================================================================

func testPurchaseItem(t *testing.T, s Store) {
	ctx := context.Background()
	catalog := seedTestCatalog(t, s)
	user := createTestUser(t, s, "buyer@test.local")
	fundUser(t, s, user.ID, 100)

	mohawk := catalog.items["HAIR_BOY_MOHAWK"]
	hoodie := catalog.items["SHIRT_BOY_HOODIE"]
	retired := catalog.items["HAIR_BOY_RETIRED"]

	t.Run("successful purchase debits balance and records the spend", func(t *testing.T) {
		result, err := s.PurchaseItem(ctx, user.ID, mohawk.ID)
		require.NoError(t, err)
		assert.NotZero(t, result.UnlockID)
		assert.Equal(t, int64(20), result.NewBalance)
		assert.NotEmpty(t, result.SpendReference)

		balance, err := s.GetCoinBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(20), balance)

		unlocks, err := s.ListUnlockedItems(ctx, user.ID, nil)
		require.NoError(t, err)
		require.Len(t, unlocks, 1)
		assert.Equal(t, mohawk.ID, unlocks[0].CatalogItemID)
		assert.Equal(t, "HAIR_BOY_MOHAWK", unlocks[0].CatalogItem.Code)

		spends, total, err := s.ListCoinSpends(ctx, user.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, spends, 1)
		assert.Equal(t, result.SpendReference, spends[0].Reference)
		assert.Equal(t, domain.SpendReasonBuyItem, spends[0].Reason)
		assert.Equal(t, int64(80), spends[0].Coins)
		assert.Equal(t, "avatar_item", spends[0].TargetType)
		assert.Equal(t, fmt.Sprintf("%d", mohawk.ID), spends[0].TargetID)
	})

	t.Run("second purchase of the same item is rejected", func(t *testing.T) {
		_, err := s.PurchaseItem(ctx, user.ID, mohawk.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyOwned)

		// Balance untouched
		balance, err := s.GetCoinBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(20), balance)
	})

	t.Run("insufficient balance is rejected without side effects", func(t *testing.T) {
		_, err := s.PurchaseItem(ctx, user.ID, hoodie.ID)
		assert.ErrorIs(t, err, domain.ErrInsufficientCoins)

		balance, err := s.GetCoinBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(20), balance)

		unlocks, err := s.ListUnlockedItems(ctx, user.ID, nil)
		require.NoError(t, err)
		assert.Len(t, unlocks, 1)

		_, total, err := s.ListCoinSpends(ctx, user.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("inactive catalog row cannot be bought", func(t *testing.T) {
		_, err := s.PurchaseItem(ctx, user.ID, retired.ID)
		assert.ErrorIs(t, err, domain.ErrCatalogItemNotFound)
	})

	t.Run("unknown catalog id cannot be bought", func(t *testing.T) {
		_, err := s.PurchaseItem(ctx, user.ID, 999999)
		assert.ErrorIs(t, err, domain.ErrCatalogItemNotFound)
	})

	t.Run("unknown user cannot buy", func(t *testing.T) {
		_, err := s.PurchaseItem(ctx, 999999, mohawk.ID)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("free row unlocks without a debit", func(t *testing.T) {
		free := catalog.items["HAIR_BOY_DEFAULT"]
		result, err := s.PurchaseItem(ctx, user.ID, free.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(20), result.NewBalance)

		spends, total, err := s.ListCoinSpends(ctx, user.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Equal(t, int64(0), spends[0].Coins)
	})
}

func testPurchaseColors(t *testing.T, s Store) {
	ctx := context.Background()
	catalog := seedTestCatalog(t, s)
	user := createTestUser(t, s, "colorbuyer@test.local")
	fundUser(t, s, user.ID, 60)

	red := catalog.colors["RED"]
	olive := catalog.skins["SKIN_OLIVE"]

	t.Run("buy a color", func(t *testing.T) {
		result, err := s.PurchaseColor(ctx, user.ID, red.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(40), result.NewBalance)

		colors, err := s.ListUnlockedColors(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, colors, 1)
		assert.Equal(t, "RED", colors[0].CatalogItem.Code)

		_, err = s.PurchaseColor(ctx, user.ID, red.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyOwned)
	})

	t.Run("buy a skin color", func(t *testing.T) {
		result, err := s.PurchaseSkinColor(ctx, user.ID, olive.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), result.NewBalance)

		skins, err := s.ListUnlockedSkinColors(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, skins, 1)
		assert.Equal(t, "SKIN_OLIVE", skins[0].CatalogItem.Code)

		_, err = s.PurchaseSkinColor(ctx, user.ID, olive.ID)
		assert.ErrorIs(t, err, domain.ErrAlreadyOwned)
	})

	t.Run("inactive color cannot be bought", func(t *testing.T) {
		_, err := s.PurchaseColor(ctx, user.ID, catalog.colors["NEON"].ID)
		assert.ErrorIs(t, err, domain.ErrCatalogItemNotFound)
	})

	t.Run("spend reasons distinguish the catalogs", func(t *testing.T) {
		spends, _, err := s.ListCoinSpends(ctx, user.ID, 10, 0)
		require.NoError(t, err)
		require.Len(t, spends, 2)
		// Newest first
		assert.Equal(t, domain.SpendReasonBuySkinColor, spends[0].Reason)
		assert.Equal(t, domain.SpendReasonBuyColor, spends[1].Reason)
	})
}

// =============================================================================
// Catalog listings
// =============================================================================

func testListItemCatalog(t *testing.T, s Store) {
	ctx := context.Background()
	catalog := seedTestCatalog(t, s)
	user := createTestUser(t, s, "lister@test.local")
	fundUser(t, s, user.ID, 100)

	_, err := s.PurchaseItem(ctx, user.ID, catalog.items["HAIR_BOY_MOHAWK"].ID)
	require.NoError(t, err)

	activeCount := int64(len(buildTestItems()) - 1) // one retired row

	t.Run("owned rows come first and carry the unlock id", func(t *testing.T) {
		rows, total, err := s.ListItemCatalog(ctx, user.ID, ItemCatalogFilter{Limit: 50})
		require.NoError(t, err)
		assert.Equal(t, activeCount, total)
		require.Len(t, rows, int(activeCount))

		first := rows[0]
		assert.True(t, first.Owned)
		assert.Equal(t, "HAIR_BOY_MOHAWK", first.Code)
		require.NotNil(t, first.UnlockedItemID)

		for _, row := range rows[1:] {
			assert.False(t, row.Owned)
			assert.Nil(t, row.UnlockedItemID)
		}
	})

	t.Run("inactive rows are hidden", func(t *testing.T) {
		rows, _, err := s.ListItemCatalog(ctx, user.ID, ItemCatalogFilter{Limit: 50})
		require.NoError(t, err)
		for _, row := range rows {
			assert.NotEqual(t, "HAIR_BOY_RETIRED", row.Code)
		}
	})

	t.Run("filter by slot and body variant", func(t *testing.T) {
		hair := domain.ItemTypeHair
		boy := domain.AvatarTypeBoy
		rows, total, err := s.ListItemCatalog(ctx, user.ID, ItemCatalogFilter{
			ItemType:   &hair,
			AvatarType: &boy,
			Limit:      50,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total) // default + mohawk, retired hidden
		for _, row := range rows {
			assert.Equal(t, hair, row.ItemType)
			assert.Equal(t, boy, row.AvatarType)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page1, total, err := s.ListItemCatalog(ctx, user.ID, ItemCatalogFilter{Limit: 5})
		require.NoError(t, err)
		assert.Equal(t, activeCount, total)
		assert.Len(t, page1, 5)

		page2, _, err := s.ListItemCatalog(ctx, user.ID, ItemCatalogFilter{Limit: 5, Offset: 5})
		require.NoError(t, err)
		assert.Len(t, page2, 5)
		assert.NotEqual(t, page1[0].ID, page2[0].ID)
	})
}

func testListColorCatalogs(t *testing.T, s Store) {
	ctx := context.Background()
	catalog := seedTestCatalog(t, s)
	user := createTestUser(t, s, "colorlister@test.local")
	fundUser(t, s, user.ID, 100)

	_, err := s.PurchaseColor(ctx, user.ID, catalog.colors["RED"].ID)
	require.NoError(t, err)
	_, err = s.PurchaseSkinColor(ctx, user.ID, catalog.skins["SKIN_OLIVE"].ID)
	require.NoError(t, err)

	t.Run("colors annotated with ownership, owned first", func(t *testing.T) {
		rows, total, err := s.ListColorCatalog(ctx, user.ID, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total) // NEON is inactive
		require.Len(t, rows, 2)
		assert.Equal(t, "RED", rows[0].Code)
		assert.True(t, rows[0].Owned)
		assert.Equal(t, "BLACK", rows[1].Code)
		assert.False(t, rows[1].Owned)
	})

	t.Run("skin colors annotated with ownership, owned first", func(t *testing.T) {
		rows, total, err := s.ListSkinColorCatalog(ctx, user.ID, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, rows, 2)
		assert.Equal(t, "SKIN_OLIVE", rows[0].Code)
		assert.True(t, rows[0].Owned)
		assert.False(t, rows[1].Owned)
	})
}

// =============================================================================
// Starter avatar
// =============================================================================

func testSeedStarterAvatar(t *testing.T, s Store) {
	ctx := context.Background()
	seedTestCatalog(t, s)
	user := createTestUser(t, s, "starter@test.local")

	avatar, err := s.SeedStarterAvatar(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, avatar)

	t.Run("every default item is granted", func(t *testing.T) {
		unlocks, err := s.ListUnlockedItems(ctx, user.ID, nil)
		require.NoError(t, err)
		// 5 slots for each of the two body variants
		assert.Len(t, unlocks, 10)
	})

	t.Run("default and bonus colors are granted", func(t *testing.T) {
		colors, err := s.ListUnlockedColors(ctx, user.ID)
		require.NoError(t, err)
		// BLACK default plus one random bonus (RED is the only candidate)
		require.Len(t, colors, 2)
		assert.Equal(t, "BLACK", colors[0].CatalogItem.Code)
		assert.Equal(t, "RED", colors[1].CatalogItem.Code)

		skins, err := s.ListUnlockedSkinColors(ctx, user.ID)
		require.NoError(t, err)
		require.Len(t, skins, 2)
	})

	t.Run("avatar points at the boy defaults", func(t *testing.T) {
		assert.Equal(t, domain.AvatarTypeBoy, avatar.AvatarType)
		assert.NotZero(t, avatar.HairItemID)
		assert.NotZero(t, avatar.SkinColorID)
		assert.Nil(t, avatar.AccessoryItemID)

		loaded, err := s.GetAvatarByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, loaded)
		assert.Equal(t, "HAIR_BOY_DEFAULT", loaded.HairItem.CatalogItem.Code)
		assert.Equal(t, "FACE_BOY_DEFAULT", loaded.FaceItem.CatalogItem.Code)
		assert.Equal(t, "BLACK", loaded.HairColor.CatalogItem.Code)
		assert.Equal(t, DefaultEyesColorCode, loaded.EyesColor.ColorCode)
		assert.Equal(t, "SKIN_LIGHT", loaded.SkinColor.CatalogItem.Code)
	})

	t.Run("default unlocks cover every slot per body variant", func(t *testing.T) {
		defaults, err := s.GetDefaultUnlocks(ctx, user.ID, domain.AvatarTypeBoy)
		require.NoError(t, err)
		assert.Len(t, defaults, 5)
		assert.Equal(t, "HAIR_BOY_DEFAULT", defaults[domain.ItemTypeHair].CatalogItem.Code)

		girlDefaults, err := s.GetDefaultUnlocks(ctx, user.ID, domain.AvatarTypeGirl)
		require.NoError(t, err)
		assert.Len(t, girlDefaults, 5)
	})

	t.Run("unlocked items filter by slot", func(t *testing.T) {
		hair := domain.ItemTypeHair
		unlocks, err := s.ListUnlockedItems(ctx, user.ID, &hair)
		require.NoError(t, err)
		assert.Len(t, unlocks, 2) // boy and girl defaults
		for _, unlock := range unlocks {
			assert.Equal(t, hair, unlock.CatalogItem.ItemType)
		}
	})
}

func testSeedStarterAvatarMissingDefaults(t *testing.T, s Store) {
	ctx := context.Background()

	// Catalog with no SHOES defaults at all
	var items []schema.ItemCatalog
	for _, item := range buildTestItems() {
		if item.ItemType == domain.ItemTypeShoes {
			continue
		}
		items = append(items, item)
	}
	require.NoError(t, s.UpsertItemCatalog(ctx, items))
	require.NoError(t, s.UpsertColorCatalog(ctx, buildTestColors()))
	require.NoError(t, s.UpsertSkinColorCatalog(ctx, buildTestSkinColors()))

	user := createTestUser(t, s, "noshoes@test.local")

	_, err := s.SeedStarterAvatar(ctx, user.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default SHOES")

	// The failure rolled back all grants
	unlocks, err := s.ListUnlockedItems(ctx, user.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, unlocks)

	avatar, err := s.GetAvatarByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, avatar)
}

func testRegisterAccount(t *testing.T, s Store) {
	ctx := context.Background()
	seedTestCatalog(t, s)

	user, err := s.RegisterAccount(ctx, RegisterAccountInput{
		User: CreateUserInput{
			Email:        "newcomer@test.local",
			Username:     "newcomer",
			PasswordHash: "$2a$10$testhashtesthashtesthash",
		},
		StarterCoins: 100,
	})
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	assert.Equal(t, int64(100), user.CoinBalance)

	t.Run("bootstrap is complete", func(t *testing.T) {
		balance, err := s.GetCoinBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance)

		avatar, err := s.GetAvatarByUserID(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, avatar)

		unlocks, err := s.ListUnlockedItems(ctx, user.ID, nil)
		require.NoError(t, err)
		assert.Len(t, unlocks, 10)
	})

	t.Run("duplicate email fails cleanly", func(t *testing.T) {
		_, err := s.RegisterAccount(ctx, RegisterAccountInput{
			User: CreateUserInput{
				Email:        "newcomer@test.local",
				Username:     "imposter",
				PasswordHash: "$2a$10$testhashtesthashtesthash",
			},
			StarterCoins: 100,
		})
		require.ErrorIs(t, err, domain.ErrEmailTaken)
	})
}

func testRegisterAccountRollback(t *testing.T, s Store) {
	ctx := context.Background()

	// Catalog with no SHOES defaults, so seeding must fail
	var items []schema.ItemCatalog
	for _, item := range buildTestItems() {
		if item.ItemType == domain.ItemTypeShoes {
			continue
		}
		items = append(items, item)
	}
	require.NoError(t, s.UpsertItemCatalog(ctx, items))
	require.NoError(t, s.UpsertColorCatalog(ctx, buildTestColors()))
	require.NoError(t, s.UpsertSkinColorCatalog(ctx, buildTestSkinColors()))

	input := RegisterAccountInput{
		User: CreateUserInput{
			Email:        "ghost@test.local",
			Username:     "ghost",
			PasswordHash: "$2a$10$testhashtesthashtesthash",
		},
		StarterCoins: 100,
	}

	_, err := s.RegisterAccount(ctx, input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default SHOES")

	// The failed bootstrap left no user row behind
	user, err := s.GetUserByEmail(ctx, "ghost@test.local")
	require.NoError(t, err)
	assert.Nil(t, user)

	// Once the catalog is fixed the same email registers fine
	require.NoError(t, s.UpsertItemCatalog(ctx, buildTestItems()))

	user, err = s.RegisterAccount(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.CoinBalance)

	avatar, err := s.GetAvatarByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, avatar)
}

// =============================================================================
// Avatar updates
// =============================================================================

func testUpdateAvatar(t *testing.T, s Store) {
	ctx := context.Background()
	catalog := seedTestCatalog(t, s)
	user := createTestUser(t, s, "stylist@test.local")
	fundUser(t, s, user.ID, 100)

	_, err := s.SeedStarterAvatar(ctx, user.ID)
	require.NoError(t, err)

	mohawk, err := s.PurchaseItem(ctx, user.ID, catalog.items["HAIR_BOY_MOHAWK"].ID)
	require.NoError(t, err)

	t.Run("swap an owned slot", func(t *testing.T) {
		updated, err := s.UpdateAvatar(ctx, user.ID, UpdateAvatarInput{
			HairItemID: &mohawk.UnlockID,
		})
		require.NoError(t, err)
		assert.Equal(t, mohawk.UnlockID, updated.HairItemID)
		assert.Equal(t, "HAIR_BOY_MOHAWK", updated.HairItem.CatalogItem.Code)
		// Untouched slots keep their selection
		assert.Equal(t, "FACE_BOY_DEFAULT", updated.FaceItem.CatalogItem.Code)
	})

	t.Run("switch body variant", func(t *testing.T) {
		girl := domain.AvatarTypeGirl
		updated, err := s.UpdateAvatar(ctx, user.ID, UpdateAvatarInput{
			AvatarType: &girl,
		})
		require.NoError(t, err)
		assert.Equal(t, girl, updated.AvatarType)
	})

	t.Run("equip and clear an accessory", func(t *testing.T) {
		cap, err := s.PurchaseItem(ctx, user.ID, catalog.items["ACCESSORY_CAP"].ID)
		require.NoError(t, err)

		updated, err := s.UpdateAvatar(ctx, user.ID, UpdateAvatarInput{
			AccessoryItemID: &cap.UnlockID,
		})
		require.NoError(t, err)
		require.NotNil(t, updated.AccessoryItemID)
		assert.Equal(t, cap.UnlockID, *updated.AccessoryItemID)
		assert.Equal(t, "ACCESSORY_CAP", updated.AccessoryItem.CatalogItem.Code)

		cleared, err := s.UpdateAvatar(ctx, user.ID, UpdateAvatarInput{
			ClearAccessory: true,
		})
		require.NoError(t, err)
		assert.Nil(t, cleared.AccessoryItemID)
		assert.Nil(t, cleared.AccessoryColorID)
	})

	t.Run("another user's unlock is rejected", func(t *testing.T) {
		other := createTestUser(t, s, "other@test.local")
		_, err := s.SeedStarterAvatar(ctx, other.ID)
		require.NoError(t, err)

		otherDefaults, err := s.GetDefaultUnlocks(ctx, other.ID, domain.AvatarTypeBoy)
		require.NoError(t, err)
		foreignUnlockID := otherDefaults[domain.ItemTypeHair].ID

		_, err = s.UpdateAvatar(ctx, user.ID, UpdateAvatarInput{
			HairItemID: &foreignUnlockID,
		})
		assert.ErrorIs(t, err, domain.ErrUnlockNotOwned)

		// The rejected update changed nothing
		avatar, err := s.GetAvatarByUserID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, mohawk.UnlockID, avatar.HairItemID)
	})

	t.Run("unknown unlock id is rejected", func(t *testing.T) {
		bogus := int64(999999)
		_, err := s.UpdateAvatar(ctx, user.ID, UpdateAvatarInput{
			EyesColorID: &bogus,
		})
		assert.ErrorIs(t, err, domain.ErrUnlockNotOwned)
	})

	t.Run("user without avatar", func(t *testing.T) {
		bare := createTestUser(t, s, "bare@test.local")
		girl := domain.AvatarTypeGirl
		_, err := s.UpdateAvatar(ctx, bare.ID, UpdateAvatarInput{AvatarType: &girl})
		assert.ErrorIs(t, err, domain.ErrAvatarNotFound)
	})
}

// =============================================================================
// Wallet
// =============================================================================

func testWalletCredits(t *testing.T, s Store) {
	ctx := context.Background()
	user := createTestUser(t, s, "wallet@test.local")

	t.Run("fresh account has a zero balance", func(t *testing.T) {
		balance, err := s.GetCoinBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), balance)
	})

	t.Run("unknown user balance lookup fails", func(t *testing.T) {
		_, err := s.GetCoinBalance(ctx, 999999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("credit is applied once and replays are detected", func(t *testing.T) {
		result, err := s.CreditCoins(ctx, CreditCoinsInput{
			UserID:         user.ID,
			Amount:         100,
			ReferenceID:    "payment-1",
			IdempotencyKey: "payment:1",
		})
		require.NoError(t, err)
		assert.False(t, result.Replayed)
		assert.Equal(t, int64(100), result.NewBalance)
		require.NotNil(t, result.Entry)
		assert.Equal(t, domain.LedgerEntryCredit, result.Entry.EntryType)

		// A webhook retry replays the same key
		replay, err := s.CreditCoins(ctx, CreditCoinsInput{
			UserID:         user.ID,
			Amount:         100,
			ReferenceID:    "payment-1",
			IdempotencyKey: "payment:1",
		})
		require.NoError(t, err)
		assert.True(t, replay.Replayed)
		assert.Equal(t, int64(100), replay.NewBalance)
		assert.Equal(t, result.Entry.ID, replay.Entry.ID)

		balance, err := s.GetCoinBalance(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), balance)
	})

	t.Run("credit to an unknown user fails", func(t *testing.T) {
		_, err := s.CreditCoins(ctx, CreditCoinsInput{
			UserID:         999999,
			Amount:         10,
			ReferenceID:    "payment-2",
			IdempotencyKey: "payment:2",
		})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func testSpendHistory(t *testing.T, s Store) {
	ctx := context.Background()
	catalog := seedTestCatalog(t, s)
	user := createTestUser(t, s, "history@test.local")
	fundUser(t, s, user.ID, 200)

	first, err := s.PurchaseItem(ctx, user.ID, catalog.items["HAIR_BOY_MOHAWK"].ID)
	require.NoError(t, err)
	second, err := s.PurchaseItem(ctx, user.ID, catalog.items["SHIRT_BOY_HOODIE"].ID)
	require.NoError(t, err)
	third, err := s.PurchaseColor(ctx, user.ID, catalog.colors["RED"].ID)
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		spends, total, err := s.ListCoinSpends(ctx, user.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, spends, 3)
		assert.Equal(t, third.SpendReference, spends[0].Reference)
		assert.Equal(t, second.SpendReference, spends[1].Reference)
		assert.Equal(t, first.SpendReference, spends[2].Reference)
	})

	t.Run("pagination", func(t *testing.T) {
		page, total, err := s.ListCoinSpends(ctx, user.ID, 2, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, page, 2)

		rest, _, err := s.ListCoinSpends(ctx, user.ID, 2, 2)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, first.SpendReference, rest[0].Reference)
	})

	t.Run("other users see nothing", func(t *testing.T) {
		other := createTestUser(t, s, "otherhistory@test.local")
		spends, total, err := s.ListCoinSpends(ctx, other.ID, 10, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.Empty(t, spends)
	})
}

// =============================================================================
// Catalog seeding
// =============================================================================

func testCatalogUpserts(t *testing.T, s Store) {
	ctx := context.Background()
	catalog := seedTestCatalog(t, s)
	user := createTestUser(t, s, "seedcheck@test.local")

	t.Run("re-seeding updates rows in place", func(t *testing.T) {
		mohawk := catalog.items["HAIR_BOY_MOHAWK"]
		require.NoError(t, s.UpsertItemCatalog(ctx, []schema.ItemCatalog{{
			Code:       mohawk.Code,
			Name:       "Renamed Mohawk",
			Price:      90,
			ItemType:   mohawk.ItemType,
			AvatarType: mohawk.AvatarType,
			SVG:        mohawk.SVG,
			IsActive:   true,
		}}))

		rows, _, err := s.ListItemCatalog(ctx, user.ID, ItemCatalogFilter{Limit: 100})
		require.NoError(t, err)
		found := 0
		for _, row := range rows {
			if row.Code == mohawk.Code {
				found++
				assert.Equal(t, "Renamed Mohawk", row.Name)
				assert.Equal(t, int64(90), row.Price)
				assert.Equal(t, mohawk.ID, row.ID, "upsert must not create a second row")
			}
		}
		assert.Equal(t, 1, found)
	})

	t.Run("re-seeding can retire a row", func(t *testing.T) {
		red := catalog.colors["RED"]
		require.NoError(t, s.UpsertColorCatalog(ctx, []schema.ColorCatalog{{
			Code:     red.Code,
			Name:     red.Name,
			Hex:      red.Hex,
			Price:    red.Price,
			IsActive: false,
		}}))

		rows, total, err := s.ListColorCatalog(ctx, user.ID, 50, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, rows, 1)
		assert.Equal(t, "BLACK", rows[0].Code)
	})

	t.Run("empty slices are a no-op", func(t *testing.T) {
		require.NoError(t, s.UpsertItemCatalog(ctx, nil))
		require.NoError(t, s.UpsertColorCatalog(ctx, nil))
		require.NoError(t, s.UpsertSkinColorCatalog(ctx, nil))
	})
}

// =============================================================================
// Test Runner
// =============================================================================

// RunStoreTests runs the full store suite against an implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"UserAccounts", testUserAccounts},
		{"PurchaseItem", testPurchaseItem},
		{"PurchaseColors", testPurchaseColors},
		{"ListItemCatalog", testListItemCatalog},
		{"ListColorCatalogs", testListColorCatalogs},
		{"SeedStarterAvatar", testSeedStarterAvatar},
		{"SeedStarterAvatarMissingDefaults", testSeedStarterAvatarMissingDefaults},
		{"RegisterAccount", testRegisterAccount},
		{"RegisterAccountRollback", testRegisterAccountRollback},
		{"UpdateAvatar", testUpdateAvatar},
		{"WalletCredits", testWalletCredits},
		{"SpendHistory", testSpendHistory},
		{"CatalogUpserts", testCatalogUpserts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
