package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/IN4XI4/xlo-server/internal/domain"
	"github.com/IN4XI4/xlo-server/internal/store/schema"
)

// starter slots that must have a seeded default item for every avatar type
var starterSlots = []domain.ItemType{
	domain.ItemTypeFace,
	domain.ItemTypeHair,
	domain.ItemTypeShirt,
	domain.ItemTypePants,
	domain.ItemTypeShoes,
}

// DefaultEyesColorCode is the eyes color granted to every new account
const DefaultEyesColorCode = "BLACK"

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// AutoMigrate creates or updates the database schema for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&schema.User{},
		&schema.ItemCatalog{},
		&schema.ColorCatalog{},
		&schema.SkinColorCatalog{},
		&schema.UnlockedItem{},
		&schema.UnlockedColor{},
		&schema.UnlockedSkinColor{},
		&schema.UnlockedEyesColor{},
		&schema.CoinSpend{},
		&schema.CoinLedgerEntry{},
		&schema.Avatar{},
	)
}

// ConfigureConnectionPool configures the connection pool settings for a GORM
// database connection. Zero values fall back to reasonable defaults.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// =============================================================================
// Users
// =============================================================================

// CreateUser creates a new account row
func (s *pgStore) CreateUser(ctx context.Context, input CreateUserInput) (*schema.User, error) {
	user := schema.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: input.PasswordHash,
		Birthday:     input.Birthday,
	}
	err := s.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// RegisterAccount bootstraps a new account: the user row, the starter balance
// credit and the starter avatar, all in one transaction. A failure in any step
// (most likely an unseeded catalog) rolls the user row back too, so the email
// is not burned by a half-created account.
func (s *pgStore) RegisterAccount(ctx context.Context, input RegisterAccountInput) (*schema.User, error) {
	var user *schema.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txStore := &pgStore{db: tx}

		created, err := txStore.CreateUser(ctx, input.User)
		if err != nil {
			return err
		}

		// Starter balance goes through the ledger like any other credit; the
		// signup key makes an accidental replay harmless.
		if input.StarterCoins > 0 {
			credit, err := txStore.CreditCoins(ctx, CreditCoinsInput{
				UserID:         created.ID,
				Amount:         input.StarterCoins,
				ReferenceID:    "signup",
				IdempotencyKey: fmt.Sprintf("signup:%d", created.ID),
			})
			if err != nil {
				return fmt.Errorf("failed to credit starter balance: %w", err)
			}
			created.CoinBalance = credit.NewBalance
		}

		if _, err := txStore.SeedStarterAvatar(ctx, created.ID); err != nil {
			return err
		}

		user = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetUserByEmail retrieves a user by login email
func (s *pgStore) GetUserByEmail(ctx context.Context, email string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

// GetUserByID retrieves a user by its internal ID
func (s *pgStore) GetUserByID(ctx context.Context, id int64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// =============================================================================
// Purchase transaction
// =============================================================================

// purchaseSpec parameterizes the generic purchase routine over one catalog kind.
// The three public purchase methods instantiate it with the kind's catalog and
// unlock tables; the locked transaction itself is shared.
type purchaseSpec struct {
	reason     domain.SpendReason
	targetType string

	// activePrice returns the price of an active catalog row, or
	// domain.ErrCatalogItemNotFound
	activePrice func(db *gorm.DB, catalogID int64) (int64, error)
	// owned reports whether the user already unlocked the catalog row
	owned func(db *gorm.DB, userID, catalogID int64) (bool, error)
	// createUnlock inserts the ownership row and returns its id
	createUnlock func(db *gorm.DB, userID, catalogID int64) (int64, error)
}

// PurchaseItem runs the locked purchase transaction against the item catalog
func (s *pgStore) PurchaseItem(ctx context.Context, userID, catalogID int64) (*PurchaseResult, error) {
	return s.purchase(ctx, userID, catalogID, purchaseSpec{
		reason:     domain.SpendReasonBuyItem,
		targetType: "avatar_item",
		activePrice: func(db *gorm.DB, catalogID int64) (int64, error) {
			var row schema.ItemCatalog
			return activeCatalogPrice(db.Where("id = ? AND is_active = ?", catalogID, true).First(&row).Error, func() int64 { return row.Price })
		},
		owned: func(db *gorm.DB, userID, catalogID int64) (bool, error) {
			return unlockExists(db.Model(&schema.UnlockedItem{}), userID, catalogID)
		},
		createUnlock: func(db *gorm.DB, userID, catalogID int64) (int64, error) {
			unlock := schema.UnlockedItem{UserID: userID, CatalogItemID: catalogID}
			if err := db.Create(&unlock).Error; err != nil {
				return 0, err
			}
			return unlock.ID, nil
		},
	})
}

// PurchaseColor runs the locked purchase transaction against the color catalog
func (s *pgStore) PurchaseColor(ctx context.Context, userID, catalogID int64) (*PurchaseResult, error) {
	return s.purchase(ctx, userID, catalogID, purchaseSpec{
		reason:     domain.SpendReasonBuyColor,
		targetType: "item_color",
		activePrice: func(db *gorm.DB, catalogID int64) (int64, error) {
			var row schema.ColorCatalog
			return activeCatalogPrice(db.Where("id = ? AND is_active = ?", catalogID, true).First(&row).Error, func() int64 { return row.Price })
		},
		owned: func(db *gorm.DB, userID, catalogID int64) (bool, error) {
			return unlockExists(db.Model(&schema.UnlockedColor{}), userID, catalogID)
		},
		createUnlock: func(db *gorm.DB, userID, catalogID int64) (int64, error) {
			unlock := schema.UnlockedColor{UserID: userID, CatalogItemID: catalogID}
			if err := db.Create(&unlock).Error; err != nil {
				return 0, err
			}
			return unlock.ID, nil
		},
	})
}

// PurchaseSkinColor runs the locked purchase transaction against the skin color catalog
func (s *pgStore) PurchaseSkinColor(ctx context.Context, userID, catalogID int64) (*PurchaseResult, error) {
	return s.purchase(ctx, userID, catalogID, purchaseSpec{
		reason:     domain.SpendReasonBuySkinColor,
		targetType: "skin_color",
		activePrice: func(db *gorm.DB, catalogID int64) (int64, error) {
			var row schema.SkinColorCatalog
			return activeCatalogPrice(db.Where("id = ? AND is_active = ?", catalogID, true).First(&row).Error, func() int64 { return row.Price })
		},
		owned: func(db *gorm.DB, userID, catalogID int64) (bool, error) {
			return unlockExists(db.Model(&schema.UnlockedSkinColor{}), userID, catalogID)
		},
		createUnlock: func(db *gorm.DB, userID, catalogID int64) (int64, error) {
			unlock := schema.UnlockedSkinColor{UserID: userID, CatalogItemID: catalogID}
			if err := db.Create(&unlock).Error; err != nil {
				return 0, err
			}
			return unlock.ID, nil
		},
	})
}

func activeCatalogPrice(err error, price func() int64) (int64, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrCatalogItemNotFound
		}
		return 0, fmt.Errorf("failed to get catalog item: %w", err)
	}
	return price(), nil
}

func unlockExists(q *gorm.DB, userID, catalogID int64) (bool, error) {
	var count int64
	err := q.Where("user_id = ? AND catalog_item_id = ?", userID, catalogID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check ownership: %w", err)
	}
	return count > 0, nil
}

// purchase is the single purchase routine shared by all three catalogs.
//
// The user row is locked with SELECT ... FOR UPDATE before the ownership and
// sufficiency checks; both are re-evaluated under the lock so concurrent
// requests for the same user serialize and can never over-spend the balance.
// Everything inside the closure commits or rolls back as one unit: no unlock
// without a matching debit, no debit without a matching unlock.
func (s *pgStore) purchase(ctx context.Context, userID, catalogID int64, spec purchaseSpec) (*PurchaseResult, error) {
	// Validate the catalog row before opening the transaction; inactive or
	// unknown rows never reach the lock.
	price, err := spec.activePrice(s.db.WithContext(ctx), catalogID)
	if err != nil {
		return nil, err
	}

	var result PurchaseResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user schema.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", userID).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user row: %w", err)
		}

		// Re-check ownership inside the lock; a pre-lock check is not
		// trustworthy under concurrency.
		alreadyOwned, err := spec.owned(tx, userID, catalogID)
		if err != nil {
			return err
		}
		if alreadyOwned {
			return domain.ErrAlreadyOwned
		}

		if user.CoinBalance < price {
			return domain.ErrInsufficientCoins
		}

		unlockID, err := spec.createUnlock(tx, userID, catalogID)
		if err != nil {
			return fmt.Errorf("failed to create unlock: %w", err)
		}

		reference := ulid.Make().String()
		spend := schema.CoinSpend{
			Reference:  reference,
			UserID:     userID,
			Reason:     spec.reason,
			Coins:      price,
			TargetType: spec.targetType,
			TargetID:   strconv.FormatInt(catalogID, 10),
		}
		if err := tx.Create(&spend).Error; err != nil {
			return fmt.Errorf("failed to create coin spend: %w", err)
		}

		if price > 0 {
			entry := schema.CoinLedgerEntry{
				UserID:         userID,
				EntryType:      domain.LedgerEntryDebit,
				Amount:         price,
				ReferenceID:    reference,
				IdempotencyKey: "spend:" + reference,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to create ledger entry: %w", err)
			}
		}

		newBalance := user.CoinBalance - price
		err = tx.Model(&schema.User{}).
			Where("id = ?", userID).
			Update("coin_balance", newBalance).Error
		if err != nil {
			return fmt.Errorf("failed to debit balance: %w", err)
		}

		result = PurchaseResult{
			UnlockID:       unlockID,
			NewBalance:     newBalance,
			SpendReference: reference,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// =============================================================================
// Catalog listings with ownership annotation
// =============================================================================

// ListItemCatalog lists active item catalog rows annotated with the user's
// ownership, owned rows first
func (s *pgStore) ListItemCatalog(ctx context.Context, userID int64, filter ItemCatalogFilter) ([]AnnotatedItem, int64, error) {
	base := func() *gorm.DB {
		q := s.db.WithContext(ctx).
			Table("item_catalog AS c").
			Where("c.is_active = ?", true)
		if filter.ItemType != nil {
			q = q.Where("c.item_type = ?", *filter.ItemType)
		}
		if filter.AvatarType != nil {
			q = q.Where("c.avatar_type = ?", *filter.AvatarType)
		}
		return q
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count item catalog: %w", err)
	}

	var rows []AnnotatedItem
	err := base().
		Select("c.*, u.id IS NOT NULL AS owned, u.id AS unlocked_item_id").
		Joins("LEFT JOIN unlocked_items u ON u.catalog_item_id = c.id AND u.user_id = ?", userID).
		Order("owned DESC, c.name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list item catalog: %w", err)
	}

	return rows, total, nil
}

// ListColorCatalog lists active color catalog rows annotated with ownership
func (s *pgStore) ListColorCatalog(ctx context.Context, userID int64, limit, offset int) ([]AnnotatedColor, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&schema.ColorCatalog{}).
		Where("is_active = ?", true).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count color catalog: %w", err)
	}

	var rows []AnnotatedColor
	err = s.db.WithContext(ctx).
		Table("color_catalog AS c").
		Select("c.*, u.id IS NOT NULL AS owned, u.id AS unlocked_item_id").
		Joins("LEFT JOIN unlocked_colors u ON u.catalog_item_id = c.id AND u.user_id = ?", userID).
		Where("c.is_active = ?", true).
		Order("owned DESC, c.code ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list color catalog: %w", err)
	}

	return rows, total, nil
}

// ListSkinColorCatalog lists active skin color catalog rows annotated with ownership
func (s *pgStore) ListSkinColorCatalog(ctx context.Context, userID int64, limit, offset int) ([]AnnotatedSkinColor, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&schema.SkinColorCatalog{}).
		Where("is_active = ?", true).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count skin color catalog: %w", err)
	}

	var rows []AnnotatedSkinColor
	err = s.db.WithContext(ctx).
		Table("skin_color_catalog AS c").
		Select("c.*, u.id IS NOT NULL AS owned, u.id AS unlocked_item_id").
		Joins("LEFT JOIN unlocked_skin_colors u ON u.catalog_item_id = c.id AND u.user_id = ?", userID).
		Where("c.is_active = ?", true).
		Order("owned DESC, c.code ASC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list skin color catalog: %w", err)
	}

	return rows, total, nil
}

// =============================================================================
// Unlock queries
// =============================================================================

// ListUnlockedItems lists the user's unlocked items with their catalog rows
func (s *pgStore) ListUnlockedItems(ctx context.Context, userID int64, itemType *domain.ItemType) ([]schema.UnlockedItem, error) {
	q := s.db.WithContext(ctx).
		Preload("CatalogItem").
		Select("unlocked_items.*").
		Joins("JOIN item_catalog c ON c.id = unlocked_items.catalog_item_id").
		Where("unlocked_items.user_id = ?", userID)
	if itemType != nil {
		q = q.Where("c.item_type = ?", *itemType)
	}

	var rows []schema.UnlockedItem
	err := q.Order("c.item_type ASC, c.code ASC").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocked items: %w", err)
	}
	return rows, nil
}

// GetDefaultUnlocks returns the user's first unlock per non-accessory slot for
// one avatar type, keyed by item type
func (s *pgStore) GetDefaultUnlocks(ctx context.Context, userID int64, avatarType domain.AvatarType) (map[domain.ItemType]schema.UnlockedItem, error) {
	var rows []schema.UnlockedItem
	err := s.db.WithContext(ctx).
		Preload("CatalogItem").
		Select("DISTINCT ON (c.item_type) unlocked_items.*").
		Joins("JOIN item_catalog c ON c.id = unlocked_items.catalog_item_id").
		Where("unlocked_items.user_id = ? AND c.avatar_type = ? AND c.item_type <> ?",
			userID, avatarType, domain.ItemTypeAccessory).
		Order("c.item_type ASC, unlocked_items.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get default unlocks: %w", err)
	}

	defaults := make(map[domain.ItemType]schema.UnlockedItem, len(rows))
	for _, row := range rows {
		defaults[row.CatalogItem.ItemType] = row
	}
	return defaults, nil
}

// ListUnlockedColors lists the user's unlocked colors with catalog rows
func (s *pgStore) ListUnlockedColors(ctx context.Context, userID int64) ([]schema.UnlockedColor, error) {
	var rows []schema.UnlockedColor
	err := s.db.WithContext(ctx).
		Preload("CatalogItem").
		Select("unlocked_colors.*").
		Joins("JOIN color_catalog c ON c.id = unlocked_colors.catalog_item_id").
		Where("unlocked_colors.user_id = ?", userID).
		Order("c.code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocked colors: %w", err)
	}
	return rows, nil
}

// ListUnlockedSkinColors lists the user's unlocked skin colors with catalog rows
func (s *pgStore) ListUnlockedSkinColors(ctx context.Context, userID int64) ([]schema.UnlockedSkinColor, error) {
	var rows []schema.UnlockedSkinColor
	err := s.db.WithContext(ctx).
		Preload("CatalogItem").
		Select("unlocked_skin_colors.*").
		Joins("JOIN skin_color_catalog c ON c.id = unlocked_skin_colors.catalog_item_id").
		Where("unlocked_skin_colors.user_id = ?", userID).
		Order("c.code ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocked skin colors: %w", err)
	}
	return rows, nil
}

// =============================================================================
// Starter avatar seeding
// =============================================================================

// SeedStarterAvatar grants the free starter set and creates the avatar row.
//
// Called explicitly by the registration flow, inside one transaction with the
// grants, so a missing seed catalog fails registration loudly instead of
// leaving an account without an avatar.
func (s *pgStore) SeedStarterAvatar(ctx context.Context, userID int64) (*schema.Avatar, error) {
	var avatar schema.Avatar
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var defaultItems []schema.ItemCatalog
		err := tx.Where("is_default = ? AND is_active = ?", true, true).
			Order("sort_order ASC, code ASC").
			Find(&defaultItems).Error
		if err != nil {
			return fmt.Errorf("failed to load default items: %w", err)
		}

		// First default per (avatar type, slot); the starter set must cover
		// every non-accessory slot for both body variants.
		type slotKey struct {
			avatarType domain.AvatarType
			itemType   domain.ItemType
		}
		slotItems := make(map[slotKey]schema.ItemCatalog)
		for _, item := range defaultItems {
			key := slotKey{item.AvatarType, item.ItemType}
			if _, ok := slotItems[key]; !ok {
				slotItems[key] = item
			}
		}
		for _, avatarType := range domain.AvatarTypes {
			for _, slot := range starterSlots {
				if _, ok := slotItems[slotKey{avatarType, slot}]; !ok {
					return fmt.Errorf("catalog is missing a default %s item for %s", slot, avatarType)
				}
			}
		}

		itemUnlocks := make(map[slotKey]int64, len(defaultItems))
		for _, item := range defaultItems {
			unlock := schema.UnlockedItem{UserID: userID, CatalogItemID: item.ID}
			if err := tx.Create(&unlock).Error; err != nil {
				return fmt.Errorf("failed to grant default item %s: %w", item.Code, err)
			}
			key := slotKey{item.AvatarType, item.ItemType}
			if _, ok := itemUnlocks[key]; !ok {
				itemUnlocks[key] = unlock.ID
			}
		}

		var defaultColor schema.ColorCatalog
		err = tx.Where("is_default = ? AND is_active = ?", true, true).
			Order("sort_order ASC, code ASC").
			First(&defaultColor).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("catalog is missing a default color")
			}
			return fmt.Errorf("failed to load default color: %w", err)
		}
		colorUnlock := schema.UnlockedColor{UserID: userID, CatalogItemID: defaultColor.ID}
		if err := tx.Create(&colorUnlock).Error; err != nil {
			return fmt.Errorf("failed to grant default color: %w", err)
		}

		var defaultSkin schema.SkinColorCatalog
		err = tx.Where("is_default = ? AND is_active = ?", true, true).
			Order("sort_order ASC, code ASC").
			First(&defaultSkin).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("catalog is missing a default skin color")
			}
			return fmt.Errorf("failed to load default skin color: %w", err)
		}
		skinUnlock := schema.UnlockedSkinColor{UserID: userID, CatalogItemID: defaultSkin.ID}
		if err := tx.Create(&skinUnlock).Error; err != nil {
			return fmt.Errorf("failed to grant default skin color: %w", err)
		}

		eyesUnlock := schema.UnlockedEyesColor{UserID: userID, ColorCode: DefaultEyesColorCode}
		if err := tx.Create(&eyesUnlock).Error; err != nil {
			return fmt.Errorf("failed to grant default eyes color: %w", err)
		}

		// One random bonus color and skin color, free, for variety. Skipped
		// silently when the catalog has nothing beyond the defaults.
		var bonusColors []schema.ColorCatalog
		err = tx.Where("is_default = ? AND is_active = ?", false, true).
			Order("random()").
			Limit(1).
			Find(&bonusColors).Error
		if err != nil {
			return fmt.Errorf("failed to pick bonus color: %w", err)
		}
		if len(bonusColors) > 0 {
			bonus := schema.UnlockedColor{UserID: userID, CatalogItemID: bonusColors[0].ID}
			if err := tx.Create(&bonus).Error; err != nil {
				return fmt.Errorf("failed to grant bonus color: %w", err)
			}
		}

		var bonusSkins []schema.SkinColorCatalog
		err = tx.Where("is_default = ? AND is_active = ?", false, true).
			Order("random()").
			Limit(1).
			Find(&bonusSkins).Error
		if err != nil {
			return fmt.Errorf("failed to pick bonus skin color: %w", err)
		}
		if len(bonusSkins) > 0 {
			bonus := schema.UnlockedSkinColor{UserID: userID, CatalogItemID: bonusSkins[0].ID}
			if err := tx.Create(&bonus).Error; err != nil {
				return fmt.Errorf("failed to grant bonus skin color: %w", err)
			}
		}

		boy := func(slot domain.ItemType) int64 {
			return itemUnlocks[slotKey{domain.AvatarTypeBoy, slot}]
		}
		avatar = schema.Avatar{
			UserID:       userID,
			AvatarType:   domain.AvatarTypeBoy,
			HairItemID:   boy(domain.ItemTypeHair),
			HairColorID:  colorUnlock.ID,
			FaceItemID:   boy(domain.ItemTypeFace),
			EyesColorID:  eyesUnlock.ID,
			ShirtItemID:  boy(domain.ItemTypeShirt),
			ShirtColorID: colorUnlock.ID,
			PantsItemID:  boy(domain.ItemTypePants),
			PantsColorID: colorUnlock.ID,
			ShoesItemID:  boy(domain.ItemTypeShoes),
			ShoesColorID: colorUnlock.ID,
			SkinColorID:  skinUnlock.ID,
		}
		if err := tx.Create(&avatar).Error; err != nil {
			return fmt.Errorf("failed to create avatar: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &avatar, nil
}

// =============================================================================
// Avatar
// =============================================================================

var avatarPreloads = []string{
	"HairItem.CatalogItem",
	"HairColor.CatalogItem",
	"FaceItem.CatalogItem",
	"EyesColor",
	"ShirtItem.CatalogItem",
	"ShirtColor.CatalogItem",
	"PantsItem.CatalogItem",
	"PantsColor.CatalogItem",
	"ShoesItem.CatalogItem",
	"ShoesColor.CatalogItem",
	"SkinColor.CatalogItem",
	"AccessoryItem.CatalogItem",
	"AccessoryColor.CatalogItem",
}

// GetAvatarByUserID retrieves a user's avatar with all slots preloaded
func (s *pgStore) GetAvatarByUserID(ctx context.Context, userID int64) (*schema.Avatar, error) {
	q := s.db.WithContext(ctx)
	for _, preload := range avatarPreloads {
		q = q.Preload(preload)
	}

	var avatar schema.Avatar
	err := q.Where("user_id = ?", userID).First(&avatar).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get avatar: %w", err)
	}
	return &avatar, nil
}

// UpdateAvatar applies a slot update after verifying every referenced unlock
// belongs to the acting user. The ownership check closes the hole where a slot
// could point at another user's unlock row.
func (s *pgStore) UpdateAvatar(ctx context.Context, userID int64, input UpdateAvatarInput) (*schema.Avatar, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var avatar schema.Avatar
		err := tx.Where("user_id = ?", userID).First(&avatar).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrAvatarNotFound
			}
			return fmt.Errorf("failed to get avatar: %w", err)
		}

		if input.AvatarType != nil {
			avatar.AvatarType = *input.AvatarType
		}

		itemSlots := []struct {
			ref  *int64
			dest *int64
		}{
			{input.HairItemID, &avatar.HairItemID},
			{input.FaceItemID, &avatar.FaceItemID},
			{input.ShirtItemID, &avatar.ShirtItemID},
			{input.PantsItemID, &avatar.PantsItemID},
			{input.ShoesItemID, &avatar.ShoesItemID},
		}
		for _, slot := range itemSlots {
			if slot.ref == nil {
				continue
			}
			if err := verifyOwnership(tx, &schema.UnlockedItem{}, userID, *slot.ref); err != nil {
				return err
			}
			*slot.dest = *slot.ref
		}

		colorSlots := []struct {
			ref  *int64
			dest *int64
		}{
			{input.HairColorID, &avatar.HairColorID},
			{input.ShirtColorID, &avatar.ShirtColorID},
			{input.PantsColorID, &avatar.PantsColorID},
			{input.ShoesColorID, &avatar.ShoesColorID},
		}
		for _, slot := range colorSlots {
			if slot.ref == nil {
				continue
			}
			if err := verifyOwnership(tx, &schema.UnlockedColor{}, userID, *slot.ref); err != nil {
				return err
			}
			*slot.dest = *slot.ref
		}

		if input.EyesColorID != nil {
			if err := verifyOwnership(tx, &schema.UnlockedEyesColor{}, userID, *input.EyesColorID); err != nil {
				return err
			}
			avatar.EyesColorID = *input.EyesColorID
		}
		if input.SkinColorID != nil {
			if err := verifyOwnership(tx, &schema.UnlockedSkinColor{}, userID, *input.SkinColorID); err != nil {
				return err
			}
			avatar.SkinColorID = *input.SkinColorID
		}

		if input.ClearAccessory {
			avatar.AccessoryItemID = nil
			avatar.AccessoryColorID = nil
		}
		if input.AccessoryItemID != nil {
			if err := verifyOwnership(tx, &schema.UnlockedItem{}, userID, *input.AccessoryItemID); err != nil {
				return err
			}
			avatar.AccessoryItemID = input.AccessoryItemID
		}
		if input.AccessoryColorID != nil {
			if err := verifyOwnership(tx, &schema.UnlockedColor{}, userID, *input.AccessoryColorID); err != nil {
				return err
			}
			avatar.AccessoryColorID = input.AccessoryColorID
		}

		if err := tx.Save(&avatar).Error; err != nil {
			return fmt.Errorf("failed to update avatar: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetAvatarByUserID(ctx, userID)
}

// verifyOwnership checks that an unlock row exists and belongs to the user
func verifyOwnership(tx *gorm.DB, model interface{}, userID, unlockID int64) error {
	var count int64
	err := tx.Model(model).
		Where("id = ? AND user_id = ?", unlockID, userID).
		Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to verify unlock ownership: %w", err)
	}
	if count == 0 {
		return domain.ErrUnlockNotOwned
	}
	return nil
}

// =============================================================================
// Wallet
// =============================================================================

// GetCoinBalance reads the user's current balance
func (s *pgStore) GetCoinBalance(ctx context.Context, userID int64) (int64, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, domain.ErrUserNotFound
	}
	return user.CoinBalance, nil
}

// ListCoinSpends lists the user's spend history, newest first
func (s *pgStore) ListCoinSpends(ctx context.Context, userID int64, limit, offset int) ([]schema.CoinSpend, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).
		Model(&schema.CoinSpend{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count coin spends: %w", err)
	}

	var rows []schema.CoinSpend
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list coin spends: %w", err)
	}

	return rows, total, nil
}

// CreditCoins applies an idempotent balance credit. Replays of the same
// idempotency key return the original entry without touching the balance.
func (s *pgStore) CreditCoins(ctx context.Context, input CreditCoinsInput) (*CreditResult, error) {
	var result CreditResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user schema.User
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.UserID).
			First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrUserNotFound
			}
			return fmt.Errorf("failed to lock user row: %w", err)
		}

		// Replay check under the lock: webhook retries carry the same key.
		var existing schema.CoinLedgerEntry
		err = tx.Where("idempotency_key = ?", input.IdempotencyKey).First(&existing).Error
		if err == nil {
			result = CreditResult{Entry: &existing, NewBalance: user.CoinBalance, Replayed: true}
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check idempotency key: %w", err)
		}

		entry := schema.CoinLedgerEntry{
			UserID:         input.UserID,
			EntryType:      domain.LedgerEntryCredit,
			Amount:         input.Amount,
			ReferenceID:    input.ReferenceID,
			IdempotencyKey: input.IdempotencyKey,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create ledger entry: %w", err)
		}

		newBalance := user.CoinBalance + input.Amount
		err = tx.Model(&schema.User{}).
			Where("id = ?", input.UserID).
			Update("coin_balance", newBalance).Error
		if err != nil {
			return fmt.Errorf("failed to credit balance: %w", err)
		}

		result = CreditResult{Entry: &entry, NewBalance: newBalance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// =============================================================================
// Catalog seeding (seeder binary)
// =============================================================================

var catalogSeedUpdates = []string{"name", "price", "is_active", "is_default", "sort_order", "updated_at"}

// UpsertItemCatalog upserts item catalog rows by code
func (s *pgStore) UpsertItemCatalog(ctx context.Context, rows []schema.ItemCatalog) error {
	if len(rows) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns(append([]string{"item_type", "avatar_type", "svg"}, catalogSeedUpdates...)),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert item catalog: %w", err)
	}
	return nil
}

// UpsertColorCatalog upserts color catalog rows by code
func (s *pgStore) UpsertColorCatalog(ctx context.Context, rows []schema.ColorCatalog) error {
	if len(rows) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns(append([]string{"hex"}, catalogSeedUpdates...)),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert color catalog: %w", err)
	}
	return nil
}

// UpsertSkinColorCatalog upserts skin color catalog rows by code
func (s *pgStore) UpsertSkinColorCatalog(ctx context.Context, rows []schema.SkinColorCatalog) error {
	if len(rows) == 0 {
		return nil
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "code"}},
			DoUpdates: clause.AssignmentColumns(append([]string{"main_color", "second_color"}, catalogSeedUpdates...)),
		}).
		Create(&rows).Error
	if err != nil {
		return fmt.Errorf("failed to upsert skin color catalog: %w", err)
	}
	return nil
}
