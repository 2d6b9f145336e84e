package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/IN4XI4/xlo-server/internal/api/shared/constants"
	"github.com/IN4XI4/xlo-server/internal/api/shared/dto"
	apierrors "github.com/IN4XI4/xlo-server/internal/api/shared/errors"
	"github.com/IN4XI4/xlo-server/internal/domain"
	"github.com/IN4XI4/xlo-server/internal/store"
)

// TokenIssuer signs session tokens for authenticated users
type TokenIssuer interface {
	Issue(userID int64) (token string, expiresAt time.Time, err error)
}

// Executor is the interface for the API executor. It carries the business
// logic shared by all transports and maps store errors to API errors.
type Executor interface {
	// Register creates an account, credits the starter balance, seeds the
	// starter avatar and returns a session token
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)

	// Login verifies credentials and returns a session token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)

	// GetProfile returns the authenticated user's account
	GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error)

	// ListCatalogItems lists active item catalog rows annotated with ownership
	ListCatalogItems(ctx context.Context, userID int64, filter store.ItemCatalogFilter) (*dto.CatalogItemListResponse, error)

	// ListCatalogColors lists active color catalog rows annotated with ownership
	ListCatalogColors(ctx context.Context, userID int64, limit, offset int) (*dto.CatalogColorListResponse, error)

	// ListCatalogSkinColors lists active skin color catalog rows annotated with ownership
	ListCatalogSkinColors(ctx context.Context, userID int64, limit, offset int) (*dto.CatalogSkinColorListResponse, error)

	// Buy runs the purchase transaction against one catalog kind
	Buy(ctx context.Context, userID int64, kind domain.CatalogKind, catalogID int64) (*dto.PurchaseResponse, error)

	// ListUnlockedItems lists the user's unlocked items, optionally by slot
	ListUnlockedItems(ctx context.Context, userID int64, itemType *domain.ItemType) (*dto.UnlockedItemListResponse, error)

	// GetGroupedUnlocks lists the user's unlocked items grouped by slot
	GetGroupedUnlocks(ctx context.Context, userID int64) (*dto.GroupedUnlocksResponse, error)

	// GetDefaultUnlocks returns the user's fallback unlock per slot for one body variant
	GetDefaultUnlocks(ctx context.Context, userID int64, avatarType domain.AvatarType) (*dto.DefaultUnlocksResponse, error)

	// GetUnlockedColors lists the user's unlocked colors and skin colors
	GetUnlockedColors(ctx context.Context, userID int64) (*dto.UnlockedColorsResponse, error)

	// GetAvatar returns the user's composed avatar
	GetAvatar(ctx context.Context, userID int64) (*dto.AvatarResponse, error)

	// UpdateAvatar applies a slot update after ownership validation
	UpdateAvatar(ctx context.Context, userID int64, req *dto.UpdateAvatarRequest) (*dto.AvatarResponse, error)

	// GetWalletBalance returns the user's coin balance
	GetWalletBalance(ctx context.Context, userID int64) (*dto.BalanceResponse, error)

	// ListWalletSpends returns the user's spend history, newest first
	ListWalletSpends(ctx context.Context, userID int64, limit, offset int) (*dto.SpendListResponse, error)

	// CreditWallet applies an idempotent balance credit
	CreditWallet(ctx context.Context, req *dto.CreditWalletRequest) (*dto.CreditWalletResponse, error)
}

type executor struct {
	store        store.Store
	issuer       TokenIssuer
	starterCoins int64
}

// NewExecutor creates the API executor
func NewExecutor(store store.Store, issuer TokenIssuer, starterCoins int64) Executor {
	return &executor{store: store, issuer: issuer, starterCoins: starterCoins}
}

func (e *executor) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apierrors.NewInternalError("Failed to hash password")
	}

	// The whole bootstrap runs in one store transaction: a catalog without
	// seeded defaults fails registration loudly and rolls back the user row,
	// so no account is ever left without an avatar and the email stays free.
	user, err := e.store.RegisterAccount(ctx, store.RegisterAccountInput{
		User: store.CreateUserInput{
			Email:        req.Email,
			Username:     req.Username,
			PasswordHash: string(hash),
			Birthday:     req.Birthday,
		},
		StarterCoins: e.starterCoins,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, apierrors.NewConflictError("Email already registered")
		}
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to register account: %v", err))
	}

	token, expiresAt, err := e.issuer.Issue(user.ID)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to issue token: %v", err))
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.MapUserToDTO(user),
	}, nil
}

func (e *executor) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := e.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user: %v", err))
	}
	if user == nil {
		return nil, apierrors.NewUnauthorizedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apierrors.NewUnauthorizedError("Invalid credentials")
	}

	token, expiresAt, err := e.issuer.Issue(user.ID)
	if err != nil {
		return nil, apierrors.NewInternalError(fmt.Sprintf("Failed to issue token: %v", err))
	}

	return &dto.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.MapUserToDTO(user),
	}, nil
}

func (e *executor) GetProfile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := e.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get user: %v", err))
	}
	if user == nil {
		return nil, apierrors.NewNotFoundError("User not found")
	}

	resp := dto.MapUserToDTO(user)
	return &resp, nil
}

func (e *executor) ListCatalogItems(ctx context.Context, userID int64, filter store.ItemCatalogFilter) (*dto.CatalogItemListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = constants.DEFAULT_CATALOG_LIMIT
	}

	rows, total, err := e.store.ListItemCatalog(ctx, userID, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list item catalog: %v", err))
	}

	items := make([]dto.CatalogItemResponse, len(rows))
	for i := range rows {
		items[i] = dto.MapAnnotatedItemToDTO(&rows[i])
	}

	return &dto.CatalogItemListResponse{
		Items:  items,
		Offset: nextOffset(filter.Offset, len(rows), total),
		Total:  total,
	}, nil
}

func (e *executor) ListCatalogColors(ctx context.Context, userID int64, limit, offset int) (*dto.CatalogColorListResponse, error) {
	if limit <= 0 {
		limit = constants.DEFAULT_CATALOG_LIMIT
	}

	rows, total, err := e.store.ListColorCatalog(ctx, userID, limit, offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list color catalog: %v", err))
	}

	colors := make([]dto.CatalogColorResponse, len(rows))
	for i := range rows {
		colors[i] = dto.MapAnnotatedColorToDTO(&rows[i])
	}

	return &dto.CatalogColorListResponse{
		Colors: colors,
		Offset: nextOffset(offset, len(rows), total),
		Total:  total,
	}, nil
}

func (e *executor) ListCatalogSkinColors(ctx context.Context, userID int64, limit, offset int) (*dto.CatalogSkinColorListResponse, error) {
	if limit <= 0 {
		limit = constants.DEFAULT_CATALOG_LIMIT
	}

	rows, total, err := e.store.ListSkinColorCatalog(ctx, userID, limit, offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list skin color catalog: %v", err))
	}

	skinColors := make([]dto.CatalogSkinColorResponse, len(rows))
	for i := range rows {
		skinColors[i] = dto.MapAnnotatedSkinColorToDTO(&rows[i])
	}

	return &dto.CatalogSkinColorListResponse{
		SkinColors: skinColors,
		Offset:     nextOffset(offset, len(rows), total),
		Total:      total,
	}, nil
}

func (e *executor) Buy(ctx context.Context, userID int64, kind domain.CatalogKind, catalogID int64) (*dto.PurchaseResponse, error) {
	var result *store.PurchaseResult
	var err error

	switch kind {
	case domain.CatalogKindItem:
		result, err = e.store.PurchaseItem(ctx, userID, catalogID)
	case domain.CatalogKindColor:
		result, err = e.store.PurchaseColor(ctx, userID, catalogID)
	case domain.CatalogKindSkinColor:
		result, err = e.store.PurchaseSkinColor(ctx, userID, catalogID)
	default:
		return nil, apierrors.NewBadRequestError(fmt.Sprintf("Unknown catalog kind: %s", kind))
	}

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCatalogItemNotFound):
			return nil, apierrors.NewNotFoundError("Catalog item not found")
		case errors.Is(err, domain.ErrAlreadyOwned):
			return nil, apierrors.NewConflictError("Catalog item already owned")
		case errors.Is(err, domain.ErrInsufficientCoins):
			return nil, apierrors.NewPaymentRequiredError("Insufficient coins")
		case errors.Is(err, domain.ErrUserNotFound):
			return nil, apierrors.NewNotFoundError("User not found")
		default:
			return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to purchase: %v", err))
		}
	}

	return &dto.PurchaseResponse{
		UnlockID:    result.UnlockID,
		CoinBalance: result.NewBalance,
		Reference:   result.SpendReference,
	}, nil
}

func (e *executor) ListUnlockedItems(ctx context.Context, userID int64, itemType *domain.ItemType) (*dto.UnlockedItemListResponse, error) {
	rows, err := e.store.ListUnlockedItems(ctx, userID, itemType)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list unlocked items: %v", err))
	}

	items := make([]dto.UnlockedItemResponse, len(rows))
	for i := range rows {
		items[i] = dto.MapUnlockedItemToDTO(&rows[i])
	}

	return &dto.UnlockedItemListResponse{Items: items}, nil
}

func (e *executor) GetGroupedUnlocks(ctx context.Context, userID int64) (*dto.GroupedUnlocksResponse, error) {
	rows, err := e.store.ListUnlockedItems(ctx, userID, nil)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list unlocked items: %v", err))
	}

	groups := make(map[domain.ItemType][]dto.UnlockedItemResponse)
	for i := range rows {
		itemType := rows[i].CatalogItem.ItemType
		groups[itemType] = append(groups[itemType], dto.MapUnlockedItemToDTO(&rows[i]))
	}

	return &dto.GroupedUnlocksResponse{Groups: groups}, nil
}

func (e *executor) GetDefaultUnlocks(ctx context.Context, userID int64, avatarType domain.AvatarType) (*dto.DefaultUnlocksResponse, error) {
	defaults, err := e.store.GetDefaultUnlocks(ctx, userID, avatarType)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get default unlocks: %v", err))
	}

	mapped := make(map[domain.ItemType]dto.UnlockedItemResponse, len(defaults))
	for itemType, row := range defaults {
		mapped[itemType] = dto.MapUnlockedItemToDTO(&row)
	}

	return &dto.DefaultUnlocksResponse{
		AvatarType: avatarType,
		Defaults:   mapped,
	}, nil
}

func (e *executor) GetUnlockedColors(ctx context.Context, userID int64) (*dto.UnlockedColorsResponse, error) {
	colors, err := e.store.ListUnlockedColors(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list unlocked colors: %v", err))
	}
	skinColors, err := e.store.ListUnlockedSkinColors(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list unlocked skin colors: %v", err))
	}

	colorDTOs := make([]dto.UnlockedColorResponse, len(colors))
	for i := range colors {
		colorDTOs[i] = dto.MapUnlockedColorToDTO(&colors[i])
	}
	skinDTOs := make([]dto.UnlockedSkinColorResponse, len(skinColors))
	for i := range skinColors {
		skinDTOs[i] = dto.MapUnlockedSkinColorToDTO(&skinColors[i])
	}

	return &dto.UnlockedColorsResponse{
		Colors:     colorDTOs,
		SkinColors: skinDTOs,
	}, nil
}

func (e *executor) GetAvatar(ctx context.Context, userID int64) (*dto.AvatarResponse, error) {
	avatar, err := e.store.GetAvatarByUserID(ctx, userID)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get avatar: %v", err))
	}
	if avatar == nil {
		return nil, apierrors.NewNotFoundError("Avatar not found")
	}

	return dto.MapAvatarToDTO(avatar), nil
}

func (e *executor) UpdateAvatar(ctx context.Context, userID int64, req *dto.UpdateAvatarRequest) (*dto.AvatarResponse, error) {
	input := store.UpdateAvatarInput{
		HairItemID:       req.HairItemID,
		HairColorID:      req.HairColorID,
		FaceItemID:       req.FaceItemID,
		EyesColorID:      req.EyesColorID,
		ShirtItemID:      req.ShirtItemID,
		ShirtColorID:     req.ShirtColorID,
		PantsItemID:      req.PantsItemID,
		PantsColorID:     req.PantsColorID,
		ShoesItemID:      req.ShoesItemID,
		ShoesColorID:     req.ShoesColorID,
		SkinColorID:      req.SkinColorID,
		AccessoryItemID:  req.AccessoryItemID,
		AccessoryColorID: req.AccessoryColorID,
		ClearAccessory:   req.ClearAccessory,
	}
	if req.AvatarType != nil {
		avatarType := domain.AvatarType(*req.AvatarType)
		input.AvatarType = &avatarType
	}

	avatar, err := e.store.UpdateAvatar(ctx, userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAvatarNotFound):
			return nil, apierrors.NewNotFoundError("Avatar not found")
		case errors.Is(err, domain.ErrUnlockNotOwned):
			return nil, apierrors.NewForbiddenError("Slot references an unlock you do not own")
		default:
			return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to update avatar: %v", err))
		}
	}

	return dto.MapAvatarToDTO(avatar), nil
}

func (e *executor) GetWalletBalance(ctx context.Context, userID int64) (*dto.BalanceResponse, error) {
	balance, err := e.store.GetCoinBalance(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apierrors.NewNotFoundError("User not found")
		}
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get balance: %v", err))
	}

	return &dto.BalanceResponse{CoinBalance: balance}, nil
}

func (e *executor) ListWalletSpends(ctx context.Context, userID int64, limit, offset int) (*dto.SpendListResponse, error) {
	if limit <= 0 {
		limit = constants.DEFAULT_LEDGER_LIMIT
	}

	rows, total, err := e.store.ListCoinSpends(ctx, userID, limit, offset)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list spends: %v", err))
	}

	spends := make([]dto.SpendResponse, len(rows))
	for i := range rows {
		spends[i] = dto.MapSpendToDTO(&rows[i])
	}

	return &dto.SpendListResponse{
		Spends: spends,
		Offset: nextOffset(offset, len(rows), total),
		Total:  total,
	}, nil
}

func (e *executor) CreditWallet(ctx context.Context, req *dto.CreditWalletRequest) (*dto.CreditWalletResponse, error) {
	result, err := e.store.CreditCoins(ctx, store.CreditCoinsInput{
		UserID:         req.UserID,
		Amount:         req.Amount,
		ReferenceID:    req.ReferenceID,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, apierrors.NewNotFoundError("User not found")
		}
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to credit wallet: %v", err))
	}

	return &dto.CreditWalletResponse{
		CoinBalance: result.NewBalance,
		Replayed:    result.Replayed,
	}, nil
}

// nextOffset computes the offset of the next page, nil when exhausted
func nextOffset(offset, pageLen int, total int64) *int {
	if int64(offset+pageLen) < total {
		next := offset + pageLen
		return &next
	}
	return nil
}
