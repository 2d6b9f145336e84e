package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/IN4XI4/xlo-server/internal/api/middleware"
	"github.com/IN4XI4/xlo-server/internal/api/shared/dto"
	"github.com/IN4XI4/xlo-server/internal/api/shared/executor"
	"github.com/IN4XI4/xlo-server/internal/domain"
	"github.com/IN4XI4/xlo-server/internal/store"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// Register creates an account and returns a session token
	// POST /api/v1/auth/register
	Register(c *gin.Context)

	// Login verifies credentials and returns a session token
	// POST /api/v1/auth/login
	Login(c *gin.Context)

	// GetProfile returns the authenticated user's account
	// GET /api/v1/auth/me
	GetProfile(c *gin.Context)

	// ListCatalogItems lists active item catalog rows annotated with ownership
	// GET /api/v1/catalog/items?item_type=<slot>&avatar_type=<variant>&limit=<limit>&offset=<offset>
	ListCatalogItems(c *gin.Context)

	// ListCatalogColors lists active color catalog rows annotated with ownership
	// GET /api/v1/catalog/colors?limit=<limit>&offset=<offset>
	ListCatalogColors(c *gin.Context)

	// ListCatalogSkinColors lists active skin color catalog rows annotated with ownership
	// GET /api/v1/catalog/skin-colors?limit=<limit>&offset=<offset>
	ListCatalogSkinColors(c *gin.Context)

	// BuyItem purchases an item catalog entry
	// POST /api/v1/catalog/items/:id/buy
	BuyItem(c *gin.Context)

	// BuyColor purchases a color catalog entry
	// POST /api/v1/catalog/colors/:id/buy
	BuyColor(c *gin.Context)

	// BuySkinColor purchases a skin color catalog entry
	// POST /api/v1/catalog/skin-colors/:id/buy
	BuySkinColor(c *gin.Context)

	// ListUnlockedItems lists the user's owned items
	// GET /api/v1/unlocks/items?item_type=<slot>
	ListUnlockedItems(c *gin.Context)

	// GetGroupedUnlocks lists the user's owned items grouped by slot
	// GET /api/v1/unlocks/items/grouped
	GetGroupedUnlocks(c *gin.Context)

	// GetDefaultUnlocks returns the user's fallback unlock per slot for one body variant
	// GET /api/v1/unlocks/items/defaults?avatar_type=<variant>
	GetDefaultUnlocks(c *gin.Context)

	// GetUnlockedColors lists the user's owned colors and skin colors
	// GET /api/v1/unlocks/colors
	GetUnlockedColors(c *gin.Context)

	// GetAvatar returns the user's composed avatar
	// GET /api/v1/avatar/my-avatar
	GetAvatar(c *gin.Context)

	// UpdateAvatar applies a slot update after ownership validation
	// PUT /api/v1/avatar
	UpdateAvatar(c *gin.Context)

	// GetWalletBalance returns the user's coin balance
	// GET /api/v1/wallet/balance
	GetWalletBalance(c *gin.Context)

	// ListWalletSpends returns the user's spend history, newest first
	// GET /api/v1/wallet/ledger?limit=<limit>&offset=<offset>
	ListWalletSpends(c *gin.Context)

	// CreditWallet applies an idempotent balance credit (API key required)
	// POST /api/v1/wallet/credit
	CreditWallet(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{executor: exec}
}

// currentUserID extracts the authenticated user id or aborts with 401
func currentUserID(c *gin.Context) (int64, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		respondUnauthorized(c, "Authentication required")
		return 0, false
	}
	return userID, true
}

// catalogID parses the :id path parameter
func catalogID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid catalog id")
		return 0, false
	}
	return id, true
}

// Register creates an account and returns a session token
func (h *handler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login verifies credentials and returns a session token
func (h *handler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetProfile returns the authenticated user's account
func (h *handler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := h.executor.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListCatalogItems lists active item catalog rows annotated with ownership
func (h *handler) ListCatalogItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	queryParams, err := ParseListCatalogItemsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}
	if err := queryParams.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	filter := store.ItemCatalogFilter{
		Limit:  queryParams.Limit,
		Offset: queryParams.Offset,
	}
	if queryParams.ItemType != "" {
		itemType := domain.ItemType(queryParams.ItemType)
		filter.ItemType = &itemType
	}
	if queryParams.AvatarType != "" {
		avatarType := domain.AvatarType(queryParams.AvatarType)
		filter.AvatarType = &avatarType
	}

	response, err := h.executor.ListCatalogItems(c.Request.Context(), userID, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListCatalogColors lists active color catalog rows annotated with ownership
func (h *handler) ListCatalogColors(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	queryParams, err := ParsePageQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListCatalogColors(c.Request.Context(), userID, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListCatalogSkinColors lists active skin color catalog rows annotated with ownership
func (h *handler) ListCatalogSkinColors(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	queryParams, err := ParsePageQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListCatalogSkinColors(c.Request.Context(), userID, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// buy runs the purchase for one catalog kind; the three Buy handlers only
// differ in the kind they pass
func (h *handler) buy(c *gin.Context, kind domain.CatalogKind) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, ok := catalogID(c)
	if !ok {
		return
	}

	response, err := h.executor.Buy(c.Request.Context(), userID, kind, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// BuyItem purchases an item catalog entry
func (h *handler) BuyItem(c *gin.Context) {
	h.buy(c, domain.CatalogKindItem)
}

// BuyColor purchases a color catalog entry
func (h *handler) BuyColor(c *gin.Context) {
	h.buy(c, domain.CatalogKindColor)
}

// BuySkinColor purchases a skin color catalog entry
func (h *handler) BuySkinColor(c *gin.Context) {
	h.buy(c, domain.CatalogKindSkinColor)
}

// ListUnlockedItems lists the user's owned items
func (h *handler) ListUnlockedItems(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var itemType *domain.ItemType
	if raw := c.Query("item_type"); raw != "" {
		parsed := domain.ItemType(raw)
		if !domain.IsValidItemType(parsed) {
			respondValidationError(c, fmt.Sprintf("invalid item_type: %s", raw))
			return
		}
		itemType = &parsed
	}

	response, err := h.executor.ListUnlockedItems(c.Request.Context(), userID, itemType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetGroupedUnlocks lists the user's owned items grouped by slot
func (h *handler) GetGroupedUnlocks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := h.executor.GetGroupedUnlocks(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetDefaultUnlocks returns the user's fallback unlock per slot for one body variant
func (h *handler) GetDefaultUnlocks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	raw := c.Query("avatar_type")
	if raw == "" {
		respondBadRequest(c, "avatar_type is required")
		return
	}
	avatarType := domain.AvatarType(raw)
	if !domain.IsValidAvatarType(avatarType) {
		respondValidationError(c, fmt.Sprintf("invalid avatar_type: %s", avatarType))
		return
	}

	response, err := h.executor.GetDefaultUnlocks(c.Request.Context(), userID, avatarType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetUnlockedColors lists the user's owned colors and skin colors
func (h *handler) GetUnlockedColors(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := h.executor.GetUnlockedColors(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetAvatar returns the user's composed avatar
func (h *handler) GetAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := h.executor.GetAvatar(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateAvatar applies a slot update after ownership validation
func (h *handler) UpdateAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.UpdateAvatar(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetWalletBalance returns the user's coin balance
func (h *handler) GetWalletBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	response, err := h.executor.GetWalletBalance(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListWalletSpends returns the user's spend history, newest first
func (h *handler) ListWalletSpends(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	queryParams, err := ParsePageQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.ListWalletSpends(c.Request.Context(), userID, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// CreditWallet applies an idempotent balance credit (API key required)
func (h *handler) CreditWallet(c *gin.Context) {
	var req dto.CreditWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	if err := req.Validate(); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	response, err := h.executor.CreditWallet(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"service": "xlo-api",
	})
}
