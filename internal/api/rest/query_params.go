package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/IN4XI4/xlo-server/internal/domain"
)

const MAX_PAGE_SIZE = 100

// ListCatalogItemsQueryParams holds query parameters for GET /catalog/items
type ListCatalogItemsQueryParams struct {
	// Filters
	ItemType   string `form:"item_type"`
	AvatarType string `form:"avatar_type"`

	// Pagination
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// Validate validates the item catalog query parameters
func (p *ListCatalogItemsQueryParams) Validate() error {
	if p.ItemType != "" && !domain.IsValidItemType(domain.ItemType(p.ItemType)) {
		return fmt.Errorf("invalid item_type: %s", p.ItemType)
	}
	if p.AvatarType != "" && !domain.IsValidAvatarType(domain.AvatarType(p.AvatarType)) {
		return fmt.Errorf("invalid avatar_type: %s", p.AvatarType)
	}
	return nil
}

// ParseListCatalogItemsQuery parses query parameters for GET /catalog/items
func ParseListCatalogItemsQuery(c *gin.Context) (*ListCatalogItemsQueryParams, error) {
	var params ListCatalogItemsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Cap limit
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	return &params, nil
}

// PageQueryParams holds plain pagination parameters
type PageQueryParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ParsePageQuery parses plain pagination parameters
func ParsePageQuery(c *gin.Context) (*PageQueryParams, error) {
	var params PageQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	return &params, nil
}
