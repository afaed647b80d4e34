package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/http/response"
	"github.com/tilemart/storefront-backend/internal/services"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (ch *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := ch.catalogService.ListProducts(c.Request.Context(), c.Query("search"), c.Query("category"))
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"products": products})
}

func (ch *CatalogHandler) GetProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	product, err := ch.catalogService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, product)
}

func (ch *CatalogHandler) CreateProduct(c *gin.Context) {
	var req struct {
		SKU         string         `json:"sku"`
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Category    string         `json:"category"`
		UnitPrice   *string        `json:"unit_price"`
		ImageURL    string         `json:"image_url"`
		Attributes  datatypes.JSON `json:"attributes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	var unitPrice *decimal.Decimal
	if req.UnitPrice != nil {
		d, err := decimal.NewFromString(*req.UnitPrice)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_unit_price", err)
			return
		}
		unitPrice = &d
	}

	product := &types.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		UnitPrice:   unitPrice,
		ImageURL:    req.ImageURL,
		Attributes:  req.Attributes,
	}
	created, err := ch.catalogService.CreateProduct(c.Request.Context(), product)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, created)
}

func (ch *CatalogHandler) DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	if err := ch.catalogService.DeleteProduct(c.Request.Context(), productID); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}
