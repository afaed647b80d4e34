package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/tilemart/storefront-backend/internal/domain"
	"github.com/tilemart/storefront-backend/internal/http/response"
	"github.com/tilemart/storefront-backend/internal/services"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

type cartPayload struct {
	Items     []types.CartItem `json:"items"`
	Total     string           `json:"total"`
	ItemCount int              `json:"item_count"`
}

func cartResponse(cart *types.Cart) cartPayload {
	items := cart.Items
	if items == nil {
		items = []types.CartItem{}
	}
	return cartPayload{
		Items:     items,
		Total:     cart.Total().StringFixed(2),
		ItemCount: cart.ItemCount(),
	}
}

func (ch *CartHandler) GetCart(c *gin.Context) {
	cart, err := ch.cartService.GetCart(c.Request.Context())
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, cartResponse(cart))
}

func (ch *CartHandler) AddItem(c *gin.Context) {
	var req struct {
		ProductID string `json:"product_id"`
		// Omitted quantity means one.
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	cart, err := ch.cartService.AddItem(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, cartResponse(cart))
}

func (ch *CartHandler) UpdateItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	cart, err := ch.cartService.UpdateQuantity(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, cartResponse(cart))
}

func (ch *CartHandler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_product_id", err)
		return
	}
	cart, err := ch.cartService.RemoveItem(c.Request.Context(), productID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, cartResponse(cart))
}

func (ch *CartHandler) ClearCart(c *gin.Context) {
	if err := ch.cartService.ClearCart(c.Request.Context()); err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, cartResponse(&types.Cart{}))
}
