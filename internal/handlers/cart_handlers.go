package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-api/internal/middleware"
	"github.com/01moynul/storefront-api/internal/response"
)

//
// --- Cart Handlers ---
//

// AddToCartInput defines the JSON for adding an item to the cart.
type AddToCartInput struct {
	ProductID  int64 `json:"product_id"`
	IDProduk   int64 `json:"idProduk"`
	Quantity   int   `json:"quantity"`
	QtyPesanan int   `json:"qtyPesanan"`
}

// GetCart is the handler for GET /cart.
func (h *Handlers) GetCart(c *gin.Context) {
	summary, err := h.Cart.Get(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Cart retrieved", summary)
}

// AddToCart is the handler for POST /cart. Adding a product already in the
// cart increases its quantity.
func (h *Handlers) AddToCart(c *gin.Context) {
	var input AddToCartInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	productID := input.ProductID
	if productID == 0 {
		productID = input.IDProduk
	}
	qty := input.Quantity
	if qty == 0 {
		qty = input.QtyPesanan
	}

	if err := h.Cart.Add(c.Request.Context(), middleware.UserID(c), productID, qty); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Item added to cart", gin.H{"product_id": productID, "quantity": qty})
}

type updateCartItemInput struct {
	Quantity int `json:"quantity"`
}

// UpdateCartItem is the handler for PUT /cart/:itemId.
func (h *Handlers) UpdateCartItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var input updateCartItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	if err := h.Cart.UpdateQuantity(c.Request.Context(), middleware.UserID(c), itemID, input.Quantity); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Cart item updated", gin.H{"id": itemID, "quantity": input.Quantity})
}

// RemoveCartItem is the handler for DELETE /cart/:itemId.
func (h *Handlers) RemoveCartItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	if err := h.Cart.Remove(c.Request.Context(), middleware.UserID(c), itemID); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Cart item removed", nil)
}

// ClearCart is the handler for DELETE /cart.
func (h *Handlers) ClearCart(c *gin.Context) {
	if err := h.Cart.Clear(c.Request.Context(), middleware.UserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Cart cleared", nil)
}
