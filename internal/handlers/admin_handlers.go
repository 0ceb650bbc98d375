package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-api/internal/response"
)

//
// --- Admin Handlers ---
//

// AdminListProducts is the handler for GET /admin/products. Unlike the
// public listing it includes inactive products.
func (h *Handlers) AdminListProducts(c *gin.Context) {
	list, err := h.Catalog.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Products retrieved", list)
}

// StockInput is the body of POST /admin/stock.
type StockInput struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Note      string `json:"note"`
}

// AdjustStock is the handler for POST /admin/stock.
func (h *Handlers) AdjustStock(c *gin.Context) {
	var input StockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	stock, err := h.Catalog.AdjustStock(c.Request.Context(), input.ProductID, input.Type, input.Quantity, input.Note)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Stock updated", gin.H{"product_id": input.ProductID, "stock": stock})
}

// ListCustomers is the handler for GET /admin/customers.
func (h *Handlers) ListCustomers(c *gin.Context) {
	list, err := h.Users.ListCustomers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Customers retrieved", list)
}

// DeleteCustomer is the handler for DELETE /admin/customers/:id.
func (h *Handlers) DeleteCustomer(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Users.DeleteCustomer(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Customer deleted", nil)
}
