package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-api/internal/catalog"
	"github.com/01moynul/storefront-api/internal/response"
)

//
// --- Product Handlers ---
//

// ProductInput is the body of product create and update requests.
type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	Status      string          `json:"status"`
	ImagePath   string          `json:"image_path"`
}

func (in ProductInput) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:        in.Name,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Stock:       in.Stock,
		Status:      in.Status,
		ImagePath:   in.ImagePath,
	}
}

// ListProducts is the handler for GET /products (active products only).
func (h *Handlers) ListProducts(c *gin.Context) {
	list, err := h.Catalog.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Products retrieved", list)
}

// GetProduct is the handler for GET /products/:id.
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	p, err := h.Catalog.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Product retrieved", p)
}

// CreateProduct is the handler for POST /products (admin).
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	p, err := h.Catalog.Create(c.Request.Context(), input.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, "Product created", p)
}

// UpdateProduct is the handler for PUT /products/:id (admin).
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}
	p, err := h.Catalog.Update(c.Request.Context(), id, input.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Product updated", p)
}

// DeleteProduct is the handler for DELETE /products/:id (admin). Products
// are deactivated, not removed, so past order lines keep their names.
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Catalog.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Product deleted", nil)
}
