package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/middleware"
	"github.com/01moynul/storefront-api/internal/orders"
	"github.com/01moynul/storefront-api/internal/response"
)

//
// --- Order Handlers ---
//

// orderItemInput accepts both the English and the legacy field names.
type orderItemInput struct {
	ProductID   int64            `json:"product_id"`
	IDProduk    int64            `json:"idProduk"`
	Quantity    int              `json:"quantity"`
	QtyPesanan  int              `json:"qtyPesanan"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
	HargaSatuan *decimal.Decimal `json:"hargaSatuan"`
}

// PlaceOrderInput is the body of POST /orders.
type PlaceOrderInput struct {
	UserID          *int64           `json:"userId"`
	ShippingAddress string           `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
	Items           []orderItemInput `json:"items"`

	FirstName    string `json:"first_name"`
	NamaDepan    string `json:"namaDepan"`
	LastName     string `json:"last_name"`
	NamaBelakang string `json:"namaBelakang"`
	Phone        string `json:"phone"`
	NoTelp       string `json:"no_telp"`
	Address      string `json:"address"`
	Alamat       string `json:"alamat"`

	ShippingCost *decimal.Decimal `json:"shipping_cost"`
	Ongkir       *decimal.Decimal `json:"ongkir"`
}

// PlaceOrderOutput is the 201 payload. Legacy keys are mirrored for older
// clients.
type PlaceOrderOutput struct {
	OrderID         int64   `json:"order_id"`
	IDPemesanan     int64   `json:"idPemesanan"`
	Subtotal        float64 `json:"subtotal"`
	Total           float64 `json:"total"`
	TotalBelanja    float64 `json:"totalBelanja"`
	ShippingCost    float64 `json:"shipping_cost"`
	Ongkir          float64 `json:"ongkir"`
	GrandTotal      float64 `json:"grand_total"`
	GrandTotalAlias float64 `json:"grandTotal"`
	Status          string  `json:"status"`
	PaymentMethod   string  `json:"payment_method"`
	SkippedProducts []int64 `json:"skipped_products"`
}

func firstOf(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// toRequest maps the body onto a workflow request for userID.
func (in *PlaceOrderInput) toRequest(userID int64) orders.PlaceOrderRequest {
	req := orders.PlaceOrderRequest{
		UserID:          userID,
		UseCart:         len(in.Items) == 0,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		ShippingCost:    in.ShippingCost,
	}
	if req.ShippingCost == nil {
		req.ShippingCost = in.Ongkir
	}

	for _, it := range in.Items {
		item := orders.Item{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice}
		if item.ProductID == 0 {
			item.ProductID = it.IDProduk
		}
		if item.Quantity == 0 {
			item.Quantity = it.QtyPesanan
		}
		if item.UnitPrice == nil {
			item.UnitPrice = it.HargaSatuan
		}
		req.Items = append(req.Items, item)
	}

	r := &orders.Recipient{
		FirstName: firstOf(in.FirstName, in.NamaDepan),
		LastName:  firstOf(in.LastName, in.NamaBelakang),
		Phone:     firstOf(in.Phone, in.NoTelp),
		Address:   firstOf(in.Address, in.Alamat),
	}
	if *r != (orders.Recipient{}) {
		req.Recipient = r
	}
	return req
}

// PlaceOrder is the handler for POST /orders.
// Without items the user's cart is checked out.
func (h *Handlers) PlaceOrder(c *gin.Context) {
	// 1. --- Bind Input ---
	var input PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	// 2. --- Resolve the Ordering User ---
	userID := middleware.UserID(c)
	if input.UserID != nil && *input.UserID != userID {
		if !middleware.IsAdmin(c) {
			response.Error(c, apperr.Auth("userId does not match the authenticated user"))
			return
		}
		userID = *input.UserID
	}

	// 3. --- Run the Workflow ---
	res, err := h.Orders.PlaceOrder(c.Request.Context(), input.toRequest(userID))
	if err != nil {
		response.Error(c, err)
		return
	}

	// 4. --- Shape the Response ---
	o := res.Order
	out := PlaceOrderOutput{
		OrderID:         o.ID,
		IDPemesanan:     o.ID,
		Subtotal:        money(o.Subtotal),
		Total:           money(o.Subtotal),
		TotalBelanja:    money(o.Subtotal),
		ShippingCost:    money(o.ShippingCost),
		Ongkir:          money(o.ShippingCost),
		GrandTotal:      money(o.GrandTotal),
		GrandTotalAlias: money(o.GrandTotal),
		Status:          string(o.Status),
		PaymentMethod:   o.PaymentMethod,
		SkippedProducts: res.Skipped,
	}
	if out.SkippedProducts == nil {
		out.SkippedProducts = []int64{}
	}
	response.OK(c, http.StatusCreated, "Order created successfully", out)
}

// ListOrders is the handler for GET /orders.
func (h *Handlers) ListOrders(c *gin.Context) {
	list, err := h.Orders.ListOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Orders retrieved", list)
}

// GetOrder is the handler for GET /orders/:id.
func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := h.Orders.GetOrder(c.Request.Context(), viewer(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Order retrieved", detail)
}

type updateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus is the handler for PUT /orders/:id (admin).
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var input updateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindError(c, err)
		return
	}

	status, err := h.Orders.UpdateStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Order status updated", gin.H{"order_id": id, "status": status})
}

// CancelOrder is the handler for DELETE /orders/:id.
func (h *Handlers) CancelOrder(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.Orders.Cancel(c.Request.Context(), viewer(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Order cancelled", gin.H{"order_id": id})
}

// AdminListOrders is the handler for GET /admin/orders.
func (h *Handlers) AdminListOrders(c *gin.Context) {
	list, err := h.Orders.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Orders retrieved", list)
}
