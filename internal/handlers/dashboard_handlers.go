package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-api/internal/response"
)

// DashboardStats is the admin KPI payload.
type DashboardStats struct {
	TotalOrders    int     `json:"totalOrders"`
	PendingOrders  int     `json:"pendingOrders"`
	Revenue        float64 `json:"revenue"`
	TotalProducts  int     `json:"totalProducts"`
	LowStockCount  int     `json:"lowStockCount"`
	TotalCustomers int     `json:"totalCustomers"`
}

// GetDashboardStats returns KPI data for the admin dashboard
// GET /admin/dashboard-stats
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	s, err := h.Stats.Stats(c.Request.Context(), h.LowStockThreshold)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, "Dashboard stats retrieved", DashboardStats{
		TotalOrders:    s.TotalOrders,
		PendingOrders:  s.PendingOrders,
		Revenue:        money(s.Revenue),
		TotalProducts:  s.TotalProducts,
		LowStockCount:  s.LowStock,
		TotalCustomers: s.TotalCustomers,
	})
}
