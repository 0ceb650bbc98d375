package orders

import (
	"strings"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
)

// statusAliases maps legacy status names onto the canonical set.
var statusAliases = map[string]models.OrderStatus{
	"placed":     models.OrderPlaced,
	"pending":    models.OrderPlaced,
	"dipesan":    models.OrderPlaced,
	"processing": models.OrderProcessing,
	"diproses":   models.OrderProcessing,
	"shipped":    models.OrderShipped,
	"dikirim":    models.OrderShipped,
	"completed":  models.OrderCompleted,
	"sukses":     models.OrderCompleted,
	"cancelled":  models.OrderCancelled,
	"canceled":   models.OrderCancelled,
	"batal":      models.OrderCancelled,
}

// lifecycle lists the forward moves of the documented order lifecycle.
var lifecycle = map[models.OrderStatus][]models.OrderStatus{
	models.OrderPlaced:     {models.OrderProcessing, models.OrderCancelled},
	models.OrderProcessing: {models.OrderShipped, models.OrderCancelled},
	models.OrderShipped:    {models.OrderCompleted},
}

// ParseStatus resolves a canonical or legacy status name.
func ParseStatus(raw string) (models.OrderStatus, error) {
	s, ok := statusAliases[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return "", apperr.Validationf("invalid order status %q", raw)
	}
	return s, nil
}

// Terminal reports whether no lifecycle move leaves s.
func Terminal(s models.OrderStatus) bool {
	return len(lifecycle[s]) == 0
}

// CanTransition reports whether from -> to follows the documented lifecycle.
// Setting the same status again is allowed.
func CanTransition(from, to models.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range lifecycle[from] {
		if next == to {
			return true
		}
	}
	return false
}
