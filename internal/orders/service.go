package orders

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/01moynul/storefront-api/internal/apperr"
	"github.com/01moynul/storefront-api/internal/models"
)

// Options tunes the order workflow.
type Options struct {
	// DefaultPaymentMethod is recorded when a request names none.
	DefaultPaymentMethod string
	// TrustClientPrices keeps client-supplied unit prices. When false every
	// line is priced from the catalog.
	TrustClientPrices bool
}

// Item is one requested order line. UnitPrice is the optional
// client-supplied price.
type Item struct {
	ProductID int64
	Quantity  int
	UnitPrice *decimal.Decimal
}

// Recipient carries the shipping profile fields of a request.
type Recipient struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
}

func (r *Recipient) empty() bool {
	return r == nil || (r.FirstName == "" && r.LastName == "" && r.Phone == "" && r.Address == "")
}

// PlaceOrderRequest holds the input for placing an order. With UseCart the
// items are read from the user's cart and Items is ignored.
type PlaceOrderRequest struct {
	UserID          int64
	UseCart         bool
	Items           []Item
	Recipient       *Recipient
	ShippingAddress string
	ShippingCost    *decimal.Decimal
	PaymentMethod   string
}

// PlaceOrderResult holds the output of a successfully placed order.
type PlaceOrderResult struct {
	Order *models.Order
	Items []models.OrderItem
	// Skipped lists product ids that no longer resolve in the catalog.
	Skipped []int64
}

// OrderDetail is an order with its lines.
type OrderDetail struct {
	models.Order
	Items []models.OrderItemDetail `json:"items"`
}

// Viewer identifies the caller of an order read.
type Viewer struct {
	UserID  int64
	IsAdmin bool
}

// Service encapsulates order placement and lifecycle logic.
type Service struct {
	uow    UnitOfWork
	orders Repository
	opts   Options
}

func NewService(uow UnitOfWork, orders Repository, opts Options) *Service {
	if opts.DefaultPaymentMethod == "" {
		opts.DefaultPaymentMethod = "cash"
	}
	return &Service{uow: uow, orders: orders, opts: opts}
}

// PlaceOrder validates the request, prices every line, and persists the
// profile, order header, order lines and cart clear in one transaction.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if err := s.validate(&req); err != nil {
		return nil, err
	}

	var result *PlaceOrderResult
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		// 1. --- Resolve Items ---
		items := req.Items
		if req.UseCart {
			cartItems, err := r.Cart.Items(ctx, req.UserID, true)
			if err != nil {
				return err
			}
			if len(cartItems) == 0 {
				return apperr.ErrEmptyCart
			}
			items = make([]Item, 0, len(cartItems))
			for _, ci := range cartItems {
				items = append(items, Item{ProductID: ci.ProductID, Quantity: ci.Quantity})
			}
		}

		// 2. --- Price Items ---
		lines, skipped, err := s.price(ctx, r.Catalog, items)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperr.ErrEmptyCart
		}

		// 3. --- Compute Totals ---
		subtotal := decimal.Zero
		for _, l := range lines {
			subtotal = subtotal.Add(l.Subtotal)
		}
		shipping := decimal.Zero
		if req.ShippingCost != nil {
			shipping = *req.ShippingCost
		}
		subtotal = subtotal.Round(2)
		shipping = shipping.Round(2)

		// 4. --- Upsert Shipping Profile ---
		if !req.Recipient.empty() {
			if err := r.Profiles.Upsert(ctx, &models.ShippingProfile{
				UserID:    req.UserID,
				FirstName: req.Recipient.FirstName,
				LastName:  req.Recipient.LastName,
				Phone:     req.Recipient.Phone,
				Address:   req.Recipient.Address,
			}); err != nil {
				return err
			}
		}

		// 5. --- Create Order Header ---
		o := &models.Order{
			UserID:          req.UserID,
			Subtotal:        subtotal,
			ShippingCost:    shipping,
			GrandTotal:      subtotal.Add(shipping),
			Status:          models.OrderPlaced,
			PaymentMethod:   req.PaymentMethod,
			ShippingAddress: req.ShippingAddress,
		}
		if !req.Recipient.empty() {
			name := (models.ShippingProfile{FirstName: req.Recipient.FirstName, LastName: req.Recipient.LastName}).FullName()
			o.RecipientName = &name
			o.RecipientPhone = &req.Recipient.Phone
		}
		if err := r.Orders.Create(ctx, o); err != nil {
			return err
		}

		// 6. --- Snapshot Order Items ---
		for i := range lines {
			lines[i].OrderID = o.ID
			if err := r.Orders.AddItem(ctx, &lines[i]); err != nil {
				return err
			}
		}

		// 7. --- Clear the Cart ---
		if req.UseCart {
			if err := r.Cart.Clear(ctx, req.UserID); err != nil {
				return err
			}
		}

		result = &PlaceOrderResult{Order: o, Items: lines, Skipped: skipped}
		return nil
	})
	if err != nil {
		return nil, err
	}

	lg := zctx.From(ctx)
	if len(result.Skipped) > 0 {
		lg.Warn("Skipped unresolvable products",
			zap.Int64("order_id", result.Order.ID),
			zap.Int64s("product_ids", result.Skipped),
		)
	}
	lg.Info("Order placed",
		zap.Int64("order_id", result.Order.ID),
		zap.Int64("user_id", req.UserID),
		zap.String("grand_total", result.Order.GrandTotal.StringFixed(2)),
		zap.Bool("from_cart", req.UseCart),
	)
	return result, nil
}

// validate checks the request and fills defaults in place.
func (s *Service) validate(req *PlaceOrderRequest) error {
	if req.UserID <= 0 {
		return apperr.Auth("user is not authenticated")
	}
	if req.ShippingCost != nil && req.ShippingCost.IsNegative() {
		return apperr.Validation("shipping cost must not be negative")
	}
	if !req.UseCart {
		if len(req.Items) == 0 {
			return apperr.ErrEmptyCart
		}
		for _, it := range req.Items {
			if it.ProductID <= 0 {
				return apperr.Validation("product id is required for every item")
			}
			if it.Quantity < 1 {
				return apperr.Validationf("quantity must be at least 1 for product %d", it.ProductID)
			}
			if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
				return apperr.Validationf("unit price must not be negative for product %d", it.ProductID)
			}
		}
	}

	if r := req.Recipient; !r.empty() {
		r.FirstName = strings.TrimSpace(r.FirstName)
		r.LastName = strings.TrimSpace(r.LastName)
		r.Phone = strings.TrimSpace(r.Phone)
		r.Address = strings.TrimSpace(r.Address)
		if r.FirstName == "" || r.Phone == "" || r.Address == "" {
			return apperr.Validation("first name, phone and address are required for the recipient")
		}
		if r.LastName == "" {
			r.LastName = "-"
		}
		if req.ShippingAddress == "" {
			req.ShippingAddress = r.Address
		}
	}

	req.ShippingAddress = strings.TrimSpace(req.ShippingAddress)
	if req.ShippingAddress == "" {
		return apperr.Validation("shipping address is required")
	}
	if req.PaymentMethod = strings.TrimSpace(req.PaymentMethod); req.PaymentMethod == "" {
		req.PaymentMethod = s.opts.DefaultPaymentMethod
	}
	return nil
}

// price resolves the unit price of every item. Items whose product no
// longer resolves are returned in skipped instead of failing the order.
func (s *Service) price(ctx context.Context, catalog Catalog, items []Item) (lines []models.OrderItem, skipped []int64, err error) {
	lg := zctx.From(ctx)
	for _, it := range items {
		catalogPrice, found, err := catalog.PriceOf(ctx, it.ProductID)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "price product %d", it.ProductID)
		}
		if !found {
			skipped = append(skipped, it.ProductID)
			continue
		}

		unit := catalogPrice
		if it.UnitPrice != nil && !it.UnitPrice.Equal(catalogPrice) {
			lg.Warn("Client price differs from catalog",
				zap.Int64("product_id", it.ProductID),
				zap.String("client_price", it.UnitPrice.String()),
				zap.String("catalog_price", catalogPrice.String()),
				zap.Bool("trusted", s.opts.TrustClientPrices),
			)
			if s.opts.TrustClientPrices {
				// Stored as DECIMAL(12,2); round first so subtotal = unit price x quantity holds.
				unit = it.UnitPrice.Round(2)
			}
		}

		lines = append(lines, models.OrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			Subtotal:  unit.Mul(decimal.NewFromInt(int64(it.Quantity))).Round(2),
		})
	}
	return lines, skipped, nil
}

// ListOrders returns the orders of one user, newest first.
func (s *Service) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll returns every order for the admin console.
func (s *Service) ListAll(ctx context.Context) ([]models.OrderSummary, error) {
	return s.orders.ListAll(ctx)
}

// GetOrder returns an order with its lines. Orders of other users are
// reported as missing unless the viewer is an admin.
func (s *Service) GetOrder(ctx context.Context, v Viewer, id int64) (*OrderDetail, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !v.IsAdmin && o.UserID != v.UserID {
		return nil, apperr.NotFound("order not found")
	}
	items, err := s.orders.Items(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *o, Items: items}, nil
}

// UpdateStatus validates the target status and persists it. Moves outside
// the documented lifecycle are logged but not rejected.
func (s *Service) UpdateStatus(ctx context.Context, id int64, raw string) (models.OrderStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperr.Validation("status is required")
	}
	next, err := ParseStatus(raw)
	if err != nil {
		return "", err
	}

	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if err := s.orders.SetStatus(ctx, id, next); err != nil {
		return "", err
	}

	lg := zctx.From(ctx).With(zap.Int64("order_id", id), zap.String("from", string(o.Status)), zap.String("to", string(next)))
	if !CanTransition(o.Status, next) {
		lg.Warn("Order status moved outside lifecycle")
	} else {
		lg.Info("Order status updated")
	}
	return next, nil
}

// Cancel marks an order cancelled. Customers may cancel only their own orders.
func (s *Service) Cancel(ctx context.Context, v Viewer, id int64) error {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return err
	}
	if !v.IsAdmin && o.UserID != v.UserID {
		return apperr.NotFound("order not found")
	}
	if err := s.orders.SetStatus(ctx, id, models.OrderCancelled); err != nil {
		return err
	}
	if !CanTransition(o.Status, models.OrderCancelled) {
		zctx.From(ctx).Warn("Order status moved outside lifecycle",
			zap.Int64("order_id", id),
			zap.String("from", string(o.Status)),
			zap.String("to", string(models.OrderCancelled)),
		)
	}
	return nil
}
