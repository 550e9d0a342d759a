package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/modaflow/backend/internal/adapter/otel"
	"github.com/modaflow/backend/internal/domain"
	"github.com/modaflow/backend/internal/domain/authz"
	"github.com/modaflow/backend/internal/domain/order"
	"github.com/modaflow/backend/internal/domain/user"
	"github.com/modaflow/backend/internal/port/database"
	"github.com/modaflow/backend/internal/port/messagequeue"
)

// OrderEvent is the payload published on order lifecycle subjects and
// relayed to the admin live feed.
type OrderEvent struct {
	Type  string      `json:"type"`
	Order order.Order `json:"order"`
}

// OrderService runs the checkout workflow and order administration.
type OrderService struct {
	store   database.Store
	queue   messagequeue.Queue
	metrics *otel.Metrics
}

// NewOrderService creates a new OrderService. queue and metrics may be
// nil; order persistence never depends on them.
func NewOrderService(store database.Store, queue messagequeue.Queue, metrics *otel.Metrics) *OrderService {
	return &OrderService{store: store, queue: queue, metrics: metrics}
}

// Create runs checkout: it validates the submission against the live
// catalog, persists the order atomically, and renders the confirmation
// from the tenant's checkout configuration. It is publicly reachable;
// no authentication is required to place a bulk request.
func (s *OrderService) Create(ctx context.Context, req *order.CreateRequest) (*order.Order, *order.Confirmation, error) {
	started := time.Now()

	if err := req.Validate(); err != nil {
		s.countRejected(ctx)
		return nil, nil, err
	}

	t, err := s.store.GetTenant(ctx, req.TenantID)
	if err != nil {
		s.countRejected(ctx)
		return nil, nil, fmt.Errorf("tenant %s: %w", req.TenantID, err)
	}

	ids := uniqueProductIDs(req.Items)
	products, err := s.store.GetProductsByIDs(ctx, req.TenantID, ids)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve products: %w", err)
	}
	// The store only returns active products of this tenant, so a size
	// mismatch means at least one submitted id is unknown, inactive or
	// belongs to another tenant.
	if len(products) != len(ids) {
		s.countRejected(ctx)
		return nil, nil, fmt.Errorf("one or more products not found or inactive: %w", domain.ErrValidation)
	}

	byID := make(map[string]int, len(products))
	names := make(map[string]string, len(products))
	for _, p := range products {
		byID[p.ID] = p.MinQuantity
		names[p.ID] = p.Name
	}
	for _, it := range req.Items {
		if min := byID[it.ProductID]; it.Quantity < min {
			s.countRejected(ctx)
			return nil, nil, fmt.Errorf("minimum quantity for %s is %d: %w", names[it.ProductID], min, domain.ErrValidation)
		}
	}

	o := &order.Order{
		ID:            uuid.NewString(),
		Code:          order.NewCode(),
		TenantID:      req.TenantID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Total:         order.Total(req.Items),
		Status:        order.StatusPending,
		Items:         req.Items,
		CreatedAt:     time.Now(),
	}
	if err := s.store.CreateOrder(ctx, o); err != nil {
		return nil, nil, fmt.Errorf("create order: %w", err)
	}

	conf := order.BuildConfirmation(o, t, names)
	s.publish(ctx, messagequeue.SubjectOrderCreated, OrderEvent{Type: "order.created", Order: *o})

	if s.metrics != nil {
		s.metrics.OrdersCreated.Add(ctx, 1)
		s.metrics.CheckoutDuration.Record(ctx, time.Since(started).Seconds())
	}
	slog.Info("order created", "id", o.ID, "code", o.Code, "tenant", o.TenantID, "total", o.Total)
	return o, &conf, nil
}

// Get returns a single order, subject to per-order read rules: admins
// read everything, lojistas their tenant's orders, customers only
// orders placed under their own email.
func (s *OrderService) Get(ctx context.Context, caller *user.User, id string) (*order.Order, error) {
	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.CanReadOrder(roleOf(caller), tenantOf(caller), emailOf(caller), o.TenantID, o.CustomerEmail) {
		return nil, fmt.Errorf("order read: %w", domain.ErrForbidden)
	}
	return o, nil
}

// List returns orders visible to the caller: all of them for an admin,
// the caller's tenant for a lojista.
func (s *OrderService) List(ctx context.Context, caller *user.User) ([]order.Order, error) {
	switch {
	case authz.Authorize(roleOf(caller), tenantOf(caller), "", authz.OrderListAll):
		return s.store.ListOrders(ctx)
	case caller != nil && authz.Authorize(roleOf(caller), tenantOf(caller), tenantOf(caller), authz.OrderListTenant):
		return s.store.ListOrdersByTenant(ctx, caller.TenantID)
	default:
		return nil, fmt.Errorf("order list: %w", domain.ErrForbidden)
	}
}

// ListByTenant returns a tenant's orders for admin or that tenant's
// lojista.
func (s *OrderService) ListByTenant(ctx context.Context, caller *user.User, tenantID string) ([]order.Order, error) {
	if !authz.Authorize(roleOf(caller), tenantOf(caller), tenantID, authz.OrderListTenant) {
		return nil, fmt.Errorf("order list: %w", domain.ErrForbidden)
	}
	return s.store.ListOrdersByTenant(ctx, tenantID)
}

// UpdateStatus sets an order's status. Any status may replace any
// other; fulfilment is coordinated out of band between the lojista and
// the customer, so no transition graph is enforced.
func (s *OrderService) UpdateStatus(ctx context.Context, caller *user.User, id string, status order.Status) (*order.Order, error) {
	if !order.ValidStatuses[status] {
		return nil, fmt.Errorf("invalid status %q: %w", status, domain.ErrValidation)
	}

	o, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !authz.Authorize(roleOf(caller), tenantOf(caller), o.TenantID, authz.OrderUpdateStatus) {
		return nil, fmt.Errorf("order status update: %w", domain.ErrForbidden)
	}

	updated, err := s.store.UpdateOrderStatus(ctx, id, status)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	s.publish(ctx, messagequeue.SubjectOrderStatus, OrderEvent{Type: "order.status", Order: *updated})
	if s.metrics != nil {
		s.metrics.StatusUpdates.Add(ctx, 1)
	}
	slog.Info("order status updated", "id", id, "status", status)
	return updated, nil
}

// Delete permanently removes an order and its items. Admin only.
func (s *OrderService) Delete(ctx context.Context, caller *user.User, id string) error {
	if !authz.Authorize(roleOf(caller), tenantOf(caller), "", authz.OrderDelete) {
		return fmt.Errorf("order delete: %w", domain.ErrForbidden)
	}
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	slog.Info("order deleted", "id", id)
	return nil
}

// publish sends an order event best-effort. A broken or absent queue
// never fails the order flow.
func (s *OrderService) publish(ctx context.Context, subject string, ev OrderEvent) {
	if s.queue == nil {
		return
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if err := s.queue.Publish(ctx, subject, data); err != nil {
		slog.Warn("order event publish failed", "subject", subject, "error", err)
	}
}

func (s *OrderService) countRejected(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.OrdersRejected.Add(ctx, 1)
	}
}

func uniqueProductIDs(items []order.Item) []string {
	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}
	return ids
}

// emailOf returns the caller's email, or "" for anonymous requests.
func emailOf(caller *user.User) string {
	if caller == nil {
		return ""
	}
	return caller.Email
}
