package orders

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/deliciarte/internal/domain/models"
	"github.com/mamadbah2/deliciarte/internal/repository"
)

// Service manages the order calendar.
type Service struct {
	store    repository.OrderStore
	location *time.Location
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires a new order service instance. Dates such as "today" are
// taken in location, time.Local when nil.
func NewService(store repository.OrderStore, location *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.Local
	}
	return &Service{store: store, location: location, logger: logger, now: time.Now, newID: uuid.NewString}
}

func (s *Service) today() time.Time {
	return s.now().In(s.location)
}

// Create registers an order. Status defaults to Pendente and the order date to today.
func (s *Service) Create(ctx context.Context, order models.Order) (models.Order, error) {
	if err := s.normalize(&order); err != nil {
		return models.Order{}, err
	}

	order.ID = s.newID()
	if order.OrderDate == "" {
		order.OrderDate = s.today().Format(models.DateLayout)
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("create order: %w", err)
	}

	s.logger.Info("order registered",
		zap.String("id", order.ID),
		zap.String("customer", order.Customer),
		zap.String("product", order.Product),
		zap.String("delivery_date", order.DeliveryDate))
	return order, nil
}

// Update replaces every field of an existing order.
func (s *Service) Update(ctx context.Context, id string, order models.Order) (models.Order, error) {
	existing, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	if err := s.normalize(&order); err != nil {
		return models.Order{}, err
	}

	order.ID = id
	if order.OrderDate == "" {
		order.OrderDate = existing.OrderDate
	}

	if err := s.store.UpdateOrder(ctx, order); err != nil {
		return models.Order{}, fmt.Errorf("update order %s: %w", id, err)
	}
	return order, nil
}

// UpdateStatus changes only the status of an order.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (models.Order, error) {
	parsed, err := models.ParseOrderStatus(status)
	if err != nil {
		return models.Order{}, err
	}

	if err := s.store.UpdateOrderStatus(ctx, id, parsed); err != nil {
		return models.Order{}, fmt.Errorf("update status of order %s: %w", id, err)
	}

	order, err := s.store.GetOrder(ctx, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}

	s.logger.Info("order status changed", zap.String("id", id), zap.String("status", string(parsed)))
	return order, nil
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

// All returns every order in storage order, as consumed by the reports.
func (s *Service) All(ctx context.Context) ([]models.Order, error) {
	orders, err := s.store.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// List returns orders sorted by delivery date then time, optionally filtered by
// customer or product (case-insensitive).
func (s *Service) List(ctx context.Context, search string) ([]models.Order, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	search = strings.ToLower(strings.TrimSpace(search))
	matched := make([]models.Order, 0, len(all))
	for _, order := range all {
		if search == "" ||
			strings.Contains(strings.ToLower(order.Customer), search) ||
			strings.Contains(strings.ToLower(order.Product), search) {
			matched = append(matched, order)
		}
	}

	sortByDelivery(matched)
	return matched, nil
}

// Upcoming returns the non-cancelled orders due within the next days, today included.
func (s *Service) Upcoming(ctx context.Context, days int) ([]models.Order, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	today := s.today()
	from := today.Format(models.DateLayout)
	until := today.AddDate(0, 0, days).Format(models.DateLayout)

	upcoming := make([]models.Order, 0)
	for _, order := range all {
		if order.IsCancelled() || order.Status == models.OrderDelivered {
			continue
		}
		// ISO dates compare lexically.
		if order.DeliveryDate >= from && order.DeliveryDate < until {
			upcoming = append(upcoming, order)
		}
	}

	sortByDelivery(upcoming)
	return upcoming, nil
}

func (s *Service) normalize(order *models.Order) error {
	order.Customer = strings.TrimSpace(order.Customer)
	order.Product = strings.TrimSpace(order.Product)

	if order.Customer == "" || order.Product == "" {
		return fmt.Errorf("%w: order needs a customer and a product", models.ErrInvalidInput)
	}
	if order.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", models.ErrInvalidInput)
	}
	if order.TotalValue < 0 || order.DeliveryExpense < 0 {
		return fmt.Errorf("%w: values must not be negative", models.ErrInvalidInput)
	}
	if order.DeliveryDate != "" {
		if _, err := time.Parse(models.DateLayout, order.DeliveryDate); err != nil {
			return fmt.Errorf("%w: delivery date must use YYYY-MM-DD", models.ErrInvalidInput)
		}
	}

	if order.Status == "" {
		order.Status = models.OrderPending
		return nil
	}
	status, err := models.ParseOrderStatus(string(order.Status))
	if err != nil {
		return err
	}
	order.Status = status
	return nil
}

func sortByDelivery(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].DeliveryDate != orders[j].DeliveryDate {
			return orders[i].DeliveryDate < orders[j].DeliveryDate
		}
		return orders[i].DeliveryTime < orders[j].DeliveryTime
	})
}
