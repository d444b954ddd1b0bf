package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidStatus is returned when an order status is outside the known set.
var ErrInvalidStatus = errors.New("invalid order status")

// OrderStatus enumerates the lifecycle of a customer order.
type OrderStatus string

const (
	OrderPending      OrderStatus = "Pendente"
	OrderConfirmed    OrderStatus = "Confirmado"
	OrderInProduction OrderStatus = "Em Produção"
	OrderReady        OrderStatus = "Pronto"
	OrderDelivered    OrderStatus = "Entregue"
	OrderCancelled    OrderStatus = "Cancelado"
)

// OrderStatuses lists every valid status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderPending, OrderConfirmed, OrderInProduction, OrderReady, OrderDelivered, OrderCancelled,
}

// ParseOrderStatus validates a status label, ignoring surrounding space and case.
func ParseOrderStatus(value string) (OrderStatus, error) {
	normalized := strings.TrimSpace(value)
	for _, status := range OrderStatuses {
		if strings.EqualFold(normalized, string(status)) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

// Order is a customer order on the delivery calendar (encomenda). Product is
// the free-text name of a recipe, matched by exact name in reports.
type Order struct {
	ID              string      `bson:"_id" json:"id"`
	Customer        string      `bson:"customer" json:"customer"`
	Phone           string      `bson:"phone" json:"phone"`
	Product         string      `bson:"product" json:"product"`
	Quantity        float64     `bson:"quantity" json:"quantity"`
	TotalValue      float64     `bson:"total_value" json:"total_value"`
	DeliveryExpense float64     `bson:"delivery_expense" json:"delivery_expense"`
	OrderDate       string      `bson:"order_date" json:"order_date"`
	DeliveryDate    string      `bson:"delivery_date" json:"delivery_date"`
	DeliveryTime    string      `bson:"delivery_time" json:"delivery_time"`
	Status          OrderStatus `bson:"status" json:"status"`
	PaymentMethod   string      `bson:"payment_method" json:"payment_method"`
	Notes           string      `bson:"notes" json:"notes"`
}

// IsCancelled reports whether the order is excluded from revenue figures.
func (o Order) IsCancelled() bool {
	return o.Status == OrderCancelled
}

// DeliversOn reports whether the order is due on the given calendar day.
func (o Order) DeliversOn(day time.Time) bool {
	return o.DeliveryDate == day.Format(DateLayout)
}

// DateLayout is the calendar date format used by orders and records.
const DateLayout = "2006-01-02"
