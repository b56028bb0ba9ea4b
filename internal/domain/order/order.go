// Package order implements checkout validation and order placement: cart
// lines are snapshotted into an immutable priced order in one transaction.
package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryMethod is a supported way of delivering an order.
type DeliveryMethod string

// Supported delivery methods.
const (
	DeliveryNovaPoshtaBranch   DeliveryMethod = "nova_poshta_branch"
	DeliveryNovaPoshtaPostomat DeliveryMethod = "nova_poshta_postomat"
	DeliveryMeestBranch        DeliveryMethod = "meest_branch"
	DeliveryUkrposhtaBranch    DeliveryMethod = "ukrposhta_branch"
	DeliveryMeestCourier       DeliveryMethod = "meest_courier"
	DeliveryNovaPoshtaCourier  DeliveryMethod = "nova_poshta_courier"
)

// DefaultDelivery is the delivery method pre-selected on the checkout form.
const DefaultDelivery = DeliveryNovaPoshtaBranch

var deliveryLabels = map[DeliveryMethod]string{
	DeliveryNovaPoshtaBranch:   "Pickup from a Nova Poshta branch",
	DeliveryNovaPoshtaPostomat: "Pickup from a Nova Poshta parcel locker",
	DeliveryMeestBranch:        "Pickup from a Meest branch",
	DeliveryUkrposhtaBranch:    "Pickup from an Ukrposhta branch",
	DeliveryMeestCourier:       "Meest courier",
	DeliveryNovaPoshtaCourier:  "Nova Poshta courier",
}

// Valid reports whether the value is a known delivery method.
func (m DeliveryMethod) Valid() bool {
	_, ok := deliveryLabels[m]
	return ok
}

// Label returns the human-readable name of the delivery method.
func (m DeliveryMethod) Label() string {
	return deliveryLabels[m]
}

// DeliveryMethods returns all supported delivery methods in display order.
func DeliveryMethods() []DeliveryMethod {
	return []DeliveryMethod{
		DeliveryNovaPoshtaBranch,
		DeliveryNovaPoshtaPostomat,
		DeliveryMeestBranch,
		DeliveryUkrposhtaBranch,
		DeliveryMeestCourier,
		DeliveryNovaPoshtaCourier,
	}
}

// PaymentMethod is a supported way of paying for an order.
type PaymentMethod string

// Supported payment methods.
const (
	PaymentCard           PaymentMethod = "card"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// DefaultPayment is the payment method pre-selected on the checkout form.
const DefaultPayment = PaymentCashOnDelivery

var paymentLabels = map[PaymentMethod]string{
	PaymentCard:           "Visa/MasterCard payment",
	PaymentCashOnDelivery: "Payment on delivery",
}

// Valid reports whether the value is a known payment method.
func (m PaymentMethod) Valid() bool {
	_, ok := paymentLabels[m]
	return ok
}

// Label returns the human-readable name of the payment method.
func (m PaymentMethod) Label() string {
	return paymentLabels[m]
}

// PaymentMethods returns all supported payment methods in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCard, PaymentCashOnDelivery}
}

// Line is an immutable order line: the product reference (nil once the
// product is deleted), the ordered quantity, and the unit price snapshotted
// at placement time.
type Line struct {
	ProductID   *int64
	ProductName string
	Quantity    int
	Price       decimal.Decimal
}

// Order is an immutable, priced, committed purchase request. TotalPrice is a
// snapshot taken at creation and never re-derived from the catalog.
type Order struct {
	ID              int64
	UserID          int64
	CreatedAt       time.Time
	TotalPrice      decimal.Decimal
	DeliveryMethod  DeliveryMethod
	DeliveryAddress string
	PaymentMethod   PaymentMethod
	Lines           []Line
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create persists the order with its lines and clears the placing user's
	// cart, all inside a single transaction. On success it fills o.ID and
	// o.CreatedAt. Any failure leaves no order, no lines, and the cart
	// untouched.
	Create(ctx context.Context, o *Order) error
	// GetByID loads an order with its lines, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Order, error)
	// ListByUser returns the user's orders newest-first, lines included.
	ListByUser(ctx context.Context, userID int64) ([]Order, error)
}
