package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors for checkout and order reads.
var (
	// ErrEmptyCart rejects checkout of a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrNotFound is returned when a requested order does not exist.
	ErrNotFound = errors.New("order not found")
)

// FieldError reports the first invalid checkout field. Validation is
// first-error-wins: later fields are not evaluated.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IncompatibleDeliveryPaymentError rejects a delivery/payment combination
// that the carriers do not support.
type IncompatibleDeliveryPaymentError struct {
	Delivery DeliveryMethod
	Payment  PaymentMethod
}

func (e *IncompatibleDeliveryPaymentError) Error() string {
	return fmt.Sprintf("delivery method %s does not support payment method %s", e.Delivery, e.Payment)
}

// AccessDeniedError rejects viewing an order owned by another user without
// the manager role.
type AccessDeniedError struct {
	OrderID int64
}

func (e *AccessDeniedError) Error() string {
	return fmt.Sprintf("no access to order %d", e.OrderID)
}

// CardDetails carries the card fields entered on the checkout form. They are
// validated for shape only and never charged or stored.
type CardDetails struct {
	Number string
	Month  string
	Year   string
	CVV    string
}

// Checkout is a submitted checkout form: how to deliver, where, and how to
// pay. Card is consulted only when PaymentMethod is PaymentCard.
type Checkout struct {
	DeliveryMethod  DeliveryMethod
	DeliveryAddress string
	PaymentMethod   PaymentMethod
	Card            CardDetails
}

// Validate applies the checkout rules in order and returns the first failure:
//
//  1. the delivery and payment methods must be known values,
//  2. when paying by card, each card field must have a valid shape
//     (first failing field wins, the rest are not evaluated),
//  3. parcel-locker pickup cannot be combined with cash on delivery.
//
// The empty-cart guard lives in Service.Place, which sees the cart.
func (c Checkout) Validate() error {
	if !c.DeliveryMethod.Valid() {
		return &FieldError{Field: "delivery_method", Message: "Unknown delivery method"}
	}
	if !c.PaymentMethod.Valid() {
		return &FieldError{Field: "payment_method", Message: "Unknown payment method"}
	}

	if c.PaymentMethod == PaymentCard {
		if err := c.Card.validate(); err != nil {
			return err
		}
	}

	if c.DeliveryMethod == DeliveryNovaPoshtaPostomat && c.PaymentMethod == PaymentCashOnDelivery {
		return &IncompatibleDeliveryPaymentError{
			Delivery: c.DeliveryMethod,
			Payment:  c.PaymentMethod,
		}
	}
	return nil
}

func (d CardDetails) validate() error {
	if !allDigits(d.Number) || len(d.Number) != 16 {
		return &FieldError{Field: "card_number", Message: "Invalid card number"}
	}
	if !allDigits(d.Month) || len(d.Month) != 2 || !monthInRange(d.Month) {
		return &FieldError{Field: "card_month", Message: "Invalid month"}
	}
	if !allDigits(d.Year) || len(d.Year) != 2 {
		return &FieldError{Field: "card_year", Message: "Invalid year"}
	}
	if !allDigits(d.CVV) || len(d.CVV) != 3 {
		return &FieldError{Field: "card_cvv", Message: "Invalid CVV"}
	}
	return nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// monthInRange expects a two-digit numeric string.
func monthInRange(s string) bool {
	m := int(s[0]-'0')*10 + int(s[1]-'0')
	return m >= 1 && m <= 12
}
