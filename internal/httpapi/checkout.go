package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-faster/errors"

	"github.com/olekhv/storefront/internal/domain/cart"
	"github.com/olekhv/storefront/internal/domain/order"
)

type choiceDTO struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// checkoutFormDTO carries everything a client needs to render the checkout
// form, including the values the user already entered. Validation failures
// return it alongside the error so the form redisplays without another
// round-trip.
type checkoutFormDTO struct {
	Items            []cartLineDTO `json:"items"`
	TotalPrice       string        `json:"total_price"`
	DeliveryChoices  []choiceDTO   `json:"delivery_choices"`
	PaymentChoices   []choiceDTO   `json:"payment_choices"`
	SelectedDelivery string        `json:"selected_delivery_method"`
	SelectedPayment  string        `json:"selected_payment_method"`
	DeliveryAddress  string        `json:"delivery_address"`
	ShowCardFields   bool          `json:"show_card_fields"`
	ErrorMessage     string        `json:"error_message,omitempty"`
}

type checkoutRequest struct {
	ActionType      string `json:"action_type"`
	DeliveryMethod  string `json:"delivery_method"`
	DeliveryAddress string `json:"delivery_address"`
	PaymentMethod   string `json:"payment_method"`
	CardNumber      string `json:"card_number"`
	CardMonth       string `json:"card_month"`
	CardYear        string `json:"card_year"`
	CardCVV         string `json:"card_cvv"`
}

func deliveryChoices() []choiceDTO {
	methods := order.DeliveryMethods()
	out := make([]choiceDTO, len(methods))
	for i, m := range methods {
		out[i] = choiceDTO{Value: string(m), Label: m.Label()}
	}
	return out
}

func paymentChoices() []choiceDTO {
	methods := order.PaymentMethods()
	out := make([]choiceDTO, len(methods))
	for i, m := range methods {
		out[i] = choiceDTO{Value: string(m), Label: m.Label()}
	}
	return out
}

func buildCheckoutForm(view cart.View, delivery, payment, address, errMsg string) checkoutFormDTO {
	return checkoutFormDTO{
		Items:            cartLineDTOs(view.Lines),
		TotalPrice:       view.Total.StringFixed(2),
		DeliveryChoices:  deliveryChoices(),
		PaymentChoices:   paymentChoices(),
		SelectedDelivery: delivery,
		SelectedPayment:  payment,
		DeliveryAddress:  address,
		ShowCardFields:   payment == string(order.PaymentCard),
		ErrorMessage:     errMsg,
	}
}

// checkoutForm serves the form state, carrying through any selections the
// client passed as query parameters.
func (h *Handler) checkoutForm(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	view, err := h.carts.Get(r.Context(), u.ID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}
	if view.IsEmpty() {
		respondError(w, r, http.StatusConflict, "cart is empty")
		return
	}

	q := r.URL.Query()
	payment := q.Get("payment_method")
	if payment == "" {
		payment = string(order.DefaultPayment)
	}
	delivery := q.Get("delivery_method")
	if delivery == "" {
		delivery = string(order.DefaultDelivery)
	}

	respondJSON(w, r, http.StatusOK,
		buildCheckoutForm(view, delivery, payment, q.Get("delivery_address"), ""))
}

// submitCheckout places the order. On success the client is redirected to
// the confirmation view; on validation failure the form state comes back
// with the first offending message.
func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ActionType != "submit_order" {
		seeOther(w, r, "/api/checkout")
		return
	}

	if req.DeliveryMethod == "" {
		req.DeliveryMethod = string(order.DefaultDelivery)
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = string(order.DefaultPayment)
	}

	checkout := order.Checkout{
		DeliveryMethod:  order.DeliveryMethod(req.DeliveryMethod),
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   order.PaymentMethod(req.PaymentMethod),
		Card: order.CardDetails{
			Number: req.CardNumber,
			Month:  req.CardMonth,
			Year:   req.CardYear,
			CVV:    req.CardCVV,
		},
	}

	o, err := h.orders.Place(r.Context(), u.ID, checkout)
	if err != nil {
		h.respondCheckoutError(w, r, u.ID, req, err)
		return
	}

	seeOther(w, r, fmt.Sprintf("/api/orders/%d?success=1", o.ID))
}

// respondCheckoutError maps a placement failure either onto a redisplayed
// form (validation) or onto a generic error response.
func (h *Handler) respondCheckoutError(w http.ResponseWriter, r *http.Request, userID int64, req checkoutRequest, err error) {
	if errors.Is(err, order.ErrEmptyCart) {
		// Stale checkout page: bounce back to the (now empty) form flow.
		seeOther(w, r, "/api/checkout")
		return
	}

	var (
		fieldErr  *order.FieldError
		comboErr  *order.IncompatibleDeliveryPaymentError
		validated bool
		message   string
	)
	switch {
	case errors.As(err, &fieldErr):
		validated = true
		message = fieldErr.Message
	case errors.As(err, &comboErr):
		validated = true
		message = "This delivery method does not support payment on delivery"
	}
	if !validated {
		respondInternal(w, r, err)
		return
	}

	view, cartErr := h.carts.Get(r.Context(), userID)
	if cartErr != nil {
		respondInternal(w, r, cartErr)
		return
	}

	respondJSON(w, r, http.StatusUnprocessableEntity,
		buildCheckoutForm(view, req.DeliveryMethod, req.PaymentMethod, req.DeliveryAddress, message))
}
