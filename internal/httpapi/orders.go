package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/olekhv/storefront/internal/domain/order"
)

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

type orderLineDTO struct {
	ProductID   *int64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Price       string `json:"price"`
	Total       string `json:"total"`
}

type orderDTO struct {
	ID              int64          `json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	TotalPrice      string         `json:"total_price"`
	DeliveryMethod  string         `json:"delivery_method"`
	DeliveryAddress string         `json:"delivery_address"`
	PaymentMethod   string         `json:"payment_method"`
	Lines           []orderLineDTO `json:"lines"`
}

// orderConfirmationDTO is the confirmation view. The two flags echo how the
// client got here: straight from checkout or via a notification link.
type orderConfirmationDTO struct {
	orderDTO
	ShowSuccessMessage   bool `json:"show_success_message"`
	CameFromNotification bool `json:"came_from_notification"`
}

func orderToDTO(o *order.Order) orderDTO {
	lines := make([]orderLineDTO, len(o.Lines))
	for i, l := range o.Lines {
		lines[i] = orderLineDTO{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price.StringFixed(2),
			Total:       l.Price.Mul(decimalFromInt(l.Quantity)).StringFixed(2),
		}
	}
	return orderDTO{
		ID:              o.ID,
		CreatedAt:       o.CreatedAt,
		TotalPrice:      o.TotalPrice.StringFixed(2),
		DeliveryMethod:  string(o.DeliveryMethod),
		DeliveryAddress: o.DeliveryAddress,
		PaymentMethod:   string(o.PaymentMethod),
		Lines:           lines,
	}
}

// getOrder serves the confirmation page data for the owner or a manager.
func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "invalid order id")
		return
	}

	o, err := h.orders.GetForUser(r.Context(), u, orderID)
	if err != nil {
		var denied *order.AccessDeniedError
		switch {
		case errors.Is(err, order.ErrNotFound):
			respondError(w, r, http.StatusNotFound, "order not found")
		case errors.As(err, &denied):
			respondError(w, r, http.StatusForbidden, "no access to this order")
		default:
			respondInternal(w, r, err)
		}
		return
	}

	q := r.URL.Query()
	respondJSON(w, r, http.StatusOK, orderConfirmationDTO{
		orderDTO:             orderToDTO(o),
		ShowSuccessMessage:   q.Get("success") == "1",
		CameFromNotification: q.Get("from_notification") == "1",
	})
}

// listOrders serves the caller's own orders, newest first.
func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	orders, err := h.orders.ListByUser(r.Context(), u.ID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	out := make([]orderDTO, len(orders))
	for i := range orders {
		out[i] = orderToDTO(&orders[i])
	}
	respondJSON(w, r, http.StatusOK, struct {
		Orders []orderDTO `json:"orders"`
	}{Orders: out})
}
