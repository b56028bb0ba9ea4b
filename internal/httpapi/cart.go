package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/olekhv/storefront/internal/domain/cart"
	"github.com/olekhv/storefront/internal/domain/product"
)

// quantityField accepts a quantity as a JSON number or string. Unparsable
// values decode to 1 instead of failing the request.
type quantityField int

func (q *quantityField) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		*q = 1
		return nil
	}
	*q = quantityField(n)
	return nil
}

type cartItemRequest struct {
	ProductID int64         `json:"product_id"`
	Quantity  quantityField `json:"quantity"`
}

// cartFailure is the structured failure payload of the cart AJAX endpoints.
type cartFailure struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type cartLineDTO struct {
	ProductID   *int64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Quantity    int    `json:"quantity"`
	Total       string `json:"total"`
}

type cartViewDTO struct {
	Items      []cartLineDTO `json:"items"`
	TotalPrice string        `json:"total_price"`
}

func cartLineDTOs(lines []cart.Line) []cartLineDTO {
	out := make([]cartLineDTO, len(lines))
	for i, l := range lines {
		out[i] = cartLineDTO{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Price:       l.Price.StringFixed(2),
			Quantity:    l.Quantity,
			Total:       l.Subtotal().StringFixed(2),
		}
	}
	return out
}

func respondCartFailure(w http.ResponseWriter, r *http.Request, status int, msg string) {
	respondJSON(w, r, status, cartFailure{Success: false, Error: msg})
}

func (h *Handler) viewCart(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	view, err := h.carts.Get(r.Context(), u.ID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, cartViewDTO{
		Items:      cartLineDTOs(view.Lines),
		TotalPrice: view.Total.StringFixed(2),
	})
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		respondCartFailure(w, r, http.StatusBadRequest, "Product ID is missing.")
		return
	}

	total, err := h.carts.Add(r.Context(), u.ID, req.ProductID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			respondCartFailure(w, r, http.StatusNotFound, "Product not found.")
			return
		}
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Success    bool   `json:"success"`
		TotalPrice string `json:"total_price"`
	}{Success: true, TotalPrice: total.StringFixed(2)})
}

func (h *Handler) removeFromCart(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		respondCartFailure(w, r, http.StatusBadRequest, "Product ID is missing.")
		return
	}

	// A missing cart or line is not an error: removing twice is idempotent.
	total, err := h.carts.Remove(r.Context(), u.ID, req.ProductID)
	if err != nil {
		respondInternal(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, struct {
		Success          bool   `json:"success"`
		TotalPrice       string `json:"total_price"`
		DeletedProductID int64  `json:"deleted_product_id"`
	}{Success: true, TotalPrice: total.StringFixed(2), DeletedProductID: req.ProductID})
}

func (h *Handler) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	var req cartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == 0 {
		seeOther(w, r, "/api/cart")
		return
	}

	qty := int(req.Quantity)
	if qty < 1 {
		qty = 1
	}

	if err := h.carts.SetQuantity(r.Context(), u.ID, req.ProductID, qty); err != nil {
		respondInternal(w, r, err)
		return
	}
	seeOther(w, r, "/api/cart")
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	u := UserFromContext(r.Context())

	if err := h.carts.Clear(r.Context(), u.ID); err != nil {
		respondInternal(w, r, err)
		return
	}
	seeOther(w, r, "/api/cart")
}
