package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olekhv/storefront/internal/domain/auth"
	"github.com/olekhv/storefront/internal/domain/cart"
	"github.com/olekhv/storefront/internal/domain/notification"
	"github.com/olekhv/storefront/internal/domain/order"
	"github.com/olekhv/storefront/internal/domain/product"
)

// --- In-memory backends ---

type memProducts struct {
	byID map[int64]product.Product
}

func (m *memProducts) List(_ context.Context) ([]product.Product, error) {
	out := make([]product.Product, 0, len(m.byID))
	for _, p := range m.byID {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memProducts) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

// memCarts joins quantities against the product map, so deleting a product
// from the catalog turns its cart lines dangling, like the SQL join does.
type memCarts struct {
	products *memProducts
	qty      map[int64]map[int64]int // userID -> productID -> quantity
}

func (m *memCarts) Lines(_ context.Context, userID int64) ([]cart.Line, error) {
	ids := make([]int64, 0, len(m.qty[userID]))
	for id := range m.qty[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var lines []cart.Line
	for _, id := range ids {
		q := m.qty[userID][id]
		if p, ok := m.products.byID[id]; ok {
			pid := p.ID
			lines = append(lines, cart.Line{
				ProductID:   &pid,
				ProductName: p.Name,
				Price:       p.Price,
				Quantity:    q,
			})
		} else {
			lines = append(lines, cart.Line{ProductID: nil, Quantity: q})
		}
	}
	return lines, nil
}

func (m *memCarts) UpsertLine(_ context.Context, userID, productID int64) error {
	if m.qty[userID] == nil {
		m.qty[userID] = make(map[int64]int)
	}
	m.qty[userID][productID]++
	return nil
}

func (m *memCarts) DeleteLine(_ context.Context, userID, productID int64) error {
	delete(m.qty[userID], productID)
	return nil
}

func (m *memCarts) SetQuantity(_ context.Context, userID, productID int64, quantity int) error {
	if _, ok := m.qty[userID][productID]; ok {
		m.qty[userID][productID] = quantity
	}
	return nil
}

func (m *memCarts) Clear(_ context.Context, userID int64) error {
	delete(m.qty, userID)
	return nil
}

// memOrders clears the placing user's cart on create, mirroring the
// transactional SQL implementation.
type memOrders struct {
	carts *memCarts
	seq   int64
	byID  map[int64]*order.Order
}

func (m *memOrders) Create(ctx context.Context, o *order.Order) error {
	m.seq++
	o.ID = m.seq
	o.CreatedAt = time.Date(2026, 3, 14, 12, 30, 0, 0, time.UTC)
	stored := *o
	m.byID[o.ID] = &stored
	return m.carts.Clear(ctx, o.UserID)
}

func (m *memOrders) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	return o, nil
}

func (m *memOrders) ListByUser(_ context.Context, userID int64) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.byID {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type memNotifications struct {
	mu    sync.Mutex
	seq   int64
	items []notification.Notification
}

func (m *memNotifications) Create(_ context.Context, n *notification.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	n.ID = m.seq
	n.CreatedAt = time.Now()
	m.items = append(m.items, *n)
	return nil
}

func (m *memNotifications) ListByUser(_ context.Context, userID int64, f notification.Filter) ([]notification.Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []notification.Notification
	for _, n := range m.items {
		if n.UserID != userID {
			continue
		}
		switch f {
		case notification.FilterUnread:
			if n.IsRead {
				continue
			}
		case notification.FilterRead:
			if !n.IsRead {
				continue
			}
		}
		out = append(out, n)
	}
	return out, nil
}

func (m *memNotifications) CountByUser(_ context.Context, userID int64) (notification.Counts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var c notification.Counts
	for _, n := range m.items {
		if n.UserID != userID {
			continue
		}
		c.Total++
		if n.IsRead {
			c.Read++
		} else {
			c.Unread++
		}
	}
	return c, nil
}

func (m *memNotifications) MarkRead(_ context.Context, userID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.items {
		if m.items[i].ID == id && m.items[i].UserID == userID {
			m.items[i].IsRead = true
		}
	}
	return nil
}

type memUsers struct {
	byHash   map[string]*auth.User
	managers []int64
}

func (m *memUsers) FindByKeyHash(_ context.Context, hash string) (*auth.User, error) {
	u, ok := m.byHash[hash]
	if !ok {
		return nil, auth.ErrUnauthorized
	}
	return u, nil
}

func (m *memUsers) ListManagerIDs(_ context.Context) ([]int64, error) {
	return m.managers, nil
}

// --- Fixture ---

const (
	customerKey = "customer-test-key"
	managerKey  = "manager-test-key"
)

type testEnv struct {
	router        http.Handler
	products      *memProducts
	carts         *memCarts
	orders        *memOrders
	notifications *memNotifications
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	products := &memProducts{byID: map[int64]product.Product{
		1: {ID: 1, Name: "Coffee beans 1kg", Price: decimal.RequireFromString("100.00"), Active: true},
		2: {ID: 2, Name: "Filter papers", Price: decimal.RequireFromString("50.00"), Active: true},
	}}
	carts := &memCarts{products: products, qty: make(map[int64]map[int64]int)}
	orders := &memOrders{carts: carts, byID: make(map[int64]*order.Order)}
	notifications := &memNotifications{}

	users := &memUsers{byHash: make(map[string]*auth.User), managers: []int64{2}}
	authn := NewAPIKeyAuth(users, []byte("test-pepper"))
	users.byHash[authn.HashKey(customerKey)] = &auth.User{ID: 1, Username: "olena"}
	users.byHash[authn.HashKey(managerKey)] = &auth.User{ID: 2, Username: "dana", Roles: []string{auth.RoleManager}}

	cartService := cart.NewService(products, carts)
	dispatcher := notification.NewDispatcher(users, notifications, time.UTC)
	orderService := order.NewService(cartService, orders, dispatcher)
	notificationService := notification.NewService(notifications)

	h := NewHandler(products, cartService, orderService, notificationService, authn)
	return &testEnv{
		router:        h.Routes(),
		products:      products,
		carts:         carts,
		orders:        orders,
		notifications: notifications,
	}
}

func (e *testEnv) do(t *testing.T, method, path, apiKey string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func (e *testEnv) addToCart(t *testing.T, apiKey string, productID int64) {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/cart/items", apiKey, map[string]any{"product_id": productID})
	require.Equal(t, http.StatusOK, w.Code)
}

// --- Auth ---

func TestAuth_MissingKey(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/cart", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_UnknownKey(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/cart", "wrong-key", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// --- Catalog ---

func TestListProducts_Public(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/products", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[struct {
		Products []productDTO `json:"products"`
	}](t, w)
	require.Len(t, body.Products, 2)
	assert.Equal(t, "Coffee beans 1kg", body.Products[0].Name)
	assert.Equal(t, "100.00", body.Products[0].Price)
}

func TestGetProduct_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/products/99", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Cart ---

func TestAddToCart(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/cart/items", customerKey, map[string]any{"product_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[struct {
		Success    bool   `json:"success"`
		TotalPrice string `json:"total_price"`
	}](t, w)
	assert.True(t, body.Success)
	assert.Equal(t, "100.00", body.TotalPrice)
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/cart/items", customerKey, map[string]any{"product_id": 99})

	require.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody[cartFailure](t, w)
	assert.False(t, body.Success)
	assert.Equal(t, "Product not found.", body.Error)
}

func TestAddToCart_MissingProductID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/cart/items", customerKey, map[string]any{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody[cartFailure](t, w)
	assert.Equal(t, "Product ID is missing.", body.Error)
}

func TestViewCart_AccumulatesLines(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)
	env.addToCart(t, customerKey, 1)
	env.addToCart(t, customerKey, 2)

	w := env.do(t, http.MethodGet, "/api/cart", customerKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[cartViewDTO](t, w)
	require.Len(t, body.Items, 2, "same product must merge into one line")
	assert.Equal(t, 2, body.Items[0].Quantity)
	assert.Equal(t, "200.00", body.Items[0].Total)
	assert.Equal(t, "250.00", body.TotalPrice)
}

func TestRemoveFromCart(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)
	env.addToCart(t, customerKey, 2)

	w := env.do(t, http.MethodPost, "/api/cart/items/remove", customerKey, map[string]any{"product_id": 1})

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[struct {
		Success          bool   `json:"success"`
		TotalPrice       string `json:"total_price"`
		DeletedProductID int64  `json:"deleted_product_id"`
	}](t, w)
	assert.True(t, body.Success)
	assert.Equal(t, "50.00", body.TotalPrice)
	assert.Equal(t, int64(1), body.DeletedProductID)
}

func TestRemoveFromCart_MissingLineIsOK(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/cart/items/remove", customerKey, map[string]any{"product_id": 1})

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSetCartQuantity_Redirects(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodPost, "/api/cart/items/quantity", customerKey,
		map[string]any{"product_id": 1, "quantity": 5})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/cart", w.Header().Get("Location"))
	assert.Equal(t, 5, env.carts.qty[1][1])
}

func TestSetCartQuantity_UnparsableFallsBackToOne(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)
	env.addToCart(t, customerKey, 1)

	for _, qty := range []any{"abc", "0", -3} {
		w := env.do(t, http.MethodPost, "/api/cart/items/quantity", customerKey,
			map[string]any{"product_id": 1, "quantity": qty})

		require.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, 1, env.carts.qty[1][1], "quantity %v must fall back to 1", qty)
	}
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodPost, "/api/cart/clear", customerKey, nil)

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Empty(t, env.carts.qty[1])
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodGet, "/api/cart", managerKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[cartViewDTO](t, w)
	assert.Empty(t, body.Items)
	assert.Equal(t, "0.00", body.TotalPrice)
}

// --- Checkout ---

func TestCheckoutForm_EmptyCart(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/checkout", customerKey, nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCheckoutForm_Defaults(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodGet, "/api/checkout", customerKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[checkoutFormDTO](t, w)
	assert.Equal(t, string(order.DefaultDelivery), body.SelectedDelivery)
	assert.Equal(t, string(order.DefaultPayment), body.SelectedPayment)
	assert.False(t, body.ShowCardFields)
	assert.Len(t, body.DeliveryChoices, 6)
	assert.Len(t, body.PaymentChoices, 2)
	assert.Equal(t, "100.00", body.TotalPrice)
}

func TestCheckoutForm_CarriesSelectionsThrough(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodGet, "/api/checkout?payment_method=card&delivery_method=meest_courier", customerKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[checkoutFormDTO](t, w)
	assert.Equal(t, "meest_courier", body.SelectedDelivery)
	assert.Equal(t, "card", body.SelectedPayment)
	assert.True(t, body.ShowCardFields)
}

func TestSubmitCheckout_Success(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)
	env.addToCart(t, customerKey, 1)
	env.addToCart(t, customerKey, 2)

	w := env.do(t, http.MethodPost, "/api/checkout", customerKey, map[string]any{
		"action_type":      "submit_order",
		"delivery_method":  "nova_poshta_branch",
		"delivery_address": "Kyiv, Khreshchatyk 1",
		"payment_method":   "cash_on_delivery",
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/orders/1?success=1", w.Header().Get("Location"))

	// Cart cleared, order stored with a snapshot total.
	assert.Empty(t, env.carts.qty[1])
	stored := env.orders.byID[1]
	require.NotNil(t, stored)
	assert.Equal(t, "250.00", stored.TotalPrice.StringFixed(2))
	require.Len(t, stored.Lines, 2)

	// Every manager got exactly one notification.
	require.Len(t, env.notifications.items, 1)
	n := env.notifications.items[0]
	assert.Equal(t, int64(2), n.UserID)
	assert.Equal(t, int64(1), n.OrderID)
	assert.Equal(t, "New order #1 from 14.03.2026, 12:30", n.Message)
}

func TestSubmitCheckout_WrongActionRedirectsBack(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodPost, "/api/checkout", customerKey, map[string]any{
		"action_type": "refresh",
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/checkout", w.Header().Get("Location"))
	assert.Empty(t, env.orders.byID, "no order must be placed")
}

func TestSubmitCheckout_EmptyCartRedirects(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/checkout", customerKey, map[string]any{
		"action_type": "submit_order",
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/checkout", w.Header().Get("Location"))
}

func TestSubmitCheckout_InvalidCard(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodPost, "/api/checkout", customerKey, map[string]any{
		"action_type":     "submit_order",
		"delivery_method": "nova_poshta_branch",
		"payment_method":  "card",
		"card_number":     "4111",
		"card_month":      "12",
		"card_year":       "29",
		"card_cvv":        "123",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody[checkoutFormDTO](t, w)
	assert.Equal(t, "Invalid card number", body.ErrorMessage)
	assert.True(t, body.ShowCardFields)
	assert.Empty(t, env.orders.byID, "validation failure must not place an order")
	assert.NotEmpty(t, env.carts.qty[1], "cart must be untouched")
}

func TestSubmitCheckout_PostomatCashIncompatible(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodPost, "/api/checkout", customerKey, map[string]any{
		"action_type":     "submit_order",
		"delivery_method": "nova_poshta_postomat",
		"payment_method":  "cash_on_delivery",
	})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody[checkoutFormDTO](t, w)
	assert.Equal(t, "This delivery method does not support payment on delivery", body.ErrorMessage)
	assert.Empty(t, env.orders.byID)
}

func TestSubmitCheckout_DefaultsApplied(t *testing.T) {
	env := newTestEnv(t)
	env.addToCart(t, customerKey, 1)

	w := env.do(t, http.MethodPost, "/api/checkout", customerKey, map[string]any{
		"action_type": "submit_order",
	})

	require.Equal(t, http.StatusSeeOther, w.Code)
	stored := env.orders.byID[1]
	require.NotNil(t, stored)
	assert.Equal(t, order.DefaultDelivery, stored.DeliveryMethod)
	assert.Equal(t, order.DefaultPayment, stored.PaymentMethod)
}

// --- Orders ---

func placeTestOrder(t *testing.T, env *testEnv) int64 {
	t.Helper()

	env.addToCart(t, customerKey, 1)
	w := env.do(t, http.MethodPost, "/api/checkout", customerKey, map[string]any{
		"action_type": "submit_order",
	})
	require.Equal(t, http.StatusSeeOther, w.Code)
	return env.orders.seq
}

func TestGetOrder_OwnerWithFlags(t *testing.T) {
	env := newTestEnv(t)
	orderID := placeTestOrder(t, env)

	w := env.do(t, http.MethodGet, "/api/orders/1?success=1", customerKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[orderConfirmationDTO](t, w)
	assert.Equal(t, orderID, body.ID)
	assert.True(t, body.ShowSuccessMessage)
	assert.False(t, body.CameFromNotification)
	assert.Equal(t, "100.00", body.TotalPrice)
}

func TestGetOrder_ManagerViaNotification(t *testing.T) {
	env := newTestEnv(t)
	placeTestOrder(t, env)

	w := env.do(t, http.MethodGet, "/api/orders/1?from_notification=1", managerKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[orderConfirmationDTO](t, w)
	assert.False(t, body.ShowSuccessMessage)
	assert.True(t, body.CameFromNotification)
}

func TestGetOrder_ForeignOrderForbidden(t *testing.T) {
	env := newTestEnv(t)

	// Order placed by the manager; the plain customer must not see it.
	env.addToCart(t, managerKey, 1)
	w := env.do(t, http.MethodPost, "/api/checkout", managerKey, map[string]any{
		"action_type": "submit_order",
	})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = env.do(t, http.MethodGet, "/api/orders/1", customerKey, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/orders/99", customerKey, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrder_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/orders/abc", customerKey, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)
	placeTestOrder(t, env)
	placeTestOrder(t, env)

	w := env.do(t, http.MethodGet, "/api/orders", customerKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[struct {
		Orders []orderDTO `json:"orders"`
	}](t, w)
	require.Len(t, body.Orders, 2)
	assert.Equal(t, int64(2), body.Orders[0].ID, "newest first")
}

// --- Notifications ---

func TestListNotifications_DefaultUnread(t *testing.T) {
	env := newTestEnv(t)
	placeTestOrder(t, env)

	w := env.do(t, http.MethodGet, "/api/notifications", managerKey, nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody[notificationListDTO](t, w)
	assert.Equal(t, "unread", body.Filter)
	require.Len(t, body.Notifications, 1)
	assert.Equal(t, int64(1), body.Notifications[0].OrderID)
	assert.Equal(t, 1, body.UnreadCount)
	assert.Equal(t, 0, body.ReadCount)
	assert.Equal(t, 1, body.TotalCount)
}

func TestMarkNotificationRead(t *testing.T) {
	env := newTestEnv(t)
	placeTestOrder(t, env)

	w := env.do(t, http.MethodPost, "/api/notifications/read", managerKey,
		map[string]any{"notification_id": 1})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/api/notifications", w.Header().Get("Location"))

	// The unread view is now empty; the read view holds the notification.
	body := decodeBody[notificationListDTO](t, env.do(t, http.MethodGet, "/api/notifications", managerKey, nil))
	assert.Empty(t, body.Notifications)
	assert.Equal(t, 1, body.ReadCount)

	body = decodeBody[notificationListDTO](t, env.do(t, http.MethodGet, "/api/notifications?filter=read", managerKey, nil))
	require.Len(t, body.Notifications, 1)
	assert.True(t, body.Notifications[0].IsRead)
}

func TestMarkNotificationRead_ForeignNotificationIsNoop(t *testing.T) {
	env := newTestEnv(t)
	placeTestOrder(t, env)

	// The customer tries to mark the manager's notification.
	w := env.do(t, http.MethodPost, "/api/notifications/read", customerKey,
		map[string]any{"notification_id": 1})

	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.False(t, env.notifications.items[0].IsRead)
}

func TestNotificationsRequireAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/notifications", "", nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
