//go:build integration

package integration

import (
	"net/http"
	"strconv"
	"strings"
	"testing"
)

func TestLivez(t *testing.T) {
	resp := doGet(t, "/livez", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body := decodeJSON[healthResponse](t, resp)
	if body.Status != "ok" {
		t.Fatalf("expected status ok, got %q", body.Status)
	}
}

func TestReadyz(t *testing.T) {
	resp := doGet(t, "/readyz", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestListProducts(t *testing.T) {
	resp := doGet(t, "/api/products", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	list := decodeJSON[productListResponse](t, resp)
	if len(list.Products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list.Products))
	}
	for _, p := range list.Products {
		if p.Name == "" {
			t.Error("product name is empty")
		}
		if !strings.Contains(p.Price, ".") {
			t.Errorf("price %q is not a fixed-point string", p.Price)
		}
	}
}

func TestCart_RequiresAuth(t *testing.T) {
	resp := doGet(t, "/api/cart", "")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCart_InvalidKey(t *testing.T) {
	resp := doGet(t, "/api/cart", "wrong-key")
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCartFlow(t *testing.T) {
	clearCart(t, customerKey)

	// Same product twice merges into one line.
	addProduct(t, customerKey, 1)
	addProduct(t, customerKey, 1)
	addProduct(t, customerKey, 2)

	resp := doGet(t, "/api/cart", customerKey)
	view := decodeJSON[cartResponse](t, resp)
	resp.Body.Close()

	if len(view.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(view.Items))
	}
	if view.Items[0].Quantity != 2 {
		t.Errorf("first line quantity: got %d, want 2", view.Items[0].Quantity)
	}
	if view.TotalPrice != "250.00" {
		t.Errorf("total: got %q, want 250.00", view.TotalPrice)
	}

	// Removing deletes the whole line regardless of its quantity.
	resp = doPost(t, "/api/cart/items/remove", customerKey, map[string]any{"product_id": 1})
	removed := decodeJSON[cartMutationResponse](t, resp)
	resp.Body.Close()

	if !removed.Success {
		t.Fatalf("remove failed: %s", removed.Error)
	}
	if removed.TotalPrice != "50.00" {
		t.Errorf("total after remove: got %q, want 50.00", removed.TotalPrice)
	}
	if removed.DeletedProductID != 1 {
		t.Errorf("deleted_product_id: got %d, want 1", removed.DeletedProductID)
	}

	clearCart(t, customerKey)
}

func TestAddUnknownProduct(t *testing.T) {
	resp := doPost(t, "/api/cart/items", customerKey, map[string]any{"product_id": 999})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	body := decodeJSON[cartMutationResponse](t, resp)
	if body.Error != "Product not found." {
		t.Errorf("error: got %q", body.Error)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	clearCart(t, customerKey)

	resp := doGet(t, "/api/checkout", customerKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}
}

func TestCheckout_InvalidCardKeepsCart(t *testing.T) {
	clearCart(t, customerKey)
	addProduct(t, customerKey, 1)

	resp := doPost(t, "/api/checkout", customerKey, map[string]any{
		"action_type":     "submit_order",
		"delivery_method": "nova_poshta_branch",
		"payment_method":  "card",
		"card_number":     "not-a-card",
		"card_month":      "12",
		"card_year":       "29",
		"card_cvv":        "123",
	})
	form := decodeJSON[checkoutFormResponse](t, resp)
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if form.ErrorMessage != "Invalid card number" {
		t.Errorf("error message: got %q", form.ErrorMessage)
	}

	// The cart must be untouched by the failed checkout.
	cartResp := doGet(t, "/api/cart", customerKey)
	view := decodeJSON[cartResponse](t, cartResp)
	cartResp.Body.Close()
	if len(view.Items) != 1 {
		t.Fatalf("cart must survive a failed checkout, got %d lines", len(view.Items))
	}

	clearCart(t, customerKey)
}

func TestCheckout_PostomatRejectsCash(t *testing.T) {
	clearCart(t, customerKey)
	addProduct(t, customerKey, 1)

	resp := doPost(t, "/api/checkout", customerKey, map[string]any{
		"action_type":     "submit_order",
		"delivery_method": "nova_poshta_postomat",
		"payment_method":  "cash_on_delivery",
	})
	form := decodeJSON[checkoutFormResponse](t, resp)
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	want := "This delivery method does not support payment on delivery"
	if form.ErrorMessage != want {
		t.Errorf("error message: got %q, want %q", form.ErrorMessage, want)
	}

	clearCart(t, customerKey)
}

// TestOrderLifecycle walks the whole flow: fill the cart, check out, read the
// confirmation, then verify the manager got notified and can open the order.
func TestOrderLifecycle(t *testing.T) {
	clearCart(t, customerKey)
	addProduct(t, customerKey, 1)
	addProduct(t, customerKey, 1)
	addProduct(t, customerKey, 2)

	resp := doPost(t, "/api/checkout", customerKey, map[string]any{
		"action_type":      "submit_order",
		"delivery_method":  "nova_poshta_branch",
		"delivery_address": "Kyiv, Khreshchatyk 1",
		"payment_method":   "cash_on_delivery",
	})
	resp.Body.Close()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	if !strings.HasSuffix(location, "?success=1") {
		t.Fatalf("unexpected redirect target %q", location)
	}

	// Confirmation view for the owner, with the success flag.
	resp = doGet(t, location, customerKey)
	confirmation := decodeJSON[orderResponse](t, resp)
	resp.Body.Close()

	if confirmation.TotalPrice != "250.00" {
		t.Errorf("order total: got %q, want 250.00", confirmation.TotalPrice)
	}
	if !confirmation.ShowSuccessMessage {
		t.Error("success flag must be set after checkout redirect")
	}
	if len(confirmation.Lines) != 2 {
		t.Errorf("expected 2 order lines, got %d", len(confirmation.Lines))
	}

	// The cart is now empty.
	cartResp := doGet(t, "/api/cart", customerKey)
	view := decodeJSON[cartResponse](t, cartResp)
	cartResp.Body.Close()
	if len(view.Items) != 0 {
		t.Errorf("cart must be cleared after checkout, got %d lines", len(view.Items))
	}

	// Another customer cannot open the order.
	resp = doGet(t, "/api/orders/"+strconv.FormatInt(confirmation.ID, 10), managerKey)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("manager must see the order, got %d", resp.StatusCode)
	}

	// The manager has an unread notification about this order.
	resp = doGet(t, "/api/notifications", managerKey)
	inbox := decodeJSON[notificationListResponse](t, resp)
	resp.Body.Close()

	var found *notificationResponse
	for i := range inbox.Notifications {
		if inbox.Notifications[i].OrderID == confirmation.ID {
			found = &inbox.Notifications[i]
		}
	}
	if found == nil {
		t.Fatalf("no notification for order %d in %d unread", confirmation.ID, len(inbox.Notifications))
	}
	if !strings.HasPrefix(found.Message, "New order #") {
		t.Errorf("message: got %q", found.Message)
	}

	// Marking it read moves it out of the unread view.
	resp = doPost(t, "/api/notifications/read", managerKey, map[string]any{"notification_id": found.ID})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}

	resp = doGet(t, "/api/notifications", managerKey)
	inbox = decodeJSON[notificationListResponse](t, resp)
	resp.Body.Close()
	for _, n := range inbox.Notifications {
		if n.ID == found.ID {
			t.Error("notification still unread after marking read")
		}
	}
}

func TestCustomerCannotOpenForeignOrder(t *testing.T) {
	// The manager places an order of their own.
	clearCart(t, managerKey)
	addProduct(t, managerKey, 2)

	resp := doPost(t, "/api/checkout", managerKey, map[string]any{
		"action_type": "submit_order",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", resp.StatusCode)
	}
	location := resp.Header.Get("Location")
	orderPath := strings.TrimSuffix(location, "?success=1")

	resp = doGet(t, orderPath, customerKey)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}

	body := decodeJSON[errorResponse](t, resp)
	if body.Code != http.StatusForbidden {
		t.Errorf("error code: got %d", body.Code)
	}
}

func TestRateLimitHeaders(t *testing.T) {
	resp := doGet(t, "/api/products", "")
	defer resp.Body.Close()

	if resp.Header.Get("X-RateLimit-Limit") == "" {
		t.Error("X-RateLimit-Limit header missing")
	}
	if resp.Header.Get("X-RateLimit-Remaining") == "" {
		t.Error("X-RateLimit-Remaining header missing")
	}
}
