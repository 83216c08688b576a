package test

import (
	"net/http"
	"testing"

	"github.com/irsalhamdi/hotwheels-store/core/cart"
	"github.com/irsalhamdi/hotwheels-store/validate"
	"github.com/shopspring/decimal"
)

type cartTest struct {
	*TestEnv
}

func TestCart(t *testing.T) {
	env, err := NewTestEnv(t, "cart_test")
	if err != nil {
		t.Fatalf("initializing test env: %v", err)
	}

	rt := &cartTest{env}
	twin := env.Hotwheels["Twin Mill"]
	deora := env.Hotwheels["Deora"]

	rt.showOK(t, 0, "0")

	first := rt.createItemOK(t, twin.ID)
	second := rt.createItemOK(t, twin.ID)
	rt.createItemOK(t, deora.ID)

	sum := rt.showOK(t, 3, "47.23")
	if first.CartID == second.CartID {
		t.Fatal("same item added twice must get two cart ids")
	}
	if sum.Items[0].CartID != first.CartID || sum.Items[2].Name != "Deora" {
		t.Fatalf("entries must keep insertion order: %+v", sum.Items)
	}

	rt.deleteItemOK(t, second.CartID, 2, "27.24")
	rt.deleteItemOK(t, validate.GenerateID(), 2, "27.24")
	rt.deleteItemOK(t, "42", 2, "27.24")

	rt.createItemFails(t, map[string]string{"id": "not-a-uuid"}, http.StatusInternalServerError)
	rt.createItemFails(t, map[string]string{}, http.StatusBadRequest)
	rt.createItemFails(t, map[string]string{"id": validate.GenerateID()}, http.StatusInternalServerError)
	rt.showOK(t, 2, "27.24")

	if code := rt.do(t, http.MethodDelete, "/api/cart", nil, nil); code != http.StatusNoContent {
		t.Fatalf("clearing cart: status %d", code)
	}
	rt.showOK(t, 0, "0")
}

func (rt *cartTest) showOK(t *testing.T, count int, total string) cart.Summary {
	t.Helper()

	var sum cart.Summary
	if code := rt.do(t, http.MethodGet, "/api/cart", nil, &sum); code != http.StatusOK {
		t.Fatalf("showing cart: status %d", code)
	}
	checkSummary(t, sum, count, total)
	return sum
}

func (rt *cartTest) createItemOK(t *testing.T, id string) cart.Entry {
	t.Helper()

	var sum cart.Summary
	if code := rt.do(t, http.MethodPut, "/api/cart/items", cart.ItemNew{ID: id}, &sum); code != http.StatusOK {
		t.Fatalf("adding %s: status %d", id, code)
	}
	last := sum.Items[len(sum.Items)-1]
	if last.ID != id {
		t.Fatalf("last entry is %s, want %s", last.ID, id)
	}
	return last
}

func (rt *cartTest) createItemFails(t *testing.T, body map[string]string, status int) {
	t.Helper()

	if code := rt.do(t, http.MethodPut, "/api/cart/items", body, nil); code != status {
		t.Fatalf("adding %v: status %d, want %d", body, code, status)
	}
}

func (rt *cartTest) deleteItemOK(t *testing.T, cartID string, count int, total string) {
	t.Helper()

	var sum cart.Summary
	if code := rt.do(t, http.MethodDelete, "/api/cart/items/"+cartID, nil, &sum); code != http.StatusOK {
		t.Fatalf("removing %s: status %d", cartID, code)
	}
	checkSummary(t, sum, count, total)
}

func checkSummary(t *testing.T, sum cart.Summary, count int, total string) {
	t.Helper()

	if sum.Items == nil {
		t.Fatal("items must never be null")
	}
	if sum.Count != count || len(sum.Items) != count {
		t.Fatalf("count: got %d (%d items), want %d", sum.Count, len(sum.Items), count)
	}
	if !sum.Total.Equal(decimal.RequireFromString(total)) {
		t.Fatalf("total: got %s, want %s", sum.Total, total)
	}
}
