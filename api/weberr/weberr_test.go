package weberr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResponseThroughWrapping(t *testing.T) {
	base := errors.New("step 3 only submits")
	err := fmt.Errorf("advancing checkout: %w", Conflict(base))

	body, status, ok := Response(err)
	if !ok {
		t.Fatal("expected a decorated response")
	}
	if status != http.StatusConflict {
		t.Fatalf("expected status %d, got %d", http.StatusConflict, status)
	}
	if diff := cmp.Diff(&ErrorResponse{Error: base.Error()}, body); diff != "" {
		t.Fatalf("unexpected body (-want +got):\n%s", diff)
	}
	if !errors.Is(err, base) {
		t.Fatal("decorated error must still unwrap to its cause")
	}
}

func TestFieldsMerge(t *testing.T) {
	err := Wrap(errors.New("boom"),
		WithFields(map[string]any{"cart_id": "inner", "step": 2}),
		WithFields(map[string]any{"cart_id": "outer"}),
	)

	got, ok := Fields(err)
	if !ok {
		t.Fatal("expected fields")
	}
	want := map[string]any{"cart_id": "outer", "step": 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}

	if _, ok := Fields(errors.New("plain")); ok {
		t.Fatal("plain errors carry no fields")
	}
}

func TestInternalErrorHidesCause(t *testing.T) {
	err := InternalError(errors.New("pq: connection refused"))

	body, status, ok := Response(err)
	if !ok || status != http.StatusInternalServerError {
		t.Fatalf("expected a 500 response, got %d (%v)", status, ok)
	}
	if diff := cmp.Diff(&ErrorResponse{Error: "Internal Server Error"}, body); diff != "" {
		t.Fatalf("unexpected body (-want +got):\n%s", diff)
	}
}
