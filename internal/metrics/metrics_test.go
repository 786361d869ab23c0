package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCartActionsCounter(t *testing.T) {
	before := testutil.ToFloat64(CartActions.WithLabelValues("add_item"))
	CartActions.WithLabelValues("add_item").Inc()
	CartActions.WithLabelValues("add_item").Inc()

	if got := testutil.ToFloat64(CartActions.WithLabelValues("add_item")); got != before+2 {
		t.Errorf("expected %v add_item actions, got %v", before+2, got)
	}
}

func TestHandler(t *testing.T) {
	OrdersPlaced.WithLabelValues("cafe-uno").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body failed: %v", err)
	}
	for _, want := range []string{
		`tabledine_orders_total{restaurant="cafe-uno"}`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}
}
