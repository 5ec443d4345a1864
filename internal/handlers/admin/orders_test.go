package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestUpdateOrderStatus_RejectsUnknownStage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/admin/orders/:id/status", UpdateOrderStatus)

	body := `{"status":"teleported"}`
	req := httptest.NewRequest(http.MethodPut,
		"/api/admin/orders/68b0f00000000000000000aa/status", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "Unknown order status" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestUpdateOrderStatus_RejectsBadObjectID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/api/admin/orders/:id/status", UpdateOrderStatus)

	req := httptest.NewRequest(http.MethodPut,
		"/api/admin/orders/not-an-id/status", strings.NewReader(`{"status":"shipped"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
}
