package payment

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func paymentRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payment/orders", CreatePaymentOrder)
	r.POST("/api/payment/verify", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		VerifyPayment(c)
	})
	return r
}

func stubGateway(t *testing.T, fn func(map[string]interface{}) (map[string]interface{}, error)) {
	t.Helper()
	prev := createGatewayOrder
	createGatewayOrder = fn
	t.Cleanup(func() { createGatewayOrder = prev })
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePaymentOrder_ConvertsToPaise(t *testing.T) {
	var gotAmount interface{}
	stubGateway(t, func(data map[string]interface{}) (map[string]interface{}, error) {
		gotAmount = data["amount"]
		return map[string]interface{}{"id": "order_test123"}, nil
	})
	r := paymentRouter()

	w := postJSON(r, "/api/payment/orders", `{"amount":500,"receipt":"rcpt-1"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	if gotAmount != int64(50000) {
		t.Fatalf("gateway must receive minor units: want 50000, got %v", gotAmount)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["id"] != "order_test123" {
		t.Fatalf("unexpected id: %v", resp["id"])
	}
	if resp["amount"].(float64) != 50000 {
		t.Fatalf("response amount must be in paise: got %v", resp["amount"])
	}
	if resp["currency"] != "INR" {
		t.Fatalf("currency must default to INR, got %v", resp["currency"])
	}
}

func TestCreatePaymentOrder_GatewayFailure(t *testing.T) {
	stubGateway(t, func(data map[string]interface{}) (map[string]interface{}, error) {
		return nil, errors.New("gateway down")
	})
	r := paymentRouter()

	w := postJSON(r, "/api/payment/orders", `{"amount":999.50}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", w.Code)
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "Could not create order" {
		t.Fatalf("unexpected error body: %v", resp)
	}
}

func TestCreatePaymentOrder_RoundsFractionalPaise(t *testing.T) {
	var gotAmount interface{}
	stubGateway(t, func(data map[string]interface{}) (map[string]interface{}, error) {
		gotAmount = data["amount"]
		return map[string]interface{}{"id": "order_test456"}, nil
	})
	r := paymentRouter()

	// 548.55*100 is 54854.999... in float64; truncation would lose a paisa
	w := postJSON(r, "/api/payment/orders", `{"amount":548.55}`)
	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotAmount != int64(54855) {
		t.Fatalf("want 54855 paise, got %v", gotAmount)
	}
}

func TestVerifyPayment_RejectsBadSignature(t *testing.T) {
	os.Setenv("RAZORPAY_KEY_SECRET", "test-razorpay-secret")
	r := paymentRouter()

	body := `{"razorpay_order_id":"order_1","razorpay_payment_id":"pay_1","razorpay_signature":"deadbeef"}`
	w := postJSON(r, "/api/payment/verify", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("want 400, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "Payment verification failed" {
		t.Fatalf("unexpected body: %v", resp)
	}
}

func TestCreatePaymentOrder_RejectsBadAmount(t *testing.T) {
	stubGateway(t, func(data map[string]interface{}) (map[string]interface{}, error) {
		t.Fatal("gateway must not be called for an invalid amount")
		return nil, nil
	})
	r := paymentRouter()

	for _, body := range []string{`{"amount":0}`, `{"amount":-10}`, `{}`} {
		w := postJSON(r, "/api/payment/orders", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body %s: want 400, got %d", body, w.Code)
		}
	}
}
