package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rughaven_back_end/internal/models"
	"rughaven_back_end/internal/store"
	"rughaven_back_end/internal/tracking"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func trackRouter(userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/orders/:id/track", func(c *gin.Context) {
		c.Set("user_id", userID)
		TrackOrder(c)
	})
	return r
}

func stubOrderLookup(t *testing.T, order models.Order, err error) {
	t.Helper()
	prev := findOrderByID
	findOrderByID = func(ctx context.Context, orderID, userID string) (models.Order, error) {
		if err != nil {
			return models.Order{}, err
		}
		return order, nil
	}
	t.Cleanup(func() { findOrderByID = prev })
}

func TestTrackOrder_FallbackRefreshesSnapshot(t *testing.T) {
	order := models.Order{
		ID:     primitive.NewObjectID(),
		UserID: "u-1",
		Status: string(tracking.StageShipped),
		StatusHistory: []models.StatusEvent{
			{Stage: string(tracking.StagePlaced), Date: time.Now()},
		},
	}
	stubOrderLookup(t, order, nil)
	r := trackRouter("u-1")

	// not in the snapshot yet: forces the Mongo fallback
	if _, ok := store.Shop.OrderByID(order.ID.Hex()); ok {
		t.Fatal("fixture order must start outside the snapshot")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/orders/"+order.ID.Hex()+"/track", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != string(tracking.StageShipped) {
		t.Fatalf("unexpected status: %v", resp["status"])
	}

	// the fallback must warm the snapshot, same as GetOrderByID
	if _, ok := store.Shop.OrderByID(order.ID.Hex()); !ok {
		t.Fatal("fallback must upsert the fetched order into the snapshot")
	}
}

func TestTrackOrder_UnknownOrder(t *testing.T) {
	stubOrderLookup(t, models.Order{}, mongo.ErrNoDocuments)
	r := trackRouter("u-1")

	req := httptest.NewRequest(http.MethodGet,
		"/api/orders/"+primitive.NewObjectID().Hex()+"/track", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("want 404, got %d", w.Code)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] != "Order not found" {
		t.Fatalf("unexpected body: %v", resp)
	}
}
