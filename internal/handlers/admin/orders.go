package admin

import (
	"context"
	"log"
	"net/http"
	"time"

	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/models"
	"rughaven_back_end/internal/store"
	"rughaven_back_end/internal/tracking"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GET /api/admin/orders — all orders, newest first.
func ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.MongoOrdersDB.Collection("orders").Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Println("❌ MongoDB Find error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load orders"})
		return
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Decode error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": len(orders)})
}

// PUT /api/admin/orders/:id/status
//
// Moves an order to a new fulfilment stage, appends the event to the
// history and notifies any tracking websocket through Redis.
func UpdateOrderStatus(c *gin.Context) {
	orderID := c.Param("id")
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if !tracking.IsValid(tracking.Stage(input.Status)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown order status"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	now := time.Now()
	var order models.Order
	err = database.MongoOrdersDB.Collection("orders").FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$set": bson.M{"status": input.Status, "updated_at": now},
			"$push": bson.M{"status_history": models.StatusEvent{
				Stage: input.Status,
				Date:  now,
			}},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	store.Shop.UpsertOrder(order)
	database.Redis.Publish(ctx, "orders:"+orderID, "status_updated")

	log.Printf("✅ Order %s moved to %s", orderID, input.Status)
	c.JSON(http.StatusOK, order)
}
