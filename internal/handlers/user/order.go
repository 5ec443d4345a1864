package user

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
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

func deliveryDays() int {
	if v, err := strconv.Atoi(os.Getenv("ESTIMATED_DELIVERY_DAYS")); err == nil {
		return v
	}
	return 7
}

// Checkout turns the Redis cart into an order document. The payment order
// must already exist at the gateway; its id is carried on the order so the
// verify step can match them up.
func Checkout(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		ShippingAddress models.Address `json:"shipping_address"`
		RazorpayOrderID string         `json:"razorpay_order_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.ShippingAddress.PinCode == "" || input.ShippingAddress.FullName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Shipping address is incomplete"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	data, _ := database.Redis.Get(ctx, cartKey(userID)).Result()
	var cart []models.CartItem
	if data != "" {
		_ = json.Unmarshal([]byte(data), &cart)
	}
	if len(cart) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}

	var items []models.OrderItem
	total := 0.0
	for _, ci := range cart {
		items = append(items, models.OrderItem{
			ProductID: ci.ProductID,
			Name:      ci.Name,
			Size:      ci.Size,
			Quantity:  ci.Quantity,
			Price:     ci.Price,
			ImageURL:  ci.ImageURL,
		})
		total += ci.Price * float64(ci.Quantity)
	}

	now := time.Now()
	order := models.Order{
		ID:              primitive.NewObjectID(),
		UserID:          userID,
		Items:           items,
		ShippingAddress: input.ShippingAddress,
		TotalAmount:     total,
		Status:          string(tracking.StagePlaced),
		StatusHistory: []models.StatusEvent{
			{Stage: string(tracking.StagePlaced), Date: now},
		},
		PaymentStatus:     "pending",
		RazorpayOrderID:   input.RazorpayOrderID,
		EstimatedDelivery: tracking.EstimatedDelivery(now, deliveryDays()),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := database.MongoOrdersDB.Collection("orders").InsertOne(ctx, order); err != nil {
		log.Println("❌ Order insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not place order"})
		return
	}

	store.Shop.UpsertOrder(order)
	log.Printf("📦 Order placed: %s (₹%.2f) for user %s", order.ID.Hex(), total, userID)

	c.JSON(http.StatusCreated, order)
}

// GET /api/orders — the signed-in user's orders, newest first.
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.MongoOrdersDB.Collection("orders").
		Find(ctx, bson.M{"user_id": userID}, opts)
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

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// findOrderByID is the Mongo fallback behind the snapshot; swapped out in
// tests.
var findOrderByID = func(ctx context.Context, orderID, userID string) (models.Order, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return models.Order{}, err
	}
	var order models.Order
	err = database.MongoOrdersDB.Collection("orders").
		FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&order)
	return order, err
}

// GET /api/orders/:id — snapshot first, Mongo as fallback after a restart.
func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if order, ok := store.Shop.OrderByID(orderID); ok {
		if order.UserID != userID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusOK, order)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	order, err := findOrderByID(ctx, orderID, userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	store.Shop.UpsertOrder(order)
	c.JSON(http.StatusOK, order)
}

// GET /api/orders/:id/track — the derived progress state for the tracking
// page. Unknown status values render as all-pending instead of failing.
func TrackOrder(c *gin.Context) {
	userID := c.GetString("user_id")
	orderID := c.Param("id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	order, ok := store.Shop.OrderByID(orderID)
	if !ok || order.UserID != userID {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var err error
		order, err = findOrderByID(ctx, orderID, userID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		store.Shop.UpsertOrder(order)
	}

	stages := tracking.Progress(tracking.Stage(order.Status), order.StatusHistory)

	c.JSON(http.StatusOK, gin.H{
		"order_id":           order.ID.Hex(),
		"status":             order.Status,
		"stage_index":        tracking.Index(tracking.Stage(order.Status)),
		"stages":             stages,
		"estimated_delivery": order.EstimatedDelivery,
		"support_phone":      os.Getenv("SUPPORT_PHONE"),
	})
}
