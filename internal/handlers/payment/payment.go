package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"rughaven_back_end/internal/cache"
	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/models"
	"rughaven_back_end/internal/store"
	"rughaven_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	razorpay "github.com/razorpay/razorpay-go"
	"go.mongodb.org/mongo-driver/bson"
)

// createGatewayOrder is swapped out in tests.
var createGatewayOrder = func(data map[string]interface{}) (map[string]interface{}, error) {
	client := razorpay.NewClient(os.Getenv("RAZORPAY_KEY_ID"), os.Getenv("RAZORPAY_KEY_SECRET"))
	return client.Order.Create(data, nil)
}

// CreatePaymentOrder registers a payment order at the gateway. The client
// sends rupees; Razorpay wants paise, so the amount is converted here and
// echoed back in minor units.
func CreatePaymentOrder(c *gin.Context) {
	var input struct {
		Amount   float64 `json:"amount"`
		Currency string  `json:"currency"`
		Receipt  string  `json:"receipt"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A positive amount is required"})
		return
	}
	if input.Currency == "" {
		input.Currency = "INR"
	}

	// round, don't truncate: 548.55*100 is 54854.999... in float64
	amountPaise := int64(math.Round(input.Amount * 100))

	order, err := createGatewayOrder(map[string]interface{}{
		"amount":   amountPaise,
		"currency": input.Currency,
		"receipt":  input.Receipt,
	})
	if err != nil {
		log.Println("❌ Razorpay order error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       order["id"],
		"currency": input.Currency,
		"amount":   amountPaise,
	})
}

// VerifyPayment checks the Razorpay signature, marks the order paid,
// clears the cart and sends the confirmation email with the invoice PDF.
func VerifyPayment(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		RazorpayOrderID   string `json:"razorpay_order_id"`
		RazorpayPaymentID string `json:"razorpay_payment_id"`
		RazorpaySignature string `json:"razorpay_signature"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	mac := hmac.New(sha256.New, []byte(os.Getenv("RAZORPAY_KEY_SECRET")))
	mac.Write([]byte(input.RazorpayOrderID + "|" + input.RazorpayPaymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(input.RazorpaySignature)) {
		log.Printf("⛔ Payment signature mismatch for order %s", input.RazorpayOrderID)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment verification failed"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var order models.Order
	err := database.MongoOrdersDB.Collection("orders").FindOneAndUpdate(ctx,
		bson.M{"razorpay_order_id": input.RazorpayOrderID, "user_id": userID},
		bson.M{"$set": bson.M{
			"payment_status":      "paid",
			"razorpay_payment_id": input.RazorpayPaymentID,
			"updated_at":          time.Now(),
		}},
	).Decode(&order)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	order.PaymentStatus = "paid"
	order.RazorpayPaymentID = input.RazorpayPaymentID
	store.Shop.UpsertOrder(order)

	database.Redis.Del(ctx, "cart:"+userID)
	database.Redis.Publish(ctx, "cart:"+userID, "cleared")

	go func(order models.Order, userID string) {
		user, err := cache.GetUserFromCache(context.Background(), userID)
		if err != nil {
			log.Println("⚠️ Could not load user for confirmation email:", err)
			return
		}

		html := utils.GenerateOrderConfirmationHTML(order)
		pdf, err := utils.GenerateInvoicePDF(order)
		if err != nil {
			log.Println("⚠️ Invoice PDF generation failed:", err)
			pdf = nil
		}
		subject := "Your Rughaven order is confirmed"
		if err := utils.SendConfirmationEmail(user.Email, subject, html, pdf); err != nil {
			log.Println("❌ Confirmation email error:", err)
		} else {
			log.Printf("📤 Confirmation email sent to %s", user.Email)
		}
	}(order, userID)

	log.Printf("✅ Payment verified for order %s", order.ID.Hex())
	c.JSON(http.StatusOK, gin.H{
		"message":  "Payment verified",
		"order_id": order.ID.Hex(),
	})
}
