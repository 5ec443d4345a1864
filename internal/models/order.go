package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	Name      string  `bson:"name" json:"name"`
	Size      string  `bson:"size" json:"size"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
	ImageURL  string  `bson:"image_url" json:"image_url"`
}

// StatusEvent records when an order reached a fulfillment stage.
type StatusEvent struct {
	Stage string    `bson:"stage" json:"stage"`
	Date  time.Time `bson:"date" json:"date"`
}

type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID            string             `bson:"user_id" json:"user_id"`
	Items             []OrderItem        `bson:"items" json:"items"`
	ShippingAddress   Address            `bson:"shipping_address" json:"shipping_address"`
	TotalAmount       float64            `bson:"total_amount" json:"total_amount"`
	Status            string             `bson:"status" json:"status"`
	StatusHistory     []StatusEvent      `bson:"status_history" json:"status_history"`
	PaymentStatus     string             `bson:"payment_status" json:"payment_status"` // pending, paid, failed
	RazorpayOrderID   string             `bson:"razorpay_order_id" json:"razorpay_order_id"`
	RazorpayPaymentID string             `bson:"razorpay_payment_id,omitempty" json:"razorpay_payment_id,omitempty"`
	EstimatedDelivery time.Time          `bson:"estimated_delivery" json:"estimated_delivery"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time          `bson:"updated_at" json:"updated_at"`
}
