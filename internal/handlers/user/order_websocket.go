package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/store"
	"rughaven_back_end/internal/tracking"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// allow all origins, tighten in production
		return true
	},
}

// OrderWebSocket pushes tracking updates for one order in real time. The
// admin status-update handler publishes on the matching Redis channel.
func OrderWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(401, gin.H{"error": "Not authenticated"})
		return
	}

	orderID := c.Param("id")
	order, ok := store.Shop.OrderByID(orderID)
	if !ok || order.UserID != userID {
		c.JSON(404, gin.H{"error": "Order not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, "orders:"+orderID)
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":        "connected",
		"order_id":    orderID,
		"status":      order.Status,
		"stage_index": tracking.Index(tracking.Stage(order.Status)),
		"stages":      tracking.Progress(tracking.Stage(order.Status), order.StatusHistory),
	})

	for {
		select {
		case msg, open := <-ch:
			if !open {
				return
			}
			if msg.Payload != "status_updated" {
				continue
			}

			order, ok := store.Shop.OrderByID(orderID)
			if !ok {
				continue
			}

			response := map[string]interface{}{
				"type":        "status_updated",
				"order_id":    orderID,
				"status":      order.Status,
				"stage_index": tracking.Index(tracking.Stage(order.Status)),
				"stages":      tracking.Progress(tracking.Stage(order.Status), order.StatusHistory),
			}
			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ WebSocket write error: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// keepalive ping
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
