package user

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/models"
	"rughaven_back_end/internal/store"

	"github.com/gin-gonic/gin"
)

const cartTTL = 30 * 24 * time.Hour

func cartKey(userID string) string { return "cart:" + userID }

func GetCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	data, err := database.Redis.Get(context.Background(), cartKey(userID)).Result()
	if err != nil || data == "" {
		c.JSON(http.StatusOK, gin.H{"items": []models.CartItem{}})
		return
	}

	var cart []models.CartItem
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Cart decode error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": cart})
}

// POST /api/cart/add
func AddToCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input struct {
		ProductID string `json:"product_id"`
		Size      string `json:"size"`
		Quantity  int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	product, ok := store.Shop.ProductByID(input.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// requested size must be one the rug actually comes in
	if input.Size != "" {
		valid := false
		for _, s := range product.Sizes {
			if s == input.Size {
				valid = true
				break
			}
		}
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Size not available for this rug"})
			return
		}
	}

	imageURL := ""
	if len(product.ImageURLs) > 0 {
		imageURL = product.ImageURLs[0]
	}

	item := models.CartItem{
		ProductID: input.ProductID,
		Name:      product.Name,
		Size:      input.Size,
		Price:     product.Price,
		Quantity:  input.Quantity,
		ImageURL:  imageURL,
	}

	ctx := context.Background()
	key := cartKey(userID)

	data, _ := database.Redis.Get(ctx, key).Result()
	var cart []models.CartItem
	if data != "" {
		_ = json.Unmarshal([]byte(data), &cart)
	}

	// same product+size merges quantities
	found := false
	for i := range cart {
		if cart[i].ProductID == item.ProductID && cart[i].Size == item.Size {
			cart[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		cart = append(cart, item)
	}

	jsonData, _ := json.Marshal(cart)
	database.Redis.Set(ctx, key, jsonData, cartTTL)

	c.JSON(http.StatusOK, gin.H{
		"message": "Added to cart",
		"items":   cart,
	})
}

// DELETE /api/cart/:productId
func RemoveFromCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	productID := c.Param("productId")
	size := c.Query("size")
	ctx := context.Background()
	key := cartKey(userID)

	data, _ := database.Redis.Get(ctx, key).Result()
	if data == "" {
		c.JSON(http.StatusOK, gin.H{"message": "Cart is empty"})
		return
	}

	var cart []models.CartItem
	_ = json.Unmarshal([]byte(data), &cart)

	newCart := []models.CartItem{}
	for _, item := range cart {
		if item.ProductID == productID && (size == "" || item.Size == size) {
			continue
		}
		newCart = append(newCart, item)
	}

	jsonData, _ := json.Marshal(newCart)
	database.Redis.Set(ctx, key, jsonData, cartTTL)

	c.JSON(http.StatusOK, gin.H{
		"message": "Removed from cart",
		"items":   newCart,
	})
}

// DELETE /api/cart/clear
func ClearCart(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	if err := database.Redis.Del(context.Background(), cartKey(userID)).Err(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not clear cart"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
