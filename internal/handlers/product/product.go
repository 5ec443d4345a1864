package product

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"rughaven_back_end/internal/cache"
	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/models"
	"rughaven_back_end/internal/services"
	"rughaven_back_end/internal/store"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const productsCacheKey = "products:all"

// GET /api/products — Redis-cached catalog listing.
func GetAllProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cached, err := database.Redis.Get(ctx, productsCacheKey).Result(); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	products := store.Shop.Products()

	payload, err := json.Marshal(gin.H{"products": products, "total": len(products)})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Encode error"})
		return
	}
	database.Redis.Set(ctx, productsCacheKey, payload, 5*time.Minute)

	c.Data(http.StatusOK, "application/json", payload)
}

// GET /api/products/:id
func GetProductByID(c *gin.Context) {
	product, ok := store.Shop.ProductByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

// POST /api/admin/products
func CreateProduct(c *gin.Context) {
	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	if input.Name == "" || input.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and a positive price are required"})
		return
	}

	now := time.Now()
	input.ID = primitive.NewObjectID()
	input.IsActive = true
	input.CreatedAt = now
	input.UpdatedAt = now

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := database.MongoProductsDB.Collection("products").InsertOne(ctx, input); err != nil {
		log.Println("❌ Product insert error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create product"})
		return
	}

	store.Shop.UpsertProduct(input)
	cache.InvalidateProductCaches(ctx)
	go services.IndexProduct(input)

	log.Printf("✅ Product created: %s (%s)", input.Name, input.ID.Hex())
	c.JSON(http.StatusCreated, input)
}

// PUT /api/admin/products/:id
func UpdateProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var input models.Product
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}
	input.ID = oid
	input.UpdatedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.MongoProductsDB.Collection("products").
		ReplaceOne(ctx, bson.M{"_id": oid}, input)
	if err != nil {
		log.Println("❌ Product update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update product"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	store.Shop.UpsertProduct(input)
	cache.InvalidateProductCaches(ctx)
	go services.IndexProduct(input)

	c.JSON(http.StatusOK, input)
}

// DELETE /api/admin/products/:id
func DeleteProduct(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := database.MongoProductsDB.Collection("products").
		DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete product"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	store.Shop.RemoveProduct(oid.Hex())
	cache.InvalidateProductCaches(ctx)
	go services.DeleteProductIndex(oid.Hex())

	log.Printf("🗑️ Product deleted: %s", oid.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}
