package main

import (
	"context"
	"log"
	"os"
	"strings"

	"rughaven_back_end/internal/cache"
	"rughaven_back_end/internal/config"
	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/routes"
	"rughaven_back_end/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	config.Load()

	if os.Getenv("RAZORPAY_KEY_ID") == "" || os.Getenv("RAZORPAY_KEY_SECRET") == "" {
		log.Fatal("❌ Razorpay keys missing: set RAZORPAY_KEY_ID and RAZORPAY_KEY_SECRET")
	}
	log.Println("✅ Razorpay configured")

	database.ConnectDatabases()
	warmupRedisCache()

	ctx := context.Background()
	if err := store.Shop.Load(ctx); err != nil {
		log.Fatal("❌ Could not load shop snapshot:", err)
	}
	cache.WatchShop(store.Shop)
	store.Shop.Watch(ctx)

	r := gin.Default()
	r.Use(cors.New(corsConfig()))
	routes.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Rughaven server listening on port", port)
	r.Run(":" + port)
}

func corsConfig() cors.Config {
	cfg := cors.DefaultConfig()
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = strings.Split(origins, ",")
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	cfg.AllowCredentials = origins != ""
	return cfg
}

// warmupRedisCache establishes the Redis connection before the first
// request pays the latency.
func warmupRedisCache() {
	if err := database.Redis.Ping(context.Background()).Err(); err == nil {
		log.Println("✅ Redis cache warmed up")
	}
}
