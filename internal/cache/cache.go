package cache

import (
	"context"
	"encoding/json"
	"time"

	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/models"
	"rughaven_back_end/internal/store"

	"go.mongodb.org/mongo-driver/bson"
)

const (
	UserCacheTTL    = 5 * time.Minute
	ProductCacheTTL = 10 * time.Minute
)

// GetUserFromCache fetches a user from Redis, falling back to MongoDB.
func GetUserFromCache(ctx context.Context, userID string) (*models.User, error) {
	key := "user:" + userID

	// 1. Try Redis
	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var user models.User
		if json.Unmarshal([]byte(data), &user) == nil {
			return &user, nil
		}
	}

	// 2. Fall back to MongoDB
	var user models.User
	err = database.MongoAuthDB.Collection("users").
		FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		return nil, err
	}

	// 3. Populate the cache
	jsonData, _ := json.Marshal(user)
	database.Redis.Set(ctx, key, jsonData, UserCacheTTL)

	return &user, nil
}

// InvalidateUserCache drops a user's cache entry.
func InvalidateUserCache(ctx context.Context, userID string) {
	database.Redis.Del(ctx, "user:"+userID)
}

// InvalidateProductCaches drops the catalog listing caches after an admin
// write.
func InvalidateProductCaches(ctx context.Context) {
	database.Redis.Del(ctx, "products:all")
}

// invalidateProducts is swapped out in tests.
var invalidateProducts = InvalidateProductCaches

// WatchShop drops the catalog cache whenever a product event reaches the
// store snapshot, so change-stream writes from another process invalidate
// the listing the same way in-process admin writes do.
func WatchShop(s *store.ShopStore) {
	s.Subscribe(func(ev store.Event) {
		if ev.Kind != "product" {
			return
		}
		invalidateProducts(context.Background())
	})
}
