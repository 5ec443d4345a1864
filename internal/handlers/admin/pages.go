package admin

import (
	"context"
	"net/http"
	"os"
	"regexp"
	"time"

	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// GET /api/pages/:slug — public policy pages (shipping, returns,
// privacy...).
func GetPage(c *gin.Context) {
	slug := c.Param("slug")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var page models.Page
	err := database.MongoContentDB.Collection("pages").
		FindOne(ctx, bson.M{"_id": slug}).Decode(&page)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// PUT /api/admin/pages/:slug — create or replace a policy page.
func UpsertPage(c *gin.Context) {
	slug := c.Param("slug")
	if !slugPattern.MatchString(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid slug"})
		return
	}

	var input struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and body are required"})
		return
	}

	page := models.Page{
		Slug:      slug,
		Title:     input.Title,
		Body:      input.Body,
		UpdatedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := database.MongoContentDB.Collection("pages").ReplaceOne(ctx,
		bson.M{"_id": slug}, page, options.Replace().SetUpsert(true))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save page"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GET /api/config/support — contact details shown on the tracking and
// support pages.
func SupportConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"phone": envOr("SUPPORT_PHONE", "+91 98765 43210"),
		"email": envOr("SUPPORT_EMAIL", "support@rughaven.in"),
	})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
