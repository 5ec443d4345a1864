package admin

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"time"

	"rughaven_back_end/internal/database"
	"rughaven_back_end/internal/models"
	"rughaven_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// POST /api/admin/gallery — multipart upload of a gallery or visualizer
// image. kind defaults to "gallery"; "visualizer" images are the rug
// cut-outs the room visualizer overlays.
func UploadGalleryImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	kind := c.DefaultPostForm("kind", "gallery")
	if kind != "gallery" && kind != "visualizer" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be gallery or visualizer"})
		return
	}

	objectName := fmt.Sprintf("%s/%s%s", kind, uuid.New().String(), filepath.Ext(file.Filename))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	url, err := services.UploadFile(ctx, objectName, file)
	if err != nil {
		log.Println("❌ Upload error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not upload image"})
		return
	}
	log.Printf("🪣 Image stored: %s", objectName)

	image := models.GalleryImage{
		ID:         primitive.NewObjectID(),
		Title:      c.PostForm("title"),
		Kind:       kind,
		URL:        url,
		ObjectName: objectName,
		UploadedBy: c.GetString("user_id"),
		UploadedAt: time.Now(),
	}

	if _, err := database.MongoContentDB.Collection("gallery").InsertOne(ctx, image); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not save image"})
		return
	}

	c.JSON(http.StatusCreated, image)
}

// GET /api/gallery — public. ?kind=visualizer narrows to the cut-outs.
func ListGalleryImages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if kind := c.Query("kind"); kind != "" {
		filter["kind"] = kind
	}

	opts := options.Find().SetSort(bson.D{{Key: "uploaded_at", Value: -1}})
	cursor, err := database.MongoContentDB.Collection("gallery").Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load gallery"})
		return
	}
	defer cursor.Close(ctx)

	var images []models.GalleryImage
	if err := cursor.All(ctx, &images); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Decode error"})
		return
	}
	if images == nil {
		images = []models.GalleryImage{}
	}

	c.JSON(http.StatusOK, gin.H{"images": images})
}

// DELETE /api/admin/gallery/:id
func DeleteGalleryImage(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var image models.GalleryImage
	err = database.MongoContentDB.Collection("gallery").
		FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&image)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not found"})
		return
	}

	if err := services.RemoveFile(ctx, image.ObjectName); err != nil {
		log.Println("⚠️ Could not remove object from MinIO:", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
}
