package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"os"

	"rughaven_back_end/internal/database"

	"github.com/minio/minio-go/v7"
)

// UploadFile stores an uploaded file in MinIO under objectName and returns
// its public URL.
func UploadFile(ctx context.Context, objectName string, file *multipart.FileHeader) (string, error) {
	if database.MinioClient == nil {
		return "", fmt.Errorf("MinIO not initialized")
	}

	f, err := file.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()

	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "rughaven"
	}

	_, err = database.MinioClient.PutObject(ctx, bucket, objectName, f, file.Size,
		minio.PutObjectOptions{ContentType: file.Header.Get("Content-Type")})
	if err != nil {
		return "", err
	}

	publicBase := os.Getenv("MINIO_PUBLIC_URL")
	if publicBase == "" {
		publicBase = fmt.Sprintf("http://%s", os.Getenv("MINIO_ENDPOINT"))
	}
	return fmt.Sprintf("%s/%s/%s", publicBase, bucket, objectName), nil
}

// RemoveFile deletes an object from the bucket.
func RemoveFile(ctx context.Context, objectName string) error {
	if database.MinioClient == nil {
		return fmt.Errorf("MinIO not initialized")
	}
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "rughaven"
	}
	return database.MinioClient.RemoveObject(ctx, bucket, objectName, minio.RemoveObjectOptions{})
}
