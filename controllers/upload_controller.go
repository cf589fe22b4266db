package controllers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/civic-pulse/api-go/config"
	"github.com/civic-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadController issues presigned R2 PUT URLs for report evidence.
// Citizens upload photos/videos directly to storage and pass the
// resulting URLs in the report submission.
type UploadController struct {
	DB       *gorm.DB
	R2Client *s3.Client
	R2Config *config.R2Config
}

type EvidenceUploadRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
	FileSize    int64  `json:"fileSize" binding:"required"`
	MediaType   string `json:"mediaType" binding:"required,oneof=photo video"`
}

type EvidenceUploadBatchRequest struct {
	Files []EvidenceUploadRequest `json:"files" binding:"required,dive"`
}

type PresignedURLResponse struct {
	UploadURL    string `json:"uploadUrl"`
	FileURL      string `json:"fileUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	Key          string `json:"key"`
	ExpiresIn    int    `json:"expiresIn"`
}

func NewUploadController(db *gorm.DB) *UploadController {
	r2Config := config.GetR2Config()

	r2Client := s3.New(s3.Options{
		BaseEndpoint: aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", r2Config.AccountID)),
		Credentials: credentials.NewStaticCredentialsProvider(
			r2Config.AccessKeyID,
			r2Config.SecretAccessKey,
			"",
		),
		Region: r2Config.Region,
	})

	return &UploadController{
		DB:       db,
		R2Client: r2Client,
		R2Config: r2Config,
	}
}

// GetEvidenceUploadURLs presigns uploads for a batch of evidence files.
func (uc *UploadController) GetEvidenceUploadURLs(c *gin.Context) {
	user := utils.GetUser(c)
	var req EvidenceUploadBatchRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Files) > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Maximum 10 files allowed per report"})
		return
	}

	var responses []PresignedURLResponse
	for _, fileReq := range req.Files {
		if !uc.isValidFileType(fileReq.ContentType, fileReq.MediaType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid file type for %s", fileReq.FileName),
			})
			return
		}
		if !uc.isValidFileSize(fileReq.FileSize, fileReq.MediaType) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("File size exceeds limit for %s", fileReq.FileName),
			})
			return
		}

		key := uc.generateFileKey(user.UserID, fileReq.FileName, fileReq.MediaType)
		presignedURL, err := uc.createPresignedURL(key, fileReq.ContentType)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": fmt.Sprintf("Failed to create upload URL for %s", fileReq.FileName),
			})
			return
		}

		response := PresignedURLResponse{
			UploadURL: presignedURL,
			FileURL:   fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, key),
			Key:       key,
			ExpiresIn: 3600,
		}
		if fileReq.MediaType == "video" {
			response.ThumbnailURL = fmt.Sprintf("%s/%s", uc.R2Config.PublicURL, uc.generateThumbnailKey(key))
		}

		responses = append(responses, response)
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    gin.H{"files": responses},
		Message: "Presigned URLs generated successfully",
	})
}

func (uc *UploadController) isValidFileType(contentType, mediaType string) bool {
	validTypes := map[string][]string{
		"photo": {
			"image/jpeg", "image/jpg", "image/png", "image/webp", "image/heic",
		},
		"video": {
			"video/mp4", "video/quicktime", "video/avi", "video/webm", "video/mov",
		},
	}

	allowed, exists := validTypes[mediaType]
	if !exists {
		return false
	}

	for _, validType := range allowed {
		if contentType == validType {
			return true
		}
	}
	return false
}

func (uc *UploadController) isValidFileSize(fileSize int64, mediaType string) bool {
	limits := map[string]int64{
		"photo": 10 * 1024 * 1024,  // 10MB
		"video": 100 * 1024 * 1024, // 100MB
	}

	limit, exists := limits[mediaType]
	if !exists {
		return false
	}

	return fileSize <= limit
}

func (uc *UploadController) generateFileKey(userID uint, fileName, mediaType string) string {
	ext := filepath.Ext(fileName)
	return fmt.Sprintf("evidence/%s/%d/%d_%s%s", mediaType, userID, time.Now().Unix(), uuid.New().String(), ext)
}

func (uc *UploadController) generateThumbnailKey(originalKey string) string {
	ext := filepath.Ext(originalKey)
	return originalKey[:len(originalKey)-len(ext)] + "_thumb.jpg"
}

func (uc *UploadController) createPresignedURL(key, contentType string) (string, error) {
	input := &s3.PutObjectInput{
		Bucket:      aws.String(uc.R2Config.BucketName),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}

	presigner := s3.NewPresignClient(uc.R2Client)
	req, err := presigner.PresignPutObject(context.TODO(), input, func(opts *s3.PresignOptions) {
		opts.Expires = time.Hour
	})
	if err != nil {
		return "", err
	}

	return req.URL, nil
}
