package controllers

import (
	"net/http"

	"github.com/civic-pulse/api-go/models"
	"github.com/civic-pulse/api-go/services"
	"github.com/civic-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

type AddCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	IsPublic *bool  `json:"isPublic"`
}

func (cc *CommentController) AddComment(c *gin.Context) {
	user := utils.GetUser(c)

	var report models.Report
	if err := cc.DB.Where("report_id = ?", c.Param("reportId")).First(&report).Error; err != nil {
		respondServiceError(c, services.ErrNotFound)
		return
	}

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	comment := models.Comment{
		ReportID: report.ID,
		AuthorID: user.UserID,
		Content:  req.Content,
		IsPublic: isPublic,
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add comment", "success": false})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": comment})
}

func (cc *CommentController) GetComments(c *gin.Context) {
	var report models.Report
	if err := cc.DB.Where("report_id = ?", c.Param("reportId")).First(&report).Error; err != nil {
		respondServiceError(c, services.ErrNotFound)
		return
	}

	var comments []models.Comment
	err := cc.DB.Where("report_id = ? AND is_public = ? AND is_moderated = ?", report.ID, true, false).
		Order("created_at desc").
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "first_name", "avatar")
		}).
		Find(&comments).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": comments})
}
