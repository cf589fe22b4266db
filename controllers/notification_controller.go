package controllers

import (
	"net/http"
	"strconv"

	"github.com/civic-pulse/api-go/models"
	"github.com/civic-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

// GetRecent returns the latest notifications plus the unread badge count.
func (nc *NotificationController) GetRecent(c *gin.Context) {
	user := utils.GetUser(c)

	limit := 5
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= 50 {
		limit = l
	}

	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", user.UserID).
		Order("created_at desc").
		Limit(limit).
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications", "success": false})
		return
	}

	var unreadCount int64
	nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.UserID, false).
		Count(&unreadCount)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"data":        notifications,
		"unreadCount": unreadCount,
	})
}

func (nc *NotificationController) GetAll(c *gin.Context) {
	user := utils.GetUser(c)

	var notifications []models.Notification
	if err := nc.DB.Where("user_id = ?", user.UserID).
		Order("created_at desc").
		Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": notifications})
}

// MarkAsRead marks one of the caller's notifications as read. Ownership
// is part of the predicate so users cannot touch other users' rows.
func (nc *NotificationController) MarkAsRead(c *gin.Context) {
	user := utils.GetUser(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification id", "success": false})
		return
	}

	result := nc.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, user.UserID).
		UpdateColumn("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification", "success": false})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (nc *NotificationController) MarkAllAsRead(c *gin.Context) {
	user := utils.GetUser(c)

	if err := nc.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", user.UserID, false).
		UpdateColumn("is_read", true).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
