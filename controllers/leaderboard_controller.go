package controllers

import (
	"net/http"

	"github.com/civic-pulse/api-go/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LeaderboardController struct {
	DB *gorm.DB
}

type LeaderboardQuery struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"pageSize,default=10" binding:"min=1,max=50"`
}

func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{DB: db}
}

type leaderboardEntry struct {
	ID               uint   `json:"id"`
	Username         string `json:"username"`
	FirstName        string `json:"firstName"`
	Avatar           string `json:"avatar"`
	ReputationPoints int    `json:"reputationPoints"`
	VerifiedReports  int    `json:"verifiedReports"`
}

// GetLeaderboard ranks citizens by reputation earned from verifying
// reports and having their own reports verified.
func (lc *LeaderboardController) GetLeaderboard(c *gin.Context) {
	var query LeaderboardQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	offset := (query.Page - 1) * query.PageSize

	var total int64
	lc.DB.Model(&models.User{}).Where("is_banned = ?", false).Count(&total)

	var entries []leaderboardEntry
	err := lc.DB.Model(&models.User{}).
		Select("id, username, first_name, avatar, reputation_points, verified_reports").
		Where("is_banned = ?", false).
		Order("reputation_points desc, verified_reports desc").
		Offset(offset).
		Limit(query.PageSize).
		Find(&entries).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching leaderboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
		"pagination": gin.H{
			"currentPage": query.Page,
			"pageSize":    query.PageSize,
			"totalItems":  total,
			"totalPages":  (total + int64(query.PageSize) - 1) / int64(query.PageSize),
		},
	})
}
