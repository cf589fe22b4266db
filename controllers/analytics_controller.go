package controllers

import (
	"net/http"
	"strconv"

	"github.com/civic-pulse/api-go/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AnalyticsController struct {
	DB *gorm.DB
}

func NewAnalyticsController(db *gorm.DB) *AnalyticsController {
	return &AnalyticsController{DB: db}
}

type areaReportCount struct {
	AreaID             uint     `json:"areaId"`
	Name               string   `json:"name"`
	TotalActiveReports int64    `json:"totalActiveReports"`
	LatitudeSample     *float64 `json:"latitudeSample"`
	LongitudeSample    *float64 `json:"longitudeSample"`
}

// GetAreaReportCounts powers the heatmap: active (non-resolved) report
// counts per area of a city, with one sample coordinate per area.
func (ac *AnalyticsController) GetAreaReportCounts(c *gin.Context) {
	cityID, err := strconv.ParseUint(c.Param("cityId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city id", "success": false})
		return
	}
	category := c.Query("category")

	var areas []models.Area
	if err := ac.DB.Where("city_id = ?", cityID).Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics query failed", "success": false})
		return
	}

	counts := make([]areaReportCount, 0, len(areas))
	for _, area := range areas {
		query := ac.DB.Model(&models.Report{}).
			Where("area_id = ? AND status <> ?", area.ID, models.StatusResolved)
		if category != "" {
			query = query.Where("category = ?", category)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics query failed", "success": false})
			return
		}

		entry := areaReportCount{AreaID: area.ID, Name: area.Name, TotalActiveReports: total}

		var sample models.Report
		if err := ac.DB.Select("latitude", "longitude").
			Where("area_id = ? AND status <> ?", area.ID, models.StatusResolved).
			First(&sample).Error; err == nil {
			entry.LatitudeSample = sample.Latitude
			entry.LongitudeSample = sample.Longitude
		}

		counts = append(counts, entry)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": counts})
}

// GetReportsByArea lists the reports inside one area, newest first.
func (ac *AnalyticsController) GetReportsByArea(c *gin.Context) {
	areaID, err := strconv.ParseUint(c.Param("areaId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid area id", "success": false})
		return
	}
	category := c.Query("category")

	query := ac.DB.Where("area_id = ?", areaID)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var reports []models.Report
	if err := query.Order("created_at desc").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" asc").Limit(1) }).
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Analytics query failed", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports})
}
