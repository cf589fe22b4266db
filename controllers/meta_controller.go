package controllers

import (
	"net/http"
	"strconv"

	"github.com/civic-pulse/api-go/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MetaController serves the lookup data the report form needs: supported
// cities and the departments within a city.
type MetaController struct {
	DB *gorm.DB
}

func NewMetaController(db *gorm.DB) *MetaController {
	return &MetaController{DB: db}
}

func (mc *MetaController) GetCities(c *gin.Context) {
	var cities []models.City
	if err := mc.DB.Select("id", "name").Order("name asc").Find(&cities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cities", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": cities})
}

func (mc *MetaController) GetDepartmentsByCity(c *gin.Context) {
	cityID, err := strconv.ParseUint(c.Param("cityId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid city id", "success": false})
		return
	}

	var departments []models.Department
	if err := mc.DB.Select("id", "name").Where("city_id = ?", cityID).
		Order("name asc").Find(&departments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch departments", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": departments})
}
