package controllers

import (
	"net/http"

	"github.com/civic-pulse/api-go/services"
	"github.com/civic-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
)

type ReportController struct {
	Reports   services.ReportService
	Lifecycle services.LifecycleService
}

func NewReportController(reports services.ReportService, lifecycle services.LifecycleService) *ReportController {
	return &ReportController{Reports: reports, Lifecycle: lifecycle}
}

type CreateReportRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description" binding:"required"`
	Category       string   `json:"category" binding:"required"`
	CustomCategory string   `json:"customCategory"`
	Priority       string   `json:"priority" binding:"omitempty,oneof=AUTO LOW MEDIUM HIGH CRITICAL"`
	CityID         uint     `json:"cityId" binding:"required"`
	DepartmentID   uint     `json:"departmentId" binding:"required"`
	Address        string   `json:"address"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Tags           []string `json:"tags"`
	ImageURLs      []string `json:"imageUrls"`
	VideoURLs      []string `json:"videoUrls"`
}

func (rc *ReportController) CreateReport(c *gin.Context) {
	user := utils.GetUser(c)
	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	report, err := rc.Reports.CreateReport(c.Request.Context(), user.UserID, services.CreateReportInput{
		Title:          req.Title,
		Description:    req.Description,
		Category:       req.Category,
		CustomCategory: req.CustomCategory,
		Priority:       req.Priority,
		CityID:         req.CityID,
		DepartmentID:   req.DepartmentID,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Tags:           req.Tags,
		ImageURLs:      req.ImageURLs,
		VideoURLs:      req.VideoURLs,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "reportId": report.ReportID})
}

func (rc *ReportController) GetReport(c *gin.Context) {
	user := utils.GetUser(c)
	report, err := rc.Reports.GetReportByCode(c.Request.Context(), c.Param("reportId"),
		services.Actor{ID: user.UserID, Role: user.Role})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

func (rc *ReportController) GetMyReports(c *gin.Context) {
	user := utils.GetUser(c)
	reports, err := rc.Reports.GetUserReports(c.Request.Context(), user.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports})
}

// ConfirmResolution is the citizen's acceptance of a fix.
func (rc *ReportController) ConfirmResolution(c *gin.Context) {
	user := utils.GetUser(c)
	err := rc.Lifecycle.ConfirmResolution(c.Request.Context(), c.Param("reportId"),
		services.Actor{ID: user.UserID, Role: user.Role})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Resolution confirmed"})
}

type ReopenRequest struct {
	Reason string `json:"reason"`
}

// ReopenReport is the citizen's dispute of a fix.
func (rc *ReportController) ReopenReport(c *gin.Context) {
	user := utils.GetUser(c)
	var req ReopenRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	err := rc.Lifecycle.ReopenReport(c.Request.Context(), c.Param("reportId"),
		services.Actor{ID: user.UserID, Role: user.Role}, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report reopened"})
}
