package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/civic-pulse/api-go/models"
	"github.com/civic-pulse/api-go/services"
	"github.com/civic-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB        *gorm.DB
	Reports   services.ReportService
	Lifecycle services.LifecycleService
	Expiry    services.ExpiryService
}

func NewAdminController(db *gorm.DB, reports services.ReportService, lifecycle services.LifecycleService, expiry services.ExpiryService) *AdminController {
	return &AdminController{DB: db, Reports: reports, Lifecycle: lifecycle, Expiry: expiry}
}

// GetReports returns the triage queue for the admin's department,
// critical reports first.
func (ac *AdminController) GetReports(c *gin.Context) {
	user := utils.GetUser(c)
	reports, err := ac.Reports.GetAdminReports(c.Request.Context(),
		services.Actor{ID: user.UserID, Role: user.Role})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports})
}

type UpdateStatusRequest struct {
	Status        string `json:"status" binding:"required"`
	AdminNote     string `json:"adminNote"`
	Priority      string `json:"priority"`
	EstimatedCost string `json:"estimatedCost"`
}

// UpdateReportStatus runs an admin status transition on a report.
func (ac *AdminController) UpdateReportStatus(c *gin.Context) {
	user := utils.GetUser(c)

	reportID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id", "success": false})
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	err = ac.Lifecycle.UpdateReportStatus(c.Request.Context(), uint(reportID), req.Status, req.AdminNote,
		services.Actor{ID: user.UserID, Role: user.Role},
		services.UpdateStatusOptions{Priority: req.Priority, EstimatedCost: req.EstimatedCost})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Status updated"})
}

// SweepVerifications runs the auto-close pass on demand.
func (ac *AdminController) SweepVerifications(c *gin.Context) {
	closed, err := ac.Expiry.SweepExpiredVerifications(c.Request.Context(), time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sweep failed", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "closed": closed})
}

type AdminProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	StateName   string `json:"stateName" binding:"required"`
	City        string `json:"city" binding:"required"`
	Department  string `json:"department" binding:"required"`
	Designation string `json:"designation"`
	EmployeeID  string `json:"employeeId"`
	Phone       string `json:"phone"`
}

// UpdateProfile onboards an admin: state, city and department are
// created on first use, then the admin profile is bound to the department.
func (ac *AdminController) UpdateProfile(c *gin.Context) {
	user := utils.GetUser(c)

	var req AdminProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	err := ac.DB.Transaction(func(tx *gorm.DB) error {
		var state models.State
		if err := tx.Where(models.State{Name: req.StateName}).FirstOrCreate(&state).Error; err != nil {
			return err
		}

		var city models.City
		if err := tx.Where(models.City{Name: req.City, StateID: state.ID}).FirstOrCreate(&city).Error; err != nil {
			return err
		}

		var department models.Department
		if err := tx.Where(models.Department{Name: req.Department, CityID: city.ID}).FirstOrCreate(&department).Error; err != nil {
			return err
		}

		var profile models.AdminProfile
		err := tx.Where("user_id = ?", user.UserID).First(&profile).Error
		if err == gorm.ErrRecordNotFound {
			profile = models.AdminProfile{
				UserID:       user.UserID,
				DepartmentID: department.ID,
				Designation:  req.Designation,
				EmployeeID:   req.EmployeeID,
				Phone:        req.Phone,
				IsVerified:   true,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := tx.Model(&profile).Updates(map[string]interface{}{
				"department_id": department.ID,
				"designation":   req.Designation,
				"employee_id":   req.EmployeeID,
				"phone":         req.Phone,
			}).Error; err != nil {
				return err
			}
		}

		nameParts := strings.SplitN(req.Name, " ", 2)
		updates := map[string]interface{}{"first_name": nameParts[0]}
		if len(nameParts) > 1 {
			updates["last_name"] = nameParts[1]
		} else {
			updates["last_name"] = ""
		}
		return tx.Model(&models.User{}).Where("id = ?", user.UserID).Updates(updates).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Profile updated"})
}

// ModerateComment hides or restores a citizen comment.
func (ac *AdminController) ModerateComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment id", "success": false})
		return
	}

	var req struct {
		Approve *bool `json:"approve" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	result := ac.DB.Model(&models.Comment{}).Where("id = ?", commentID).
		UpdateColumn("is_moderated", !*req.Approve)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate comment", "success": false})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
