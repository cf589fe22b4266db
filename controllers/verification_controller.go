package controllers

import (
	"net/http"

	"github.com/civic-pulse/api-go/models"
	"github.com/civic-pulse/api-go/services"
	"github.com/civic-pulse/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type VerificationController struct {
	DB            *gorm.DB
	Verifications services.VerificationService
}

func NewVerificationController(db *gorm.DB, verifications services.VerificationService) *VerificationController {
	return &VerificationController{DB: db, Verifications: verifications}
}

// VerifyReport casts the calling user's confirmation vote on a report.
func (vc *VerificationController) VerifyReport(c *gin.Context) {
	user := utils.GetUser(c)
	if err := vc.Verifications.VerifyReport(c.Request.Context(), c.Param("reportId"), user.UserID); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report verified"})
}

// GetReportVerifications lists the verifiers of a report.
func (vc *VerificationController) GetReportVerifications(c *gin.Context) {
	report, err := services.FindReport(vc.DB.WithContext(c.Request.Context()), c.Param("reportId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var verifications []models.Verification
	if err := vc.DB.Where("report_id = ?", report.ID).
		Preload("Verifier", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "username", "first_name", "avatar")
		}).
		Order("created_at asc").
		Find(&verifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch verifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       verifications,
		"count":      len(verifications),
		"isVerified": report.IsVerified,
	})
}

