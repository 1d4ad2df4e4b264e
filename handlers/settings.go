package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	settingsRepo "krib/database/repository/settings"
	"krib/models"
	"krib/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsHandler serves the public widget config and the JWT-protected
// contractor settings admin API.
type SettingsHandler struct {
	Repo   settingsRepo.WidgetSettingsRepository
	Logger *zap.Logger
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(repo settingsRepo.WidgetSettingsRepository, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{Repo: repo, Logger: logger}
}

// GetWidgetConfig returns the public widget configuration for a
// contractor: company name, services, theming and form requirements.
func (h *SettingsHandler) GetWidgetConfig(c *gin.Context) {
	contractorID := c.Param("contractorID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.Repo.GetByContractorID(ctx, contractorID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "widget is not configured for this contractor"})
			return
		}
		h.Logger.Error("failed to load widget settings",
			zap.String("contractorID", contractorID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "Please try again later")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"companyName":    settings.CompanyName,
		"services":       settings.Services,
		"maxAdvanceDays": settings.MaxAdvanceDays,
		"requirePhone":   settings.RequirePhone,
		"requireAddress": settings.RequireAddress,
		"primaryColor":   settings.PrimaryColor,
	})
}

// GetSettings returns the authenticated contractor's full widget settings.
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	contractorID := c.GetString("contractorID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	settings, err := h.Repo.GetByContractorID(ctx, contractorID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "widget settings not found"})
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings creates or replaces the authenticated contractor's widget
// settings.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	contractorID := c.GetString("contractorID")

	var settings models.WidgetSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	// The token owns the contractor identity; the body cannot override it.
	settings.ContractorID = contractorID

	if settings.MaxAdvanceDays <= 0 {
		settings.MaxAdvanceDays = 60
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.Upsert(ctx, &settings); err != nil {
		h.Logger.Error("failed to update widget settings",
			zap.String("contractorID", contractorID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settings})
}
