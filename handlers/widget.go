package handlers

import (
	"errors"
	"net/http"

	"krib/models"
	"krib/services/widget"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WidgetHandler exposes the public booking widget API.
type WidgetHandler struct {
	Service widget.BookingSessionService
	Logger  *zap.Logger
}

// NewWidgetHandler constructs a WidgetHandler.
func NewWidgetHandler(svc widget.BookingSessionService, logger *zap.Logger) *WidgetHandler {
	return &WidgetHandler{Service: svc, Logger: logger}
}

// respondWidgetError maps the service error taxonomy onto HTTP statuses.
// Validation errors carry per-field messages so the widget can render
// inline guidance.
func respondWidgetError(c *gin.Context, err error) {
	var (
		selErr   *widget.SelectionError
		transErr *widget.InvalidTransitionError
		valErrs  widget.ValidationErrors
		fetchErr *widget.FetchError
		subErr   *widget.SubmissionError
	)

	switch {
	case errors.Is(err, widget.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
	case errors.As(err, &valErrs):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"validationErrors": valErrs})
	case errors.As(err, &selErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": selErr.Message, "field": selErr.Field})
	case errors.As(err, &transErr):
		c.JSON(http.StatusConflict, gin.H{"error": transErr.Message})
	case errors.As(err, &fetchErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": fetchErr.Message, "month": fetchErr.Month})
	case errors.As(err, &subErr):
		c.JSON(http.StatusBadGateway, gin.H{"error": subErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Please try again later"})
	}
}

// StartSession creates a new booking session for a contractor's widget.
func (h *WidgetHandler) StartSession(c *gin.Context) {
	contractorID := c.Param("contractorID")
	if contractorID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing contractor ID"})
		return
	}

	session, err := h.Service.InitiateSession(contractorID)
	if err != nil {
		h.Logger.Error("failed to initiate booking session",
			zap.String("contractorID", contractorID), zap.Error(err))
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSession returns the current session snapshot.
func (h *WidgetHandler) GetSession(c *gin.Context) {
	session, err := h.Service.GetSession(c.Param("sessionID"))
	if err != nil {
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectService records the visitor's service choice.
func (h *WidgetHandler) SelectService(c *gin.Context) {
	var input struct {
		ServiceID string `json:"serviceId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SelectService(c.Param("sessionID"), input.ServiceID)
	if err != nil {
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectDate records the visitor's date choice.
func (h *WidgetHandler) SelectDate(c *gin.Context) {
	var input struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SelectDate(c.Param("sessionID"), input.Date)
	if err != nil {
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SelectTime records the visitor's time slot choice.
func (h *WidgetHandler) SelectTime(c *gin.Context) {
	var input struct {
		Start string `json:"start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.SelectTime(c.Param("sessionID"), input.Start)
	if err != nil {
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GoBack moves the wizard one step earlier.
func (h *WidgetHandler) GoBack(c *gin.Context) {
	session, err := h.Service.GoBack(c.Param("sessionID"))
	if err != nil {
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// SubmitBooking validates the customer form and finalizes the booking
// through the submission gateway.
func (h *WidgetHandler) SubmitBooking(c *gin.Context) {
	var form models.CustomerForm
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Service.Submit(c.Param("sessionID"), form)
	if err != nil {
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"session":      session,
		"confirmation": session.SubmissionResult,
	})
}

// CancelSession discards a booking session.
func (h *WidgetHandler) CancelSession(c *gin.Context) {
	if err := h.Service.CancelSession(c.Param("sessionID")); err != nil {
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

// GetAvailability returns the cached availability window for one month.
func (h *WidgetHandler) GetAvailability(c *gin.Context) {
	contractorID := c.Param("contractorID")
	month := c.Query("month")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameter: month"})
		return
	}

	window, err := h.Service.GetMonthAvailability(contractorID, month)
	if err != nil {
		respondWidgetError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"availability": window})
}
