package handlers

import (
	"context"
	"net/http"
	"time"

	bookingRecordRepo "krib/database/repository/bookingrecord"
	"krib/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingRecordsHandler serves the contractor dashboard's booking history.
type BookingRecordsHandler struct {
	Repo   bookingRecordRepo.BookingRecordRepository
	Logger *zap.Logger
}

// NewBookingRecordsHandler constructs a BookingRecordsHandler.
func NewBookingRecordsHandler(repo bookingRecordRepo.BookingRecordRepository, logger *zap.Logger) *BookingRecordsHandler {
	return &BookingRecordsHandler{Repo: repo, Logger: logger}
}

// ListBookings returns the authenticated contractor's booking records.
func (h *BookingRecordsHandler) ListBookings(c *gin.Context) {
	contractorID := c.GetString("contractorID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	records, err := h.Repo.GetByContractorID(ctx, contractorID)
	if err != nil {
		h.Logger.Error("failed to list booking records",
			zap.String("contractorID", contractorID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "Please try again later")
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": records})
}

// GetBooking returns one booking record, if it belongs to the
// authenticated contractor.
func (h *BookingRecordsHandler) GetBooking(c *gin.Context) {
	contractorID := c.GetString("contractorID")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	record, err := h.Repo.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	if record.ContractorID != contractorID {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": record})
}
