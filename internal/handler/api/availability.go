package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"court-reserve/internal/domain/schedule"
	reqdto "court-reserve/internal/handler/dto/request"
	resdto "court-reserve/internal/handler/dto/response"
	"court-reserve/internal/usecase/queries"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
	window              schedule.Window
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries, window schedule.Window) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
		window:              window,
	}
}

// @Summary Check slot availability
// @Description Check one court slot; conflicts list every overlapping reservation
// @Tags availability
// @Produce json
// @Param court_id query string true "Court ID"
// @Param date query string true "Date YYYY-MM-DD"
// @Param start_time query string true "Start HH:MM"
// @Param end_time query string true "End HH:MM"
// @Param exclude_id query string false "Reservation to ignore"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *AvailabilityHandler) Check(c *gin.Context) {
	var req reqdto.CheckAvailabilityRequest
	if bindErr := c.ShouldBindQuery(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	courtID, err := uuid.Parse(req.CourtID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid court ID format"})
		return
	}
	var excludeID *uuid.UUID
	if req.ExcludeID != "" {
		id, err := uuid.Parse(req.ExcludeID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid exclude ID format"})
			return
		}
		excludeID = &id
	}

	date, start, end, err := req.ParseSlot()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	interval, err := schedule.NewInterval(date, start, end, h.window)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.availabilityQueries.Check(c.Request.Context(), courtID, interval, excludeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityResult(result))
}

// @Summary Check slots across courts
// @Description Availability grid for several slots over several courts on one date
// @Tags availability
// @Accept json
// @Produce json
// @Param request body reqdto.BatchAvailabilityRequest true "Batch request"
// @Success 200 {object} resdto.BatchAvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability/batch [post]
func (h *AvailabilityHandler) CheckBatch(c *gin.Context) {
	var req reqdto.BatchAvailabilityRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	date, intervals, err := req.ParseSlots(h.window)
	if err != nil {
		if errors.Is(err, reqdto.ErrNoSlots) || errors.Is(err, reqdto.ErrInvalidDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.availabilityQueries.CheckBatch(c.Request.Context(), date, intervals, req.CourtIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, resdto.FromBatchAvailability(batch))
}
