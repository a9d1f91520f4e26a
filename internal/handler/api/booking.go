package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"playpoint/internal/domain/booking"
	"playpoint/internal/domain/session"
	reqdto "playpoint/internal/handler/dto/request"
	resdto "playpoint/internal/handler/dto/response"
	"playpoint/internal/usecase/commands"
	"playpoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingCommands commands.BookingCommands
	bookingQueries  queries.BookingQueries
}

func NewBookingHandler(bookingCommands commands.BookingCommands, bookingQueries queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		bookingCommands: bookingCommands,
		bookingQueries:  bookingQueries,
	}
}

// @Summary Create booking
// @Description Reserve a station for a future time slot
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateBookingRequest true "Booking request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.bookingCommands.Create(c.Request.Context(), commands.CreateBookingInput{
		StationID:  req.StationID,
		CustomerID: req.CustomerID,
		Start:      req.Start,
		Duration:   req.GetDuration(),
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrStationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Station not found",
			})
		case errors.Is(err, commands.ErrStationUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Station is under maintenance",
			})
		case errors.Is(err, commands.ErrOverlapConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Booking overlaps an existing booking",
			})
		case errors.Is(err, commands.ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid time slot",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromBookingSnapshot(snap))
}

// @Summary Confirm booking
// @Description Confirm a pending booking
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/confirm [post]
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, h.bookingCommands.Confirm)
}

// @Summary Cancel booking
// @Description Cancel a booking, releasing its slot
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	h.transition(c, h.bookingCommands.Cancel)
}

// @Summary Check in booking
// @Description Convert a booking into a live session on its station
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Param request body reqdto.CheckInRequest true "Session parameters"
// @Success 200 {object} resdto.CheckInResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/{id}/checkin [post]
func (h *BookingHandler) CheckInBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	var req reqdto.CheckInRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	res, err := h.bookingCommands.CheckIn(c.Request.Context(), id, commands.CheckInInput{
		CustomerName: req.CustomerName,
		GameName:     req.GameName,
		Mode:         session.BillingMode(req.BillingMode),
		Pricing: session.Pricing{
			PriceCents: req.PriceCents,
			Games:      req.Games,
			RateCents:  req.RateCents,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrStationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Station not found",
			})
		case errors.Is(err, commands.ErrStationOccupied):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Station is occupied",
			})
		case errors.Is(err, commands.ErrStationUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Station is under maintenance",
			})
		case errors.Is(err, commands.ErrAlreadyConverted), errors.Is(err, commands.ErrInvalidBookingState):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Booking cannot be checked in",
			})
		case errors.Is(err, commands.ErrUnsupportedMode):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Station does not support billing mode",
			})
		case errors.Is(err, commands.ErrInvalidSessionParams):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid session parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.CheckInResponse{
		Booking: resdto.FromBookingSnapshot(res.Booking),
		Session: resdto.FromSessionSnapshot(res.Session),
	})
}

// @Summary List bookings
// @Description List bookings for a station, optionally narrowed to a time range
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param station_id query string false "Station ID"
// @Param start query string false "Range start (RFC 3339)"
// @Param end query string false "Range end (RFC 3339)"
// @Success 200 {array} queries.BookingView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	stationIDStr := c.Query("station_id")
	if stationIDStr == "" {
		c.JSON(http.StatusOK, h.bookingQueries.ListPending(c.Request.Context()))
		return
	}

	stationID, err := uuid.Parse(stationIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid station ID format",
		})
		return
	}

	startStr, endStr := c.Query("start"), c.Query("end")
	if startStr == "" || endStr == "" {
		c.JSON(http.StatusOK, h.bookingQueries.ListByStation(c.Request.Context(), stationID))
		return
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid start time format",
		})
		return
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid end time format",
		})
		return
	}

	c.JSON(http.StatusOK, h.bookingQueries.FindConflicts(c.Request.Context(), stationID, start, end))
}

func (h *BookingHandler) transition(c *gin.Context, fn func(ctx context.Context, id uuid.UUID) (booking.Snapshot, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	snap, err := fn(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		case errors.Is(err, commands.ErrAlreadyConverted), errors.Is(err, commands.ErrInvalidBookingState):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Operation not valid for booking state",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingSnapshot(snap))
}
