package api

import (
	"errors"
	"net/http"

	"playpoint/internal/domain/station"
	reqdto "playpoint/internal/handler/dto/request"
	resdto "playpoint/internal/handler/dto/response"
	"playpoint/internal/usecase/commands"
	"playpoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StationHandler struct {
	stationCommands commands.StationCommands
	sessionQueries  queries.SessionQueries
}

func NewStationHandler(stationCommands commands.StationCommands, sessionQueries queries.SessionQueries) *StationHandler {
	return &StationHandler{
		stationCommands: stationCommands,
		sessionQueries:  sessionQueries,
	}
}

// @Summary Station board
// @Description Every station with status and live occupancy
// @Tags stations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.StationView
// @Failure 401 {object} map[string]string
// @Router /stations [get]
func (h *StationHandler) ListStations(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionQueries.Board(c.Request.Context()))
}

// @Summary Set station status
// @Description Move a station in or out of maintenance
// @Tags stations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Station ID"
// @Param request body reqdto.SetStationStatusRequest true "Target status"
// @Success 200 {object} resdto.StationResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /stations/{id}/status [patch]
func (h *StationHandler) SetStationStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid station ID format",
		})
		return
	}

	var req reqdto.SetStationStatusRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.stationCommands.SetStatus(c.Request.Context(), id, station.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrStationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Station not found",
			})
		case errors.Is(err, commands.ErrInvalidStationStatus):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid station status",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromStationSnapshot(snap))
}
