package api

import (
	"errors"
	"net/http"

	"playpoint/internal/domain/payment"
	"playpoint/internal/domain/session"
	reqdto "playpoint/internal/handler/dto/request"
	resdto "playpoint/internal/handler/dto/response"
	"playpoint/internal/usecase/commands"
	"playpoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SessionHandler struct {
	sessionCommands commands.SessionCommands
	sessionQueries  queries.SessionQueries
}

func NewSessionHandler(sessionCommands commands.SessionCommands, sessionQueries queries.SessionQueries) *SessionHandler {
	return &SessionHandler{
		sessionCommands: sessionCommands,
		sessionQueries:  sessionQueries,
	}
}

// @Summary Start session
// @Description Start a walk-in session on a free station
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.StartSessionRequest true "Session parameters"
// @Success 201 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req reqdto.StartSessionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.sessionCommands.Start(c.Request.Context(), commands.StartSessionInput{
		StationID:    req.StationID,
		CustomerID:   req.CustomerID,
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

	c.JSON(http.StatusCreated, resdto.FromSessionSnapshot(snap))
}

// @Summary End session
// @Description End the station's active session and create its settlement transaction
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param stationID path string true "Station ID"
// @Param request body reqdto.EndSessionRequest true "End parameters"
// @Success 200 {object} resdto.EndSessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{stationID}/end [post]
func (h *SessionHandler) EndSession(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("stationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid station ID format",
		})
		return
	}

	var req reqdto.EndSessionRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	res, err := h.sessionCommands.End(c.Request.Context(), stationID, commands.EndSessionInput{
		Reason: session.EndReason(req.Reason),
		Method: payment.Method(req.Method),
	})
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActiveSession):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active session on station",
			})
		case errors.Is(err, commands.ErrInvalidEndReason), errors.Is(err, commands.ErrInvalidMethod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid end parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.EndSessionResponse{
		Session:     resdto.FromSessionSnapshot(res.Session),
		Transaction: resdto.FromTransactionSnapshot(res.Transaction),
	})
}

// @Summary Add game
// @Description Increment the game count of the station's per-game session
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param stationID path string true "Station ID"
// @Success 200 {object} resdto.SessionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /sessions/{stationID}/games [post]
func (h *SessionHandler) AddGame(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("stationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid station ID format",
		})
		return
	}

	snap, err := h.sessionCommands.AddGame(c.Request.Context(), stationID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNoActiveSession):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active session on station",
			})
		case errors.Is(err, commands.ErrInvalidSessionParams):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Session is not billed per game",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromSessionSnapshot(snap))
}

// @Summary List active sessions
// @Description List every running session with a live cost snapshot
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.SessionView
// @Failure 401 {object} map[string]string
// @Router /sessions [get]
func (h *SessionHandler) ListActiveSessions(c *gin.Context) {
	c.JSON(http.StatusOK, h.sessionQueries.ListActive(c.Request.Context()))
}

// @Summary Current cost
// @Description Accrued cost of the station's active session right now
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Param stationID path string true "Station ID"
// @Success 200 {object} resdto.CurrentCostResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sessions/{stationID}/cost [get]
func (h *SessionHandler) CurrentCost(c *gin.Context) {
	stationID, err := uuid.Parse(c.Param("stationID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid station ID format",
		})
		return
	}

	cost, err := h.sessionQueries.CurrentCost(c.Request.Context(), stationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "No active session on station",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.CurrentCostResponse{StationID: stationID, CostCents: cost})
}
