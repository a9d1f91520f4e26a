package api

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"playpoint/internal/domain/payment"
	reqdto "playpoint/internal/handler/dto/request"
	resdto "playpoint/internal/handler/dto/response"
	"playpoint/internal/pkg/config"
	"playpoint/internal/usecase/commands"
	"playpoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct {
	paymentCommands commands.PaymentCommands
	paymentQueries  queries.PaymentQueries
	callbackSecret  string
}

func NewPaymentHandler(paymentCommands commands.PaymentCommands, paymentQueries queries.PaymentQueries, cfg config.PaymentsConfig) *PaymentHandler {
	return &PaymentHandler{
		paymentCommands: paymentCommands,
		paymentQueries:  paymentQueries,
		callbackSecret:  cfg.CallbackSecret,
	}
}

// @Summary Initiate payment
// @Description Attach the provider request id of an outbound mobile-money request
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Param request body reqdto.InitiatePaymentRequest true "Provider request id"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /payments/{id}/initiate [post]
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	var req reqdto.InitiatePaymentRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	snap, err := h.paymentCommands.Initiate(c.Request.Context(), id, req.ProviderRequestID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTransactionNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Transaction not found",
			})
		case errors.Is(err, commands.ErrPaymentNotPending):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Transaction is not pending",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionSnapshot(snap))
}

// @Summary Payment callback
// @Description Provider webhook delivering an asynchronous payment confirmation
// @Tags payments
// @Accept json
// @Produce json
// @Param X-Callback-Secret header string true "Shared webhook secret"
// @Param request body reqdto.PaymentCallbackRequest true "Provider confirmation"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/callbacks [post]
func (h *PaymentHandler) PaymentCallback(c *gin.Context) {
	secret := c.GetHeader("X-Callback-Secret")
	if subtle.ConstantTimeCompare([]byte(secret), []byte(h.callbackSecret)) != 1 {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid callback secret",
		})
		return
	}

	var req reqdto.PaymentCallbackRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	// Legacy providers omit the method; derive it from the reference prefix
	// here and nowhere else.
	if req.Method == "" {
		if _, ok := payment.ParseLegacyRef(req.Reference); !ok {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unrecognized payment reference",
			})
			return
		}
	}

	snap, err := h.paymentCommands.Confirm(c.Request.Context(), req.Reference, payment.Outcome(req.Outcome))
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUnmatchedReference):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unmatched payment reference",
			})
		case errors.Is(err, commands.ErrInvalidOutcome):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid payment outcome",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromTransactionSnapshot(snap))
}

// @Summary Get transaction
// @Description Get a transaction by ID
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Transaction ID"
// @Success 200 {object} queries.TransactionView
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /payments/{id} [get]
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid transaction ID format",
		})
		return
	}

	view, err := h.paymentQueries.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Transaction not found",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List overdue transactions
// @Description Transactions pending beyond the alert window, for manual reconciliation
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.TransactionView
// @Failure 401 {object} map[string]string
// @Router /payments/overdue [get]
func (h *PaymentHandler) ListOverdueTransactions(c *gin.Context) {
	c.JSON(http.StatusOK, h.paymentQueries.ListOverdue(c.Request.Context()))
}
