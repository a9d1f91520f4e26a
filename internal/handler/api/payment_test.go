//go:build unit

package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"playpoint/internal/domain/payment"
	"playpoint/internal/handler/api"
	"playpoint/internal/pkg/config"
	"playpoint/internal/usecase/commands"
	"playpoint/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

const testCallbackSecret = "test-callback-secret"

// stubPaymentCommands lets each test script the confirm path.
type stubPaymentCommands struct {
	confirmRef     string
	confirmOutcome payment.Outcome
	confirmSnap    payment.Snapshot
	confirmErr     error
}

func (s *stubPaymentCommands) Initiate(_ context.Context, _ uuid.UUID, _ string) (payment.Snapshot, error) {
	return payment.Snapshot{}, commands.ErrTransactionNotFound
}

func (s *stubPaymentCommands) Confirm(_ context.Context, ref string, outcome payment.Outcome) (payment.Snapshot, error) {
	s.confirmRef = ref
	s.confirmOutcome = outcome
	return s.confirmSnap, s.confirmErr
}

type stubPaymentQueries struct{}

func (stubPaymentQueries) Get(context.Context, uuid.UUID) (queries.TransactionView, error) {
	return queries.TransactionView{}, queries.ErrTransactionNotFound
}

func (stubPaymentQueries) ListOverdue(context.Context) []queries.TransactionView {
	return nil
}

type PaymentCallbackTestSuite struct {
	suite.Suite
	router   *gin.Engine
	commands *stubPaymentCommands
}

func (s *PaymentCallbackTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.commands = &stubPaymentCommands{
		confirmSnap: payment.Snapshot{
			ID:        uuid.New(),
			Method:    payment.MethodMpesa,
			Status:    payment.StatusCompleted,
			CreatedAt: time.Now(),
		},
	}
	handler := api.NewPaymentHandler(s.commands, stubPaymentQueries{}, config.PaymentsConfig{
		PendingAlertAfter: 10 * time.Minute,
		CallbackSecret:    testCallbackSecret,
	})
	s.router.POST("/payments/callbacks", handler.PaymentCallback)
}

func TestPaymentCallbackSuite(t *testing.T) {
	suite.Run(t, new(PaymentCallbackTestSuite))
}

func (s *PaymentCallbackTestSuite) post(secret, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/callbacks", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set("X-Callback-Secret", secret)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *PaymentCallbackTestSuite) TestMissingSecret() {
	w := s.post("", `{"reference":"MPESA-QA12345","outcome":"success"}`)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Empty(s.commands.confirmRef, "handler must not reach the reconciler")
}

func (s *PaymentCallbackTestSuite) TestWrongSecret() {
	w := s.post("wrong", `{"reference":"MPESA-QA12345","outcome":"success"}`)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *PaymentCallbackTestSuite) TestLegacyReferenceAccepted() {
	w := s.post(testCallbackSecret, `{"reference":"MPESA-QA12345","outcome":"success"}`)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("MPESA-QA12345", s.commands.confirmRef)
	s.Equal(payment.OutcomeSuccess, s.commands.confirmOutcome)
}

func (s *PaymentCallbackTestSuite) TestUnknownLegacyPrefixRejected() {
	w := s.post(testCallbackSecret, `{"reference":"TIGO-001","outcome":"success"}`)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Empty(s.commands.confirmRef)
}

func (s *PaymentCallbackTestSuite) TestExplicitMethodSkipsPrefixCheck() {
	w := s.post(testCallbackSecret, `{"reference":"TIGO-001","outcome":"success","method":"mpesa"}`)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("TIGO-001", s.commands.confirmRef)
}

func (s *PaymentCallbackTestSuite) TestUnmatchedReference() {
	s.commands.confirmErr = commands.ErrUnmatchedReference
	w := s.post(testCallbackSecret, `{"reference":"MPESA-XYZ","outcome":"success"}`)
	s.Equal(http.StatusNotFound, w.Code)
}
