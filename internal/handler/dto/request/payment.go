package request

type InitiatePaymentRequest struct {
	ProviderRequestID string `json:"provider_request_id" binding:"required"`
}

// PaymentCallbackRequest is the provider webhook body. Method is optional:
// legacy providers send only a prefixed reference and the method is derived
// at this ingress, never downstream.
type PaymentCallbackRequest struct {
	Reference string `json:"reference" binding:"required"`
	Outcome   string `json:"outcome" binding:"required,oneof=success failure"`
	Method    string `json:"method" binding:"omitempty,oneof=cash mpesa airtel"`
}
