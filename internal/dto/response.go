package dto

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_error"`
	Message string `json:"message,omitempty" example:"app_id is required"`
}

// WebhookResponse acknowledges a processed (or deliberately ignored) webhook.
type WebhookResponse struct {
	Status  string `json:"status" example:"processed"`
	Message string `json:"message,omitempty" example:"Webhook processed successfully."`
}
