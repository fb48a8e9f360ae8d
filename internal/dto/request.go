package dto

// WebhookPayload carries the lifecycle event fields of a marketplace
// notification. Numeric-ish fields (app_id, account_id, plan_id, max_users)
// arrive as either JSON numbers or strings depending on the sender revision,
// so they are modelled as any and coerced to strings by the service layer.
type WebhookPayload struct {
	AppID           any    `json:"app_id" binding:"required"`
	AccountID       any    `json:"account_id"`
	AccountName     string `json:"account_name"`
	AccountSlug     string `json:"account_slug"`
	AccountTier     string `json:"account_tier"`
	AccountMaxUsers any    `json:"account_max_users"`
	PlanID          any    `json:"plan_id"`
	UserName        string `json:"user_name"`
	UserEmail       string `json:"user_email"`
	UserCountry     string `json:"user_country"`
	UserCluster     string `json:"user_cluster"`
	Timestamp       string `json:"timestamp"`
}

// WebhookRequest is the inbound body: { "type": "...", "data": {...} }.
type WebhookRequest struct {
	Type string          `json:"type" binding:"required"`
	Data *WebhookPayload `json:"data" binding:"required"`
}
