package domain

import "time"

// Delivery outcomes recorded in the audit trail.
const (
	OutcomeCreated = "created"
	OutcomeUpdated = "updated"
	OutcomeSkipped = "skipped"
	OutcomeIgnored = "ignored"
	OutcomeFailed  = "failed"
)

// DeliveryRecord is one processed webhook delivery as written to the audit
// store. It exists to support manual reconciliation when a remote call fails
// or an item never becomes visible; it is never read back by the service.
type DeliveryRecord struct {
	DeliveryID    string    `ch:"delivery_id"`
	Kind          string    `ch:"kind"`
	ApplicationID string    `ch:"application_id"`
	AccountID     string    `ch:"account_id"`
	BoardID       string    `ch:"board_id"`
	ItemID        string    `ch:"item_id"`
	Outcome       string    `ch:"outcome"`
	Error         string    `ch:"error"`
	ReceivedAt    time.Time `ch:"received_at"`
}
