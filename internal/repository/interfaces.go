package repository

import (
	"context"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
)

// DeliveryRepository defines the interface for the delivery audit store.
// Writes are best-effort; the service logs failures and never surfaces them
// to the webhook sender.
type DeliveryRepository interface {
	// InitSchema initializes the storage schema (creates tables if they don't exist)
	InitSchema(ctx context.Context) error

	// RecordDelivery appends one processed delivery to the audit trail
	RecordDelivery(ctx context.Context, record *domain.DeliveryRecord) error

	// Ping checks if the storage connection is alive
	Ping(ctx context.Context) error

	// Close closes the repository and releases resources
	Close() error
}
