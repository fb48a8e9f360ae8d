package clickhouse

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
)

// Repository implements repository.DeliveryRepository for ClickHouse. The
// deliveries table is an append-only audit trail used for manual
// reconciliation; nothing in the service reads it back.
type Repository struct {
	client *Client
	log    *zap.Logger
}

// NewRepository creates a new ClickHouse delivery repository
func NewRepository(client *Client, log *zap.Logger) *Repository {
	return &Repository{
		client: client,
		log:    log,
	}
}

// InitSchema creates the deliveries table if it does not exist
func (r *Repository) InitSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS webhook_deliveries (
		delivery_id String,
		kind LowCardinality(String),
		application_id String,
		account_id String,
		board_id String,
		item_id String,
		outcome LowCardinality(String),
		error String,
		received_at DateTime64(3) DEFAULT now64(3)
	) ENGINE = MergeTree()
	ORDER BY (received_at, account_id)
	PARTITION BY toYYYYMM(received_at)
	SETTINGS index_granularity = 8192
	`

	if err := r.client.Conn().Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create webhook_deliveries table: %w", err)
	}

	r.log.Info("ClickHouse schema initialized successfully")
	return nil
}

// RecordDelivery appends one processed delivery to the audit trail
func (r *Repository) RecordDelivery(ctx context.Context, record *domain.DeliveryRecord) error {
	if record.ReceivedAt.IsZero() {
		record.ReceivedAt = time.Now().UTC()
	}

	query := `
	INSERT INTO webhook_deliveries
		(delivery_id, kind, application_id, account_id, board_id, item_id, outcome, error, received_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	err := r.client.Conn().Exec(ctx, query,
		record.DeliveryID,
		record.Kind,
		record.ApplicationID,
		record.AccountID,
		record.BoardID,
		record.ItemID,
		record.Outcome,
		record.Error,
		record.ReceivedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert delivery record: %w", err)
	}

	return nil
}

// Ping checks if the ClickHouse connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Conn().Ping(ctx)
}

// Close closes the ClickHouse connection
func (r *Repository) Close() error {
	return r.client.Close()
}
