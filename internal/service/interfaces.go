package service

import (
	"context"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/dto"
)

// LifecycleServicer defines the interface for webhook event handling
type LifecycleServicer interface {
	HandleEvent(ctx context.Context, req *dto.WebhookRequest) (*Result, error)
}

// ItemUpserter is the slice of the upsert protocol the dispatcher uses.
type ItemUpserter interface {
	CreateItem(ctx context.Context, itemName string, columns domain.ColumnValueSet, target domain.BoardTarget) (string, error)
	FindItemWithRetry(ctx context.Context, accountID, boardID string) (string, bool, error)
	UpdateItem(ctx context.Context, itemID string, deltas domain.ColumnValueSet, boardID, accountID string) error
}

// BoardResolver resolves an application ID to its destination board.
type BoardResolver interface {
	Resolve(applicationID string) (domain.BoardTarget, error)
}
