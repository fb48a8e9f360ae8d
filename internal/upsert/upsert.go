package upsert

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/monday"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/retry"
)

// Config carries everything the protocol needs besides the API client. It is
// passed in explicitly so the protocol never reads ambient process state.
type Config struct {
	// AccountColumnID is the column whose text identifies an account's item.
	AccountColumnID string
	// TierColumnID is the status column re-validated on create.
	TierColumnID string
	// PageSize bounds each search page request.
	PageSize int
	// FindAttempts and FindDelay bound the not-found retry loop.
	FindAttempts int
	FindDelay    time.Duration
}

func (c Config) withDefaults() Config {
	if c.AccountColumnID == "" {
		c.AccountColumnID = domain.ColumnAccountID
	}
	if c.TierColumnID == "" {
		c.TierColumnID = domain.ColumnAccountTier
	}
	if c.PageSize <= 0 {
		c.PageSize = 500
	}
	if c.FindAttempts <= 0 {
		c.FindAttempts = 3
	}
	if c.FindDelay <= 0 {
		c.FindDelay = 2 * time.Second
	}
	return c
}

// Protocol reconciles lifecycle events against a board's item set: items are
// created once per install and located by account ID for every later event.
// Each request owns its column values, so the protocol holds no mutable state
// and is safe for concurrent use.
type Protocol struct {
	api   monday.BoardAPI
	cfg   Config
	sleep retry.SleepFunc
	log   *zap.Logger
}

// NewProtocol builds the upsert protocol over the given board API.
func NewProtocol(api monday.BoardAPI, cfg Config, log *zap.Logger) *Protocol {
	return &Protocol{
		api:   api,
		cfg:   cfg.withDefaults(),
		sleep: retry.Sleep,
		log:   log,
	}
}

// CreateItem creates a new item carrying the full column set. The account
// tier label is re-validated here against the closed label set, independent
// of any defaulting the mapper did: callers constructing column sets by hand
// must not be able to push an unknown label into the status column.
func (p *Protocol) CreateItem(ctx context.Context, itemName string, columns domain.ColumnValueSet, target domain.BoardTarget) (string, error) {
	columns = p.validateTier(columns)

	accountID, _ := columns[p.cfg.AccountColumnID].(string)

	itemID, err := p.api.CreateItem(ctx, target, itemName, columns)
	if err != nil {
		p.log.Error("Failed to create item",
			zap.String("operation", domain.OpCreateItem),
			zap.String("account_id", accountID),
			zap.String("board_id", target.BoardID),
			zap.Error(err))
		return "", &domain.RemoteCallError{
			Op:        domain.OpCreateItem,
			AccountID: accountID,
			BoardID:   target.BoardID,
			Err:       err,
		}
	}

	return itemID, nil
}

// FindItemByAccountID scans the board page by page, comparing each item's
// account-id column text against accountID. The filter is applied locally on
// every page regardless of what the server returned: the API's own
// column-value predicate is not trusted to have filtered anything. Returns
// ("", nil) when the board is exhausted without a match; not-found is an
// expected outcome, not an error.
func (p *Protocol) FindItemByAccountID(ctx context.Context, accountID, boardID string) (string, error) {
	// An absent account ID must never match the first item whose account
	// column happens to be empty.
	if accountID == "" {
		return "", nil
	}

	cursor := ""
	for {
		page, err := p.api.ItemsPage(ctx, boardID, p.cfg.AccountColumnID, p.cfg.PageSize, cursor)
		if err != nil {
			p.log.Error("Failed to fetch items page",
				zap.String("operation", domain.OpFindItem),
				zap.String("account_id", accountID),
				zap.String("board_id", boardID),
				zap.Error(err))
			return "", &domain.RemoteCallError{
				Op:        domain.OpFindItem,
				AccountID: accountID,
				BoardID:   boardID,
				Err:       err,
			}
		}

		for _, item := range page.Items {
			if item.ColumnText[p.cfg.AccountColumnID] == accountID {
				return item.ID, nil
			}
		}

		if page.Cursor == "" {
			return "", nil
		}
		cursor = page.Cursor
	}
}

// FindItemWithRetry wraps FindItemByAccountID in the bounded retry loop. An
// install's item may not be visible yet when a near-simultaneous follow-up
// event arrives, so a miss is retried with a fixed delay before giving up.
// Exhausting the attempts returns found=false and no error.
func (p *Protocol) FindItemWithRetry(ctx context.Context, accountID, boardID string) (string, bool, error) {
	if accountID == "" {
		p.log.Warn("Skipping item search, no account id in event",
			zap.String("board_id", boardID))
		return "", false, nil
	}

	itemID, found, err := retry.UntilFound(ctx, p.cfg.FindAttempts, p.cfg.FindDelay, p.sleep,
		func(ctx context.Context) (string, bool, error) {
			id, err := p.FindItemByAccountID(ctx, accountID, boardID)
			if err != nil {
				return "", false, err
			}
			return id, id != "", nil
		})
	if err != nil {
		return "", false, err
	}
	if !found {
		p.log.Warn("Item not found after retries",
			zap.String("account_id", accountID),
			zap.String("board_id", boardID),
			zap.Int("attempts", p.cfg.FindAttempts))
		return "", false, nil
	}
	return itemID, true, nil
}

// UpdateItem merges only the supplied column deltas onto an existing item.
// The full column set is never re-sent on update. accountID is carried for
// failure context only; deltas never include the account column.
func (p *Protocol) UpdateItem(ctx context.Context, itemID string, deltas domain.ColumnValueSet, boardID, accountID string) error {
	if err := p.api.ChangeColumnValues(ctx, boardID, itemID, deltas); err != nil {
		p.log.Error("Failed to update item",
			zap.String("operation", domain.OpUpdateItem),
			zap.String("item_id", itemID),
			zap.String("account_id", accountID),
			zap.String("board_id", boardID),
			zap.Error(err))
		return &domain.RemoteCallError{
			Op:        domain.OpUpdateItem,
			AccountID: accountID,
			BoardID:   boardID,
			Err:       err,
		}
	}

	return nil
}

// validateTier returns a copy of columns with an invalid tier label replaced
// by the default. Only label values are inspected; a column set without the
// tier column passes through untouched.
func (p *Protocol) validateTier(columns domain.ColumnValueSet) domain.ColumnValueSet {
	label, ok := columns[p.cfg.TierColumnID].(domain.LabelValue)
	if !ok || domain.ValidAccountTier(label.Label) {
		return columns
	}

	p.log.Warn("Invalid account tier label, defaulting",
		zap.String("account_tier", label.Label),
		zap.String("default", domain.DefaultAccountTier))

	copied := make(domain.ColumnValueSet, len(columns))
	for id, value := range columns {
		copied[id] = value
	}
	copied[p.cfg.TierColumnID] = domain.LabelValue{Label: domain.DefaultAccountTier}
	return copied
}
