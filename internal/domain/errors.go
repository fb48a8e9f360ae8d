package domain

import (
	"errors"
	"fmt"
)

// ErrBoardNotMapped is returned when no board is configured for an inbound
// application ID. The HTTP layer maps it to a 400 response.
var ErrBoardNotMapped = errors.New("no board mapping found for app")

// Remote operation names used in RemoteCallError.
const (
	OpCreateItem = "create_item"
	OpFindItem   = "items_page"
	OpUpdateItem = "change_multiple_column_values"
)

// RemoteCallError describes a failed board API call with enough context for
// manual reconciliation. Not-found after retries is not represented here;
// that outcome is logged and swallowed.
type RemoteCallError struct {
	Op        string
	AccountID string
	BoardID   string
	Err       error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("%s failed (account_id=%s board_id=%s): %v", e.Op, e.AccountID, e.BoardID, e.Err)
}

func (e *RemoteCallError) Unwrap() error {
	return e.Err
}
