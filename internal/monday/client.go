package monday

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/machinebox/graphql"
	"go.uber.org/zap"

	"github.com/Lovely-Solutions-LLC/AppEvents/internal/config"
	"github.com/Lovely-Solutions-LLC/AppEvents/internal/domain"
)

// BoardAPI is the surface of the board platform the upsert protocol needs.
// The production implementation is Client; tests substitute a mock.
type BoardAPI interface {
	CreateItem(ctx context.Context, target domain.BoardTarget, itemName string, columnValues domain.ColumnValueSet) (string, error)
	ItemsPage(ctx context.Context, boardID, columnID string, limit int, cursor string) (*ItemsPage, error)
	ChangeColumnValues(ctx context.Context, boardID, itemID string, deltas domain.ColumnValueSet) error
}

// Item is one board row as seen by the search scan. ColumnText holds the
// text rendering of the requested columns, keyed by column ID.
type Item struct {
	ID         string
	ColumnText map[string]string
}

// ItemsPage is one page of a board scan. An empty Cursor means the board is
// exhausted.
type ItemsPage struct {
	Cursor string
	Items  []Item
}

const apiVersion = "2024-10"

// Client talks to the board platform's GraphQL endpoint. All calls use typed
// query variables; column values travel as a JSON-encoded string, which is
// what the API's JSON scalar expects.
type Client struct {
	gql   *graphql.Client
	token string
	log   *zap.Logger
}

// NewClient builds a board API client. httpClient may be nil, in which case
// a client with a 30s timeout is used.
func NewClient(cfg config.Monday, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		gql:   graphql.NewClient(cfg.APIURL, graphql.WithHTTPClient(httpClient)),
		token: cfg.APIToken,
		log:   log,
	}
}

const createItemQuery = `
mutation ($boardId: ID!, $itemName: String!, $columnValues: JSON) {
	create_item(board_id: $boardId, item_name: $itemName, column_values: $columnValues) {
		id
	}
}`

const createItemInGroupQuery = `
mutation ($boardId: ID!, $groupId: String, $itemName: String!, $columnValues: JSON) {
	create_item(board_id: $boardId, group_id: $groupId, item_name: $itemName, column_values: $columnValues) {
		id
	}
}`

// CreateItem creates one item on the target board and returns its ID. A
// response without a created-item ID is an unexpected-shape error even when
// the API reported no errors.
func (c *Client) CreateItem(ctx context.Context, target domain.BoardTarget, itemName string, columnValues domain.ColumnValueSet) (string, error) {
	encoded, err := encodeColumnValues(columnValues)
	if err != nil {
		return "", err
	}

	query := createItemQuery
	if target.GroupID != "" {
		query = createItemInGroupQuery
	}
	req := c.newRequest(query)
	req.Var("boardId", target.BoardID)
	req.Var("itemName", itemName)
	req.Var("columnValues", encoded)
	if target.GroupID != "" {
		req.Var("groupId", target.GroupID)
	}

	var resp struct {
		CreateItem struct {
			ID string `json:"id"`
		} `json:"create_item"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return "", err
	}
	if resp.CreateItem.ID == "" {
		return "", fmt.Errorf("create_item: response missing created item id")
	}

	c.log.Info("Item created",
		zap.String("item_id", resp.CreateItem.ID),
		zap.String("board_id", target.BoardID))

	return resp.CreateItem.ID, nil
}

const itemsPageQuery = `
query ($boardId: ID!, $limit: Int!, $cursor: String, $columnIds: [String!]) {
	boards(ids: [$boardId]) {
		items_page(limit: $limit, cursor: $cursor) {
			cursor
			items {
				id
				column_values(ids: $columnIds) {
					id
					text
				}
			}
		}
	}
}`

// ItemsPage fetches one page of items from a board, carrying only the text
// of the requested column. Pass an empty cursor for the first page. An
// unknown board yields an empty page, which scanners treat as exhaustion.
func (c *Client) ItemsPage(ctx context.Context, boardID, columnID string, limit int, cursor string) (*ItemsPage, error) {
	req := c.newRequest(itemsPageQuery)
	req.Var("boardId", boardID)
	req.Var("limit", limit)
	req.Var("columnIds", []string{columnID})
	if cursor != "" {
		req.Var("cursor", cursor)
	}

	var resp struct {
		Boards []struct {
			ItemsPage struct {
				Cursor string `json:"cursor"`
				Items  []struct {
					ID           string `json:"id"`
					ColumnValues []struct {
						ID   string `json:"id"`
						Text string `json:"text"`
					} `json:"column_values"`
				} `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return nil, err
	}

	page := &ItemsPage{}
	if len(resp.Boards) == 0 {
		return page, nil
	}

	raw := resp.Boards[0].ItemsPage
	page.Cursor = raw.Cursor
	page.Items = make([]Item, 0, len(raw.Items))
	for _, item := range raw.Items {
		columnText := make(map[string]string, len(item.ColumnValues))
		for _, cv := range item.ColumnValues {
			columnText[cv.ID] = cv.Text
		}
		page.Items = append(page.Items, Item{ID: item.ID, ColumnText: columnText})
	}

	return page, nil
}

const changeColumnValuesQuery = `
mutation ($boardId: ID!, $itemId: ID!, $columnValues: JSON!) {
	change_multiple_column_values(board_id: $boardId, item_id: $itemId, column_values: $columnValues) {
		id
	}
}`

// ChangeColumnValues merges the supplied column deltas onto an existing item.
// Columns not present in deltas keep their current values.
func (c *Client) ChangeColumnValues(ctx context.Context, boardID, itemID string, deltas domain.ColumnValueSet) error {
	encoded, err := encodeColumnValues(deltas)
	if err != nil {
		return err
	}

	req := c.newRequest(changeColumnValuesQuery)
	req.Var("boardId", boardID)
	req.Var("itemId", itemID)
	req.Var("columnValues", encoded)

	var resp struct {
		ChangeMultipleColumnValues struct {
			ID string `json:"id"`
		} `json:"change_multiple_column_values"`
	}
	if err := c.gql.Run(ctx, req, &resp); err != nil {
		return err
	}
	if resp.ChangeMultipleColumnValues.ID == "" {
		return fmt.Errorf("change_multiple_column_values: response missing item id")
	}

	c.log.Info("Item updated",
		zap.String("item_id", itemID),
		zap.String("board_id", boardID))

	return nil
}

func (c *Client) newRequest(query string) *graphql.Request {
	req := graphql.NewRequest(query)
	req.Header.Set("Authorization", c.token)
	req.Header.Set("API-Version", apiVersion)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func encodeColumnValues(values domain.ColumnValueSet) (string, error) {
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("failed to encode column values: %w", err)
	}
	return string(encoded), nil
}
