package sheets

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Client implements RowStore against the Google Sheets v4 API. Mutating
// calls are serialized behind a mutex so concurrent handlers cannot
// interleave writes from this process.
type Client struct {
	svc           *gsheets.Service
	spreadsheetID string
	sheetName     string
	logger        *zap.Logger

	mu sync.Mutex
}

// NewClient creates a Sheets client and verifies the spreadsheet is
// reachable with the supplied credentials.
func NewClient(ctx context.Context, spreadsheetID, sheetName string, logger *zap.Logger, opts ...option.ClientOption) (*Client, error) {
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}

	if _, err := svc.Spreadsheets.Get(spreadsheetID).Fields("spreadsheetId").Context(ctx).Do(); err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet %s: %w", spreadsheetID, err)
	}

	logger.Info("Google Sheet opened", zap.String("spreadsheet_id", spreadsheetID), zap.String("sheet", sheetName))

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		logger:        logger,
	}, nil
}

func (c *Client) AppendRow(ctx context.Context, values []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	vr := &gsheets.ValueRange{Values: [][]interface{}{toInterfaces(values)}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.sheetName, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Error("Failed to append row", zap.Error(err))
		return fmt.Errorf("failed to append row: %w", err)
	}
	return nil
}

func (c *Client) Rows(ctx context.Context) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.sheetName).Context(ctx).Do()
	if err != nil {
		c.logger.Error("Failed to read sheet", zap.Error(err))
		return nil, fmt.Errorf("failed to read sheet: %w", err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, 0, len(raw))
		for _, v := range raw {
			row = append(row, fmt.Sprint(v))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (c *Client) UpdateCell(ctx context.Context, row, col int, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	vr := &gsheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, c.cellRange(row, col), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		c.logger.Error("Failed to update cell", zap.Int("row", row), zap.Int("col", col), zap.Error(err))
		return fmt.Errorf("failed to update cell: %w", err)
	}
	return nil
}

func (c *Client) ReadCell(ctx context.Context, row, col int) (string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, c.cellRange(row, col)).Context(ctx).Do()
	if err != nil {
		c.logger.Error("Failed to read cell", zap.Int("row", row), zap.Int("col", col), zap.Error(err))
		return "", fmt.Errorf("failed to read cell: %w", err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}

func (c *Client) cellRange(row, col int) string {
	return fmt.Sprintf("%s!%s%d", c.sheetName, columnLetter(col), row)
}

// columnLetter converts a 1-based column index to its A1-notation letter.
func columnLetter(col int) string {
	letters := ""
	for col > 0 {
		col--
		letters = string(rune('A'+col%26)) + letters
		col /= 26
	}
	return letters
}

func toInterfaces(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
