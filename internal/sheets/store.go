package sheets

import "context"

// RowStore is the narrow surface the rest of the application uses against
// the shared sheet. Row and column indices are 1-based and include the
// header row, matching the spreadsheet's own addressing.
type RowStore interface {
	AppendRow(ctx context.Context, values []string) error
	Rows(ctx context.Context) ([][]string, error)
	UpdateCell(ctx context.Context, row, col int, value string) error
	ReadCell(ctx context.Context, row, col int) (string, error)
}
