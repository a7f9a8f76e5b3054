package dataload

import (
	"context"
	"fmt"
	"log/slog"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// SheetsClient fetches ranges from Google Sheets
type SheetsClient struct {
	service *sheets.Service
	logger  *slog.Logger
}

// NewSheetsClient creates a Sheets API client. With an empty
// credentials path the client authenticates through Application
// Default Credentials, which covers both service accounts and
// workstation logins.
func NewSheetsClient(ctx context.Context, credentialsFile string, logger *slog.Logger) (*SheetsClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(sheets.SpreadsheetsReadonlyScope))

	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsClient{
		service: service,
		logger:  logger.With(slog.String("component", "sheets_client")),
	}, nil
}

// FetchRange reads one A1 range and returns it as string rows,
// header row included. Non-string cells are stringified the way the
// Sheets API formats them.
func (c *SheetsClient) FetchRange(ctx context.Context, spreadsheetID, a1Range string) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, a1Range).
		Context(ctx).
		ValueRenderOption("FORMATTED_VALUE").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch range %s: %w", a1Range, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprintf("%v", cell)
		}
		rows = append(rows, row)
	}

	c.logger.DebugContext(ctx, "range fetched",
		slog.String("spreadsheet_id", spreadsheetID),
		slog.String("range", a1Range),
		slog.Int("rows", len(rows)))

	return rows, nil
}
