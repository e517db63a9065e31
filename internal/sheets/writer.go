package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/spice-tracker/internal/common"
	"github.com/Veraticus/spice-tracker/internal/model"
	"github.com/Veraticus/spice-tracker/internal/report"
)

// Column layout of the exported sheet.
const (
	labelColumn  = 0
	amountColumn = 1
	recordAmount = 4
	columnCount  = 5

	// Row holding the record count, which shares the amount column with
	// the currency totals.
	recordCountRow = 7
)

// Writer implements ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

var _ ReportWriter = (*Writer)(nil)

// NewWriter creates a new Google Sheets report writer. Extra client options
// are passed through to the Sheets client.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger, opts ...option.ClientOption) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriter(srv, config, logger), nil
}

func newWriter(srv *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}
}

// Write replaces the contents of the spreadsheet with the report.
func (w *Writer) Write(ctx context.Context, r Report) error {
	w.logger.Info("starting report export",
		"records", len(r.Records),
		"filter", r.Filter)

	policy := common.RetryPolicy{
		Logger:       w.logger,
		MaxAttempts:  max(w.config.RetryAttempts, 1),
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
	}

	var spreadsheetID string
	err := policy.Do(ctx, func(ctx context.Context) error {
		id, getErr := w.getOrCreateSpreadsheet(ctx)
		spreadsheetID = id
		return retryable(getErr)
	})
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	err = policy.Do(ctx, func(ctx context.Context) error {
		return retryable(w.clearSheet(ctx, spreadsheetID))
	})
	if err != nil {
		return fmt.Errorf("failed to clear sheet: %w", err)
	}

	values := prepareReportData(r)

	err = policy.Do(ctx, func(ctx context.Context) error {
		return retryable(w.writeData(ctx, spreadsheetID, values))
	})
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	if w.config.EnableFormatting {
		err = policy.Do(ctx, func(ctx context.Context) error {
			return retryable(w.applyFormatting(ctx, spreadsheetID, len(values)))
		})
		if err != nil {
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// retryable maps Sheets API failures onto the retry policy: rate limits back
// off fully, other client errors are final.
func retryable(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return common.Permanent(err)
	default:
		return err
	}
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config, opts ...option.ClientOption) (*sheets.Service, error) {
	tokenSource, err := config.tokenSource(ctx)
	if err != nil {
		return nil, err
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	clientOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	srv, err := sheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Transactions",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	// Later exports reuse it.
	w.config.SpreadsheetID = created.SpreadsheetId

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// SpreadsheetID returns the spreadsheet written to, once known.
func (w *Writer) SpreadsheetID() string {
	return w.config.SpreadsheetID
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData lays out the report as rows: a title, the summary, a
// breakdown per category for each type, then every record in report order.
func prepareReportData(r Report) [][]any {
	estimatedRows := 18 + len(r.Expenses) + len(r.Income) + len(r.Records)
	values := make([][]any, 0, estimatedRows)

	filter := r.Filter
	if filter == "" {
		filter = "All records"
	}

	values = append(values,
		[]any{"Spice Tracker Report", r.Generated.Format("Jan 2, 2006")},
		[]any{"Filter", filter},
		[]any{}, // Empty row
		[]any{"Summary"},
		[]any{"Income", cell(r.Summary.Income)},
		[]any{"Expense", cell(r.Summary.Expense)},
		[]any{"Balance", cell(r.Summary.Balance)},
		[]any{"Records", len(r.Records)},
	)

	values = appendBreakdown(values, "Expenses by Category", r.Expenses)
	values = appendBreakdown(values, "Income by Category", r.Income)

	values = append(values,
		[]any{}, // Empty row
		[]any{"Transactions"},
		[]any{"Date", "Type", "Category", "Description", "Amount"},
	)

	for _, rec := range r.Records {
		values = append(values, []any{
			rec.Date.String(),
			string(rec.Type),
			rec.Category,
			rec.Desc,
			signedCell(rec),
		})
	}

	return values
}

func appendBreakdown(values [][]any, title string, amounts []report.CategoryAmount) [][]any {
	values = append(values,
		[]any{}, // Empty row
		[]any{title},
		[]any{"Category", "Amount"},
	)
	for _, ca := range amounts {
		values = append(values, []any{ca.Name, cell(ca.Amount)})
	}
	return values
}

func cell(d decimal.Decimal) float64 {
	return d.Round(report.DisplayPlaces).InexactFloat64()
}

func signedCell(rec model.Record) float64 {
	return cell(decimal.NewFromFloat(rec.SignedAmount()))
}

// writeData writes the data to the spreadsheet.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	// Write in batches to avoid API limits
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := fmt.Sprintf("A%d", i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting applies formatting to the spreadsheet.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, totalRows int) error {
	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: formattingRequests(totalRows),
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}

// formattingRequests builds the batch of formatting requests for a sheet of
// totalRows rows. Later requests override earlier ones on the same cells.
func formattingRequests(totalRows int) []*sheets.Request {
	return []*sheets.Request{
		// Format title
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   2,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: 16,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		// Bold labels
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    2,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: labelColumn,
					EndColumnIndex:   labelColumn + 1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		currencyColumn(amountColumn, totalRows),
		currencyColumn(recordAmount, totalRows),
		countCell(recordCountRow, amountColumn),
		// Auto-resize columns
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   columnCount,
				},
			},
		},
		// Freeze title rows
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 2,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}
}

func currencyColumn(column int64, totalRows int) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          0,
				StartRowIndex:    2,
				EndRowIndex:      int64(totalRows),
				StartColumnIndex: column,
				EndColumnIndex:   column + 1,
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					NumberFormat: &sheets.NumberFormat{
						Type:    "CURRENCY",
						Pattern: "$#,##0.00",
					},
				},
			},
			Fields: "userEnteredFormat.numberFormat",
		},
	}
}

func countCell(row, column int64) *sheets.Request {
	return &sheets.Request{
		RepeatCell: &sheets.RepeatCellRequest{
			Range: &sheets.GridRange{
				SheetId:          0,
				StartRowIndex:    row,
				EndRowIndex:      row + 1,
				StartColumnIndex: column,
				EndColumnIndex:   column + 1,
			},
			Cell: &sheets.CellData{
				UserEnteredFormat: &sheets.CellFormat{
					NumberFormat: &sheets.NumberFormat{
						Type:    "NUMBER",
						Pattern: "0",
					},
				},
			},
			Fields: "userEnteredFormat.numberFormat",
		},
	}
}
