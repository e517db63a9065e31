package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/spice-tracker/internal/common"
	"github.com/Veraticus/spice-tracker/internal/model"
)

func testRecords() []model.Record {
	return []model.Record{
		{ID: 2, Type: model.TypeExpense, Category: "Food", Desc: "Groceries", Date: "2024-01-05", Amount: 200},
		{ID: 1, Type: model.TypeIncome, Category: "Salary", Desc: "Paycheck", Date: "2024-01-01", Amount: 1000},
		{ID: 3, Type: model.TypeExpense, Category: "Bills", Desc: "Electric", Date: "2024-01-03", Amount: 75.255},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		errMsg  string
		config  Config
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "test-client",
				ClientSecret:  "test-secret",
				RefreshToken:  "test-token",
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      3,
				RetryDelay:         time.Second,
			},
		},
		{
			name: "zero retry delay is valid",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
		},
		{
			name: "missing auth",
			config: Config{
				BatchSize:     100,
				RetryAttempts: 3,
				RetryDelay:    time.Second,
			},
			wantErr: common.ErrMissingConfig,
			errMsg:  "no authentication method configured",
		},
		{
			name: "partial oauth credentials",
			config: Config{
				ClientID:     "test-client",
				RefreshToken: "test-token",
				BatchSize:    100,
			},
			wantErr: common.ErrMissingConfig,
			errMsg:  "no authentication method configured",
		},
		{
			name: "multiple auth methods",
			config: Config{
				ClientID:           "test-client",
				ClientSecret:       "test-secret",
				RefreshToken:       "test-token",
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
			},
			wantErr: common.ErrInvalidConfig,
			errMsg:  "multiple authentication methods configured",
		},
		{
			name: "invalid batch size",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
			},
			wantErr: common.ErrInvalidConfig,
			errMsg:  "batch size must be positive",
		},
		{
			name: "negative retry attempts",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryAttempts:      -1,
			},
			wantErr: common.ErrInvalidConfig,
			errMsg:  "retry attempts cannot be negative",
		},
		{
			name: "negative retry delay",
			config: Config{
				ServiceAccountPath: "/path/to/key.json",
				BatchSize:          100,
				RetryDelay:         -1 * time.Second,
			},
			wantErr: common.ErrInvalidConfig,
			errMsg:  "retry delay cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestConfig_AuthMethod(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   AuthMethod
	}{
		{name: "none", config: Config{}, want: AuthNone},
		{name: "oauth", config: Config{ClientID: "id", ClientSecret: "secret", RefreshToken: "token"}, want: AuthOAuth},
		{name: "incomplete oauth", config: Config{ClientID: "id", ClientSecret: "secret"}, want: AuthNone},
		{name: "service account", config: Config{ServiceAccountPath: "/key.json"}, want: AuthServiceAccount},
		{
			name:   "both",
			config: Config{ClientID: "id", ClientSecret: "secret", RefreshToken: "token", ServiceAccountPath: "/key.json"},
			want:   AuthNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.config.AuthMethod())
		})
	}
}

func TestConfig_ValidateReportsEveryProblem(t *testing.T) {
	err := (&Config{RetryAttempts: -1}).Validate()

	require.ErrorIs(t, err, common.ErrMissingConfig)
	require.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "batch size must be positive")
	assert.Contains(t, err.Error(), "retry attempts cannot be negative")
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.True(t, config.EnableFormatting)
	assert.Equal(t, DefaultSpreadsheetName, config.SpreadsheetName)
	assert.Equal(t, "UTC", config.TimeZone)
	assert.Equal(t, 1000, config.BatchSize)
	assert.Equal(t, 3, config.RetryAttempts)
	assert.Equal(t, time.Second, config.RetryDelay)
}

func TestNewReport(t *testing.T) {
	r := NewReport(testRecords(), "type=All", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, r.Summary.Income.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "275.26", r.Summary.Expense.StringFixed(2))
	assert.Equal(t, "724.74", r.Summary.Balance.StringFixed(2))

	require.Len(t, r.Expenses, 2)
	assert.Equal(t, "Food", r.Expenses[0].Name)
	assert.Equal(t, "Bills", r.Expenses[1].Name)
	require.Len(t, r.Income, 1)
	assert.Equal(t, "Salary", r.Income[0].Name)
}

func findRow(values [][]any, label string) int {
	for i, row := range values {
		if len(row) > 0 && row[0] == label {
			return i
		}
	}
	return -1
}

func TestPrepareReportData(t *testing.T) {
	r := NewReport(testRecords(), "", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	values := prepareReportData(r)

	assert.Equal(t, "Spice Tracker Report", values[0][0])
	assert.Equal(t, "Feb 1, 2024", values[0][1])
	assert.Equal(t, []any{"Filter", "All records"}, values[1])

	summaryStart := findRow(values, "Summary")
	require.NotEqual(t, -1, summaryStart, "should have summary section")
	assert.Equal(t, []any{"Income", 1000.0}, values[summaryStart+1])
	assert.Equal(t, []any{"Expense", 275.26}, values[summaryStart+2])
	assert.Equal(t, []any{"Balance", 724.74}, values[summaryStart+3])
	assert.Equal(t, []any{"Records", 3}, values[summaryStart+4])

	expenses := findRow(values, "Expenses by Category")
	require.NotEqual(t, -1, expenses)
	assert.Equal(t, []any{"Food", 200.0}, values[expenses+2])
	assert.Equal(t, []any{"Bills", 75.26}, values[expenses+3])

	income := findRow(values, "Income by Category")
	require.NotEqual(t, -1, income)
	assert.Equal(t, []any{"Salary", 1000.0}, values[income+2])

	// Records keep the order of the query result, with signed amounts.
	details := findRow(values, "Transactions")
	require.NotEqual(t, -1, details, "should have transaction details")
	assert.Equal(t, []any{"2024-01-05", "Expense", "Food", "Groceries", -200.0}, values[details+2])
	assert.Equal(t, []any{"2024-01-01", "Income", "Salary", "Paycheck", 1000.0}, values[details+3])
	assert.Equal(t, []any{"2024-01-03", "Expense", "Bills", "Electric", -75.26}, values[details+4])
	assert.Len(t, values, details+5)
}

func TestFormattingRequests_RecordCountIsNotCurrency(t *testing.T) {
	values := prepareReportData(NewReport(testRecords(), "", time.Now()))
	require.Equal(t, "Records", values[recordCountRow][0])

	// The last number format touching the count cell wins.
	var format *sheets.NumberFormat
	for _, req := range formattingRequests(len(values)) {
		rc := req.RepeatCell
		if rc == nil || rc.Cell.UserEnteredFormat.NumberFormat == nil {
			continue
		}
		r := rc.Range
		if r.StartRowIndex <= recordCountRow && recordCountRow < r.EndRowIndex &&
			r.StartColumnIndex <= amountColumn && amountColumn < r.EndColumnIndex {
			format = rc.Cell.UserEnteredFormat.NumberFormat
		}
	}

	require.NotNil(t, format)
	assert.Equal(t, "NUMBER", format.Type)
	assert.Equal(t, "0", format.Pattern)
}

func TestPrepareReportData_Empty(t *testing.T) {
	values := prepareReportData(NewReport(nil, "search=coffee", time.Now()))

	assert.Equal(t, []any{"Filter", "search=coffee"}, values[1])
	details := findRow(values, "Transactions")
	require.NotEqual(t, -1, details)
	assert.Len(t, values, details+2, "only the header follows the section title")
}

// fakeSheetsAPI answers the handful of Sheets endpoints the writer uses.
type fakeSheetsAPI struct {
	updates      []sheets.ValueRange
	getStatus    int
	failUpdates  int
	failClears   int
	gets         int
	creates      int
	clears       int
	batchUpdates int
	mu           sync.Mutex
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet:
		f.gets++
		if f.getStatus != 0 {
			writeAPIError(w, f.getStatus)
			return
		}
		_, _ = fmt.Fprint(w, `{"spreadsheetId":"sheet-1"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/v4/spreadsheets":
		f.creates++
		_, _ = fmt.Fprint(w, `{"spreadsheetId":"new-sheet","spreadsheetUrl":"https://example.test/new-sheet"}`)
	case strings.HasSuffix(r.URL.Path, ":clear"):
		if f.failClears > 0 {
			f.failClears--
			writeAPIError(w, http.StatusBadGateway)
			return
		}
		f.clears++
		_, _ = fmt.Fprint(w, `{}`)
	case strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		f.batchUpdates++
		_, _ = fmt.Fprint(w, `{}`)
	case r.Method == http.MethodPut:
		if f.failUpdates > 0 {
			f.failUpdates--
			writeAPIError(w, http.StatusServiceUnavailable)
			return
		}
		body, _ := io.ReadAll(r.Body)
		var vr sheets.ValueRange
		_ = json.Unmarshal(body, &vr)
		f.updates = append(f.updates, vr)
		_, _ = fmt.Fprint(w, `{}`)
	default:
		http.NotFound(w, r)
	}
}

func writeAPIError(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `{"error":{"code":%d,"message":"%s"}}`, status, http.StatusText(status))
}

func newTestWriter(t *testing.T, api *fakeSheetsAPI, config Config) *Writer {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	srv, err := sheets.NewService(context.Background(),
		option.WithEndpoint(server.URL+"/"),
		option.WithHTTPClient(server.Client()))
	require.NoError(t, err)

	return newWriter(srv, config, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testConfig() Config {
	config := DefaultConfig()
	config.ServiceAccountPath = "/unused/key.json"
	config.RetryDelay = time.Millisecond
	return config
}

func TestWriter_Write(t *testing.T) {
	ctx := context.Background()

	t.Run("existing spreadsheet", func(t *testing.T) {
		api := &fakeSheetsAPI{}
		config := testConfig()
		config.SpreadsheetID = "sheet-1"
		writer := newTestWriter(t, api, config)

		r := NewReport(testRecords(), "", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, writer.Write(ctx, r))

		assert.Equal(t, 1, api.gets)
		assert.Zero(t, api.creates)
		assert.Equal(t, 1, api.clears)
		assert.Equal(t, 1, api.batchUpdates)
		require.Len(t, api.updates, 1)
		assert.Len(t, api.updates[0].Values, len(prepareReportData(r)))
		assert.Equal(t, "Spice Tracker Report", api.updates[0].Values[0][0])
	})

	t.Run("creates spreadsheet when none configured", func(t *testing.T) {
		api := &fakeSheetsAPI{}
		writer := newTestWriter(t, api, testConfig())

		require.NoError(t, writer.Write(ctx, NewReport(testRecords(), "", time.Now())))

		assert.Equal(t, 1, api.creates)
		assert.Equal(t, "new-sheet", writer.SpreadsheetID())
	})

	t.Run("writes in batches", func(t *testing.T) {
		api := &fakeSheetsAPI{}
		config := testConfig()
		config.SpreadsheetID = "sheet-1"
		config.BatchSize = 5
		config.EnableFormatting = false
		writer := newTestWriter(t, api, config)

		r := NewReport(testRecords(), "", time.Now())
		require.NoError(t, writer.Write(ctx, r))

		rows := len(prepareReportData(r))
		assert.Len(t, api.updates, (rows+4)/5)
		assert.Zero(t, api.batchUpdates)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		api := &fakeSheetsAPI{failUpdates: 1}
		config := testConfig()
		config.SpreadsheetID = "sheet-1"
		writer := newTestWriter(t, api, config)

		require.NoError(t, writer.Write(ctx, NewReport(testRecords(), "", time.Now())))
		assert.Len(t, api.updates, 1)
	})

	t.Run("retries a failed clear", func(t *testing.T) {
		api := &fakeSheetsAPI{failClears: 2}
		config := testConfig()
		config.SpreadsheetID = "sheet-1"
		writer := newTestWriter(t, api, config)

		require.NoError(t, writer.Write(ctx, NewReport(testRecords(), "", time.Now())))
		assert.Equal(t, 1, api.clears)
		assert.Len(t, api.updates, 1)
	})

	t.Run("missing spreadsheet is final", func(t *testing.T) {
		api := &fakeSheetsAPI{getStatus: http.StatusNotFound}
		config := testConfig()
		config.SpreadsheetID = "gone"
		writer := newTestWriter(t, api, config)

		err := writer.Write(ctx, NewReport(testRecords(), "", time.Now()))
		require.Error(t, err)
		assert.Equal(t, 1, api.gets)
		assert.Empty(t, api.updates)
	})
}

func TestRetryable(t *testing.T) {
	plain := errors.New("connection reset")

	tests := []struct {
		err           error
		name          string
		wantRateLimit bool
		wantFinal     bool
	}{
		{name: "nil", err: nil},
		{name: "plain error", err: plain},
		{name: "rate limited", err: &googleapi.Error{Code: http.StatusTooManyRequests}, wantRateLimit: true},
		{name: "not found", err: &googleapi.Error{Code: http.StatusNotFound}, wantFinal: true},
		{name: "server error", err: &googleapi.Error{Code: http.StatusInternalServerError}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := retryable(tt.err)
			if tt.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tt.wantRateLimit, errors.Is(got, common.ErrRateLimit))

			var retryErr *common.RetryableError
			isFinal := errors.As(got, &retryErr) && !retryErr.Retryable
			assert.Equal(t, tt.wantFinal, isFinal)
		})
	}
}

func TestMockWriter(t *testing.T) {
	ctx := context.Background()
	mock := NewMockWriter()
	r := NewReport(testRecords(), "", time.Now())

	_, ok := mock.LastReport()
	assert.False(t, ok)

	require.NoError(t, mock.Write(ctx, r))
	last, ok := mock.LastReport()
	require.True(t, ok)
	assert.Len(t, last.Records, 3)

	boom := errors.New("boom")
	mock.FailWith(boom)
	require.ErrorIs(t, mock.Write(ctx, r), boom)

	assert.Len(t, mock.Reports(), 2)
	errs := mock.Errors()
	require.Len(t, errs, 2)
	assert.NoError(t, errs[0])
	assert.ErrorIs(t, errs[1], boom)
}

func TestTokenFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sheets-token.json")
	token := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	require.NoError(t, saveToken(path, token))

	loaded, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, token.RefreshToken, loaded.RefreshToken)
	assert.Equal(t, token.AccessToken, loaded.AccessToken)
	assert.True(t, token.Expiry.Equal(loaded.Expiry))

	refreshed, err := RefreshTokenIfNeeded(context.Background(), OAuth2Config{}, loaded)
	require.NoError(t, err)
	assert.Same(t, loaded, refreshed, "a valid token is returned as is")

	_, err = LoadToken(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
