// Package sheets exports report tables to a Google spreadsheet owned by the shop.
package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/deliciarte/internal/config"
)

// ErrEmptyRange is returned when an A1 range is missing.
var ErrEmptyRange = errors.New("sheet range must not be empty")

// Repository is the spreadsheet surface used by the reporting service.
type Repository interface {
	AppendRows(ctx context.Context, a1Range string, rows [][]interface{}) error
	ReadRange(ctx context.Context, a1Range string) ([][]interface{}, error)
}

// GoogleSheetRepository talks to the Sheets v4 values API of one spreadsheet.
type GoogleSheetRepository struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository authenticates with the service-account file from cfg.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("init sheets client: %w", err)
	}

	logger.Info("google sheets export enabled", zap.String("spreadsheet_id", cfg.SpreadsheetID))
	return &GoogleSheetRepository{
		values:        svc.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendRows inserts rows after the last filled row of a1Range. Values are
// parsed as if typed by a user so "12.50" lands as a number.
func (r *GoogleSheetRepository) AppendRows(ctx context.Context, a1Range string, rows [][]interface{}) error {
	if a1Range == "" {
		return ErrEmptyRange
	}
	if len(rows) == 0 {
		return nil
	}

	_, err := r.values.Append(r.spreadsheetID, a1Range, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append %d rows to %s: %w", len(rows), a1Range, err)
	}

	r.logger.Debug("rows appended", zap.String("range", a1Range), zap.Int("rows", len(rows)))
	return nil
}

// ReadRange returns the formatted cell values of a1Range. Trailing empty
// rows and cells are omitted by the API.
func (r *GoogleSheetRepository) ReadRange(ctx context.Context, a1Range string) ([][]interface{}, error) {
	if a1Range == "" {
		return nil, ErrEmptyRange
	}

	resp, err := r.values.Get(r.spreadsheetID, a1Range).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", a1Range, err)
	}
	return resp.Values, nil
}
