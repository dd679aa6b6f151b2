// Package gsheets implements the spreadsheet contract over the Google Sheets v4 API.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/jethrolam/gsbook/pkg/gsbook/spreadsheet"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// DefaultScope grants read and write access to spreadsheets.
const DefaultScope = sheets.SpreadsheetsScope

// Config holds service-account settings.
type Config struct {
	// CredentialsFile is the path to a service-account JSON key.
	CredentialsFile string
	// Scopes are the OAuth scopes requested. Defaults to DefaultScope.
	Scopes []string
	// ClientOptions are appended after the credentials option.
	ClientOptions []option.ClientOption
}

// Service opens Google spreadsheets by key.
type Service struct {
	api *sheets.Service
}

// New authorizes with a service-account key and creates a Sheets client.
func New(ctx context.Context, cfg Config) (*Service, error) {
	if cfg.CredentialsFile == "" {
		return nil, fmt.Errorf("%w: no credentials file configured", spreadsheet.ErrAuth)
	}
	data, err := os.ReadFile(cfg.CredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("%w: read credentials: %v", spreadsheet.ErrAuth, err)
	}

	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}
	creds, err := google.CredentialsFromJSON(ctx, data, scopes...)
	if err != nil {
		return nil, fmt.Errorf("%w: parse credentials: %v", spreadsheet.ErrAuth, err)
	}

	opts := append([]option.ClientOption{option.WithCredentials(creds)}, cfg.ClientOptions...)
	api, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return NewWithService(api), nil
}

// NewWithService wraps an already configured Sheets client.
func NewWithService(api *sheets.Service) *Service {
	return &Service{api: api}
}

// Open fetches the spreadsheet metadata for key.
func (s *Service) Open(ctx context.Context, key string) (spreadsheet.Sheet, error) {
	doc := &Document{api: s.api, key: key}
	if err := doc.refresh(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// Document is an open Google spreadsheet.
type Document struct {
	api   *sheets.Service
	key   string
	title string
	tabs  []*sheets.SheetProperties
}

// Key returns the spreadsheet id.
func (d *Document) Key() string {
	return d.key
}

// Title returns the spreadsheet title as of the last metadata fetch.
func (d *Document) Title() string {
	return d.title
}

// Tabs lists tab titles in sheet order.
func (d *Document) Tabs(ctx context.Context) ([]string, error) {
	if err := d.refresh(ctx); err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(d.tabs))
	for _, p := range d.tabs {
		titles = append(titles, p.Title)
	}
	return titles, nil
}

// ReadTab returns the formatted values of every row in the tab.
func (d *Document) ReadTab(ctx context.Context, title string) ([][]string, error) {
	if _, err := d.tab(ctx, title); err != nil {
		return nil, err
	}

	resp, err := d.api.Spreadsheets.Values.Get(d.key, quoteTitle(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, spreadsheet.NewTabError(d.key, title, classify(err, spreadsheet.ErrTabNotFound))
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, v := range row {
			rows[i][j] = formatValue(v)
		}
	}
	return rows, nil
}

// AddTab creates a tab with the given grid size.
func (d *Document) AddTab(ctx context.Context, title string, rows, cols int) error {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{
				Title: title,
				GridProperties: &sheets.GridProperties{
					RowCount:    int64(rows),
					ColumnCount: int64(cols),
				},
			},
		},
	}
	if err := d.batchUpdate(ctx, req); err != nil {
		return spreadsheet.NewTabError(d.key, title, fmt.Errorf("%w: add tab: %v", spreadsheet.ErrWriteFailed, err))
	}
	return nil
}

// DeleteTab removes the tab. It returns ErrTabNotFound when absent.
func (d *Document) DeleteTab(ctx context.Context, title string) error {
	props, err := d.tab(ctx, title)
	if err != nil {
		return err
	}

	req := &sheets.Request{
		DeleteSheet: &sheets.DeleteSheetRequest{
			SheetId: props.SheetId,
			// the first tab has id 0, which would otherwise be omitted
			ForceSendFields: []string{"SheetId"},
		},
	}
	if err := d.batchUpdate(ctx, req); err != nil {
		return spreadsheet.NewTabError(d.key, title, fmt.Errorf("%w: delete tab: %v", spreadsheet.ErrWriteFailed, err))
	}
	return nil
}

// TabSize returns the grid properties of the tab.
func (d *Document) TabSize(ctx context.Context, title string) (int, int, error) {
	props, err := d.tab(ctx, title)
	if err != nil {
		return 0, 0, err
	}
	if props.GridProperties == nil {
		return 0, 0, nil
	}
	return int(props.GridProperties.RowCount), int(props.GridProperties.ColumnCount), nil
}

// UpdateRange writes raw values into the range.
func (d *Document) UpdateRange(ctx context.Context, title, rng string, values [][]any) error {
	body := &sheets.ValueRange{
		Range:  quoteTitle(title) + "!" + rng,
		Values: make([][]interface{}, len(values)),
	}
	for i, row := range values {
		body.Values[i] = make([]interface{}, len(row))
		for j, v := range row {
			if v == nil {
				v = ""
			}
			body.Values[i][j] = v
		}
	}

	_, err := d.api.Spreadsheets.Values.Update(d.key, body.Range, body).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return spreadsheet.NewTabError(d.key, title, fmt.Errorf("%w: update %s: %v", spreadsheet.ErrWriteFailed, rng, err))
	}
	return nil
}

// Close is a no-op; the HTTP client is owned by the Service.
func (d *Document) Close() error {
	return nil
}

func (d *Document) refresh(ctx context.Context) error {
	doc, err := d.api.Spreadsheets.Get(d.key).
		Fields("spreadsheetId", "properties.title", "sheets.properties").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("open %s: %w", d.key, classify(err, spreadsheet.ErrSheetNotFound))
	}

	if doc.Properties != nil {
		d.title = doc.Properties.Title
	}
	d.tabs = d.tabs[:0]
	for _, s := range doc.Sheets {
		if s.Properties != nil {
			d.tabs = append(d.tabs, s.Properties)
		}
	}
	return nil
}

func (d *Document) tab(ctx context.Context, title string) (*sheets.SheetProperties, error) {
	if err := d.refresh(ctx); err != nil {
		return nil, err
	}
	for _, p := range d.tabs {
		if p.Title == title {
			return p, nil
		}
	}
	return nil, spreadsheet.NewTabError(d.key, title, spreadsheet.ErrTabNotFound)
}

func (d *Document) batchUpdate(ctx context.Context, reqs ...*sheets.Request) error {
	_, err := d.api.Spreadsheets.BatchUpdate(d.key, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: reqs,
	}).Context(ctx).Do()
	return err
}

// classify maps API status codes onto service error kinds.
func classify(err error, notFound error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", notFound, apiErr.Message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", spreadsheet.ErrAuth, apiErr.Message)
	default:
		return err
	}
}

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
