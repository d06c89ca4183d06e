// Package sheets wraps the Google Sheets v4 API with the four operations
// the bot needs: read a value range, list tab titles, append a row and
// update a single cell.  All reservation data lives in spreadsheets owned
// by the operators; this service only reads and annotates them.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// Client is a thin wrapper over the generated Sheets service.
type Client struct {
	svc *sheetsapi.Service
}

// NewClient builds a Sheets client from service-account credentials JSON.
func NewClient(ctx context.Context, credentialsJSON string) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// ReadRange returns the cell values of an A1-style range as strings.  Rows
// are ragged: trailing empty cells are omitted by the API, so callers must
// bounds-check column access.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: read %s %s: %w", spreadsheetID, readRange, err)
	}
	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TabTitles lists the titles of every tab in a spreadsheet, in sheet order.
func (c *Client) TabTitles(ctx context.Context, spreadsheetID string) ([]string, error) {
	meta, err := c.svc.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: metadata %s: %w", spreadsheetID, err)
	}
	titles := make([]string, 0, len(meta.Sheets))
	for _, s := range meta.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

// AppendRow appends one row after the last row of the given range/tab.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, appendRange string, values []string) error {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{cells}}
	_, err := c.svc.Spreadsheets.Values.Append(spreadsheetID, appendRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: append %s %s: %w", spreadsheetID, appendRange, err)
	}
	return nil
}

// UpdateCell overwrites a single cell (A1 notation, e.g. "N7").
func (c *Client) UpdateCell(ctx context.Context, spreadsheetID, cell, value string) error {
	vr := &sheetsapi.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(spreadsheetID, cell, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("sheets: update %s %s: %w", spreadsheetID, cell, err)
	}
	return nil
}
