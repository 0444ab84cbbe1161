// Package cftc downloads CFTC Disaggregated Commitments of Traders yearly
// archives and parses the futures-only CSV they contain.
package cftc

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

// DefaultBaseURL is the CFTC historical archive root.
const DefaultBaseURL = "https://www.cftc.gov/files/dea/history"

// Columns read from the disaggregated report. Header casing differs between
// the TXT and XLS distributions, so matching is case-insensitive.
const (
	colMarket     = "market_and_exchange_names"
	colReportDate = "report_date_as_mm_dd_yyyy"
	colMMLong     = "m_money_positions_long_all"
	colMMShort    = "m_money_positions_short_all"
)

var reportDateLayouts = []string{"2006-01-02", "1/2/2006", "01/02/2006"}

// Client downloads COT archives.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a CFTC archive client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &Client{http: httpClient, logger: logger}
}

// FetchYear downloads one year's futures-only disaggregated archive and
// parses every row into a COTRecord. Rows with unparseable dates or
// positions are skipped.
func (c *Client) FetchYear(ctx context.Context, year int) ([]domain.COTRecord, error) {
	path := fmt.Sprintf("/fut_disagg_txt_%d.zip", year)
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("cftc download for %d: %w", year, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("cftc archive for %d: status %d", year, resp.StatusCode())
	}

	records, err := parseArchive(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("cftc archive for %d: %w", year, err)
	}

	c.logger.Debug("cftc year fetched", "year", year, "records", len(records))
	return records, nil
}

// parseArchive opens the zip payload and parses its first CSV member.
func parseArchive(payload []byte) ([]domain.COTRecord, error) {
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var member *zip.File
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		if strings.HasSuffix(name, ".txt") || strings.HasSuffix(name, ".csv") {
			member = f
			break
		}
	}
	if member == nil {
		return nil, fmt.Errorf("no csv member in archive")
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("open member %s: %w", member.Name, err)
	}
	defer rc.Close()

	return parseCSV(rc)
}

func parseCSV(r io.Reader) ([]domain.COTRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colMarket, colReportDate, colMMLong, colMMShort} {
		if _, ok := idx[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var records []domain.COTRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		date, ok := parseReportDate(field(row, idx[colReportDate]))
		if !ok {
			continue
		}
		long, errL := strconv.ParseFloat(strings.TrimSpace(field(row, idx[colMMLong])), 64)
		short, errS := strconv.ParseFloat(strings.TrimSpace(field(row, idx[colMMShort])), 64)
		if errL != nil || errS != nil {
			continue
		}

		records = append(records, domain.COTRecord{
			Market:     strings.TrimSpace(field(row, idx[colMarket])),
			ReportDate: date,
			MMLong:     long,
			MMShort:    short,
		})
	}
	return records, nil
}

func parseReportDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range reportDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
