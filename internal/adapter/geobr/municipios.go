// Package geobr downloads the Brazilian municipality coordinate reference
// (kelvins/municipios-brasileiros), the same static dataset the mapping app
// uses for lat/lon lookups.
package geobr

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jszwec/csvutil"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

// DefaultURL is the municipality coordinates CSV.
const DefaultURL = "https://raw.githubusercontent.com/kelvins/municipios-brasileiros/main/csv/municipios.csv"

// Client downloads the coordinate reference.
type Client struct {
	http   *resty.Client
	url    string
	logger *slog.Logger
}

// NewClient creates a municipality coordinates client.
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &Client{http: httpClient, url: url, logger: logger}
}

// municipio is one row of the upstream CSV. Only the columns merged into
// datasets are decoded.
type municipio struct {
	CodigoIBGE int64   `csv:"codigo_ibge"`
	Latitude   float64 `csv:"latitude"`
	Longitude  float64 `csv:"longitude"`
}

// Fetch downloads and decodes the coordinate CSV into a geo reference
// slice keyed by IBGE municipality code.
func (c *Client) Fetch(ctx context.Context) ([]domain.GeoRef, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("municipios download: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("municipios download: status %d", resp.StatusCode())
	}

	var rows []municipio
	if err := csvutil.Unmarshal(resp.Body(), &rows); err != nil {
		return nil, fmt.Errorf("municipios parse: %w", err)
	}

	refs := make([]domain.GeoRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, domain.GeoRef{
			Code:      strconv.FormatInt(row.CodigoIBGE, 10),
			Latitude:  row.Latitude,
			Longitude: row.Longitude,
		})
	}

	c.logger.Info("municipality geo reference fetched", "municipalities", len(refs))
	return refs, nil
}
