// Package census downloads the Census Bureau county Gazetteer and builds
// the county geo reference (FIPS, land area, coordinates).
package census

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

// DefaultURL is the national counties Gazetteer archive.
const DefaultURL = "https://www2.census.gov/geo/docs/maps-data/data/gazetteer/2023_Gazetteer/2023_Gaz_counties_national.zip"

// 1 square mile = 640 acres.
const acresPerSqMile = 640.0

// Gazetteer columns. The files pad header names with trailing whitespace.
const (
	colGEOID = "GEOID"
	colALand = "ALAND_SQMI"
	colLat   = "INTPTLAT"
	colLon   = "INTPTLONG"
)

// Client downloads the Gazetteer archive.
type Client struct {
	http   *resty.Client
	url    string
	logger *slog.Logger
}

// NewClient creates a Gazetteer client.
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

// Fetch downloads and parses the Gazetteer into a geo reference slice.
// Counties with unparseable area or coordinates are dropped.
func (c *Client) Fetch(ctx context.Context) ([]domain.GeoRef, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("gazetteer download: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("gazetteer download: status %d", resp.StatusCode())
	}

	refs, err := parseArchive(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("gazetteer parse: %w", err)
	}

	c.logger.Info("county geo reference fetched", "counties", len(refs))
	return refs, nil
}

func parseArchive(payload []byte) ([]domain.GeoRef, error) {
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	var member *zip.File
	for _, f := range zr.File {
		if strings.HasSuffix(strings.ToLower(f.Name), ".txt") {
			member = f
			break
		}
	}
	if member == nil {
		return nil, fmt.Errorf("no txt member in archive")
	}

	rc, err := member.Open()
	if err != nil {
		return nil, fmt.Errorf("open member %s: %w", member.Name, err)
	}
	defer rc.Close()

	return parseGazetteer(rc)
}

// parseGazetteer reads the tab-delimited Gazetteer file.
func parseGazetteer(r io.Reader) ([]domain.GeoRef, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	var missing []string
	for _, required := range []string{colGEOID, colALand, colLat, colLon} {
		if _, ok := idx[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns %v", missing)
	}

	var refs []domain.GeoRef
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		sqmi, errA := parseField(row, idx[colALand])
		lat, errLat := parseField(row, idx[colLat])
		lon, errLon := parseField(row, idx[colLon])
		if errA != nil || errLat != nil || errLon != nil {
			continue
		}

		refs = append(refs, domain.GeoRef{
			Code:      strings.TrimSpace(row[idx[colGEOID]]),
			Latitude:  lat,
			Longitude: lon,
			AreaAcres: sqmi * acresPerSqMile,
		})
	}
	return refs, nil
}

func parseField(row []string, i int) (float64, error) {
	if i >= len(row) {
		return 0, fmt.Errorf("short row")
	}
	return strconv.ParseFloat(strings.TrimSpace(row[i]), 64)
}
