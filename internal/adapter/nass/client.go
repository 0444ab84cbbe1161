// Package nass queries the USDA NASS QuickStats API for county-level crop
// statistics.
package nass

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

// DefaultBaseURL is the production QuickStats endpoint.
const DefaultBaseURL = "https://quickstats.nass.usda.gov/api/api_GET/"

// ErrTooManyRecords is returned when QuickStats refuses a query with HTTP
// 413; the 50k-record limit is unreachable for a single state and year, so
// callers treat it as an empty result.
var ErrTooManyRecords = errors.New("nass: query matches too many records")

// commodities maps CLI crop names to NASS commodity_desc values.
var commodities = map[string]string{
	"corn":     "CORN",
	"soybeans": "SOYBEANS",
	"wheat":    "WHEAT",
	"cotton":   "COTTON",
}

// statCategories maps statisticcat_desc values to canonical variable names.
// Categories outside this map (prices, area harvested, ...) are dropped.
var statCategories = map[string]string{
	"AREA PLANTED": domain.VarAreaPlanted,
	"YIELD":        domain.VarYield,
	"PRODUCTION":   domain.VarProduction,
}

// CommodityForCrop resolves a CLI crop name to its NASS commodity_desc.
func CommodityForCrop(crop string) (string, error) {
	c, ok := commodities[crop]
	if !ok {
		return "", fmt.Errorf("crop %q not supported (known: corn, soybeans, wheat, cotton)", crop)
	}
	return c, nil
}

// Client calls the QuickStats API.
type Client struct {
	http   *resty.Client
	apiKey string
	logger *slog.Logger
}

// NewClient creates a QuickStats client. Requests retry on transport errors
// and 5xx with increasing waits, mirroring the API's advice for transient
// server errors.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(3).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(4 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})
	return &Client{http: httpClient, apiKey: apiKey, logger: logger}
}

// FetchStateYear retrieves county records for one state, commodity, and
// year as long observations. Aggregate rows without a 3-digit county ANSI
// code are skipped, and statistic categories outside planted area, yield,
// and production are dropped.
func (c *Client) FetchStateYear(ctx context.Context, commodity, stateAlpha string, year int) ([]domain.CropObservation, error) {
	stateFIPS, ok := domain.FIPSForState(stateAlpha)
	if !ok {
		return nil, fmt.Errorf("unknown state abbreviation %q", stateAlpha)
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":            c.apiKey,
			"commodity_desc": commodity,
			"state_alpha":    stateAlpha,
			"agg_level_desc": "COUNTY",
			"year":           strconv.Itoa(year),
			"format":         "json",
		}).
		SetResult(&quickStatsResponse{}).
		Get("")
	if err != nil {
		return nil, fmt.Errorf("nass request for %s/%d: %w", stateAlpha, year, err)
	}
	if resp.StatusCode() == http.StatusRequestEntityTooLarge {
		return nil, ErrTooManyRecords
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("nass API error for %s/%d: status %d", stateAlpha, year, resp.StatusCode())
	}

	body, ok := resp.Result().(*quickStatsResponse)
	if !ok || body == nil {
		return nil, fmt.Errorf("nass response for %s/%d: unexpected shape", stateAlpha, year)
	}

	var obs []domain.CropObservation
	for _, rec := range body.Data {
		if len(rec.CountyANSI) != 3 {
			continue
		}
		variable, ok := statCategories[rec.StatisticCat]
		if !ok {
			continue
		}
		obs = append(obs, domain.CropObservation{
			RegionCode: stateFIPS + rec.CountyANSI,
			RegionName: domain.TitleCase(rec.CountyName),
			State:      stateAlpha,
			Year:       rec.Year.String(),
			Variable:   variable,
			Value:      domain.ParseNASSValue(rec.Value),
		})
	}

	c.logger.Debug("nass state fetched", "state", stateAlpha, "year", year, "observations", len(obs))
	return obs, nil
}

// QuickStats API response types. The year field arrives as a JSON number.

type quickStatsResponse struct {
	Data []quickStatsRecord `json:"data"`
}

type quickStatsRecord struct {
	CountyANSI   string    `json:"county_ansi"`
	CountyName   string    `json:"county_name"`
	StatisticCat string    `json:"statisticcat_desc"`
	Year         yearField `json:"year"`
	Value        string    `json:"Value"`
}

// yearField tolerates both "2021" and 2021 in the year column.
type yearField string

func (y *yearField) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	*y = yearField(s)
	return nil
}

func (y yearField) String() string { return string(y) }
