// Package sidra queries the IBGE SIDRA aggregates API for municipal crop
// statistics and flattens its nested series JSON into long observations.
package sidra

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

// DefaultBaseURL is the production SIDRA aggregates endpoint.
const DefaultBaseURL = "https://servicodados.ibge.gov.br/api/v3/agregados"

// Crop code tables. Temporary and permanent crops live in different
// aggregate tables and use a different planted-area variable.
var (
	temporaryCrops = map[string]string{
		"soja": "2713", "milho": "2711", "algodao": "2689", "cana": "2696",
		"arroz": "2692", "feijao": "2702", "sorgo": "2714", "trigo": "2719",
	}
	permanentCrops = map[string]string{
		"cafe": "2723", "laranja": "2733", "banana": "2720", "uva": "2748",
		"cacau": "2722", "manga": "2737",
	}

	temporaryVars = map[string]string{
		domain.VarProduction:  "214",
		domain.VarYield:       "112",
		domain.VarAreaPlanted: "109",
	}
	permanentVars = map[string]string{
		domain.VarProduction:  "214",
		domain.VarYield:       "112",
		domain.VarAreaPlanted: "2313",
	}
)

// Query carries the SIDRA identifiers for one crop.
type Query struct {
	Table          string
	Classification string
	Product        string
	Variables      map[string]string // canonical name → SIDRA code
}

// QueryForCrop resolves a crop name to its SIDRA query parameters.
func QueryForCrop(crop string) (Query, error) {
	if code, ok := temporaryCrops[crop]; ok {
		return Query{Table: "1612", Classification: "81", Product: code, Variables: temporaryVars}, nil
	}
	if code, ok := permanentCrops[crop]; ok {
		return Query{Table: "1613", Classification: "82", Product: code, Variables: permanentVars}, nil
	}
	return Query{}, fmt.Errorf("crop %q not supported (known: %v)", crop, SupportedCrops())
}

// SupportedCrops lists every crop name the extractor accepts, sorted.
func SupportedCrops() []string {
	crops := make([]string, 0, len(temporaryCrops)+len(permanentCrops))
	for c := range temporaryCrops {
		crops = append(crops, c)
	}
	for c := range permanentCrops {
		crops = append(crops, c)
	}
	sort.Strings(crops)
	return crops
}

// Client calls the SIDRA aggregates API.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a SIDRA client with retry on transport errors and 5xx.
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

// FetchStateYear retrieves all municipalities of one state for one year and
// returns them as long observations. The locality filter N6[N3[code]] means
// "every municipality inside the state".
func (c *Client) FetchStateYear(ctx context.Context, q Query, year int, uf string) ([]domain.CropObservation, error) {
	ufCode, ok := domain.IBGECodeForUF(uf)
	if !ok {
		return nil, fmt.Errorf("unknown state abbreviation %q", uf)
	}

	codes := make([]string, 0, len(q.Variables))
	nameByCode := make(map[string]string, len(q.Variables))
	for name, code := range q.Variables {
		codes = append(codes, code)
		nameByCode[code] = name
	}
	sort.Strings(codes)

	path := fmt.Sprintf("/%s/periodos/%d/variaveis/%s", q.Table, year, strings.Join(codes, ","))
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("localidades", fmt.Sprintf("N6[N3[%s]]", ufCode)).
		SetQueryParam("classificacao", fmt.Sprintf("%s[%s]", q.Classification, q.Product)).
		SetResult(&aggregateResponse{}).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("sidra request for %s/%d: %w", uf, year, err)
	}
	if !resp.IsSuccess() {
		return nil, fmt.Errorf("sidra API error for %s/%d: status %d: %s", uf, year, resp.StatusCode(), resp.Body())
	}

	blocks, ok := resp.Result().(*aggregateResponse)
	if !ok || blocks == nil {
		return nil, fmt.Errorf("sidra response for %s/%d: unexpected shape", uf, year)
	}

	obs := flatten(*blocks, uf, nameByCode)
	c.logger.Debug("sidra state fetched", "state", uf, "year", year, "observations", len(obs))
	return obs, nil
}

// flatten walks the variable → resultados → series nesting and emits one
// observation per (municipality, year, variable).
func flatten(blocks aggregateResponse, uf string, nameByCode map[string]string) []domain.CropObservation {
	var obs []domain.CropObservation
	for _, block := range blocks {
		name, ok := nameByCode[block.ID]
		if !ok {
			continue
		}
		if len(block.Resultados) == 0 {
			continue
		}
		// One resultado per classification combination; this extractor
		// always requests exactly one product.
		for _, serie := range block.Resultados[0].Series {
			for year, value := range serie.Serie {
				obs = append(obs, domain.CropObservation{
					RegionCode: serie.Localidade.ID,
					RegionName: serie.Localidade.Nome,
					State:      uf,
					Year:       year,
					Variable:   name,
					Value:      domain.ParseSIDRAValue(value),
				})
			}
		}
	}
	return obs
}

// SIDRA aggregates API response types.

type aggregateResponse []variableBlock

type variableBlock struct {
	ID         string      `json:"id"`
	Resultados []resultado `json:"resultados"`
}

type resultado struct {
	Series []serie `json:"series"`
}

type serie struct {
	Localidade localidade        `json:"localidade"`
	Serie      map[string]string `json:"serie"`
}

type localidade struct {
	ID   string `json:"id"`
	Nome string `json:"nome"`
}
