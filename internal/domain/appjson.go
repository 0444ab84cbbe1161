package domain

import (
	"fmt"
	"math"
)

// AppRegion is the per-region metadata block of the hierarchical app JSON.
type AppRegion struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Label    string  `json:"label"`
	UF       string  `json:"uf"`
	IBGECode string  `json:"ibge_code,omitempty"`
}

// AppDataset is the hierarchical structure consumed by the mapping app:
// region metadata plus area and production values keyed crop → year → slug.
type AppDataset struct {
	Municipios map[string]AppRegion                     `json:"municipios"`
	Area       map[string]map[string]map[string]float64 `json:"area"`
	Producao   map[string]map[string]map[string]float64 `json:"producao"`
}

// NewAppDataset creates an empty dataset with the crop's value maps
// initialized.
func NewAppDataset(crop string) *AppDataset {
	return &AppDataset{
		Municipios: make(map[string]AppRegion),
		Area:       map[string]map[string]map[string]float64{crop: {}},
		Producao:   map[string]map[string]map[string]float64{crop: {}},
	}
}

// AddMunicipalityRow folds one flat IBGE row into the dataset. Rows without
// coordinates are skipped; thousand-unit values convert back to base units
// (hectares, tonnes). Returns true when the row was used.
func (d *AppDataset) AddMunicipalityRow(crop string, row MunicipalityRow) bool {
	if row.Latitude == nil || row.Longitude == nil {
		return false
	}

	key := Slugify(row.RegionName)
	if _, ok := d.Municipios[key]; !ok {
		d.Municipios[key] = AppRegion{
			Lat:      *row.Latitude,
			Lon:      *row.Longitude,
			Label:    row.RegionName,
			UF:       row.StateName,
			IBGECode: row.MunicipioCode,
		}
	}

	if row.AreaPlanted1000Ha > 0 {
		d.setValue(d.Area, crop, row.Year, key, round2(row.AreaPlanted1000Ha*1000))
	}
	if row.Production1000T > 0 {
		d.setValue(d.Producao, crop, row.Year, key, round2(row.Production1000T*1000))
	}
	return true
}

// AddCountyRow folds one flat NASS row into the dataset. Values stay in
// thousand acres and thousand bushels.
func (d *AppDataset) AddCountyRow(crop string, row CountyRow) bool {
	if row.Latitude == nil || row.Longitude == nil {
		return false
	}

	key := CountySlug(row.CountyName, row.StateAlpha)
	if _, ok := d.Municipios[key]; !ok {
		d.Municipios[key] = AppRegion{
			Lat:   *row.Latitude,
			Lon:   *row.Longitude,
			Label: fmt.Sprintf("%s (%s)", row.CountyName, row.StateAlpha),
			UF:    row.StateAlpha,
		}
	}

	if row.AreaPlanted1000Acres > 0 {
		d.setValue(d.Area, crop, row.Year, key, round2(row.AreaPlanted1000Acres))
	}
	if row.Production1000Bu > 0 {
		d.setValue(d.Producao, crop, row.Year, key, round2(row.Production1000Bu))
	}
	return true
}

// Years returns the sorted-insensitive set of years present for the crop in
// the area map; used for run summaries.
func (d *AppDataset) Years(crop string) []string {
	years := make([]string, 0, len(d.Area[crop]))
	for y := range d.Area[crop] {
		years = append(years, y)
	}
	return years
}

func (d *AppDataset) setValue(m map[string]map[string]map[string]float64, crop, year, key string, v float64) {
	byYear, ok := m[crop]
	if !ok {
		byYear = make(map[string]map[string]float64)
		m[crop] = byYear
	}
	byKey, ok := byYear[year]
	if !ok {
		byKey = make(map[string]float64)
		byYear[year] = byKey
	}
	byKey[key] = v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
