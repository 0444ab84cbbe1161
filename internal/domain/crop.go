package domain

import (
	"sort"
	"strings"
)

// Canonical variable names shared by the SIDRA and NASS extractors.
// Observations arrive in long form keyed by these names and are pivoted
// to one wide row per region and year.
const (
	VarProduction  = "production"
	VarYield       = "yield"
	VarAreaPlanted = "area_planted"
)

// CropObservation is a single (region, year, variable) measurement in long
// form, as produced by the API adapters before pivoting.
type CropObservation struct {
	RegionCode string // IBGE municipality code or 5-digit county FIPS
	RegionName string
	State      string // UF or US state abbreviation
	Year       string
	Variable   string
	Value      float64
}

// GeoRef holds the geographic attributes merged into dataset rows, keyed by
// region code. AreaAcres is populated for US counties only.
type GeoRef struct {
	Code      string  `parquet:"code" csv:"code"`
	Latitude  float64 `parquet:"latitude" csv:"latitude"`
	Longitude float64 `parquet:"longitude" csv:"longitude"`
	AreaAcres float64 `parquet:"area_acres" csv:"area_acres"`
}

// GeoIndex builds a code-keyed lookup from a geo reference slice.
func GeoIndex(refs []GeoRef) map[string]GeoRef {
	idx := make(map[string]GeoRef, len(refs))
	for _, r := range refs {
		idx[r.Code] = r
	}
	return idx
}

// MunicipalityRow is one wide dataset row for a Brazilian municipality.
// Latitude and longitude stay nil when the municipality is missing from the
// coordinate reference so downstream consumers do not plot it at (0, 0).
type MunicipalityRow struct {
	Year              string   `csv:"year" json:"year" parquet:"year"`
	RegionName        string   `csv:"region_name" json:"region_name" parquet:"region_name"`
	StateName         string   `csv:"state_name" json:"state_name" parquet:"state_name"`
	MunicipioCode     string   `csv:"municipio_cod" json:"municipio_cod" parquet:"municipio_cod"`
	Latitude          *float64 `csv:"latitude" json:"latitude" parquet:"latitude,optional"`
	Longitude         *float64 `csv:"longitude" json:"longitude" parquet:"longitude,optional"`
	YieldKgHa         float64  `csv:"yield_kg_ha" json:"yield_kg_ha" parquet:"yield_kg_ha"`
	Production1000T   float64  `csv:"production_1000t" json:"production_1000t" parquet:"production_1000t"`
	AreaPlanted1000Ha float64  `csv:"area_planted_1000ha" json:"area_planted_1000ha" parquet:"area_planted_1000ha"`
}

// CountyRow is one wide dataset row for a US county, in imperial units.
type CountyRow struct {
	Year                 string   `csv:"year" json:"year" parquet:"year"`
	CountyName           string   `csv:"county_name" json:"county_name" parquet:"county_name"`
	StateAlpha           string   `csv:"state_alpha" json:"state_alpha" parquet:"state_alpha"`
	CountyFIPS           string   `csv:"county_fips" json:"county_fips" parquet:"county_fips"`
	Latitude             *float64 `csv:"latitude" json:"latitude" parquet:"latitude,optional"`
	Longitude            *float64 `csv:"longitude" json:"longitude" parquet:"longitude,optional"`
	YieldBuAcre          float64  `csv:"yield_bu_acre" json:"yield_bu_acre" parquet:"yield_bu_acre"`
	Production1000Bu     float64  `csv:"production_1000bu" json:"production_1000bu" parquet:"production_1000bu"`
	AreaPlanted1000Acres float64  `csv:"area_planted_1000acres" json:"area_planted_1000acres" parquet:"area_planted_1000acres"`
	TotalCountyAreaAcres float64  `csv:"total_county_area_acres" json:"total_county_area_acres" parquet:"total_county_area_acres"`
}

// wideKey identifies one pivoted row.
type wideKey struct {
	Year       string
	RegionCode string
}

// wideRecord accumulates variable values for one region and year.
type wideRecord struct {
	wideKey
	RegionName string
	State      string
	Values     map[string]float64
}

// pivot reshapes long observations into one record per (year, region).
// The first value wins when a variable repeats, matching the extractors'
// at-most-one-value-per-cell expectation.
func pivot(obs []CropObservation) []wideRecord {
	byKey := make(map[wideKey]*wideRecord)
	order := make([]wideKey, 0)

	for _, o := range obs {
		k := wideKey{Year: o.Year, RegionCode: o.RegionCode}
		rec, ok := byKey[k]
		if !ok {
			rec = &wideRecord{
				wideKey:    k,
				RegionName: o.RegionName,
				State:      o.State,
				Values:     make(map[string]float64, 3),
			}
			byKey[k] = rec
			order = append(order, k)
		}
		if _, exists := rec.Values[o.Variable]; !exists {
			rec.Values[o.Variable] = o.Value
		}
	}

	out := make([]wideRecord, 0, len(order))
	for _, k := range order {
		out = append(out, *byKey[k])
	}
	return out
}

// BuildMunicipalityRows pivots long observations into sorted municipality
// dataset rows, deriving thousand-unit columns and merging coordinates from
// the geo reference. Missing variables default to zero.
func BuildMunicipalityRows(obs []CropObservation, geo map[string]GeoRef) []MunicipalityRow {
	records := pivot(obs)
	rows := make([]MunicipalityRow, 0, len(records))

	for _, rec := range records {
		row := MunicipalityRow{
			Year:              rec.Year,
			RegionName:        rec.RegionName,
			StateName:         rec.State,
			MunicipioCode:     rec.RegionCode,
			YieldKgHa:         rec.Values[VarYield],
			Production1000T:   rec.Values[VarProduction] / 1000.0,
			AreaPlanted1000Ha: rec.Values[VarAreaPlanted] / 1000.0,
		}
		if ref, ok := geo[rec.RegionCode]; ok {
			lat, lon := ref.Latitude, ref.Longitude
			row.Latitude = &lat
			row.Longitude = &lon
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		if rows[i].StateName != rows[j].StateName {
			return rows[i].StateName < rows[j].StateName
		}
		return rows[i].RegionName < rows[j].RegionName
	})
	return rows
}

// BuildCountyRows pivots long observations into sorted county dataset rows.
// County land area defaults to zero when the county is missing from the
// Gazetteer reference; coordinates stay nil.
func BuildCountyRows(obs []CropObservation, geo map[string]GeoRef) []CountyRow {
	records := pivot(obs)
	rows := make([]CountyRow, 0, len(records))

	for _, rec := range records {
		row := CountyRow{
			Year:                 rec.Year,
			CountyName:           rec.RegionName,
			StateAlpha:           rec.State,
			CountyFIPS:           rec.RegionCode,
			YieldBuAcre:          rec.Values[VarYield],
			Production1000Bu:     rec.Values[VarProduction] / 1000.0,
			AreaPlanted1000Acres: rec.Values[VarAreaPlanted] / 1000.0,
		}
		if ref, ok := geo[rec.RegionCode]; ok {
			lat, lon := ref.Latitude, ref.Longitude
			row.Latitude = &lat
			row.Longitude = &lon
			row.TotalCountyAreaAcres = ref.AreaAcres
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Year != rows[j].Year {
			return rows[i].Year < rows[j].Year
		}
		if rows[i].StateAlpha != rows[j].StateAlpha {
			return rows[i].StateAlpha < rows[j].StateAlpha
		}
		return rows[i].CountyName < rows[j].CountyName
	})
	return rows
}

// TitleCase lowercases a name and uppercases the first letter of each word.
// NASS county names arrive fully uppercased ("POLK" → "Polk").
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
