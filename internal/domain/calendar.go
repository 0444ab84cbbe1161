package domain

import (
	"strings"
	"time"
)

// stateAbbrev maps the full state names used in the 50%-planted workbook
// headers to postal abbreviations. "US TOTAL" is the national aggregate.
var stateAbbrev = map[string]string{
	"ARKANSAS":     "AR",
	"ILLINOIS":     "IL",
	"INDIANA":      "IN",
	"IOWA":         "IA",
	"KANSAS":       "KS",
	"KENTUCKY":     "KY",
	"LOUISIANA":    "LA",
	"MICHIGAN":     "MI",
	"MINNESOTA":    "MN",
	"MISSISSIPPI":  "MS",
	"MISSOURI":     "MO",
	"NEBRASKA":     "NE",
	"NORTH DAKOTA": "ND",
	"OHIO":         "OH",
	"SOUTH DAKOTA": "SD",
	"TENNESSEE":    "TN",
	"WISCONSIN":    "WI",
	"US TOTAL":     "US",
}

// StateAbbrev converts a full US state name to its postal abbreviation.
// Unknown names pass through unchanged.
func StateAbbrev(name string) string {
	if abbrev, ok := stateAbbrev[strings.ToUpper(strings.TrimSpace(name))]; ok {
		return abbrev
	}
	return name
}

// calendarDateLayouts are the cell formats the workbook has been observed
// to carry, depending on how the sheet column was formatted.
var calendarDateLayouts = []string{
	"2006-01-02",
	"01-02-06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
}

// MonthDay reduces a workbook date cell to "MM-DD". Returns false for empty
// or unparseable cells, which are dropped from the calendar.
func MonthDay(cell string) (string, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" || strings.EqualFold(cell, "null") {
		return "", false
	}
	for _, layout := range calendarDateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t.Format("01-02"), true
		}
	}
	return "", false
}

// Calendar holds 50%-planted dates keyed by planting year, then state
// abbreviation, as "MM-DD".
type Calendar struct {
	ByPlantedYear map[string]map[string]string `json:"by_planted_year"`
}

// BuildCalendar reshapes a workbook sheet into a Calendar. The sheet is
// expected to carry a header row ("Row Labels" followed by state names) and
// one row per year. Cells that do not parse as dates are skipped.
func BuildCalendar(rows [][]string) Calendar {
	cal := Calendar{ByPlantedYear: make(map[string]map[string]string)}
	if len(rows) < 2 {
		return cal
	}

	header := rows[0]
	for _, row := range rows[1:] {
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}
		year := strings.TrimSpace(row[0])
		byState := make(map[string]string)
		for col := 1; col < len(row) && col < len(header); col++ {
			mmdd, ok := MonthDay(row[col])
			if !ok {
				continue
			}
			byState[StateAbbrev(header[col])] = mmdd
		}
		cal.ByPlantedYear[year] = byState
	}
	return cal
}
