package domain

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Sector names for hedge-fund flow aggregation. FlowRow columns must stay in
// sync with this set.
const (
	SectorGrains   = "Grains"
	SectorOilseeds = "Oilseeds"
	SectorMeats    = "Meats"
	SectorSofts    = "Softs"
)

// sectorKeys maps Market_and_Exchange_Names substrings to sectors. Ordered
// longest key first so "SOYBEAN OIL" is tested before "SOYBEANS".
var sectorKeys = []struct {
	key    string
	sector string
}{
	{"FEEDER CATTLE", SectorMeats},
	{"SOYBEAN MEAL", SectorOilseeds},
	{"SOYBEAN OIL", SectorOilseeds},
	{"LIVE CATTLE", SectorMeats},
	{"LEAN HOGS", SectorMeats},
	{"WHEAT-SRW", SectorGrains},
	{"SOYBEANS", SectorGrains},
	{"COFFEE", SectorSofts},
	{"COTTON", SectorSofts},
	{"COCOA", SectorSofts},
	{"SUGAR", SectorSofts},
	{"WHEAT", SectorGrains},
	{"CORN", SectorGrains},
}

// SectorFor maps a market name to its commodity sector. Returns false for
// markets outside the tracked universe.
func SectorFor(market string) (string, bool) {
	upper := strings.ToUpper(market)
	for _, sk := range sectorKeys {
		if strings.Contains(upper, sk.key) {
			return sk.sector, true
		}
	}
	return "", false
}

// COTRecord is one market's positioning in one weekly disaggregated report.
type COTRecord struct {
	Market     string
	ReportDate time.Time
	MMLong     float64 // M_Money_Positions_Long_All
	MMShort    float64 // M_Money_Positions_Short_All
}

// FlowRow is one week of hedge-fund net flows in thousand contracts.
type FlowRow struct {
	Date     string `csv:"Date" json:"Date"`
	Grains   int64  `csv:"Grains" json:"Grains"`
	Meats    int64  `csv:"Meats" json:"Meats"`
	Oilseeds int64  `csv:"Oilseeds" json:"Oilseeds"`
	Softs    int64  `csv:"Softs" json:"Softs"`
	Total    int64  `csv:"Total" json:"Total"`
}

// ComputeWeeklyFlows aggregates Money Manager net positions by report date
// and sector, differences consecutive weeks, and keeps the trailing window
// relative to the injected clock. The first observed week diffs against
// nothing and reports zero flow. Values are thousand contracts rounded to
// the nearest integer.
func ComputeWeeklyFlows(records []COTRecord, keepWeeks int) []FlowRow {
	// Net position per (date, sector).
	net := make(map[time.Time]map[string]float64)
	for _, rec := range records {
		sector, ok := SectorFor(rec.Market)
		if !ok {
			continue
		}
		byDate, ok := net[rec.ReportDate]
		if !ok {
			byDate = make(map[string]float64, 4)
			net[rec.ReportDate] = byDate
		}
		byDate[sector] += rec.MMLong - rec.MMShort
	}

	dates := make([]time.Time, 0, len(net))
	for d := range net {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	sectors := []string{SectorGrains, SectorMeats, SectorOilseeds, SectorSofts}
	cutoff := clock.Now().Add(-time.Duration(keepWeeks) * 7 * 24 * time.Hour)

	rows := make([]FlowRow, 0, len(dates))
	var prev map[string]float64
	for _, d := range dates {
		flows := make(map[string]int64, len(sectors))
		var total int64
		for _, s := range sectors {
			var delta float64
			if prev != nil {
				delta = net[d][s] - prev[s]
			}
			k := int64(math.Round(delta / 1000.0))
			flows[s] = k
			total += k
		}
		prev = net[d]

		if d.Before(cutoff) {
			continue
		}
		rows = append(rows, FlowRow{
			Date:     d.Format("2006-01-02"),
			Grains:   flows[SectorGrains],
			Meats:    flows[SectorMeats],
			Oilseeds: flows[SectorOilseeds],
			Softs:    flows[SectorSofts],
			Total:    total,
		})
	}
	return rows
}
