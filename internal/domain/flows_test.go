package domain_test

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

func TestSectorFor(t *testing.T) {
	cases := []struct {
		market string
		sector string
		ok     bool
	}{
		{"CORN - CHICAGO BOARD OF TRADE", domain.SectorGrains, true},
		{"SOYBEANS - CHICAGO BOARD OF TRADE", domain.SectorGrains, true},
		{"SOYBEAN OIL - CHICAGO BOARD OF TRADE", domain.SectorOilseeds, true},
		{"SOYBEAN MEAL - CHICAGO BOARD OF TRADE", domain.SectorOilseeds, true},
		{"WHEAT-SRW - CHICAGO BOARD OF TRADE", domain.SectorGrains, true},
		{"LIVE CATTLE - CHICAGO MERCANTILE EXCHANGE", domain.SectorMeats, true},
		{"FEEDER CATTLE - CHICAGO MERCANTILE EXCHANGE", domain.SectorMeats, true},
		{"LEAN HOGS - CHICAGO MERCANTILE EXCHANGE", domain.SectorMeats, true},
		{"COFFEE C - ICE FUTURES U.S.", domain.SectorSofts, true},
		{"SUGAR NO. 11 - ICE FUTURES U.S.", domain.SectorSofts, true},
		{"CRUDE OIL - NEW YORK MERCANTILE EXCHANGE", "", false},
	}
	for _, tc := range cases {
		sector, ok := domain.SectorFor(tc.market)
		assert.Equal(t, tc.ok, ok, "market %q", tc.market)
		assert.Equal(t, tc.sector, sector, "market %q", tc.market)
	}
}

func record(market string, date time.Time, long, short float64) domain.COTRecord {
	return domain.COTRecord{Market: market, ReportDate: date, MMLong: long, MMShort: short}
}

func TestComputeWeeklyFlows(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	week1 := time.Date(2024, time.February, 13, 0, 0, 0, 0, time.UTC)
	week2 := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)

	records := []domain.COTRecord{
		record("CORN - CBOT", week1, 100000, 40000),
		record("WHEAT - CBOT", week1, 20000, 50000),
		record("CORN - CBOT", week2, 130000, 40000),
		record("WHEAT - CBOT", week2, 20000, 45000),
		record("LEAN HOGS - CME", week1, 10000, 5000),
		record("LEAN HOGS - CME", week2, 10000, 9000),
		record("CRUDE OIL - NYMEX", week2, 999999, 0), // untracked market
	}

	rows := domain.ComputeWeeklyFlows(records, 20)
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "2024-02-13", first.Date)
	assert.Zero(t, first.Grains, "first week has nothing to diff against")
	assert.Zero(t, first.Total)

	second := rows[1]
	assert.Equal(t, "2024-02-20", second.Date)
	// Grains: (90000 - 25000) - (60000 - 30000) = 35000 → 35k contracts.
	assert.Equal(t, int64(35), second.Grains)
	// Meats: 1000 - 5000 = -4000 → -4k contracts.
	assert.Equal(t, int64(-4), second.Meats)
	assert.Zero(t, second.Oilseeds)
	assert.Zero(t, second.Softs)
	assert.Equal(t, int64(31), second.Total)
}

func TestComputeWeeklyFlows_TrailingWindow(t *testing.T) {
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	old := now.Add(-25 * 7 * 24 * time.Hour)
	recent := now.Add(-2 * 7 * 24 * time.Hour)

	records := []domain.COTRecord{
		record("CORN - CBOT", old, 50000, 0),
		record("CORN - CBOT", recent, 80000, 0),
	}

	rows := domain.ComputeWeeklyFlows(records, 20)
	require.Len(t, rows, 1, "weeks older than the window are dropped")
	assert.Equal(t, recent.Format("2006-01-02"), rows[0].Date)
	// Diff still runs against the dropped week: 80000 - 50000 = 30k.
	assert.Equal(t, int64(30), rows[0].Grains)
}

func TestComputeWeeklyFlows_Rounding(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	domain.SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { domain.SetClock(clockwork.NewRealClock()) })

	week1 := time.Date(2024, time.February, 13, 0, 0, 0, 0, time.UTC)
	week2 := time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)

	records := []domain.COTRecord{
		record("SUGAR NO. 11", week1, 0, 0),
		record("SUGAR NO. 11", week2, 1499, 0),
	}

	rows := domain.ComputeWeeklyFlows(records, 20)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[1].Softs, "1499 contracts rounds to 1 thousand")
}

func TestComputeWeeklyFlows_Empty(t *testing.T) {
	assert.Empty(t, domain.ComputeWeeklyFlows(nil, 20))
}
