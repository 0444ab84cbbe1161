package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

func TestStateAbbrev(t *testing.T) {
	assert.Equal(t, "IA", domain.StateAbbrev("Iowa"))
	assert.Equal(t, "ND", domain.StateAbbrev("NORTH DAKOTA"))
	assert.Equal(t, "US", domain.StateAbbrev("US Total"))
	assert.Equal(t, "Narnia", domain.StateAbbrev("Narnia"), "unknown names pass through")
}

func TestMonthDay(t *testing.T) {
	cases := []struct {
		cell string
		want string
		ok   bool
	}{
		{"2023-05-12", "05-12", true},
		{"05-12-23", "05-12", true},
		{"5/12/23", "05-12", true},
		{"05/12/2023", "05-12", true},
		{"", "", false},
		{"null", "", false},
		{"not a date", "", false},
	}
	for _, tc := range cases {
		got, ok := domain.MonthDay(tc.cell)
		assert.Equal(t, tc.ok, ok, "cell %q", tc.cell)
		assert.Equal(t, tc.want, got, "cell %q", tc.cell)
	}
}

func TestBuildCalendar(t *testing.T) {
	rows := [][]string{
		{"Row Labels", "Iowa", "Illinois", "US Total"},
		{"2022", "2022-05-08", "2022-05-14", "2022-05-15"},
		{"2023", "2023-05-11", "not a date", "2023-05-13"},
		{"", "2024-05-01"}, // blank year label, skipped
	}

	cal := domain.BuildCalendar(rows)
	want := map[string]map[string]string{
		"2022": {"IA": "05-08", "IL": "05-14", "US": "05-15"},
		"2023": {"IA": "05-11", "US": "05-13"},
	}
	if diff := cmp.Diff(want, cal.ByPlantedYear); diff != "" {
		t.Errorf("calendar mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCalendar_Empty(t *testing.T) {
	cal := domain.BuildCalendar(nil)
	require.NotNil(t, cal.ByPlantedYear)
	assert.Empty(t, cal.ByPlantedYear)
}
