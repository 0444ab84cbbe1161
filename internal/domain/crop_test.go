package domain_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

func obs(code, name, state, year, variable string, value float64) domain.CropObservation {
	return domain.CropObservation{
		RegionCode: code,
		RegionName: name,
		State:      state,
		Year:       year,
		Variable:   variable,
		Value:      value,
	}
}

func TestBuildMunicipalityRows(t *testing.T) {
	observations := []domain.CropObservation{
		obs("3550308", "São Paulo", "SP", "2022", domain.VarProduction, 5000),
		obs("3550308", "São Paulo", "SP", "2022", domain.VarYield, 3200),
		obs("3550308", "São Paulo", "SP", "2022", domain.VarAreaPlanted, 1500),
		obs("2900207", "Abaré", "BA", "2022", domain.VarProduction, 800),
	}
	geo := map[string]domain.GeoRef{
		"3550308": {Code: "3550308", Latitude: -23.55, Longitude: -46.63},
	}

	rows := domain.BuildMunicipalityRows(observations, geo)
	require.Len(t, rows, 2)

	// Sorted by year, state, name: BA before SP.
	abare := rows[0]
	assert.Equal(t, "Abaré", abare.RegionName)
	assert.Equal(t, 0.8, abare.Production1000T)
	assert.Zero(t, abare.YieldKgHa, "missing variable defaults to zero")
	assert.Nil(t, abare.Latitude, "no coordinates without a geo reference")
	assert.Nil(t, abare.Longitude)

	sp := rows[1]
	assert.Equal(t, "São Paulo", sp.RegionName)
	assert.Equal(t, 5.0, sp.Production1000T)
	assert.Equal(t, 3200.0, sp.YieldKgHa)
	assert.Equal(t, 1.5, sp.AreaPlanted1000Ha)
	require.NotNil(t, sp.Latitude)
	assert.Equal(t, -23.55, *sp.Latitude)
}

func TestBuildMunicipalityRows_FirstValueWins(t *testing.T) {
	observations := []domain.CropObservation{
		obs("3550308", "São Paulo", "SP", "2022", domain.VarYield, 3200),
		obs("3550308", "São Paulo", "SP", "2022", domain.VarYield, 9999),
	}

	rows := domain.BuildMunicipalityRows(observations, nil)
	require.Len(t, rows, 1)
	assert.Equal(t, 3200.0, rows[0].YieldKgHa)
}

func TestBuildMunicipalityRows_SortOrder(t *testing.T) {
	observations := []domain.CropObservation{
		obs("b", "Zeta", "SP", "2023", domain.VarYield, 1),
		obs("a", "Alpha", "SP", "2022", domain.VarYield, 1),
		obs("c", "Beta", "MG", "2023", domain.VarYield, 1),
	}

	rows := domain.BuildMunicipalityRows(observations, nil)
	got := make([][2]string, 0, len(rows))
	for _, r := range rows {
		got = append(got, [2]string{r.Year, r.RegionName})
	}
	want := [][2]string{{"2022", "Alpha"}, {"2023", "Beta"}, {"2023", "Zeta"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("row order mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCountyRows(t *testing.T) {
	observations := []domain.CropObservation{
		obs("19001", "Adair", "IA", "2022", domain.VarProduction, 12000),
		obs("19001", "Adair", "IA", "2022", domain.VarYield, 180.5),
		obs("19001", "Adair", "IA", "2022", domain.VarAreaPlanted, 66000),
	}
	geo := map[string]domain.GeoRef{
		"19001": {Code: "19001", Latitude: 41.33, Longitude: -94.47, AreaAcres: 364800},
	}

	rows := domain.BuildCountyRows(observations, geo)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Adair", row.CountyName)
	assert.Equal(t, "19001", row.CountyFIPS)
	assert.Equal(t, 12.0, row.Production1000Bu)
	assert.Equal(t, 180.5, row.YieldBuAcre)
	assert.Equal(t, 66.0, row.AreaPlanted1000Acres)
	assert.Equal(t, 364800.0, row.TotalCountyAreaAcres)
	require.NotNil(t, row.Latitude)
	assert.Equal(t, 41.33, *row.Latitude)
}

func TestBuildCountyRows_NoGeoReference(t *testing.T) {
	observations := []domain.CropObservation{
		obs("19001", "Adair", "IA", "2022", domain.VarYield, 180.5),
	}

	rows := domain.BuildCountyRows(observations, nil)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Latitude)
	assert.Zero(t, rows[0].TotalCountyAreaAcres)
}

func TestGeoIndex(t *testing.T) {
	refs := []domain.GeoRef{
		{Code: "19001", Latitude: 41.33},
		{Code: "19003", Latitude: 41.02},
	}
	idx := domain.GeoIndex(refs)
	require.Len(t, idx, 2)
	assert.Equal(t, 41.33, idx["19001"].Latitude)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Polk", domain.TitleCase("POLK"))
	assert.Equal(t, "Black Hawk", domain.TitleCase("BLACK HAWK"))
	assert.Equal(t, "", domain.TitleCase(""))
}
