package pipeline_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancyJGLisboa/agri-feeders/internal/dataset"
	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
	"github.com/FrancyJGLisboa/agri-feeders/internal/pipeline"
)

func floatPtr(v float64) *float64 { return &v }

func TestAppJSONJob_IBGE(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dataset.json")
	out := filepath.Join(dir, "app.json")

	rows := []domain.MunicipalityRow{
		{
			Year:              "2022",
			RegionName:        "Abaré",
			StateName:         "BA",
			MunicipioCode:     "2900207",
			Latitude:          floatPtr(-8.72),
			Longitude:         floatPtr(-39.11),
			Production1000T:   1.2,
			AreaPlanted1000Ha: 0.5,
		},
		{Year: "2022", RegionName: "Sem Coordenadas", StateName: "BA"},
	}
	require.NoError(t, dataset.WriteJSON(in, rows))

	job := pipeline.NewAppJSONJob(testLogger(), testMetrics())
	require.NoError(t, job.Run(context.Background(), pipeline.SourceIBGE, "soja", in, out))

	var got domain.AppDataset
	require.NoError(t, dataset.ReadJSON(out, &got))

	require.Contains(t, got.Municipios, "abare-ba")
	assert.NotContains(t, got.Municipios, "sem-coordenadas-ba", "rows without coordinates are dropped")
	assert.Equal(t, 1200.0, got.Producao["soja"]["2022"]["abare-ba"])
	assert.Equal(t, 500.0, got.Area["soja"]["2022"]["abare-ba"])
}

func TestAppJSONJob_NASS(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "dataset.json")
	out := filepath.Join(dir, "app.json")

	rows := []domain.CountyRow{
		{
			Year:                 "2023",
			CountyName:           "Adair",
			StateAlpha:           "IA",
			CountyFIPS:           "19001",
			Latitude:             floatPtr(41.33),
			Longitude:            floatPtr(-94.47),
			Production1000Bu:     12.3,
			AreaPlanted1000Acres: 66,
		},
	}
	require.NoError(t, dataset.WriteJSON(in, rows))

	job := pipeline.NewAppJSONJob(testLogger(), testMetrics())
	require.NoError(t, job.Run(context.Background(), pipeline.SourceNASS, "corn", in, out))

	var got domain.AppDataset
	require.NoError(t, dataset.ReadJSON(out, &got))

	require.Contains(t, got.Municipios, "adair-ia")
	assert.Equal(t, "Adair (IA)", got.Municipios["adair-ia"].Label)
	assert.Equal(t, 12.3, got.Producao["corn"]["2023"]["adair-ia"], "county values stay in thousand units")
}

func TestAppJSONJob_UnknownSource(t *testing.T) {
	job := pipeline.NewAppJSONJob(testLogger(), testMetrics())
	err := job.Run(context.Background(), "sidra", "soja", "in.json", "out.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown source "sidra"`)
}

func TestAppJSONJob_MissingInput(t *testing.T) {
	job := pipeline.NewAppJSONJob(testLogger(), testMetrics())
	err := job.Run(context.Background(), pipeline.SourceIBGE, "soja",
		filepath.Join(t.TempDir(), "missing.json"), "out.json")
	require.Error(t, err)
}
