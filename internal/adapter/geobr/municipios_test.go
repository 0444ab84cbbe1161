package geobr_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FrancyJGLisboa/agri-feeders/internal/adapter/geobr"
)

const municipiosCSV = `codigo_ibge,nome,latitude,longitude,capital,codigo_uf
2900207,Abaré,-8.72073,-39.1162,0,29
3550308,São Paulo,-23.5329,-46.6395,1,35
`

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/csv")
		fmt.Fprint(w, municipiosCSV)
	}))
	defer srv.Close()

	client := geobr.NewClient(srv.URL, 5*time.Second, slog.Default())
	refs, err := client.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, refs, 2)
	assert.Equal(t, "2900207", refs[0].Code)
	assert.Equal(t, -8.72073, refs[0].Latitude)
	assert.Equal(t, -39.1162, refs[0].Longitude)
	assert.Zero(t, refs[0].AreaAcres, "municipality reference carries no land area")
}

func TestFetch_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := geobr.NewClient(srv.URL, 5*time.Second, slog.Default())
	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestFetch_MalformedCSV(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "codigo_ibge,latitude,longitude\nnot-a-number,1.0,2.0\n")
	}))
	defer srv.Close()

	client := geobr.NewClient(srv.URL, 5*time.Second, slog.Default())
	_, err := client.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "municipios parse")
}
