package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Abaré - BA", "abare-ba"},
		{"São João del-Rei - MG", "sao-joao-del-rei-mg"},
		{"Três Lagoas", "tres-lagoas"},
		{"POLK", "polk"},
		{"", "unknown"},
		{"---", "unknown"},
		{"  Água Boa  ", "agua-boa"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.Slugify(tc.in), "input %q", tc.in)
	}
}

func TestCountySlug(t *testing.T) {
	assert.Equal(t, "adair-ia", domain.CountySlug("Adair", "IA"))
	assert.Equal(t, "st-clair-il", domain.CountySlug("St. Clair", "IL"))
	assert.Equal(t, "unknown", domain.CountySlug("", "IA"))
	assert.Equal(t, "unknown", domain.CountySlug("Adair", ""))
}
