package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FrancyJGLisboa/agri-feeders/internal/domain"
)

func TestParseSIDRAValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1234.5", 1234.5},
		{"0", 0},
		{"...", 0},
		{"..", 0},
		{"-", 0},
		{"X", 0},
		{"", 0},
		{"  42 ", 42},
		{"abc", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ParseSIDRAValue(tc.in), "input %q", tc.in)
	}
}

func TestParseNASSValue(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1,234,567", 1234567},
		{"180.5", 180.5},
		{"(D)", 0},
		{"(Z)", 0},
		{"(NA)", 0},
		{"(S)", 0},
		{"(H)", 0},
		{"(L)", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, domain.ParseNASSValue(tc.in), "input %q", tc.in)
	}
}
