package arinc424

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeLatitude(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected float64
		ok       bool
	}{
		{"north", "N38443200", 38 + 44.0/60 + 32.00/3600, true},
		{"south", "S33564512", -(33 + 56.0/60 + 45.12/3600), true},
		{"hundredths", "N40000050", 40 + 0.50/3600, true},
		{"too short", "N384432", 0, false},
		{"non-numeric", "N38-43200", 0, false},
		{"wrong hemisphere", "E38443200", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := DecodeLatitude(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, v, 1e-9)
		})
	}
}

func TestDecodeLongitude(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected float64
		ok       bool
	}{
		{"west", "W077261900", -(77 + 26.0/60 + 19.0/3600), true},
		{"east", "E151104425", 151 + 10.0/60 + 44.25/3600, true},
		{"too short", "W0772619", 0, false},
		{"non-numeric", "W07726 900", 0, false},
		{"wrong hemisphere", "N077261900", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := DecodeLongitude(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.InDelta(t, tt.expected, v, 1e-9)
		})
	}
}
