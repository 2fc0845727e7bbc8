// Package types provides type definitions for structured data used throughout the visa scraper.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawExtraction_OmitsUnknownFields(t *testing.T) {
	raw := RawExtraction{
		VisaName:         "Digital Nomad Visa",
		SourceURL:        "https://example.gov/visa",
		ExtractionMethod: MethodManual,
	}

	jsonBytes, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.NotContains(t, string(jsonBytes), "min_monthly_income")
	assert.NotContains(t, string(jsonBytes), "path_to_residency")
	assert.Contains(t, string(jsonBytes), `"extraction_method":"manual"`)
}

func TestRawExtraction_ZeroIncomeIsKept(t *testing.T) {
	zero := 0
	raw := RawExtraction{MinMonthlyIncome: &zero}

	jsonBytes, err := json.Marshal(raw)
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"min_monthly_income":0`)
}

func TestVisaRecord_JSONFieldNames(t *testing.T) {
	record := VisaRecord{
		CountryName: "Costa Rica",
		Slug:        Slug{Current: "costa-rica"},
		ScrapedAt:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		AllSources:  []string{"https://a.example"},
	}

	jsonBytes, err := json.Marshal(record)
	require.NoError(t, err)
	s := string(jsonBytes)
	assert.Contains(t, s, `"countryName":"Costa Rica"`)
	assert.Contains(t, s, `"slug":{"current":"costa-rica"}`)
	assert.Contains(t, s, `"scraped_at":"2024-01-01T00:00:00Z"`)
	assert.Contains(t, s, `"all_sources":["https://a.example"]`)
}

func TestCountryProfile_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		profile CountryProfile
		wantErr bool
	}{
		{
			name: "valid",
			profile: CountryProfile{
				Key:         "spain",
				DisplayName: "Spain",
				SourceURLs:  []string{"https://example.gov/spain"},
				Coordinates: Coordinates{Latitude: 40.4, Longitude: -3.7},
			},
		},
		{
			name: "missing key",
			profile: CountryProfile{
				DisplayName: "Spain",
				SourceURLs:  []string{"https://example.gov/spain"},
			},
			wantErr: true,
		},
		{
			name: "no urls",
			profile: CountryProfile{
				Key:         "spain",
				DisplayName: "Spain",
			},
			wantErr: true,
		},
		{
			name: "malformed url",
			profile: CountryProfile{
				Key:         "spain",
				DisplayName: "Spain",
				SourceURLs:  []string{"not a url"},
			},
			wantErr: true,
		},
		{
			name: "latitude out of range",
			profile: CountryProfile{
				Key:         "spain",
				DisplayName: "Spain",
				SourceURLs:  []string{"https://example.gov/spain"},
				Coordinates: Coordinates{Latitude: 91},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.profile)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestResults_PreservesInsertionOrder(t *testing.T) {
	results := NewResults()
	results.Add("spain", &VisaRecord{CountryName: "Spain"})
	results.Add("italy", &VisaRecord{CountryName: "Italy"})
	results.Add("spain", &VisaRecord{CountryName: "Spain (updated)"})

	assert.Equal(t, []string{"spain", "italy"}, results.Keys)
	assert.Equal(t, 2, results.Len())

	ordered := results.Ordered()
	require.Len(t, ordered, 2)
	assert.Equal(t, "Spain (updated)", ordered[0].CountryName)
	assert.Equal(t, "Italy", ordered[1].CountryName)
}
