// Package types provides type definitions for structured data used throughout the visa scraper.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// ExtractionMethod tags how a RawExtraction was produced
type ExtractionMethod string

const (
	// MethodStructured marks output of the LLM extractor
	MethodStructured ExtractionMethod = "structured"
	// MethodManual marks output of the regex/keyword fallback
	MethodManual ExtractionMethod = "manual"
)

// Coordinates holds a country's map position
type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// CountryProfile is the static configuration describing one country's sources and metadata.
type CountryProfile struct {
	Key         string      `json:"key" validate:"required"`
	DisplayName string      `json:"name" validate:"required"`
	SourceURLs  []string    `json:"urls" validate:"required,min=1,dive,url"`
	Coordinates Coordinates `json:"coordinates"`
}

// RawExtraction is one attempt's parsed output for a single source page.
// Optional scalar fields are pointers so that "not found" stays distinct from a zero value.
type RawExtraction struct {
	VisaName            string           `json:"visa_name,omitempty"`
	MinMonthlyIncome    *int             `json:"min_monthly_income,omitempty"`
	EligibilityCriteria []string         `json:"eligibility_criteria,omitempty"`
	ApplicationProcess  []string         `json:"application_process,omitempty"`
	RequiredDocuments   []string         `json:"required_documents,omitempty"`
	VisaDuration        string           `json:"visa_duration,omitempty"`
	ProcessingTime      string           `json:"processing_time,omitempty"`
	ApplicationFee      string           `json:"application_fee,omitempty"`
	PathToResidency     *bool            `json:"path_to_residency,omitempty"`
	OfficialLinks       []string         `json:"official_links,omitempty"`
	SourceURL           string           `json:"source_url,omitempty"`
	ExtractionMethod    ExtractionMethod `json:"extraction_method,omitempty"`
}

// Slug mirrors the Sanity slug object shape
type Slug struct {
	Current string `json:"current"`
}

// VisaRecord is the final merged, per-country output entity.
type VisaRecord struct {
	CountryName        string    `json:"countryName"`
	Slug               Slug      `json:"slug"`
	VisaName           string    `json:"visaName"`
	MinMonthlyIncome   int       `json:"minMonthlyIncome"`
	BriefEligibility   string    `json:"briefEligibility"`
	FullEligibility    []string  `json:"fullEligibility"`
	ApplicationProcess []string  `json:"applicationProcess"`
	OfficialLink       string    `json:"officialLink"`
	VisaDuration       string    `json:"visaDuration"`
	PathToResidency    bool      `json:"pathToResidency"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	ScrapedAt          time.Time `json:"scraped_at"`
	AllSources         []string  `json:"all_sources"`
}

// Results holds merged records keyed by country key, remembering insertion order.
type Results struct {
	Keys    []string               `json:"-"`
	Records map[string]*VisaRecord `json:"-"`
}

// NewResults creates an empty Results
func NewResults() *Results {
	return &Results{Records: make(map[string]*VisaRecord)}
}

// Add stores a record, keeping the first insertion position of key.
func (r *Results) Add(key string, record *VisaRecord) {
	if _, exists := r.Records[key]; !exists {
		r.Keys = append(r.Keys, key)
	}
	r.Records[key] = record
}

// Len returns the number of stored records
func (r *Results) Len() int {
	return len(r.Keys)
}

// Ordered returns the records in insertion order.
func (r *Results) Ordered() []*VisaRecord {
	records := make([]*VisaRecord, 0, len(r.Keys))
	for _, key := range r.Keys {
		records = append(records, r.Records[key])
	}
	return records
}
