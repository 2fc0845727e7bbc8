// Package merge selects the most complete extraction for a country and maps it onto a VisaRecord.
package merge

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/jonathan/visa-scraper/internal/types"
)

// Defaults applied when the primary extraction leaves a field empty.
const (
	DefaultVisaDuration     = "Check official source"
	DefaultBriefEligibility = "Remote work visa for digital nomads"
)

// Score is the completeness proxy used to rank extractions: the length of the JSON encoding.
func Score(raw *types.RawExtraction) int {
	if raw == nil {
		return 0
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return 0
	}
	return len(b)
}

// SelectPrimary returns the extraction with the highest Score. Earlier entries win ties.
// It returns nil when extractions holds no non-nil entry.
func SelectPrimary(extractions []*types.RawExtraction) *types.RawExtraction {
	candidates := lo.Compact(extractions)
	if len(candidates) == 0 {
		return nil
	}
	return lo.MaxBy(candidates, func(a, b *types.RawExtraction) bool {
		return Score(a) > Score(b)
	})
}

// BriefEligibility joins the first two criteria into one sentence.
func BriefEligibility(criteria []string) string {
	if len(criteria) == 0 {
		return DefaultBriefEligibility
	}
	if len(criteria) > 2 {
		criteria = criteria[:2]
	}
	return strings.Join(criteria, ". ") + "."
}

// Slug lowercases name and replaces each space with a hyphen.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

// DefaultVisaName is the visa name used when the primary extraction has none.
func DefaultVisaName(country string) string {
	return fmt.Sprintf("%s Digital Nomad Visa", country)
}

// Merge builds the VisaRecord for profile from its extractions.
// The second return value is false when there is nothing to merge.
func Merge(profile types.CountryProfile, extractions []*types.RawExtraction, now time.Time) (*types.VisaRecord, bool) {
	primary := SelectPrimary(extractions)
	if primary == nil {
		return nil, false
	}

	record := &types.VisaRecord{
		CountryName:        profile.DisplayName,
		Slug:               types.Slug{Current: Slug(profile.DisplayName)},
		VisaName:           primary.VisaName,
		FullEligibility:    nonNil(primary.EligibilityCriteria),
		ApplicationProcess: nonNil(primary.ApplicationProcess),
		OfficialLink:       officialLink(primary),
		VisaDuration:       primary.VisaDuration,
		Latitude:           profile.Coordinates.Latitude,
		Longitude:          profile.Coordinates.Longitude,
		ScrapedAt:          now,
		AllSources: lo.FilterMap(extractions, func(raw *types.RawExtraction, _ int) (string, bool) {
			url := lo.FromPtr(raw).SourceURL
			return url, url != ""
		}),
	}

	if record.VisaName == "" {
		record.VisaName = DefaultVisaName(profile.DisplayName)
	}
	if primary.MinMonthlyIncome != nil {
		record.MinMonthlyIncome = *primary.MinMonthlyIncome
	}
	if record.VisaDuration == "" {
		record.VisaDuration = DefaultVisaDuration
	}
	if primary.PathToResidency != nil {
		record.PathToResidency = *primary.PathToResidency
	}
	record.BriefEligibility = BriefEligibility(record.FullEligibility)

	return record, true
}

func officialLink(raw *types.RawExtraction) string {
	if len(raw.OfficialLinks) > 0 {
		return raw.OfficialLinks[0]
	}
	return raw.SourceURL
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
