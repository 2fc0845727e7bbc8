package extraction

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/visa-scraper/internal/types"
)

// Defaults used by the manual extractor.
const (
	ManualVisaName          = "Digital Nomad Visa"
	DurationNotSpecified    = "Not specified"
	CheckRequirements       = "Check official source for requirements"
	CheckApplicationProcess = "Check official source for application steps"
)

// Amounts and units may be separated by any space separator, including the
// non-breaking space that &nbsp; decodes to. Digits are ASCII only.
var (
	incomePattern   = regexp.MustCompile(`(?i)(\d+(?:,\d+)*)[\s\p{Zs}]*(?:EUR|€|euros?|dollars?|\$)`)
	durationPattern = regexp.MustCompile(`(?i)(\d+)[\s\p{Zs}]*(?:year|month)s?`)
)

// keywordClauses maps page keywords to the eligibility sentence they imply, in output order.
var keywordClauses = []struct {
	keyword string
	clause  string
}{
	{"remote work", "Must work remotely for employer outside the country"},
	{"income", "Proof of sufficient income required"},
	{"insurance", "Health insurance required"},
}

// Manual is the deterministic fallback extractor. It never fails.
type Manual struct{}

// Extract implements Extractor.
func (Manual) Extract(_ context.Context, req Request) (*types.RawExtraction, error) {
	return ExtractManual(req.Content, req.SourceURL), nil
}

// ExtractManual pulls income, duration and coarse eligibility hints out of free text.
func ExtractManual(content, sourceURL string) *types.RawExtraction {
	return &types.RawExtraction{
		VisaName:            ManualVisaName,
		MinMonthlyIncome:    ParseIncome(content),
		EligibilityCriteria: EligibilityHints(content),
		ApplicationProcess:  []string{CheckApplicationProcess},
		VisaDuration:        ParseDuration(content),
		SourceURL:           sourceURL,
		ExtractionMethod:    types.MethodManual,
	}
}

// ParseIncome returns the first currency-tagged amount in text, or nil when there is none
// or it does not fit an int.
func ParseIncome(text string) *int {
	m := incomePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	amount, err := strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
	if err != nil {
		return nil
	}
	return &amount
}

// ParseDuration returns the first "<n> year(s)|month(s)" phrase verbatim.
func ParseDuration(text string) string {
	if m := durationPattern.FindString(text); m != "" {
		return m
	}
	return DurationNotSpecified
}

// EligibilityHints returns one canned clause per keyword present in text.
func EligibilityHints(text string) []string {
	lower := strings.ToLower(text)

	var hints []string
	for _, kc := range keywordClauses {
		if strings.Contains(lower, kc.keyword) {
			hints = append(hints, kc.clause)
		}
	}
	if len(hints) == 0 {
		return []string{CheckRequirements}
	}
	return hints
}
