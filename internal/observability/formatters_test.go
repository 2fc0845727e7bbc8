package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/visa-scraper/internal/types"
)

func TestPrintVisaRecord(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	record := &types.VisaRecord{
		CountryName:        "Costa Rica",
		Slug:               types.Slug{Current: "costa-rica"},
		VisaName:           "Rentista Digital Nomad",
		MinMonthlyIncome:   3000,
		FullEligibility:    []string{"A", "B", "C", "D", "E", "F", "G"},
		ApplicationProcess: []string{"Apply online"},
		OfficialLink:       "https://gov.example/cr",
		VisaDuration:       "1 year",
		PathToResidency:    true,
		AllSources:         []string{"https://gov.example/cr", "https://gov.example/cr2"},
	}

	p.PrintVisaRecord(record)
	output := buf.String()

	assert.Contains(t, output, "VISA RECORD")
	assert.Contains(t, output, "Costa Rica (costa-rica)")
	assert.Contains(t, output, "3000 / month")
	assert.Contains(t, output, "Residency: yes")
	assert.Contains(t, output, "... and 2 more")
	assert.Contains(t, output, "Sources: 2")
	assert.NotContains(t, output, "• F")
}

func TestPrintVisaRecord_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintVisaRecord(nil)
	assert.Empty(t, buf.String())
}

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction(&types.RawExtraction{
		VisaName:            "Digital Nomad Visa",
		EligibilityCriteria: []string{"Health insurance required"},
		SourceURL:           "https://gov.example/es",
		ExtractionMethod:    types.MethodManual,
	})
	output := buf.String()

	assert.Contains(t, output, "PAGE EXTRACTION")
	assert.Contains(t, output, "manual")
	assert.Contains(t, output, "Income:   not found")
	assert.Contains(t, output, "Health insurance required")

	buf.Reset()
	p.PrintExtraction(nil)
	assert.Empty(t, buf.String())
}

func TestPrintRunSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintRunSummary(RunSummary{
		Total:     3,
		Succeeded: []string{"spain", "italy"},
		Failed:    []string{"mexico"},
		Outputs:   []string{"out/visa_data.json"},
		Duration:  61 * time.Second,
	})
	output := buf.String()

	assert.Contains(t, output, "Scraped 2 out of 3 countries in 1m1s")
	assert.Contains(t, output, "✅ spain")
	assert.Contains(t, output, "❌ mexico")
	assert.Contains(t, output, "out/visa_data.json")
}

func TestPrintBox_LinesHaveEqualWidth(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "short\n"+strings.Repeat("é", 200))
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")

	for _, line := range lines {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), line)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "abc", shorten("abc", 5))
	assert.Equal(t, "ab...", shorten("abcdefgh", 5))
	assert.Equal(t, "üü...", shorten("üüüüüüü", 5))
}
