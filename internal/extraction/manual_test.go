package extraction

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/visa-scraper/internal/types"
)

func TestParseIncome(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{name: "thousands separator EUR", input: "Minimum income of 1,234 EUR per month", want: intPtr(1234)},
		{name: "euro sign", input: "at least 2646 € monthly", want: intPtr(2646)},
		{name: "euros word case-insensitive", input: "3,000 Euros", want: intPtr(3000)},
		{name: "dollar sign after amount", input: "earn 5000$ a month", want: intPtr(5000)},
		{name: "dollars word", input: "2,500 dollars", want: intPtr(2500)},
		{name: "first match wins", input: "1,000 EUR or 2,000 EUR", want: intPtr(1000)},
		{name: "zero is not unknown", input: "fee: 0 EUR", want: intPtr(0)},
		{name: "no currency", input: "minimum of 2646 per month", want: nil},
		{name: "currency before amount", input: "€2,646", want: nil},
		{name: "empty", input: "", want: nil},
		{name: "overflow", input: "99999999999999999999999 EUR", want: nil},
		{name: "non-breaking space before EUR", input: "monthly income of 2,763\u00a0EUR", want: intPtr(2763)},
		{name: "non-breaking space before euro sign", input: "mindestens 3,280\u00a0€", want: intPtr(3280)},
		{name: "narrow no-break space", input: "4,000\u202fEUR", want: intPtr(4000)},
		{name: "non-ASCII digits", input: "\u0661\u0662\u0663\u0664 EUR", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseIncome(tt.input)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, "1 year", ParseDuration("valid for 1 year, renewable"))
	assert.Equal(t, "12 months", ParseDuration("Up to 12 months"))
	assert.Equal(t, "3 Years", ParseDuration("renewable for 3 Years"))
	assert.Equal(t, "12\u00a0months", ParseDuration("valid for 12\u00a0months"))
	assert.Equal(t, "2\u00a0Years", ParseDuration("Permit valid for 2\u00a0Years"))
	assert.Equal(t, DurationNotSpecified, ParseDuration("renewable annually"))
	assert.Equal(t, DurationNotSpecified, ParseDuration(""))
}

func TestEligibilityHints(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "all keywords in fixed order",
			input: "Health INSURANCE is needed. Proof of Income. Remote Work only.",
			want: []string{
				"Must work remotely for employer outside the country",
				"Proof of sufficient income required",
				"Health insurance required",
			},
		},
		{
			name:  "only insurance",
			input: "You need travel insurance.",
			want:  []string{"Health insurance required"},
		},
		{
			name:  "none",
			input: "Nothing relevant here.",
			want:  []string{CheckRequirements},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EligibilityHints(tt.input))
		})
	}
}

func TestExtractManual_WellFormed(t *testing.T) {
	raw := ExtractManual("Remote work visa. Income of 2,646 EUR. Valid for 1 year.", "https://gov.example/visa")

	assert.Equal(t, ManualVisaName, raw.VisaName)
	require.NotNil(t, raw.MinMonthlyIncome)
	assert.Equal(t, 2646, *raw.MinMonthlyIncome)
	assert.Equal(t, "1 year", raw.VisaDuration)
	assert.Equal(t, []string{CheckApplicationProcess}, raw.ApplicationProcess)
	assert.Equal(t, "https://gov.example/visa", raw.SourceURL)
	assert.Equal(t, types.MethodManual, raw.ExtractionMethod)
	assert.Len(t, raw.EligibilityCriteria, 2)
}

func TestExtractManual_NeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"   \n\t ",
		"Виза для цифровых кочевников: доход 3 000 евро в месяц",
		"デジタルノマドビザ 月収 ¥500,000",
		"تأشيرة العمل عن بعد ١٢٣٤ EUR",
		strings.Repeat("1,", 10000) + " EUR",
		"\x00\xff\xfe invalid utf8 \xc3\x28 1 year",
		"$$$ €€€ ,,,, EUR year month",
	}

	for _, input := range inputs {
		assert.NotPanics(t, func() {
			raw := ExtractManual(input, "https://gov.example")
			require.NotNil(t, raw)
			assert.Equal(t, ManualVisaName, raw.VisaName)
			assert.NotEmpty(t, raw.EligibilityCriteria)
			assert.NotEmpty(t, raw.VisaDuration)
			assert.Equal(t, types.MethodManual, raw.ExtractionMethod)
		})
	}
}

func TestManual_ImplementsExtractor(t *testing.T) {
	var e Extractor = Manual{}
	raw, err := e.Extract(context.Background(), Request{Content: "", SourceURL: "https://gov.example"})
	require.NoError(t, err)
	assert.Nil(t, raw.MinMonthlyIncome)
	assert.Equal(t, DurationNotSpecified, raw.VisaDuration)
	assert.Equal(t, []string{CheckRequirements}, raw.EligibilityCriteria)
}

func intPtr(v int) *int {
	return &v
}
