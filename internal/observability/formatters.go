// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jonathan/visa-scraper/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(shorten(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// shorten cuts s to at most n runes, ending in "..." when cut.
func shorten(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes.
func pad(s string, n int) string {
	if count := utf8.RuneCountInString(s); count < n {
		return s + strings.Repeat(" ", n-count)
	}
	return s
}

// writeList writes up to limit bullet items and a "... and N more" line.
func writeList(sb *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(title + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintExtraction outputs the fields pulled out of one source page.
func (p *Printer) PrintExtraction(raw *types.RawExtraction) {
	if raw == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Source:   %s\n", raw.SourceURL))
	sb.WriteString(fmt.Sprintf("Method:   %s\n", raw.ExtractionMethod))
	sb.WriteString(fmt.Sprintf("Visa:     %s\n", raw.VisaName))
	if raw.MinMonthlyIncome != nil {
		sb.WriteString(fmt.Sprintf("Income:   %d / month\n", *raw.MinMonthlyIncome))
	} else {
		sb.WriteString("Income:   not found\n")
	}
	if raw.VisaDuration != "" {
		sb.WriteString(fmt.Sprintf("Duration: %s\n", raw.VisaDuration))
	}
	sb.WriteString("\n")
	writeList(&sb, "Eligibility", raw.EligibilityCriteria, 3)

	p.printBox("PAGE EXTRACTION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintVisaRecord outputs a human-readable summary of a merged country record.
func (p *Printer) PrintVisaRecord(record *types.VisaRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Country:   %s (%s)\n", record.CountryName, record.Slug.Current))
	sb.WriteString(fmt.Sprintf("Visa:      %s\n", record.VisaName))
	sb.WriteString(fmt.Sprintf("Income:    %d / month\n", record.MinMonthlyIncome))
	sb.WriteString(fmt.Sprintf("Duration:  %s\n", record.VisaDuration))
	residency := "no"
	if record.PathToResidency {
		residency = "yes"
	}
	sb.WriteString(fmt.Sprintf("Residency: %s\n", residency))
	sb.WriteString(fmt.Sprintf("Link:      %s\n", record.OfficialLink))
	sb.WriteString("\n")

	writeList(&sb, "Eligibility", record.FullEligibility, maxItemsToShow)
	if len(record.FullEligibility) > 0 {
		sb.WriteString("\n")
	}
	writeList(&sb, "Application", record.ApplicationProcess, 3)
	if len(record.ApplicationProcess) > 0 {
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Sources: %d", len(record.AllSources)))

	p.printBox("VISA RECORD", sb.String())
}

// RunSummary describes the outcome of a full run.
type RunSummary struct {
	Total     int
	Succeeded []string
	Failed    []string
	Outputs   []string
	Duration  time.Duration
}

// PrintRunSummary outputs which countries succeeded, which failed, and the files written.
func (p *Printer) PrintRunSummary(summary RunSummary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Scraped %d out of %d countries", len(summary.Succeeded), summary.Total))
	if summary.Duration > 0 {
		sb.WriteString(fmt.Sprintf(" in %s", summary.Duration.Round(time.Second)))
	}
	sb.WriteString("\n\n")

	for _, key := range summary.Succeeded {
		sb.WriteString(fmt.Sprintf("✅ %s\n", key))
	}
	for _, key := range summary.Failed {
		sb.WriteString(fmt.Sprintf("❌ %s\n", key))
	}
	if len(summary.Outputs) > 0 {
		sb.WriteString("\n")
		writeList(&sb, "Written", summary.Outputs, len(summary.Outputs))
	}

	p.printBox("RUN SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}
