package output

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/sources"
	"github.com/btrdirectory/surveyor/pkg/verify"
)

var titleCaser = cases.Title(language.BritishEnglish)

// fieldLabel renders a snake_case field name as a readable label.
func fieldLabel(field string) string {
	return titleCaser.String(strings.ReplaceAll(field, "_", " "))
}

// DiscoveryStats carries run counters for the discovery summary.
type DiscoveryStats struct {
	Mode        string
	Queries     int
	URLsFound   int
	URLsCrawled int
	URLsFailed  int
	RawMentions int
}

// DiscoverySummary writes the human-readable discovery run report.
func (r *Report) DiscoverySummary(devs []developments.Development, stats DiscoveryStats) (string, error) {
	var newDevs, existingDevs []developments.Development
	for _, dev := range devs {
		if dev.IsNew {
			newDevs = append(newDevs, dev)
		} else {
			existingDevs = append(existingDevs, dev)
		}
	}

	tiers := map[developments.Confidence]int{}
	for _, dev := range newDevs {
		tiers[dev.Confidence]++
	}

	var sb strings.Builder
	rule := strings.Repeat("=", 60)
	sb.WriteString(rule + "\n")
	sb.WriteString("BTR Discovery Report\n")
	sb.WriteString("Date: " + r.date + "\n")
	sb.WriteString("Mode: " + stats.Mode + "\n")
	sb.WriteString(rule + "\n\n")

	sb.WriteString("SEARCH:\n")
	fmt.Fprintf(&sb, "  Queries executed:       %d\n", stats.Queries)
	fmt.Fprintf(&sb, "  Total URLs found:       %d\n", stats.URLsFound)
	fmt.Fprintf(&sb, "  Successfully crawled:   %d\n", stats.URLsCrawled)
	fmt.Fprintf(&sb, "  Failed:                 %d\n\n", stats.URLsFailed)

	sb.WriteString("EXTRACTION:\n")
	fmt.Fprintf(&sb, "  Total mentions found:   %d\n", stats.RawMentions)
	fmt.Fprintf(&sb, "  After deduplication:    %d\n\n", len(devs))

	sb.WriteString("DATABASE CHECK:\n")
	fmt.Fprintf(&sb, "  NEW (not in database):  %d\n", len(newDevs))
	fmt.Fprintf(&sb, "  EXISTING (already in):  %d\n\n", len(existingDevs))

	sb.WriteString("CONFIDENCE (new developments only):\n")
	fmt.Fprintf(&sb, "  HIGH:   %d\n", tiers[developments.ConfidenceHigh])
	fmt.Fprintf(&sb, "  MEDIUM: %d\n", tiers[developments.ConfidenceMedium])
	fmt.Fprintf(&sb, "  LOW:    %d\n\n", tiers[developments.ConfidenceLow])

	if len(newDevs) > 0 {
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString("TOP NEW DISCOVERIES:\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		writeDiscoveryTable(&sb, newDevs, 30)
		sb.WriteString("\n")
	}

	if len(existingDevs) > 0 {
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		sb.WriteString("EXISTING (already in database):\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		limit := len(existingDevs)
		if limit > 20 {
			limit = 20
		}
		for _, dev := range existingDevs[:limit] {
			area := dev.Area
			if area == "" {
				area = "unknown area"
			}
			note := ""
			if len(dev.Notes) > 0 {
				note = " -- " + dev.Notes[0]
			}
			fmt.Fprintf(&sb, "  - %s (%s)%s\n", dev.Name, area, note)
		}
		if len(existingDevs) > 20 {
			fmt.Fprintf(&sb, "  ... and %d more\n", len(existingDevs)-20)
		}
		sb.WriteString("\n")
	}

	return r.write("discovery_summary_"+r.date+".txt", []byte(sb.String()))
}

func writeDiscoveryTable(sb *strings.Builder, devs []developments.Development, limit int) {
	if len(devs) > limit {
		devs = devs[:limit]
	}

	table := tablewriter.NewTable(sb)
	table.Header("Confidence", "Name", "Area", "Operator", "Units", "Status")
	for _, dev := range devs {
		units := ""
		if dev.NumberOfUnits != nil {
			units = strconv.Itoa(*dev.NumberOfUnits)
		}
		_ = table.Append(dev.Confidence.String(), dev.Name, dev.Area, dev.OperatorName, units, dev.Status.String())
	}
	_ = table.Render()
}

// VerificationSummary writes the human-readable verification run
// report.
func (r *Report) VerificationSummary(results []verify.Verification, mode string) (string, error) {
	rule := strings.Repeat("=", 60)

	if len(results) == 0 {
		content := fmt.Sprintf("BTR Directory Verification Report\nDate: %s\nMode: %s\n\nNo listings checked.\n", r.date, mode)
		return r.write("verification_summary_"+r.date+".txt", []byte(content))
	}

	counts := categorize(results)
	deadLinks := 0
	rebrands := 0
	for _, v := range results {
		deadLinks += len(v.DeadLinks)
		if v.Rebranded {
			rebrands++
		}
	}

	var sb strings.Builder
	sb.WriteString(rule + "\n")
	sb.WriteString("BTR Directory Verification Report\n")
	sb.WriteString("Date: " + r.date + "\n")
	fmt.Fprintf(&sb, "Listings checked: %d\n", len(results))
	sb.WriteString("Mode: " + mode + "\n")
	sb.WriteString(rule + "\n\n")

	sb.WriteString("RESULTS:\n")
	fmt.Fprintf(&sb, "  Fully verified (all fields match):   %d\n", counts.verified)
	fmt.Fprintf(&sb, "  Discrepancies found:                 %d\n", counts.discrepancies)
	fmt.Fprintf(&sb, "  Status changes detected:             %d\n", counts.statusChanges)
	fmt.Fprintf(&sb, "  Gaps filled with suggestions:        %d\n", counts.gapsFilled)
	fmt.Fprintf(&sb, "  Could not verify (insufficient data): %d\n\n", counts.unverified)

	fmt.Fprintf(&sb, "Dead links found: %d\n", deadLinks)
	fmt.Fprintf(&sb, "Possible rebrandings: %d\n\n", rebrands)

	writeTopIssues(&sb, results)
	writeMissingFields(&sb, results)
	writeGapFillSources(&sb, results)
	writeConfidenceBreakdown(&sb, results)
	writeListingDetails(&sb, results)

	return r.write("verification_summary_"+r.date+".txt", []byte(sb.String()))
}

type categoryCounts struct {
	verified      int
	discrepancies int
	statusChanges int
	gapsFilled    int
	unverified    int
}

// categorize buckets each listing by its most severe field outcome:
// discrepancy beats status change beats gap fill.
func categorize(results []verify.Verification) categoryCounts {
	var counts categoryCounts
	for _, v := range results {
		var hasMatch, hasDiscrepancy, hasStatusChange, hasGapFill bool
		for _, comp := range v.Comparisons {
			switch comp.Status {
			case verify.Match:
				hasMatch = true
			case verify.Discrepancy:
				hasDiscrepancy = true
			case verify.StatusChange:
				hasStatusChange = true
			case verify.GapFilled:
				hasGapFill = true
			}
		}
		switch {
		case hasDiscrepancy:
			counts.discrepancies++
		case hasStatusChange:
			counts.statusChanges++
		case hasGapFill:
			counts.gapsFilled++
		case hasMatch:
			counts.verified++
		default:
			counts.unverified++
		}
	}
	return counts
}

func writeTopIssues(sb *strings.Builder, results []verify.Verification) {
	var issues []string
	for _, v := range results {
		for _, comp := range v.Comparisons {
			if comp.Status == verify.Discrepancy || comp.Status == verify.StatusChange {
				issues = append(issues, fmt.Sprintf("%q - %s: %s", v.Name, comp.Field, comp.Notes))
			}
		}
		if len(v.DeadLinks) > 0 {
			issues = append(issues, fmt.Sprintf("%q - dead link(s): %s", v.Name, strings.Join(v.DeadLinks, ", ")))
		}
		if v.Rebranded {
			issues = append(issues, fmt.Sprintf("%q - %s", v.Name, v.RebrandNotes))
		}
	}
	if len(issues) == 0 {
		return
	}

	sb.WriteString("TOP ISSUES:\n")
	limit := len(issues)
	if limit > 15 {
		limit = 15
	}
	for i, issue := range issues[:limit] {
		fmt.Fprintf(sb, "  %d. %s\n", i+1, issue)
	}
	sb.WriteString("\n")
}

func writeMissingFields(sb *strings.Builder, results []verify.Verification) {
	missing := make(map[string]int)
	for _, v := range results {
		for _, comp := range v.Comparisons {
			if comp.Stored == "" {
				missing[comp.Field]++
			}
		}
	}
	if len(missing) == 0 {
		return
	}

	type fieldCount struct {
		field string
		count int
	}
	sorted := make([]fieldCount, 0, len(missing))
	for field, count := range missing {
		sorted = append(sorted, fieldCount{field, count})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].field < sorted[j].field
	})

	sb.WriteString("FIELDS MOST COMMONLY MISSING:\n")
	for _, fc := range sorted {
		pct := fc.count * 100 / len(results)
		fmt.Fprintf(sb, "  - %s: %d listings (%d%%)\n", fieldLabel(fc.field), fc.count, pct)
	}
	sb.WriteString("\n")
}

func writeGapFillSources(sb *strings.Builder, results []verify.Verification) {
	geocodeFills := 0
	llmFills := 0
	for _, v := range results {
		for _, comp := range v.Comparisons {
			if comp.Status != verify.GapFilled {
				continue
			}
			if comp.SourceURL == sources.Geocoder {
				geocodeFills++
			} else {
				llmFills++
			}
		}
	}
	if geocodeFills == 0 && llmFills == 0 {
		return
	}

	sb.WriteString("GAP FILL SUGGESTIONS:\n")
	if geocodeFills > 0 {
		fmt.Fprintf(sb, "  - %d field(s) filled via postcodes.io (coordinates, region)\n", geocodeFills)
	}
	if llmFills > 0 {
		fmt.Fprintf(sb, "  - %d field(s) suggested from web content analysis\n", llmFills)
	}
	sb.WriteString("\n")
}

func writeConfidenceBreakdown(sb *strings.Builder, results []verify.Verification) {
	tiers := map[developments.Confidence]int{}
	for _, v := range results {
		tiers[v.Overall]++
	}
	sb.WriteString("CONFIDENCE BREAKDOWN:\n")
	fmt.Fprintf(sb, "  HIGH:   %d\n", tiers[developments.ConfidenceHigh])
	fmt.Fprintf(sb, "  MEDIUM: %d\n", tiers[developments.ConfidenceMedium])
	fmt.Fprintf(sb, "  LOW:    %d\n\n", tiers[developments.ConfidenceLow])
}

func writeListingDetails(sb *strings.Builder, results []verify.Verification) {
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString("LISTING DETAILS:\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	for _, v := range results {
		fmt.Fprintf(sb, "\n  %s (%s)\n", v.Name, v.Area)
		operator := v.OperatorName
		if operator == "" {
			operator = "N/A"
		}
		fmt.Fprintf(sb, "  Operator: %s\n", operator)
		fmt.Fprintf(sb, "  Confidence: %s\n", v.Overall)
		fmt.Fprintf(sb, "  Sources checked: %d\n", v.SourcesChecked)
		if v.Notes != "" {
			fmt.Fprintf(sb, "  Notes: %s\n", v.Notes)
		}
		for _, comp := range v.Comparisons {
			if comp.Status == verify.Match || comp.Status == verify.NotFound {
				continue
			}
			stored := comp.Stored
			if stored == "" {
				stored = "NULL"
			}
			found := comp.Found
			if found == "" {
				found = "NULL"
			}
			fmt.Fprintf(sb, "    [%s] %s: stored='%s' found='%s' (confidence: %s)\n",
				comp.Status, comp.Field, stored, found, comp.Confidence)
		}
	}
	sb.WriteString("\n")
}
