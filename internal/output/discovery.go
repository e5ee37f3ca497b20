package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/errors"
)

var discoveryColumns = []string{
	"db_status", "confidence", "confidence_score",
	"name", "slug", "development_type",
	"operator", "asset_owner",
	"area", "region", "postcode",
	"number_of_units", "status", "completion_date",
	"description", "website_url",
	"source_urls", "notes",
}

// descriptionCSVLimit keeps description cells readable in spreadsheets.
const descriptionCSVLimit = 200

// DiscoveryCSV writes one row per discovered development.
func (r *Report) DiscoveryCSV(devs []developments.Development) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(discoveryColumns); err != nil {
		return "", errors.WrapIO("write", "discovery csv", err)
	}

	for _, dev := range devs {
		dbStatus := "EXISTING"
		if dev.IsNew {
			dbStatus = "NEW"
		}
		units := ""
		if dev.NumberOfUnits != nil {
			units = strconv.Itoa(*dev.NumberOfUnits)
		}
		description := dev.Description
		if len(description) > descriptionCSVLimit {
			description = description[:descriptionCSVLimit]
		}

		row := []string{
			dbStatus,
			dev.Confidence.String(),
			fmt.Sprintf("%.2f", dev.ConfidenceScore),
			dev.Name,
			dev.Slug,
			dev.Type.String(),
			dev.OperatorName,
			dev.AssetOwnerName,
			dev.Area,
			dev.Region.String(),
			dev.Postcode,
			units,
			dev.Status.String(),
			dev.CompletionDate,
			description,
			dev.WebsiteURL,
			strings.Join(dev.SourceURLs, " | "),
			strings.Join(dev.Notes, " | "),
		}
		if err := w.Write(row); err != nil {
			return "", errors.WrapIO("write", "discovery csv", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.WrapIO("write", "discovery csv", err)
	}

	return r.write("discovery_"+r.date+".csv", buf.Bytes())
}

// descriptionSQLLimit caps description length in generated INSERTs.
const descriptionSQLLimit = 500

// DiscoveryInserts generates INSERT statements for new MEDIUM+
// confidence developments. Every statement is guarded with WHERE NOT
// EXISTS on the slug so the file is safe to run more than once.
func (r *Report) DiscoveryInserts(devs []developments.Development) (string, error) {
	var eligible []developments.Development
	for _, dev := range devs {
		if dev.IsNew && dev.Confidence != developments.ConfidenceLow {
			eligible = append(eligible, dev)
		}
	}

	var sb strings.Builder
	sb.WriteString("-- BTR Discovery Upload SQL\n")
	sb.WriteString("-- Generated: " + r.date + "\n")
	fmt.Fprintf(&sb, "-- Developments: %d (MEDIUM+ confidence, NEW only)\n", len(eligible))
	sb.WriteString("-- REVIEW CAREFULLY BEFORE EXECUTING\n")
	sb.WriteString("--\n")
	sb.WriteString("-- This file uses WHERE NOT EXISTS to prevent duplicate inserts.\n")
	sb.WriteString("-- It is safe to run multiple times.\n\n")

	if len(eligible) == 0 {
		sb.WriteString("-- No eligible developments found (need MEDIUM+ confidence + NEW status)\n")
		return r.write("discovery_upload_"+r.date+".sql", []byte(sb.String()))
	}

	operators := make(map[string]bool)
	owners := make(map[string]bool)
	for _, dev := range eligible {
		if dev.OperatorName != "" {
			operators[dev.OperatorName] = true
		}
		if dev.AssetOwnerName != "" {
			owners[dev.AssetOwnerName] = true
		}
	}

	writeOrgInserts(&sb, "operators", "Step 1: Insert operators (if they don't already exist)", operators)
	writeOrgInserts(&sb, "asset_owners", "Step 2: Insert asset owners (if they don't already exist)", owners)

	sb.WriteString("-- ============================================================\n")
	sb.WriteString("-- Step 3: Insert developments\n")
	sb.WriteString("-- ============================================================\n\n")

	for _, dev := range eligible {
		writeDevelopmentInsert(&sb, dev)
	}

	return r.write("discovery_upload_"+r.date+".sql", []byte(sb.String()))
}

func writeOrgInserts(sb *strings.Builder, table, heading string, names map[string]bool) {
	if len(names) == 0 {
		return
	}

	sorted := make([]string, 0, len(names))
	for name := range names {
		sorted = append(sorted, name)
	}
	sort.Strings(sorted)

	sb.WriteString("-- ============================================================\n")
	sb.WriteString("-- " + heading + "\n")
	sb.WriteString("-- ============================================================\n\n")
	for _, name := range sorted {
		slug := developments.Slug(name)
		fmt.Fprintf(sb, "INSERT INTO %s (name, slug)\n", table)
		fmt.Fprintf(sb, "SELECT %s, %s\n", sqlString(name), sqlString(slug))
		fmt.Fprintf(sb, "WHERE NOT EXISTS (SELECT 1 FROM %s WHERE slug = %s);\n\n", table, sqlString(slug))
	}
}

func writeDevelopmentInsert(sb *strings.Builder, dev developments.Development) {
	area := dev.Area
	if area == "" {
		area = "unknown area"
	}
	fmt.Fprintf(sb, "-- %s (%s)\n", dev.Name, area)
	fmt.Fprintf(sb, "-- Confidence: %s (%.2f)\n", dev.Confidence, dev.ConfidenceScore)

	sources := dev.SourceURLs
	if len(sources) > 3 {
		sources = sources[:3]
	}
	fmt.Fprintf(sb, "-- Sources: %s\n", strings.Join(sources, ", "))

	columns, values := developmentInsertColumns(dev)

	needsFK := dev.OperatorName != "" || dev.AssetOwnerName != ""
	if needsFK {
		sb.WriteString("DO $$\n")
		sb.WriteString("DECLARE\n")
		if dev.OperatorName != "" {
			sb.WriteString("  op_id UUID;\n")
		}
		if dev.AssetOwnerName != "" {
			sb.WriteString("  ao_id UUID;\n")
		}
		sb.WriteString("BEGIN\n")
		if dev.OperatorName != "" {
			fmt.Fprintf(sb, "  SELECT id INTO op_id FROM operators WHERE slug = %s;\n",
				sqlString(developments.Slug(dev.OperatorName)))
		}
		if dev.AssetOwnerName != "" {
			fmt.Fprintf(sb, "  SELECT id INTO ao_id FROM asset_owners WHERE slug = %s;\n",
				sqlString(developments.Slug(dev.AssetOwnerName)))
		}
		sb.WriteString("\n")
		sb.WriteString("  INSERT INTO developments (\n")
		fmt.Fprintf(sb, "    %s\n", strings.Join(columns, ", "))
		sb.WriteString("  ) SELECT\n")
		fmt.Fprintf(sb, "    %s\n", strings.Join(values, ", "))
		fmt.Fprintf(sb, "  WHERE NOT EXISTS (SELECT 1 FROM developments WHERE slug = %s);\n", sqlString(dev.Slug))
		sb.WriteString("END $$;\n\n")
		return
	}

	sb.WriteString("INSERT INTO developments (\n")
	fmt.Fprintf(sb, "  %s\n", strings.Join(columns, ", "))
	sb.WriteString(") SELECT\n")
	fmt.Fprintf(sb, "  %s\n", strings.Join(values, ", "))
	fmt.Fprintf(sb, "WHERE NOT EXISTS (SELECT 1 FROM developments WHERE slug = %s);\n\n", sqlString(dev.Slug))
}

// developmentInsertColumns builds the column and value lists for one
// development INSERT. FK columns reference the op_id/ao_id variables
// declared in the surrounding DO block.
func developmentInsertColumns(dev developments.Development) (columns, values []string) {
	columns = []string{"name", "slug", "development_type"}
	values = []string{sqlString(dev.Name), sqlString(dev.Slug), sqlString(dev.Type.String())}

	add := func(column, value string) {
		columns = append(columns, column)
		values = append(values, value)
	}

	if dev.OperatorName != "" {
		add("operator_id", "op_id")
	}
	if dev.AssetOwnerName != "" {
		add("asset_owner_id", "ao_id")
	}
	if dev.Area != "" {
		add("area", sqlString(dev.Area))
	}
	if dev.Region != "" {
		add("region", sqlString(dev.Region.String()))
	}
	if dev.Postcode != "" {
		add("postcode", sqlString(dev.Postcode))
	}
	if dev.Latitude != nil {
		add("latitude", strconv.FormatFloat(*dev.Latitude, 'f', -1, 64))
	}
	if dev.Longitude != nil {
		add("longitude", strconv.FormatFloat(*dev.Longitude, 'f', -1, 64))
	}
	if dev.NumberOfUnits != nil {
		add("number_of_units", strconv.Itoa(*dev.NumberOfUnits))
	}
	if dev.Status != "" {
		add("status", sqlString(dev.Status.String()))
	}
	if dev.CompletionDate != "" {
		add("completion_date", sqlString(dev.CompletionDate))
	}
	if dev.Description != "" {
		description := dev.Description
		if len(description) > descriptionSQLLimit {
			description = description[:descriptionSQLLimit]
		}
		add("description", sqlString(description))
	}
	if dev.WebsiteURL != "" {
		add("website_url", sqlString(dev.WebsiteURL))
	}

	return columns, values
}
