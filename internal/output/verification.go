package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/btrdirectory/surveyor/pkg/developments"
	"github.com/btrdirectory/surveyor/pkg/errors"
	"github.com/btrdirectory/surveyor/pkg/verify"
)

// VerificationCSV writes one row per verified listing, with a
// stored/found/status column triple for every checked field.
func (r *Report) VerificationCSV(results []verify.Verification) (string, error) {
	fields := verify.VerifyFields()

	columns := []string{"id", "name", "area"}
	for _, field := range fields {
		columns = append(columns, field+"_stored", field+"_found", field+"_status")
	}
	columns = append(columns, "overall_confidence", "sources_checked", "notes")

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return "", errors.WrapIO("write", "verification csv", err)
	}

	for _, v := range results {
		row := []string{v.ListingID, v.Name, v.Area}

		comparisons := bestComparisons(v.Comparisons)
		for _, field := range fields {
			if comp, ok := comparisons[field]; ok {
				row = append(row, comp.Stored, comp.Found, comp.Status.String())
			} else {
				row = append(row, "", "", verify.NotFound.String())
			}
		}

		row = append(row, v.Overall.String(), strconv.Itoa(v.SourcesChecked), v.Notes)
		if err := w.Write(row); err != nil {
			return "", errors.WrapIO("write", "verification csv", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", errors.WrapIO("write", "verification csv", err)
	}

	return r.write("verification_report_"+r.date+".csv", buf.Bytes())
}

// bestComparisons indexes comparisons by field. When a field has both a
// comparator result and an enrichment suggestion, the one carrying a
// found value wins.
func bestComparisons(comparisons []verify.FieldComparison) map[string]verify.FieldComparison {
	indexed := make(map[string]verify.FieldComparison)
	for _, comp := range comparisons {
		existing, ok := indexed[comp.Field]
		if !ok || (comp.Found != "" && existing.Found == "") {
			indexed[comp.Field] = comp
		}
	}
	return indexed
}

// VerificationUpdates generates UPDATE statements for HIGH and MEDIUM
// confidence discrepancies, gap fills, and status changes. Operator and
// asset owner changes go in a separate section because they need an FK
// lookup.
func (r *Report) VerificationUpdates(results []verify.Verification) (string, error) {
	var sb strings.Builder
	sb.WriteString("-- ============================================================================\n")
	sb.WriteString("-- BTR Directory Verification Updates\n")
	sb.WriteString("-- Generated: " + r.date + "\n")
	sb.WriteString("-- REVIEW STATUS: PENDING MANUAL CHECK\n")
	sb.WriteString("-- REVIEW EVERY LINE BEFORE EXECUTING\n")
	sb.WriteString("-- These are SUGGESTIONS from automated verification, not validated changes\n")
	sb.WriteString("-- ============================================================================\n\n")

	updateCount := 0
	for _, v := range results {
		updates := updatableComparisons(v.Comparisons, false)
		if len(updates) == 0 {
			continue
		}
		updateCount++

		fmt.Fprintf(&sb, "-- Development: %s (%s)\n", v.Name, v.Area)
		fmt.Fprintf(&sb, "-- ID: %s\n", v.ListingID)
		for _, comp := range updates {
			stored := comp.Stored
			if stored == "" {
				stored = "NULL"
			}
			fmt.Fprintf(&sb, "-- [%s] %s: %s -> %s (source: %s)\n",
				comp.Confidence, comp.Field, stored, comp.Found, comp.SourceURL)
		}

		var setClauses []string
		for _, comp := range updates {
			setClauses = append(setClauses, fmt.Sprintf("%s = %s", comp.Field, sqlValue(comp.Field, comp.Found)))
		}
		setClauses = append(setClauses, "updated_at = NOW()")

		sb.WriteString("UPDATE developments SET\n")
		fmt.Fprintf(&sb, "    %s\n", strings.Join(setClauses, ",\n    "))
		fmt.Fprintf(&sb, "WHERE id = %s;\n\n", sqlString(v.ListingID))
	}

	fkCount := r.writeFKUpdates(&sb, results)

	sb.WriteString("-- ============================================================================\n")
	fmt.Fprintf(&sb, "-- Total UPDATE statements: %d\n", updateCount+fkCount)
	sb.WriteString("-- ============================================================================\n")

	return r.write("suggested_updates_"+r.date+".sql", []byte(sb.String()))
}

func (r *Report) writeFKUpdates(sb *strings.Builder, results []verify.Verification) int {
	type fkUpdate struct {
		v    verify.Verification
		comp verify.FieldComparison
	}
	var updates []fkUpdate
	for _, v := range results {
		for _, comp := range updatableComparisons(v.Comparisons, true) {
			updates = append(updates, fkUpdate{v, comp})
		}
	}
	if len(updates) == 0 {
		return 0
	}

	sb.WriteString("-- ============================================================================\n")
	sb.WriteString("-- FK Updates (operator/asset_owner): require name lookup\n")
	sb.WriteString("-- ============================================================================\n\n")

	for _, u := range updates {
		table, fkColumn := "operators", "operator_id"
		if u.comp.Field == verify.FieldAssetOwner {
			table, fkColumn = "asset_owners", "asset_owner_id"
		}

		stored := u.comp.Stored
		if stored == "" {
			stored = "NULL"
		}
		fmt.Fprintf(sb, "-- Development: %s (%s)\n", u.v.Name, u.v.Area)
		fmt.Fprintf(sb, "-- [%s] %s: %s -> %s\n", u.comp.Confidence, u.comp.Field, stored, u.comp.Found)
		fmt.Fprintf(sb, "UPDATE developments SET %s = (SELECT id FROM %s WHERE name = %s LIMIT 1), updated_at = NOW() WHERE id = %s;\n\n",
			fkColumn, table, sqlString(u.comp.Found), sqlString(u.v.ListingID))
	}

	return len(updates)
}

// updatableComparisons filters to actionable suggestions: HIGH or
// MEDIUM confidence with a found value, partitioned into scalar-column
// updates and FK updates.
func updatableComparisons(comparisons []verify.FieldComparison, fk bool) []verify.FieldComparison {
	var out []verify.FieldComparison
	for _, comp := range comparisons {
		isFK := comp.Field == verify.FieldOperator || comp.Field == verify.FieldAssetOwner
		if isFK != fk {
			continue
		}
		switch comp.Status {
		case verify.Discrepancy, verify.GapFilled, verify.StatusChange:
		default:
			continue
		}
		if fk && comp.Status == verify.StatusChange {
			continue
		}
		if comp.Confidence == developments.ConfidenceLow || comp.Found == "" {
			continue
		}
		out = append(out, comp)
	}
	return out
}
