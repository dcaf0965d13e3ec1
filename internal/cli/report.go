package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rhinobuilders/callsift/internal/model"
)

// RenderBatchReport renders a classification run's statistics for the terminal.
func RenderBatchReport(stats *model.BatchStats) string {
	if stats == nil || stats.Total == 0 {
		return SubtleStyle.Render("No classified calls to report.")
	}

	var b strings.Builder

	b.WriteString(FormatTitle("Classification Report"))
	b.WriteString("\n")
	if stats.RunID != "" {
		b.WriteString(SubtitleStyle.Render("run " + stats.RunID))
		b.WriteString("\n")
	}

	summary := []string{
		fmt.Sprintf("Total calls:            %d", stats.Total),
		fmt.Sprintf("Customer leads:         %d", stats.ByCategory[model.CategoryCustomer]),
		fmt.Sprintf("Missed customer leads:  %d", stats.MissedCustomerLeads),
		fmt.Sprintf("Spam rate:              %.1f%%", stats.SpamRate()*100),
	}
	b.WriteString(RenderBox("Summary", strings.Join(summary, "\n")))
	b.WriteString("\n\n")

	b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-16s %6s %12s", "Category", "Calls", "Avg Conf")))
	b.WriteString("\n")
	for _, category := range model.Categories {
		count := stats.ByCategory[category]
		if count == 0 {
			continue
		}
		row := fmt.Sprintf("%-16s %6d %12.2f", category, count, stats.AvgConfidence(category))
		b.WriteString(TableCellStyle.Render(row))
		b.WriteString("\n")
	}

	if len(stats.IncompleteReasons) > 0 {
		b.WriteString("\n")
		b.WriteString(BoldStyle.Render("Incomplete calls"))
		b.WriteString("\n")
		reasons := sortedKeys(stats.IncompleteReasons)
		for _, reason := range reasons {
			b.WriteString(fmt.Sprintf("  %-24s %d\n", reason, stats.IncompleteReasons[reason]))
		}
	}

	if len(stats.BySource) > 0 {
		b.WriteString("\n")
		b.WriteString(TableHeaderStyle.Render(fmt.Sprintf("%-16s %6s %10s %11s", "Source", "Calls", "Customers", "Conversion")))
		b.WriteString("\n")
		sources := make([]string, 0, len(stats.BySource))
		for source := range stats.BySource {
			sources = append(sources, source)
		}
		sort.Strings(sources)
		for _, source := range sources {
			src := stats.BySource[source]
			row := fmt.Sprintf("%-16s %6d %10d %10.1f%%", source, src.Total, src.Customers, src.ConversionRate()*100)
			b.WriteString(TableCellStyle.Render(row))
			b.WriteString("\n")
		}
	}

	missed := stats.MissedCustomerLeads
	if missed > 0 {
		b.WriteString("\n")
		b.WriteString(FormatWarning(fmt.Sprintf("%d customer lead(s) went unanswered - follow up!", missed)))
		b.WriteString("\n")
	}

	return b.String()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
