// ABOUTME: Terminal dashboard rendering
// ABOUTME: Provides ASCII dashboard for CRM overview from a derived dashboard view
package viz

import (
	"fmt"
	"strings"

	"github.com/harperreed/crmview/pages"
)

func money(cents int64) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100.0)
}

func RenderDashboard(v pages.DashboardView) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  CRMVIEW DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE OVERVIEW\n")
	renderPipeline(&out, v.Pipeline)
	out.WriteString("\n")

	out.WriteString("STATS\n")
	out.WriteString(fmt.Sprintf("  💼 %d active deals  💰 %s pipeline  🏆 %s won\n\n",
		v.ActiveDeals, money(v.TotalValue), money(v.WonValue)))

	if v.OverdueTasks > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		out.WriteString(fmt.Sprintf("  ⚠️  %d overdue task(s)\n\n", v.OverdueTasks))
	}

	if len(v.Upcoming) > 0 {
		out.WriteString("UPCOMING TASKS\n")
		for _, row := range v.Upcoming {
			out.WriteString(fmt.Sprintf("  %-10s %s (%s)\n", row.Due.Text, row.Task.Title, row.Contact))
		}
		out.WriteString("\n")
	}

	if len(v.Recent) > 0 {
		out.WriteString("RECENT ACTIVITY\n")
		for _, row := range v.Recent {
			out.WriteString(fmt.Sprintf("  %s  %-8s %s (%s)\n",
				row.Activity.Date.Format("Jan 02"), row.Activity.Type, row.Activity.Description, row.Contact))
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline []pages.StageSummary) {
	// Find max count for scaling
	maxCount := 0
	for _, s := range pipeline {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, s := range pipeline {
		// Calculate bar length (0-10 blocks)
		barLength := (s.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)

		out.WriteString(fmt.Sprintf("  %-12s %s  %2d (%s)\n", s.Stage, bar, s.Count, money(s.Value)))
	}
}
