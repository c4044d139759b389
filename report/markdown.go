package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"saudicars/locale"
)

// WriteInsights writes the Markdown insights report: metrics, the active
// filter, price statistics, the most listed makes and the recommendations.
func WriteInsights(w io.Writer, ov Overview, s *locale.Strings) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.AppTitle)
	fmt.Fprintf(&b, "%s\n\n%s\n\n", s.Context, s.Goal)

	fmt.Fprintf(&b, "## %s\n\n", s.OverviewTitle)
	fmt.Fprintf(&b, "- **%s**: %d\n", s.MetricRaw, ov.Metrics.Raw)
	fmt.Fprintf(&b, "- **%s**: %d\n", s.MetricCleaned, ov.Metrics.Cleaned)
	fmt.Fprintf(&b, "- **%s**: %d\n", s.MetricRemoved, ov.Metrics.Removed)
	fmt.Fprintf(&b, "- **%s**: %d-%d\n\n", s.MetricYears, ov.YearMin, ov.YearMax)

	if len(ov.Describe) > 0 {
		fmt.Fprintf(&b, "### %s\n\n", s.DescribeTitle)
		b.WriteString("| | count | mean | std | min | 25% | 50% | 75% | max |\n")
		b.WriteString("|---|---|---|---|---|---|---|---|---|\n")
		for _, d := range ov.Describe {
			fmt.Fprintf(&b, "| %s | %d | %s | %s | %s | %s | %s | %s | %s |\n",
				d.Column, d.Count,
				formatNumber(d.Mean), formatNumber(d.Std), formatNumber(d.Min),
				formatNumber(d.Q25), formatNumber(d.Median), formatNumber(d.Q75), formatNumber(d.Max))
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n", s.EDATitle)
	fmt.Fprintf(&b, "%s\n\n", s.Caption(ov.Selection.YearMin, ov.Selection.YearMax, ov.Selection.MakeLabel(), ov.Filtered.Len()))
	if ov.Filtered.Empty() {
		fmt.Fprintf(&b, "> %s\n\n", s.NoData)
	} else if len(ov.TopMakes) > 0 {
		fmt.Fprintf(&b, "| %s | %s |\n|---|---|\n", s.LabelMake, s.LabelCount)
		for _, c := range ov.TopMakes {
			fmt.Fprintf(&b, "| %s | %d |\n", c.Value, c.N)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## %s\n\n%s\n\n", s.RecommendationsTitle, s.RecommendationsIntro)
	fmt.Fprintf(&b, "### %s\n\n", s.InsightsHead)
	writeNumbered(&b, s.Insights)
	fmt.Fprintf(&b, "### %s\n\n", s.FutureHead)
	writeNumbered(&b, s.FutureWork)

	fmt.Fprintf(&b, "---\n%s\n", s.Footer)

	_, err := io.WriteString(w, b.String())
	return err
}

// SaveInsights writes the Markdown report to path.
func SaveInsights(path string, ov Overview, s *locale.Strings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("report: create output dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: create %s: %w", path, err)
	}
	defer file.Close()

	if err := WriteInsights(file, ov, s); err != nil {
		return fmt.Errorf("report: write %s: %w", path, err)
	}
	return file.Close()
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
	b.WriteString("\n")
}

func formatNumber(num float64) string {
	switch {
	case math.IsNaN(num):
		return "-"
	case math.Abs(num) >= 1000000:
		return fmt.Sprintf("%.2fM", num/1000000)
	case math.Abs(num) >= 1000:
		return fmt.Sprintf("%.1fK", num/1000)
	case num == math.Trunc(num):
		return fmt.Sprintf("%.0f", num)
	}
	return fmt.Sprintf("%.2f", num)
}

