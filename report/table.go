package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"solvency-engine/domain"
)

const (
	tableWidth  = 75
	tableTitle  = "CORPORATE SOLVENCY & RISK MODEL"
	tableLegend = "Key: < 1.8 = High Probability of Default | > 3.0 = Safe Zone"
)

func init() {
	Register("table", writeTable)
}

func center(s string, width int) string {
	if len(s) >= width {
		return s
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeTable(w io.Writer, batch domain.BatchResult, opts Options) error {
	bw := bufio.NewWriter(w)
	heavy := strings.Repeat("=", tableWidth)
	light := strings.Repeat("-", tableWidth)

	fmt.Fprintf(bw, "\n%s\n%s\n%s\n", heavy, center(tableTitle, tableWidth), heavy)
	fmt.Fprintf(bw, "%-20s | %-10s | %-15s | %s\n", "Company", "Z-Score", "Status", "Key Driver (Reserves/Assets)")
	fmt.Fprintln(bw, light)

	for _, row := range batch.Companies {
		if row.Result == nil {
			fmt.Fprintf(bw, "%-20s | %-10s | %-15s | %s\n", row.Company, "-", "ERROR", row.Error)
			continue
		}
		r := row.Result
		status := StyleFor(r.Tier).Paint(fmt.Sprintf("%-15s", r.Tier.Label()), opts.Color)
		fmt.Fprintf(bw, "%-20s | %-10s | %s | %s\n",
			row.Company, formatNumber(r.ZScore), status, formatNumber(r.RetainedEarningsRatio))
		if row.Explanation != "" {
			fmt.Fprintf(bw, "    %s\n", row.Explanation)
		}
	}

	fmt.Fprintln(bw, light)
	fmt.Fprintln(bw, tableLegend)
	fmt.Fprintf(bw, "%s\n\n", heavy)
	return bw.Flush()
}
