package report

import (
	"encoding/json"
	"fmt"
	"io"

	"solvency-engine/domain"
)

func init() {
	Register("json", writeJSON)
	Register("jsonl", writeJSONL)
	Register("tsv", writeTSV)
}

func writeJSON(w io.Writer, batch domain.BatchResult, _ Options) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(batch)
}

// writeJSONL emits one company per line.
func writeJSONL(w io.Writer, batch domain.BatchResult, _ Options) error {
	enc := json.NewEncoder(w)
	for _, row := range batch.Companies {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}

func writeTSV(w io.Writer, batch domain.BatchResult, _ Options) error {
	if _, err := fmt.Fprintln(w, "company\tz_score\ttier\tretained_earnings_ratio\terror"); err != nil {
		return err
	}
	for _, row := range batch.Companies {
		var err error
		if row.Result == nil {
			_, err = fmt.Fprintf(w, "%s\t\t\t\t%s\n", row.Company, row.Error)
		} else {
			_, err = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n",
				row.Company,
				formatNumber(row.Result.ZScore),
				row.Result.Tier,
				formatNumber(row.Result.RetainedEarningsRatio))
		}
		if err != nil {
			return err
		}
	}
	return nil
}
