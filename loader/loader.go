// Package loader builds CompanyRecord values from input files.
//
// Both formats hold a top-level "companies" list whose entries carry a
// "company" label next to the six financial fields:
//
//	companies:
//	  - company: TCS (Benchmark)
//	    total_assets: 175219
//	    total_liabilities: 68804
//	    retained_earnings: 106053
//	    ebit: 64716
//	    market_cap: 1500000
//	    sales: 260802
package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"solvency-engine/domain"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

type entry struct {
	Company                string `json:"company" yaml:"company"`
	domain.FinancialRecord `yaml:",inline"`
}

type document struct {
	Companies []entry `json:"companies" yaml:"companies"`
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported input file %q: want .json, .yaml or .yml", path)
}

// LoadFile reads and decodes the companies in path.
func LoadFile(path string) ([]domain.CompanyRecord, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	companies, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return companies, nil
}

// Decode reads a companies document. Unknown fields are rejected so that a
// misspelt column is not silently scored as zero.
func Decode(r io.Reader, format Format) ([]domain.CompanyRecord, error) {
	var doc document

	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read yaml: %w", err)
		}
		if err := yaml.UnmarshalStrict(data, &doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}

	if len(doc.Companies) == 0 {
		return nil, fmt.Errorf("no companies in input")
	}

	out := make([]domain.CompanyRecord, len(doc.Companies))
	for i, e := range doc.Companies {
		name := strings.TrimSpace(e.Company)
		if name == "" {
			name = fmt.Sprintf("company-%d", i+1)
		}
		out[i] = domain.CompanyRecord{Company: name, Record: e.FinancialRecord}
	}
	return out, nil
}

// EncodeYAML writes companies in the format Decode reads.
func EncodeYAML(w io.Writer, companies []domain.CompanyRecord) error {
	doc := document{Companies: make([]entry, len(companies))}
	for i, c := range companies {
		doc.Companies[i] = entry{Company: c.Company, FinancialRecord: c.Record}
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = io.Copy(w, bytes.NewReader(data))
	return err
}
