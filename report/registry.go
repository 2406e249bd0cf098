// Package report renders scored batches. Tier colors live here and nowhere
// else.
package report

import (
	"fmt"
	"io"
	"sort"

	"solvency-engine/domain"
)

type Options struct {
	Color bool
}

type WriterFunc func(w io.Writer, batch domain.BatchResult, opts Options) error

// Registry of output formats (format -> writer); populated in init blocks.
var writers = map[string]WriterFunc{}

// Register adds or replaces the writer for format.
func Register(format string, fn WriterFunc) { writers[format] = fn }

// Write renders batch in the given format.
func Write(format string, w io.Writer, batch domain.BatchResult, opts Options) error {
	fn, ok := writers[format]
	if !ok {
		return fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	return fn(w, batch, opts)
}

// Formats lists the registered format names.
func Formats() []string {
	names := make([]string, 0, len(writers))
	for name := range writers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
