// Package xlsxform converts spreadsheet form templates into field documents.
package xlsxform

import (
	"runtime"

	"github.com/spf13/afero"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/output"
	"github.com/ukaji3/xlsxform-go/pkg/xlsxform/parser"
	"go.uber.org/zap"
)

// Options configures conversion behavior.
type Options struct {
	// Policy controls how template rows are classified.
	Policy parser.Policy
	// Sheet selects the template sheet. Empty means the first sheet.
	Sheet string
	// Format is the output encoding.
	Format output.Format
	// Pretty indents the output document.
	Pretty bool
	// Workers bounds concurrent conversions in a Runner.
	// If zero, defaults to the number of CPUs.
	Workers int
	// Fs is the filesystem inputs are read from and outputs written to.
	// If nil, the OS filesystem is used.
	Fs afero.Fs
	// Logger receives pipeline diagnostics. If nil, logging is disabled.
	Logger *zap.Logger
}

// DefaultOptions returns default conversion options.
func DefaultOptions() Options {
	return Options{
		Policy: parser.DefaultPolicy(),
		Format: output.FormatJSON,
		Pretty: true,
	}
}

func (o Options) policy() parser.Policy {
	if o.Policy.LabelColumn == "" && o.Policy.InputColumn == "" {
		return parser.DefaultPolicy()
	}
	return o.Policy
}

func (o Options) fs() afero.Fs {
	if o.Fs != nil {
		return o.Fs
	}
	return afero.NewOsFs()
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

func (o Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.NumCPU()
}
