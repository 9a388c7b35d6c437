// Package importer turns bank statement files into transaction params.
package importer

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

type Format string

const (
	FormatCSV Format = "csv"
	FormatOFX Format = "ofx"
)

type Importer interface {
	Parse(r io.Reader) ([]transaction.CreateParams, error)
}

// FormatOf guesses the statement format from a file name. QFX files are OFX.
func FormatOf(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".ofx", ".qfx":
		return FormatOFX
	}

	return FormatCSV
}
