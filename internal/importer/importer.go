package importer

import (
	"io"

	"github.com/mwhitfield/spendlog/internal/expense"
)

// Format identifies a supported import file format.
type Format string

const (
	FormatCSV Format = "csv"
)

type Importer interface {
	Parse(r io.Reader) ([]expense.CreateParams, error)
}
