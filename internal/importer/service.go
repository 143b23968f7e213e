package importer

import (
	"fmt"
	"io"

	"github.com/mwhitfield/spendlog/internal/expense"
)

type Service struct {
	csvImporter Importer
}

func NewService() *Service {
	return &Service{
		csvImporter: NewCSVParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]expense.CreateParams, error) {
	var importer Importer

	switch format {
	case FormatCSV:
		importer = s.csvImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
