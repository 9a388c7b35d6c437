package importer

import (
	"fmt"
	"io"

	"github.com/MrJamesThe3rd/metadia/internal/importer/csvbank"
	"github.com/MrJamesThe3rd/metadia/internal/importer/ofx"
	"github.com/MrJamesThe3rd/metadia/internal/transaction"
)

type Service struct {
	importers map[Format]Importer
}

func NewService() *Service {
	return &Service{
		importers: map[Format]Importer{
			FormatCSV: csvbank.NewParser(),
			FormatOFX: ofx.NewParser(),
		},
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]transaction.CreateParams, error) {
	importer, ok := s.importers[format]
	if !ok {
		return nil, fmt.Errorf("unknown statement format: %s", format)
	}

	return importer.Parse(r)
}
