package importer

import (
	"fmt"
	"io"

	"github.com/anindyar/kasbon/internal/importer/catalog"
	"github.com/anindyar/kasbon/internal/ledger"
)

type Service struct {
	catalogImporter Importer
}

func NewService() *Service {
	return &Service{
		catalogImporter: catalog.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]ledger.ProductParams, error) {
	var importer Importer

	switch format {
	case FormatCatalog:
		importer = s.catalogImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return importer.Parse(r)
}
