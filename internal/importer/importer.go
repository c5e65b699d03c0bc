package importer

import (
	"io"

	"github.com/anindyar/kasbon/internal/ledger"
)

type Format string

const (
	FormatCatalog Format = "catalog"
)

type Importer interface {
	Parse(r io.Reader) ([]ledger.ProductParams, error)
}
