package importer

import (
	"fmt"
	"io"

	"github.com/darcyvale/vitrine/internal/importer/ledger"
)

type Service struct {
	ledgerParser Parser
}

func NewService() *Service {
	return &Service{
		ledgerParser: ledger.NewParser(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]Row, error) {
	switch format {
	case FormatLedger:
		return s.ledgerParser.Parse(r)
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}
