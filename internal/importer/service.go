package importer

import (
	"fmt"
	"io"

	"github.com/boardinghub/boardinghub/internal/billing"
	"github.com/boardinghub/boardinghub/internal/importer/meters"
)

type Service struct {
	metersImporter Importer
}

func NewService() *Service {
	return &Service{
		metersImporter: meters.New(),
	}
}

func (s *Service) Import(format Format, r io.Reader) ([]billing.MeterReading, error) {
	var imp Importer

	switch format {
	case FormatMeters:
		imp = s.metersImporter
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}

	return imp.Parse(r)
}
