package rowparse

import (
	"github.com/Linol-Hamelton/jtcsv-sub000/pkg/types"
)

// Parser is a compiled row producer for one structure descriptor. Parsers
// are immutable after creation and safe for concurrent use.
type Parser struct {
	desc types.StructureDescriptor
}

// New compiles a parser for the given descriptor.
func New(desc types.StructureDescriptor) *Parser {
	return &Parser{desc: desc}
}

// Descriptor returns the structure descriptor the parser was compiled for.
func (p *Parser) Descriptor() types.StructureDescriptor {
	return p.desc
}

// Parse materializes every row in text. Blank rows are dropped. An unclosed
// quoted field at end of input returns a *types.ParsingError.
func (p *Parser) Parse(text string) ([]types.Row, error) {
	var rows []types.Row
	err := p.ParseIncremental(text, func(row types.Row) error {
		rows = append(rows, row)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ParseIncremental calls emit once per completed row without materializing
// the whole result. A non-nil error from emit aborts the parse and is
// returned unchanged.
func (p *Parser) ParseIncremental(text string, emit func(types.Row) error) error {
	switch p.desc.RecommendedStrategy {
	case types.StrategySimple:
		return parseSimple(text, p.desc.Delimiter, emit)
	case types.StrategyQuoteAware:
		return parseQuoteAware(text, p.desc.Delimiter, emit)
	default:
		return parseStandard(text, p.desc.Delimiter, emit)
	}
}
