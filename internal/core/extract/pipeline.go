package extract

import "github.com/akravets/invoice-qc/internal/core/domain"

// Pipeline composes field extraction and line-item parsing into a single
// pass over one document's flattened text.
type Pipeline struct{}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// ParseText builds a structured invoice from raw text. It never fails;
// attributes the heuristics cannot locate simply stay unset.
func (p *Pipeline) ParseText(text string) domain.Invoice {
	inv := ExtractFields(text)
	inv.LineItems = ExtractLineItems(text)
	return inv
}
