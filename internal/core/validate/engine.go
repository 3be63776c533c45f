package validate

import (
	"fmt"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

// Engine evaluates an explicit, ordered rule list against invoices. The rule
// set is fixed at construction; catalog order determines the order of error
// codes in every result.
type Engine struct {
	rules []Rule
}

// catalog maps rule identifiers to constructors. Identifiers are the values
// accepted in the rules config file.
var catalog = map[string]func() Rule{
	"completeness:invoice_number": func() Rule { return completenessRule{field: "invoice_number"} },
	"completeness:invoice_date":   func() Rule { return completenessRule{field: "invoice_date"} },
	"completeness:seller_name":    func() Rule { return completenessRule{field: "seller_name"} },
	"completeness:buyer_name":     func() Rule { return completenessRule{field: "buyer_name"} },
	"date_format:invoice_date":    func() Rule { return dateFormatRule{field: "invoice_date"} },
	"date_format:due_date":        func() Rule { return dateFormatRule{field: "due_date"} },
	"currency_valid":              func() Rule { return currencyRule{} },
	"amount_sign:net_total":       func() Rule { return amountSignRule{field: "net_total"} },
	"amount_sign:tax_amount":      func() Rule { return amountSignRule{field: "tax_amount"} },
	"amount_sign:gross_total":     func() Rule { return amountSignRule{field: "gross_total"} },
	"totals_consistency":          func() Rule { return totalsConsistencyRule{} },
	"due_date_valid":              func() Rule { return dueDateRule{} },
	"line_items_consistency":      func() Rule { return lineItemsConsistencyRule{} },
	"tax_id_format:seller_tax_id": func() Rule { return taxIDFormatRule{field: "seller_tax_id"} },
	"tax_id_format:buyer_tax_id":  func() Rule { return taxIDFormatRule{field: "buyer_tax_id"} },
	"parties_different":           func() Rule { return partiesDifferentRule{} },
}

// DefaultRuleNames is the default active set in evaluation order. The
// tax_id_format rules are available in the catalog but disabled by default;
// enable them through the rules config file.
func DefaultRuleNames() []string {
	return []string{
		"completeness:invoice_number",
		"completeness:invoice_date",
		"completeness:seller_name",
		"completeness:buyer_name",
		"date_format:invoice_date",
		"date_format:due_date",
		"currency_valid",
		"amount_sign:net_total",
		"amount_sign:tax_amount",
		"amount_sign:gross_total",
		"totals_consistency",
		"due_date_valid",
		"line_items_consistency",
		"parties_different",
	}
}

// NewEngine builds an engine from an ordered list of rule identifiers.
func NewEngine(names []string) (*Engine, error) {
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		build, ok := catalog[name]
		if !ok {
			return nil, fmt.Errorf("unknown validation rule %q", name)
		}
		rules = append(rules, build())
	}
	return &Engine{rules: rules}, nil
}

// NewDefaultEngine builds the engine with the default rule set.
func NewDefaultEngine() *Engine {
	engine, err := NewEngine(DefaultRuleNames())
	if err != nil {
		panic(err)
	}
	return engine
}

// Rules returns the active rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, 0, len(e.rules))
	for _, r := range e.rules {
		names = append(names, r.Name())
	}
	return names
}

// ValidateOne runs every active rule against one invoice and collects the
// non-empty error codes in evaluation order.
func (e *Engine) ValidateOne(inv *domain.Invoice) domain.ValidationResult {
	errors := []string{}
	for _, rule := range e.rules {
		if code := rule.Validate(inv); code != "" {
			errors = append(errors, code)
		}
	}
	return domain.ValidationResult{
		InvoiceID: inv.ReportID(),
		IsValid:   len(errors) == 0,
		Errors:    errors,
	}
}

// ValidateBatch validates every invoice in input order and tallies the
// results. Results preserves input order; ErrorCounts is keyed by the full
// error-code string, so mismatch codes with different interpolated values
// count as distinct keys.
func (e *Engine) ValidateBatch(invoices []domain.Invoice) domain.ValidationSummary {
	summary := domain.ValidationSummary{
		TotalInvoices: len(invoices),
		ErrorCounts:   map[string]int{},
		Results:       make([]domain.ValidationResult, 0, len(invoices)),
	}

	for i := range invoices {
		result := e.ValidateOne(&invoices[i])
		summary.Results = append(summary.Results, result)

		if result.IsValid {
			summary.ValidInvoices++
		} else {
			summary.InvalidInvoices++
		}
		for _, code := range result.Errors {
			summary.ErrorCounts[code]++
		}
	}

	return summary
}
