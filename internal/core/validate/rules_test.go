package validate

import (
	"fmt"
	"testing"
	"time"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

func strp(s string) *string { return &s }
func fp(f float64) *float64 { return &f }

func validInvoice() domain.Invoice {
	return domain.Invoice{
		InvoiceNumber: strp("INV-1"),
		InvoiceDate:   strp("2024-01-02"),
		DueDate:       strp("2024-02-01"),
		SellerName:    strp("Acme GmbH"),
		BuyerName:     strp("Widget AG"),
		Currency:      strp("EUR"),
		NetTotal:      fp(100.0),
		TaxAmount:     fp(19.0),
		GrossTotal:    fp(119.0),
		LineItems:     []domain.LineItem{},
	}
}

func TestCompletenessRule(t *testing.T) {
	rule := completenessRule{field: "invoice_number"}

	inv := validInvoice()
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, want pass", code)
	}

	inv.InvoiceNumber = nil
	if code := rule.Validate(&inv); code != "missing_field: invoice_number" {
		t.Fatalf("Validate() = %q, want missing_field", code)
	}

	inv.InvoiceNumber = strp("   ")
	if code := rule.Validate(&inv); code != "missing_field: invoice_number" {
		t.Fatalf("Validate() = %q, want missing_field for blank value", code)
	}
}

func TestDateFormatRule(t *testing.T) {
	rule := dateFormatRule{field: "invoice_date"}

	inv := validInvoice()
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, want pass", code)
	}

	inv.InvoiceDate = strp("15.03.2024")
	if code := rule.Validate(&inv); code != "invalid_date_format: invoice_date" {
		t.Fatalf("Validate() = %q, want invalid_date_format", code)
	}

	inv.InvoiceDate = nil
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, missing date is the completeness rule's finding", code)
	}

	ancient := fmt.Sprintf("%d-01-01", time.Now().Year()-60)
	inv.InvoiceDate = &ancient
	if code := rule.Validate(&inv); code != "date_out_of_range: invoice_date" {
		t.Fatalf("Validate() = %q, want date_out_of_range", code)
	}

	future := fmt.Sprintf("%d-01-01", time.Now().Year()+20)
	inv.InvoiceDate = &future
	if code := rule.Validate(&inv); code != "date_out_of_range: invoice_date" {
		t.Fatalf("Validate() = %q, want date_out_of_range for far future", code)
	}
}

func TestCurrencyRule(t *testing.T) {
	rule := currencyRule{}

	inv := validInvoice()
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, want pass", code)
	}

	inv.Currency = strp("XYZ")
	if code := rule.Validate(&inv); code != "invalid_currency: XYZ" {
		t.Fatalf("Validate() = %q, want invalid_currency", code)
	}

	inv.Currency = strp("usd")
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, lowercase known code should pass", code)
	}

	inv.Currency = nil
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, absent currency is not this rule's finding", code)
	}
}

func TestAmountSignRule(t *testing.T) {
	rule := amountSignRule{field: "net_total"}

	inv := validInvoice()
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, want pass", code)
	}

	inv.NetTotal = fp(-10.0)
	if code := rule.Validate(&inv); code != "negative_amount: net_total" {
		t.Fatalf("Validate() = %q, want negative_amount", code)
	}

	inv.NetTotal = fp(0.0)
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, zero is not negative", code)
	}
}

func TestTotalsConsistencyRule(t *testing.T) {
	rule := totalsConsistencyRule{}

	inv := validInvoice()
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, want pass", code)
	}

	// Exactly at the tolerance boundary still passes.
	inv.GrossTotal = fp(119.01)
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, 0.01 delta is within tolerance", code)
	}

	inv.GrossTotal = fp(119.02)
	want := "business_rule_failed: totals_mismatch (expected 119, got 119.02)"
	if code := rule.Validate(&inv); code != want {
		t.Fatalf("Validate() = %q, want %q", code, want)
	}

	inv.TaxAmount = nil
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, rule needs all three amounts", code)
	}
}

func TestDueDateRule(t *testing.T) {
	rule := dueDateRule{}

	inv := validInvoice()
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, want pass", code)
	}

	inv.DueDate = strp("2024-01-02")
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, equal dates are allowed", code)
	}

	inv.DueDate = strp("2024-01-01")
	if code := rule.Validate(&inv); code != "business_rule_failed: due_date_before_invoice_date" {
		t.Fatalf("Validate() = %q, want due_date_before_invoice_date", code)
	}

	inv.DueDate = strp("garbage")
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, unparseable due date is skipped here", code)
	}
}

func TestLineItemsConsistencyRule(t *testing.T) {
	rule := lineItemsConsistencyRule{}

	inv := validInvoice()
	inv.LineItems = []domain.LineItem{
		{Description: strp("A"), Quantity: fp(2), UnitPrice: fp(30), LineTotal: fp(60)},
		{Description: strp("B"), Quantity: fp(1), UnitPrice: fp(40), LineTotal: fp(40)},
	}
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, items sum to net total", code)
	}

	// Exactly at the tolerance boundary still passes, even where float
	// subtraction would drift past it.
	inv.LineItems[1].LineTotal = fp(40.01)
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, 0.01 delta is within tolerance", code)
	}

	inv.LineItems[1].LineTotal = fp(45)
	want := "business_rule_failed: line_items_sum_mismatch (items sum 105, net total 100)"
	if code := rule.Validate(&inv); code != want {
		t.Fatalf("Validate() = %q, want %q", code, want)
	}

	inv.LineItems = nil
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, no items means no finding", code)
	}
}

func TestTaxIDFormatRule(t *testing.T) {
	rule := taxIDFormatRule{field: "seller_tax_id"}

	inv := validInvoice()
	inv.SellerTaxID = strp("DE123456789")
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, want pass", code)
	}

	inv.SellerTaxID = strp("D123456789")
	if code := rule.Validate(&inv); code != "invalid_tax_id_format: seller_tax_id" {
		t.Fatalf("Validate() = %q, want invalid_tax_id_format", code)
	}

	inv.SellerTaxID = nil
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, absent tax id passes", code)
	}
}

func TestPartiesDifferentRule(t *testing.T) {
	rule := partiesDifferentRule{}

	inv := validInvoice()
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, want pass", code)
	}

	inv.BuyerName = strp("  acme gmbh ")
	if code := rule.Validate(&inv); code != "business_rule_failed: seller_and_buyer_same" {
		t.Fatalf("Validate() = %q, comparison ignores case and padding", code)
	}

	inv.SellerName = strp("   ")
	inv.BuyerName = strp(" ")
	if code := rule.Validate(&inv); code != "business_rule_failed: seller_and_buyer_same" {
		t.Fatalf("Validate() = %q, blank-equal names are the same party", code)
	}

	inv.BuyerName = nil
	if code := rule.Validate(&inv); code != "" {
		t.Fatalf("Validate() = %q, absent party passes", code)
	}
}
