package validate

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

// Rule checks one independent aspect of an invoice. Validate returns a
// stable error-code string on failure and "" when the invoice passes or the
// rule does not apply. Rules only read; they never mutate the invoice.
type Rule interface {
	Name() string
	Validate(inv *domain.Invoice) string
}

// Amount comparisons tolerate a one-cent rounding difference.
const toleranceCents = int64(1)

func stringField(inv *domain.Invoice, field string) *string {
	switch field {
	case "invoice_number":
		return inv.InvoiceNumber
	case "invoice_date":
		return inv.InvoiceDate
	case "due_date":
		return inv.DueDate
	case "seller_name":
		return inv.SellerName
	case "buyer_name":
		return inv.BuyerName
	case "seller_tax_id":
		return inv.SellerTaxID
	case "buyer_tax_id":
		return inv.BuyerTaxID
	case "currency":
		return inv.Currency
	}
	return nil
}

func floatField(inv *domain.Invoice, field string) *float64 {
	switch field {
	case "net_total":
		return inv.NetTotal
	case "tax_amount":
		return inv.TaxAmount
	case "gross_total":
		return inv.GrossTotal
	case "tax_rate":
		return inv.TaxRate
	}
	return nil
}

type completenessRule struct{ field string }

func (r completenessRule) Name() string { return "completeness:" + r.field }

func (r completenessRule) Validate(inv *domain.Invoice) string {
	v := stringField(inv, r.field)
	if v == nil || strings.TrimSpace(*v) == "" {
		return "missing_field: " + r.field
	}
	return ""
}

type dateFormatRule struct{ field string }

func (r dateFormatRule) Name() string { return "date_format:" + r.field }

func (r dateFormatRule) Validate(inv *domain.Invoice) string {
	v := stringField(inv, r.field)
	if v == nil || *v == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", *v)
	if err != nil {
		return "invalid_date_format: " + r.field
	}
	year := time.Now().Year()
	if t.Year() < year-50 || t.Year() > year+10 {
		return "date_out_of_range: " + r.field
	}
	return ""
}

var allowedCurrencies = map[string]struct{}{
	"EUR": {}, "USD": {}, "GBP": {}, "INR": {},
	"CHF": {}, "JPY": {}, "AUD": {}, "CAD": {},
}

type currencyRule struct{}

func (currencyRule) Name() string { return "currency_valid" }

func (currencyRule) Validate(inv *domain.Invoice) string {
	if inv.Currency == nil || *inv.Currency == "" {
		return ""
	}
	if _, ok := allowedCurrencies[strings.ToUpper(*inv.Currency)]; !ok {
		return "invalid_currency: " + *inv.Currency
	}
	return ""
}

type amountSignRule struct{ field string }

func (r amountSignRule) Name() string { return "amount_sign:" + r.field }

func (r amountSignRule) Validate(inv *domain.Invoice) string {
	v := floatField(inv, r.field)
	if v != nil && *v < 0 {
		return "negative_amount: " + r.field
	}
	return ""
}

type totalsConsistencyRule struct{}

func (totalsConsistencyRule) Name() string { return "totals_consistency" }

func (totalsConsistencyRule) Validate(inv *domain.Invoice) string {
	if inv.NetTotal == nil || inv.TaxAmount == nil || inv.GrossTotal == nil {
		return ""
	}
	expected := round2(*inv.NetTotal + *inv.TaxAmount)
	actual := round2(*inv.GrossTotal)
	// Compare in integer cents. Float subtraction drifts right at the
	// tolerance boundary, where a 0.01 delta must still pass.
	if diff := cents(expected) - cents(actual); diff > toleranceCents || diff < -toleranceCents {
		return fmt.Sprintf("business_rule_failed: totals_mismatch (expected %v, got %v)", expected, actual)
	}
	return ""
}

type dueDateRule struct{}

func (dueDateRule) Name() string { return "due_date_valid" }

func (dueDateRule) Validate(inv *domain.Invoice) string {
	if inv.InvoiceDate == nil || inv.DueDate == nil {
		return ""
	}
	invoiceDate, err := time.Parse("2006-01-02", *inv.InvoiceDate)
	if err != nil {
		// Unparseable dates are the date-format rule's finding; skipping
		// here avoids double-reporting.
		return ""
	}
	dueDate, err := time.Parse("2006-01-02", *inv.DueDate)
	if err != nil {
		return ""
	}
	if dueDate.Before(invoiceDate) {
		return "business_rule_failed: due_date_before_invoice_date"
	}
	return ""
}

type lineItemsConsistencyRule struct{}

func (lineItemsConsistencyRule) Name() string { return "line_items_consistency" }

func (lineItemsConsistencyRule) Validate(inv *domain.Invoice) string {
	if len(inv.LineItems) == 0 || inv.NetTotal == nil {
		return ""
	}
	sum := 0.0
	for _, item := range inv.LineItems {
		if item.LineTotal != nil {
			sum += *item.LineTotal
		}
	}
	if sum > 0 {
		if diff := cents(sum) - cents(*inv.NetTotal); diff > toleranceCents || diff < -toleranceCents {
			return fmt.Sprintf("business_rule_failed: line_items_sum_mismatch (items sum %v, net total %v)", sum, *inv.NetTotal)
		}
	}
	return ""
}

var taxIDFormat = regexp.MustCompile(`^[A-Z]{2}\d{9,12}$`)

type taxIDFormatRule struct{ field string }

func (r taxIDFormatRule) Name() string { return "tax_id_format:" + r.field }

func (r taxIDFormatRule) Validate(inv *domain.Invoice) string {
	v := stringField(inv, r.field)
	if v == nil || *v == "" {
		return ""
	}
	if !taxIDFormat.MatchString(*v) {
		return "invalid_tax_id_format: " + r.field
	}
	return ""
}

type partiesDifferentRule struct{}

func (partiesDifferentRule) Name() string { return "parties_different" }

func (partiesDifferentRule) Validate(inv *domain.Invoice) string {
	if inv.SellerName == nil || inv.BuyerName == nil {
		return ""
	}
	// Blank-equal names still count as the same party; the completeness
	// rules report the missing values separately.
	seller := strings.TrimSpace(*inv.SellerName)
	buyer := strings.TrimSpace(*inv.BuyerName)
	if strings.EqualFold(seller, buyer) {
		return "business_rule_failed: seller_and_buyer_same"
	}
	return ""
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}
