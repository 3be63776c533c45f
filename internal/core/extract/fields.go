package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

// Every field owns an ordered pattern list and the first match wins. The
// lists deliberately overlap (net and gross share the "total" keyword, the
// date fallback is shared between both date fields); precedence is encoded
// purely by list order and must not be reshuffled.

var invoiceNumberPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)invoice\s*(?:no|number|#|num)?[\s:]*([A-Z0-9\-/]+)`),
	regexp.MustCompile(`(?i)invoice[^a-z0-9]*([A-Z0-9\-/]+)`),
	regexp.MustCompile(`(?i)inv[\s:]?\s*([A-Z0-9\-/]+)`),
}

const dateToken = `(\d{1,2}[./-]\d{1,2}[./-]\d{4}|\d{4}[./-]\d{1,2}[./-]\d{1,2})`

var (
	invoiceDatePatterns = keywordDatePatterns("invoice date", "date:", "issued")
	dueDatePatterns     = keywordDatePatterns("due date", "payment due", "due by")

	// Shared unkeyed fallback: the first date-shaped token anywhere in the
	// text. With several unkeyed dates present it may attribute one date's
	// text to the wrong field; known limitation of the flat-text heuristic.
	bareDatePattern = regexp.MustCompile(dateToken)
)

func keywordDatePatterns(keywords ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		patterns = append(patterns, regexp.MustCompile(`(?i)`+kw+`[\s:]*`+dateToken))
	}
	return patterns
}

var sellerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:from|seller|invoice from)[\s:]*([A-Za-z\s&.]+?)(?:\n|address|tax)`),
	regexp.MustCompile(`(?im)(?:^|\n)([A-Za-z][A-Za-z\s&.]{5,40}?)(?:\n|address|tax|phone)`),
}

var buyerNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:to|buyer|bill to|invoice to)[\s:]*([A-Za-z\s&.]+?)(?:\n|address|tax)`),
}

var (
	sellerTaxIDPatterns = keywordTaxIDPatterns("seller", "from", "bill from")
	buyerTaxIDPatterns  = keywordTaxIDPatterns("buyer", "to", "bill to")

	genericVATPattern = regexp.MustCompile(`(?i)(?:vat id|tax id|reg\.?\s*no)[\s:]*([A-Z]{2}\d{9,12})`)
)

func keywordTaxIDPatterns(keywords ...string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(keywords))
	for _, kw := range keywords {
		patterns = append(patterns, regexp.MustCompile(
			`(?i)`+kw+`[\s\S]*?(?:tax id|vat|vat id|tax number|reg no)[\s:]*([A-Z]{2}\d{9,12}|\d{9,12})`))
	}
	return patterns
}

// Table order is the tie-break when several currencies co-occur in one
// document. Matching is a presence test, not position-based, and is
// case-sensitive.
var currencyTable = []struct {
	code    string
	pattern *regexp.Regexp
}{
	{"EUR", regexp.MustCompile(`EUR|€`)},
	{"USD", regexp.MustCompile(`USD|\$`)},
	{"GBP", regexp.MustCompile(`GBP|£`)},
	{"INR", regexp.MustCompile(`INR|₹`)},
	{"CHF", regexp.MustCompile(`CHF`)},
	{"JPY", regexp.MustCompile(`JPY|¥`)},
}

var netTotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:subtotal|net|amount|total|net\s*total)[\s:]*[€$£₹]?\s*([0-9,.]+)`),
	regexp.MustCompile(`(?i)(?:^|\n)([0-9,.]+)\s*(?:€|$|£|₹|EUR|USD)`),
}

var taxAmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:tax|vat|tva)[\s:]*[€$£₹]?\s*([0-9,.]+)`),
}

var grossTotalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:total|amount due|grand total|gross)[\s:]*[€$£₹]?\s*([0-9,.]+)`),
}

var taxRatePattern = regexp.MustCompile(`(?i)(?:tax rate|vat rate|rate)[\s:]*([0-9,.]+)\s*%`)

// ExtractFields populates every invoice attribute it can locate in the
// flattened text. It never fails: fields without a usable match stay unset.
func ExtractFields(text string) domain.Invoice {
	inv := domain.Invoice{LineItems: []domain.LineItem{}}

	inv.InvoiceNumber = findToken(text, invoiceNumberPatterns)
	inv.InvoiceDate = findDate(text, invoiceDatePatterns)
	inv.DueDate = findDate(text, dueDatePatterns)
	inv.SellerName = findName(text, sellerNamePatterns)
	inv.BuyerName = findName(text, buyerNamePatterns)
	inv.SellerTaxID = findTaxID(text, sellerTaxIDPatterns)
	inv.BuyerTaxID = findTaxID(text, buyerTaxIDPatterns)
	inv.Currency = findCurrency(text)
	inv.NetTotal = findAmount(text, netTotalPatterns)
	inv.TaxAmount = findAmount(text, taxAmountPatterns)
	inv.GrossTotal = findAmount(text, grossTotalPatterns)
	inv.TaxRate = findTaxRate(text)

	return inv
}

func findToken(text string, patterns []*regexp.Regexp) *string {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(text); m != nil {
			token := strings.TrimSpace(m[1])
			return &token
		}
	}
	return nil
}

func findDate(text string, keyed []*regexp.Regexp) *string {
	for _, re := range keyed {
		if m := re.FindStringSubmatch(text); m != nil {
			date := NormalizeDate(m[1])
			return &date
		}
	}
	if m := bareDatePattern.FindStringSubmatch(text); m != nil {
		date := NormalizeDate(m[1])
		return &date
	}
	return nil
}

func findName(text string, patterns []*regexp.Regexp) *string {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if len(name) > 3 && len(name) < 100 {
			return &name
		}
	}
	return nil
}

func findTaxID(text string, keyed []*regexp.Regexp) *string {
	for _, re := range keyed {
		if m := re.FindStringSubmatch(text); m != nil {
			id := strings.TrimSpace(m[1])
			return &id
		}
	}
	if m := genericVATPattern.FindStringSubmatch(text); m != nil {
		id := m[1]
		return &id
	}
	return nil
}

func findCurrency(text string) *string {
	for _, entry := range currencyTable {
		if entry.pattern.MatchString(text) {
			code := entry.code
			return &code
		}
	}
	return nil
}

func findAmount(text string, patterns []*regexp.Regexp) *float64 {
	for _, re := range patterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value, err := ParseAmount(m[1])
		if err != nil {
			// Numeric junk degrades to "not found", never to a failed
			// extraction; the next pattern may still hit.
			continue
		}
		return &value
	}
	return nil
}

func findTaxRate(text string) *float64 {
	m := taxRatePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return nil
	}
	return &value
}
