package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

// One combined line shape: description, quantity, optional separator, unit
// price, optional currency symbol, optional '=', total.
var lineItemPattern = regexp.MustCompile(
	`(?m)^(.+?)\s+(\d+(?:[,.]\d+)?)\s+(?:x|\*|@)?\s*([0-9,.]+)\s*[€$£₹]?\s*=?\s*([0-9,.]+)`)

// ExtractLineItems scans the text line by line for repeated
// quantity/price/total rows. A line that matches the shape but fails numeric
// parsing is dropped without retry or report.
func ExtractLineItems(text string) []domain.LineItem {
	items := []domain.LineItem{}

	for _, m := range lineItemPattern.FindAllStringSubmatch(text, -1) {
		quantity, err := strconv.ParseFloat(strings.ReplaceAll(m[2], ",", "."), 64)
		if err != nil {
			continue
		}
		unitPrice, err := ParseAmount(m[3])
		if err != nil {
			continue
		}
		lineTotal, err := ParseAmount(m[4])
		if err != nil {
			continue
		}

		description := strings.TrimSpace(m[1])
		items = append(items, domain.LineItem{
			Description: &description,
			Quantity:    &quantity,
			UnitPrice:   &unitPrice,
			LineTotal:   &lineTotal,
		})
	}

	return items
}
