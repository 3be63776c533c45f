package domain

// LineItem is one billed unit inside an invoice. Every field is optional:
// a nil pointer means the extractor (or the upstream JSON) did not provide it.
type LineItem struct {
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unit_price"`
	LineTotal   *float64 `json:"line_total"`
}

// Invoice is the structured content of one document. It is the wire contract
// for both the CLI report and the HTTP API, so field names are stable.
// No invariant between the money fields is enforced here; the validation
// rules check consistency after the fact.
type Invoice struct {
	InvoiceNumber     *string `json:"invoice_number"`
	ExternalReference *string `json:"external_reference"`

	InvoiceDate *string `json:"invoice_date"`
	DueDate     *string `json:"due_date"`

	SellerName    *string `json:"seller_name"`
	SellerAddress *string `json:"seller_address"`
	SellerTaxID   *string `json:"seller_tax_id"`

	BuyerName    *string `json:"buyer_name"`
	BuyerAddress *string `json:"buyer_address"`
	BuyerTaxID   *string `json:"buyer_tax_id"`

	Currency   *string  `json:"currency"`
	NetTotal   *float64 `json:"net_total"`
	TaxAmount  *float64 `json:"tax_amount"`
	GrossTotal *float64 `json:"gross_total"`
	TaxRate    *float64 `json:"tax_rate"`

	LineItems []LineItem `json:"line_items"`
}

// UnknownInvoiceID is the reporting identity of an invoice without a number.
const UnknownInvoiceID = "UNKNOWN"

// ReportID returns the invoice identity used in validation reports. It is not
// a uniqueness constraint; duplicate identities are allowed within a batch.
func (inv *Invoice) ReportID() string {
	if inv.InvoiceNumber != nil && *inv.InvoiceNumber != "" {
		return *inv.InvoiceNumber
	}
	return UnknownInvoiceID
}

// NormalizeLineItems guarantees line_items serializes as [] rather than null.
func (inv *Invoice) NormalizeLineItems() {
	if inv.LineItems == nil {
		inv.LineItems = []LineItem{}
	}
}
