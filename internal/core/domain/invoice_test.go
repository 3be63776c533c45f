package domain

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestInvoiceJSONRoundTrip(t *testing.T) {
	raw := `{
		"invoice_number": "INV-1",
		"invoice_date": "2024-01-02",
		"currency": "EUR",
		"net_total": 100.5,
		"line_items": [
			{"description": "Widget", "quantity": 2, "unit_price": 50.25, "line_total": 100.5}
		]
	}`

	var inv Invoice
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if inv.InvoiceNumber == nil || *inv.InvoiceNumber != "INV-1" {
		t.Fatalf("invoice_number = %v", inv.InvoiceNumber)
	}
	if inv.DueDate != nil {
		t.Fatalf("due_date = %v, absent field must stay nil", *inv.DueDate)
	}
	if len(inv.LineItems) != 1 || *inv.LineItems[0].Quantity != 2.0 {
		t.Fatalf("line_items = %+v", inv.LineItems)
	}

	out, err := json.Marshal(&inv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"due_date":null`) {
		t.Fatalf("absent fields must serialize as null: %s", out)
	}
}

func TestNormalizeLineItemsSerializesEmptyArray(t *testing.T) {
	var inv Invoice
	inv.NormalizeLineItems()

	out, err := json.Marshal(&inv)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"line_items":[]`) {
		t.Fatalf("line_items must serialize as []: %s", out)
	}
}

func TestReportID(t *testing.T) {
	number := "INV-42"
	inv := Invoice{InvoiceNumber: &number}
	if inv.ReportID() != "INV-42" {
		t.Fatalf("ReportID() = %q", inv.ReportID())
	}

	empty := ""
	inv.InvoiceNumber = &empty
	if inv.ReportID() != UnknownInvoiceID {
		t.Fatalf("ReportID() = %q, want %q", inv.ReportID(), UnknownInvoiceID)
	}

	inv.InvoiceNumber = nil
	if inv.ReportID() != UnknownInvoiceID {
		t.Fatalf("ReportID() = %q, want %q", inv.ReportID(), UnknownInvoiceID)
	}
}
