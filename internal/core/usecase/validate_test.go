package usecase

import (
	"encoding/json"
	"testing"

	"github.com/akravets/invoice-qc/internal/core/domain"
	"github.com/akravets/invoice-qc/internal/core/validate"
)

func TestValidateAllEmptyBatchIsInputError(t *testing.T) {
	uc := NewValidateInvoicesUseCase(validate.NewDefaultEngine())

	_, err := uc.ValidateAll(nil)
	if err == nil {
		t.Fatalf("expected error for empty batch")
	}
	if !domain.IsKind(err, domain.ErrInvalidInput) {
		t.Fatalf("error kind = %v, want ErrInvalidInput", err)
	}
}

func TestValidateAllNormalizesLineItems(t *testing.T) {
	uc := NewValidateInvoicesUseCase(validate.NewDefaultEngine())

	number := "INV-1"
	summary, err := uc.ValidateAll([]domain.Invoice{{InvoiceNumber: &number}})
	if err != nil {
		t.Fatalf("ValidateAll() error = %v", err)
	}
	if summary.TotalInvoices != 1 {
		t.Fatalf("TotalInvoices = %d, want 1", summary.TotalInvoices)
	}
	if summary.Results[0].InvoiceID != "INV-1" {
		t.Fatalf("InvoiceID = %q, want INV-1", summary.Results[0].InvoiceID)
	}
}

func TestValidateAllSelfBilledOverdueInvoice(t *testing.T) {
	uc := NewValidateInvoicesUseCase(validate.NewDefaultEngine())

	payload := `[{"invoice_number":"INV-1","invoice_date":"2024-01-10","due_date":"2024-01-05","seller_name":"Acme","buyer_name":"Acme"}]`
	var invoices []domain.Invoice
	if err := json.Unmarshal([]byte(payload), &invoices); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	summary, err := uc.ValidateAll(invoices)
	if err != nil {
		t.Fatalf("ValidateAll() error = %v", err)
	}
	if summary.InvalidInvoices != 1 {
		t.Fatalf("InvalidInvoices = %d, want 1", summary.InvalidInvoices)
	}

	want := []string{
		"business_rule_failed: due_date_before_invoice_date",
		"business_rule_failed: seller_and_buyer_same",
	}
	got := summary.Results[0].Errors
	if len(got) != len(want) {
		t.Fatalf("Errors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Errors[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	for _, code := range want {
		if summary.ErrorCounts[code] != 1 {
			t.Fatalf("ErrorCounts[%q] = %d, want 1", code, summary.ErrorCounts[code])
		}
	}
}

func TestValidateOneReportsMissingFields(t *testing.T) {
	uc := NewValidateInvoicesUseCase(validate.NewDefaultEngine())

	result := uc.ValidateOne(&domain.Invoice{})
	if result.IsValid {
		t.Fatalf("expected invalid result for empty invoice")
	}
	if result.InvoiceID != domain.UnknownInvoiceID {
		t.Fatalf("InvoiceID = %q, want %q", result.InvoiceID, domain.UnknownInvoiceID)
	}
}
