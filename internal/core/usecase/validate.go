package usecase

import (
	"errors"

	"github.com/akravets/invoice-qc/internal/core/domain"
	"github.com/akravets/invoice-qc/internal/core/ports"
)

type ValidateInvoicesUseCase struct {
	engine ports.InvoiceValidator
}

func NewValidateInvoicesUseCase(engine ports.InvoiceValidator) *ValidateInvoicesUseCase {
	return &ValidateInvoicesUseCase{engine: engine}
}

// ValidateAll validates a batch in input order. An empty batch is an input
// error, distinguishable from a batch that merely contains invalid invoices.
func (uc *ValidateInvoicesUseCase) ValidateAll(invoices []domain.Invoice) (domain.ValidationSummary, error) {
	if len(invoices) == 0 {
		return domain.ValidationSummary{}, domain.WrapError(
			domain.ErrInvalidInput, "validate batch", errors.New("empty invoice list"))
	}
	for i := range invoices {
		invoices[i].NormalizeLineItems()
	}
	return uc.engine.ValidateBatch(invoices), nil
}

// ValidateOne validates a single invoice.
func (uc *ValidateInvoicesUseCase) ValidateOne(inv *domain.Invoice) domain.ValidationResult {
	inv.NormalizeLineItems()
	return uc.engine.ValidateOne(inv)
}
