package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/akravets/invoice-qc/internal/core/domain"
)

// ReportRepository stores the QC outcome of processed documents: the
// extracted invoice payload and its validation result, keyed by document.
type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083002)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS qc_outcomes (
	document_id TEXT PRIMARY KEY REFERENCES documents(id),
	invoice_id TEXT NOT NULL,
	is_valid BOOLEAN NOT NULL,
	errors JSONB NOT NULL DEFAULT '[]'::jsonb,
	invoice JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_qc_outcomes_is_valid ON qc_outcomes(is_valid);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ReportRepository) SaveOutcome(ctx context.Context, documentID string, inv *domain.Invoice, result domain.ValidationResult) error {
	invoiceJSON, err := json.Marshal(inv)
	if err != nil {
		return fmt.Errorf("marshal invoice: %w", err)
	}
	errorsJSON, err := json.Marshal(result.Errors)
	if err != nil {
		return fmt.Errorf("marshal errors: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
INSERT INTO qc_outcomes (document_id, invoice_id, is_valid, errors, invoice, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (document_id) DO UPDATE
SET invoice_id = EXCLUDED.invoice_id,
	is_valid = EXCLUDED.is_valid,
	errors = EXCLUDED.errors,
	invoice = EXCLUDED.invoice,
	created_at = EXCLUDED.created_at
`,
		documentID, result.InvoiceID, result.IsValid, errorsJSON, invoiceJSON, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert qc outcome: %w", err)
	}
	return nil
}

func (r *ReportRepository) GetOutcome(ctx context.Context, documentID string) (*domain.Invoice, *domain.ValidationResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT invoice_id, is_valid, errors, invoice
FROM qc_outcomes
WHERE document_id = $1
`, documentID)

	var result domain.ValidationResult
	var errorsRaw, invoiceRaw []byte

	err := row.Scan(&result.InvoiceID, &result.IsValid, &errorsRaw, &invoiceRaw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, domain.WrapError(domain.ErrDocumentNotFound, "get qc outcome", err)
		}
		return nil, nil, fmt.Errorf("scan qc outcome: %w", err)
	}

	if err := json.Unmarshal(errorsRaw, &result.Errors); err != nil {
		return nil, nil, fmt.Errorf("unmarshal errors: %w", err)
	}
	var inv domain.Invoice
	if err := json.Unmarshal(invoiceRaw, &inv); err != nil {
		return nil, nil, fmt.Errorf("unmarshal invoice: %w", err)
	}
	inv.NormalizeLineItems()
	if result.Errors == nil {
		result.Errors = []string{}
	}
	return &inv, &result, nil
}
