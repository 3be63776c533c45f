package httpadapter

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/akravets/invoice-qc/internal/core/domain"
	"github.com/akravets/invoice-qc/internal/core/ports"
	"github.com/akravets/invoice-qc/internal/core/usecase"
	"github.com/akravets/invoice-qc/internal/observability/metrics"
)

const serviceName = "api"

type Router struct {
	ingestUC   *usecase.IngestDocumentUseCase
	extractUC  *usecase.ExtractInvoicesUseCase
	validateUC *usecase.ValidateInvoicesUseCase
	repo       ports.DocumentRepository
	reports    ports.ReportRepository
	exporter   ports.ReportExporter
	metrics    *metrics.HTTPServerMetrics
}

func NewRouter(
	ingestUC *usecase.IngestDocumentUseCase,
	extractUC *usecase.ExtractInvoicesUseCase,
	validateUC *usecase.ValidateInvoicesUseCase,
	repo ports.DocumentRepository,
	reports ports.ReportRepository,
	exporter ports.ReportExporter,
	serverMetrics *metrics.HTTPServerMetrics,
) *Router {
	return &Router{
		ingestUC:   ingestUC,
		extractUC:  extractUC,
		validateUC: validateUC,
		repo:       repo,
		reports:    reports,
		exporter:   exporter,
		metrics:    serverMetrics,
	}
}

func (rt *Router) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", rt.healthz)
	mux.HandleFunc("/v1/documents", rt.uploadDocument)
	mux.HandleFunc("/v1/documents/", rt.getDocumentByID)
	mux.HandleFunc("/v1/invoices/validate", rt.validateInvoices)
	mux.HandleFunc("/v1/qc/run", rt.runQC)
	if rt.metrics != nil {
		mux.Handle("/metrics", rt.metrics.Handler())
		return requestIDMiddleware(rt.metrics.Middleware(serviceName, accessLogMiddleware(mux)))
	}
	return requestIDMiddleware(accessLogMiddleware(mux))
}

func (rt *Router) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// uploadDocument accepts one source document and queues it for async QC.
func (rt *Router) uploadDocument(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'file' is required"})
		return
	}
	defer file.Close()

	doc, err := rt.ingestUC.Upload(
		r.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		file,
	)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusAccepted, doc)
}

// getDocumentByID returns lifecycle state plus, once the worker has run,
// the extracted invoice and its validation result.
func (rt *Router) getDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/documents/")
	if id == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "document id is required"})
		return
	}

	doc, err := rt.repo.GetByID(r.Context(), id)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	if doc.Status == domain.StatusValidated {
		inv, result, err := rt.reports.GetOutcome(r.Context(), doc.ID)
		if err == nil {
			doc.Invoice = inv
			doc.Validation = result
		} else if !domain.IsKind(err, domain.ErrDocumentNotFound) {
			writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
			return
		}
	}

	writeJSON(w, http.StatusOK, doc)
}

// validateInvoices runs the rule engine over a JSON batch of invoices.
func (rt *Router) validateInvoices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	var invoices []domain.Invoice
	if err := json.NewDecoder(r.Body).Decode(&invoices); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	summary, err := rt.validateUC.ValidateAll(invoices)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}

	rt.recordSummary(r.URL.Path, summary)
	writeJSON(w, http.StatusOK, summary)
}

// runQC extracts invoices from the uploaded multipart files and validates
// them in one synchronous round trip. Files are processed in name order.
// With format=xlsx the summary is returned as a workbook download.
func (rt *Router) runQC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart body"})
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart field 'files' is required"})
		return
	}

	headers := r.MultipartForm.File["files"]
	sort.Slice(headers, func(i, j int) bool { return headers[i].Filename < headers[j].Filename })

	docs := make([]usecase.NamedDocument, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read multipart file: " + err.Error()})
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "read multipart file: " + err.Error()})
			return
		}
		docs = append(docs, usecase.NamedDocument{Name: header.Filename, Data: data})
	}

	extractStart := time.Now()
	invoices := rt.extractUC.ExtractAll(r.Context(), docs)
	if rt.metrics != nil {
		rt.metrics.RecordExtraction(serviceName, len(invoices), len(docs)-len(invoices), time.Since(extractStart))
	}
	if len(invoices) == 0 {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": "no invoice could be extracted from the uploaded files"})
		return
	}

	summary, err := rt.validateUC.ValidateAll(invoices)
	if err != nil {
		writeJSON(w, mapErrorToHTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	rt.recordSummary(r.URL.Path, summary)

	if r.URL.Query().Get("format") == "xlsx" && rt.exporter != nil {
		// Workbook downloads carry the summary only.
		data, err := rt.exporter.Export(summary)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		if rt.metrics != nil {
			rt.metrics.RecordReportExported(serviceName, "xlsx")
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="qc_report.xlsx"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	writeJSON(w, http.StatusOK, qcRunResponse{
		Invoices:   invoices,
		Validation: summary,
	})
}

// qcRunResponse pairs the extracted invoices with their validation summary.
type qcRunResponse struct {
	Invoices   []domain.Invoice         `json:"invoices"`
	Validation domain.ValidationSummary `json:"validation"`
}

func (rt *Router) recordSummary(endpoint string, summary domain.ValidationSummary) {
	if rt.metrics == nil {
		return
	}
	rt.metrics.RecordValidationBatch(serviceName, endpoint, summary.TotalInvoices)
	rt.metrics.RecordRuleErrors(serviceName, summary.ErrorCounts)
	for _, result := range summary.Results {
		rt.metrics.RecordInvoiceValidated(serviceName, result.IsValid)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
