package bootstrap

import (
	"context"
	"fmt"

	"github.com/akravets/invoice-qc/internal/config"
	"github.com/akravets/invoice-qc/internal/core/extract"
	"github.com/akravets/invoice-qc/internal/core/ports"
	"github.com/akravets/invoice-qc/internal/core/usecase"
	"github.com/akravets/invoice-qc/internal/core/validate"
	"github.com/akravets/invoice-qc/internal/infrastructure/queue/nats"
	"github.com/akravets/invoice-qc/internal/infrastructure/repository/postgres"
	"github.com/akravets/invoice-qc/internal/infrastructure/resilience"
	"github.com/akravets/invoice-qc/internal/infrastructure/storage/localfs"
	"github.com/akravets/invoice-qc/internal/infrastructure/textsource"
)

type App struct {
	Config config.Config

	Queue   ports.MessageQueue
	Repo    ports.DocumentRepository
	Reports ports.ReportRepository

	IngestUC   *usecase.IngestDocumentUseCase
	ExtractUC  *usecase.ExtractInvoicesUseCase
	ValidateUC *usecase.ValidateInvoicesUseCase
	ProcessUC  ports.DocumentProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	reports := postgres.NewReportRepository(db)
	if err := reports.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure report schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	engine, err := buildEngine(cfg.RulesPath)
	if err != nil {
		return nil, err
	}

	source := textsource.New()
	parser := extract.NewPipeline()

	ingestUC := usecase.NewIngestDocumentUseCase(repo, storage, queue)
	extractUC := usecase.NewExtractInvoicesUseCase(source, parser, cfg.ExtractWorkers)
	validateUC := usecase.NewValidateInvoicesUseCase(engine)
	processUC := usecase.NewProcessDocumentUseCase(repo, storage, source, parser, engine, reports)

	return &App{
		Config:  cfg,
		Queue:   queue,
		Repo:    repo,
		Reports: reports,

		IngestUC:   ingestUC,
		ExtractUC:  extractUC,
		ValidateUC: validateUC,
		ProcessUC:  processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

// buildEngine loads the configured rule set, falling back to the defaults
// when no rules file is configured or the file names no rules.
func buildEngine(rulesPath string) (*validate.Engine, error) {
	names, err := config.LoadRules(rulesPath)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}
	if len(names) == 0 {
		return validate.NewDefaultEngine(), nil
	}
	engine, err := validate.NewEngine(names)
	if err != nil {
		return nil, fmt.Errorf("build rule engine: %w", err)
	}
	return engine, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
