package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/emiliopalmerini/researchlog/internal/adapters/logger"
	"github.com/emiliopalmerini/researchlog/internal/adapters/otel"
	"github.com/emiliopalmerini/researchlog/internal/adapters/textfile"
	"github.com/emiliopalmerini/researchlog/internal/adapters/turso"
	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/infrastructure/config"
	"github.com/emiliopalmerini/researchlog/internal/migrate"
	"github.com/emiliopalmerini/researchlog/internal/ports"
	"github.com/emiliopalmerini/researchlog/internal/research"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config   *config.Config
	Resolved *config.Resolved
	Logger   domain.Logger
	Metrics  ports.MetricsExporter
	Repo     ports.RecordRepository
	Service  *research.Service

	db      *turso.DB
	closers []io.Closer
}

// NewAppContext validates cfg and wires the repository selected by its backend.
func NewAppContext(ctx context.Context, cfg *config.Config, stderr io.Writer) (*AppContext, error) {
	resolved, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	a := &AppContext{Config: cfg, Resolved: resolved}

	log, err := logger.Open(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
		a.Logger = domain.NopLogger{}
	} else {
		a.Logger = log
		a.closers = append(a.closers, log)
	}

	otelCfg := otel.Config{
		Enabled:  cfg.OTEL.Enabled,
		Endpoint: cfg.OTEL.Endpoint,
		Insecure: cfg.OTEL.Insecure,
	}
	a.Metrics = otel.NewNoOpExporter()
	if otelCfg.Active() {
		exp, err := otel.NewExporter(ctx, otelCfg)
		if err != nil {
			a.Logger.Error(fmt.Sprintf("Metrics export disabled: %v", err))
		} else {
			a.Metrics = exp
		}
	}

	switch resolved.Backend {
	case config.BackendLibSQL:
		repo, err := a.DatabaseRepository(ctx)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.Repo = repo
	default:
		a.Repo = a.FileRepository()
	}

	a.Service = research.NewService(a.Repo, a.Metrics, a.Logger, resolved.Policy)
	return a, nil
}

// FileRepository returns a repository for the configured data file and format.
func (a *AppContext) FileRepository() *textfile.Repository {
	return a.FileRepositoryAt(a.Config.File, a.Resolved.Codec)
}

// FileRepositoryAt returns a repository for path using rc.
func (a *AppContext) FileRepositoryAt(path string, rc ports.RecordCodec) *textfile.Repository {
	return textfile.NewRepository(path, rc, a.Logger, textfile.Options{
		SkipInvalidLines: a.Config.SkipInvalidLines,
	})
}

// DB opens the configured libsql database once.
func (a *AppContext) DB() (*turso.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	db, err := turso.NewDB(a.Config.DatabaseURL, a.Config.AuthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	a.db = db
	return db, nil
}

// DatabaseRepository opens the database, applies pending migrations and
// returns a repository on it.
func (a *AppContext) DatabaseRepository(ctx context.Context) (*turso.RecordRepository, error) {
	db, err := a.DB()
	if err != nil {
		return nil, err
	}
	if err := migrate.RunAll(ctx, db.DB); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return turso.NewRecordRepository(db.DB, db.Location(), a.Logger), nil
}

// LoadStore fills the service from its repository and reports skipped lines to w.
func (a *AppContext) LoadStore(ctx context.Context, w io.Writer) error {
	res, err := a.Service.Load(ctx)
	if err != nil {
		return err
	}
	for _, le := range res.Skipped {
		_, _ = fmt.Fprintf(w, "warning: skipped %v\n", le)
	}
	return nil
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close() error {
	var errs []error
	if a.Metrics != nil {
		errs = append(errs, a.Metrics.Close(context.Background()))
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
		a.db = nil
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i].Close())
	}
	a.closers = nil
	return errors.Join(errs...)
}
