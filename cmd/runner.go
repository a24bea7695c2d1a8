package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/ytag/internal/auth"
	"github.com/desertthunder/ytag/internal/repositories"
	"github.com/desertthunder/ytag/internal/services"
	"github.com/desertthunder/ytag/internal/shared"
	"github.com/desertthunder/ytag/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	logger  *log.Logger
	output  io.Writer
	service services.Service
	engine  tasks.Engine
	db      *sql.DB
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Service and Engine are normally left nil and built lazily from cached
// credentials; tests inject fakes.
type RunnerOpts struct {
	Config  *shared.Config
	Logger  *log.Logger
	Output  io.Writer
	Service services.Service
	Engine  tasks.Engine
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:  opts.Config,
		logger:  opts.Logger,
		output:  opts.Output,
		service: opts.Service,
		engine:  opts.Engine,
	}
}

// SetLogger swaps the runner's logger (used when the TUI owns the terminal).
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, analyzeCommand, playlistCommand, reportsCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// authenticator builds an Authenticator from the configured credential paths.
func (r *Runner) authenticator() (*auth.Authenticator, error) {
	return auth.New(
		r.config.Credentials.ClientSecrets,
		r.config.Credentials.TokenCache,
		r.config.Server.RedirectURL(),
	)
}

// ensureService lazily builds the YouTube service from cached credentials.
func (r *Runner) ensureService(ctx context.Context) (services.Service, error) {
	if r.service != nil {
		return r.service, nil
	}

	authenticator, err := r.authenticator()
	if err != nil {
		return nil, err
	}

	ts, err := authenticator.TokenSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'ytag auth login' first)", err)
	}

	svc, err := services.NewYouTubeService(ctx, ts, r.config.API.PageSize)
	if err != nil {
		return nil, err
	}

	r.service = svc
	return svc, nil
}

// ensureEngine lazily builds the tag engine on top of the YouTube service.
func (r *Runner) ensureEngine(ctx context.Context) (tasks.Engine, error) {
	if r.engine != nil {
		return r.engine, nil
	}

	svc, err := r.ensureService(ctx)
	if err != nil {
		return nil, err
	}

	r.engine = tasks.NewTagEngine(svc, r.config.API.RateLimit)
	return r.engine, nil
}

// reportRepository opens the report database, running migrations on first use.
func (r *Runner) reportRepository() (*repositories.ReportRepository, error) {
	if r.db == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return nil, err
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
		r.db = db
	}

	return repositories.NewReportRepository(r.db), nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	output, err := shared.MarshalJSON(data, pretty)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
