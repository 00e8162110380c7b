// Package main is the entry point for the convent CLI application.
// convent generates Conventional Commits messages for use as test fixtures,
// optionally recording them as commits in a git repository.
package main

import (
	"io"
	"os"

	"github.com/MyCarrier-DevOps/goLibMyCarrier/logger"

	"github.com/MyCarrier-DevOps/convent-commits/cmd"
	"github.com/MyCarrier-DevOps/convent-commits/internal/adapters/git"
	logadapter "github.com/MyCarrier-DevOps/convent-commits/internal/adapters/logger"
	"github.com/MyCarrier-DevOps/convent-commits/internal/adapters/output"
	"github.com/MyCarrier-DevOps/convent-commits/internal/adapters/random"
	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
	"github.com/MyCarrier-DevOps/convent-commits/internal/infrastructure/config"
	"github.com/MyCarrier-DevOps/convent-commits/internal/usecases"
)

func main() {
	cmd.SetDefaultDependencies(productionDeps())
	cmd.Execute()
}

// productionDeps wires the real adapters behind the command's factories.
func productionDeps() *cmd.Dependencies {
	return &cmd.Dependencies{
		LoggerFactory: newLogger,

		ConfigLoader: loadAppConfig,

		ProviderFactory: func(seed uint64) domain.RandomProvider {
			return random.NewLocked(random.New(seed))
		},

		MessageFactoryFactory: func(p domain.RandomProvider, log cmd.Logger) domain.MessageFactory {
			return usecases.NewCommitMessageFactory(p, forComponent(log, componentGenerator))
		},

		FixtureGeneratorFactory: func(
			p domain.RandomProvider,
			factory domain.MessageFactory,
			log cmd.Logger,
		) domain.FixtureGenerator {
			return usecases.NewFixtureGenerator(p, factory, forComponent(log, componentGenerator))
		},

		RepoFactory: func(path string, cfg *cmd.AppConfig, log cmd.Logger) (domain.FixtureRepository, error) {
			return openRepository(path, cfg, forComponent(log, componentGit))
		},

		OutputWriterFactory: func(format, separator string, out io.Writer) (domain.OutputWriter, error) {
			return output.NewWriterWithOutput(out, format, separator)
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Log components for loggers derived from the command's logger.
const (
	componentGenerator = "generator"
	componentGit       = "git"
)

// newLogger builds the zap logger at cfg.LogLevel, tagged with cfg.LogAppName.
// The zap logger reads its level from LOG_LEVEL when created.
func newLogger(cfg *cmd.AppConfig) cmd.Logger {
	if cfg.LogLevel != "" && os.Getenv(config.EnvLogLevel) != cfg.LogLevel {
		_ = os.Setenv(config.EnvLogLevel, cfg.LogLevel)
	}
	return logadapter.NewZapAdapter(logger.NewZapLoggerFromConfig(), cfg.LogAppName)
}

// forComponent retags a zap-backed logger with component. Other loggers are
// returned unchanged.
func forComponent(log cmd.Logger, component string) cmd.Logger {
	if zl, ok := log.(*logadapter.ZapAdapter); ok {
		return zl.For(component)
	}
	return log
}

// loadAppConfig maps the infrastructure configuration onto the command's view of it.
// An empty path falls back to the file named by CONVENT_CONFIG.
func loadAppConfig(path string) (*cmd.AppConfig, error) {
	if path == "" {
		path = os.Getenv(config.EnvConfigFile)
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	types, err := cfg.CommitTypes()
	if err != nil {
		return nil, err
	}
	return &cmd.AppConfig{
		Seed:          cfg.Seed,
		Count:         cfg.Count,
		Format:        cfg.Format,
		Separator:     cfg.Separator,
		Types:         types,
		Probabilities: cfg.Probabilities,
		AuthorName:    cfg.Git.AuthorName,
		AuthorEmail:   cfg.Git.AuthorEmail,
		LogLevel:      cfg.LogLevel,
		LogAppName:    cfg.LogAppName,
	}, nil
}

// openRepository opens an in-memory repository for cmd.MemoryRepo and a
// repository on disk for any other path.
func openRepository(path string, cfg *cmd.AppConfig, log cmd.Logger) (domain.FixtureRepository, error) {
	if cfg == nil {
		return nil, newConfigTypeError("*cmd.AppConfig")
	}
	author := git.Author{Name: cfg.AuthorName, Email: cfg.AuthorEmail}

	var (
		repo *git.GoGitRepository
		err  error
	)
	if path == cmd.MemoryRepo {
		repo, err = git.NewMemoryRepository(author, log)
	} else {
		repo, err = git.NewDiskRepository(path, author, log)
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}

func newConfigTypeError(expected string) error {
	return &configTypeError{expected: expected}
}

// configTypeError is returned when the configuration handed to a factory is missing.
type configTypeError struct {
	expected string
}

func (e *configTypeError) Error() string {
	return "invalid configuration type: expected " + e.expected
}
