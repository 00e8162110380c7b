// Package cmd provides the CLI commands for convent.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MyCarrier-DevOps/convent-commits/internal/domain"
)

// MemoryRepo is the --repo value that selects an in-memory fixture repository.
const MemoryRepo = ":memory:"

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance for the loaded configuration.
	LoggerFactory func(cfg *AppConfig) Logger

	// ConfigLoader loads application configuration from the given file path.
	// An empty path selects the default lookup.
	ConfigLoader func(path string) (*AppConfig, error)

	// ProviderFactory creates the random source for a run.
	ProviderFactory func(seed uint64) domain.RandomProvider

	// MessageFactoryFactory creates the commit message assembler.
	MessageFactoryFactory func(provider domain.RandomProvider, log Logger) domain.MessageFactory

	// FixtureGeneratorFactory creates the batch generator.
	FixtureGeneratorFactory func(
		provider domain.RandomProvider,
		factory domain.MessageFactory,
		log Logger,
	) domain.FixtureGenerator

	// RepoFactory opens the fixture repository at path, or an in-memory one for MemoryRepo.
	RepoFactory func(path string, cfg *AppConfig, log Logger) (domain.FixtureRepository, error)

	// OutputWriterFactory creates an OutputWriter writing to out.
	OutputWriterFactory func(format, separator string, out io.Writer) (domain.OutputWriter, error)

	// Stdout is the writer for standard output (for generated fixtures).
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// Seed fixes the random sequence. Zero draws a random seed.
	Seed uint64

	// Count is the number of fixtures to generate.
	Count int

	// Format is the output format.
	Format string

	// Separator separates messages in text output.
	Separator string

	// Types are picked from when no --type is given.
	Types []domain.CommitType

	// Probabilities drive --random-options.
	Probabilities domain.OptionProbabilities

	// AuthorName and AuthorEmail sign fixture commits.
	AuthorName  string
	AuthorEmail string

	// LogLevel is the log level handed to LoggerFactory; --verbose forces debug.
	LogLevel string

	// LogAppName tags log entries emitted by the command.
	LogAppName string
}

// flags holds the parsed command-line flags.
type flags struct {
	commitType    string
	scope         bool
	body          bool
	issue         bool
	breaking      bool
	randomOptions bool
	count         int
	seed          uint64
	format        string
	repo          string
	verify        bool
	configPath    string
	verbose       bool
}

// optionFlags are the per-part toggles that conflict with --random-options.
var optionFlags = []string{"scope", "body", "issue", "breaking"}

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for convent.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	f := &flags{}

	rootCmd := &cobra.Command{
		Use:   "convent",
		Short: "Generate Conventional Commits messages for test fixtures",
		Long: `convent generates random commit messages that follow the Conventional
Commits format, for use as fixtures in tests of commit parsers, changelog
generators and release tooling.

Each message is "<type>[(<scope>)][!]: <description>", optionally followed by
a body line and a footer with "Closes #<n>" and "BREAKING CHANGE: <text>".

Examples:
  # One feat message with the default layout
  convent --type feat

  # A fix with a scope and a breaking change footer
  convent -t fix --scope --breaking

  # Ten messages with randomly chosen types and parts, as JSON
  convent -n 10 --random-options -f json

  # Repeatable output
  convent -n 5 --random-options --seed 42

  # Record fixtures as commits in a git repository and read them back
  convent -n 20 --random-options --repo ./fixtures-repo --verify`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, f, deps)
		},
	}

	// Define flags
	rootCmd.Flags().StringVarP(&f.commitType, "type", "t", "",
		"Commit type (feat, fix, chore or a custom name); picked from configured types when empty")
	rootCmd.Flags().BoolVar(&f.scope, "scope", false, "Include a scope")
	rootCmd.Flags().BoolVar(&f.body, "body", false, "Include a body line")
	rootCmd.Flags().BoolVar(&f.issue, "issue", false, "Include a Closes #<n> footer")
	rootCmd.Flags().BoolVar(&f.breaking, "breaking", false, "Mark as a breaking change")
	rootCmd.Flags().BoolVar(&f.randomOptions, "random-options", false,
		"Draw message parts per fixture using the configured probabilities")
	rootCmd.Flags().IntVarP(&f.count, "count", "n", 1, "Number of messages to generate")
	rootCmd.Flags().Uint64Var(&f.seed, "seed", 0, "Random seed; 0 draws a random seed")
	rootCmd.Flags().StringVarP(&f.format, "format", "f", "text", "Output format (text, json, yaml)")
	rootCmd.Flags().StringVar(&f.repo, "repo", "",
		"Also commit the messages to the git repository at this path ("+MemoryRepo+" for in-memory)")
	rootCmd.Flags().BoolVar(&f.verify, "verify", false,
		"Read the commits back after --repo and check they match the generated messages")
	rootCmd.Flags().StringVar(&f.configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runGenerate executes fixture generation with injected dependencies.
func runGenerate(cmd *cobra.Command, f *flags, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	stdout := deps.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if f.verbose {
		if err := os.Setenv("LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	cfg, err := deps.ConfigLoader(f.configPath)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	applyFlagOverrides(cmd, f, cfg)

	log := deps.LoggerFactory(cfg)

	req, err := buildRequest(cmd, f, cfg)
	if err != nil {
		log.Error(ctx, "invalid arguments", err, nil)
		return err
	}

	log.Info(ctx, "starting convent", map[string]interface{}{
		"count":   cfg.Count,
		"seed":    cfg.Seed,
		"format":  cfg.Format,
		"repo":    f.repo,
		"verify":  f.verify,
		"verbose": f.verbose,
	})

	writer, err := deps.OutputWriterFactory(cfg.Format, cfg.Separator, stdout)
	if err != nil {
		log.Error(ctx, "failed to create output writer", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	provider := deps.ProviderFactory(cfg.Seed)
	factory := deps.MessageFactoryFactory(provider, log)
	generator := deps.FixtureGeneratorFactory(provider, factory, log)

	fixtures, err := generator.CreateMany(ctx, req)
	if err != nil {
		log.Error(ctx, "failed to generate fixtures", err, nil)
		return err
	}

	if f.repo != "" {
		if err := commitFixtures(ctx, deps, cfg, f, fixtures, log); err != nil {
			return err
		}
	}

	if err := writer.WriteFixtures(fixtures); err != nil {
		log.Error(ctx, "failed to write output", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	log.Info(ctx, "fixture generation complete", map[string]interface{}{
		"fixtures": len(fixtures),
	})

	return nil
}

// applyFlagOverrides replaces configured values with explicitly set flags.
func applyFlagOverrides(cmd *cobra.Command, f *flags, cfg *AppConfig) {
	if cmd.Flags().Changed("count") {
		cfg.Count = f.count
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = f.seed
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = f.format
	}
	if f.verbose {
		cfg.LogLevel = "debug"
	}
}

// buildRequest turns flags and configuration into a batch request.
func buildRequest(cmd *cobra.Command, f *flags, cfg *AppConfig) (domain.BatchRequest, error) {
	req := domain.BatchRequest{
		Count:         cfg.Count,
		Types:         cfg.Types,
		Probabilities: cfg.Probabilities,
	}

	if f.verify && f.repo == "" {
		return domain.BatchRequest{}, &domain.ArgumentError{
			Param:  "verify",
			Reason: "requires --repo",
		}
	}

	if f.commitType != "" {
		ct, err := domain.ParseCommitType(f.commitType)
		if err != nil {
			return domain.BatchRequest{}, err
		}
		req.Type = ct
	}

	if f.randomOptions {
		for _, name := range optionFlags {
			if cmd.Flags().Changed(name) {
				return domain.BatchRequest{}, &domain.ArgumentError{
					Param:  "random-options",
					Reason: "cannot be combined with --" + name,
				}
			}
		}
		return req, nil
	}

	req.Options = &domain.MessageOptions{
		HasScope:          f.scope,
		HasBody:           f.body,
		HasIssue:          f.issue,
		HasBreakingChange: f.breaking,
	}
	return req, nil
}

// commitFixtures records every fixture message as a commit in the repository
// named by --repo, reading the history back when --verify is set.
func commitFixtures(
	ctx context.Context,
	deps *Dependencies,
	cfg *AppConfig,
	f *flags,
	fixtures []domain.Fixture,
	log Logger,
) error {
	path := f.repo
	repo, err := deps.RepoFactory(path, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to open fixture repository", err, map[string]interface{}{
			"path": path,
		})
		if errors.Is(err, domain.ErrRepositoryNotFound) {
			return fmt.Errorf("cannot open fixture repository: %s", path)
		}
		return fmt.Errorf("repository error: %w", err)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			log.Warn(ctx, "failed to close fixture repository", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	messages := make([]string, len(fixtures))
	for i, fx := range fixtures {
		messages[i] = fx.Message
	}

	shas, err := repo.CommitAll(ctx, messages)
	if err != nil {
		log.Error(ctx, "failed to commit fixtures", err, map[string]interface{}{
			"path":      path,
			"committed": len(shas),
		})
		return fmt.Errorf("repository error: %w", err)
	}

	log.Info(ctx, "committed fixtures", map[string]interface{}{
		"path":    path,
		"commits": len(shas),
		"shas":    shas,
	})

	if !f.verify {
		return nil
	}
	if err := verifyHistory(ctx, repo, messages, shas); err != nil {
		log.Error(ctx, "fixture history verification failed", err, map[string]interface{}{
			"path": path,
		})
		return fmt.Errorf("repository error: %w", err)
	}
	log.Info(ctx, "verified fixture history", map[string]interface{}{
		"path":    path,
		"commits": len(shas),
	})

	return nil
}

// verifyHistory checks that the newest commits in repo are shas with the
// given messages, oldest first in both slices.
func verifyHistory(ctx context.Context, repo domain.FixtureRepository, messages, shas []string) error {
	if len(shas) == 0 {
		return nil
	}

	history, err := repo.History(ctx, len(shas))
	if err != nil {
		return err
	}
	if len(history) != len(shas) {
		return fmt.Errorf("%w: read %d commits, wrote %d", domain.ErrHistoryMismatch, len(history), len(shas))
	}

	for i, rec := range history {
		j := len(shas) - 1 - i
		if rec.SHA != shas[j] {
			return fmt.Errorf("%w: commit %d is %s, want %s", domain.ErrHistoryMismatch, j, rec.SHA, shas[j])
		}
		if rec.Message != messages[j] {
			return fmt.Errorf("%w: commit %s has a different message", domain.ErrHistoryMismatch, rec.SHA)
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		return
	}
}
