package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/nip05/internal/buildinfo"
	"github.com/aalvaropc/nip05/internal/domain"
	"github.com/aalvaropc/nip05/internal/infra/config"
	"github.com/aalvaropc/nip05/internal/infra/httpclient"
	"github.com/aalvaropc/nip05/internal/infra/logger"
	"github.com/aalvaropc/nip05/internal/ports"
	"github.com/aalvaropc/nip05/internal/usecase"
)

// Deps are the collaborators the root command wires together. Zero values
// select the production implementations.
type Deps struct {
	Fetcher      ports.DocumentFetcher
	ConfigLoader ports.ConfigLoader
	Stdout       io.Writer
	Stderr       io.Writer
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], Deps{})
	stop()
	os.Exit(code)
}

// Run executes the command line and returns the process exit status.
func Run(ctx context.Context, args []string, deps Deps) int {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}

	// cobra falls back to os.Args for a nil slice
	if args == nil {
		args = []string{}
	}

	cmd := newRootCmd(deps)
	cmd.SetArgs(args)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		printError(deps.Stderr, err)
		return 1
	}
	return 0
}

type rootFlags struct {
	requireName bool
	timeout     time.Duration
	noRedirects bool
	format      string
	configPath  string
	debug       bool
	logFile     string
}

func newRootCmd(deps Deps) *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "nip05 [flags] <name@domain | domain>",
		Short: "Resolve a NIP-05 identifier to its npub public key",
		Long: `Resolve a NIP-05 identifier to its npub public key.

The domain's /.well-known/nostr.json is fetched once over HTTPS, the key
listed for the name is validated as a secp256k1 x-only key and printed in
its bech32 npub form. A bare domain resolves the "_" name unless
--require-name is set.`,
		Example: `  nip05 bob@example.com
  nip05 example.com
  nip05 --format json --timeout 5s bob@example.com`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       buildinfo.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, deps.ConfigLoader, f)
			if err != nil {
				return err
			}

			cleanup, err := logger.Setup(logger.Config{
				Debug:  f.debug,
				File:   f.logFile,
				Writer: deps.Stderr,
			})
			if err != nil {
				return fmt.Errorf("logger: %w", err)
			}
			defer func() { _ = cleanup() }()

			fetcher := deps.Fetcher
			if fetcher == nil {
				fetcher = newFetcher(cfg.Resolve)
			}

			uc := usecase.NewResolveIdentifier(fetcher,
				usecase.WithPolicy(cfg.Resolve.Policy),
				usecase.WithLogger(logger.L()),
			)

			res, err := uc.Execute(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printResolution(cmd.OutOrStdout(), res, cfg.Output.Format)
		},
	}

	cmd.SetVersionTemplate(buildinfo.String() + "\n")

	fl := cmd.Flags()
	fl.BoolVar(&f.requireName, "require-name", false, "Reject bare domains instead of resolving the \"_\" name")
	fl.DurationVar(&f.timeout, "timeout", domain.DefaultConfig().Resolve.Timeout, "Timeout for the identity endpoint request")
	fl.BoolVar(&f.noRedirects, "no-redirects", false, "Treat HTTP redirects from the identity endpoint as failures")
	fl.StringVar(&f.format, "format", "pretty", "Output format: "+joinFormats())
	fl.StringVar(&f.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/nip05/config.yaml)")
	fl.BoolVar(&f.debug, "debug", false, "Emit structured debug logs on stderr")
	fl.StringVar(&f.logFile, "log-file", "", "Append JSON logs to this file instead of stderr")

	return cmd
}

// loadConfig reads the config file then applies explicitly set flags.
// A missing file is only an error when --config names it.
func loadConfig(cmd *cobra.Command, loader ports.ConfigLoader, f rootFlags) (domain.Config, error) {
	if loader == nil {
		loader = config.Loader{}
	}

	path := f.configPath
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath()
	}

	cfg := domain.DefaultConfig()
	if path != "" {
		loaded, err := loader.LoadConfig(path)
		switch {
		case err == nil:
			cfg = loaded
		case domain.IsKind(err, domain.KindNotFound) && !explicit:
			// no user config; keep defaults
		default:
			return domain.Config{}, err
		}
	}

	fl := cmd.Flags()
	if fl.Changed("require-name") {
		cfg.Resolve.Policy = domain.PolicyDefaultName
		if f.requireName {
			cfg.Resolve.Policy = domain.PolicyRequireName
		}
	}
	if fl.Changed("timeout") {
		if f.timeout <= 0 {
			return domain.Config{}, invalidFlag("timeout", errors.New("must be positive"))
		}
		cfg.Resolve.Timeout = f.timeout
	}
	if fl.Changed("no-redirects") {
		cfg.Resolve.FollowRedirects = !f.noRedirects
	}
	if fl.Changed("format") {
		if err := config.ValidateFormat(f.format); err != nil {
			return domain.Config{}, invalidFlag("format", err)
		}
		cfg.Output.Format = f.format
	}

	return cfg, nil
}

func newFetcher(rc domain.ResolveConfig) *httpclient.Fetcher {
	hc := httpclient.DefaultConfig()
	hc.Timeout = rc.Timeout
	hc.FollowRedirects = rc.FollowRedirects

	exec := httpclient.NewExecutor(
		httpclient.WithClient(httpclient.New(hc)),
		httpclient.WithTimeout(rc.Timeout),
	)
	return httpclient.NewFetcher(exec, httpclient.WithLogger(logger.L()))
}

func invalidFlag(name string, err error) error {
	return &domain.OpError{
		Op:   "cli.flags",
		Kind: domain.KindInvalidConfig,
		Err:  fmt.Errorf("--%s: %w: %w", name, err, domain.ErrInvalidConfig),
	}
}

func joinFormats() string {
	return strings.Join(config.Formats, "|")
}
