package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/hostbridge/internal/domain/vpath"
	"github.com/GriffinCanCode/hostbridge/internal/domain/workspace"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/config"
	"github.com/GriffinCanCode/hostbridge/internal/infrastructure/server"
	"github.com/GriffinCanCode/hostbridge/internal/platform"
)

// flags override values loaded from the environment when set.
type flags struct {
	apps     string
	port     string
	host     string
	dev      bool
	logLevel string
}

func newRootCmd() *cobra.Command {
	var f flags

	root := &cobra.Command{
		Use:   "hostbridge",
		Short: "Host bridge for a sandboxed front-end bundle",
		Long: `hostbridge serves a front-end bundle from the apps directory and answers
its filesystem and process syscalls over WebSocket (/bridge) and HTTP (/syscall).

Virtual paths such as [home]/notes.txt are resolved against the workspace
table kept in <apps>/config.json.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	root.PersistentFlags().StringVar(&f.apps, "apps", "apps", "Apps directory holding the bundle and config.json")
	root.Flags().StringVar(&f.port, "port", "8000", "Server port")
	root.Flags().StringVar(&f.host, "host", "127.0.0.1", "Server host")
	root.Flags().BoolVar(&f.dev, "dev", false, "Development mode (colored logs, debug level)")
	root.Flags().StringVar(&f.logLevel, "log-level", "info", "Log level")

	root.AddCommand(newResolveCmd(&f))
	return root
}

func newResolveCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <virtual-path>...",
		Short: "Print the host path each virtual path resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, *f)
			if err != nil {
				return err
			}
			appsDir, err := filepath.Abs(cfg.Bridge.AppsPath)
			if err != nil {
				return err
			}

			store := workspace.NewStore(appsDir, cfg.AppsURL(), zap.NewNop(),
				workspace.WithFileName(cfg.Bridge.ConfigFile), workspace.WithReadOnly())
			resolver := vpath.NewResolver(platform.Native().Style(),
				func() vpath.Table { return store.Workspaces() })

			out := cmd.OutOrStdout()
			for _, arg := range args {
				if p, ok := resolver.Resolve(arg); ok {
					fmt.Fprintf(out, "%s\t%s\n", arg, p)
				} else {
					fmt.Fprintf(out, "%s\t(illegal path)\n", arg)
				}
			}
			return nil
		},
	}
}

// loadConfig reads the environment, then applies explicitly set flags.
func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	changed := func(name string) bool {
		fl := cmd.Flags().Lookup(name)
		return fl != nil && fl.Changed
	}
	if changed("apps") {
		cfg.Bridge.AppsPath = f.apps
	}
	if changed("port") {
		cfg.Server.Port = f.port
	}
	if changed("host") {
		cfg.Server.Host = f.host
	}
	if changed("dev") {
		cfg.Logging.Development = f.dev
		if f.dev && !changed("log-level") {
			cfg.Logging.Level = "debug"
		}
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	srv, err := server.NewServer(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	defer srv.Close()

	// Handle graceful shutdown
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
