package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	client "github.com/taskmesh/taskmesh-cli"
	"github.com/taskmesh/taskmesh-cli/internal/config"
)

// app carries the shared state every subcommand needs: the config store and
// the verbosity flag. The API client is built lazily so commands that never
// touch the network (config get/set) don't pay for it.
type app struct {
	store   *config.Store
	verbose bool
}

func (a *app) client() (*client.Client, error) {
	var opts []client.Option
	if a.verbose {
		opts = append(opts, client.WithRequestLogger(newStderrLogger()))
	}
	return client.New(a.store, opts...)
}

func newRootCmd() (*cobra.Command, error) {
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}

	a := &app{store: store}

	rootCmd := &cobra.Command{
		Use:     "taskmesh",
		Short:   "Manage Taskmesh tasks, projects, and knowledge from the terminal",
		Version: fmt.Sprintf("%s (commit: %s)", version, commit),
		// Silence Cobra's default error/usage printing; main handles it.
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log HTTP requests and retries to stderr")

	rootCmd.AddCommand(authCmd(a))
	rootCmd.AddCommand(configCmd(a))
	rootCmd.AddCommand(tenantCmd(a))
	rootCmd.AddCommand(taskCmd(a))
	rootCmd.AddCommand(projectCmd(a))
	rootCmd.AddCommand(memberCmd(a))
	rootCmd.AddCommand(docCmd(a))
	rootCmd.AddCommand(whoamiCmd(a))
	rootCmd.AddCommand(statusCmd(a))

	return rootCmd, nil
}

// stderrLogger adapts the standard log package to client.RequestLogger for
// the --verbose flag.
type stderrLogger struct {
	l *log.Logger
}

func newStderrLogger() *stderrLogger {
	return &stderrLogger{l: log.New(os.Stderr, "taskmesh: ", log.LstdFlags)}
}

func (s *stderrLogger) Errorf(format string, v ...any) { s.l.Printf("ERROR "+format, v...) }
func (s *stderrLogger) Warnf(format string, v ...any)  { s.l.Printf("WARN "+format, v...) }
func (s *stderrLogger) Debugf(format string, v ...any) { s.l.Printf("DEBUG "+format, v...) }
