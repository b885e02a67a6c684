package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"rahmet_export/internal/choco"
	"rahmet_export/internal/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ErrUsage         = errors.New("incorrect number of parameters")
	ErrInvalidAction = errors.New("invalid action")
)

type Runner struct {
	factory  *choco.Factory
	exporter *report.Exporter
	logger   *zap.Logger
	stdout   io.Writer
	stderr   io.Writer
}

func NewRunner(factory *choco.Factory, exporter *report.Exporter, logger *zap.Logger) *Runner {
	return &Runner{
		factory:  factory,
		exporter: exporter,
		logger:   logger.Named("cli"),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// SetOutput redirects command output, mainly for tests.
func (r *Runner) SetOutput(stdout, stderr io.Writer) {
	r.stdout = stdout
	r.stderr = stderr
}

func (r *Runner) Execute() error {
	return r.ExecuteArgs(os.Args[1:])
}

func (r *Runner) ExecuteArgs(args []string) error {
	if args == nil {
		args = []string{}
	}
	cmd := r.command()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func (r *Runner) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rahmet-export <action> <token>",
		Short:         "Export Rahmet Business analytics to xlsx",
		Long:          "Export Rahmet Business analytics to xlsx.\n\n" + actionList(),
		Args:          r.validateArgs,
		RunE:          r.run,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(r.stdout)
	cmd.SetErr(r.stderr)
	return cmd
}

func (r *Runner) validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 2 {
		printUsage(cmd.ErrOrStderr())
		return fmt.Errorf("%w: expected <action> <token>, got %d argument(s)", ErrUsage, len(args))
	}
	if _, ok := lookupAction(args[0]); !ok {
		printUsage(cmd.ErrOrStderr())
		return fmt.Errorf("%w: %s", ErrInvalidAction, args[0])
	}
	return nil
}

func (r *Runner) run(cmd *cobra.Command, args []string) error {
	act, _ := lookupAction(args[0])
	startedAt := time.Now()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := r.factory.New(args[1])
	if err != nil {
		return err
	}

	r.logger.Info("export started", zap.String("action", act.name))
	if err := act.run(ctx, r, client, cmd.OutOrStdout()); err != nil {
		r.logger.Error("export failed", zap.String("action", act.name), zap.Error(err))
		return err
	}

	elapsed := time.Since(startedAt)
	r.logger.Info("export finished", zap.String("action", act.name), zap.Duration("elapsed", elapsed))
	fmt.Fprintf(cmd.OutOrStdout(), "Execution time: %.2f seconds\n", elapsed.Seconds())
	return nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: rahmet-export <action> <token>")
	fmt.Fprint(w, actionList())
}

func actionList() string {
	var b strings.Builder
	b.WriteString("Actions:\n")
	for _, a := range actions {
		fmt.Fprintf(&b, "  %-10s %s\n", a.name, a.description)
	}
	return b.String()
}
