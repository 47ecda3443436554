package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pymeta/internal/orderflag"
)

// ExitError carries a process exit code out of a command. Logged marks
// errors that were already reported through the logger.
type ExitError struct {
	Code   int
	Err    error
	Logged bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Execute runs the root cobra command.
func Execute() {
	err := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err == nil {
		return
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Logged {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

// Run executes the meta command line with the given streams.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd(args)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.ExecuteContext(ctx)
}

// rootOptions holds the flag values of one invocation. A fresh value, and a
// fresh order record, is built for every command tree.
type rootOptions struct {
	argv        []string
	workDir     string
	configFile  string
	python      string
	searchPaths []string
	outputJSON  bool
	quiet       bool
	verbose     bool

	egginfoPath string
	name        bool
	version     bool
	strict      bool
	record      *orderflag.Record
}

func newRootCmd(argv []string) *cobra.Command {
	opts := &rootOptions{argv: argv, record: orderflag.NewRecord()}

	cmd := &cobra.Command{
		Use:   "meta",
		Short: "Print the name and version of the Python distribution installed from a project",
		Long: "Parse the Python application name and its version from the distribution\n" +
			"defined by the project's egg-info directory. Values are printed in the\n" +
			"order --name and --version are given.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMeta(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.workDir, "chdir", "C", "", "Run as if meta was started in this directory")
	pf.StringVar(&opts.configFile, "config", "", "Path to the config file (default ./meta.yaml)")
	pf.StringVar(&opts.python, "python", "", "Python interpreter used to discover search paths")
	pf.StringArrayVar(&opts.searchPaths, "search-path", nil, "Site directory to scan instead of probing the interpreter (repeatable)")
	pf.BoolVar(&opts.outputJSON, "json", false, "Output machine-readable JSON")
	pf.BoolVar(&opts.quiet, "quiet", false, "Only log warning/error messages")
	pf.BoolVar(&opts.verbose, "verbose", false, "Log debug messages")

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVar(&opts.egginfoPath, "egginfo-path", "./src", "Relative path (wrt project directory) to the project's egg-info directory")
	recorder := orderflag.New(opts.record)
	recorder.MustDefine(flags, &opts.name, orderflag.Spec{
		Name:  "name",
		Usage: "Print the name of the Python application to stdout",
	})
	recorder.MustDefine(flags, &opts.version, orderflag.Spec{
		Name:  "version",
		Usage: "Print the version of the Python application to stdout",
	})
	flags.BoolVar(&opts.strict, "strict", false, "Exit non-zero when the distribution cannot be determined")

	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newPathsCmd(opts))
	cmd.AddCommand(newConfigCmd(opts))

	return cmd
}
