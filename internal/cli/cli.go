package cli

import (
	"errors"
	"io"
	"log/slog"

	"github.com/Uchennaokeke444/Gradle/internal/app"
	"github.com/Uchennaokeke444/Gradle/internal/report"
	"github.com/Uchennaokeke444/Gradle/internal/schema"
	"github.com/alecthomas/kong"
)

// Name is the program name shown in usage.
const Name = "gradle-settings"

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flags is the command line, as kong reads it.
type flags struct {
	Scripts []string `arg:"" optional:"" name:"script" help:"Script file or directory containing .hcl scripts." type:"path"`

	Context string `default:"settings" enum:"settings,plugins" help:"Kind of script to evaluate (${enum})." short:"c"`
	RootDir string `help:"Root directory of the build. Defaults to the directory of each script." type:"path"`
	Output  string `default:"text" enum:"text,yaml" help:"Report format (${enum})." short:"o"`

	LogLevel  string `default:"info" enum:"debug,info,warn,error" help:"Set the logging level (${enum})."`
	LogFormat string `default:"text" enum:"text,json" help:"Log output format (${enum})."`

	Config kong.ConfigFlag `help:"Load flag values from a JSON file."`
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var f flags
	var exitCode *int // set when kong asks to exit, e.g. after --help
	parser, err := kong.New(&f,
		kong.Name(Name),
		kong.Description("Evaluates Gradle-style settings scripts written in HCL."),
		kong.Writers(output, output),
		kong.Exit(func(code int) { exitCode = &code }),
		kong.Configuration(kong.JSON),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true, Summary: true}),
	)
	if err != nil {
		return nil, false, err
	}

	ktx, err := parser.Parse(args)
	if exitCode != nil {
		if *exitCode == 0 {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: *exitCode, Message: "exiting"}
	}
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if len(f.Scripts) == 0 {
		slog.Debug("No script provided, printing usage and exiting.")
		if err := ktx.PrintUsage(false); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	ec, ok := schema.ParseEvaluationContext(f.Context)
	if !ok {
		return nil, false, &ExitError{Code: 2, Message: "invalid context: " + f.Context}
	}

	config, err := app.NewConfig(app.Config{
		ScriptPaths:  f.Scripts,
		Context:      ec,
		RootDir:      f.RootDir,
		LogFormat:    f.LogFormat,
		LogLevel:     f.LogLevel,
		OutputFormat: report.Format(f.Output),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// ExitCode maps an error from the application to a process exit code.
func ExitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.Code
	default:
		return 1
	}
}
