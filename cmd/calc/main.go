// Command calc is the terminal host for the expression evaluator and the
// radix converter. The core never prints or exits; everything user-facing
// lives here.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	calc "github.com/Punk1107/Calculator-and-Binary-Converter"
	"github.com/Punk1107/Calculator-and-Binary-Converter/baseconv"
)

const (
	appName     = "calc"
	historyFile = ".calc_history"
	promptMain  = "==> "
)

var banner = fmt.Sprintf("calc %s\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", calc.Version)

const helpText = `
REPL commands:
  :names   List the allowed functions and constants
  :help    Show this help
  :quit    Exit the REPL
`

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

var logger zerolog.Logger

func main() {
	var logLevel string

	root := &cobra.Command{
		Use:           appName,
		Short:         "Sandboxed calculator and number-base converter",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			level, err := zerolog.ParseLevel(logLevel)
			if err != nil {
				level = zerolog.InfoLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (trace|debug|info|warn|error)")

	root.AddCommand(evalCommand(), replCommand(), convertCommand(), versionCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		os.Exit(1)
	}
}

// -----------------------------------------------------------------------------
// eval
// -----------------------------------------------------------------------------

func evalCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression>...",
		Short: "Evaluate an expression and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			expr := strings.Join(args, " ")
			res, err := calc.Evaluate(expr)
			if err != nil {
				return errors.New(calc.WrapErrorWithSource(err, calc.NormalizeAliases(expr)).Error())
			}
			fmt.Println(res)
			return nil
		},
	}
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			runRepl()
			return nil
		},
	}
}

func runRepl() {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		line, err := ln.Prompt(promptMain)
		if err != nil {
			if err == liner.ErrPromptAborted {
				continue
			}
			fmt.Println()
			return
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		ln.AppendHistory(line)

		switch trimmed {
		case ":quit", ":q":
			return
		case ":help", ":h":
			fmt.Print(helpText)
			continue
		case ":names":
			fmt.Println(green(strings.Join(calc.Names(), " ")))
			continue
		}

		start := time.Now()
		res, evalErr := calc.Evaluate(trimmed)
		logger.Debug().
			Str("expr", trimmed).
			Dur("took", time.Since(start)).
			Msg("evaluated")

		if evalErr != nil {
			fmt.Println(red(calc.WrapErrorWithSource(evalErr, calc.NormalizeAliases(trimmed)).Error()))
			continue
		}
		fmt.Println(blue(res.String()))
	}
}

// -----------------------------------------------------------------------------
// convert
// -----------------------------------------------------------------------------

func convertCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <value> <from> <to>",
		Short: "Convert a number between bases 2, 8, 10, and 16",
		Long: `Convert a digit string between number bases.

Bases may be given numerically (2, 8, 10, 16) or by name
(bin, oct, dec, hex).`,
		Args: cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			from, err := parseRadix(args[1])
			if err != nil {
				return err
			}
			to, err := parseRadix(args[2])
			if err != nil {
				return err
			}
			out, err := baseconv.Convert(args[0], from, to)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

func parseRadix(s string) (int, error) {
	switch strings.ToLower(s) {
	case "bin", "binary":
		return baseconv.Binary, nil
	case "oct", "octal":
		return baseconv.Octal, nil
	case "dec", "decimal":
		return baseconv.Decimal, nil
	case "hex", "hexadecimal":
		return baseconv.Hexadecimal, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unknown base %q", s)
	}
	switch n {
	case 2, 8, 10, 16:
		return n, nil
	}
	return 0, fmt.Errorf("unsupported base %d (want 2, 8, 10, or 16)", n)
}

// -----------------------------------------------------------------------------
// version
// -----------------------------------------------------------------------------

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("%s %s (built %s)\n", appName, calc.Version, calc.BuildDate)
		},
	}
}
