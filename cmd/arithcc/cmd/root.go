// Package cmd implements the arithcc command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/ezrec/arithcc/compiler"
	"github.com/ezrec/arithcc/config"
	"github.com/ezrec/arithcc/translate"
)

var f = translate.From

var (
	ErrReported = translate.Error("error reported")
	ErrUsage    = translate.Error("invalid usage")
)

// options are the command line settings.
type options struct {
	cfgFile string
	verbose bool
	syntax  string
	label   string
	check   bool
	eval    bool
}

// NewRootCommand creates the arithcc command writing to stdout and stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "arithcc [flags] EXPR",
		Short: "Compile an arithmetic expression to x86-64 assembly",
		Long: `arithcc compiles a single integer expression using + - * / and
parentheses into an x86-64 function returning the result in rax.

Examples:
  arithcc '1+2*3' > tmp.s && cc -o tmp tmp.s && ./tmp; echo $?
  arithcc --syntax att --label calc '(1+2)*3'
  arithcc --eval '10-2-3'
  arithcc --eval '(0-7)/2'

Flags come before the expression.`,
		Version: Version,
		Args: func(cmd *cobra.Command, args []string) (err error) {
			err = cobra.ExactArgs(1)(cmd, args)
			if err != nil {
				err = fmt.Errorf("%w: %w", ErrUsage, err)
			}
			return
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0], stdout, stderr)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetVersionTemplate(versionTemplate())
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	flags := rootCmd.Flags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (.toml, .yaml)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline stages")
	flags.StringVarP(&opts.syntax, "syntax", "s", "intel", "assembler syntax (intel, att)")
	flags.StringVarP(&opts.label, "label", "l", "main", "function label")
	flags.BoolVar(&opts.check, "check", false, "cross-check generated code before output")
	flags.BoolVar(&opts.eval, "eval", false, "print the computed value instead of assembly")

	return rootCmd
}

// expressionArgs ends flag parsing at the first argument not spelled like
// a flag, so an expression such as "-1" reaches the compiler.
func expressionArgs(cmd *cobra.Command, args []string) (out []string) {
	cmd.InitDefaultHelpFlag()
	cmd.InitDefaultVersionFlag()

	out = append([]string{}, args...)
	for n := 0; n < len(args); n++ {
		arg := args[n]
		if arg == "--" {
			return
		}
		if !isFlag(arg) {
			out = append(append(out[:n:n], "--"), args[n:]...)
			return
		}
		if flagTakesValue(cmd, arg) {
			n++
		}
	}

	return
}

// isFlag reports whether arg names a flag. Expressions never start with a
// letter, so "-1" and "- 1" are not flags.
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	name := strings.TrimPrefix(arg[1:], "-")
	return len(name) != 0 && unicode.IsLetter(rune(name[0]))
}

// flagTakesValue reports whether the flag consumes the following argument.
func flagTakesValue(cmd *cobra.Command, arg string) bool {
	flags := cmd.Flags()

	if strings.HasPrefix(arg, "--") {
		name, _, inline := strings.Cut(arg[2:], "=")
		flag := flags.Lookup(name)
		return !inline && flag != nil && len(flag.NoOptDefVal) == 0
	}

	// Shorthand group; the first flag taking a value ends it.
	for i := 1; i < len(arg); i++ {
		flag := flags.ShorthandLookup(arg[i : i+1])
		if flag == nil {
			return false
		}
		if len(flag.NoOptDefVal) == 0 {
			return i == len(arg)-1
		}
	}

	return false
}

// loadConfig reads the config file, then applies flags set on the command line.
func loadConfig(cmd *cobra.Command, opts *options) (cfg *config.Config, err error) {
	cfg = config.Default()
	if len(opts.cfgFile) != 0 {
		cfg, err = config.Load(opts.cfgFile)
		if err != nil {
			return
		}
	}

	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("syntax") {
		cfg.Syntax = opts.syntax
	}
	if flags.Changed("label") {
		cfg.Label = opts.label
	}
	if flags.Changed("check") {
		cfg.Check = opts.check
	}

	err = cfg.Validate()
	if err != nil {
		cfg = nil
	}

	return
}

func run(cmd *cobra.Command, opts *options, input string, stdout, stderr io.Writer) (err error) {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return
	}

	err = translate.SetLanguage(cfg.Language)
	if err != nil {
		return fmt.Errorf("language %q: %w", cfg.Language, err)
	}

	cc := compiler.NewCompiler(cfg)

	unit, err := cc.Compile(input)
	if err != nil {
		compiler.Report(stderr, input, err)
		return ErrReported
	}

	if cfg.Check {
		err = cc.Check(unit)
		if err != nil {
			compiler.Report(stderr, input, err)
			return ErrReported
		}
	}

	if opts.eval {
		var value int64
		value, err = cc.Run(unit)
		if err != nil {
			compiler.Report(stderr, input, err)
			return ErrReported
		}
		_, err = fmt.Fprintln(stdout, value)
		return
	}

	_, err = unit.Program.WriteTo(stdout)
	return
}

// Execute runs the command line and returns the process exit status.
func Execute() int {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := NewRootCommand(stdout, stderr)
	rootCmd.SetArgs(expressionArgs(rootCmd, args))

	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintf(stderr, "arithcc: %v\n", err)
		}
		if errors.Is(err, ErrUsage) {
			fmt.Fprintln(stderr, f("Run 'arithcc --help' for usage."))
		}
		return 1
	}

	return 0
}
