package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	plruntime "github.com/gosuda/pl0/runtime"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitRuntime = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pl0", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file (default ./pl0.yaml when present)")
	mode := fs.String("mode", "", "runner: auto|plain|tui")
	maxSteps := fs.Int64("max-steps", 0, "abort after this many statements (0 = unlimited)")
	stats := fs.Bool("stats", false, "print run statistics to stderr")
	verbose := fs.Bool("v", false, "debug logging")
	inputs := fs.String("input", "", "comma separated values consumed by ? before reading stdin")
	check := fs.Bool("check", false, "parse the given files and report syntax errors")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: pl0 [flags] program.pl0")
		fmt.Fprintln(stderr, "       pl0 -check file.pl0 ...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}

	if *check {
		if fs.NArg() == 0 {
			fs.Usage()
			return exitFailure
		}
		if checkFiles(fs.Args(), stdout) > 0 {
			return exitFailure
		}
		return exitOK
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return exitFailure
	}

	fileCfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["mode"] {
		fileCfg.Mode = *mode
	}
	if set["max-steps"] {
		fileCfg.MaxSteps = *maxSteps
	}
	if set["stats"] {
		fileCfg.Stats = *stats
	}
	if *verbose {
		fileCfg.LogLevel = "debug"
	}
	if set["input"] {
		fileCfg.Inputs = splitInputs(*inputs)
	}
	if err := fileCfg.normalize(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	file := fs.Arg(0)
	src, err := loadSource(file)
	if err != nil {
		fmt.Fprintf(stderr, "load program: %v\n", err)
		return exitFailure
	}
	cfg := appConfig{
		file:     file,
		source:   src,
		mode:     fileCfg.Mode,
		maxSteps: fileCfg.MaxSteps,
		stats:    fileCfg.Stats,
		inputs:   fileCfg.Inputs,
		logLevel: fileCfg.LogLevel,
		logFile:  fileCfg.LogFile,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
	}
	return execute(cfg)
}

func execute(cfg appConfig) int {
	tui := useTUI(cfg)
	logger, closeLog, err := newLogger(cfg, tui)
	if err != nil {
		fmt.Fprintln(cfg.stderr, err)
		return exitFailure
	}
	defer closeLog()

	if tui {
		// Parse up front so syntax errors land on the plain terminal.
		if _, err := newVM(cfg, logger); err != nil {
			fmt.Fprintln(cfg.stderr, err)
			return exitFailure
		}
		if err := runTUI(cfg, logger); err != nil {
			fmt.Fprintln(cfg.stderr, err)
			return exitCode(err)
		}
		return exitOK
	}

	st, err := runPlain(cfg, logger)
	if cfg.stats {
		fmt.Fprintf(cfg.stderr, "steps=%s calls=%s max_depth=%d outputs=%d inputs=%d elapsed=%s\n",
			humanize.Comma(st.Steps), humanize.Comma(st.Calls), st.MaxDepth, st.Outputs, st.Inputs, st.Elapsed)
	}
	if err != nil {
		fmt.Fprintln(cfg.stderr, err)
		return exitCode(err)
	}
	return exitOK
}

// exitCode maps a failed run to the process status. Aborting a prompt ends
// the program mid-run, like any other runtime failure.
func exitCode(err error) int {
	if _, ok := plruntime.ErrorCode(err); ok || errors.Is(err, errInputAborted) {
		return exitRuntime
	}
	return exitFailure
}

func useTUI(cfg appConfig) bool {
	switch cfg.mode {
	case "tui":
		return true
	case "plain":
		return false
	default:
		return isTerminal(cfg.stdin) && isTerminal(cfg.stdout)
	}
}

func splitInputs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
