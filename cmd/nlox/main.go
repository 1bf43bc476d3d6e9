package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/ostnam/nlox/pkg/config"
	"github.com/ostnam/nlox/pkg/eval"
	"github.com/ostnam/nlox/pkg/lox"
	"github.com/ostnam/nlox/pkg/report"
)

const usage = "usage: nlox [-config FILE] [-tokens] [-ast] [-max-depth N] [SOURCE_FILE_PATH]"

func main() {
	os.Exit(realMain(os.Args[1:]))
}

func realMain(args []string) int {
	flags := flag.NewFlagSet("nlox", flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	configPath := flags.String("config", "", "path to a YAML configuration file")
	dumpTokens := flags.Bool("tokens", false, "print the scanned tokens before running")
	dumpAST := flags.Bool("ast", false, "print the parsed tree before running")
	maxDepth := flags.Int("max-depth", -1, "maximum function call depth, 0 for no limit")
	if err := flags.Parse(args); err != nil {
		return 64
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return 64
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 64
	}
	if *dumpTokens {
		cfg.Debug.Tokens = true
	}
	if *dumpAST {
		cfg.Debug.AST = true
	}
	if *maxDepth >= 0 {
		cfg.MaxCallDepth = *maxDepth
	}

	session := lox.NewSession(os.Stdout, report.Console{Out: os.Stderr}, eval.WithMaxDepth(cfg.MaxCallDepth))
	session.DumpTokens = cfg.Debug.Tokens
	session.DumpAST = cfg.Debug.AST

	if flags.NArg() == 1 {
		return runFile(session, flags.Arg(0))
	}
	return runRepl(session, cfg)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadDefault()
}

// Run the file at the given path as a lox program.
func runFile(session *lox.Session, path string) int {
	content, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 66
	}
	return lox.ExitCode(session.Run(string(content)))
}

// Runs the REPL. Errors only abandon the current line.
func runRepl(session *lox.Session, cfg *config.Config) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := cfg.HistoryPath()
	if histPath != "" {
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	for {
		line, err := ln.Prompt(cfg.Prompt)
		if errors.Is(err, io.EOF) { // on ctrl-D
			fmt.Println()
			return 0
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 74
		}

		code := strings.TrimSpace(line)
		if code == "" {
			continue
		}
		if code == ":quit" {
			return 0
		}
		ln.AppendHistory(line)
		session.Run(line)
	}
}
