package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	imp "github.com/daios-ai/imp"
)

const (
	appName     = "imp"
	historyFile = ".imp_history"
	promptMain  = "imp> "
	promptCont  = "...> "
	farewell    = "Bye!"
)

var banner = fmt.Sprintf("Imp %s REPL\nCtrl+D or 'quit;' exits.", imp.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl())
	}

	cmd := os.Args[1]
	switch cmd {
	case "repl":
		os.Exit(cmdRepl())
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "version":
		fmt.Println(imp.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`Imp %s

Usage:
  %s [repl]           Start the REPL (default).
  %s run <file.imp>   Run a statement file.
  %s version          Print the version.

`, imp.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run <file.imp>\n", appName)
		return 2
	}

	file := args[0]
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	ip := imp.NewInterpreter()
	out, _, perr := ip.ExecProgram(string(src))
	if perr != nil {
		fmt.Fprintln(os.Stderr, imp.WrapErrorWithName(perr, file, string(src)).Error())
		return 1
	}
	if out != "" {
		fmt.Println(out)
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl() int {
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

	ip := imp.NewInterpreter()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			// End of input counts as quit.
			fmt.Println()
			fmt.Println(farewell)
			break
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		out, quit, err := ip.ExecSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(imp.WrapErrorWithSource(err, code).Error()))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
		if quit {
			fmt.Println(farewell)
			return 0
		}
		if out != "" {
			fmt.Println(out)
		}
	}

	return 0
}

// readByParseProbe accumulates lines until the input parses as a complete
// statement (or fails with a hard error, which the caller then reports).
// Incomplete parses keep reading on the continuation prompt.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.TrimSpace(src) == "" {
			return src, true
		}
		if _, perr := imp.ParseStmtInteractive(src); perr == nil || !imp.IsIncomplete(perr) {
			return src, true
		}
	}
}
