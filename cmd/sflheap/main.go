// Command sflheap is the segregated free-list heap simulator's driver:
// an interactive REPL and a non-interactive batch runner over the same
// request-stream semantics.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sflheap/sflheap/internal/cliutil"
	"github.com/sflheap/sflheap/internal/command"
	"github.com/sflheap/sflheap/internal/engine"
	"github.com/sflheap/sflheap/internal/session"
	"github.com/sflheap/sflheap/internal/watch"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		showHelp    = flag.Bool("help", false, "show help information")
		jsonOutput  = flag.Bool("json", false, "output version in JSON format")
		debugMode   = flag.Bool("debug", false, "enable debug mode")
		noPrompt    = flag.Bool("no-prompt", false, "disable interactive prompt")
		script      = flag.String("script", "", "run a request script non-interactively and exit")
		watchScript = flag.Bool("watch", false, "with -script, re-run the script each time it is saved")
		loadSession = flag.String("load-session", "", "replay a saved session file before starting")
		saveSession = flag.String("save-session", "", "save the session's command history to this file on exit")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Segregated free-list heap simulator REPL.\n\n")
		fmt.Fprintf(os.Stderr, "OPTIONS:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEXAMPLES:\n")
		fmt.Fprintf(os.Stderr, "  %s                          # interactive REPL\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -script session.sfl      # run a script once\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -script session.sfl -watch   # re-run on every save\n", os.Args[0])
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		cliutil.PrintVersion("sflheap", *jsonOutput)
		os.Exit(0)
	}

	logger := cliutil.NewLogger(!*noPrompt, *debugMode)

	if *script != "" {
		runBatch(*script, *watchScript, logger)
		return
	}

	runREPL(*noPrompt, *loadSession, *saveSession, logger)
}

// runBatch executes a script file's request lines against one engine and
// prints each request's output. With watch, it re-runs the whole script
// (against a fresh engine) every time the file changes.
func runBatch(path string, watchMode bool, logger *cliutil.Logger) {
	run := func() {
		data, err := os.ReadFile(path)
		if err != nil {
			cliutil.ExitWithError("reading script %s: %v", path, err)
		}
		e := engine.New()
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			cmd, err := command.Parse(line)
			if err != nil {
				logger.Warn("%s: %v", line, err)
				continue
			}
			res := e.Execute(cmd)
			if res.Output != "" {
				fmt.Print(res.Output)
			}
			if res.Fatal || e.Done() {
				break
			}
		}
	}

	run()
	if !watchMode {
		return
	}

	sw, err := watch.NewScriptWatcher(path)
	if err != nil {
		cliutil.ExitWithError("watching %s: %v", path, err)
	}
	defer sw.Close()

	logger.Info("watching %s for changes (ctrl-c to stop)", path)
	for {
		select {
		case <-sw.Reloads():
			fmt.Println("--- reload ---")
			run()
		case err := <-sw.Errors():
			logger.Error("watch: %v", err)
		}
	}
}

// runREPL implements the interactive loop.
func runREPL(noPrompt bool, loadSessionPath, saveSessionPath string, logger *cliutil.Logger) {
	r := newREPL(logger)
	r.noPrompt = noPrompt

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nGoodbye!")
		r.saveSessionIfRequested(saveSessionPath)
		os.Exit(0)
	}()

	if loadSessionPath != "" {
		if err := r.loadSession(loadSessionPath); err != nil {
			cliutil.ExitWithError("loading session %s: %v", loadSessionPath, err)
		}
	}

	if !noPrompt {
		printWelcome()
	}

	r.run(noPrompt)
	r.saveSessionIfRequested(saveSessionPath)
}

type repl struct {
	logger   *cliutil.Logger
	eng      *engine.Engine
	sess     *session.Session
	scanner  *bufio.Scanner
	noPrompt bool
}

func newREPL(logger *cliutil.Logger) *repl {
	return &repl{
		logger:  logger,
		eng:     engine.New(),
		sess:    session.New(),
		scanner: bufio.NewScanner(os.Stdin),
	}
}

// printResult prints a command's output, pretty-reflowing the long
// "Blocks with N bytes - ..." lines to the terminal's width when attached
// interactively to a TTY. In -no-prompt mode (piped/scripted stdin) the
// canonical text is printed unchanged, matching runBatch's byte-stable
// behaviour.
func (r *repl) printResult(output string) {
	if r.noPrompt {
		fmt.Print(output)
		return
	}
	fmt.Print(cliutil.WrapForDisplay(output))
}

func printWelcome() {
	info := cliutil.GetVersionInfo()
	fmt.Printf("sflheap v%s\n", info.Version)
	fmt.Printf("Enter INIT_HEAP/MALLOC/FREE/READ/WRITE/DUMP_MEMORY/DESTROY_HEAP requests.\n")
	fmt.Println()
}

func (r *repl) run(noPrompt bool) {
	for {
		if !noPrompt {
			fmt.Print("sflheap> ")
		}
		if !r.scanner.Scan() {
			return
		}

		line := strings.TrimSpace(r.scanner.Text())
		if line == "" {
			continue
		}
		r.sess.Record(line)

		cmd, err := command.Parse(line)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}

		r.logger.Debug("executing %q", line)
		res := r.eng.Execute(cmd)
		if res.Output != "" {
			r.printResult(res.Output)
		}
		if res.Fatal || r.eng.Done() {
			return
		}
	}
}

func (r *repl) loadSession(path string) error {
	s, err := session.Load(path)
	if err != nil {
		return err
	}
	for _, line := range s.Commands {
		cmd, err := command.Parse(line)
		if err != nil {
			r.logger.Warn("replay %q: %v", line, err)
			continue
		}
		r.sess.Record(line)
		res := r.eng.Execute(cmd)
		if res.Output != "" {
			r.printResult(res.Output)
		}
		if res.Fatal || r.eng.Done() {
			break
		}
	}
	return nil
}

func (r *repl) saveSessionIfRequested(path string) {
	if path == "" {
		return
	}
	if err := r.sess.Save(path); err != nil {
		r.logger.Error("saving session to %s: %v", path, err)
	}
}
