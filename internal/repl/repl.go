package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dshills/reckon/internal/eval"
	"github.com/dshills/reckon/internal/history"
	"github.com/dshills/reckon/internal/operation"
	"github.com/dshills/reckon/internal/persist"
)

// Logger is the subset of the application logger the loop needs.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Options configures a REPL.
type Options struct {
	// In is the input stream. Defaults to os.Stdin.
	In io.Reader

	// Out is where results and errors are printed. Defaults to os.Stdout.
	Out io.Writer

	// HistoryFile is the path used by the save and load commands.
	HistoryFile string

	// MergeImports appends imported records instead of replacing the log.
	MergeImports bool

	// Logger receives session events. Optional.
	Logger Logger

	// Prompt forces the prompt on or off; when nil the prompt is shown
	// only if In is a terminal.
	Prompt *bool
}

// REPL is the interactive command loop.
type REPL struct {
	in     io.Reader
	out    io.Writer
	reg    *operation.Registry
	eval   *eval.Evaluator
	hist   *history.Log
	logger Logger

	historyFile  string
	mergeImports bool
	prompt       bool
}

// New creates a REPL over the given registry, evaluator, and history
// log.
func New(reg *operation.Registry, ev *eval.Evaluator, hist *history.Log, opts Options) *REPL {
	r := &REPL{
		in:           opts.In,
		out:          opts.Out,
		reg:          reg,
		eval:         ev,
		hist:         hist,
		logger:       opts.Logger,
		historyFile:  opts.HistoryFile,
		mergeImports: opts.MergeImports,
	}
	if r.in == nil {
		r.in = os.Stdin
	}
	if r.out == nil {
		r.out = os.Stdout
	}
	if r.logger == nil {
		r.logger = nopLogger{}
	}
	if opts.Prompt != nil {
		r.prompt = *opts.Prompt
	} else if f, ok := r.in.(*os.File); ok {
		r.prompt = term.IsTerminal(int(f.Fd()))
	}
	return r
}

// SetMergeImports switches the import mode at runtime.
func (r *REPL) SetMergeImports(merge bool) {
	r.mergeImports = merge
}

// Run reads and dispatches commands until quit, end of input, or
// context cancellation. A scanner failure is the only error returned;
// all command errors are printed and recovered.
func (r *REPL) Run(ctx context.Context) error {
	fmt.Fprintln(r.out, "Reckon calculator - type 'help' for available commands")
	r.logger.Info("session started")

	scanner := bufio.NewScanner(r.in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if r.prompt {
			fmt.Fprint(r.out, "> ")
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			r.logger.Info("session ended at end of input")
			return nil
		}

		cmd, err := Parse(scanner.Text())
		if err != nil {
			r.printError(err)
			continue
		}
		if r.dispatch(cmd) {
			r.logger.Info("session ended by quit")
			return nil
		}
	}
}

// dispatch executes one command. Returns true when the session should
// end.
func (r *REPL) dispatch(cmd Command) bool {
	switch cmd.Kind {
	case CmdNone:
	case CmdQuit:
		fmt.Fprintln(r.out, "Goodbye!")
		return true
	case CmdHelp:
		r.printHelp()
	case CmdHistory:
		r.printHistory()
	case CmdClear:
		r.hist.Clear()
		fmt.Fprintln(r.out, "History cleared")
	case CmdUndo:
		rec, err := r.hist.Undo()
		if err != nil {
			r.printError(err)
			return false
		}
		fmt.Fprintf(r.out, "Undo: %s\n", rec)
	case CmdRedo:
		rec, err := r.hist.Redo()
		if err != nil {
			r.printError(err)
			return false
		}
		fmt.Fprintf(r.out, "Redo: %s\n", rec)
	case CmdSave:
		r.exportTo(r.historyFile)
	case CmdExport:
		r.exportTo(cmd.Path)
	case CmdLoad:
		r.importFrom(r.historyFile)
	case CmdImport:
		r.importFrom(cmd.Path)
	case CmdCalc:
		r.calculate(cmd)
	}
	return false
}

func (r *REPL) calculate(cmd Command) {
	if !r.reg.Has(cmd.Op) {
		fmt.Fprintf(r.out, "Unknown command: %s\n", cmd.Op)
		fmt.Fprintln(r.out, "Type 'help' for available commands")
		return
	}
	if len(cmd.Operands) != 2 {
		fmt.Fprintf(r.out, "Error: %s requires exactly 2 numbers\n", cmd.Op)
		fmt.Fprintf(r.out, "Usage: %s <number1> <number2>\n", cmd.Op)
		return
	}

	rec, err := r.eval.Evaluate(cmd.Op, cmd.Operands)
	if err != nil {
		r.printError(err)
		r.logger.Error("calculation failed: %v", err)
		return
	}
	fmt.Fprintf(r.out, "Result: %s\n", history.FormatNumber(rec.Result))
}

func (r *REPL) exportTo(path string) {
	records := r.hist.Active()
	if err := persist.ExportFile(path, records); err != nil {
		r.printError(err)
		return
	}
	fmt.Fprintf(r.out, "History saved to %s\n", path)
	r.logger.Info("exported %d records to %s", len(records), path)
}

func (r *REPL) importFrom(path string) {
	records, err := persist.ImportFile(path)
	if err != nil {
		r.printError(err)
		return
	}
	if r.mergeImports {
		r.hist.Append(records)
	} else {
		r.hist.Replace(records)
	}
	fmt.Fprintf(r.out, "History loaded from %s (%d records)\n", path, len(records))
	r.logger.Info("imported %d records from %s", len(records), path)
}

func (r *REPL) printHistory() {
	records := r.hist.Active()
	if len(records) == 0 {
		fmt.Fprintln(r.out, "No calculations in history")
		return
	}
	fmt.Fprintln(r.out, "Calculation history:")
	for i, rec := range records {
		fmt.Fprintf(r.out, "%d. %s\n", i+1, rec)
	}
}

func (r *REPL) printError(err error) {
	fmt.Fprintf(r.out, "Error: %v\n", err)
}

func (r *REPL) printHelp() {
	fmt.Fprintln(r.out, "Operations:")
	for _, op := range r.reg.All() {
		fmt.Fprintf(r.out, "  %-12s %-6s %s\n", op.Name, op.Symbol, op.Help)
	}
	fmt.Fprint(r.out, `
History commands:
  history           Show calculation history
  clear             Clear calculation history
  undo              Undo last calculation
  redo              Redo last undone calculation
  save              Save history to the configured file
  load              Load history from the configured file
  export <path>     Save history to a CSV file
  import <path>     Load history from a CSV file

Other commands:
  help              Show this help message
  quit, exit        Exit the calculator
`)
}
