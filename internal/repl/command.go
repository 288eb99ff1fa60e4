package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/reckon/internal/operation"
)

// CommandKind classifies a parsed input line.
type CommandKind int

const (
	// CmdNone is a blank line.
	CmdNone CommandKind = iota

	// CmdCalc is an operation with operands.
	CmdCalc

	// Meta commands.
	CmdUndo
	CmdRedo
	CmdHistory
	CmdClear
	CmdSave
	CmdLoad
	CmdExport
	CmdImport
	CmdHelp
	CmdQuit
)

// Command is a parsed input line.
type Command struct {
	Kind     CommandKind
	Op       operation.Kind
	Operands []float64
	Path     string
}

// Parse tokenizes a line into a Command. Command names are matched
// case-insensitively; anything that is not a meta command is treated
// as a calculation.
func Parse(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Kind: CmdNone}, nil
	}

	name := strings.ToLower(fields[0])
	args := fields[1:]

	switch name {
	case "undo":
		return bare(CmdUndo, name, args)
	case "redo":
		return bare(CmdRedo, name, args)
	case "history":
		return bare(CmdHistory, name, args)
	case "clear":
		return bare(CmdClear, name, args)
	case "save":
		return bare(CmdSave, name, args)
	case "load":
		return bare(CmdLoad, name, args)
	case "help":
		return bare(CmdHelp, name, args)
	case "quit", "exit":
		return bare(CmdQuit, name, args)
	case "export":
		return withPath(CmdExport, name, args)
	case "import":
		return withPath(CmdImport, name, args)
	}

	operands := make([]float64, 0, len(args))
	for _, arg := range args {
		v, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return Command{}, fmt.Errorf("%w: operand must be a number, got %q",
				operation.ErrInvalidArgument, arg)
		}
		operands = append(operands, v)
	}
	return Command{Kind: CmdCalc, Op: operation.Kind(name), Operands: operands}, nil
}

func bare(kind CommandKind, name string, args []string) (Command, error) {
	if len(args) != 0 {
		return Command{}, fmt.Errorf("%w: %s takes no arguments",
			operation.ErrInvalidArgument, name)
	}
	return Command{Kind: kind}, nil
}

func withPath(kind CommandKind, name string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, fmt.Errorf("%w: usage: %s <path>",
			operation.ErrInvalidArgument, name)
	}
	return Command{Kind: kind, Path: args[0]}, nil
}
