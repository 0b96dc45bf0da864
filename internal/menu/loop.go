package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Handler performs an action once its input has been collected.
type Handler interface {
	Handle(ctx context.Context, a Action, v Value, out io.Writer)
}

// Loop reads choices from in and dispatches them until Exit or end of input.
type Loop struct {
	in      *bufio.Reader
	out     io.Writer
	handler Handler
	actions []Action
	table   map[int]Action
}

// New creates a Loop over the standard action set.
func New(in io.Reader, out io.Writer, handler Handler) *Loop {
	return &Loop{
		in:      bufio.NewReader(in),
		out:     out,
		handler: handler,
		actions: Actions,
		table:   actionTable(Actions),
	}
}

// Run blocks until the user picks Exit, input ends, or ctx is done.
// Bad input never ends the loop.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.printMenu()
		line, err := l.readLine()
		if err != nil {
			return l.endOfInput(err)
		}

		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(l.out, "Invalid input")
			continue
		}
		if choice == ExitChoice {
			fmt.Fprintln(l.out, "Goodbye!")
			return nil
		}

		action, ok := l.table[choice]
		if !ok {
			fmt.Fprintln(l.out, "Invalid choice")
			continue
		}

		value, ok, err := l.collect(action)
		if err != nil {
			return l.endOfInput(err)
		}
		if !ok {
			continue
		}
		l.handler.Handle(ctx, action, value, l.out)
	}
}

func (l *Loop) printMenu() {
	fmt.Fprintln(l.out)
	fmt.Fprintln(l.out, "=== Phase 3 Control Panel ===")
	for _, a := range l.actions {
		fmt.Fprintf(l.out, "%d. %s\n", a.Choice, a.Label)
	}
	fmt.Fprintf(l.out, "%d. Exit\n", ExitChoice)
	fmt.Fprint(l.out, "Choice: ")
}

// collect reads the action's secondary input. ok is false when the input
// was unusable and the action should be skipped.
func (l *Loop) collect(a Action) (Value, bool, error) {
	switch a.Input {
	case InputText:
		fmt.Fprint(l.out, "Enter prompt: ")
		line, err := l.readLine()
		if err != nil {
			return Value{}, false, err
		}
		return Value{Text: line}, true, nil
	case InputLevel:
		fmt.Fprint(l.out, "Debug level (0-3): ")
		line, err := l.readLine()
		if err != nil {
			return Value{}, false, err
		}
		level, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(l.out, "Invalid input")
			return Value{}, false, nil
		}
		return Value{Level: level}, true, nil
	default:
		return Value{}, true, nil
	}
}

// readLine returns the next line without its terminator. A final line
// without a newline is returned before io.EOF.
func (l *Loop) readLine() (string, error) {
	line, err := l.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (l *Loop) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(l.out)
		return nil
	}
	return fmt.Errorf("reading input: %w", err)
}
