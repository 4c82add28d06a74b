package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is what the REPL needs from App.
type execIface interface {
	Exec(ctx context.Context, args []string) error
}

const helpText = `Available commands:
  stats
  nodes | transmitters | groups | callsigns | rubrics [name]
  calls [owner]
  news <rubric>
  page <callsigns> <groups> <text...>
  emergency <callsigns> <groups> <text...>
  postnews <rubric> [#n] <text...>
  history [limit]
  help
  exit | quit`

// runREPL reads commands from scanner until EOF, "exit" or "quit", or until
// ctx is cancelled. Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, prompt string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(prompt)
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "help":
			printlnFn(helpText)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			if err := a.Exec(ctx, parts); err != nil {
				if errors.Is(err, ErrUnknownCommand) {
					printlnFn("Unknown command:", parts[0])
					continue
				}
				printlnFn("Error:", err)
			}
		}
	}
}
