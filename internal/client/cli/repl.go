package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// handler runs one REPL command with its arguments.
type handler func(ctx context.Context, args []string) error

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	commands() map[string]handler
	help() string
}

// runREPL starts a simple read–eval–print loop for the influence CLI.
//
// It reads a line from the provided scanner, splits it into fields, and
// dispatches the first one to the matching handler. "help" prints the
// command list, "exit" and "quit" leave the loop, unknown commands are
// reported back. The loop also ends on scanner EOF or when ctx is done.
//
// Handler errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	cmds := a.commands()
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("influence %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(a.help())

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			h, ok := cmds[cmd]
			if !ok {
				printlnFn("Unknown command:", cmd)
				continue
			}
			if err := h(ctx, args); err != nil {
				printlnFn("Error:", err)
			}
		}
	}
}
