package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"
)

type fakeExec struct {
	calls []string
	args  [][]string
}

func (f *fakeExec) commands() map[string]handler {
	record := func(name string) handler {
		return func(ctx context.Context, args []string) error {
			f.calls = append(f.calls, name)
			f.args = append(f.args, args)
			return nil
		}
	}
	return map[string]handler{
		"list":   record("list"),
		"select": record("select"),
		"set":    record("set"),
		"save": func(context.Context, []string) error {
			f.calls = append(f.calls, "save")
			return errors.New("not editing")
		},
	}
}

func (f *fakeExec) help() string { return "help text" }

func silencePrint(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(strings.ReplaceAll(fmtAny(v), "\n", " "))
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func fmtAny(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	}
	return ""
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	printed := silencePrint(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"list",
		"",
		"select 2",
		"set name Big   Otto",
		"save",
		"foobar",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	want := []string{"list", "select", "set", "save"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if got := strings.Join(exec.args[2], "|"); got != "name|Big|Otto" {
		t.Fatalf("set args = %q", got)
	}

	out := strings.Join(*printed, "\n")
	for _, s := range []string{"influence status>", "help text", "Error: not editing", "Unknown command: foobar", "Bye!"} {
		if !strings.Contains(out, s) {
			t.Fatalf("output lacks %q:\n%s", s, out)
		}
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	silencePrint(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("list")))

	if len(exec.calls) != 1 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	silencePrint(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("list\nlist\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
