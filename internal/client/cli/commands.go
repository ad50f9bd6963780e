package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/influence/internal/client/session"
	"github.com/dmitrijs2005/influence/internal/model"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

var errUsage = errors.New("wrong arguments, see 'help'")

func (a *App) commands() map[string]handler {
	cmds := map[string]handler{
		"list":   a.list,
		"l":      a.list,
		"select": a.selectProfile,
		"show":   a.show,
	}
	if !a.session.Privileged() {
		return cmds
	}
	for name, h := range map[string]handler{
		"new":    a.create,
		"edit":   a.edit,
		"set":    a.set,
		"item":   a.item,
		"add":    a.addItem,
		"rm":     a.removeItem,
		"photo":  a.photo,
		"save":   a.save,
		"cancel": a.cancel,
		"toggle": a.toggle,
		"inc":    a.increment,
		"reset":  a.reset,
		"delete": a.delete,
	} {
		cmds[name] = h
	}
	return cmds
}

func (a *App) help() string {
	if !a.session.Privileged() {
		return "Available commands: (l)ist, select N, show, exit"
	}
	return strings.Join([]string{
		"Available commands:",
		"  (l)ist, select N, show           browse profiles",
		"  new, delete                      create or remove a profile",
		"  toggle CATEGORY I, inc, reset    quick actions on the selected profile",
		"  edit, cancel, save               open, discard or commit the form",
		"  set KEY VALUE, item CATEGORY I TEXT, add CATEGORY, rm CATEGORY I, photo PATH",
		"  exit",
		"Categories: biases, strengths, weaknesses, influence_skills",
	}, "\n")
}

func (a *App) list(ctx context.Context, args []string) error {
	renderList(a.out, a.session.Profiles(), a.session.Selected())
	return nil
}

func (a *App) selectProfile(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	i, err := parsePosition(args[0])
	if err != nil {
		return err
	}
	if err := a.session.SelectProfile(i); err != nil {
		return err
	}
	return a.show(ctx, nil)
}

func (a *App) show(ctx context.Context, args []string) error {
	if a.session.Len() == 0 {
		fmt.Fprintln(a.out, "No profiles yet.")
		return nil
	}
	v, err := a.session.View(a.session.Selected())
	if err != nil {
		return err
	}
	renderProfile(a.out, v)
	return nil
}

func (a *App) create(ctx context.Context, args []string) error {
	if err := a.session.RequestCreate(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile requested; it opens for editing when the server confirms it.")
	return nil
}

func (a *App) edit(ctx context.Context, args []string) error {
	if err := a.session.StartEdit(a.session.Selected()); err != nil {
		return err
	}
	return a.show(ctx, nil)
}

func (a *App) form() (*session.Form, error) {
	f := a.session.Form()
	if f == nil {
		return nil, session.ErrNotEditing
	}
	return f, nil
}

func (a *App) set(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errUsage
	}
	f, err := a.form()
	if err != nil {
		return err
	}
	return f.Set(args[0], strings.Join(args[1:], " "))
}

func (a *App) item(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	c, j, err := parseItem(args[0], args[1])
	if err != nil {
		return err
	}
	f, err := a.form()
	if err != nil {
		return err
	}
	return f.Set(model.ItemKey(c, j), strings.Join(args[2:], " "))
}

func (a *App) addItem(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	c, err := parseCategory(args[0])
	if err != nil {
		return err
	}
	i, _ := a.session.Editing()
	return a.session.AddListItem(i, c)
}

func (a *App) removeItem(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	c, j, err := parseItem(args[0], args[1])
	if err != nil {
		return err
	}
	i, _ := a.session.Editing()
	return a.session.RemoveListItem(i, c, j)
}

func (a *App) photo(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	f, err := a.form()
	if err != nil {
		return err
	}
	data, err := readFile(args[0])
	if err != nil {
		return err
	}
	f.ChoosePhoto(filepath.Base(args[0]), data)
	fmt.Fprintf(a.out, "Photo %s will be uploaded on save.\n", filepath.Base(args[0]))
	return nil
}

func (a *App) save(ctx context.Context, args []string) error {
	i, _ := a.session.Editing()
	if err := a.session.Save(ctx, i); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved.")
	return nil
}

func (a *App) cancel(ctx context.Context, args []string) error {
	a.session.CancelEdit()
	return nil
}

func (a *App) toggle(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	c, j, err := parseItem(args[0], args[1])
	if err != nil {
		return err
	}
	return a.session.ToggleReveal(a.session.Selected(), c, j)
}

func (a *App) increment(ctx context.Context, args []string) error {
	return a.session.IncrementInfluence(a.session.Selected())
}

func (a *App) reset(ctx context.Context, args []string) error {
	return a.session.ResetInfluence(a.session.Selected())
}

func (a *App) delete(ctx context.Context, args []string) error {
	ok, err := a.session.DeleteProfile(a.session.Selected(), func(prompt string) bool {
		return Confirm(a.in, prompt, a.out)
	})
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Not deleted.")
	}
	return nil
}

// parsePosition converts a 1-based position typed by the user to an index.
func parsePosition(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%q is not a position (1, 2, ...)", s)
	}
	return n - 1, nil
}

func parseCategory(s string) (model.Category, error) {
	c, err := model.ParseCategory(strings.ToLower(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", session.ErrUnknownCategory, s)
	}
	return c, nil
}

func parseItem(category, position string) (model.Category, int, error) {
	c, err := parseCategory(category)
	if err != nil {
		return "", 0, err
	}
	j, err := parsePosition(position)
	if err != nil {
		return "", 0, err
	}
	return c, j, nil
}
