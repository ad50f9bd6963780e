package cli

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/influence/internal/client/session"
	"github.com/dmitrijs2005/influence/internal/model"
)

func renderList(w io.Writer, profiles []model.Profile, selected int) {
	if len(profiles) == 0 {
		fmt.Fprintln(w, "No profiles yet.")
		return
	}
	for i, p := range profiles {
		marker := " "
		if i == selected {
			marker = "*"
		}
		name := p.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(w, "%s %d. %s\n", marker, i+1, name)
	}
}

func renderProfile(w io.Writer, v session.ProfileView) {
	name := v.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "#%d %s [%s]\n", v.Index+1, name, v.Mode)
	fmt.Fprintf(w, "  Photo: %s\n", v.PhotoURL)
	if v.PendingPhoto != "" {
		fmt.Fprintf(w, "  New photo: %s\n", v.PendingPhoto)
	}
	if v.Mode != session.Editing {
		fmt.Fprintf(w, "  Influence: %s\n", v.Influence)
	}

	for _, f := range v.Fields {
		if f.Key != "" {
			fmt.Fprintf(w, "  %s (%s): %s\n", f.Label, f.Key, f.Value)
			continue
		}
		fmt.Fprintf(w, "  %s: %s\n", f.Label, f.Value)
	}

	for _, c := range v.Categories {
		fmt.Fprintf(w, "  %s:\n", c.Label)
		for j, it := range c.Items {
			fmt.Fprintf(w, "    %s\n", renderItem(j, v.Mode, it))
		}
		if c.AddLabel != "" {
			fmt.Fprintf(w, "    (%s: add %s)\n", c.AddLabel, c.Category)
		}
	}
}

func renderItem(j int, mode session.Mode, it session.ItemView) string {
	if it.Placeholder || mode == session.Viewing {
		return "- " + it.Text
	}
	flag := "[ ]"
	if it.Revealed {
		flag = "[x]"
	}
	if it.Key != "" {
		return fmt.Sprintf("%d. %s %s (%s)", j+1, flag, it.Text, it.Key)
	}
	return fmt.Sprintf("%d. %s %s", j+1, flag, it.Text)
}
