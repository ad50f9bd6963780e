package session

// Mode is how one profile is presented to the local user.
type Mode int

const (
	// Viewing is the read-only observer presentation.
	Viewing Mode = iota
	// QuickView is the operator presentation outside the form: reveal
	// toggles and counter buttons act immediately.
	QuickView
	// Editing shows the form for the profile.
	Editing
)

func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case QuickView:
		return "quick-view"
	case Editing:
		return "editing"
	}
	return "unknown"
}
