package model

// Redact returns the projection of p sent to observers.
//
// Operator-only text fields and the success target are cleared. Each trait
// list keeps its revealed items in order; if at least one item was hidden a
// single blank hidden item is appended so the observer knows something is
// withheld without learning how much.
func Redact(p Profile) Profile {
	r := p.Clone()
	for _, k := range PrivilegedFields() {
		r.SetText(k, "")
	}
	r.SuccessesNeeded = 0

	for _, c := range Categories() {
		src := p.Items(c)
		out := make([]Item, 0, len(src))
		hidden := false
		for _, it := range src {
			if it.Revealed {
				out = append(out, it)
			} else {
				hidden = true
			}
		}
		if hidden {
			out = append(out, Item{})
		}
		r.SetItems(c, out)
	}
	return r
}

// RedactAll applies Redact to every record of a snapshot.
func RedactAll(snapshot []Profile) []Profile {
	out := make([]Profile, len(snapshot))
	for i, p := range snapshot {
		out[i] = Redact(p)
	}
	return out
}

// CloneAll deep-copies a snapshot.
func CloneAll(snapshot []Profile) []Profile {
	out := make([]Profile, len(snapshot))
	for i, p := range snapshot {
		out[i] = p.Clone()
	}
	return out
}
