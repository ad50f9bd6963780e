// Package model defines the profile records shared by the server and the
// client: the character sheet itself, its revealable trait lists and the
// text helpers applied before a record is committed.
package model

// DefaultPhotoURL is the photo reference of a record that has no uploaded image.
const DefaultPhotoURL = "/static/images/default.png"

// PhotoURLPrefix is prepended to an upload identifier to form a photo reference.
const PhotoURLPrefix = "/images/"

// Item is one entry of a trait list. Revealed controls whether observers
// may see Text; new items start hidden.
type Item struct {
	Text     string `json:"text"`
	Revealed bool   `json:"revealed"`
}

// Profile is one character sheet.
//
// ID and Version are assigned by the server. A record sent by a client with
// an empty ID has not been confirmed yet.
type Profile struct {
	ID      string `json:"id,omitempty"`
	Version int64  `json:"version,omitempty"`

	Name        string `json:"name"`
	Appearance  string `json:"appearance"`
	Background  string `json:"background"`
	Personality string `json:"personality"`
	Attitude    string `json:"attitude"`
	Goal        string `json:"goal"`
	Benefit     string `json:"benefit"`
	Special     string `json:"special"`

	InfluenceSuccesses int `json:"influence_successes"`
	SuccessesNeeded    int `json:"successes_needed"`

	Biases          []Item `json:"biases"`
	Strengths       []Item `json:"strengths"`
	Weaknesses      []Item `json:"weaknesses"`
	InfluenceSkills []Item `json:"influence_skills"`

	PhotoURL string `json:"photoUrl"`
}

// NewBlank returns the template a client sends when it asks the server to
// create a profile. Every category is seeded with one blank hidden item.
func NewBlank() Profile {
	blank := func() []Item { return []Item{{Text: "", Revealed: false}} }
	return Profile{
		SuccessesNeeded: 1,
		Biases:          blank(),
		Strengths:       blank(),
		Weaknesses:      blank(),
		InfluenceSkills: blank(),
		PhotoURL:        DefaultPhotoURL,
	}
}

// PhotoURL builds a photo reference from an upload identifier.
func PhotoURL(id string) string {
	return PhotoURLPrefix + id
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	c := p
	for _, cat := range Categories() {
		src := p.Items(cat)
		if src == nil {
			continue
		}
		dst := make([]Item, len(src))
		copy(dst, src)
		c.SetItems(cat, dst)
	}
	return c
}

// Normalize replaces nil category lists with empty ones.
func (p *Profile) Normalize() {
	for _, cat := range Categories() {
		if p.Items(cat) == nil {
			p.SetItems(cat, []Item{})
		}
	}
}

// Items returns the list for category c, or nil for an unknown category.
func (p *Profile) Items(c Category) []Item {
	switch c {
	case Biases:
		return p.Biases
	case Strengths:
		return p.Strengths
	case Weaknesses:
		return p.Weaknesses
	case InfluenceSkills:
		return p.InfluenceSkills
	}
	return nil
}

// SetItems replaces the list for category c. Unknown categories are ignored.
func (p *Profile) SetItems(c Category, items []Item) {
	switch c {
	case Biases:
		p.Biases = items
	case Strengths:
		p.Strengths = items
	case Weaknesses:
		p.Weaknesses = items
	case InfluenceSkills:
		p.InfluenceSkills = items
	}
}

// Text returns the value of a text field.
func (p *Profile) Text(k FieldKey) string {
	if f := p.textField(k); f != nil {
		return *f
	}
	return ""
}

// SetText sets a text field; unknown keys are ignored.
func (p *Profile) SetText(k FieldKey, v string) {
	if f := p.textField(k); f != nil {
		*f = v
	}
}

// Counter returns the value of an integer field.
func (p *Profile) Counter(k FieldKey) int {
	if f := p.counterField(k); f != nil {
		return *f
	}
	return 0
}

// SetCounter sets an integer field; unknown keys are ignored.
func (p *Profile) SetCounter(k FieldKey, v int) {
	if f := p.counterField(k); f != nil {
		*f = v
	}
}

func (p *Profile) textField(k FieldKey) *string {
	switch k {
	case FieldName:
		return &p.Name
	case FieldAppearance:
		return &p.Appearance
	case FieldBackground:
		return &p.Background
	case FieldPersonality:
		return &p.Personality
	case FieldAttitude:
		return &p.Attitude
	case FieldGoal:
		return &p.Goal
	case FieldBenefit:
		return &p.Benefit
	case FieldSpecial:
		return &p.Special
	}
	return nil
}

func (p *Profile) counterField(k FieldKey) *int {
	switch k {
	case FieldInfluenceSuccesses:
		return &p.InfluenceSuccesses
	case FieldSuccessesNeeded:
		return &p.SuccessesNeeded
	}
	return nil
}
