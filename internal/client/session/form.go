package session

import (
	"sort"
	"strconv"
	"sync"

	"github.com/dmitrijs2005/influence/internal/model"
)

// PhotoChoice is an image picked in the form but not uploaded yet.
type PhotoChoice struct {
	Filename string
	Data     []byte
}

// Form holds the live, uncommitted field values of the profile being
// edited, keyed by field name ("name", "influence_successes") or item key
// ("biases-0"). It is rebuilt from the draft after every structural edit.
type Form struct {
	mu     sync.Mutex
	values map[string]string
	photo  *PhotoChoice
}

func newForm(p *model.Profile) *Form {
	f := &Form{values: make(map[string]string)}
	for _, k := range model.TextFields() {
		f.values[string(k)] = p.Text(k)
	}
	for _, k := range model.CounterFields() {
		f.values[string(k)] = strconv.Itoa(p.Counter(k))
	}
	for _, c := range model.Categories() {
		for i, it := range p.Items(c) {
			f.values[model.ItemKey(c, i)] = it.Text
		}
	}
	return f
}

// Set replaces the content of an existing field.
func (f *Form) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.values[key]; !ok {
		return ErrUnknownFormField
	}
	f.values[key] = value
	return nil
}

// Get returns the content of a field and whether it exists.
func (f *Form) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// Keys lists the live field keys in sorted order.
func (f *Form) Keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.values))
	for k := range f.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ChoosePhoto selects an image to upload on save. It replaces any
// earlier choice.
func (f *Form) ChoosePhoto(filename string, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.photo = &PhotoChoice{Filename: filename, Data: data}
}

// Photo returns the chosen image, or nil.
func (f *Form) Photo() *PhotoChoice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.photo
}

func (f *Form) snapshot() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out
}
