package tailtip

import "strings"

// OptionDescription documents one command option, keyed by any of its
// spellings (e.g. "-r", "--recursive"), generalized from
// menu.CommandRecord's single Keys field into a per-option record.
type OptionDescription struct {
	Keys       []string
	TakesValue bool
	Lines      []string
}

// Matches reports whether opt (as typed so far, e.g. "-" or "-r") is a
// prefix of any of o's spellings, per the option pattern-matching rule: an
// option opt matches an entry key if any whitespace-separated token of key
// starts with opt.
func (o OptionDescription) Matches(opt string) bool {
	for _, k := range o.Keys {
		if strings.HasPrefix(k, opt) {
			return true
		}
	}
	return false
}

func (o OptionDescription) header() string {
	return strings.Join(o.Keys, " ")
}

// PositionalDescription documents one positional argument slot. A Name
// beginning with '[' marks the slot optional.
type PositionalDescription struct {
	Name  string
	Lines []string
}

// Optional reports whether p is an optional positional slot.
func (p PositionalDescription) Optional() bool {
	return strings.HasPrefix(p.Name, "[")
}

// CommandDescription is the full description record the engine caches and
// renders: a main summary plus per-option and per-positional detail.
type CommandDescription struct {
	Name        string
	Summary     []string
	Options     []OptionDescription
	Positionals []PositionalDescription

	// Invalid marks a description that is present but should not yet be
	// displayed (e.g. collected while still being resolved elsewhere); the
	// engine leaves the previous result on screen rather than clearing it.
	Invalid bool
}

// optionsMatching returns every option whose Matches(opt) holds, in
// declaration order.
func (d *CommandDescription) optionsMatching(opt string) []OptionDescription {
	var out []OptionDescription
	for _, o := range d.Options {
		if o.Matches(opt) {
			out = append(out, o)
		}
	}
	return out
}
