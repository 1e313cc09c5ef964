package registry

import (
	"context"

	"github.com/stlalpha/linecraft/internal/tailtip"
)

// Candidate is one completion proposal surfaced by a provider's compiled
// completers.
type Candidate struct {
	Value    string
	Display  string
	Group    string // the provider's Name(), for grouping in a completion menu
	Descr    string // first info line
	Complete bool
}

// Completer proposes completions for a partially typed word.
type Completer interface {
	Complete(word string) []Candidate
}

// Provider is one host of commands: a concern-scoped source of names,
// aliases, descriptions, completers, and invocation, generalized from the
// teacher's RunnableFunc registration map.
type Provider interface {
	// Name identifies the provider, used as a completion candidate's Group
	// and in trace messages.
	Name() string
	// CommandNames lists every canonical command name this provider hosts.
	CommandNames() []string
	// AliasMap maps alias -> canonical command name.
	AliasMap() map[string]string
	// Info returns the description lines for name, or nil if unknown.
	Info(name string) []string
	// Has reports whether name (already resolved past aliasing) is hosted
	// by this provider.
	Has(name string) bool
	// CompileCompleters returns, for each command name, the completers
	// that apply to its arguments.
	CompileCompleters() map[string][]Completer
	// Description returns the tail-tip engine's description record for a
	// command given its argv, or nil if none applies.
	Description(args []string) *tailtip.CommandDescription
	// Invoke runs name with args; the ambient Session is available via
	// CurrentSession(ctx). It returns the command's exit code.
	Invoke(ctx context.Context, name string, args []string) (int, error)
}

// Closer is implemented by a Provider that holds resources needing release
// at registry Cleanup/Close time. Optional — not every provider needs it.
type Closer interface {
	Close() error
}
