package registry

import (
	"context"
	"fmt"

	"github.com/stlalpha/linecraft/internal/lcconfig"
	"github.com/stlalpha/linecraft/internal/tailtip"
)

type stubCompleter struct{ words []string }

func (c stubCompleter) Complete(word string) []Candidate {
	var out []Candidate
	for _, w := range c.words {
		out = append(out, Candidate{Value: w})
	}
	return out
}

// fakeProvider is a minimal Provider backed by closures, standing in for a
// real command source in tests.
type fakeProvider struct {
	name     string
	handlers map[string]func(ctx context.Context, args []string) (int, error)
	aliases  map[string]string
}

func (p *fakeProvider) Name() string { return p.name }

func (p *fakeProvider) CommandNames() []string {
	names := make([]string, 0, len(p.handlers))
	for n := range p.handlers {
		names = append(names, n)
	}
	return names
}

func (p *fakeProvider) AliasMap() map[string]string {
	if p.aliases == nil {
		return map[string]string{}
	}
	return p.aliases
}

func (p *fakeProvider) Info(name string) []string {
	if _, ok := p.handlers[name]; ok {
		return []string{name}
	}
	return nil
}

func (p *fakeProvider) Has(name string) bool {
	_, ok := p.handlers[name]
	return ok
}

func (p *fakeProvider) CompileCompleters() map[string][]Completer {
	out := make(map[string][]Completer)
	for n := range p.handlers {
		out[n] = []Completer{stubCompleter{words: []string{n}}}
	}
	return out
}

func (p *fakeProvider) Description(args []string) *tailtip.CommandDescription {
	return nil
}

func (p *fakeProvider) Invoke(ctx context.Context, name string, args []string) (int, error) {
	h, ok := p.handlers[name]
	if !ok {
		return 127, fmt.Errorf("fakeProvider: no handler for %q", name)
	}
	return h(ctx, args)
}

func newTestRegistry() *Registry {
	return New(lcconfig.Default())
}
