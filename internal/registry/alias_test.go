package registry

import (
	"context"
	"testing"
)

func TestAliasResolution(t *testing.T) {
	r := newTestRegistry()
	p := &fakeProvider{
		name: "core",
		handlers: map[string]func(context.Context, []string) (int, error){
			"quit": func(ctx context.Context, args []string) (int, error) { return 0, nil },
		},
		aliases: map[string]string{"q": "quit"},
	}
	r.Register(p)

	if !r.Has("q") {
		t.Fatalf("expected Has(%q) to resolve through the alias", "q")
	}
	if got := r.CommandOf("q"); got != "quit" {
		t.Fatalf("expected CommandOf(%q) == %q, got %q", "q", "quit", got)
	}

	completers := r.CompileCompleters()
	aliased, ok := completers["q"]
	if !ok || len(aliased) == 0 {
		t.Fatalf("expected compiled completers to include an entry for the alias %q", "q")
	}
	canon, ok := completers["quit"]
	if !ok || len(canon) == 0 {
		t.Fatalf("expected compiled completers to include the canonical entry for %q", "quit")
	}
	if len(aliased) != len(canon) {
		t.Fatalf("expected the alias's completers to mirror the canonical command's, got %d vs %d", len(aliased), len(canon))
	}
}
