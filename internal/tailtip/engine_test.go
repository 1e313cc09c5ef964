package tailtip

import "testing"

func cpDescription() *CommandDescription {
	return &CommandDescription{
		Name:    "cp",
		Summary: []string{"cp SRC DST", "copy a file"},
		Options: []OptionDescription{
			{Keys: []string{"-r", "--recursive"}, Lines: []string{"copy directories recursively"}},
		},
		Positionals: []PositionalDescription{
			{Name: "src", Lines: []string{"source path"}},
			{Name: "dst", Lines: []string{"destination path"}},
		},
	}
}

func newTestEngine(desc *CommandDescription) *Engine {
	resolver := func(name string) (*CommandDescription, error) {
		if name == desc.Name {
			return desc, nil
		}
		return nil, nil
	}
	return NewEngine(identityParser{}, resolver, 4)
}

func TestTailTipFormationThreePositionals(t *testing.T) {
	desc := &CommandDescription{
		Name: "cmd",
		Positionals: []PositionalDescription{
			{Name: "A", Lines: []string{"first"}},
			{Name: "B", Lines: []string{"second"}},
			{Name: "C", Lines: []string{"third"}},
		},
	}
	e := newTestEngine(desc)

	cases := []struct {
		line string
		want string
	}{
		{"cmd ", "A B C "},
		{"cmd valA ", "B C "},
		{"cmd valA valB ", "C "},
	}
	for _, c := range cases {
		res := e.Evaluate(BufferEvent{Line: c.line, Cursor: len(c.line)})
		if got := res.TailTip.String(); got != c.want {
			t.Fatalf("line %q: expected tail tip %q, got %q", c.line, c.want, got)
		}
	}
}

func TestDescribeOptionsFilteredByBareDash(t *testing.T) {
	e := newTestEngine(cpDescription())
	res := e.Evaluate(BufferEvent{Line: "cp -", Cursor: len("cp -")})
	if res.Status.String() == "" {
		t.Fatalf("expected a non-empty option description for a bare dash")
	}
}

func TestDescribePositionalShowsDestination(t *testing.T) {
	e := newTestEngine(cpDescription())
	res := e.Evaluate(BufferEvent{Line: "cp foo ", Cursor: len("cp foo ")})
	if got := res.TailTip.String(); got != "dst " {
		t.Fatalf("expected tail tip %q, got %q", "dst ", got)
	}
}

func TestEvaluateUnknownCommandClears(t *testing.T) {
	e := newTestEngine(cpDescription())
	res := e.Evaluate(BufferEvent{Line: "nope ", Cursor: len("nope ")})
	if res.Status.Len() != 0 || res.TailTip.Len() != 0 {
		t.Fatalf("expected an empty result for an unresolvable command")
	}
}

func TestEvaluateBackwardDeleteSwitchesToTailTip(t *testing.T) {
	e := newTestEngine(cpDescription())
	res := e.Evaluate(BufferEvent{Line: "cp foo ", Cursor: len("cp foo "), BackwardDelete: true})
	if res.Source != SuggestTailTip {
		t.Fatalf("expected backward-delete to select the tail-tip suggestion source")
	}
	if res.CompleterSuggestionsEnabled {
		t.Fatalf("expected backward-delete to disable completer suggestions")
	}
}

func TestAcceptLineClearsTemporaryTier(t *testing.T) {
	e := newTestEngine(cpDescription())
	e.Cache.storeTemporary("tmp", &CommandDescription{Name: "tmp"})
	e.AcceptLine()
	if _, ok := e.Cache.lookup("tmp"); ok {
		t.Fatalf("expected AcceptLine to clear the temporary tier")
	}
}
