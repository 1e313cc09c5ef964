package tailtip

import (
	"strings"

	"github.com/stlalpha/linecraft/internal/styledtext"
)

// Resolver looks up a CommandDescription by command name when the cache
// holds nothing for it. It returns (nil, nil) for "no such command" rather
// than an error.
type Resolver func(name string) (*CommandDescription, error)

// SuggestionSource controls which suggestion channel the reader should
// present: the normal completer popup, or the inline tail tip.
type SuggestionSource int

const (
	SuggestCompleter SuggestionSource = iota
	SuggestTailTip
)

// Result is what the reader paints after a buffer-affecting widget runs: a
// tail tip to render inline past the cursor, a status-bar description, and
// which suggestion channel is active.
type Result struct {
	TailTip                     styledtext.Text
	Status                      styledtext.Text
	Source                      SuggestionSource
	CompleterSuggestionsEnabled bool
}

func emptyResult() Result {
	return Result{
		TailTip:                     styledtext.Plain(""),
		Status:                      styledtext.Plain(""),
		Source:                      SuggestCompleter,
		CompleterSuggestionsEnabled: true,
	}
}

// BufferEvent describes the buffer state after a widget that may affect the
// tail tip has run.
type BufferEvent struct {
	Line   string
	Cursor int
	// BackwardDelete is true when the widget that produced this state was
	// a backward-delete (e.g. backspace).
	BackwardDelete bool
}

// Engine implements the description/tail-tip state machine: context
// classification, the three-tier cache, and the doCommandTailTip
// option/positional walk.
type Engine struct {
	Parser         Parser
	Resolver       Resolver
	Cache          *Cache
	CachingEnabled bool
	StatusHeight   int

	last Result
}

// NewEngine returns an Engine with a fresh cache.
func NewEngine(parser Parser, resolver Resolver, statusHeight int) *Engine {
	return &Engine{
		Parser:       parser,
		Resolver:     resolver,
		Cache:        NewCache(),
		StatusHeight: statusHeight,
		last:         emptyResult(),
	}
}

// AcceptLine clears the temporary cache tier; call once the reader accepts
// the current line.
func (e *Engine) AcceptLine() {
	e.Cache.ClearTemporary()
}

// Evaluate runs the tail-tip state machine for the buffer state after a
// buffer-affecting widget.
func (e *Engine) Evaluate(ev BufferEvent) Result {
	if ev.Cursor < 0 {
		ev.Cursor = 0
	}
	if ev.Cursor > len(ev.Line) {
		ev.Cursor = len(ev.Line)
	}

	args := e.Parser.Args(ev.Line)
	cls := ClassifyLine(ev.Line, e.Parser, ev.Cursor)

	desc, found := e.describe(cls)
	if !found {
		e.last = emptyResult()
		return e.last
	}
	if desc.Invalid {
		return e.last
	}

	if cls.Type != ContextCommand {
		e.last = e.renderMainDescription(desc, lastArg(args))
		return e.last
	}

	e.last = e.doCommandTailTip(desc, args, ev)
	return e.last
}

func lastArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[len(args)-1]
}

// describe resolves cls.Command against the cache, invoking the resolver
// and applying the three-tier storage rule on a miss.
func (e *Engine) describe(cls Classification) (*CommandDescription, bool) {
	if d, ok := e.Cache.lookup(cls.Command); ok {
		if d == nil {
			return nil, false
		}
		return d, true
	}
	if e.Resolver == nil {
		return nil, false
	}

	d, err := e.Resolver(cls.Command)
	if err != nil {
		d = nil
	}

	if d == nil {
		e.Cache.storeTemporaryNull(cls.Command)
		return nil, false
	}
	if cls.Type == ContextCommand {
		if e.CachingEnabled {
			e.Cache.storePersistent(cls.Command, d)
		} else {
			e.Cache.storeVolatile(cls.Command, d)
		}
	} else {
		e.Cache.storeTemporary(cls.Command, d)
	}
	return d, true
}

func (e *Engine) renderMainDescription(desc *CommandDescription, lastTok string) Result {
	lines := desc.Summary
	if lastTok != "" {
		if matches := desc.optionsMatching(lastTok); len(matches) > 0 {
			return Result{
				Status:                      packOptionMatches(matches, e.StatusHeight),
				Source:                      SuggestCompleter,
				CompleterSuggestionsEnabled: true,
			}
		}
	}
	return Result{
		Status:                      layoutDescription(lines, e.StatusHeight),
		Source:                      SuggestCompleter,
		CompleterSuggestionsEnabled: true,
	}
}

// doCommandTailTip implements the COMMAND-context branch of the state
// machine: it counts positional arguments so far, reacts to a
// backward-delete widget by switching to the tail-tip suggestion channel,
// and otherwise dispatches on whether the last token is an option or a
// positional value.
func (e *Engine) doCommandTailTip(desc *CommandDescription, args []string, ev BufferEvent) Result {
	if len(args) == 0 {
		return e.last
	}

	argnum := countPositionals(args, desc)
	source := SuggestCompleter
	completerEnabled := true

	if ev.BackwardDelete {
		source = SuggestTailTip
		completerEnabled = false
		// spec.md §9's open question: the argnum adjustment when the
		// erased character sits between two value-taking short options is
		// treated as a no-op until a regression test requires otherwise.
	}

	if !strings.HasSuffix(ev.Line[:ev.Cursor], " ") {
		return e.renderMainDescription(desc, lastArg(args))
	}

	last := lastArg(args)
	if strings.HasPrefix(last, "-") {
		return e.describeOption(desc, last, source, completerEnabled)
	}
	return e.describePositional(desc, argnum, source, completerEnabled)
}

// countPositionals counts tokens in args[1:] that are not options and do
// not follow a short option known to take a value.
func countPositionals(args []string, desc *CommandDescription) int {
	n := 0
	skipNext := false
	for _, a := range args[1:] {
		if skipNext {
			skipNext = false
			continue
		}
		if strings.HasPrefix(a, "-") {
			if matches := desc.optionsMatching(a); len(matches) > 0 && matches[0].TakesValue && !strings.Contains(a, "=") {
				skipNext = true
			}
			continue
		}
		n++
	}
	return n
}

func (e *Engine) describeOption(desc *CommandDescription, token string, source SuggestionSource, completerEnabled bool) Result {
	body := strings.TrimPrefix(token, "-")
	isCluster := !strings.HasPrefix(token, "--") && len(token) >= 4

	key := token
	switch {
	case isCluster:
		firstKey := "-" + string(body[0])
		if m := desc.optionsMatching(firstKey); len(m) > 0 && m[0].TakesValue {
			key = firstKey
		} else {
			key = "-" + string(body[len(body)-1])
			source = SuggestTailTip
			completerEnabled = false
		}
	default:
		if eq := strings.IndexByte(token, '='); eq != -1 {
			key = token[:eq]
		} else {
			source = SuggestTailTip
			completerEnabled = false
		}
	}

	matches := desc.optionsMatching(key)
	return Result{
		Status:                      packOptionMatches(matches, e.StatusHeight),
		Source:                      source,
		CompleterSuggestionsEnabled: completerEnabled,
	}
}

func (e *Engine) describePositional(desc *CommandDescription, argnum int, source SuggestionSource, completerEnabled bool) Result {
	if len(desc.Positionals) == 0 {
		return e.renderMainDescription(desc, "")
	}

	// idx names the next, not-yet-typed positional: argnum positionals have
	// already been typed (0-indexed, so positional[argnum] is next up).
	// This also matches the first name the tail tip itself lists.
	idx := argnum
	if idx >= len(desc.Positionals) {
		idx = len(desc.Positionals) - 1
	}
	lines := desc.Positionals[idx].Lines

	start := argnum
	if start < 0 {
		start = 0
	}
	var tipBuilder strings.Builder
	for i := start; i < len(desc.Positionals); i++ {
		tipBuilder.WriteString(desc.Positionals[i].Name)
		tipBuilder.WriteString(" ")
	}
	tip := styledtext.Plain(tipBuilder.String())

	if idx >= 0 && idx < len(desc.Positionals) && desc.Positionals[idx].Optional() {
		tip = styledtext.Plain(desc.Positionals[idx].Name)
		lines = desc.Positionals[idx].Lines
	}

	return Result{
		TailTip:                     tip,
		Status:                      layoutDescription(lines, e.StatusHeight),
		Source:                      source,
		CompleterSuggestionsEnabled: completerEnabled,
	}
}
