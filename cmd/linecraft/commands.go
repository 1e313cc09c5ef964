package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/stlalpha/linecraft/internal/registry"
	"github.com/stlalpha/linecraft/internal/tailtip"
)

// builtinProvider hosts the demo shell's own commands (help, echo, cp, quit), the
// way the teacher's registerAppRunnables seeds a RunnableFunc map with the
// BBS's always-available commands before any door or menu-specific runnables
// are layered in.
type builtinProvider struct {
	descriptions map[string]*tailtip.CommandDescription
	quit         chan struct{}
}

func newBuiltinProvider() *builtinProvider {
	return &builtinProvider{
		quit: make(chan struct{}),
		descriptions: map[string]*tailtip.CommandDescription{
			"help": {
				Name:    "help",
				Summary: []string{"list the commands this shell understands"},
			},
			"echo": {
				Name:    "echo",
				Summary: []string{"write its arguments to standard output"},
				Positionals: []tailtip.PositionalDescription{
					{Name: "text", Lines: []string{"the words to print back"}},
				},
			},
			"cp": {
				Name:    "cp",
				Summary: []string{"copy src to dst"},
				Options: []tailtip.OptionDescription{
					{Keys: []string{"-r", "--recursive"}, Lines: []string{"copy directories recursively"}},
					{Keys: []string{"-v", "--verbose"}, Lines: []string{"report each file as it's copied"}},
				},
				Positionals: []tailtip.PositionalDescription{
					{Name: "src", Lines: []string{"the file to copy"}},
					{Name: "dst", Lines: []string{"the destination path"}},
				},
			},
			"quit": {
				Name:    "quit",
				Summary: []string{"exit the shell"},
			},
		},
	}
}

func (p *builtinProvider) Name() string { return "builtin" }

func (p *builtinProvider) CommandNames() []string {
	names := make([]string, 0, len(p.descriptions))
	for n := range p.descriptions {
		names = append(names, n)
	}
	return names
}

func (p *builtinProvider) AliasMap() map[string]string {
	return map[string]string{"q": "quit", "?": "help"}
}

func (p *builtinProvider) Info(name string) []string {
	if d, ok := p.descriptions[name]; ok {
		return d.Summary
	}
	return nil
}

func (p *builtinProvider) Has(name string) bool {
	_, ok := p.descriptions[name]
	return ok
}

func (p *builtinProvider) CompileCompleters() map[string][]registry.Completer {
	out := make(map[string][]registry.Completer)
	for n := range p.descriptions {
		out[n] = nil
	}
	return out
}

func (p *builtinProvider) Description(args []string) *tailtip.CommandDescription {
	if len(args) == 0 {
		return nil
	}
	return p.descriptions[args[0]]
}

func (p *builtinProvider) Invoke(ctx context.Context, name string, args []string) (int, error) {
	sess, _ := registry.CurrentSession(ctx)
	var stdout io.Writer = io.Discard
	if sess != nil && sess.Stdout != nil {
		stdout = sess.Stdout
	}

	switch name {
	case "help":
		names := p.CommandNames()
		fmt.Fprintf(stdout, "commands: %s\n", strings.Join(names, ", "))
		return 0, nil
	case "echo":
		fmt.Fprintln(stdout, strings.Join(args, " "))
		return 0, nil
	case "cp":
		fmt.Fprintf(stdout, "cp: (demo) would copy %s\n", strings.Join(args, " "))
		return 0, nil
	case "quit":
		close(p.quit)
		return 0, nil
	default:
		return 127, fmt.Errorf("builtin: no such command %q", name)
	}
}
