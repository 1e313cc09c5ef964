// Command linecraft is a small interactive shell that wires the four
// linecraft packages together over the controlling terminal: ioqueue feeds
// keystrokes through a pump, tailtip turns the buffer into a status line and
// inline tail tip, styledtext renders both to ANSI, and registry parses and
// dispatches the accepted line. Grounded on the overall shape of the
// teacher's cmd/vision3/main.go (flag parsing, config load, then a long-lived
// server loop), scaled down from a multi-session SSH listener to one local
// terminal session.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anmitsu/go-shlex"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/stlalpha/linecraft/internal/clog"
	"github.com/stlalpha/linecraft/internal/ioqueue"
	"github.com/stlalpha/linecraft/internal/lcconfig"
	"github.com/stlalpha/linecraft/internal/registry"
	"github.com/stlalpha/linecraft/internal/styledtext"
	"github.com/stlalpha/linecraft/internal/tailtip"
)

func main() {
	configPath := flag.String("config", "", "path to a linecraft JSON config file")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	clog.DebugEnabled = *debug

	cfg := lcconfig.Default()
	if *configPath != "" {
		loaded, err := lcconfig.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "linecraft: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	reg := registry.New(cfg)
	builtin := newBuiltinProvider()
	reg.Register(builtin)
	defer reg.Close()

	parser := shellParser{reg: reg}
	engine := tailtip.NewEngine(parser, resolverFor(reg), cfg.StatusBarHeight)
	caps := styledtext.DefaultCapabilities()
	caps.DisableAltCharset = cfg.DisableAlternateCharset

	stdinFd := int(os.Stdin.Fd())
	if !isatty.IsTerminal(uintptr(stdinFd)) {
		runPiped(reg, builtin.quit)
		return
	}

	state, err := term.MakeRaw(stdinFd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "linecraft: entering raw mode: %v\n", err)
		os.Exit(1)
	}
	defer term.Restore(stdinFd, state)

	pump := ioqueue.NewCharPump(cfg.PumpCapacity, cfg.CloseMode)
	go feedStdin(pump)

	runInteractive(reg, engine, caps, pump, builtin.quit)
}

// feedStdin reads UTF-8 runes from the controlling terminal and writes them
// into pump, the way the teacher's readByteWithTimeout loop sat between a
// raw file descriptor and the editor's buffered input (internal/editor/input.go),
// generalized here into a producer for ioqueue's pump abstraction.
func feedStdin(pump *ioqueue.CharPump) {
	r := bufio.NewReader(os.Stdin)
	for {
		ch, _, err := r.ReadRune()
		if err != nil {
			pump.Close()
			return
		}
		if err := pump.Pump().Write(ch); err != nil {
			return
		}
	}
}

// shellParser adapts the registry's pipeline tokenizer to tailtip.Parser.
type shellParser struct {
	reg *registry.Registry
}

func (p shellParser) Args(line string) []string {
	words, err := shlex.Split(line, true)
	if err != nil {
		return strings.Fields(line)
	}
	return words
}

func (p shellParser) CommandOf(token string) string {
	return p.reg.CommandOf(token)
}

func resolverFor(reg *registry.Registry) tailtip.Resolver {
	return func(name string) (*tailtip.CommandDescription, error) {
		return reg.Describe(name), nil
	}
}

// runPiped drives the registry directly against stdin/stdout, skipping the
// raw-terminal read loop, for non-interactive (piped or redirected) input —
// the same fallback the teacher's terminal setup takes when a session isn't
// backed by a real pty.
func runPiped(reg *registry.Registry, quit chan struct{}) {
	sess := &registry.Session{Stdout: os.Stdout, Stderr: os.Stderr, Stdin: os.Stdin}
	ctx := registry.WithSession(context.Background(), sess)
	scan := bufio.NewScanner(os.Stdin)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" {
			continue
		}
		if _, err := reg.Execute(ctx, line); err != nil {
			fmt.Fprintf(os.Stderr, "linecraft: %v\n", err)
		}
		select {
		case <-quit:
			return
		default:
		}
	}
}

// runInteractive is the raw-mode read loop: it accumulates a line buffer,
// runs the tail-tip engine after every buffer-affecting keystroke, and
// dispatches the accepted line through the registry.
func runInteractive(reg *registry.Registry, engine *tailtip.Engine, caps styledtext.Capabilities, pump *ioqueue.CharPump, quit chan struct{}) {
	var line []rune
	cursor := 0
	sess := &registry.Session{Stdout: os.Stdout, Stderr: os.Stderr}
	ctx := registry.WithSession(context.Background(), sess)

	redraw := func(result tailtip.Result) {
		fmt.Fprint(os.Stdout, "\r\x1b[2K> ", string(line))
		fmt.Fprint(os.Stdout, "\r\n\x1b[2K")
		os.Stdout.Write(styledtext.ToANSI(result.Status, caps))
		fmt.Fprint(os.Stdout, "\x1b[1A\r\x1b[2K> ", string(line))
	}

	fmt.Fprint(os.Stdout, "> ")
	for {
		select {
		case <-quit:
			fmt.Fprint(os.Stdout, "\r\n")
			return
		default:
		}

		v, sentinel, err := pump.Pump().Read(200 * time.Millisecond)
		if err != nil {
			return
		}
		if sentinel == ioqueue.EOF {
			return
		}
		if sentinel == ioqueue.ReadExpired {
			continue
		}

		backward := false
		switch v {
		case '\r', '\n':
			fmt.Fprint(os.Stdout, "\r\n")
			text := string(line)
			engine.AcceptLine()
			if strings.TrimSpace(text) != "" {
				if _, err := reg.Execute(ctx, text); err != nil {
					fmt.Fprintf(os.Stdout, "linecraft: %v\r\n", err)
				}
			}
			line = line[:0]
			cursor = 0
			fmt.Fprint(os.Stdout, "> ")
			continue
		case 3: // Ctrl-C
			fmt.Fprint(os.Stdout, "\r\n")
			return
		case 127, 8: // backspace/delete
			if cursor > 0 {
				line = append(line[:cursor-1], line[cursor:]...)
				cursor--
			}
			backward = true
		default:
			line = append(line[:cursor], append([]rune{v}, line[cursor:]...)...)
			cursor++
		}

		result := engine.Evaluate(tailtip.BufferEvent{Line: string(line), Cursor: cursor, BackwardDelete: backward})
		redraw(result)
	}
}
