// Package tailtip implements the command description and inline tail-tip
// engine: context classification of a command line under the cursor, a
// three-tier description cache, the tail-tip state machine that decides what
// to show after each buffer-affecting widget, and the description layout
// algorithm that packs multi-line descriptions into the status bar.
//
// Output is produced as styledtext.Text so the reader can hand it straight
// to styledtext.ToANSI without a separate rendering pass.
//
// Grounded on the teacher's internal/editor/commands.go (per-command
// argument metadata keyed by name) and internal/menu/command.go's
// CommandRecord (the fixed keys/command/ACS shape), generalized from the
// BBS's closed WordStar command set into an open, registrable description
// table.
package tailtip
