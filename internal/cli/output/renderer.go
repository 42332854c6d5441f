// Package output renders command results as styled text or JSON, adapting
// to whether stdout is a terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"

	"github.com/complyhq/comply/pkg/core"
)

// Mode selects the render form.
type Mode string

// Render modes.
const (
	ModeAuto Mode = "auto" // text, coloured when stdout is a TTY
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// Renderer writes command output.
type Renderer struct {
	out   io.Writer
	errW  io.Writer
	mode  Mode
	isTTY bool
}

// NewRenderer creates a renderer for the given writers and mode.
func NewRenderer(out, errW io.Writer, mode Mode) *Renderer {
	isTTY := false
	if f, ok := out.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, errW: errW, mode: mode, isTTY: isTTY}
}

// EffectiveMode resolves ModeAuto to a concrete mode.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode == ModeAuto {
		return ModeText
	}
	return r.mode
}

// Out returns the output writer.
func (r *Renderer) Out() io.Writer { return r.out }

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Println writes a plain line to the output writer.
func (r *Renderer) Println(a ...any) {
	fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to the output writer.
func (r *Renderer) Printf(format string, a ...any) {
	fmt.Fprintf(r.out, format, a...)
}

// Success writes a confirmation line.
func (r *Renderer) Success(msg string) {
	if r.isTTY {
		fmt.Fprintln(r.out, text.FgGreen.Sprint("✓ "+msg))
		return
	}
	fmt.Fprintln(r.out, msg)
}

// Error writes an error line to the error writer.
func (r *Renderer) Error(msg string) {
	if r.isTTY {
		fmt.Fprintln(r.errW, text.FgRed.Sprint(msg))
		return
	}
	fmt.Fprintln(r.errW, msg)
}

// Severity renders a severity name, coloured on terminals.
func (r *Renderer) Severity(sev core.Severity) string {
	if !r.isTTY {
		return sev.String()
	}
	switch sev {
	case core.SeverityError:
		return text.FgRed.Sprint(sev)
	case core.SeverityWarning:
		return text.FgYellow.Sprint(sev)
	case core.SeverityInfo:
		return text.FgCyan.Sprint(sev)
	default:
		return sev.String()
	}
}
