package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/josephlewis42/revshell/core/config"
	"github.com/mattn/go-isatty"
)

var (
	ColorBoldBlue  = color.New(color.FgBlue, color.Bold)
	ColorBoldCyan  = color.New(color.FgCyan, color.Bold)
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
)

// ColorPrinter writes to an output, colorizing text when the mode calls
// for it.
type ColorPrinter struct {
	mode string
	out  io.Writer
}

// NewColorPrinter creates a printer for mode, one of always, auto or never.
func NewColorPrinter(mode string, out io.Writer) (*ColorPrinter, error) {
	if err := validator.New().Var(mode, "oneof=always auto never"); err != nil {
		return nil, fmt.Errorf("invalid color %q: must be one of always, auto or never", mode)
	}
	return &ColorPrinter{mode: mode, out: out}, nil
}

func (c *ColorPrinter) ShouldColor() bool {
	switch c.mode {
	case config.ColorNever:
		return false
	case config.ColorAlways:
		return true
	default:
		f, ok := c.out.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}

// Sprint returns s in the given color if the output should be colored.
func (c *ColorPrinter) Sprint(col *color.Color, s string) string {
	if !c.ShouldColor() {
		return s
	}

	// The package wide setting disables color when stdout isn't a terminal,
	// which isn't necessarily the writer in use.
	forced := *col
	forced.EnableColor()
	return forced.Sprint(s)
}

func (c *ColorPrinter) Println(s string) {
	fmt.Fprintln(c.out, s)
}
