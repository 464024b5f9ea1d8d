package render

import (
	"io"
	"os"

	textmodel "github.com/TakenPilot/text-model"
	"github.com/fatih/color"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// ConsoleFixedWidth is a formatting driver for console output with a fixed
// width font. It uses colors to visualize formatting kinds, where the
// concrete color profile depends on the terminal abilities.
type ConsoleFixedWidth struct {
	colors map[string]*color.Color
}

// NewConsoleFixedWidth creates a console driver with a given color
// palette, mapping formatting kind names to colors. A void palette is
// substituted by a default one covering the kinds of the default tag
// registry.
func NewConsoleFixedWidth(colors map[string]*color.Color) *ConsoleFixedWidth {
	fw := &ConsoleFixedWidth{colors: colors}
	if fw.colors == nil {
		fw.colors = makeDefaultPalette()
	}
	return fw
}

func makeDefaultPalette() map[string]*color.Color {
	return map[string]*color.Color{
		"bold":     color.New(color.Bold),
		"emphasis": color.New(color.Italic),
		"strike":   color.New(color.CrossedOut),
		"code":     color.New(color.FgYellow),
		"mark":     color.New(color.BgYellow, color.FgBlack),
		"link":     color.New(color.FgBlue, color.Underline),
	}
}

// Preamble is part of interface Format; it is a no-op for consoles.
func (fw *ConsoleFixedWidth) Preamble(w io.Writer) {}

// Postamble is part of interface Format; it is a no-op for consoles.
func (fw *ConsoleFixedWidth) Postamble(w io.Writer) {}

// StyledText prints a run of uniformly formatted text in the color of the
// first of its kinds carrying a palette entry. (Part of interface Format)
func (fw *ConsoleFixedWidth) StyledText(s string, kinds []string, w io.Writer) {
	for _, kind := range kinds {
		if c, ok := fw.colors[kind]; ok {
			c.Fprint(w, s)
			return
		}
	}
	w.Write([]byte(s))
}

// Newline prints a newline character. (Part of interface Format)
func (fw *ConsoleFixedWidth) Newline(w io.Writer) {
	w.Write([]byte{'\n'})
}

var _ Format = &ConsoleFixedWidth{}

// Print formats a model and prints it to stdout. With a void config, the
// configuration is derived from the current terminal's properties.
func (fw *ConsoleFixedWidth) Print(m textmodel.Model, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return Output(m, os.Stdout, config, fw)
}

// ConfigFromTerminal creates a configuration with the line width set from
// the current terminal's width. Without a terminal attached, the line
// width defaults to 65 en.
func ConfigFromTerminal() *Config {
	config := &Config{}
	if term.IsTerminal(0) {
		w, _, err := term.GetSize(0)
		if err != nil {
			config.LineWidth = 65
		} else if w > 65 {
			config.LineWidth = w - 10
		} else if w > 30 {
			config.LineWidth = w - 5
		} else if w > 10 {
			config.LineWidth = w
		} else {
			config.LineWidth = 10
		}
	} else {
		config.LineWidth = 65
	}
	tracer().Infof("render: setting line width to %d en", config.LineWidth)
	return config
}
