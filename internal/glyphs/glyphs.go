// Package glyphs selects the characters and styling used to draw the
// smartlog. It is pure: every method returns a string, and nothing here
// writes output.
package glyphs

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/mattn/go-isatty"
)

// Set is the glyph table for one rendering mode. Commit glyphs are keyed by
// status and by whether the commit is the current head.
type Set struct {
	Line             string
	LineWithOffshoot string
	Slash            string
	VerticalEllipsis string

	CommitVisible     string
	CommitVisibleHead string
	CommitHidden      string
	CommitHiddenHead  string
	CommitMaster      string
	CommitMasterHead  string

	color bool
}

var (
	oidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	boldStyle = lipgloss.NewStyle().Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

// Text returns the plain-ASCII glyph set used for pipes and dumb terminals.
func Text() *Set {
	return &Set{
		Line:             "|",
		LineWithOffshoot: "|",
		Slash:            "\\",
		VerticalEllipsis: ":",

		CommitVisible:     "o",
		CommitVisibleHead: "@",
		CommitHidden:      "x",
		CommitHiddenHead:  "%",
		CommitMaster:      "O",
		CommitMasterHead:  "@",
	}
}

// Pretty returns the unicode glyph set, with color enabled.
func Pretty() *Set {
	return &Set{
		Line:             "┃",
		LineWithOffshoot: "┣",
		Slash:            "━┓",
		VerticalEllipsis: "⋮",

		CommitVisible:     "◯",
		CommitVisibleHead: "●",
		CommitHidden:      "✕",
		CommitHiddenHead:  "⦻",
		CommitMaster:      "◇",
		CommitMasterHead:  "◆",

		color: true,
	}
}

// ForWriter picks the glyph set appropriate for out: unicode and color when
// it is a terminal, plain text otherwise.
func ForWriter(out io.Writer, forceText bool) *Set {
	if forceText {
		return Text()
	}
	f, ok := out.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return Text()
	}
	return Pretty()
}

// OID renders the abbreviated commit id, colored when enabled.
func (s *Set) OID(oid plumbing.Hash) string {
	short := oid.String()[:8]
	if !s.color {
		return short
	}
	return oidStyle.Render(short)
}

// Bold styles the head commit's line.
func (s *Set) Bold(text string) string {
	if !s.color {
		return text
	}
	return boldStyle.Render(text)
}

// Dim styles the gap marker between unrelated roots.
func (s *Set) Dim(text string) string {
	if !s.color {
		return text
	}
	return dimStyle.Render(text)
}
