package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"dashboard/domain"

	"github.com/charmbracelet/lipgloss/v2"
	"golang.org/x/term"
)

var (
	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// shouldUseColor returns true when ANSI colors should be used on stdout.
// It respects NO_COLOR, CLICOLOR_FORCE, CLICOLOR, and TTY detection.
func shouldUseColor() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

type printer struct {
	w     io.Writer
	color bool
}

func (p printer) section(name string) {
	if p.color {
		name = sectionStyle.Render(name)
	}
	fmt.Fprintln(p.w, name)
}

func (p printer) field(label, value string) {
	label += ":"
	if p.color {
		label = labelStyle.Render(label)
	}
	fmt.Fprintf(p.w, "  %s %s\n", label, value)
}

func (p printer) configuration(cfg domain.Configuration) {
	p.section("Header")
	p.field("Title", cfg.Header.Title)
	p.field("Image", cfg.Header.ImageURL)

	p.section("Navbar")
	for i, l := range cfg.Navbar.Links {
		p.field(fmt.Sprintf("[%d]", i), fmt.Sprintf("%s -> %s", l.Label, l.URL))
	}

	p.section("Footer")
	p.field("Email", cfg.Footer.Email)
	p.field("Phone", cfg.Footer.Phone)
	p.field("Address", strings.ReplaceAll(cfg.Footer.Address, "\n", " / "))
}

func (p printer) components(comps []domain.Component) {
	for _, c := range comps {
		p.section(c.Type)
		p.field("ID", c.ID)
		p.field("Data", string(c.Data))
		p.field("Updated", c.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
