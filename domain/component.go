package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Component is one stored record of the remote store. Type is the natural
// key; Data is an opaque JSON payload replaced wholesale on upsert.
type Component struct {
	ID        string          `json:"id"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Component types used for the dashboard sections.
const (
	SectionHeader = "header"
	SectionNavbar = "navbar"
	SectionFooter = "footer"
)

// Sections lists the section types in render order.
var Sections = []string{SectionHeader, SectionNavbar, SectionFooter}

// ComponentsOf returns the payload of each section of c keyed by type.
func ComponentsOf(c Configuration) (map[string]json.RawMessage, error) {
	sections := map[string]any{
		SectionHeader: c.Header,
		SectionNavbar: Navbar{Links: cloneLinks(c.Navbar.Links)},
		SectionFooter: c.Footer,
	}
	out := make(map[string]json.RawMessage, len(sections))
	for typ, v := range sections {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("marshaling %s: %w", typ, err)
		}
		out[typ] = data
	}
	return out, nil
}

// PatchFromComponents turns stored section records into a Patch. Records of
// other types are ignored; fields missing from a payload stay absent.
func PatchFromComponents(components []Component) (Patch, error) {
	var p Patch
	for _, c := range components {
		if len(c.Data) == 0 || string(c.Data) == "null" {
			continue
		}
		var err error
		switch c.Type {
		case SectionHeader:
			p.Header = new(HeaderPatch)
			err = json.Unmarshal(c.Data, p.Header)
		case SectionNavbar:
			p.Navbar = new(NavbarPatch)
			err = json.Unmarshal(c.Data, p.Navbar)
		case SectionFooter:
			p.Footer = new(FooterPatch)
			err = json.Unmarshal(c.Data, p.Footer)
		}
		if err != nil {
			return Patch{}, fmt.Errorf("decoding %s component: %w", c.Type, err)
		}
	}
	return p, nil
}
