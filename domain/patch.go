package domain

// Patch is a partial Configuration. A nil section, nil field pointer or nil
// links slice means "not present" and leaves the underlying value alone.
type Patch struct {
	Header *HeaderPatch `json:"header,omitempty"`
	Navbar *NavbarPatch `json:"navbar,omitempty"`
	Footer *FooterPatch `json:"footer,omitempty"`
}

type HeaderPatch struct {
	Title    *string `json:"title,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

type NavbarPatch struct {
	Links []Link `json:"links,omitempty"`
}

type FooterPatch struct {
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
}

// AsPatch returns a patch with every field of c present.
func (c Configuration) AsPatch() Patch {
	links := cloneLinks(c.Navbar.Links)
	return Patch{
		Header: &HeaderPatch{Title: ptr(c.Header.Title), ImageURL: ptr(c.Header.ImageURL)},
		Navbar: &NavbarPatch{Links: links},
		Footer: &FooterPatch{
			Email:   ptr(c.Footer.Email),
			Phone:   ptr(c.Footer.Phone),
			Address: ptr(c.Footer.Address),
		},
	}
}

// Merge applies patches to base from left to right. Each patch overwrites
// only the fields it carries. The result shares no memory with its inputs.
//
// State reconstruction is always Merge(Default(), prev.AsPatch(), partial),
// so a partial that omits whole sections can never drop them.
func Merge(base Configuration, patches ...Patch) Configuration {
	out := base.Clone()
	for _, p := range patches {
		if h := p.Header; h != nil {
			setIf(&out.Header.Title, h.Title)
			setIf(&out.Header.ImageURL, h.ImageURL)
		}
		if n := p.Navbar; n != nil && n.Links != nil {
			out.Navbar.Links = cloneLinks(n.Links)
		}
		if f := p.Footer; f != nil {
			setIf(&out.Footer.Email, f.Email)
			setIf(&out.Footer.Phone, f.Phone)
			setIf(&out.Footer.Address, f.Address)
		}
	}
	return out
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func ptr(s string) *string { return &s }

// String returns a pointer to s, for building patches.
func String(s string) *string { return ptr(s) }
