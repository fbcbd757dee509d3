package domain

// Configuration is the editable dashboard: exactly three sections.
type Configuration struct {
	Header Header `json:"header"`
	Navbar Navbar `json:"navbar"`
	Footer Footer `json:"footer"`
}

type Header struct {
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
}

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Navbar links are rendered in order. A link is addressed by its index.
type Navbar struct {
	Links []Link `json:"links"`
}

type Footer struct {
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// Default returns a fresh copy of the placeholder configuration used when
// nothing has been saved yet.
func Default() Configuration {
	return Configuration{
		Header: Header{
			Title:    "Welcome to My Dashboard",
			ImageURL: "",
		},
		Navbar: Navbar{
			Links: []Link{
				{Label: "Home", URL: "/"},
				{Label: "About", URL: "/about"},
				{Label: "Contact", URL: "/contact"},
			},
		},
		Footer: Footer{
			Email:   "contact@example.com",
			Phone:   "+1234567890",
			Address: "123 Main St, City",
		},
	}
}

// Clone returns a copy that shares no slices with c.
func (c Configuration) Clone() Configuration {
	c.Navbar.Links = cloneLinks(c.Navbar.Links)
	return c
}

func cloneLinks(links []Link) []Link {
	out := make([]Link, len(links))
	copy(out, links)
	return out
}
