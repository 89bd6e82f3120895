package domain

// Profile stores saved search defaults applied when command flags are
// omitted.
type Profile struct {
	Name        string `json:"name"`
	IsDefault   bool   `json:"is_default"`
	Area        string `json:"area,omitempty"`
	Sort        string `json:"sort,omitempty"`
	PriceRange  string `json:"price_range,omitempty"`
	PartySize   int    `json:"party_size,omitempty"`
	MaxPages    int    `json:"max_pages,omitempty"`
	Concurrency int    `json:"concurrency,omitempty"`
}

// Config stores all local profiles.
type Config struct {
	Profiles []Profile `json:"profiles"`
}

// FindProfile looks a profile up by name, falling back to the default
// profile when the name is empty.
func (c Config) FindProfile(name string) (Profile, bool) {
	if name != "" {
		for _, profile := range c.Profiles {
			if profile.Name == name {
				return profile, true
			}
		}
		return Profile{}, false
	}
	for _, profile := range c.Profiles {
		if profile.IsDefault {
			return profile, true
		}
	}
	if len(c.Profiles) == 1 {
		return c.Profiles[0], true
	}
	return Profile{}, false
}
