package model

// Project is one portfolio entry shown in the gallery.
type Project struct {
	ID           string   `json:"id" yaml:"id"`
	Title        string   `json:"title" yaml:"title"`
	Description  string   `json:"description" yaml:"description"`
	Category     string   `json:"category" yaml:"category"`
	Technologies []string `json:"technologies" yaml:"technologies"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`

	GoogleLink string `json:"google_link,omitempty" yaml:"google_link,omitempty"`
	AppleLink  string `json:"apple_link,omitempty" yaml:"apple_link,omitempty"`
	GitHubLink string `json:"github_link,omitempty" yaml:"github_link,omitempty"`
	LiveLink   string `json:"live_link,omitempty" yaml:"live_link,omitempty"`
}

// HasTechnology reports whether tech is one of the project's technologies.
func (p Project) HasTechnology(tech string) bool {
	for _, t := range p.Technologies {
		if t == tech {
			return true
		}
	}
	return false
}
