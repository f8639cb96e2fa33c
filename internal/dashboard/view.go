package dashboard

import (
	"net/url"
	"strings"

	"github.com/morphofolio/backend/internal/model"
)

// View is the serialisable snapshot of a State.
type View struct {
	Messages      []model.Message       `json:"messages"`
	Selected      *model.Message        `json:"selected"`
	Actions       []model.MessageStatus `json:"actions"`
	ReplyURL      string                `json:"reply_url,omitempty"`
	Stats         model.MessageStats    `json:"stats"`
	Search        string                `json:"search"`
	Status        model.StatusFilter    `json:"status"`
	FiltersActive bool                  `json:"filters_active"`
}

// View assembles the dashboard view from the current state.
func (s State) View() View {
	v := View{
		Messages:      s.Visible(),
		Actions:       []model.MessageStatus{},
		Stats:         s.Stats(),
		Search:        s.search,
		Status:        s.StatusFilter(),
		FiltersActive: s.FiltersActive(),
	}
	if sel, ok := s.Selected(); ok {
		v.Selected = &sel
		v.ReplyURL = ReplyURL(sel)
		if acts := Actions(sel); acts != nil {
			v.Actions = acts
		}
	}
	return v
}

// ReplyURL returns a mailto link answering m with a "Re:" subject.
func ReplyURL(m model.Message) string {
	subject := strings.ReplaceAll(url.QueryEscape("Re: "+m.Subject), "+", "%20")
	return "mailto:" + m.Email + "?subject=" + subject
}
