// Package dashboard holds the view state of the message dashboard: the loaded
// messages, the search term, the status filter and the selected message.
//
// State is a value. Every reducer returns a new State and leaves the receiver
// untouched, so a caller can keep the previous state around or share it
// between goroutines without locking.
package dashboard

import (
	"strings"

	"github.com/morphofolio/backend/internal/model"
)

// State is the dashboard view state.
type State struct {
	messages []model.Message
	search   string
	status   model.StatusFilter

	selected    model.Message
	hasSelected bool
}

// New returns a state over messages with no filters and no selection.
func New(messages []model.Message) State {
	return State{
		messages: cloneMessages(messages),
		status:   model.FilterAll,
	}
}

// Messages returns every loaded message, filtered or not.
func (s State) Messages() []model.Message { return cloneMessages(s.messages) }

// Search returns the current search term.
func (s State) Search() string { return s.search }

// StatusFilter returns the current status filter.
func (s State) StatusFilter() model.StatusFilter {
	if s.status == "" {
		return model.FilterAll
	}
	return s.status
}

// Selected returns the selected message, if any. The selection is sticky:
// it is returned even when the current filters hide it.
func (s State) Selected() (model.Message, bool) {
	return s.selected, s.hasSelected
}

// WithSearch sets the free-text search term.
func (s State) WithSearch(term string) State {
	s.search = term
	return s
}

// WithStatusFilter sets the status filter.
func (s State) WithStatusFilter(f model.StatusFilter) State {
	s.status = f
	return s
}

// ClearFilters resets the search term and the status filter. The selection is kept.
func (s State) ClearFilters() State {
	s.search = ""
	s.status = model.FilterAll
	return s
}

// Select marks the message with id as active. Unknown ids leave the state unchanged.
func (s State) Select(id string) State {
	for _, m := range s.messages {
		if m.ID == id {
			s.selected = m
			s.hasSelected = true
			return s
		}
	}
	return s
}

// ClearSelection drops the active message.
func (s State) ClearSelection() State {
	s.selected = model.Message{}
	s.hasSelected = false
	return s
}

// ReplaceMessages swaps in a freshly loaded list. A selected message that is
// still present is refreshed from the new list; one that vanished stays as it was.
func (s State) ReplaceMessages(messages []model.Message) State {
	s.messages = cloneMessages(messages)
	if s.hasSelected {
		for _, m := range s.messages {
			if m.ID == s.selected.ID {
				s.selected = m
				break
			}
		}
	}
	return s
}

// ApplyStatus replaces the stored copy of updated, and the selection when it
// is the same message, in one step.
func (s State) ApplyStatus(updated model.Message) State {
	msgs := make([]model.Message, len(s.messages))
	for i, m := range s.messages {
		if m.ID == updated.ID {
			m = updated
		}
		msgs[i] = m
	}
	s.messages = msgs
	if s.hasSelected && s.selected.ID == updated.ID {
		s.selected = updated
	}
	return s
}

// Visible returns the messages passing both the search term and the status filter,
// in loaded order.
func (s State) Visible() []model.Message {
	term := strings.ToLower(s.search)
	status := s.StatusFilter()
	out := make([]model.Message, 0, len(s.messages))
	for _, m := range s.messages {
		if MatchesSearch(m, term) && status.Matches(m.Status) {
			out = append(out, m)
		}
	}
	return out
}

// FiltersActive reports whether a search term or a status filter narrows the list.
func (s State) FiltersActive() bool {
	return s.search != "" || s.StatusFilter() != model.FilterAll
}

// Stats counts the loaded messages per status.
func (s State) Stats() model.MessageStats {
	st := model.MessageStats{Total: len(s.messages)}
	for _, m := range s.messages {
		switch m.Status {
		case model.StatusUnread:
			st.Unread++
		case model.StatusRead:
			st.Read++
		case model.StatusReplied:
			st.Replied++
		}
	}
	return st
}

// MatchesSearch reports whether the lower-cased term occurs in the name, email,
// subject or body of m. An empty term matches everything.
func MatchesSearch(m model.Message, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(m.Name), term) ||
		strings.Contains(strings.ToLower(m.Email), term) ||
		strings.Contains(strings.ToLower(m.Subject), term) ||
		strings.Contains(strings.ToLower(m.Message), term)
}

// Actions lists the status changes offered for m: mark read while unread,
// mark replied until replied.
func Actions(m model.Message) []model.MessageStatus {
	switch m.Status {
	case model.StatusUnread:
		return []model.MessageStatus{model.StatusRead, model.StatusReplied}
	case model.StatusRead:
		return []model.MessageStatus{model.StatusReplied}
	case model.StatusReplied:
		return nil
	default:
		return nil
	}
}

func cloneMessages(in []model.Message) []model.Message {
	out := make([]model.Message, len(in))
	copy(out, in)
	return out
}
