package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidStatus is returned when a string does not name a known status.
var ErrInvalidStatus = errors.New("invalid status")

// MessageStatus is the review state of a contact message.
type MessageStatus string

const (
	StatusUnread  MessageStatus = "unread"
	StatusRead    MessageStatus = "read"
	StatusReplied MessageStatus = "replied"
)

// MessageStatuses lists every status in display order.
var MessageStatuses = []MessageStatus{StatusUnread, StatusRead, StatusReplied}

// ParseStatus converts s to a MessageStatus. Matching is exact.
func ParseStatus(s string) (MessageStatus, error) {
	switch MessageStatus(s) {
	case StatusUnread, StatusRead, StatusReplied:
		return MessageStatus(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

func (s MessageStatus) String() string { return string(s) }

// StatusFilter narrows the dashboard list to one status, or none.
type StatusFilter string

const (
	FilterAll     StatusFilter = "all"
	FilterUnread  StatusFilter = "unread"
	FilterRead    StatusFilter = "read"
	FilterReplied StatusFilter = "replied"
)

// StatusFilters lists every filter in tab order.
var StatusFilters = []StatusFilter{FilterAll, FilterUnread, FilterRead, FilterReplied}

// ParseStatusFilter converts s to a StatusFilter. An empty string means FilterAll.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch StatusFilter(strings.TrimSpace(s)) {
	case "", FilterAll:
		return FilterAll, nil
	case FilterUnread:
		return FilterUnread, nil
	case FilterRead:
		return FilterRead, nil
	case FilterReplied:
		return FilterReplied, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// Matches reports whether a message with the given status passes the filter.
func (f StatusFilter) Matches(s MessageStatus) bool {
	switch f {
	case FilterAll:
		return true
	case FilterUnread:
		return s == StatusUnread
	case FilterRead:
		return s == StatusRead
	case FilterReplied:
		return s == StatusReplied
	default:
		return false
	}
}

// Next returns the filter after f in tab order, wrapping around.
func (f StatusFilter) Next() StatusFilter {
	for i, sf := range StatusFilters {
		if sf == f {
			return StatusFilters[(i+1)%len(StatusFilters)]
		}
	}
	return FilterAll
}

// Message is a contact message submitted through the portfolio contact form.
type Message struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Subject   string        `json:"subject"`
	Message   string        `json:"message"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// MessageStats counts messages per status.
type MessageStats struct {
	Total   int `json:"total"`
	Unread  int `json:"unread"`
	Read    int `json:"read"`
	Replied int `json:"replied"`
}
