package planner

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Session is the state of one visitor's planner form: the ordered, duplicate
// free interest tags and the single in-flight request guard. All access goes
// through its methods.
type Session struct {
	mu         sync.Mutex
	interests  []string
	generating bool
}

func NewSession() *Session {
	return &Session{}
}

// NormalizeInterest trims and lowercases a raw tag.
func NormalizeInterest(raw string) string {
	return cases.Lower(language.Und).String(strings.TrimSpace(raw))
}

// AddInterest appends the normalized tag unless it is empty or already
// present. It reports whether the sequence changed.
func (s *Session) AddInterest(raw string) bool {
	tag := NormalizeInterest(raw)
	if tag == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.Contains(s.interests, tag) {
		return false
	}
	s.interests = append(s.interests, tag)
	return true
}

// RemoveInterest drops every entry equal to value. It reports whether
// anything was removed.
func (s *Session) RemoveInterest(value string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.interests)
	s.interests = slices.DeleteFunc(s.interests, func(tag string) bool { return tag == value })
	return len(s.interests) != before
}

// Interests returns a copy of the tags in insertion order.
func (s *Session) Interests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.interests)
}

// Reset empties the interest list. The generating flag belongs to the
// in-flight request and is left alone.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.interests = nil
}

// BeginGenerating sets the in-flight flag. It returns false, and changes
// nothing, when a request is already outstanding.
func (s *Session) BeginGenerating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.generating {
		return false
	}
	s.generating = true
	return true
}

func (s *Session) EndGenerating() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generating = false
}

func (s *Session) IsGenerating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.generating
}
