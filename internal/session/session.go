// Package session tracks one in-progress submission per user: which step of
// the conversation the user is on and the fields accumulated so far.
package session

import (
	"sort"
	"sync"
	"time"
)

const (
	StateIdle             = "idle"
	StateCollectingMedia  = "collecting_media"
	StateChoosingCategory = "choosing_category"
	StateChoosingTags     = "choosing_tags"
	StateEnteringDir      = "entering_dir"
	StateEnteringDop      = "entering_dop"
	StateEnteringColor    = "entering_color"
	StateEnteringProd     = "entering_prod"
)

// MaxMedia is the hard bound on attachments per submission; appends past it
// are rejected without error.
const MaxMedia = 9

type MediaKind string

const (
	KindPhoto     MediaKind = "photo"
	KindVideo     MediaKind = "video"
	KindAnimation MediaKind = "animation"
)

// MediaRef points at one user-supplied attachment. The file ID is an opaque
// handle assigned by Telegram; the content is never fetched locally.
type MediaRef struct {
	Kind   MediaKind
	FileID string
}

type Session struct {
	mu sync.Mutex

	State   string
	Enabled bool

	SourceURL    string
	Title        string
	Media        []MediaRef
	Category     string
	SelectedTags []string
	Dir          string
	Dop          string
	Color        string
	Prod         string

	UpdatedAt time.Time
}

// BeginCycle starts a fresh submission: every collection field is cleared
// before any new input lands.
func (s *Session) BeginCycle(url, title string) {
	s.clearFields()
	s.SourceURL = url
	s.Title = title
	s.State = StateCollectingMedia
}

// AppendMedia adds a reference unless the bound is reached. It returns the
// resulting count and whether the append was accepted.
func (s *Session) AppendMedia(ref MediaRef) (int, bool) {
	if len(s.Media) >= MaxMedia {
		return len(s.Media), false
	}
	s.Media = append(s.Media, ref)
	return len(s.Media), true
}

func (s *Session) ClearMedia() {
	s.Media = nil
}

// SetCategory records the chosen category and discards any tags toggled for
// a previous category choice.
func (s *Session) SetCategory(category string) {
	s.Category = category
	s.SelectedTags = nil
}

// ToggleTag adds the tag if absent and removes it if present, keeping the
// slice sorted so keyboards and captions render deterministically. It
// reports whether the tag is selected afterwards.
func (s *Session) ToggleTag(tag string) bool {
	for i, t := range s.SelectedTags {
		if t == tag {
			s.SelectedTags = append(s.SelectedTags[:i], s.SelectedTags[i+1:]...)
			return false
		}
	}
	s.SelectedTags = append(s.SelectedTags, tag)
	sort.Strings(s.SelectedTags)
	return true
}

func (s *Session) ClearTags() {
	s.SelectedTags = nil
}

// Reset returns the session to idle and wipes the in-progress submission.
// The Enabled pause flag survives, it is controlled only by Start/Stop.
func (s *Session) Reset() {
	s.clearFields()
	s.State = StateIdle
}

func (s *Session) clearFields() {
	s.SourceURL = ""
	s.Title = ""
	s.Media = nil
	s.Category = ""
	s.SelectedTags = nil
	s.Dir = ""
	s.Dop = ""
	s.Color = ""
	s.Prod = ""
}

// Store keys sessions by Telegram user ID. Sessions are created lazily and
// live for the process lifetime.
type Store struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

func (st *Store) get(userID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[userID]
	if !ok {
		s = &Session{State: StateIdle, Enabled: true, UpdatedAt: time.Now()}
		st.sessions[userID] = s
	}
	return s
}

// With runs fn while holding the session's own lock, so events for one user
// are applied serially while other users' sessions stay unblocked even when
// fn suspends on a network call.
func (st *Store) With(userID int64, fn func(*Session)) {
	s := st.get(userID)
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
	s.UpdatedAt = time.Now()
}

// ReapStale resets sessions that have sat mid-collection longer than ttl
// and returns how many were reset.
func (st *Store) ReapStale(ttl time.Duration) int {
	st.mu.Lock()
	candidates := make([]*Session, 0, len(st.sessions))
	for _, s := range st.sessions {
		candidates = append(candidates, s)
	}
	st.mu.Unlock()

	cutoff := time.Now().Add(-ttl)
	reaped := 0
	for _, s := range candidates {
		s.mu.Lock()
		if s.State != StateIdle && s.UpdatedAt.Before(cutoff) {
			s.Reset()
			reaped++
		}
		s.mu.Unlock()
	}
	return reaped
}
