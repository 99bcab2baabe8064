// Package models holds the transient application state.
package models

import (
	"image"
	"sync"
	"time"

	"github.com/google/uuid"
)

// LoadedImage represents a decoded image with its display thumbnail and
// metadata. The Image handle is owned by the UI for the lifetime of the
// display.
type LoadedImage struct {
	Path      string
	Data      []byte
	Image     image.Image
	Thumbnail image.Image
	Width     int
	Height    int
	Format    string
	SizeBytes int64
	LoadTime  time.Time
}

// Session is the single transient entity of the application: the currently
// loaded image and its caption. A new session begins each time an image is
// selected; the caption is only defined once generation has completed for
// the image of the current session.
type Session struct {
	mu      sync.RWMutex
	id      string
	img     *LoadedImage
	caption string
}

func NewSession() *Session {
	return &Session{}
}

// SetImage starts a new session around the given image, clearing any caption
// left over from the previous one.
func (s *Session) SetImage(img *LoadedImage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = uuid.NewString()
	s.img = img
	s.caption = ""
}

// Image returns the currently loaded image, or nil when none is loaded.
func (s *Session) Image() *LoadedImage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.img
}

// ID identifies the current session. Empty until the first image loads.
func (s *Session) ID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.id
}

// SetCaption records the generated caption for the session identified by
// sessionID. The caption is dropped when the user selected a different image
// while generation was in flight.
func (s *Session) SetCaption(sessionID, caption string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.id != sessionID {
		return false
	}

	s.caption = caption
	return true
}

// Caption returns the current caption, empty until generation completes.
func (s *Session) Caption() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.caption
}

// HasImage reports whether an image is loaded.
func (s *Session) HasImage() bool {
	return s.Image() != nil
}

// HasCaption reports whether a caption exists for the current image.
func (s *Session) HasCaption() bool {
	return s.Caption() != ""
}

// Clear drops all session state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.id = ""
	s.img = nil
	s.caption = ""
}
