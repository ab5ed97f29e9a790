// internal/handlers/tts/preview.go
package tts

import (
	"io"
	"sync"
)

// PreviewRegistry tracks the active voice preview per session. A session
// holds at most one preview at a time: registering a new one releases the
// previous handle before the new URL is stored.
type PreviewRegistry struct {
	mu      sync.Mutex
	entries map[string]*previewEntry
}

type previewEntry struct {
	url  string
	body io.ReadCloser
}

func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{entries: make(map[string]*previewEntry)}
}

// Set records url as the session's active preview, closing any handle left
// over from an earlier preview.
func (r *PreviewRegistry) Set(sid, url string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prev, ok := r.entries[sid]; ok && prev.body != nil {
		prev.body.Close()
	}
	r.entries[sid] = &previewEntry{url: url}
}

// URL returns the session's active preview URL, if any.
func (r *PreviewRegistry) URL(sid string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sid]
	if !ok {
		return "", false
	}
	return e.url, true
}

// Attach associates an open audio stream with the session's active preview
// so a later Set or Clear can release it. Any stream already attached is
// closed first.
func (r *PreviewRegistry) Attach(sid string, body io.ReadCloser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sid]
	if !ok {
		body.Close()
		return
	}
	if e.body != nil {
		e.body.Close()
	}
	e.body = body
}

// Detach removes the stream from the session without closing it; the caller
// owns the handle from then on.
func (r *PreviewRegistry) Detach(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sid]; ok {
		e.body = nil
	}
}

// Clear drops the session's preview, closing any attached stream.
func (r *PreviewRegistry) Clear(sid string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sid]; ok {
		if e.body != nil {
			e.body.Close()
		}
		delete(r.entries, sid)
	}
}
