package domain

import "time"

// Window is a bounded container of Content annotated with a SalienceScore,
// open until explicitly closed or evicted. Belongs to Memory exclusively.
type Window struct {
	ID        WindowId
	Label     string
	Contents  []Content
	Salience  SalienceScore
	OpenedAt  time.Time
}

// Clone returns a deep-enough copy for safe hand-off across actor mailboxes
// (Contents is a value slice of value Content, so a fresh backing array is
// enough to prevent aliasing between the Memory actor and its callers).
func (w Window) Clone() Window {
	out := w
	out.Contents = make([]Content, len(w.Contents))
	copy(out.Contents, w.Contents)
	return out
}
