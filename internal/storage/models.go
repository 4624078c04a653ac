package storage

import "time"

// Jot is a saved note: the editor buffer and the backend session its requests run in.
type Jot struct {
	ID        string // UUID
	Title     string
	HTML      string // editor HTML as last saved
	Text      string // trimmed plain-text projection of HTML
	SessionID string // empty until a backend session has been started
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BrainstormRecord is a cached brainstorm result for one paragraph.
type BrainstormRecord struct {
	Hash      string // HashText of the paragraph
	Goal      string
	Questions []string
	CreatedAt time.Time
}
