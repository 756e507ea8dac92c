// Package document defines the engine's read-only view of a stored passage.
package document

// Document is a stored text passage with optional author/timestamp metadata
// (immutable value object). Produced by ingestion, consumed by every
// retrieval stage; the engine never mutates one.
type Document struct {
	content   string
	author    string
	timestamp string
}

// New creates a Document. Both metadata fields may be empty; missing
// metadata degrades the boosts that depend on it rather than erroring.
func New(content, author, timestamp string) Document {
	return Document{content: content, author: author, timestamp: timestamp}
}

// Content returns the passage text.
func (d Document) Content() string { return d.content }

// Author returns the author identifier, or "" when unknown.
func (d Document) Author() string { return d.author }

// Timestamp returns the raw era timestamp string, or "" when unknown.
func (d Document) Timestamp() string { return d.timestamp }
