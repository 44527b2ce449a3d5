package models

import "time"

// LogoPackage is a saved generation result: the original SVG plus the
// animated artifacts and the options that produced them.
type LogoPackage struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	OriginalSvg string    `json:"original_svg"`
	AnimatedSvg string    `json:"animated_svg"`
	CSSCode     string    `json:"css_code,omitempty"`
	JSCode      string    `json:"js_code,omitempty"`
	Type        string    `json:"animation_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Feedback is a user-submitted rating of a generated animation.
type Feedback struct {
	ID      int64     `json:"id"`
	UserID  string    `json:"user_id"`
	Rating  int       `json:"rating"`
	Comment string    `json:"comment,omitempty"`
	Context string    `json:"context,omitempty"` // e.g. animation type or screen
	At      time.Time `json:"at"`
}

// ExportFormat names a packaging format for the export endpoint.
type ExportFormat string

const (
	ExportSVG  ExportFormat = "svg"
	ExportHTML ExportFormat = "html"
	ExportGIF  ExportFormat = "gif" // accepted but not implemented
	ExportMP4  ExportFormat = "mp4" // accepted but not implemented
)

// ExportRecord points at a packaged file written to the export dir.
type ExportRecord struct {
	ID        string       `json:"id"`
	Format    ExportFormat `json:"format"`
	FileName  string       `json:"file_name"`
	Size      int64        `json:"size"`
	CreatedAt time.Time    `json:"created_at"`
}
