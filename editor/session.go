package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SessionData is the view state remembered for one grid file.
type SessionData struct {
	Path      string `json:"path"`
	Sheet     string `json:"sheet,omitempty"`
	AnchorCol int    `json:"anchor_col"`
	AnchorRow int    `json:"anchor_row"`
	ScrollCol int    `json:"scroll_col"`
	ScrollRow int    `json:"scroll_row"`
}

func sessionDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "gridedit", "sessions")
}

func sessionPath(filePath string) string {
	hash := sha256.Sum256([]byte(filePath))
	return filepath.Join(sessionDir(), fmt.Sprintf("%x.json", hash[:8]))
}

func (e *Editor) SaveSession() {
	if e.path == "" {
		return
	}
	sel, ok := e.engine.Selection()
	if !ok {
		// Nothing selected: drop any stale session so an old anchor doesn't return.
		_ = os.Remove(sessionPath(e.path))
		return
	}

	session := SessionData{
		Path:      e.path,
		Sheet:     e.sheet,
		AnchorCol: sel.Anchor.Col,
		AnchorRow: sel.Anchor.Row,
		ScrollCol: e.view.scrollCol,
		ScrollRow: e.view.scrollRow,
	}

	os.MkdirAll(sessionDir(), 0755)
	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(sessionPath(e.path), data, 0644)
}

// RestoreSession puts back the anchor and scroll position saved for the open
// file. The anchor is clamped to the current capacity.
func (e *Editor) RestoreSession() bool {
	if e.path == "" {
		return false
	}
	data, err := os.ReadFile(sessionPath(e.path))
	if err != nil {
		return false
	}
	var session SessionData
	if err := json.Unmarshal(data, &session); err != nil {
		return false
	}
	if session.Path != e.path || session.Sheet != e.sheet {
		return false
	}

	e.engine.SelectCell(session.AnchorCol, session.AnchorRow)
	e.view.scrollCol = session.ScrollCol
	e.view.scrollRow = session.ScrollRow
	e.clampScroll()
	return true
}
