package editor

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gridedit/clipboardx"
	"gridedit/grid"

	"github.com/gdamore/tcell/v2"
)

const backupInterval = 30 * time.Second

type backupInfo struct {
	OriginalPath string `json:"original_path"`
	Sheet        string `json:"sheet,omitempty"`
	Timestamp    string `json:"timestamp"`
}

func backupDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "gridedit", "backups")
}

// backupPathForFile names the backup of a grid file. Backups are always
// quoted TSV whatever the original format.
func backupPathForFile(originalPath string) string {
	h := sha256.Sum256([]byte(originalPath))
	name := fmt.Sprintf("%x.tsv", h[:8])
	return filepath.Join(backupDir(), name)
}

func backupMetaPath(backupPath string) string {
	return backupPath + ".json"
}

// startBackupTimer posts a BackupEvent every backupInterval until Run exits.
func (e *Editor) startBackupTimer(screen tcell.Screen) {
	stop := make(chan struct{})
	e.stopBackup = stop
	go func() {
		ticker := time.NewTicker(backupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				ev := &BackupEvent{}
				ev.SetEventNow()
				screen.PostEvent(ev)
			}
		}
	}()
}

// saveBackup writes the unsaved grid and its metadata.
func (e *Editor) saveBackup() {
	if !e.dirty || e.path == "" {
		return
	}
	if err := os.MkdirAll(backupDir(), 0755); err != nil {
		log.Printf("backup: %v", err)
		return
	}
	bpath := backupPathForFile(e.path)
	text := clipboardx.Encode(e.engine.Grid().Rows(), true) + "\n"
	if err := os.WriteFile(bpath, []byte(text), 0644); err != nil {
		log.Printf("backup: %v", err)
		return
	}

	meta := backupInfo{
		OriginalPath: e.path,
		Sheet:        e.sheet,
		Timestamp:    time.Now().Format(time.RFC3339),
	}
	metaData, _ := json.Marshal(meta)
	os.WriteFile(backupMetaPath(bpath), metaData, 0644)
}

func (e *Editor) cleanBackup() {
	if e.path == "" {
		return
	}
	bpath := backupPathForFile(e.path)
	os.Remove(bpath)
	os.Remove(backupMetaPath(bpath))
}

// recoverBackup loads a backup left by a previous session into the grid as
// unsaved changes. The file on disk is not touched.
func (e *Editor) recoverBackup() bool {
	if e.path == "" {
		return false
	}
	bpath := backupPathForFile(e.path)
	metaData, err := os.ReadFile(backupMetaPath(bpath))
	if err != nil {
		return false
	}
	var info backupInfo
	if json.Unmarshal(metaData, &info) != nil || info.OriginalPath != e.path || info.Sheet != e.sheet {
		return false
	}
	data, err := os.ReadFile(bpath)
	if err != nil {
		return false
	}
	// A file saved after the backup was taken wins.
	if fi, err := os.Stat(e.path); err == nil {
		if ts, err := time.Parse(time.RFC3339, info.Timestamp); err == nil && fi.ModTime().After(ts) {
			e.cleanBackup()
			return false
		}
	}

	p, ok := clipboardx.Decode(string(data), true)
	if !ok {
		return false
	}
	log.Printf("recovered backup for %s from %s", e.path, info.Timestamp)
	e.engine.SetData(grid.FromRows(p))
	e.dirty = !grid.Equal(e.engine.Grid(), e.saved)
	return e.dirty
}
