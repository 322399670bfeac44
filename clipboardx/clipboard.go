package clipboardx

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
)

type command struct {
	name string
	args []string
}

var writeCommands = []command{
	{name: "wl-copy"},
	{name: "xclip", args: []string{"-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--input"}},
	{name: "pbcopy"},
	{name: "clip.exe"},
}

var readCommands = []command{
	{name: "wl-paste", args: []string{"--no-newline"}},
	{name: "xclip", args: []string{"-o", "-selection", "clipboard"}},
	{name: "xsel", args: []string{"--clipboard", "--output"}},
	{name: "pbpaste"},
	{name: "powershell.exe", args: []string{"-NoProfile", "-Command", "Get-Clipboard"}},
}

// System is the platform clipboard. Text written while no platform mechanism
// is reachable is kept in memory so copy and paste still work in-process.
type System struct {
	internal string
	// Commands enables the external clipboard helpers (wl-copy, xclip, ...).
	Commands bool
	// OSC52 enables the terminal escape fallback when stdout is a terminal.
	OSC52 bool
}

func NewSystem() *System {
	return &System{Commands: true, OSC52: true}
}

// Write stores text on every clipboard mechanism that accepts it. It reports
// whether any platform mechanism succeeded.
func (s *System) Write(text string) bool {
	s.internal = text
	ok := false

	if err := clipboard.WriteAll(text); err == nil {
		ok = true
	}
	if s.Commands && writeWithCommands(text) {
		ok = true
	}
	if s.OSC52 && writeOSC52(text) {
		ok = true
	}
	return ok
}

func (s *System) Read() string {
	if text, err := clipboard.ReadAll(); err == nil && text != "" {
		return text
	}
	if s.Commands {
		if text, ok := readWithCommands(); ok && text != "" {
			return text
		}
	}
	return s.internal
}

func writeWithCommands(text string) bool {
	ok := false
	for _, c := range writeCommands {
		if _, err := exec.LookPath(c.name); err != nil {
			continue
		}
		cmd := exec.Command(c.name, c.args...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			ok = true
		}
	}
	return ok
}

func readWithCommands() (string, bool) {
	for _, c := range readCommands {
		if _, err := exec.LookPath(c.name); err != nil {
			continue
		}
		out, err := exec.Command(c.name, c.args...).Output()
		if err == nil && len(out) > 0 {
			return string(out), true
		}
	}
	return "", false
}

func writeOSC52(text string) bool {
	if text == "" {
		return false
	}
	if fi, err := os.Stdout.Stat(); err != nil || (fi.Mode()&os.ModeCharDevice) == 0 {
		return false
	}
	encoded := base64.StdEncoding.EncodeToString([]byte(text))
	_, err := fmt.Fprintf(os.Stdout, "\x1b]52;c;%s\x07", encoded)
	return err == nil
}
