// Package filemanager names the file manager the user will paste into.
package filemanager

import (
	"strings"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v4/process"
)

const Fallback = "File Manager"

type hint struct {
	needle string
	name   string
}

var desktopHints = []hint{
	{"kde", "Dolphin"},
	{"plasma", "Dolphin"},
	{"gnome", "GNOME Files"},
	{"xfce", "Thunar"},
	{"lxqt", "PCManFM-Qt"},
	{"lxde", "PCManFM"},
	{"cinnamon", "Nemo"},
	{"pantheon", "Pantheon Files"},
	{"mate", "Caja"},
}

// pcmanfm-qt must be checked before pcmanfm
var processHints = []hint{
	{"dolphin", "Dolphin"},
	{"nautilus", "GNOME Files"},
	{"nemo", "Nemo"},
	{"thunar", "Thunar"},
	{"pcmanfm-qt", "PCManFM-Qt"},
	{"pcmanfm", "PCManFM"},
	{"konqueror", "Konqueror"},
	{"caja", "Caja"},
}

func match(hints []hint, haystack string) (string, bool) {
	haystack = strings.ToLower(haystack)
	for _, h := range hints {
		if strings.Contains(haystack, h.needle) {
			return h.name, true
		}
	}
	return "", false
}

// FromDesktop maps XDG_CURRENT_DESKTOP, or DESKTOP_SESSION when the former
// is unset, to a file manager.
func FromDesktop(lookup func(string) (string, bool)) (string, bool) {
	desktop, ok := lookup("XDG_CURRENT_DESKTOP")
	if !ok {
		desktop, _ = lookup("DESKTOP_SESSION")
	}
	return match(desktopHints, desktop)
}

// FromProcesses looks for a known file manager among process names.
func FromProcesses(names []string) (string, bool) {
	return match(processHints, strings.Join(names, "\n"))
}

func runningProcesses(log zerolog.Logger) []string {
	procs, err := process.Processes()
	if err != nil {
		log.Debug().Err(err).Msg("list processes")
		return nil
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		// processes may exit between listing and reading
		if name, err := p.Name(); err == nil {
			names = append(names, name)
		}
	}
	return names
}

// freedesktop resolves the name on X11 and Wayland desktops.
func freedesktop(lookup func(string) (string, bool), log zerolog.Logger) string {
	if name, ok := FromDesktop(lookup); ok {
		return name
	}
	if name, ok := FromProcesses(runningProcesses(log)); ok {
		return name
	}
	return Fallback
}
