// Package viewer opens generated documents in a browser. Launching is best
// effort: callers log failures and carry on.
package viewer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// LaunchError reports that no viewer could be started
type LaunchError struct {
	Path  string
	Cause error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("could not open %s: %v", e.Path, e.Cause)
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// Starter starts a process without waiting for it.
type Starter interface {
	Start(name string, args ...string) error
}

type execStarter struct{}

func (execStarter) Start(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}

// command is one way of opening a file.
type command struct {
	name string
	args []string
}

// Launcher picks a viewer for the current platform.
type Launcher struct {
	goos     string
	starter  Starter
	lookPath func(string) (string, error)
	exists   func(string) bool
}

// New returns a Launcher for the running platform.
func New() *Launcher {
	return &Launcher{
		goos:     runtime.GOOS,
		starter:  execStarter{},
		lookPath: exec.LookPath,
		exists: func(p string) bool {
			_, err := os.Stat(p)
			return err == nil
		},
	}
}

// Open starts a browser on path, preferring Chrome and falling back to the
// platform's default handler.
func (l *Launcher) Open(path string) error {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	var errs []error
	for _, c := range l.commands(path) {
		err := l.starter.Start(c.name, c.args...)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", c.name, err))
	}
	if len(errs) == 0 {
		errs = append(errs, errors.New("no viewer available"))
	}
	return &LaunchError{Path: path, Cause: errors.Join(errs...)}
}

func (l *Launcher) commands(path string) []command {
	switch l.goos {
	case "windows":
		var cmds []command
		for _, chrome := range windowsChromePaths() {
			if l.exists(chrome) {
				cmds = append(cmds, command{name: chrome, args: []string{path}})
			}
		}
		return append(cmds, command{name: "rundll32", args: []string{"url.dll,FileProtocolHandler", path}})

	case "darwin":
		return []command{
			{name: "open", args: []string{"-a", "Google Chrome", path}},
			{name: "open", args: []string{path}},
		}

	default:
		var cmds []command
		for _, browser := range []string{"google-chrome", "chromium", "chromium-browser"} {
			if p, err := l.lookPath(browser); err == nil {
				cmds = append(cmds, command{name: p, args: []string{path}})
			}
		}
		return append(cmds, command{name: "xdg-open", args: []string{path}})
	}
}

func windowsChromePaths() []string {
	paths := []string{
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, `AppData\Local\Google\Chrome\Application\chrome.exe`))
	}
	return paths
}
