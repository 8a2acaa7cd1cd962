// Package textfiles serves the static screens of the game: the greeting,
// the message of the day, the background story and the help lists. Files
// are Go templates with the sprig function set and are reloaded when they
// change on disk.
package textfiles

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Names of the tracked files, without the .txt extension.
const (
	Greetings  = "greetings"
	Motd       = "motd"
	Imotd      = "imotd"
	News       = "news"
	Credits    = "credits"
	Info       = "info"
	Wizlist    = "wizlist"
	Immlist    = "immlist"
	Policies   = "policies"
	Handbook   = "handbook"
	Background = "background"
	Xnames     = "xnames"
)

// Tracked lists every file the game reads from the text directory.
var Tracked = []string{Greetings, Motd, Imotd, News, Credits, Info, Wizlist, Immlist,
	Policies, Handbook, Background, Xnames}

var funcs = sprig.TxtFuncMap()

// Data is what templates see as ".".
type Data struct {
	MudName string
	Now     time.Time
	Players int
}

type entry struct {
	raw  string
	tmpl *template.Template
}

// Files is the cache of text files. It is safe for concurrent use: the
// game reads it while the watcher goroutine reloads it.
type Files struct {
	dir     string
	mudName string
	logger  *zap.Logger

	mu      sync.RWMutex
	entries map[string]entry
	xnames  []string
}

// Load reads every tracked file from dir. Missing files are empty.
//
// Precondition: logger must be non-nil.
func Load(dir, mudName string, logger *zap.Logger) *Files {
	f := &Files{dir: dir, mudName: mudName, logger: logger, entries: map[string]entry{}}
	n := 0
	for _, name := range Tracked {
		if f.reload(name) {
			n++
		}
	}
	logger.Info("loaded text files", zap.String("dir", dir), zap.Int("count", n))
	return f
}

// FromStrings builds a cache from in-memory text, for tests and tools.
func FromStrings(mudName string, texts map[string]string) *Files {
	f := &Files{mudName: mudName, logger: zap.NewNop(), entries: map[string]entry{}}
	for name, body := range texts {
		f.set(name, body)
	}
	return f
}

func (f *Files) path(name string) string { return filepath.Join(f.dir, name+".txt") }

// reload re-reads one file and reports whether it has content.
func (f *Files) reload(name string) bool {
	data, err := os.ReadFile(f.path(name))
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Warn("SYSERR: reading text file", zap.String("file", name), zap.Error(err))
		}
		f.set(name, "")
		return false
	}
	f.set(name, string(data))
	return len(data) > 0
}

func (f *Files) set(name, body string) {
	body = toCRLF(body)
	e := entry{raw: body}
	if strings.Contains(body, "{{") {
		t, err := template.New(name).Funcs(funcs).Parse(body)
		if err != nil {
			f.logger.Warn("SYSERR: bad template in text file", zap.String("file", name), zap.Error(err))
		} else {
			e.tmpl = t
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[name] = e
	if name == Xnames {
		f.xnames = nil
		for _, line := range strings.Split(body, "\r\n") {
			if line = strings.ToLower(strings.TrimSpace(line)); line != "" && !strings.HasPrefix(line, "#") {
				f.xnames = append(f.xnames, line)
			}
		}
	}
}

// toCRLF normalizes line endings to the CRLF sent to clients.
func toCRLF(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\n", "\r\n")
}

// Get renders the named file with the given player count.
func (f *Files) Get(name string, players int) string {
	f.mu.RLock()
	e, ok := f.entries[name]
	f.mu.RUnlock()
	if !ok {
		return ""
	}
	if e.tmpl == nil {
		return e.raw
	}
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, Data{MudName: f.mudName, Now: time.Now(), Players: players}); err != nil {
		f.logger.Warn("SYSERR: rendering text file", zap.String("file", name), zap.Error(err))
		return e.raw
	}
	return buf.String()
}

// InvalidName reports whether name contains a substring listed in the
// xnames file.
func (f *Files) InvalidName(name string) bool {
	name = strings.ToLower(name)
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, x := range f.xnames {
		if strings.Contains(name, x) {
			return true
		}
	}
	return false
}

// Reload re-reads one tracked file, or all of them for "all".
func (f *Files) Reload(name string) error {
	if name == "all" {
		for _, n := range Tracked {
			f.reload(n)
		}
		return nil
	}
	for _, n := range Tracked {
		if n == name {
			f.reload(n)
			return nil
		}
	}
	return fmt.Errorf("unknown text file %q", name)
}

// Watch reloads tracked files as they change until ctx is done. notify is
// called, from the watcher goroutine, with the name of each reloaded file.
//
// Postcondition: Returns an error only if the watcher could not start.
func (f *Files) Watch(ctx context.Context, notify func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating text file watcher: %w", err)
	}
	if err := watcher.Add(f.dir); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watching %s: %w", f.dir, err)
	}

	tracked := make(map[string]bool, len(Tracked))
	for _, n := range Tracked {
		tracked[n+".txt"] = true
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
					continue
				}
				base := filepath.Base(ev.Name)
				if !tracked[base] {
					continue
				}
				name := strings.TrimSuffix(base, ".txt")
				f.reload(name)
				f.logger.Info("text file reloaded", zap.String("file", name))
				if notify != nil {
					notify(name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				f.logger.Warn("text file watcher error", zap.Error(err))
			}
		}
	}()
	return nil
}
