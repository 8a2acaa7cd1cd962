package textfiles_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/circlemud/internal/textfiles"
)

func writeText(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".txt"), []byte(body), 0o644))
}

func TestLoad_MissingFilesAreEmpty(t *testing.T) {
	f := textfiles.Load(t.TempDir(), "CircleMUD", zap.NewNop())
	assert.Equal(t, "", f.Get(textfiles.Motd, 0))
	assert.False(t, f.InvalidName("anything"))
}

func TestGet_RendersTemplates(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, textfiles.Greetings, "Welcome to {{ .MudName | upper }}\n{{ .Players }} online\n")
	writeText(t, dir, textfiles.Motd, "plain text\n")
	f := textfiles.Load(dir, "CircleMUD", zap.NewNop())

	assert.Equal(t, "Welcome to CIRCLEMUD\r\n3 online\r\n", f.Get(textfiles.Greetings, 3))
	assert.Equal(t, "plain text\r\n", f.Get(textfiles.Motd, 0))
}

func TestGet_BadTemplateFallsBackToRaw(t *testing.T) {
	f := textfiles.FromStrings("X", map[string]string{textfiles.News: "broken {{ .Nope"})
	assert.Equal(t, "broken {{ .Nope", f.Get(textfiles.News, 0))
}

func TestInvalidName(t *testing.T) {
	f := textfiles.FromStrings("X", map[string]string{textfiles.Xnames: "# banned\nfuck\nadmin\n\n"})
	assert.True(t, f.InvalidName("Administrator"))
	assert.False(t, f.InvalidName("Zara"))
}

func TestReload(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, textfiles.Info, "old")
	f := textfiles.Load(dir, "X", zap.NewNop())
	writeText(t, dir, textfiles.Info, "new")

	require.NoError(t, f.Reload(textfiles.Info))
	assert.Equal(t, "new", f.Get(textfiles.Info, 0))
	require.NoError(t, f.Reload("all"))
	assert.Error(t, f.Reload("nonesuch"))
}

func TestWatch_ReloadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	writeText(t, dir, textfiles.Motd, "before")
	f := textfiles.Load(dir, "X", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := make(chan string, 8)
	require.NoError(t, f.Watch(ctx, func(name string) { changed <- name }))

	writeText(t, dir, textfiles.Motd, "after")
	select {
	case name := <-changed:
		assert.Equal(t, textfiles.Motd, name)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload notification")
	}
	assert.Eventually(t, func() bool { return f.Get(textfiles.Motd, 0) == "after" },
		2*time.Second, 10*time.Millisecond)
}
