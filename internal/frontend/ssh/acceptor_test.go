package ssh

import (
	"bufio"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	gossh "golang.org/x/crypto/ssh"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/circlemud/internal/config"
	"github.com/cory-johannsen/circlemud/internal/game/world"
)

type chanSink chan world.Transport

func (s chanSink) Accept(t world.Transport) { s <- t }

func TestLoadOrCreateHostKey_PersistsKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "host_ed25519")
	first, err := LoadOrCreateHostKey(path)
	require.NoError(t, err)
	second, err := LoadOrCreateHostKey(path)
	require.NoError(t, err)
	assert.Equal(t, first.PublicKey().Marshal(), second.PublicKey().Marshal())
	assert.Equal(t, gossh.KeyAlgoED25519, first.PublicKey().Type())
}

func TestAcceptor_ShellSessionReachesSink(t *testing.T) {
	key, err := LoadOrCreateHostKey(filepath.Join(t.TempDir(), "host"))
	require.NoError(t, err)
	sink := make(chanSink, 1)
	acc := NewAcceptor(config.SSHConfig{Host: "127.0.0.1", Port: 0},
		config.TelnetConfig{WriteTimeout: time.Second, QueueSize: 8}, key, sink, zaptest.NewLogger(t))
	go func() { _ = acc.ListenAndServe() }()
	t.Cleanup(acc.Stop)
	require.Eventually(t, func() bool { return acc.Addr() != "" }, 2*time.Second, 10*time.Millisecond)

	client, err := gossh.Dial("tcp", acc.Addr(), &gossh.ClientConfig{
		User:            "anyone",
		HostKeyCallback: gossh.InsecureIgnoreHostKey(),
		Timeout:         2 * time.Second,
	})
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	session, err := client.NewSession()
	require.NoError(t, err)
	stdin, err := session.StdinPipe()
	require.NoError(t, err)
	stdout, err := session.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, session.Shell())

	var tr world.Transport
	select {
	case tr = <-sink:
	case <-time.After(2 * time.Second):
		t.Fatal("sink never received the session")
	}
	t.Cleanup(func() { _ = tr.Close() })
	assert.Equal(t, "ssh", tr.Kind())
	assert.Nil(t, tr.EchoOff())

	_, err = tr.Write([]byte("By what name do you wish to be known? "))
	require.NoError(t, err)
	line, err := bufio.NewReader(stdout).ReadString('?')
	require.NoError(t, err)
	assert.Equal(t, "By what name do you wish to be known?", line)

	_, err = stdin.Write([]byte("Alice\n"))
	require.NoError(t, err)
	select {
	case chunk := <-tr.Incoming():
		assert.Equal(t, "Alice\n", string(chunk))
	case <-time.After(2 * time.Second):
		t.Fatal("no input delivered")
	}
}

func TestCRLF(t *testing.T) {
	assert.Equal(t, "a\r\nb\r\n", string(CRLF([]byte("a\nb\r\n"))))
	assert.Equal(t, "\r\n", string(CRLF([]byte("\n"))))
}

func TestPropertyCRLF_NoBareLineFeeds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SliceOf(rapid.SampledFrom([]byte("ab\r\n"))).Draw(t, "p")
		out := CRLF(p)
		for i, b := range out {
			if b == '\n' && (i == 0 || out[i-1] != '\r') {
				t.Fatalf("bare line feed at %d in %q", i, out)
			}
		}
	})
}
