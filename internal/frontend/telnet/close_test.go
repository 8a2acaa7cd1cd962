package telnet

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopback returns both ends of a local TCP connection.
func loopback(t *testing.T) (server, client net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		c, err := ln.Accept()
		if err == nil {
			accepted <- c
		}
		close(accepted)
	}()
	client, err = net.Dial("tcp", ln.Addr().String())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server, ok := <-accepted
	require.True(t, ok, "accept failed")
	return server, client
}

func TestConn_OutputQueuedBeforeCloseIsDelivered(t *testing.T) {
	for range 20 {
		server, client := loopback(t)
		c := NewConn(server, time.Second, 16)

		msg := "Sorry, this site is banned.\r\n"
		n, err := c.Write([]byte(msg))
		require.NoError(t, err)
		require.Equal(t, len(msg), n)
		require.NoError(t, c.Close())

		_ = client.SetReadDeadline(time.Now().Add(5 * time.Second))
		got, err := io.ReadAll(client)
		require.NoError(t, err)
		assert.Equal(t, msg, string(got))
	}
}

func TestConn_SeveralChunksThenClose(t *testing.T) {
	server, client := loopback(t)
	c := NewConn(server, time.Second, 16)

	for _, s := range []string{"Wrong password... ", "disconnecting.\r\n"} {
		_, err := c.Write([]byte(s))
		require.NoError(t, err)
	}
	require.NoError(t, c.Close())

	_ = client.SetReadDeadline(time.Now().Add(5 * time.Second))
	got, err := io.ReadAll(client)
	require.NoError(t, err)
	assert.Equal(t, "Wrong password... disconnecting.\r\n", string(got))
}

func TestConn_WriteAfterCloseFails(t *testing.T) {
	server, _ := loopback(t)
	c := NewConn(server, time.Second, 16)
	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err := c.Write([]byte("late"))
	assert.ErrorIs(t, err, ErrClosed)

	select {
	case <-c.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("socket not released after Close")
	}
}
