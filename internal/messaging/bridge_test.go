package messaging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type delivery struct {
	channel, server, from, text string
}

type fakeReceiver struct {
	got chan delivery
}

func newFakeReceiver() *fakeReceiver { return &fakeReceiver{got: make(chan delivery, 8)} }

func (r *fakeReceiver) Submit(fn func()) { fn() }

func (r *fakeReceiver) DeliverRemote(channel, server, from, text string) {
	r.got <- delivery{channel, server, from, text}
}

func startServer(t *testing.T) *EmbeddedServer {
	t.Helper()
	s, err := NewEmbeddedServer(-1, zaptest.NewLogger(t), WithStartTimeout(5*time.Second))
	require.NoError(t, err)
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)
	return s
}

func TestBridge_DeliversToOtherServers(t *testing.T) {
	s := startServer(t)
	logger := zaptest.NewLogger(t)

	eastRcv, westRcv := newFakeReceiver(), newFakeReceiver()
	east, err := Connect(s.ClientURL(), "circle.chan", "east", eastRcv, logger)
	require.NoError(t, err)
	t.Cleanup(east.Close)
	west, err := Connect(s.ClientURL(), "circle.chan", "west", westRcv, logger)
	require.NoError(t, err)
	t.Cleanup(west.Close)

	require.NoError(t, east.Publish("gossip", "Alice", "hello there"))

	select {
	case d := <-westRcv.got:
		assert.Equal(t, delivery{"gossip", "east", "Alice", "hello there"}, d)
	case <-time.After(3 * time.Second):
		t.Fatal("west never received the gossip")
	}

	select {
	case d := <-eastRcv.got:
		t.Fatalf("origin received its own message: %+v", d)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestBridge_ChannelFromSubject(t *testing.T) {
	s := startServer(t)
	logger := zaptest.NewLogger(t)

	rcv := newFakeReceiver()
	b, err := Connect(s.ClientURL(), "test.chan", "here", rcv, logger)
	require.NoError(t, err)
	t.Cleanup(b.Close)
	other, err := Connect(s.ClientURL(), "test.chan", "there", newFakeReceiver(), logger)
	require.NoError(t, err)
	t.Cleanup(other.Close)

	require.NoError(t, other.Publish("wiznet", "Bob", "reboot in 5"))
	select {
	case d := <-rcv.got:
		assert.Equal(t, "wiznet", d.channel)
		assert.Equal(t, "Bob", d.from)
	case <-time.After(3 * time.Second):
		t.Fatal("no wiznet delivery")
	}
}

func TestConnect_BadURLFails(t *testing.T) {
	_, err := Connect("nats://127.0.0.1:1", "circle.chan", "x", newFakeReceiver(), zaptest.NewLogger(t))
	assert.Error(t, err)
}
