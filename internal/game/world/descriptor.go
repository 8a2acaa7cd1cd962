package world

import (
	"time"

	"github.com/google/uuid"

	"github.com/cory-johannsen/circlemud/internal/game/command"
)

// Output buffer limits.
const (
	MaxSockBuf   = 24 * 1024
	LargeBufSize = MaxSockBuf - 32 - 96
)

const textOverflow = "**OVERFLOW**\r\n"

// ConnState is the phase of a connection.
type ConnState int

// Connection states.
const (
	ConPlaying ConnState = iota
	ConClose
	ConGetName
	ConNameConfirm
	ConPassword
	ConNewPassword
	ConConfirmPassword
	ConQuerySex
	ConQueryClass
	ConReadMotd
	ConMenu
	ConExtraDesc
	ConChpwdGetOld
	ConChpwdGetNew
	ConChpwdVerify
	ConDeleteConfirm1
	ConDeleteConfirm2
	ConDisconnect
)

var connStateNames = []string{"Playing", "Disconnecting", "Get name", "Confirm name",
	"Get password", "Get new PW", "Confirm new PW", "Select sex", "Select class",
	"Reading MOTD", "Main Menu", "Get descript.", "Changing PW 1", "Changing PW 2",
	"Changing PW 3", "Self-Delete 1", "Self-Delete 2", "Disconnecting"}

func (s ConnState) String() string {
	if s < 0 || int(s) >= len(connStateNames) {
		return "UNDEFINED"
	}
	return connStateNames[s]
}

// Transport is a client connection as seen by the game loop. All methods
// are non-blocking; a network goroutine owned by the transport moves the
// bytes.
type Transport interface {
	// Kind names the protocol, e.g. "telnet".
	Kind() string
	RemoteAddr() string
	// Incoming delivers raw input chunks and is closed when the peer goes
	// away.
	Incoming() <-chan []byte
	// Write queues as much of p as the transport can take right now and
	// returns the count. An error means the connection is dead.
	Write(p []byte) (int, error)
	// EchoOff and EchoOn return the control bytes that toggle client
	// echo, or nil when the protocol has none.
	EchoOff() []byte
	EchoOn() []byte
	Close() error
}

// InputLine is one queued command line.
type InputLine struct {
	Text    string
	Aliased bool
}

// Pager holds long output being shown one page at a time.
type Pager struct {
	Pages []string
	Page  int
}

// EditKind selects what happens when a string edit completes.
type EditKind int

// Edit targets.
const (
	EditDescription EditKind = iota
	EditBoard
	EditMail
)

// EditState redirects input lines into a Text buffer until "@".
type EditState struct {
	Kind   EditKind
	Text   TextID
	Board  string
	Title  string
	MailTo int64
}

// Descriptor is one network connection.
type Descriptor struct {
	ID        uuid.UUID
	Conn      Transport
	Host      string
	State     ConnState
	LoginTime time.Time
	IdleTics  int
	BadPws    int

	Raw    []byte
	Input  []InputLine
	Output []byte
	// Unsent is composed output the transport has not accepted yet.
	Unsent    []byte
	Overflow  bool
	HasPrompt bool
	History   command.History
	LastInput string

	Pager *Pager
	Edit  *EditState

	Character CharID
	Original  CharID
	SnoopBy   DescID
	Snooping  DescID

	// Closing marks the descriptor for close_socket at the end of the tick.
	Closing bool
}

// NewDescriptor returns a descriptor in the name prompt state.
func NewDescriptor(conn Transport, now time.Time) Descriptor {
	return Descriptor{
		ID:        uuid.New(),
		Conn:      conn,
		Host:      conn.RemoteAddr(),
		State:     ConGetName,
		LoginTime: now,
		HasPrompt: true,
	}
}

// Write appends text to the output buffer. Once the buffer would exceed
// LargeBufSize an overflow notice is appended and further output is
// dropped until the buffer is flushed.
func (d *Descriptor) Write(text string) {
	if d.Overflow {
		return
	}
	if len(d.Output)+len(text) > LargeBufSize {
		room := max(LargeBufSize-len(d.Output)-len(textOverflow), 0)
		d.Output = append(d.Output, text[:min(room, len(text))]...)
		d.Output = append(d.Output, textOverflow...)
		d.Overflow = true
		return
	}
	d.Output = append(d.Output, text...)
}

// WriteBytes appends raw bytes such as telnet control sequences.
func (d *Descriptor) WriteBytes(b []byte) {
	if len(b) > 0 {
		d.Write(string(b))
	}
}

// Queue appends a line to the input queue.
func (d *Descriptor) Queue(line string, aliased bool) {
	d.Input = append(d.Input, InputLine{Text: line, Aliased: aliased})
}

// QueueFront inserts lines, in order, ahead of any queued input.
func (d *Descriptor) QueueFront(lines []string, aliased bool) {
	front := make([]InputLine, 0, len(lines)+len(d.Input))
	for _, l := range lines {
		front = append(front, InputLine{Text: l, Aliased: aliased})
	}
	d.Input = append(front, d.Input...)
}

// Dequeue pops the next input line.
func (d *Descriptor) Dequeue() (InputLine, bool) {
	if len(d.Input) == 0 {
		return InputLine{}, false
	}
	l := d.Input[0]
	d.Input = d.Input[1:]
	return l, true
}

// Playing reports whether the descriptor is in the game.
func (d *Descriptor) Playing() bool { return d.State == ConPlaying }

// FlushInput discards queued input.
func (d *Descriptor) FlushInput() { d.Input = nil }
