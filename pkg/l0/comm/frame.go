package comm

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Channel identifies one of the logical lines sharing the link.
type Channel byte

// Channels.
const (
	ChannelA Channel = iota
	ChannelB
	ChannelC
	ChannelD
	ChannelE
)

// NumChannels is the number of logical channels.
const NumChannels = int(ChannelE) + 1

// MaxValue is the largest value a frame carries.
const MaxValue = 20000

const (
	frameStart byte = 's'
	frameEnd   byte = 'e'
)

// IsValid checks the channel is within a-e.
func (c Channel) IsValid() bool {
	return int(c) < NumChannels
}

// Letter returns the channel letter used on the wire.
func (c Channel) Letter() byte {
	return 'a' + byte(c)
}

// String implements fmt.Stringer.
func (c Channel) String() string {
	if !c.IsValid() {
		return "Channel(" + strconv.Itoa(int(c)) + ")"
	}
	return string(rune('A' + byte(c)))
}

// Set implements flag.Value.
func (c *Channel) Set(s string) error {
	ch, err := ParseChannel(s)
	if err != nil {
		return err
	}
	*c = ch
	return nil
}

// ChannelFromLetter maps a wire letter to Channel.
func ChannelFromLetter(b byte) (Channel, bool) {
	if b < 'a' || b >= 'a'+byte(NumChannels) {
		return 0, false
	}
	return Channel(b - 'a'), true
}

// ParseChannel parses a channel letter (case-insensitive) or ordinal 0-4.
func ParseChannel(s string) (Channel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if len(name) == 1 {
		if ch, ok := ChannelFromLetter(name[0]); ok {
			return ch, nil
		}
		if n := name[0]; n >= '0' && n < '0'+byte(NumChannels) {
			return Channel(n - '0'), nil
		}
	}
	return 0, &ChannelError{Name: s}
}

// ClampValue limits v to [0, MaxValue].
func ClampValue(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxValue {
		return MaxValue
	}
	return v
}

// RoundValue rounds v to the nearest integer and clamps it.
func RoundValue(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= MaxValue {
		return MaxValue
	}
	return int(math.Round(v))
}

// Frame is a decoded or to-be-encoded frame.
type Frame struct {
	Channel Channel
	Value   int
}

// Bytes returns the encoded frame. The value is clamped.
func (f Frame) Bytes() []byte {
	b := make([]byte, 0, 8)
	b = append(b, frameStart, f.Channel.Letter())
	b = strconv.AppendInt(b, int64(ClampValue(f.Value)), 10)
	return append(b, frameEnd)
}

// String implements fmt.Stringer.
func (f Frame) String() string {
	return string(f.Bytes())
}

// WriteTo implements io.WriterTo.
func (f Frame) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(f.Bytes())
	return int64(n), err
}
