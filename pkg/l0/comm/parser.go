package comm

import "sync/atomic"

// MaxFrameLen bounds the bytes buffered before a terminator. Longer input
// is discarded up to the next terminator.
const MaxFrameLen = 16

// Parser parses bytes received into frames.
type Parser struct {
	buf      [MaxFrameLen]byte
	n        int
	overflow bool
	dropped  atomic.Int64
}

// Parse consumes one byte. It returns a frame when b terminates a valid
// one. Invalid frames are dropped silently.
//
// The channel letter 'e' is the same byte as the terminator; it is taken
// as the channel letter when it directly follows the start byte.
func (p *Parser) Parse(b byte) (Frame, bool) {
	if b == frameEnd && !p.expectsChannel() {
		f, ok := p.frame()
		if !ok {
			p.dropped.Add(1)
		}
		p.Reset()
		return f, ok
	}
	if p.n < len(p.buf) {
		p.buf[p.n] = b
		p.n++
	} else {
		p.overflow = true
	}
	return Frame{}, false
}

// Reset discards buffered bytes.
func (p *Parser) Reset() {
	p.n, p.overflow = 0, false
}

// Buffered returns the number of bytes waiting for a terminator.
func (p *Parser) Buffered() int {
	return p.n
}

// Dropped returns the number of malformed frames dropped so far. It may
// be called while another goroutine parses.
func (p *Parser) Dropped() int {
	return int(p.dropped.Load())
}

func (p *Parser) expectsChannel() bool {
	return p.n == 1 && p.buf[0] == frameStart
}

func (p *Parser) frame() (f Frame, ok bool) {
	if p.overflow || p.n < 3 || p.buf[0] != frameStart {
		return
	}
	ch, valid := ChannelFromLetter(p.buf[1])
	if !valid {
		return
	}
	value := 0
	for _, c := range p.buf[2:p.n] {
		if c < '0' || c > '9' {
			return
		}
		value = value*10 + int(c-'0')
	}
	return Frame{Channel: ch, Value: value}, true
}
