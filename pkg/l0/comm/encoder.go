package comm

import (
	"io"
	"sync"

	"github.com/golang/glog"
)

// Encoder writes frames and suppresses values already sent on a channel.
type Encoder struct {
	Writer io.Writer

	cache [NumChannels]cachedValue
	lock  sync.Mutex
}

type cachedValue struct {
	value int
	valid bool
}

// NewEncoder creates an Encoder.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{Writer: w}
}

// Send clamps value and writes a frame unless it equals the last value
// sent on the channel. The cache is only updated when the write succeeds.
func (e *Encoder) Send(ch Channel, value int) error {
	return e.send(ch, value, false)
}

// Force writes a frame even if the value equals the cached one.
func (e *Encoder) Force(ch Channel, value int) error {
	return e.send(ch, value, true)
}

func (e *Encoder) send(ch Channel, value int, force bool) error {
	if !ch.IsValid() {
		return ErrInvalidChannel
	}
	f := Frame{Channel: ch, Value: ClampValue(value)}
	e.lock.Lock()
	defer e.lock.Unlock()
	c := &e.cache[ch]
	if !force && c.valid && c.value == f.Value {
		glog.V(3).Infof("SKIP %s", f)
		return nil
	}
	if _, err := f.WriteTo(e.Writer); err != nil {
		return err
	}
	c.value, c.valid = f.Value, true
	glog.V(2).Infof("SEND %s", f)
	return nil
}

// LastSent returns the value last written on a channel.
func (e *Encoder) LastSent(ch Channel) (int, bool) {
	if !ch.IsValid() {
		return 0, false
	}
	e.lock.Lock()
	defer e.lock.Unlock()
	c := e.cache[ch]
	return c.value, c.valid
}

// Forget clears the cached value of a channel so the next value is sent.
func (e *Encoder) Forget(ch Channel) {
	if !ch.IsValid() {
		return
	}
	e.lock.Lock()
	e.cache[ch] = cachedValue{}
	e.lock.Unlock()
}

// ForgetAll clears the cache of all channels.
func (e *Encoder) ForgetAll() {
	e.lock.Lock()
	e.cache = [NumChannels]cachedValue{}
	e.lock.Unlock()
}
