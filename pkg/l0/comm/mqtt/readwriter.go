package mqtt

import (
	"io"
	"sync"
)

// Topic suffixes of a device: the host writes to In and reads from Out.
const (
	TopicIn     = "in"
	TopicOut    = "out"
	TopicEvents = "events"
)

// ReadWriter implements io.ReadWriteCloser over two topics. Each Write is
// published as one message and received payloads are read as a stream.
type ReadWriter struct {
	Bus      *Bus
	SubTopic string
	PubTopic string

	sub       *Subscription
	payloadCh chan []byte
	pending   []byte
	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewReadWriter creates the ReadWriter.
func NewReadWriter(b *Bus) *ReadWriter {
	return &ReadWriter{
		Bus:       b,
		payloadCh: make(chan []byte, 16),
		closeCh:   make(chan struct{}),
	}
}

// WithTopics specifies the topics.
func (p *ReadWriter) WithTopics(sub, pub string) *ReadWriter {
	p.SubTopic, p.PubTopic = sub, pub
	return p
}

// ForHost sets topics used by the host side of a device:
// SubTopic = id/out, PubTopic = id/in.
func (p *ReadWriter) ForHost(deviceID string) *ReadWriter {
	return p.WithTopics(deviceID+"/"+TopicOut, deviceID+"/"+TopicIn)
}

// ForDevice sets topics used by a bridge on the device side:
// SubTopic = id/in, PubTopic = id/out.
func (p *ReadWriter) ForDevice(deviceID string) *ReadWriter {
	return p.WithTopics(deviceID+"/"+TopicIn, deviceID+"/"+TopicOut)
}

// Open subscribes SubTopic.
func (p *ReadWriter) Open() error {
	p.sub = p.Bus.Sub(p.SubTopic, p.handleMsg)
	if p.sub.Token == nil {
		return nil
	}
	p.sub.Token.Wait()
	return p.sub.Token.Error()
}

// Read implements io.Reader.
func (p *ReadWriter) Read(b []byte) (int, error) {
	if len(p.pending) == 0 {
		select {
		case payload := <-p.payloadCh:
			p.pending = payload
		case <-p.closeCh:
			return 0, io.EOF
		}
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

// Write implements io.Writer.
func (p *ReadWriter) Write(b []byte) (int, error) {
	payload := make([]byte, len(b))
	copy(payload, b)
	token := p.Bus.Pub(p.PubTopic, payload)
	token.Wait()
	if err := token.Error(); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Close implements io.Closer. The Bus is closed as well.
func (p *ReadWriter) Close() error {
	var err error
	p.closeOnce.Do(func() {
		close(p.closeCh)
		if p.sub != nil {
			err = p.sub.Close()
		}
		p.Bus.Close()
	})
	return err
}

func (p *ReadWriter) handleMsg(_ string, payload []byte) {
	select {
	case p.payloadCh <- payload:
	case <-p.closeCh:
	}
}

// Dial connects to the broker and opens the host side of a device.
func Dial(brokerURL, deviceID string) (*ReadWriter, error) {
	bus, err := NewBusFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	if err = bus.Connect(); err != nil {
		return nil, err
	}
	rw := NewReadWriter(bus).ForHost(deviceID)
	if err = rw.Open(); err != nil {
		bus.Close()
		return nil, err
	}
	return rw, nil
}
