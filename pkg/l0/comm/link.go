package comm

import (
	"context"
	"io"

	"github.com/golang/glog"
)

// FrameHandler is called when a frame is received.
type FrameHandler interface {
	HandleFrame(context.Context, Frame)
}

// HandleFrameFunc is func type of FrameHandler.
type HandleFrameFunc func(context.Context, Frame)

// HandleFrame implements FrameHandler.
func (f HandleFrameFunc) HandleFrame(ctx context.Context, frame Frame) {
	f(ctx, frame)
}

// HandleValueFunc adapts a handler only interested in the value.
func HandleValueFunc(fn func(value int)) FrameHandler {
	return HandleFrameFunc(func(_ context.Context, frame Frame) {
		fn(frame.Value)
	})
}

// Link sends and receives frames over a byte stream.
type Link struct {
	ReadWriter io.ReadWriter
	Handler    FrameHandler

	encoder *Encoder
	parser  Parser
}

// NewLink creates a Link.
func NewLink(rw io.ReadWriter) *Link {
	return &Link{
		ReadWriter: rw,
		encoder:    NewEncoder(rw),
	}
}

// Encoder gets the encoder of outgoing frames.
func (l *Link) Encoder() *Encoder {
	return l.encoder
}

// Send sends a value on a channel, see Encoder.Send.
func (l *Link) Send(ch Channel, value int) error {
	return l.encoder.Send(ch, value)
}

// Force sends a value on a channel, see Encoder.Force.
func (l *Link) Force(ch Channel, value int) error {
	return l.encoder.Force(ch, value)
}

// Run reads and dispatches frames until the stream fails or ctx is done.
// Handler is called from this goroutine.
func (l *Link) Run(ctx context.Context) error {
	dataCh, errCh := make(chan []byte), make(chan error, 1)
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go l.readLoop(subCtx, dataCh, errCh)
	for {
		select {
		case data := <-dataCh:
			l.Feed(ctx, data)
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Dropped returns the number of malformed frames received.
func (l *Link) Dropped() int {
	return l.parser.Dropped()
}

// Close implements io.Closer.
func (l *Link) Close() error {
	if closer, ok := l.ReadWriter.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Feed parses received bytes and dispatches complete frames. It is used by
// Run and must not be called while Run is active.
func (l *Link) Feed(ctx context.Context, data []byte) {
	for _, b := range data {
		f, ok := l.parser.Parse(b)
		if !ok {
			continue
		}
		glog.V(2).Infof("RECV %s", f)
		if h := l.Handler; h != nil {
			h.HandleFrame(ctx, f)
		}
	}
}

func (l *Link) readLoop(ctx context.Context, dataCh chan []byte, errCh chan error) {
	buf := make([]byte, 64)
	for {
		n, err := l.ReadWriter.Read(buf)
		if n > 0 {
			data := make([]byte, n)
			copy(data, buf[:n])
			select {
			case dataCh <- data:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			errCh <- err
			return
		}
	}
}
