package comm

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// testStream delivers injected chunks to Read and records written bytes.
type testStream struct {
	readCh  chan []byte
	writeCh chan byte
}

func newTestStream() *testStream {
	return &testStream{
		readCh:  make(chan []byte, 16),
		writeCh: make(chan byte, 64),
	}
}

func (s *testStream) Read(p []byte) (int, error) {
	chunk, ok := <-s.readCh
	if !ok {
		return 0, io.EOF
	}
	return copy(p, chunk), nil
}

func (s *testStream) Write(p []byte) (int, error) {
	for _, b := range p {
		s.writeCh <- b
	}
	return len(p), nil
}

func (s *testStream) inject(p string) {
	s.readCh <- []byte(p)
}

func (s *testStream) close() {
	close(s.readCh)
}

type linkTestCtx struct {
	t       *testing.T
	stream  *testStream
	link    *Link
	frameCh chan Frame
}

func newLinkTestCtx(t *testing.T) *linkTestCtx {
	tctx := &linkTestCtx{
		t:       t,
		stream:  newTestStream(),
		frameCh: make(chan Frame, 16),
	}
	tctx.link = NewLink(tctx.stream)
	tctx.link.Handler = HandleFrameFunc(func(ctx context.Context, f Frame) {
		tctx.frameCh <- f
	})
	return tctx
}

func (c *linkTestCtx) expectFrames(frames ...Frame) *linkTestCtx {
	for n, expected := range frames {
		select {
		case f := <-c.frameCh:
			require.Equalf(c.t, expected, f, "frame[%d] mismatch", n)
		case <-time.After(500 * time.Millisecond):
			c.t.Fatalf("frame[%d] timeout", n)
		}
	}
	return c
}

func (c *linkTestCtx) expectNoFrame() *linkTestCtx {
	select {
	case f := <-c.frameCh:
		c.t.Fatalf("unexpected frame %v", f)
	case <-time.After(50 * time.Millisecond):
	}
	return c
}

func (c *linkTestCtx) expectWritten(s string) *linkTestCtx {
	for n := 0; n < len(s); n++ {
		select {
		case b := <-c.stream.writeCh:
			require.Equalf(c.t, s[n], b, "written[%d] mismatch", n)
		case <-time.After(500 * time.Millisecond):
			c.t.Fatalf("written[%d] timeout", n)
		}
	}
	return c
}

func (c *linkTestCtx) expectNothingWritten() *linkTestCtx {
	select {
	case b := <-c.stream.writeCh:
		c.t.Fatalf("unexpected byte %q", b)
	default:
	}
	return c
}

func TestLinkReceive(t *testing.T) {
	tctx := newLinkTestCtx(t)
	ctx, cancel := context.WithCancel(context.TODO())
	defer cancel()
	errCh := make(chan error, 1)
	go func() {
		errCh <- tctx.link.Run(ctx)
	}()

	tctx.stream.inject("sa440esb0e")
	tctx.expectFrames(Frame{ChannelA, 440}, Frame{ChannelB, 0})

	tctx.stream.inject("xz12esaese20000e")
	tctx.expectFrames(Frame{ChannelE, 20000}).expectNoFrame()
	require.Equal(t, 2, tctx.link.Dropped())

	tctx.stream.inject("sd")
	tctx.stream.inject("12e")
	tctx.expectFrames(Frame{ChannelD, 12})

	tctx.stream.close()
	select {
	case err := <-errCh:
		require.Equal(t, io.EOF, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("link not stopped")
	}
}

func TestLinkCancel(t *testing.T) {
	tctx := newLinkTestCtx(t)
	defer tctx.stream.close()
	ctx, cancel := context.WithCancel(context.TODO())
	errCh := make(chan error, 1)
	go func() {
		errCh <- tctx.link.Run(ctx)
	}()
	cancel()
	select {
	case err := <-errCh:
		require.Equal(t, context.Canceled, err)
	case <-time.After(500 * time.Millisecond):
		t.Fatal("link not stopped")
	}
}

func TestLinkSend(t *testing.T) {
	tctx := newLinkTestCtx(t)
	require.NoError(t, tctx.link.Send(ChannelA, 440))
	tctx.expectWritten("sa440e")
	require.NoError(t, tctx.link.Send(ChannelA, 440))
	tctx.expectNothingWritten()
	require.NoError(t, tctx.link.Send(ChannelC, 440))
	tctx.expectWritten("sc440e")
	require.NoError(t, tctx.link.Force(ChannelA, 440))
	tctx.expectWritten("sa440e")
	require.NoError(t, tctx.link.Send(ChannelA, 30000))
	tctx.expectWritten("sa20000e")
	require.Equal(t, ErrInvalidChannel, tctx.link.Send(Channel(5), 1))
	tctx.expectNothingWritten()
}

func TestHandleValueFunc(t *testing.T) {
	var values []int
	l := NewLink(nil)
	l.Handler = HandleValueFunc(func(v int) { values = append(values, v) })
	l.Feed(context.TODO(), []byte("sa1esb2e"))
	require.Equal(t, []int{1, 2}, values)
}
