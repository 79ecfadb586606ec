// Package websocket carries L0 frames as websocket messages.
package websocket

import (
	"io"

	"golang.org/x/net/websocket"
)

// ReadWriter implements io.ReadWriteCloser on a websocket connection.
// Each Write is sent as one binary message and received messages are
// read as a stream.
type ReadWriter struct {
	Conn *websocket.Conn

	pending []byte
}

// New wraps websocket.Conn.
func New(conn *websocket.Conn) *ReadWriter {
	return &ReadWriter{Conn: conn}
}

// Dial connects to a websocket endpoint.
func Dial(url, origin string) (*ReadWriter, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, err
	}
	return New(conn), nil
}

// Read implements io.Reader.
func (p *ReadWriter) Read(b []byte) (int, error) {
	for len(p.pending) == 0 {
		var msg []byte
		if err := websocket.Message.Receive(p.Conn, &msg); err != nil {
			return 0, err
		}
		p.pending = msg
	}
	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

// Write implements io.Writer.
func (p *ReadWriter) Write(b []byte) (int, error) {
	if err := websocket.Message.Send(p.Conn, b); err != nil {
		return 0, err
	}
	return len(b), nil
}

// Close implements io.Closer.
func (p *ReadWriter) Close() error {
	return p.Conn.Close()
}

// Handler serves each accepted connection as a ReadWriter.
func Handler(serve func(io.ReadWriteCloser)) websocket.Handler {
	return func(conn *websocket.Conn) {
		serve(New(conn))
	}
}
