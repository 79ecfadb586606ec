package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/ambar.go/pkg/abc"
	"github.com/robotalks/ambar.go/pkg/l0/comm"
	"github.com/robotalks/ambar.go/pkg/player"
)

type sentValue struct {
	value  int
	forced bool
}

type recorder struct {
	sent []sentValue
	err  error
}

func (r *recorder) Send(_ comm.Channel, v int) error {
	r.sent = append(r.sent, sentValue{v, false})
	return r.err
}

func (r *recorder) Force(_ comm.Channel, v int) error {
	r.sent = append(r.sent, sentValue{v, true})
	return r.err
}

func newTestPlayer(r *recorder) *player.Player {
	p := player.New(r)
	p.Key = abc.KeyC
	return p
}

func TestRunStepsUntilEnd(t *testing.T) {
	r := &recorder{}
	require.NoError(t, runSteps(context.Background(), newTestPlayer(r), "CzA", 0, time.Millisecond))
	require.Equal(t, []sentValue{
		{262, false}, {0, false}, {440, false}, {0, false}, {0, true},
	}, r.sent)
}

func TestRunStepsCount(t *testing.T) {
	r := &recorder{}
	require.NoError(t, runSteps(context.Background(), newTestPlayer(r), "CD", 3, time.Millisecond))
	require.Equal(t, []sentValue{
		{262, false}, {294, false}, {0, false}, {0, true},
	}, r.sent)
}

func TestRunStepsError(t *testing.T) {
	errSend := errors.New("send failed")
	r := &recorder{err: errSend}
	err := runSteps(context.Background(), newTestPlayer(r), "CD", 0, time.Millisecond)
	require.Equal(t, errSend, err)
	require.Equal(t, []sentValue{{262, false}, {0, true}}, r.sent)
}

func TestRunStepsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &recorder{}
	err := runSteps(ctx, newTestPlayer(r), "CDEF", 0, time.Hour)
	require.Equal(t, context.Canceled, err)
	require.Equal(t, []sentValue{{262, false}, {0, true}}, r.sent)
}

func TestRunStepsTimeoutSilences(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	r := &recorder{}
	err := runSteps(ctx, newTestPlayer(r), "CDEFGAB", 0, 20*time.Millisecond)
	require.Equal(t, context.DeadlineExceeded, err)
	require.NotEmpty(t, r.sent)
	require.Equal(t, sentValue{0, true}, r.sent[len(r.sent)-1])
}

func TestRunStepsEmpty(t *testing.T) {
	r := &recorder{}
	require.NoError(t, runSteps(context.Background(), newTestPlayer(r), "", 0, time.Millisecond))
	require.Empty(t, r.sent)
}
