// SPDX-License-Identifier: MIT

package pool

import (
	"bytes"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_RunsAllTasks(t *testing.T) {
	p := New(4)
	defer p.Close()

	const n = 500
	var wg sync.WaitGroup
	var sum atomic.Int64
	wg.Add(n)
	for i := 1; i <= n; i++ {
		i := int64(i)
		require.NoError(t, p.Submit(func() {
			defer wg.Done()
			sum.Add(i)
		}))
	}
	wg.Wait()
	assert.Equal(t, int64(n*(n+1)/2), sum.Load())
}

// With one worker blocked on a gate, queued tasks observe the configured order.
func TestPool_Ordering(t *testing.T) {
	cases := []struct {
		name  string
		order Order
		want  []int
	}{
		{"fifo", FIFO, []int{0, 1, 2, 3}},
		{"lifo", LIFO, []int{3, 2, 1, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := New(1, WithOrder(tc.order))
			gate := make(chan struct{})
			started := make(chan struct{})
			require.NoError(t, p.Submit(func() {
				close(started)
				<-gate
			}))
			<-started

			var mu sync.Mutex
			var got []int
			for i := 0; i < 4; i++ {
				i := i
				require.NoError(t, p.Submit(func() {
					mu.Lock()
					got = append(got, i)
					mu.Unlock()
				}))
			}
			assert.Equal(t, 4, p.Pending())
			close(gate)
			p.Close()

			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPool_SubmitAfterClose(t *testing.T) {
	p := New(2)
	p.Close()
	p.Close() // idempotent

	require.ErrorIs(t, p.Submit(func() {}), ErrClosed)
	require.ErrorIs(t, p.Submit(nil), ErrNilTask)
}

func TestPool_CloseDrainsQueue(t *testing.T) {
	p := New(1)
	var ran atomic.Int32
	for i := 0; i < 50; i++ {
		require.NoError(t, p.Submit(func() {
			time.Sleep(100 * time.Microsecond)
			ran.Add(1)
		}))
	}
	p.Close()
	assert.Equal(t, int32(50), ran.Load())
	assert.Equal(t, 0, p.Pending())
}

func TestPool_PanicIsRecoveredAndLogged(t *testing.T) {
	var buf bytes.Buffer
	var mu sync.Mutex
	log := zerolog.New(zerolog.SyncWriter(&lockedWriter{mu: &mu, w: &buf}))
	p := New(1, WithLogger(log))

	before := testutil.ToFloat64(taskPanics)

	require.NoError(t, p.Submit(func() { panic("kaboom") }))
	done := make(chan struct{})
	require.NoError(t, p.Submit(func() { close(done) }))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after a panicking task")
	}
	p.Close()

	assert.Equal(t, before+1, testutil.ToFloat64(taskPanics))
	mu.Lock()
	assert.Contains(t, buf.String(), "task panicked")
	assert.Contains(t, buf.String(), "kaboom")
	mu.Unlock()
}

func TestParseOrder(t *testing.T) {
	o, err := ParseOrder("LIFO")
	require.NoError(t, err)
	assert.Equal(t, LIFO, o)

	o, err = ParseOrder("")
	require.NoError(t, err)
	assert.Equal(t, FIFO, o)

	_, err = ParseOrder("random")
	require.Error(t, err)

	assert.Equal(t, "lifo", LIFO.String())
	assert.Equal(t, "fifo", FIFO.String())
}

func TestNew_ClampsWorkers(t *testing.T) {
	p := New(0)
	defer p.Close()
	assert.Equal(t, 1, p.Workers())
}

type lockedWriter struct {
	mu *sync.Mutex
	w  *bytes.Buffer
}

func (l *lockedWriter) Write(b []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.w.Write(b)
}
