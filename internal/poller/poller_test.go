package poller

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/skalibog/benzboard/internal/client"
	"github.com/skalibog/benzboard/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	calls     atomic.Int32
	active    atomic.Int32
	maxActive atomic.Int32

	started chan int32
	// release, если задан, держит каждый запрос до получения значения
	release chan struct{}
	fail    atomic.Bool
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{started: make(chan int32, 64)}
}

func (f *fakeFetcher) FetchStatus(ctx context.Context) client.Result[models.StatusPayload] {
	n := f.calls.Add(1)
	cur := f.active.Add(1)
	for {
		prev := f.maxActive.Load()
		if cur <= prev || f.maxActive.CompareAndSwap(prev, cur) {
			break
		}
	}
	defer f.active.Add(-1)

	f.started <- n
	if f.release != nil {
		<-f.release
	}
	if f.fail.Load() {
		return client.Result[models.StatusPayload]{Error: "boom", Err: errors.New("boom")}
	}
	return client.Result[models.StatusPayload]{
		Success: true,
		Data:    models.StatusPayload{RoundID: models.RoundID(string(rune('0' + n%10)))},
	}
}

func waitCall(t *testing.T, f *fakeFetcher, within time.Duration) int32 {
	t.Helper()
	select {
	case n := <-f.started:
		return n
	case <-time.After(within):
		t.Fatalf("timed out waiting for fetch")
		return 0
	}
}

func recvUpdate(t *testing.T, ch <-chan models.StatusPayload, within time.Duration) models.StatusPayload {
	t.Helper()
	select {
	case snap, ok := <-ch:
		if !ok {
			t.Fatalf("updates channel closed unexpectedly")
		}
		return snap
	case <-time.After(within):
		t.Fatalf("timed out waiting for update")
		return models.StatusPayload{}
	}
}

func TestPoller_StartFetchesImmediately(t *testing.T) {
	f := newFakeFetcher()
	p := New(f, time.Hour)
	stop := p.Start(context.Background())
	defer stop()

	waitCall(t, f, 200*time.Millisecond)
	snap := recvUpdate(t, p.Updates(), 200*time.Millisecond)
	assert.Equal(t, "1", snap.RoundID.String())
	assert.EqualValues(t, 1, f.calls.Load())
}

func TestPoller_SkipsTickWhileInFlight(t *testing.T) {
	f := newFakeFetcher()
	f.release = make(chan struct{})
	p := New(f, time.Hour)
	stop := p.Start(context.Background())
	defer stop()

	waitCall(t, f, 200*time.Millisecond)
	require.Eventually(t, p.InFlight, time.Second, 5*time.Millisecond)

	p.Tick()
	p.Tick()
	p.Tick()
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, f.calls.Load(), "no concurrent fetch while one is outstanding")

	f.release <- struct{}{}
	recvUpdate(t, p.Updates(), 200*time.Millisecond)
	require.Eventually(t, func() bool { return !p.InFlight() }, time.Second, 5*time.Millisecond)

	// Теперь внеочередной тик проходит
	p.Tick()
	waitCall(t, f, 200*time.Millisecond)
	f.release <- struct{}{}
	assert.EqualValues(t, 2, f.calls.Load())
	assert.EqualValues(t, 1, f.maxActive.Load())
}

func TestPoller_ReschedulesAfterCompletion(t *testing.T) {
	f := newFakeFetcher()
	p := New(f, 20*time.Millisecond)
	stop := p.Start(context.Background())
	defer stop()

	for i := 0; i < 4; i++ {
		waitCall(t, f, 500*time.Millisecond)
	}
	assert.EqualValues(t, 1, f.maxActive.Load())
}

func TestPoller_FailuresAreSwallowedAndRescheduled(t *testing.T) {
	f := newFakeFetcher()
	f.fail.Store(true)
	p := New(f, 10*time.Millisecond)
	stop := p.Start(context.Background())
	defer stop()

	waitCall(t, f, 200*time.Millisecond)
	waitCall(t, f, 200*time.Millisecond)
	waitCall(t, f, 200*time.Millisecond)

	select {
	case snap := <-p.Updates():
		t.Fatalf("failed fetch must not deliver, got %+v", snap)
	default:
	}
}

func TestPoller_StopDiscardsLateResult(t *testing.T) {
	f := newFakeFetcher()
	f.release = make(chan struct{})
	p := New(f, 10*time.Millisecond)
	p.Start(context.Background())

	waitCall(t, f, 200*time.Millisecond)
	p.Stop()
	f.release <- struct{}{}

	select {
	case snap, ok := <-p.Updates():
		assert.False(t, ok, "late snapshot delivered after stop: %+v", snap)
	case <-time.After(200 * time.Millisecond):
		t.Fatalf("updates channel was not closed")
	}

	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 1, f.calls.Load(), "no new cycles after stop")
	p.Stop()
}

func TestPoller_ContextCancelStops(t *testing.T) {
	f := newFakeFetcher()
	ctx, cancel := context.WithCancel(context.Background())
	p := New(f, time.Hour)
	p.Start(ctx)
	waitCall(t, f, 200*time.Millisecond)
	recvUpdate(t, p.Updates(), 200*time.Millisecond)

	cancel()
	select {
	case _, ok := <-p.Updates():
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatalf("poller did not stop on context cancel")
	}
}

func TestPoller_LatestSnapshotWins(t *testing.T) {
	f := newFakeFetcher()
	p := New(f, 5*time.Millisecond)
	stop := p.Start(context.Background())

	waitCall(t, f, 200*time.Millisecond)
	waitCall(t, f, 200*time.Millisecond)
	waitCall(t, f, 200*time.Millisecond)
	stop()

	// Буфер на один снимок: старые вытеснены, остался не больше одного
	count := 0
	for range p.Updates() {
		count++
	}
	assert.LessOrEqual(t, count, 1)
}
