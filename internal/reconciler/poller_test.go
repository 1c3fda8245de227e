package reconciler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/masterskaya/storefront/internal/view"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestPoller_RefreshesOnInterval(t *testing.T) {
	mock := &mockCartClient{snap: snapshot(0, 0)}
	sut := NewPoller(New(mock, view.NewPage(nil, nil), nil), 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sut.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return mock.summaryCount() >= 3 // one immediate refresh plus ticks
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop on context cancellation")
	}
}

func TestPoller_DefaultInterval(t *testing.T) {
	sut := NewPoller(New(&mockCartClient{}, view.NewPage(nil, nil), nil), 0)
	require.Equal(t, 30*time.Second, sut.interval)
}
