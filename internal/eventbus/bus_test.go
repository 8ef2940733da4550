package eventbus

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriRoast/internal/models"
)

func TestSendAndReceive(t *testing.T) {
	eb := NewEventBus()
	defer eb.Close()

	require.NoError(t, eb.SendToCore(SubmitEvent{Tool: "apology", Token: 1}))
	require.NoError(t, eb.SendToUI(OutcomeEvent{Tool: "apology", Token: 1, Outcome: models.SuccessOutcome("ok")}))

	ui := <-eb.UIToCore()
	submit, ok := ui.(SubmitEvent)
	require.True(t, ok)
	assert.Equal(t, uint64(1), submit.Token)

	core := <-eb.CoreToUI()
	outcome, ok := core.(OutcomeEvent)
	require.True(t, ok)
	assert.Equal(t, "ok", outcome.Outcome.Text)
}

func TestFullChannelReportsError(t *testing.T) {
	eb := NewEventBusWithCapacity(1)
	defer eb.Close()

	var reported []EventBusError
	eb.SetErrorCallback(func(err EventBusError) { reported = append(reported, err) })

	require.NoError(t, eb.SendToUI(DecodedEvent{Token: 1}))
	err := eb.SendToUI(DecodedEvent{Token: 2})

	assert.Error(t, err)
	require.Len(t, reported, 1)
	assert.Equal(t, "SendToUI", reported[0].Operation)
}

func TestCircuitBreakerOpensAndRecovers(t *testing.T) {
	now := time.Unix(1000, 0)
	cb := NewCircuitBreaker(2, time.Minute)
	cb.now = func() time.Time { return now }

	cb.RecordFailure()
	assert.False(t, cb.IsOpen())
	cb.RecordFailure()
	assert.True(t, cb.IsOpen())

	now = now.Add(2 * time.Minute)
	assert.False(t, cb.IsOpen())
	assert.Equal(t, CircuitHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, CircuitClosed, cb.State())
}

func TestSendToUIContextWaitsForRoom(t *testing.T) {
	eb := NewEventBusWithCapacity(1)
	defer eb.Close()

	// an open breaker does not drop terminal results
	for i := 0; i < 5; i++ {
		eb.circuitBreaker.RecordFailure()
	}
	require.True(t, eb.circuitBreaker.IsOpen())

	ctx := context.Background()
	require.NoError(t, eb.SendToUIContext(ctx, OutcomeEvent{Token: 1}))

	done := make(chan error, 1)
	go func() { done <- eb.SendToUIContext(ctx, OutcomeEvent{Token: 2}) }()

	select {
	case <-done:
		t.Fatal("send returned while the channel was full")
	case <-time.After(50 * time.Millisecond):
	}

	assert.Equal(t, uint64(1), (<-eb.CoreToUI()).(OutcomeEvent).Token)
	require.NoError(t, <-done)
	assert.Equal(t, uint64(2), (<-eb.CoreToUI()).(OutcomeEvent).Token)
}

func TestSendToUIContextGivesUpOnCancel(t *testing.T) {
	eb := NewEventBusWithCapacity(1)
	defer eb.Close()

	require.NoError(t, eb.SendToUI(DecodedEvent{Token: 1}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, eb.SendToUIContext(ctx, DecodedEvent{Token: 2}), context.Canceled)
}

func TestCloseIsIdempotent(t *testing.T) {
	eb := NewEventBus()
	eb.Close()
	assert.NotPanics(t, eb.Close)
}
