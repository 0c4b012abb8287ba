package hooks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/printdesk/printdesk/internal/config"
	"github.com/printdesk/printdesk/internal/logging"
)

func testManager() *Manager {
	return NewManager(logging.New(nil, "silent"))
}

func TestEmit_RunsHandlersInOrder(t *testing.T) {
	m := testManager()

	var order []string
	m.On(EventTurnCompleted, "first", func(_ context.Context, p Payload) error {
		order = append(order, "first:"+p.Event)
		return nil
	})
	m.On(EventTurnCompleted, "second", func(_ context.Context, _ Payload) error {
		order = append(order, "second")
		return errors.New("handler failed")
	})
	m.On(EventTurnCompleted, "third", func(_ context.Context, _ Payload) error {
		order = append(order, "third")
		return nil
	})

	m.Emit(context.Background(), EventTurnCompleted, map[string]any{"sessionId": "sess-1"})

	// A failing handler does not stop the ones after it.
	assert.Equal(t, []string{"first:turn_completed", "second", "third"}, order)
}

func TestEmit_PassesData(t *testing.T) {
	m := testManager()

	var got Payload
	m.On(EventMessageReceived, "capture", func(_ context.Context, p Payload) error {
		got = p
		return nil
	})
	m.Emit(context.Background(), EventMessageReceived, map[string]any{"text": "hi"})

	assert.Equal(t, EventMessageReceived, got.Event)
	assert.Equal(t, "hi", got.Data["text"])
}

func TestFire_DispatchesAsync(t *testing.T) {
	m := testManager()

	var wg sync.WaitGroup
	wg.Add(2)
	m.On(EventTurnErrored, "a", func(_ context.Context, _ Payload) error {
		wg.Done()
		return nil
	})
	m.On(EventTurnErrored, "b", func(_ context.Context, _ Payload) error {
		wg.Done()
		return nil
	})

	m.Fire(EventTurnErrored, nil)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handlers did not run")
	}
}

func TestFire_NoHandlersIsNoop(t *testing.T) {
	testManager().Fire(EventGatewayStart, nil)
}

func TestRegisterConfig(t *testing.T) {
	m := testManager()
	m.RegisterConfig(config.HooksConfig{
		TurnCompleted: []config.HookEntry{
			{Command: "echo done"},
			{Command: "echo also"},
		},
		GatewayStart: []config.HookEntry{{Command: "echo up"}},
	})

	assert.Equal(t, 2, m.Count(EventTurnCompleted))
	assert.Equal(t, 1, m.Count(EventGatewayStart))
	assert.Equal(t, 0, m.Count(EventTurnErrored))
}

func TestShellHandler_RunsCommand(t *testing.T) {
	m := testManager()
	m.RegisterConfig(config.HooksConfig{
		TurnCompleted: []config.HookEntry{{Command: "cat > /dev/null"}},
	})
	require.Equal(t, 1, m.Count(EventTurnCompleted))

	// Runs the command synchronously so a failure would surface in logs.
	m.Emit(context.Background(), EventTurnCompleted, map[string]any{"sessionId": "sess-1"})
}
