package lifecycle

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAppInfoRecordsState(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())
	ctx := context.Background()

	r := h.Handle(ctx, IntentAppInfo, map[string]any{"modified": true, "title": "notes.txt"})
	require.True(t, r.Success)
	assert.Equal(t, StatusOK, r.Status)
	require.NotNil(t, r.Modified)
	assert.True(t, *r.Modified)
	assert.True(t, h.Modified())
	assert.Equal(t, "notes.txt", h.Title())

	// A message without the flag leaves it untouched.
	h.Handle(ctx, IntentAppInfo, map[string]any{"title": "other"})
	assert.True(t, h.Modified())
	assert.Equal(t, "other", h.Title())

	h.Handle(ctx, IntentAppInfo, map[string]any{"modified": false})
	assert.False(t, h.Modified())
}

func TestCloseReportsModified(t *testing.T) {
	h := NewHandler(nil, zap.NewNop())
	ctx := context.Background()

	for _, intent := range []string{IntentClose, IntentCloseAll} {
		r := h.Handle(ctx, intent, nil)
		assert.True(t, r.Success, intent)
		assert.Equal(t, false, r.Fields()["modified"], intent)
	}

	h.Handle(ctx, IntentAppInfo, map[string]any{"modified": true})
	r := h.Handle(ctx, IntentClose, nil)
	assert.Equal(t, true, r.Fields()["modified"])
}

func TestQuitShutsDownOnce(t *testing.T) {
	var calls atomic.Int32
	h := NewHandler(func() { calls.Add(1) }, zap.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := h.Handle(context.Background(), IntentQuit, nil)
			assert.True(t, r.Success)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestUnknownIntent(t *testing.T) {
	h := NewHandler(nil, nil)
	r := h.Handle(context.Background(), "maximize", nil)

	assert.False(t, r.Success)
	assert.Equal(t, StatusUnknownIntent, r.Status)
	assert.Equal(t, map[string]any{"success": false, "status": "unknown intent"}, r.Fields())
}
