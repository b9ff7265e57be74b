package id

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUnique(t *testing.T) {
	gen := NewGenerator()
	assert.NotEqual(t, gen.Generate(), gen.Generate())
}

func TestRequestID(t *testing.T) {
	before := time.Now().Truncate(time.Millisecond)
	rid := NewRequestID()

	require.True(t, strings.HasPrefix(rid.String(), RequestPrefix+"_"))
	assert.True(t, IsValid(strings.TrimPrefix(rid.String(), RequestPrefix+"_")))

	ts, err := rid.Timestamp()
	require.NoError(t, err)
	assert.False(t, ts.Before(before))
}

func TestRequestIDSortable(t *testing.T) {
	gen := NewGenerator()
	prev := gen.GenerateWithPrefix(RequestPrefix)
	for i := 0; i < 100; i++ {
		next := gen.GenerateWithPrefix(RequestPrefix)
		assert.Less(t, prev, next)
		prev = next
	}
}

func TestRequestIDTimestampInvalid(t *testing.T) {
	_, err := RequestID("req_not-a-ulid").Timestamp()
	assert.Error(t, err)
}

func TestConnID(t *testing.T) {
	cid := NewConnID()
	raw, ok := strings.CutPrefix(cid.String(), ConnPrefix+"_")
	require.True(t, ok)
	_, err := uuid.Parse(raw)
	assert.NoError(t, err)
	assert.NotEqual(t, cid, NewConnID())
}

func TestConcurrentGeneration(t *testing.T) {
	const n = 200
	var (
		mu   sync.Mutex
		seen = make(map[RequestID]struct{}, n)
		wg   sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rid := NewRequestID()
			mu.Lock()
			seen[rid] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, n)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(NewGenerator().Generate().String()))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("short"))
}
