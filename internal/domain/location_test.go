package domain

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationState_AdvanceNTimes(t *testing.T) {
	state := NewLocationState(Location{}, 0.001)

	for range 250 {
		state.Advance()
	}

	loc := state.Snapshot()
	assert.InDelta(t, 0.25, loc.Latitude, 1e-9)
	assert.InDelta(t, 0.25, loc.Longitude, 1e-9)
	assert.Equal(t, uint64(250), state.Updates())
}

func TestLocationState_AdvanceFromInitial(t *testing.T) {
	state := NewLocationState(Location{Latitude: -23.5, Longitude: -46.6}, 0.001)

	loc := state.Advance()

	assert.InDelta(t, -23.499, loc.Latitude, 1e-9)
	assert.InDelta(t, -46.599, loc.Longitude, 1e-9)
	assert.Equal(t, loc, state.Snapshot())
}

// Пара координат читается целиком: при одинаковом старте и шаге
// latitude и longitude всегда равны, если чтение не разорвано.
func TestLocationState_NoTornReads(t *testing.T) {
	state := NewLocationState(Location{}, 0.001)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range 20000 {
			state.Advance()
		}
	}()

	const readers = 4
	torn := make(chan Location, readers)
	for range readers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20000 {
				loc := state.Snapshot()
				if loc.Latitude != loc.Longitude {
					torn <- loc
					return
				}
			}
		}()
	}

	wg.Wait()
	close(torn)

	for loc := range torn {
		t.Fatalf("torn read: %+v", loc)
	}
	assert.Equal(t, uint64(20000), state.Updates())
}

func TestLocationState_AdvanceTask(t *testing.T) {
	state := NewLocationState(Location{}, 0.001)

	require.NoError(t, state.AdvanceTask(context.Background()))
	assert.Equal(t, uint64(1), state.Updates())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, state.AdvanceTask(ctx), context.Canceled)
	assert.Equal(t, uint64(1), state.Updates())
}
