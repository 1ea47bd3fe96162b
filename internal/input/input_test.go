package input

import (
	"context"
	"errors"
	"testing"

	"github.com/annel0/tile-adventure/internal/vec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	claim Claim
	err   error
	calls int
}

func (r *recorder) HandleInput(ctx context.Context, in Intents) (Claim, error) {
	r.calls++
	return r.claim, r.err
}

func TestChain_StopsAtFirstClaim(t *testing.T) {
	overlay := &recorder{claim: Pass}
	world := &recorder{claim: Claimed}
	fallback := &recorder{claim: Claimed}

	chain := NewChain(overlay, world, fallback)
	idx, err := chain.Dispatch(context.Background(), Intents{Attack: true})
	require.NoError(t, err)

	assert.Equal(t, 1, idx)
	assert.Equal(t, 1, overlay.calls)
	assert.Equal(t, 1, world.calls)
	assert.Equal(t, 0, fallback.calls, "после Claimed ввод дальше не передаётся")
}

func TestChain_PushOverlaySuppressesWorld(t *testing.T) {
	world := &recorder{claim: Claimed}
	chain := NewChain(world)

	dialog := &recorder{claim: Claimed}
	chain.Push(dialog)
	assert.Equal(t, 2, chain.Len())

	idx, err := chain.Dispatch(context.Background(), Intents{Move: vec.Vec2Float{X: 1}})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, 0, world.calls)

	assert.Same(t, dialog, chain.Pop())
	_, err = chain.Dispatch(context.Background(), Intents{})
	require.NoError(t, err)
	assert.Equal(t, 1, world.calls)
}

func TestChain_UnclaimedAndErrors(t *testing.T) {
	chain := NewChain(&recorder{claim: Pass}, nil)
	idx, err := chain.Dispatch(context.Background(), Intents{})
	require.NoError(t, err)
	assert.Equal(t, -1, idx)

	boom := errors.New("boom")
	chain = NewChain(&recorder{err: boom})
	_, err = chain.Dispatch(context.Background(), Intents{})
	assert.ErrorIs(t, err, boom)
}

func TestCloseHandler(t *testing.T) {
	opened := 0
	h := CloseHandler(func(ctx context.Context) error {
		opened++
		return nil
	})

	claim, err := h.HandleInput(context.Background(), Intents{Attack: true})
	require.NoError(t, err)
	assert.Equal(t, Pass, claim)

	claim, err = h.HandleInput(context.Background(), Intents{Close: true})
	require.NoError(t, err)
	assert.Equal(t, Claimed, claim)
	assert.Equal(t, 1, opened)
}

func TestIntents_Empty(t *testing.T) {
	assert.True(t, Intents{}.Empty())
	assert.False(t, Intents{Interact: true}.Empty())
	assert.False(t, Intents{Move: vec.Vec2Float{Y: -1}}.Empty())
}
