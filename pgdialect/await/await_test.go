package await_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/francipvb/pgdialect-go/pgdialect/await"
)

func Test_Await_PropagatesResultValue(t *testing.T) {
	future := await.New(func(context.Context) (int, error) {
		return 42, nil
	})

	value, err := await.Await(context.Background(), future)

	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func Test_Await_PropagatesErrorWithUnchangedIdentity(t *testing.T) {
	sentinel := errors.New("boom")

	future := await.New(func(context.Context) (int, error) {
		return 0, sentinel
	})

	_, err := await.Await(context.Background(), future)

	// the bridge must re-raise the original error, not a wrapped one
	assert.Equal(t, sentinel, err)
}

func Test_Await_DoesNotStartComputationBeforeAwait(t *testing.T) {
	started := make(chan struct{}, 1)

	future := await.New(func(context.Context) (struct{}, error) {
		started <- struct{}{}
		return struct{}{}, nil
	})

	select {
	case <-started:
		t.Fatal("computation ran before being awaited")
	case <-time.After(20 * time.Millisecond):
	}

	_, err := await.Await(context.Background(), future)
	require.NoError(t, err)

	select {
	case <-started:
	default:
		t.Fatal("computation did not run")
	}
}

func Test_Await_BlocksUntilComputationCompletes(t *testing.T) {
	future := await.New(func(context.Context) (string, error) {
		time.Sleep(30 * time.Millisecond)
		return "done", nil
	})

	start := time.Now()
	value, err := await.Await(context.Background(), future)

	require.NoError(t, err)
	assert.Equal(t, "done", value)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func Test_Await_RunsComputationAtMostOnce(t *testing.T) {
	runs := 0

	future := await.New(func(context.Context) (int, error) {
		runs++
		return runs, nil
	})

	first, err := await.Await(context.Background(), future)
	require.NoError(t, err)

	second, err := await.Await(context.Background(), future)
	require.NoError(t, err)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 1, runs)
}

func Test_Await_RethrowsPanicOnCallingGoroutine(t *testing.T) {
	future := await.New(func(context.Context) (int, error) {
		panic("kaboom")
	})

	assert.PanicsWithValue(t, "kaboom", func() {
		_, _ = await.Await(context.Background(), future)
	})
}

func Test_Await_PassesContextToComputation(t *testing.T) {
	type key struct{}

	ctx := context.WithValue(context.Background(), key{}, "present")

	future := await.New(func(inner context.Context) (any, error) {
		return inner.Value(key{}), nil
	})

	value, err := await.Await(ctx, future)

	require.NoError(t, err)
	assert.Equal(t, "present", value)
}

func Test_Resolved_YieldsValueWithoutComputation(t *testing.T) {
	value, err := await.Await(context.Background(), await.Resolved("ready"))

	require.NoError(t, err)
	assert.Equal(t, "ready", value)
}

func Test_Failed_YieldsErrorWithoutComputation(t *testing.T) {
	sentinel := errors.New("nope")

	_, err := await.Await(context.Background(), await.Failed[string](sentinel))

	assert.Equal(t, sentinel, err)
}
