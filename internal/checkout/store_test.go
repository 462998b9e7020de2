package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atelier-ng/atelier-backend/pkg/redis"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewFromAddr(mr.Addr())
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewSessionStore(client, time.Hour)
	require.NoError(t, err)
	return store
}

func TestStoreReturnsFreshSessionWhenEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, StepInfo, session.Step)
	assert.Nil(t, session.Info)
}

func TestStoreRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := NewSession()
	require.NoError(t, session.SubmitInfo(validInfo(), true))
	require.NoError(t, store.Save(ctx, "session-1", session))

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, StepMeasurements, loaded.Step)
	assert.True(t, loaded.HasBespoke)
	require.NotNil(t, loaded.Info)
	assert.Equal(t, "ada@example.com", loaded.Info.Email)
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := NewSession()
	require.NoError(t, session.SubmitInfo(validInfo(), false))
	require.NoError(t, store.Save(ctx, "session-1", session))

	other, err := store.Load(ctx, "session-2")
	require.NoError(t, err)
	assert.Equal(t, StepInfo, other.Step)
}

func TestStoreDeleteResetsSession(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	session := NewSession()
	require.NoError(t, session.SubmitInfo(validInfo(), false))
	require.NoError(t, store.Save(ctx, "session-1", session))
	require.NoError(t, store.Delete(ctx, "session-1"))

	loaded, err := store.Load(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, StepInfo, loaded.Step)
}
