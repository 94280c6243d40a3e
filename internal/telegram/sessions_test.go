package telegram

import (
	"testing"
	"time"

	"github.com/rverdelli/PlatformVA/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_GetCreatesFreshSession(t *testing.T) {
	store := newSessionStore(time.Minute)

	session := store.get(42)

	require.NotNil(t, session)
	assert.NotEmpty(t, session.ID)
	assert.Equal(t, entity.PhaseClarification, session.State.Phase)
	assert.Empty(t, session.State.RequirementMessages)
}

func TestSessionStore_PutGetRoundTrip(t *testing.T) {
	store := newSessionStore(time.Minute)

	session := store.get(42)
	session.State.Phase = entity.PhaseBlockProposal
	session.State.BaseRequest = "a CRM"
	store.put(42, session)

	got := store.get(42)
	assert.Equal(t, session.ID, got.ID)
	assert.Equal(t, entity.PhaseBlockProposal, got.State.Phase)
}

func TestSessionStore_SessionsAreIsolatedPerChat(t *testing.T) {
	store := newSessionStore(time.Minute)

	first := store.get(1)
	second := store.get(2)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestSessionStore_ResetStartsOver(t *testing.T) {
	store := newSessionStore(time.Minute)

	session := store.get(42)
	session.State.Phase = entity.PhaseBlockProposal
	store.put(42, session)

	store.reset(42)

	fresh := store.get(42)
	assert.NotEqual(t, session.ID, fresh.ID)
	assert.Equal(t, entity.PhaseClarification, fresh.State.Phase)
}

func TestSessionStore_LockIsStablePerChat(t *testing.T) {
	store := newSessionStore(time.Minute)

	assert.Same(t, store.lock(42), store.lock(42))
	assert.NotSame(t, store.lock(42), store.lock(43))
}
