package client

import (
	"testing"

	"devconnector/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceIsPure(t *testing.T) {
	before := State{
		Alerts: []Alert{{ID: "a1", Msg: "hello", Kind: "success"}},
		Auth:   AuthState{Token: "tok", IsAuthenticated: true},
	}
	snapshot := State{
		Alerts: []Alert{{ID: "a1", Msg: "hello", Kind: "success"}},
		Auth:   AuthState{Token: "tok", IsAuthenticated: true},
	}

	after := Reduce(before, Action{Type: ActionSetAlert, Payload: Alert{ID: "a2", Msg: "bye"}})

	// The input state is untouched; the output is a fresh value.
	assert.Equal(t, snapshot, before)
	require.Len(t, after.Alerts, 2)
	assert.Equal(t, "a2", after.Alerts[1].ID)
}

func TestAlertAddRemove(t *testing.T) {
	s := initialState()
	s = Reduce(s, Action{Type: ActionSetAlert, Payload: Alert{ID: "a1", Msg: "one"}})
	s = Reduce(s, Action{Type: ActionSetAlert, Payload: Alert{ID: "a2", Msg: "two"}})
	require.Len(t, s.Alerts, 2)

	s = Reduce(s, Action{Type: ActionRemoveAlert, Payload: "a1"})
	require.Len(t, s.Alerts, 1)
	assert.Equal(t, "a2", s.Alerts[0].ID)

	// Removing an unknown id is a no-op.
	s = Reduce(s, Action{Type: ActionRemoveAlert, Payload: "missing"})
	assert.Len(t, s.Alerts, 1)
}

func TestAuthLifecycle(t *testing.T) {
	s := initialState()
	assert.True(t, s.Auth.Loading)
	assert.False(t, s.Auth.IsAuthenticated)

	s = Reduce(s, Action{Type: ActionLoginSuccess, Payload: "session-token"})
	assert.True(t, s.Auth.IsAuthenticated)
	assert.Equal(t, "session-token", s.Auth.Token)
	assert.False(t, s.Auth.Loading)

	user := &models.User{Name: "Jane Dev"}
	s = Reduce(s, Action{Type: ActionUserLoaded, Payload: user})
	assert.Equal(t, user, s.Auth.User)
	assert.Equal(t, "session-token", s.Auth.Token)

	s = Reduce(s, Action{Type: ActionLogout})
	assert.False(t, s.Auth.IsAuthenticated)
	assert.Empty(t, s.Auth.Token)
	assert.Nil(t, s.Auth.User)
}

func TestLogoutClearsProfileSlice(t *testing.T) {
	s := initialState()
	s = Reduce(s, Action{Type: ActionGetProfile, Payload: &models.ProfileWithUser{
		Profile: models.Profile{Status: "Developer"},
	}})
	require.NotNil(t, s.Profile.Profile)

	s = Reduce(s, Action{Type: ActionLogout})
	assert.Nil(t, s.Profile.Profile)
	assert.Empty(t, s.Profile.Profiles)
}

func TestStoreNotifiesSubscribers(t *testing.T) {
	store := NewStore()

	var seen []State
	store.Subscribe(func(s State) { seen = append(seen, s) })

	store.Dispatch(Action{Type: ActionSetAlert, Payload: Alert{ID: "a1", Msg: "hello"}})
	store.Dispatch(Action{Type: ActionRemoveAlert, Payload: "a1"})

	require.Len(t, seen, 2)
	assert.Len(t, seen[0].Alerts, 1)
	assert.Empty(t, seen[1].Alerts)
}
