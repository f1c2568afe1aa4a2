// Package client is a Go client for the DevConnector API. It mirrors the
// server's resources in a small state store: pure reducers fold dispatched
// actions into the next state, and all side effects (HTTP calls, token
// persistence) live in the action layer.
package client

import (
	"sync"

	"devconnector/internal/github"
	"devconnector/internal/models"
)

// ActionType identifies a state transition.
type ActionType string

const (
	ActionSetAlert    ActionType = "SET_ALERT"
	ActionRemoveAlert ActionType = "REMOVE_ALERT"

	ActionRegisterSuccess ActionType = "REGISTER_SUCCESS"
	ActionRegisterFail    ActionType = "REGISTER_FAIL"
	ActionUserLoaded      ActionType = "USER_LOADED"
	ActionAuthError       ActionType = "AUTH_ERROR"
	ActionLoginSuccess    ActionType = "LOGIN_SUCCESS"
	ActionLoginFail       ActionType = "LOGIN_FAIL"
	ActionLogout          ActionType = "LOGOUT"
	ActionAccountDeleted  ActionType = "ACCOUNT_DELETED"

	ActionGetProfile   ActionType = "GET_PROFILE"
	ActionGetProfiles  ActionType = "GET_PROFILES"
	ActionGetRepos     ActionType = "GET_REPOS"
	ActionProfileError ActionType = "PROFILE_ERROR"
	ActionClearProfile ActionType = "CLEAR_PROFILE"
)

// Action is a dispatched event with an optional typed payload.
type Action struct {
	Type    ActionType
	Payload any
}

// Alert is a dismissible user-facing message.
type Alert struct {
	ID   string
	Msg  string
	Kind string
}

// AuthState mirrors the session: token presence drives IsAuthenticated.
type AuthState struct {
	Token           string
	IsAuthenticated bool
	Loading         bool
	User            *models.User
}

// ProfileState mirrors profile resources fetched from the API.
type ProfileState struct {
	Profile  *models.ProfileWithUser
	Profiles []models.ProfileWithUser
	Repos    []github.Repo
	Loading  bool
	Error    string
}

// State is the full store state. Values are treated as immutable: reducers
// return fresh values rather than mutating in place.
type State struct {
	Alerts  []Alert
	Auth    AuthState
	Profile ProfileState
}

func initialState() State {
	return State{
		Auth:    AuthState{Loading: true},
		Profile: ProfileState{Loading: true},
	}
}

// Reduce folds a single action into the next state. It is a pure function
// and is exported so reducer behavior can be tested without a Store.
func Reduce(s State, a Action) State {
	s.Alerts = reduceAlerts(s.Alerts, a)
	s.Auth = reduceAuth(s.Auth, a)
	s.Profile = reduceProfile(s.Profile, a)
	return s
}

func reduceAlerts(alerts []Alert, a Action) []Alert {
	switch a.Type {
	case ActionSetAlert:
		alert, ok := a.Payload.(Alert)
		if !ok {
			return alerts
		}
		next := make([]Alert, len(alerts), len(alerts)+1)
		copy(next, alerts)
		return append(next, alert)
	case ActionRemoveAlert:
		id, ok := a.Payload.(string)
		if !ok {
			return alerts
		}
		next := make([]Alert, 0, len(alerts))
		for _, al := range alerts {
			if al.ID != id {
				next = append(next, al)
			}
		}
		return next
	default:
		return alerts
	}
}

func reduceAuth(auth AuthState, a Action) AuthState {
	switch a.Type {
	case ActionRegisterSuccess, ActionLoginSuccess:
		tok, _ := a.Payload.(string)
		return AuthState{Token: tok, IsAuthenticated: true, Loading: false}
	case ActionUserLoaded:
		user, _ := a.Payload.(*models.User)
		auth.IsAuthenticated = true
		auth.Loading = false
		auth.User = user
		return auth
	case ActionRegisterFail, ActionLoginFail, ActionAuthError, ActionLogout, ActionAccountDeleted:
		return AuthState{Loading: false}
	default:
		return auth
	}
}

func reduceProfile(p ProfileState, a Action) ProfileState {
	switch a.Type {
	case ActionGetProfile:
		profile, _ := a.Payload.(*models.ProfileWithUser)
		p.Profile = profile
		p.Loading = false
		p.Error = ""
		return p
	case ActionGetProfiles:
		profiles, _ := a.Payload.([]models.ProfileWithUser)
		p.Profiles = profiles
		p.Loading = false
		return p
	case ActionGetRepos:
		repos, _ := a.Payload.([]github.Repo)
		p.Repos = repos
		return p
	case ActionProfileError:
		msg, _ := a.Payload.(string)
		p.Error = msg
		p.Loading = false
		return p
	case ActionClearProfile, ActionLogout, ActionAccountDeleted:
		return ProfileState{Loading: false}
	default:
		return p
	}
}

// Store holds the state and notifies subscribers after each dispatch.
type Store struct {
	mu    sync.RWMutex
	state State
	subs  []func(State)
}

func NewStore() *Store {
	return &Store{state: initialState()}
}

// State returns a snapshot of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies the action and notifies subscribers with the new state.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	s.state = Reduce(s.state, a)
	next := s.state
	subs := s.subs
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
}

// Subscribe registers a listener invoked after every dispatch.
func (s *Store) Subscribe(fn func(State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}
