package client

import (
	"testing"

	"github.com/condoease/apiserver/types"
	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	user := &types.User{ID: 1, Email: "a@b.c", Role: "user"}

	tests := []struct {
		name  string
		state State
		want  Decision
	}{
		{name: "not loaded yet", state: State{}, want: DecisionPending},
		{name: "not loaded with stale fields", state: State{User: user, Token: "tok"}, want: DecisionPending},
		{name: "loaded signed out", state: State{Loaded: true}, want: DecisionRedirectLogin},
		{name: "user without token", state: State{Loaded: true, User: user}, want: DecisionRedirectLogin},
		{name: "token without user", state: State{Loaded: true, Token: "tok"}, want: DecisionRedirectLogin},
		{name: "signed in", state: State{Loaded: true, User: user, Token: "tok"}, want: DecisionAllow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.state))
		})
	}
}

func TestDecide_PureFunction(t *testing.T) {
	state := State{Loaded: true, User: &types.User{ID: 1}, Token: "tok"}
	first := Decide(state)
	second := Decide(state)
	assert.Equal(t, first, second)
}

func TestDecideWithRoles(t *testing.T) {
	admin := State{Loaded: true, User: &types.User{ID: 1, Role: "admin"}, Token: "tok"}
	user := State{Loaded: true, User: &types.User{ID: 2, Role: "user"}, Token: "tok"}

	tests := []struct {
		name  string
		state State
		roles []string
		want  Decision
	}{
		{name: "role allowed", state: admin, roles: []string{"admin"}, want: DecisionAllow},
		{name: "role among several", state: user, roles: []string{"admin", "user"}, want: DecisionAllow},
		{name: "role rejected", state: user, roles: []string{"admin"}, want: DecisionRedirectUnauthorized},
		{name: "empty set behaves like Decide", state: user, want: DecisionAllow},
		{name: "pending short-circuits roles", state: State{}, roles: []string{"admin"}, want: DecisionPending},
		{name: "signed out short-circuits roles", state: State{Loaded: true}, roles: []string{"admin"}, want: DecisionRedirectLogin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecideWithRoles(tt.state, tt.roles...))
		})
	}
}
