package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"labstock/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestComponents_AddAndList(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 1, "alice", model.RoleUser)
	token := env.tokenFor(t, 1, "alice", model.RoleUser)

	// Adding requires a session
	w := env.do(t, http.MethodPost, "/components/add", "", map[string]any{
		"name": "Resistor 1k", "category": "passive", "quantity": 200,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(t, http.MethodPost, "/components/add", token, map[string]any{
		"name": "Resistor 1k", "category": "passive", "quantity": 200,
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Validation
	w = env.do(t, http.MethodPost, "/components/add", token, map[string]any{
		"name": "", "category": "passive", "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/components/add", token, map[string]any{
		"name": "Capacitor", "category": "passive", "quantity": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Public listing needs no session
	w = env.do(t, http.MethodGet, "/components", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var components []model.Component
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&components))
	if assert.Len(t, components, 1) {
		assert.Equal(t, "Resistor 1k", components[0].Name)
		assert.Equal(t, 200, components[0].Quantity)
	}
}

func TestComponents_DashboardOrdering(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, 1, "alice", model.RoleUser)
	token := env.tokenFor(t, 1, "alice", model.RoleUser)

	env.seedComponent(t, 1, "Zener Diode", "passive", 5)
	env.seedComponent(t, 2, "Arduino Uno", "board", 3)
	env.seedComponent(t, 3, "Capacitor", "passive", 9)

	w := env.do(t, http.MethodGet, "/components/dashboard", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var components []model.Component
	assert.NoError(t, json.NewDecoder(w.Body).Decode(&components))
	if assert.Len(t, components, 3) {
		// category, then name
		assert.Equal(t, "Arduino Uno", components[0].Name)
		assert.Equal(t, "Capacitor", components[1].Name)
		assert.Equal(t, "Zener Diode", components[2].Name)
	}
}
