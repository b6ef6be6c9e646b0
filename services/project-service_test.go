package services

import (
	"encoding/json"
	"testing"
	"time"

	"taskhub-project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectUpdateSetBudget(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("omitted budget keeps the stored value", func(t *testing.T) {
		set := projectUpdateSet(&models.ProjectUpdate{}, now)
		assert.NotContains(t, set, "projectBudget")
	})

	t.Run("explicit zero resets the budget", func(t *testing.T) {
		budget := 0.0
		set := projectUpdateSet(&models.ProjectUpdate{ProjectBudget: &budget}, now)
		assert.Equal(t, 0.0, set["projectBudget"])
	})

	t.Run("partial update only sets provided fields", func(t *testing.T) {
		set := projectUpdateSet(&models.ProjectUpdate{Name: "Relaunch"}, now)
		assert.Equal(t, "Relaunch", set["name"])
		assert.NotContains(t, set, "description")
		assert.NotContains(t, set, "status")
		assert.Equal(t, now, set["updatedAt"])
	})
}

func TestProjectUpdateDecodeDistinguishesZeroBudget(t *testing.T) {
	var withZero models.ProjectUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"projectBudget":0}`), &withZero))
	require.NotNil(t, withZero.ProjectBudget)
	assert.Equal(t, 0.0, *withZero.ProjectBudget)

	var without models.ProjectUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Relaunch"}`), &without))
	assert.Nil(t, without.ProjectBudget)
}
