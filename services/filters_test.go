package services

import (
	"testing"
	"time"

	"taskhub-project/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFindOptionsDefaults(t *testing.T) {
	opts := ListOptions{}.FindOptions()

	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(defaultPageLimit), *opts.Limit)
	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(0), *opts.Skip)
}

func TestFindOptionsPagination(t *testing.T) {
	opts := ListOptions{Page: 3, Limit: 10}.FindOptions()

	require.NotNil(t, opts.Skip)
	assert.Equal(t, int64(20), *opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(10), *opts.Limit)
}

func TestProjectStatusFilter(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("completed matches stored field only", func(t *testing.T) {
		filter := projectStatusFilter(models.StatusCompleted, now)
		assert.Equal(t, bson.M{"status": models.StatusCompleted}, filter)
	})

	t.Run("overdue excludes completed and requires a real due date", func(t *testing.T) {
		filter := projectStatusFilter(models.StatusOverdue, now)
		assert.Equal(t, bson.M{"$ne": models.StatusCompleted}, filter["status"])

		due, ok := filter["dueDate"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, now, due["$lt"])
		assert.Equal(t, time.Time{}, due["$gt"])
	})

	t.Run("in progress matches the window or the stored status", func(t *testing.T) {
		filter := projectStatusFilter(models.StatusInProgress, now)
		assert.Equal(t, bson.M{"$ne": models.StatusCompleted}, filter["status"])
		assert.Contains(t, filter, "$nor")

		// A project stored as "in progress" with a future start date resolves
		// to in progress, so the stored value must be a match on its own.
		or, ok := filter["$or"].(bson.A)
		require.True(t, ok)
		assert.Contains(t, or, bson.M{"status": models.StatusInProgress})

		window, ok := or[1].(bson.M)
		require.True(t, ok)
		assert.Contains(t, window, "startDate")
		assert.Contains(t, window, "dueDate")
	})

	t.Run("pending excludes overdue and windowed projects", func(t *testing.T) {
		filter := projectStatusFilter(models.StatusPending, now)
		assert.Equal(t, models.StatusPending, filter["status"])
		assert.Contains(t, filter, "$nor")
	})
}

func TestTaskStatusFilter(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("overdue excludes completed", func(t *testing.T) {
		filter := taskStatusFilter(models.StatusOverdue, now)
		assert.Equal(t, bson.M{"$ne": models.StatusCompleted}, filter["status"])
	})

	t.Run("pending excludes tasks past their deadline", func(t *testing.T) {
		filter := taskStatusFilter(models.StatusPending, now)
		assert.Equal(t, models.StatusPending, filter["status"])
		assert.Contains(t, filter, "$nor")
	})
}
