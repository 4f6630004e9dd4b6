package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/db"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/scheduling"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	conn, err := db.InitTestDB(ctx, "../../migrations")
	if errors.Is(err, db.ErrNoTestDatabase) {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	_, err = conn.Exec(`TRUNCATE content_priorities, scheduling_rules, schedules, displays, display_groups RESTART IDENTITY CASCADE;`)
	require.NoError(t, err)
	return conn
}

func TestRunMigrationsWithMissingPath(t *testing.T) {
	// no files means nothing to do, and the connection is never touched
	err := db.RunMigrations(context.Background(), nil, "./does-not-exist")
	assert.NoError(t, err)
}

// TestStoreIntegration exercises the store and the engine against PostgreSQL.
func TestStoreIntegration(t *testing.T) {
	conn := setupTestDB(t)
	ctx := context.Background()
	store := db.NewStore(conn)
	now := time.Date(2024, 1, 10, 10, 45, 0, 0, time.UTC)

	var groupID, displayID, otherDisplayID int
	require.NoError(t, conn.Get(&groupID, `INSERT INTO display_groups (organization_id, name) VALUES (1, 'lobby') RETURNING id;`))
	require.NoError(t, conn.Get(&displayID, `INSERT INTO displays (organization_id, group_id, name) VALUES (1, $1, 'entrance') RETURNING id;`, groupID))
	require.NoError(t, conn.Get(&otherDisplayID, `INSERT INTO displays (organization_id, name) VALUES (1, 'cafe') RETURNING id;`))

	insertSchedule := func(target model.TargetType, targetID, contentID, priority int, active bool) int {
		var id int
		require.NoError(t, conn.Get(&id, `
			INSERT INTO schedules (organization_id, content_id, target_type, target_id, start_time, end_time, priority, active)
			VALUES (1, $1, $2, $3, $4, $5, $6, $7) RETURNING id;`,
			contentID, string(target), targetID, now.Add(-time.Hour), now.Add(time.Hour), priority, active))
		return id
	}

	displaySchedule := insertSchedule(model.TargetDisplay, displayID, 100, 10, true)
	groupSchedule := insertSchedule(model.TargetGroup, groupID, 200, 5, true)
	insertSchedule(model.TargetDisplay, displayID, 300, 99, false)

	_, err := conn.Exec(`
		INSERT INTO scheduling_rules (schedule_id, rule_type, config, enabled)
		VALUES ($1, 'daypart', '{"daypart":"morning"}', TRUE);`, displaySchedule)
	require.NoError(t, err)

	t.Run("ListSchedules pre-filters", func(t *testing.T) {
		got, err := store.ListSchedules(ctx, 1, model.TargetDisplay, displayID)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, displaySchedule, got[0].ID)
		assert.Equal(t, model.TargetDisplay, got[0].TargetType)
		require.NotNil(t, got[0].ContentID)
		assert.Equal(t, 100, *got[0].ContentID)
		assert.Nil(t, got[0].PlaylistID)
	})

	t.Run("ListRules keeps the raw config", func(t *testing.T) {
		got, err := store.ListRules(ctx, displaySchedule)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, model.RuleDaypart, got[0].Kind)
		assert.JSONEq(t, `{"daypart":"morning"}`, string(got[0].Config))
	})

	t.Run("GetDisplay maps missing rows", func(t *testing.T) {
		d, err := store.GetDisplay(ctx, displayID)
		require.NoError(t, err)
		require.NotNil(t, d.GroupID)
		assert.Equal(t, groupID, *d.GroupID)

		_, err = store.GetDisplay(ctx, 999999)
		assert.ErrorIs(t, err, scheduling.ErrNotFound)
	})

	t.Run("engine resolves through the store", func(t *testing.T) {
		_, err := conn.Exec(`
			INSERT INTO content_priorities (organization_id, content_id, priority, display_id)
			VALUES (1, 200, 10, $1);`, displayID)
		require.NoError(t, err)

		engine := scheduling.NewEngine(store)
		got, err := engine.ContentForDisplay(ctx, displayID, now)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, groupSchedule, got.ScheduleID)
		assert.Equal(t, 15, got.Priority)

		got, err = engine.ContentForDisplay(ctx, otherDisplayID, now)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
