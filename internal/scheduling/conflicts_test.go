package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/medusa-scheduler/internal/model"
)

func TestDetectConflicts(t *testing.T) {
	day := "2024-01-10T"
	tests := []struct {
		name   string
		first  [2]string
		second [2]string
		at     string
		want   int
	}{
		{"overlapping", [2]string{"10:00", "11:00"}, [2]string{"10:30", "12:00"}, "10:45", 1},
		{"touching at boundary", [2]string{"10:00", "11:00"}, [2]string{"11:00", "12:00"}, "11:00", 1},
		{"one minute apart", [2]string{"10:00", "11:00"}, [2]string{"11:01", "12:00"}, "11:00", 0},
		{"one minute apart, later instant", [2]string{"10:00", "11:00"}, [2]string{"11:01", "12:00"}, "11:30", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			window := func(w [2]string) func(*model.Schedule) {
				return func(s *model.Schedule) {
					s.StartTime = mustTime(t, day+w[0]+":00Z")
					s.EndTime = mustTime(t, day+w[1]+":00Z")
				}
			}
			a := f.schedule(model.TargetDisplay, 1, 100, 0, window(tt.first))
			b := f.schedule(model.TargetDisplay, 1, 200, 0, window(tt.second))

			got, err := f.engine.DetectConflicts(context.Background(), model.TargetDisplay, 1, org, mustTime(t, day+tt.at+":00Z"))
			require.NoError(t, err)
			require.Len(t, got, tt.want)
			if tt.want == 1 {
				assert.Equal(t, a.ID, got[0].ScheduleA.ID)
				assert.Equal(t, b.ID, got[0].ScheduleB.ID)
				assert.Equal(t, "Overlapping time ranges", got[0].Reason)
			}
		})
	}
}

func TestDetectConflicts_EveryPair(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.schedule(model.TargetGroup, 50, 100+i, i)
	}
	f.schedule(model.TargetGroup, 51, 999, 0)

	got, err := f.engine.DetectConflicts(context.Background(), model.TargetGroup, 50, org, f.now)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestDetectConflicts_OnlyCurrentlyActive(t *testing.T) {
	f := newFixture(t)
	f.schedule(model.TargetDisplay, 1, 100, 0)
	f.schedule(model.TargetDisplay, 1, 200, 0, func(s *model.Schedule) { s.Active = false })
	f.schedule(model.TargetDisplay, 1, 300, 0, func(s *model.Schedule) {
		s.StartTime = f.now.Add(time.Minute)
	})

	got, err := f.engine.DetectConflicts(context.Background(), model.TargetDisplay, 1, org, f.now)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestDetectConflicts_StorageFailure(t *testing.T) {
	f := newFixture(t)
	f.store.err = errBoom

	_, err := f.engine.DetectConflicts(context.Background(), model.TargetDisplay, 1, org, f.now)
	assert.ErrorIs(t, err, errBoom)
}
