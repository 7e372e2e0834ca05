package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/folio/pkg/logger"
)

type fakeJob struct {
	name     string
	schedule string
	ran      chan struct{}
}

func (j *fakeJob) Name() string     { return j.name }
func (j *fakeJob) Schedule() string { return j.schedule }
func (j *fakeJob) Run(ctx context.Context) error {
	j.ran <- struct{}{}
	return nil
}

func newFakeJob(name, schedule string) *fakeJob {
	return &fakeJob{name: name, schedule: schedule, ran: make(chan struct{}, 1)}
}

func TestAddJob(t *testing.T) {
	s := New(logger.NewNop())

	job := newFakeJob("refresh", "@hourly")
	require.NoError(t, s.AddJob(job))
	assert.Equal(t, []string{"refresh"}, s.Jobs())

	// Duplicate names are rejected.
	assert.Error(t, s.AddJob(newFakeJob("refresh", "@hourly")))
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.AddJob(newFakeJob("broken", "not a cron expression")))
}

func TestRunJob(t *testing.T) {
	s := New(logger.NewNop())

	job := newFakeJob("refresh", "@hourly")
	require.NoError(t, s.AddJob(job))
	require.NoError(t, s.RunJob("refresh"))

	select {
	case <-job.ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}

	// The run lands in history shortly after the job returns.
	require.Eventually(t, func() bool {
		history, err := s.History("refresh")
		return err == nil && len(history.Results) == 1
	}, 2*time.Second, 10*time.Millisecond)

	history, err := s.History("refresh")
	require.NoError(t, err)
	assert.True(t, history.Results[0].Success)
}

func TestRunJob_Unknown(t *testing.T) {
	s := New(logger.NewNop())
	assert.Error(t, s.RunJob("missing"))
}

func TestJobHistory_Bounded(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{JobName: "j", Success: i%2 == 0})
	}
	assert.Len(t, h.Results, historyLimit)
}

func TestJobHistory_SuccessRate(t *testing.T) {
	h := &JobHistory{}
	assert.Equal(t, 0.0, h.SuccessRate())

	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: true})
	h.AddResult(JobResult{Success: false})
	h.AddResult(JobResult{Success: true})

	assert.InDelta(t, 0.75, h.SuccessRate(), 1e-12)
}

func TestJobHistory_LatestResults(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < 5; i++ {
		h.AddResult(JobResult{JobName: "j", Duration: time.Duration(i)})
	}

	latest := h.LatestResults(2)
	require.Len(t, latest, 2)
	assert.Equal(t, time.Duration(4), latest[1].Duration)

	assert.Empty(t, h.LatestResults(0))
	assert.Len(t, h.LatestResults(10), 5)
}
