package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"fooddelivery/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockOutboxPublisher struct{ mock.Mock }

func (m *MockOutboxPublisher) Handle(ctx context.Context, cmd commands.PublishOutboxEventsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockPendingAssignmentRetrier struct{ mock.Mock }

func (m *MockPendingAssignmentRetrier) Handle(
	ctx context.Context,
	cmd commands.RetryPendingAssignmentsCommand,
) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type MockJob struct{ mock.Mock }

func (m *MockJob) Start(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockJob) Stop() {
	m.Called()
}

func TestOutboxPublisherJob_Run_DrainsFullBatches(t *testing.T) {
	handler := new(MockOutboxPublisher)
	job := NewOutboxPublisherJob(handler, DefaultOutboxSchedule, 10, discardLogger())
	batch := mock.MatchedBy(func(cmd commands.PublishOutboxEventsCommand) bool { return cmd.BatchSize() == 10 })

	mock.InOrder(
		handler.On("Handle", mock.Anything, batch).Return(10, nil).Once(),
		handler.On("Handle", mock.Anything, batch).Return(10, nil).Once(),
		handler.On("Handle", mock.Anything, batch).Return(3, nil).Once(),
	)

	job.run(context.Background())

	handler.AssertExpectations(t)
	handler.AssertNumberOfCalls(t, "Handle", 3)
}

func TestOutboxPublisherJob_Run_StopsOnError(t *testing.T) {
	handler := new(MockOutboxPublisher)
	job := NewOutboxPublisherJob(handler, DefaultOutboxSchedule, 10, discardLogger())
	handler.On("Handle", mock.Anything, mock.Anything).Return(0, errors.New("broker down")).Once()

	job.run(context.Background())

	handler.AssertNumberOfCalls(t, "Handle", 1)
}

func TestOutboxPublisherJob_Run_StopsWhenContextIsDone(t *testing.T) {
	handler := new(MockOutboxPublisher)
	job := NewOutboxPublisherJob(handler, DefaultOutboxSchedule, 10, discardLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	job.run(ctx)

	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestOutboxPublisherJob_Start_RejectsBadSchedule(t *testing.T) {
	job := NewOutboxPublisherJob(new(MockOutboxPublisher), "every now and then", 10, discardLogger())

	assert.Error(t, job.Start(context.Background()))
}

func TestAssignmentRetryJob_Run_PassesLimit(t *testing.T) {
	handler := new(MockPendingAssignmentRetrier)
	job := NewAssignmentRetryJob(handler, DefaultAssignmentRetrySchedule, 25, discardLogger())
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RetryPendingAssignmentsCommand) bool {
		return cmd.Limit() == 25
	})).Return(2, nil).Once()

	job.run(context.Background())

	handler.AssertExpectations(t)
}

func TestJobManager_StartAll_StopsStartedJobsOnFailure(t *testing.T) {
	first := new(MockJob)
	second := new(MockJob)
	first.On("Start", mock.Anything).Return(nil).Once()
	first.On("Stop").Return().Once()
	second.On("Start", mock.Anything).Return(errors.New("bad schedule")).Once()

	err := NewJobManager(first, second).StartAll(context.Background())

	require.Error(t, err)
	first.AssertExpectations(t)
	second.AssertNotCalled(t, "Stop")
}

func TestJobManager_StopAll_StopsInReverseOrder(t *testing.T) {
	first := new(MockJob)
	second := new(MockJob)
	first.On("Start", mock.Anything).Return(nil).Once()
	second.On("Start", mock.Anything).Return(nil).Once()
	mock.InOrder(
		second.On("Stop").Return().Once(),
		first.On("Stop").Return().Once(),
	)
	jm := NewJobManager(first, second)
	require.NoError(t, jm.StartAll(context.Background()))

	jm.StopAll()
	jm.StopAll()

	first.AssertExpectations(t)
	second.AssertExpectations(t)
}
