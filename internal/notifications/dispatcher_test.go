package notifications_test

import (
	"fmt"
	"io"
	"log"
	"os"
	"testing"

	"tugas/internal/notifications"

	"github.com/stretchr/testify/mock"
)

// MockPublisher is a mock implementation of notifications.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishEmailJob(job interface{}) error {
	args := m.Called(job)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

func TestDispatcher_QueuesJobs(t *testing.T) {
	publisher := new(MockPublisher)
	dispatcher := notifications.NewDispatcher(publisher)

	publisher.On("PublishEmailJob", notifications.EmailJob{
		Kind:  notifications.KindWelcome,
		Email: "a@x.com",
		Name:  "A",
	}).Return(nil).Once()
	dispatcher.SendWelcome("a@x.com", "A")

	publisher.On("PublishEmailJob", notifications.EmailJob{
		Kind:  notifications.KindCancellation,
		Email: "a@x.com",
		Name:  "A",
	}).Return(nil).Once()
	dispatcher.SendCancellation("a@x.com", "A")

	publisher.AssertExpectations(t)
}

func TestDispatcher_SwallowsPublishFailures(t *testing.T) {
	publisher := new(MockPublisher)
	dispatcher := notifications.NewDispatcher(publisher)

	publisher.On("PublishEmailJob", mock.Anything).Return(fmt.Errorf("broker down")).Once()

	// Must not panic or surface the error in any way
	dispatcher.SendWelcome("a@x.com", "A")
	publisher.AssertExpectations(t)
}

func TestDispatcher_NilPublisher(t *testing.T) {
	dispatcher := notifications.NewDispatcher(nil)

	// Dispatch with no queue configured is a logged no-op
	dispatcher.SendWelcome("a@x.com", "A")
	dispatcher.SendCancellation("a@x.com", "A")
}
