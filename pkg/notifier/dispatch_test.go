package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/prasetya/trackping/internal/domain/entity"
)

type countingNotifier struct {
	calls int32
	err   error
}

func (n *countingNotifier) Send(_ context.Context, _ string, _ entity.Carrier, _ string) error {
	atomic.AddInt32(&n.calls, 1)
	return n.err
}

func TestAsyncDispatcherDeliversExactlyOnce(t *testing.T) {
	n := &countingNotifier{}
	d := NewAsyncDispatcher(n, time.Second, discardLogger())

	d.Dispatch(context.Background(), NotifyJob{Phone: "+15551111111", Message: "hi"})
	d.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&n.calls))
}

func TestAsyncDispatcherAbsorbsSendFailure(t *testing.T) {
	n := &countingNotifier{err: errors.New("provider down")}
	d := NewAsyncDispatcher(n, time.Second, discardLogger())

	// must not panic or propagate; one attempt, no retry
	d.Dispatch(context.Background(), NotifyJob{Phone: "+15551111111", Message: "hi"})
	d.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&n.calls))
}

type MockQueuePublisher struct {
	mock.Mock
}

func (m *MockQueuePublisher) PublishJSON(ctx context.Context, body any) error {
	args := m.Called(ctx, body)
	return args.Error(0)
}

func TestQueueDispatcherPublishesJob(t *testing.T) {
	job := NotifyJob{Phone: "+15551111111", Carrier: entity.CarrierATT, Message: "alert"}

	pub := new(MockQueuePublisher)
	pub.On("PublishJSON", mock.Anything, job).Return(nil)

	d := NewQueueDispatcher(pub, discardLogger())
	d.Dispatch(context.Background(), job)

	pub.AssertExpectations(t)
}

func TestNotifyJobRoundTrip(t *testing.T) {
	job := NotifyJob{Phone: "+15551111111", Carrier: entity.CarrierVerizon, Message: "alert"}

	b, err := json.Marshal(job)
	assert.NoError(t, err)

	var got NotifyJob
	assert.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, job, got)
}

func TestQueueDispatcherAbsorbsPublishFailure(t *testing.T) {
	pub := new(MockQueuePublisher)
	pub.On("PublishJSON", mock.Anything, mock.Anything).Return(errors.New("broker gone"))

	d := NewQueueDispatcher(pub, discardLogger())
	d.Dispatch(context.Background(), NotifyJob{Phone: "+15551111111"})

	pub.AssertExpectations(t)
}
