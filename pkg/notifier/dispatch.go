package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Dispatcher hands a job off for delivery. Dispatch must not block the
// caller on the transport: visitors get their HTTP response whether or
// not the notification ever goes out.
type Dispatcher interface {
	Dispatch(ctx context.Context, job NotifyJob)
}

// AsyncDispatcher delivers in-process on a background goroutine with its
// own timeout. Failures are logged and dropped, never retried.
type AsyncDispatcher struct {
	notifier Notifier
	timeout  time.Duration
	logger   *logrus.Logger
	wg       sync.WaitGroup
}

func NewAsyncDispatcher(n Notifier, timeout time.Duration, logger *logrus.Logger) *AsyncDispatcher {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &AsyncDispatcher{notifier: n, timeout: timeout, logger: logger}
}

func (d *AsyncDispatcher) Dispatch(_ context.Context, job NotifyJob) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		// Detached from the request context: the HTTP response has
		// usually been written before delivery finishes.
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := d.notifier.Send(ctx, job.Phone, job.Carrier, job.Message); err != nil {
			d.logger.WithError(err).WithField("phone", job.Phone).Warn("notification delivery failed")
		}
	}()
}

// Wait blocks until in-flight deliveries finish. Used on shutdown.
func (d *AsyncDispatcher) Wait() {
	d.wg.Wait()
}

// QueuePublisher matches helpers.RabbitPublisher.
type QueuePublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// QueueDispatcher publishes jobs to RabbitMQ; the notify worker delivers
// them out of process.
type QueueDispatcher struct {
	pub    QueuePublisher
	logger *logrus.Logger
}

func NewQueueDispatcher(pub QueuePublisher, logger *logrus.Logger) *QueueDispatcher {
	return &QueueDispatcher{pub: pub, logger: logger}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, job NotifyJob) {
	if err := d.pub.PublishJSON(ctx, job); err != nil {
		d.logger.WithError(err).WithField("phone", job.Phone).Warn("failed to enqueue notification")
	}
}
