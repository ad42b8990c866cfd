package queue

import (
	"context"
	"hash/fnv"
	"time"

	"github.com/rs/zerolog"

	"github.com/lamesa/ordering-gateway/internal/api/metrics"
	"github.com/lamesa/ordering-gateway/internal/core/domain"
	"github.com/lamesa/ordering-gateway/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
	maxAttempts    = 5
	retryBackoff   = 2 * time.Second
)

// cancelJob asks the ordering API to cancel an order whose payment
// initiation failed.
type cancelJob struct {
	OrderID string
	Bearer  string
	Attempt int
}

// Dispatcher routes compensation jobs to a fixed set of workers using
// consistent hashing on the order id, so retries for one order never
// interleave.
type Dispatcher struct {
	workers []chan cancelJob
	orders  ports.OrderAPI
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, orders ports.OrderAPI, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan cancelJob, numWorkers),
		orders:  orders,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan cancelJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules a best-effort cancellation of orderID. Non-blocking up
// to channelBuffer capacity; beyond that the job is dropped and logged, as
// compensation is advisory.
func (d *Dispatcher) Enqueue(orderID, bearer string) {
	job := cancelJob{OrderID: orderID, Bearer: bearer}
	select {
	case d.workers[d.shardIndex(orderID)] <- job:
	default:
		metrics.CompensationsTotal.WithLabelValues("dropped").Inc()
		d.log.Error().Str("order_id", orderID).Msg("compensation queue full, cancellation dropped")
	}
}

// shardIndex maps an order id deterministically to a worker index.
func (d *Dispatcher) shardIndex(orderID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(orderID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch chan cancelJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			d.cancel(ctx, id, ch, job)
		}
	}
}

// cancel attempts the cancellation, retrying with a fixed backoff until
// maxAttempts is exhausted. Exhaustion leaves the order pending upstream and
// is reported loudly.
func (d *Dispatcher) cancel(ctx context.Context, workerID int, ch chan cancelJob, job cancelJob) {
	err := d.orders.UpdateOrderStatus(ctx, job.Bearer, job.OrderID, domain.OrderStatusCancelled)
	if err == nil {
		metrics.CompensationsTotal.WithLabelValues("cancelled").Inc()
		d.log.Info().Str("order_id", job.OrderID).Int("worker_id", workerID).Msg("unpaid order cancelled")
		return
	}

	job.Attempt++
	if job.Attempt >= maxAttempts {
		metrics.CompensationsTotal.WithLabelValues("exhausted").Inc()
		d.log.Error().Err(err).Str("order_id", job.OrderID).Int("attempts", job.Attempt).
			Msg("order cancellation abandoned, order left pending upstream")
		return
	}

	select {
	case <-ctx.Done():
	case <-time.After(retryBackoff):
		select {
		case ch <- job:
		default:
			metrics.CompensationsTotal.WithLabelValues("dropped").Inc()
			d.log.Error().Str("order_id", job.OrderID).Msg("compensation queue full on retry, cancellation dropped")
		}
	}
}
