package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/jbinformatica/pedidos-api/internal/metrics"
	"github.com/jbinformatica/pedidos-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes order notifications to a fixed set of workers using
// consistent hashing on the pedido id, so retries for the same order always
// land on the same worker.
type Dispatcher struct {
	workers   []chan ports.OrderNotification
	processor ports.NotificationProcessor
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, processor ports.NotificationProcessor, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan ports.OrderNotification, numWorkers),
		processor: processor,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.OrderNotification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its pedido.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n ports.OrderNotification) {
	idx := d.shardIndex(n.PedidoID)
	d.workers[idx] <- n
	metrics.NotificationQueueDepth.
		WithLabelValues(strconv.Itoa(idx)).
		Set(float64(len(d.workers[idx])))
}

// shardIndex maps a pedido id deterministically to a worker index.
func (d *Dispatcher) shardIndex(pedidoID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatUint(uint64(pedidoID), 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.OrderNotification) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.processor.Process(ctx, n); err != nil {
				d.log.Error().Err(err).
					Uint("pedido_id", n.PedidoID).
					Int("worker_id", id).
					Msg("notification processing failed")
			}
		}
	}
}
