package middleware

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/milestonetrucks/voice-agent/internal/domain/model"
	"github.com/milestonetrucks/voice-agent/internal/logger"
	"github.com/milestonetrucks/voice-agent/internal/service"
)

// AsyncLoggerConfig tunes the background log writer.
type AsyncLoggerConfig struct {
	// BufferSize bounds the queue; entries beyond it are dropped.
	BufferSize int
	NumWorkers int
	// BatchSize is the most entries a worker sends in one insert.
	BatchSize int
	// FlushInterval caps how long a partial batch waits.
	FlushInterval time.Duration
	WriteTimeout  time.Duration
}

// DefaultAsyncLoggerConfig returns the writer settings used in production.
func DefaultAsyncLoggerConfig() AsyncLoggerConfig {
	return AsyncLoggerConfig{
		BufferSize:    1000,
		NumWorkers:    4,
		BatchSize:     50,
		FlushInterval: 500 * time.Millisecond,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncLogger batches request and tool-call logs into the log store so a phone call
// never waits on MongoDB. A full queue drops entries.
type AsyncLogger struct {
	loggingService service.LoggingService
	queue          chan *model.LogEntry
	done           chan struct{}
	workers        sync.WaitGroup
	stopOnce       sync.Once
	stopped        atomic.Bool

	batchSize     int
	flushInterval time.Duration
	writeTimeout  time.Duration

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

// NewAsyncLogger starts the workers. It returns nil when there is no log store.
func NewAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) *AsyncLogger {
	if loggingService == nil {
		return nil
	}
	cfg = withDefaults(cfg)

	al := &AsyncLogger{
		loggingService: loggingService,
		queue:          make(chan *model.LogEntry, cfg.BufferSize),
		done:           make(chan struct{}),
		batchSize:      cfg.BatchSize,
		flushInterval:  cfg.FlushInterval,
		writeTimeout:   cfg.WriteTimeout,
	}

	al.workers.Add(cfg.NumWorkers)
	for range cfg.NumWorkers {
		go al.run()
	}
	return al
}

func withDefaults(cfg AsyncLoggerConfig) AsyncLoggerConfig {
	d := DefaultAsyncLoggerConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = d.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = d.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = d.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = d.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = d.WriteTimeout
	}
	return cfg
}

func (al *AsyncLogger) run() {
	defer al.workers.Done()

	ticker := time.NewTicker(al.flushInterval)
	defer ticker.Stop()

	batch := make([]*model.LogEntry, 0, al.batchSize)
	for {
		select {
		case entry := <-al.queue:
			batch = append(batch, entry)
			if len(batch) >= al.batchSize {
				batch = al.flush(batch)
			}
		case <-ticker.C:
			batch = al.flush(batch)
		case <-al.done:
			for {
				select {
				case entry := <-al.queue:
					batch = append(batch, entry)
					if len(batch) >= al.batchSize {
						batch = al.flush(batch)
					}
				default:
					al.flush(batch)
					return
				}
			}
		}
	}
}

// flush writes batch and returns it emptied for reuse.
func (al *AsyncLogger) flush(batch []*model.LogEntry) []*model.LogEntry {
	if len(batch) == 0 {
		return batch
	}

	ctx, cancel := context.WithTimeout(context.Background(), al.writeTimeout)
	defer cancel()

	var err error
	if len(batch) == 1 {
		err = al.loggingService.CreateLog(ctx, batch[0])
	} else {
		err = al.loggingService.CreateLogs(ctx, batch)
	}

	n := int64(len(batch))
	if err != nil {
		al.failed.Add(n)
		log := logger.Logger()
		log.Warn().Err(err).Int64("entries", n).Msg("Failed to write log batch")
	} else {
		al.written.Add(n)
	}

	clear(batch)
	return batch[:0]
}

// Log queues entry. It returns false when the entry was dropped because the queue is
// full or the logger has stopped.
func (al *AsyncLogger) Log(entry *model.LogEntry) bool {
	if al.stopped.Load() {
		al.dropped.Add(1)
		return false
	}

	select {
	case al.queue <- entry:
		al.enqueued.Add(1)
		return true
	default:
		al.dropped.Add(1)
		return false
	}
}

// Stop flushes what is queued and waits for the workers. Safe to call twice.
func (al *AsyncLogger) Stop() {
	al.stopOnce.Do(func() {
		al.stopped.Store(true)
		close(al.done)
		al.workers.Wait()
	})
}

// Stats returns the writer counters.
func (al *AsyncLogger) Stats() (enqueued, dropped, written, failed int64) {
	return al.enqueued.Load(), al.dropped.Load(), al.written.Load(), al.failed.Load()
}

var (
	globalAsyncLogger   *AsyncLogger
	globalAsyncLoggerMu sync.RWMutex
)

// InitAsyncLogger replaces the global async logger, stopping any previous one.
func InitAsyncLogger(loggingService service.LoggingService, cfg AsyncLoggerConfig) {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
	}
	globalAsyncLogger = NewAsyncLogger(loggingService, cfg)
}

// GetAsyncLogger returns the global async logger instance.
func GetAsyncLogger() *AsyncLogger {
	globalAsyncLoggerMu.RLock()
	defer globalAsyncLoggerMu.RUnlock()
	return globalAsyncLogger
}

// StopAsyncLogger gracefully shuts down the global async logger.
func StopAsyncLogger() {
	globalAsyncLoggerMu.Lock()
	defer globalAsyncLoggerMu.Unlock()

	if globalAsyncLogger != nil {
		globalAsyncLogger.Stop()
		globalAsyncLogger = nil
	}
}

// store hands entry to the global async logger, or writes it from a goroutine when
// none is running.
func store(loggingService service.LoggingService, entry *model.LogEntry) {
	if asyncLogger := GetAsyncLogger(); asyncLogger != nil {
		asyncLogger.Log(entry)
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = loggingService.CreateLog(ctx, entry)
	}()
}
