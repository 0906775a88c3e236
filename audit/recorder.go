package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"socialnet/event"
	"socialnet/model"
)

// Recorder subscribes to the notification bus and persists every event
// as an EventLog row, asynchronously in batches.
type Recorder struct {
	db     *gorm.DB
	ch     chan *model.EventLog
	stopCh chan struct{}
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewRecorder creates a Recorder and starts its background worker.
func NewRecorder(db *gorm.DB, logger *zap.Logger) *Recorder {
	r := &Recorder{
		db:     db,
		ch:     make(chan *model.EventLog, 1024),
		stopCh: make(chan struct{}),
		logger: logger,
	}
	r.wg.Add(1)
	go r.worker()
	return r
}

// Update implements event.Observer. It enqueues the event for async DB write.
func (r *Recorder) Update(e event.Event) {
	payload, err := json.Marshal(e)
	if err != nil {
		r.logger.Warn("event payload not serializable",
			zap.String("event", e.Name()), zap.Error(err))
		payload = []byte("{}")
	}
	record := &model.EventLog{
		Event:     e.Name(),
		Payload:   datatypes.JSON(payload),
		CreatedAt: time.Now(),
	}
	select {
	case r.ch <- record:
	default:
		r.logger.Warn("event log channel full, dropping entry",
			zap.String("event", e.Name()))
	}
}

// Stop flushes remaining entries and shuts down the worker.
// It blocks until the worker goroutine has finished.
func (r *Recorder) Stop(_ context.Context) {
	select {
	case <-r.stopCh:
	default:
		close(r.stopCh)
	}
	r.wg.Wait()
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	batch := make([]*model.EventLog, 0, 100)

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := r.db.Create(&batch).Error; err != nil {
			r.logger.Error("event log batch write failed", zap.Error(err))
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-r.ch:
			batch = append(batch, entry)
			if len(batch) >= 100 {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-r.stopCh:
			// Drain remaining entries.
			for {
				select {
				case entry := <-r.ch:
					batch = append(batch, entry)
				default:
					flush()
					return
				}
			}
		}
	}
}
