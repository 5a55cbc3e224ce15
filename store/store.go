package store

import (
	"context"
	"log"
	"time"
)

type Recorder interface {
	SaveOperationRecord(record *OperationRecord) error
	SelectOperationRecords(operation string, since time.Time, limit int) ([]*OperationRecord, error)
}

// Store writes operation records on its own goroutine so request handling
// never waits on the database. Records are dropped when the queue is full.
type Store struct {
	ctx     context.Context
	log     *log.Logger
	records chan *OperationRecord
	dao     Recorder
	done    chan struct{}
}

func NewStore(ctx context.Context, logger *log.Logger, dao Recorder, queue int) *Store {
	s := &Store{
		ctx:     ctx,
		log:     logger,
		records: make(chan *OperationRecord, queue),
		dao:     dao,
		done:    make(chan struct{}),
	}
	return s
}

func (s *Store) Start() {
	go s.store()
}

// Stop waits for the writer to drain after the context is cancelled.
func (s *Store) Stop() {
	<-s.done
}

func (s *Store) store() {
	defer close(s.done)
	for {
		select {
		case record := <-s.records:
			s.save(record)
		case <-s.ctx.Done():
			for {
				select {
				case record := <-s.records:
					s.save(record)
				default:
					return
				}
			}
		}
	}
}

func (s *Store) save(record *OperationRecord) {
	if err := s.dao.SaveOperationRecord(record); err != nil {
		s.log.Printf("save operation record %s err: %s", record.Id, err.Error())
	}
}

// StoreOperationRecord reports whether the record was queued.
func (s *Store) StoreOperationRecord(record *OperationRecord) bool {
	select {
	case s.records <- record:
		return true
	default:
		s.log.Printf("store queue is full, drop operation record %s", record.Id)
		return false
	}
}

func (s *Store) GetOperationRecords(operation string, since time.Time, limit int) ([]*OperationRecord, error) {
	return s.dao.SelectOperationRecords(operation, since, limit)
}
