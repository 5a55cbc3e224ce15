package store

import (
	"context"
	"errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"log"
	"sync"
	"testing"
	"time"
)

type memoryRecorder struct {
	mu      sync.Mutex
	records []*OperationRecord
	fail    bool
}

func (m *memoryRecorder) SaveOperationRecord(record *OperationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("db is down")
	}
	m.records = append(m.records, record)
	return nil
}

func (m *memoryRecorder) SelectOperationRecords(operation string, since time.Time, limit int) ([]*OperationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*OperationRecord, 0)
	for _, r := range m.records {
		if r.Operation == operation && !r.CreatedAt.Before(since) && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memoryRecorder) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

func TestStore_DrainsOnStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	recorder := &memoryRecorder{}
	s := NewStore(ctx, log.New(io.Discard, "", 0), recorder, 16)
	s.Start()

	now := time.Now()
	for i := 0; i < 10; i++ {
		op := "send_sol"
		if i%2 == 0 {
			op = "send_token"
		}
		require.True(t, s.StoreOperationRecord(&OperationRecord{Operation: op, Success: true, CreatedAt: now}))
	}
	cancel()
	s.Stop()
	assert.Equal(t, 10, recorder.count())

	records, err := s.GetOperationRecords("send_sol", now.Add(-time.Minute), 3)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestStore_DropsWhenFull(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := NewStore(ctx, log.New(io.Discard, "", 0), &memoryRecorder{}, 1)
	assert.True(t, s.StoreOperationRecord(&OperationRecord{Id: "1"}))
	assert.False(t, s.StoreOperationRecord(&OperationRecord{Id: "2"}))
}

func TestStore_SaveErrorIsLogged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	recorder := &memoryRecorder{fail: true}
	s := NewStore(ctx, log.New(io.Discard, "", 0), recorder, 4)
	s.Start()
	s.StoreOperationRecord(&OperationRecord{Id: "x"})
	cancel()
	s.Stop()
	assert.Equal(t, 0, recorder.count())
}
