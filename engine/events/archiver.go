// Copyright 2025 coldtrack
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package events contains the audit trail of applied transactions. Records are buffered in
// an in-memory queue and persisted asynchronously, archiving never blocks or fails the
// transaction that produced the record.
package events

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"sync"
	"time"

	"github.com/gammazero/deque"
	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/logging"
)

const (
	initialQueueSize = 100
	drainMillis      = 10
	workers          = 1

	maxAttempts = 10
)

// Record is one applied transaction in the audit trail.
type Record struct {
	ID         uuid.UUID
	Time       time.Time
	Operation  string
	EntityKind string
	EntityID   string
	Outcome    string
}

// Sink persists audit records. Records are immutable once written, so no locking is
// involved.
type Sink interface {
	PutEvent(ctx context.Context, record *Record) error
	GetEvents(ctx context.Context) ([]*Record, error)
}

// GenerateStorageKey generates the storage key for an audit record.
func GenerateStorageKey(id uuid.UUID) []byte {
	return []byte("event-" + id.String())
}

func (r *Record) StorageKey() []byte {
	return GenerateStorageKey(r.ID)
}

func (r *Record) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(r); err != nil {
		return nil, fmt.Errorf("could not encode record: %w", err)
	}
	return buf.Bytes(), nil
}

func RecordFromBytes(b []byte) (*Record, error) {
	var r Record
	dec := gob.NewDecoder(bytes.NewReader(b))
	if err := dec.Decode(&r); err != nil {
		return nil, fmt.Errorf("could not decode bytes into Record: %w", err)
	}
	return &r, nil
}

type archiveOperation struct {
	Attempts int
	Record   *Record
}

// Archiver drains emitted records into the sink. A record that fails to persist is
// requeued up to maxAttempts before it is dropped with an error log.
type Archiver struct {
	ctx  context.Context
	c    chan archiveOperation
	sink Sink
	q    *deque.Deque[archiveOperation]

	// Waitgroup keeping track of the manager/worker goroutines, waited on during shutdown
	// by the server command.
	WaitGroup sync.WaitGroup
	sync.Mutex
}

func NewArchiver(ctx context.Context, sink Sink) *Archiver {
	q := &deque.Deque[archiveOperation]{}
	q.Grow(initialQueueSize)

	return &Archiver{
		ctx:  ctx,
		c:    make(chan archiveOperation),
		sink: sink,
		q:    q,
	}
}

func (a *Archiver) Run() {
	a.WaitGroup.Add(1 + workers)
	go a.manager()
	for range workers {
		go a.worker()
	}
}

// Emit queues a record for archiving. It never blocks on the sink.
func (a *Archiver) Emit(operation, entityKind, entityID, outcome string) {
	a.Lock()
	defer a.Unlock()
	a.q.PushBack(archiveOperation{
		Record: &Record{
			ID:         uuid.New(),
			Time:       time.Now(),
			Operation:  operation,
			EntityKind: entityKind,
			EntityID:   entityID,
			Outcome:    outcome,
		},
	})
}

// Drained reports whether the buffer is empty, the tests use this to wait for the worker.
func (a *Archiver) Drained() bool {
	a.Lock()
	defer a.Unlock()
	return a.q.Len() == 0
}

func (a *Archiver) manager() {
	// A ticker triggers the iterations so we don't hammer the queue in a tight loop.
	ticker := time.NewTicker(drainMillis * time.Millisecond)
	for {
		select {
		case <-ticker.C:
			a.Lock()
			if a.q.Len() == 0 {
				a.Unlock()
				continue
			}
			op := a.q.PopFront()
			a.Unlock()
			op.Attempts++
			a.c <- op
		case <-a.ctx.Done():
			ticker.Stop()
			a.WaitGroup.Done()
			return
		}
	}
}

func (a *Archiver) worker() {
	logger := logging.Extract(a.ctx)
	logger.Info("Starting audit archive loop")
	for {
		select {
		case op := <-a.c:
			ctx, opLogger := logging.InjectLabels(a.ctx,
				"recordID", op.Record.ID.String(),
				"operation", op.Record.Operation,
				"entityKind", op.Record.EntityKind,
				"entityID", op.Record.EntityID,
			)
			if err := a.sink.PutEvent(ctx, op.Record); err != nil {
				if op.Attempts >= maxAttempts {
					opLogger.Error("Dropping audit record", "err", err, "attempts", op.Attempts)
					continue
				}
				opLogger.Warn("Couldn't archive record, requeueing", "err", err)
				a.Lock()
				a.q.PushBack(op)
				a.Unlock()
			}
		case <-a.ctx.Done():
			logger.Info("Context done called, exiting.")
			a.WaitGroup.Done()
			return
		}
	}
}
