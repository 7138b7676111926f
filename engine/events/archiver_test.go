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

package events_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coldtrack/coldtrack/engine/events"
)

type memorySink struct {
	sync.Mutex
	records []*events.Record
}

func (m *memorySink) PutEvent(_ context.Context, record *events.Record) error {
	m.Lock()
	defer m.Unlock()
	m.records = append(m.records, record)
	return nil
}

func (m *memorySink) GetEvents(_ context.Context) ([]*events.Record, error) {
	m.Lock()
	defer m.Unlock()
	return m.records, nil
}

func (m *memorySink) count() int {
	m.Lock()
	defer m.Unlock()
	return len(m.records)
}

func TestArchiverDrainsQueue(t *testing.T) {
	ctx, done := context.WithCancel(context.Background())
	defer done()

	sink := &memorySink{}
	archiver := events.NewArchiver(ctx, sink)
	archiver.Run()

	for range 25 {
		archiver.Emit("CreateProduct", "product", "some-id", "CREATED")
	}

	require.Eventually(t, func() bool {
		return archiver.Drained() && sink.count() == 25
	}, 5*time.Second, 10*time.Millisecond)

	records, err := sink.GetEvents(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 25)
	assert.Equal(t, "CreateProduct", records[0].Operation)
	assert.Equal(t, "product", records[0].EntityKind)
}

func TestArchiverShutdown(t *testing.T) {
	ctx, done := context.WithCancel(context.Background())

	sink := &memorySink{}
	archiver := events.NewArchiver(ctx, sink)
	archiver.Run()

	archiver.Emit("CloseBidding", "product", "some-id", "SOLD")
	require.Eventually(t, archiver.Drained, 5*time.Second, 10*time.Millisecond)

	done()
	// All goroutines exit once the context is cancelled.
	archiver.WaitGroup.Wait()
}
