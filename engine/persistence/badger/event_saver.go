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

package badger

import (
	"context"
	"slices"

	"github.com/coldtrack/coldtrack/engine/events"
)

// PutEvent stores an audit record. Records are immutable, so no locking is involved.
func (sp *StorageProvider) PutEvent(ctx context.Context, record *events.Record) error {
	b, err := record.ToBytes()
	if err != nil {
		return err
	}
	return put(sp.db, record.StorageKey(), b)
}

// GetEvents returns all audit records, oldest first.
func (sp *StorageProvider) GetEvents(ctx context.Context) ([]*events.Record, error) {
	values, err := getAll(sp.db, []byte("event-"))
	if err != nil {
		return nil, err
	}
	records := make([]*events.Record, 0, len(values))
	for _, v := range values {
		r, err := events.RecordFromBytes(v)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b *events.Record) int {
		return a.Time.Compare(b.Time)
	})
	return records, nil
}
