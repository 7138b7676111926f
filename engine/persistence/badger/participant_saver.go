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

	"github.com/coldtrack/coldtrack/engine/participant"
	"github.com/coldtrack/coldtrack/logging"
)

// GetParticipantR gets a participant and sets the read-only property.
// It does not check any locks, as the database transaction already freezes the view.
func (sp *StorageProvider) GetParticipantR(ctx context.Context, email string) (*participant.Business, error) {
	key := participant.GenerateStorageKey(email)
	b, err := get(sp.db, key)
	if err != nil {
		return nil, err
	}
	biz, err := participant.FromBytes(b)
	if err != nil {
		return nil, err
	}

	biz.SetReadOnly()
	return biz, nil
}

// GetParticipantRW gets a participant but does NOT set the read-only property, allowing
// changes to be saved. It acquires the participant specific lock.
func (sp *StorageProvider) GetParticipantRW(ctx context.Context, email string) (*participant.Business, error) {
	key := participant.GenerateStorageKey(email)
	ctx, _ = logging.InjectLabels(ctx, "type", "participant", "email", email, "key", string(key))
	b, err := getLocked(ctx, sp, key)
	if err != nil {
		return nil, err
	}

	biz, err := participant.FromBytes(b)
	if err != nil {
		_ = sp.ReleaseLock(ctx, newLockKey(key))
		return nil, err
	}

	return biz, nil
}

// PutParticipant saves a participant to the database, releasing the lock after it has
// saved.
func (sp *StorageProvider) PutParticipant(ctx context.Context, biz *participant.Business) error {
	return putUnlock(ctx, sp, biz)
}

// ReleaseParticipant will release the lock the participant has, without saving it.
func (sp *StorageProvider) ReleaseParticipant(ctx context.Context, biz *participant.Business) error {
	key := biz.StorageKey()

	biz.SetReadOnly()
	return sp.ReleaseLock(ctx, newLockKey(key))
}
