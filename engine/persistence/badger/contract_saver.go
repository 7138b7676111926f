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

	"github.com/google/uuid"

	"github.com/coldtrack/coldtrack/engine/contract"
	"github.com/coldtrack/coldtrack/logging"
)

// GetContractR gets a contract and sets the read-only property.
// It does not check any locks, as the database transaction already freezes the view.
func (sp *StorageProvider) GetContractR(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	key := contract.GenerateStorageKey(id)
	b, err := get(sp.db, key)
	if err != nil {
		return nil, err
	}
	con, err := contract.FromBytes(b)
	if err != nil {
		return nil, err
	}

	con.SetReadOnly()
	return con, nil
}

// GetContractRW gets a contract but does NOT set the read-only property, allowing changes
// to be saved. It acquires the contract specific lock.
func (sp *StorageProvider) GetContractRW(ctx context.Context, id uuid.UUID) (*contract.Contract, error) {
	key := contract.GenerateStorageKey(id)
	ctx, _ = logging.InjectLabels(ctx, "type", "contract", "id", id.String(), "key", string(key))
	b, err := getLocked(ctx, sp, key)
	if err != nil {
		return nil, err
	}

	con, err := contract.FromBytes(b)
	if err != nil {
		_ = sp.ReleaseLock(ctx, newLockKey(key))
		return nil, err
	}

	return con, nil
}

// PutContract saves a contract to the database, releasing the lock after it has saved.
func (sp *StorageProvider) PutContract(ctx context.Context, con *contract.Contract) error {
	return putUnlock(ctx, sp, con)
}

// ReleaseContract will release the lock the contract has, without saving it.
func (sp *StorageProvider) ReleaseContract(ctx context.Context, con *contract.Contract) error {
	key := con.StorageKey()

	con.SetReadOnly()
	return sp.ReleaseLock(ctx, newLockKey(key))
}
