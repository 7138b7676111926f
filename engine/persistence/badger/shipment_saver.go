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

	"github.com/coldtrack/coldtrack/engine/shipment"
	"github.com/coldtrack/coldtrack/logging"
)

// GetShipmentR gets a shipment and sets the read-only property.
// It does not check any locks, as the database transaction already freezes the view.
func (sp *StorageProvider) GetShipmentR(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	key := shipment.GenerateStorageKey(id)
	b, err := get(sp.db, key)
	if err != nil {
		return nil, err
	}
	shp, err := shipment.FromBytes(b)
	if err != nil {
		return nil, err
	}

	shp.SetReadOnly()
	return shp, nil
}

// GetShipmentRW gets a shipment but does NOT set the read-only property, allowing changes
// to be saved. It acquires the shipment specific lock.
func (sp *StorageProvider) GetShipmentRW(ctx context.Context, id uuid.UUID) (*shipment.Shipment, error) {
	key := shipment.GenerateStorageKey(id)
	ctx, _ = logging.InjectLabels(ctx, "type", "shipment", "id", id.String(), "key", string(key))
	b, err := getLocked(ctx, sp, key)
	if err != nil {
		return nil, err
	}

	shp, err := shipment.FromBytes(b)
	if err != nil {
		_ = sp.ReleaseLock(ctx, newLockKey(key))
		return nil, err
	}

	return shp, nil
}

// PutShipment saves a shipment to the database, releasing the lock after it has saved.
func (sp *StorageProvider) PutShipment(ctx context.Context, shp *shipment.Shipment) error {
	return putUnlock(ctx, sp, shp)
}

// ReleaseShipment will release the lock the shipment has, without saving it.
func (sp *StorageProvider) ReleaseShipment(ctx context.Context, shp *shipment.Shipment) error {
	key := shp.StorageKey()

	shp.SetReadOnly()
	return sp.ReleaseLock(ctx, newLockKey(key))
}
