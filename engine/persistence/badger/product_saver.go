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

	"github.com/coldtrack/coldtrack/engine/listing"
	"github.com/coldtrack/coldtrack/logging"
)

// GetProductR gets a product and sets the read-only property.
// It does not check any locks, as the database transaction already freezes the view.
func (sp *StorageProvider) GetProductR(ctx context.Context, id uuid.UUID) (*listing.Product, error) {
	key := listing.GenerateStorageKey(id)
	b, err := get(sp.db, key)
	if err != nil {
		return nil, err
	}
	product, err := listing.FromBytes(b)
	if err != nil {
		return nil, err
	}

	product.SetReadOnly()
	return product, nil
}

// GetProductRW gets a product but does NOT set the read-only property, allowing changes to
// be saved. It will try to acquire a lock, and if it can't it will panic, as we want lock
// problems to be extremely visible.
func (sp *StorageProvider) GetProductRW(ctx context.Context, id uuid.UUID) (*listing.Product, error) {
	key := listing.GenerateStorageKey(id)
	ctx, _ = logging.InjectLabels(ctx, "type", "product", "id", id.String(), "key", string(key))
	b, err := getLocked(ctx, sp, key)
	if err != nil {
		return nil, err
	}

	product, err := listing.FromBytes(b)
	if err != nil {
		_ = sp.ReleaseLock(ctx, newLockKey(key))
		return nil, err
	}

	return product, nil
}

// PutProduct saves a product to the database.
// If the product is set to read-only, it will panic as this is a bug in the code.
// It will release the lock after it has saved.
func (sp *StorageProvider) PutProduct(ctx context.Context, product *listing.Product) error {
	return putUnlock(ctx, sp, product)
}

// ReleaseProduct will release the lock the product has, without saving it.
func (sp *StorageProvider) ReleaseProduct(ctx context.Context, product *listing.Product) error {
	key := product.StorageKey()

	product.SetReadOnly()
	return sp.ReleaseLock(ctx, newLockKey(key))
}
