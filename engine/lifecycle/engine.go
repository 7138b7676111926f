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

// Package lifecycle contains the lifecycle & pricing engine. It applies transactions
// against the ledger entities, enforcing state-machine legality and computing the
// temperature-penalty-adjusted settlement price.
//
// Every operation reads the entities it references through the storage provider,
// validates all preconditions before the first write, and only then saves. A rejected
// transaction therefore leaves no observable mutation. The engine performs no retries,
// the submission boundary owns those.
package lifecycle

import (
	"context"
	"errors"

	"github.com/coldtrack/coldtrack/engine/constants"
	"github.com/coldtrack/coldtrack/engine/events"
	"github.com/coldtrack/coldtrack/engine/participant"
	"github.com/coldtrack/coldtrack/engine/persistence"
	"github.com/coldtrack/coldtrack/logging"
)

// Engine validates and applies transactions against the ledger store.
type Engine struct {
	store    persistence.StorageProvider
	archiver *events.Archiver
}

// New returns an engine over the given store. The archiver may be nil, in which case no
// audit trail is written.
func New(store persistence.StorageProvider, archiver *events.Archiver) *Engine {
	return &Engine{
		store:    store,
		archiver: archiver,
	}
}

func (e *Engine) emit(operation, entityKind, entityID, outcome string) {
	if e.archiver == nil {
		return
	}
	e.archiver.Emit(operation, entityKind, entityID, outcome)
}

// RegisterParticipant onboards a business participant with an opening balance. The email
// is the participant's identity, registering it twice is rejected.
func (e *Engine) RegisterParticipant(
	ctx context.Context,
	email string,
	role constants.ParticipantRole,
	address string,
	balance float64,
) (*participant.Business, error) {
	ctx, logger := logging.InjectLabels(ctx, "operation", "RegisterParticipant", "email", email)
	if email == "" {
		return nil, invalidRange(email, "email must not be empty")
	}
	if balance < 0 {
		return nil, invalidRange(email, "opening balance must not be negative")
	}
	if _, err := e.store.GetParticipantR(ctx, email); err == nil {
		return nil, invalidState(email, "", "participant already registered")
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return nil, err
	}

	biz := participant.New(email, role, address, balance)
	if err := e.store.PutParticipant(ctx, biz); err != nil {
		return nil, err
	}
	logger.Info("Participant registered", "role", role.String())
	e.emit("RegisterParticipant", "participant", email, role.String())
	return biz, nil
}

// getParticipant resolves an email to a read-only participant of the wanted role.
func (e *Engine) getParticipant(
	ctx context.Context,
	email string,
	role constants.ParticipantRole,
) (*participant.Business, error) {
	biz, err := e.store.GetParticipantR(ctx, email)
	if err != nil {
		return nil, wrapFetch(err, email)
	}
	if biz.GetRole() != role {
		return nil, invalidState(email, biz.GetRole().String(), "participant is not a "+role.String())
	}
	return biz, nil
}
