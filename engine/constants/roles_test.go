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

package constants_test

import (
	"testing"

	"github.com/coldtrack/coldtrack/engine/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	t.Parallel()
	wire := map[string]constants.ParticipantRole{
		"SUPPLIER": constants.RoleSupplier,
		"SHIPPER":  constants.RoleShipper,
		"RETAILER": constants.RoleRetailer,
	}
	for s, want := range wire {
		role, err := constants.ParseRole(s)
		require.NoError(t, err)
		assert.Equal(t, want, role)
		assert.Equal(t, s, role.String())
	}

	_, err := constants.ParseRole("Supplier")
	assert.Error(t, err)
}
