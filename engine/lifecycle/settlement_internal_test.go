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

package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorstDeviation(t *testing.T) {
	tests := []struct {
		name     string
		readings []float64
		want     float64
	}{
		{
			name:     "no readings",
			readings: nil,
			want:     0,
		},
		{
			name:     "all in range",
			readings: []float64{2, 5, 8},
			want:     0,
		},
		{
			name:     "above maximum",
			readings: []float64{5, 10.5},
			want:     2.5,
		},
		{
			name:     "below minimum",
			readings: []float64{-1, 5},
			want:     3,
		},
		{
			name:     "worst of both sides",
			readings: []float64{-1, 5, 12},
			want:     4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, worstDeviation(tt.readings, 2, 8))
		})
	}
}

func TestPenaltyFactor(t *testing.T) {
	tests := []struct {
		name      string
		deviation float64
		want      float64
	}{
		{
			name:      "no deviation no penalty",
			deviation: 0,
			want:      0,
		},
		{
			name:      "small deviation clamps to minimum",
			deviation: 0.5,
			want:      0.1,
		},
		{
			name:      "scales with deviation",
			deviation: 3,
			want:      0.3,
		},
		{
			name:      "large deviation clamps to maximum",
			deviation: 20,
			want:      0.5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, penaltyFactor(tt.deviation, 0.1, 0.5), 1e-9)
		})
	}
}
