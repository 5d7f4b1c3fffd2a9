// Copyright 2022 Colstream
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package agg

import (
	"github.com/colstream/compute/pkg/container/types"
)

func sumFold[T types.OrderedT](cur, v T) T {
	return cur + v
}

// Sum's identity value is plain zero for every kind.
var zeroBoundaries = map[types.T]any{
	types.T_int8:    int8(0),
	types.T_int16:   int16(0),
	types.T_int32:   int32(0),
	types.T_int64:   int64(0),
	types.T_uint8:   uint8(0),
	types.T_uint16:  uint16(0),
	types.T_uint32:  uint32(0),
	types.T_uint64:  uint64(0),
	types.T_float32: float32(0),
	types.T_float64: float64(0),
}

// NewSum builds a summation aggregator over typ. Sum rides the same
// two-phase protocol as min/max, but unlike them it is NOT idempotent:
// every intermediate snapshot must be merged into a target exactly once,
// or the result is overstated. The merge tree owns that guarantee.
func NewSum[T types.OrderedT](typ types.Type, channel int) (GroupingAggregator, error) {
	b, err := boundaryFor[T](Sum, zeroBoundaries, typ)
	if err != nil {
		return nil, err
	}
	return newFoldAgg(Sum, typ, channel, b, sumFold[T]), nil
}
