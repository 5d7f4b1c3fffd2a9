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
	"github.com/colstream/compute/pkg/common/cserr"
	"github.com/colstream/compute/pkg/container/types"
)

// New builds the aggregator for op over a typ column read from the given
// channel; MergeOnly builds the merge-side instance.
func New(op int, typ types.Type, channel int) (GroupingAggregator, error) {
	switch typ.Oid {
	case types.T_int8:
		return newFor[int8](op, typ, channel)
	case types.T_int16:
		return newFor[int16](op, typ, channel)
	case types.T_int32:
		return newFor[int32](op, typ, channel)
	case types.T_int64:
		return newFor[int64](op, typ, channel)
	case types.T_uint8:
		return newFor[uint8](op, typ, channel)
	case types.T_uint16:
		return newFor[uint16](op, typ, channel)
	case types.T_uint32:
		return newFor[uint32](op, typ, channel)
	case types.T_uint64:
		return newFor[uint64](op, typ, channel)
	case types.T_float32:
		return newFor[float32](op, typ, channel)
	case types.T_float64:
		return newFor[float64](op, typ, channel)
	}
	return nil, cserr.NewInternal("no grouping aggregator for %s", typ)
}

func newFor[T types.OrderedT](op int, typ types.Type, channel int) (GroupingAggregator, error) {
	switch op {
	case Min:
		return NewMin[T](typ, channel)
	case Max:
		return NewMax[T](typ, channel)
	case Sum:
		return NewSum[T](typ, channel)
	case ApproxCountDistinct:
		return NewApproxCountDistinct[T](typ, channel)
	}
	return nil, cserr.NewInternal("unknown aggregation %d", op)
}
