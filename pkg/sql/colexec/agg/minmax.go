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
	"math"

	"github.com/colstream/compute/pkg/common/cserr"
	"github.com/colstream/compute/pkg/container/batch"
	"github.com/colstream/compute/pkg/container/types"
	"github.com/colstream/compute/pkg/container/vector"
)

// foldAgg implements GroupingAggregator once for every reduction expressible
// as a binary operator with an identity value. The operator is an injected
// function value, not a subtype: adding a reduction is a constructor, not a
// class.
type foldAgg[T types.OrderedT] struct {
	op      int
	channel int
	typ     types.Type
	state   *ArrayState[T]
	fold    func(cur, v T) T
}

func newFoldAgg[T types.OrderedT](op int, typ types.Type, channel int,
	boundary T, fold func(cur, v T) T) *foldAgg[T] {
	return &foldAgg[T]{
		op:      op,
		channel: channel,
		typ:     typ,
		state:   NewArrayState(typ, boundary),
		fold:    fold,
	}
}

func (a *foldAgg[T]) OutputType() types.Type {
	return a.typ
}

func (a *foldAgg[T]) AddRawInput(groupIDs *vector.Vector, bat *batch.Batch) error {
	if a.channel < 0 {
		return cserr.NewAggWiring("raw input on a merge-only %s aggregator", Names[a.op])
	}
	if a.channel >= bat.VectorCount() {
		return cserr.NewAggWiring("%s aggregator reads channel %d, batch has %d",
			Names[a.op], a.channel, bat.VectorCount())
	}
	gs, err := groupIDsOf(groupIDs)
	if err != nil {
		return err
	}
	vec := bat.GetVector(a.channel)
	if vec.IsState() || vec.GetType().Oid != a.typ.Oid {
		return cserr.NewAggWiring("%s aggregator over %s got a %v channel",
			Names[a.op], a.typ, vec.GetType())
	}
	if vec.Length() != len(gs) {
		return cserr.NewInvalidInput("group ids have %d rows, values have %d",
			len(gs), vec.Length())
	}

	vs := vector.MustFixedCol[T](vec)
	nsp := vec.GetNulls()
	s := a.state
	for i, v := range vs {
		if nsp.Contains(uint64(i)) {
			continue
		}
		g, err := checkGroup(gs[i])
		if err != nil {
			return err
		}
		s.Set(a.fold(s.GetOrDefault(g), v), g)
	}
	return nil
}

func (a *foldAgg[T]) AddIntermediateInput(groupIDs *vector.Vector, partial *vector.Vector) error {
	if a.channel >= 0 {
		return cserr.NewAggWiring("merge input on a raw-input %s aggregator", Names[a.op])
	}
	raw, err := stateOf(partial)
	if err != nil {
		return err
	}
	src, ok := raw.(*ArrayState[T])
	if !ok {
		return cserr.NewAggStateKind("%s over %s cannot merge state %T",
			Names[a.op], a.typ, raw)
	}
	gs, err := groupIDsOf(groupIDs)
	if err != nil {
		return err
	}
	if len(gs) > src.groupCount() {
		return cserr.NewInvalidInput("merge of %d positions over a %d-group snapshot",
			len(gs), src.groupCount())
	}

	s := a.state
	for i, id := range gs {
		g, err := checkGroup(id)
		if err != nil {
			return err
		}
		s.Set(a.fold(s.GetOrDefault(g), src.GetOrDefault(i)), g)
	}
	return nil
}

func (a *foldAgg[T]) EvaluateIntermediate() (*vector.Vector, error) {
	return vector.NewState(a.state.clone()), nil
}

func (a *foldAgg[T]) EvaluateFinal() (*vector.Vector, error) {
	n := a.state.groupCount()
	vs := make([]T, n)
	copy(vs, a.state.Values()[:n])
	return vector.NewWithFixed(a.typ, vs, nil), nil
}

func checkGroup(id int64) (int, error) {
	if id < 0 {
		return 0, cserr.NewInvalidInput("negative group id %d", id)
	}
	return int(id), nil
}

// NaN never compares less than or greater than anything, so for the float
// kinds a NaN input never displaces the running value: min/max ignore NaN
// rows, and a group whose inputs are all NaN reports the identity value.
func minFold[T types.OrderedT](cur, v T) T {
	if v < cur {
		return v
	}
	return cur
}

func maxFold[T types.OrderedT](cur, v T) T {
	if v > cur {
		return v
	}
	return cur
}

// Identity values per kind: for min, nothing compares less than it; for
// max, nothing compares greater.
var minBoundaries = map[types.T]any{
	types.T_int8:    int8(math.MaxInt8),
	types.T_int16:   int16(math.MaxInt16),
	types.T_int32:   int32(math.MaxInt32),
	types.T_int64:   int64(math.MaxInt64),
	types.T_uint8:   uint8(math.MaxUint8),
	types.T_uint16:  uint16(math.MaxUint16),
	types.T_uint32:  uint32(math.MaxUint32),
	types.T_uint64:  uint64(math.MaxUint64),
	types.T_float32: float32(math.Inf(1)),
	types.T_float64: math.Inf(1),
}

var maxBoundaries = map[types.T]any{
	types.T_int8:    int8(math.MinInt8),
	types.T_int16:   int16(math.MinInt16),
	types.T_int32:   int32(math.MinInt32),
	types.T_int64:   int64(math.MinInt64),
	types.T_uint8:   uint8(0),
	types.T_uint16:  uint16(0),
	types.T_uint32:  uint32(0),
	types.T_uint64:  uint64(0),
	types.T_float32: float32(math.Inf(-1)),
	types.T_float64: math.Inf(-1),
}

// NewMin builds a minimum aggregator over typ reading the given channel,
// or a merge-only one when channel is MergeOnly.
func NewMin[T types.OrderedT](typ types.Type, channel int) (GroupingAggregator, error) {
	b, err := boundaryFor[T](Min, minBoundaries, typ)
	if err != nil {
		return nil, err
	}
	return newFoldAgg(Min, typ, channel, b, minFold[T]), nil
}

// NewMax builds a maximum aggregator over typ reading the given channel,
// or a merge-only one when channel is MergeOnly.
func NewMax[T types.OrderedT](typ types.Type, channel int) (GroupingAggregator, error) {
	b, err := boundaryFor[T](Max, maxBoundaries, typ)
	if err != nil {
		return nil, err
	}
	return newFoldAgg(Max, typ, channel, b, maxFold[T]), nil
}

func boundaryFor[T types.OrderedT](op int, boundaries map[types.T]any, typ types.Type) (T, error) {
	b, ok := boundaries[typ.Oid].(T)
	if !ok {
		return b, cserr.NewInternal("%s has no identity value for %s", Names[op], typ)
	}
	return b, nil
}
