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
	hll "github.com/axiomhq/hyperloglog"

	"github.com/colstream/compute/pkg/common/cserr"
	"github.com/colstream/compute/pkg/container/batch"
	"github.com/colstream/compute/pkg/container/types"
	"github.com/colstream/compute/pkg/container/vector"
)

// SketchState keeps one hyperloglog sketch per group. Sketch union is
// associative, commutative and idempotent, so approximate count distinct
// rides the two-phase protocol exactly like min/max, re-merges included.
type SketchState struct {
	sks     []*hll.Sketch
	largest int
}

func NewSketchState() *SketchState {
	return &SketchState{largest: -1}
}

func (s *SketchState) insert(group int, data []byte) {
	s.touch(group)
	s.sks[group].Insert(data)
}

func (s *SketchState) mergeSketch(group int, sk *hll.Sketch) error {
	s.touch(group)
	return s.sks[group].Merge(sk)
}

// touch grows the sketch array to cover group; a group's sketch stays nil
// until the group is first written, an empty slot estimates zero.
func (s *SketchState) touch(group int) {
	for len(s.sks) <= group {
		s.sks = append(s.sks, nil)
	}
	if s.sks[group] == nil {
		s.sks[group] = hll.New()
	}
	if group > s.largest {
		s.largest = group
	}
}

func (s *SketchState) estimate(group int) uint64 {
	if group >= len(s.sks) || s.sks[group] == nil {
		return 0
	}
	return s.sks[group].Estimate()
}

func (s *SketchState) groupCount() int {
	return s.largest + 1
}

func (s *SketchState) clone() (*SketchState, error) {
	ns := &SketchState{largest: s.largest}
	if len(s.sks) == 0 {
		return ns, nil
	}
	ns.sks = make([]*hll.Sketch, len(s.sks))
	for i, sk := range s.sks {
		if sk == nil {
			continue
		}
		data, err := sk.MarshalBinary()
		if err != nil {
			return nil, err
		}
		dup := hll.New()
		if err = dup.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		ns.sks[i] = dup
	}
	return ns, nil
}

type approxCountDistinct[T types.OrderedT] struct {
	channel int
	ityp    types.Type
	state   *SketchState
}

// NewApproxCountDistinct builds an approximate distinct-count aggregator
// over typ reading the given channel, or a merge-only one when channel is
// MergeOnly. The final output is a BIGINT UNSIGNED count per group; groups
// that never received a value report zero.
func NewApproxCountDistinct[T types.OrderedT](typ types.Type, channel int) (GroupingAggregator, error) {
	if _, ok := zeroBoundaries[typ.Oid].(T); !ok {
		return nil, cserr.NewInternal("%s cannot sketch %s values",
			Names[ApproxCountDistinct], typ)
	}
	return &approxCountDistinct[T]{
		channel: channel,
		ityp:    typ,
		state:   NewSketchState(),
	}, nil
}

func (a *approxCountDistinct[T]) OutputType() types.Type {
	return types.New(types.T_uint64)
}

func (a *approxCountDistinct[T]) AddRawInput(groupIDs *vector.Vector, bat *batch.Batch) error {
	if a.channel < 0 {
		return cserr.NewAggWiring("raw input on a merge-only %s aggregator",
			Names[ApproxCountDistinct])
	}
	if a.channel >= bat.VectorCount() {
		return cserr.NewAggWiring("%s aggregator reads channel %d, batch has %d",
			Names[ApproxCountDistinct], a.channel, bat.VectorCount())
	}
	gs, err := groupIDsOf(groupIDs)
	if err != nil {
		return err
	}
	vec := bat.GetVector(a.channel)
	if vec.IsState() || vec.GetType().Oid != a.ityp.Oid {
		return cserr.NewAggWiring("%s aggregator over %s got a %v channel",
			Names[ApproxCountDistinct], a.ityp, vec.GetType())
	}
	if vec.Length() != len(gs) {
		return cserr.NewInvalidInput("group ids have %d rows, values have %d",
			len(gs), vec.Length())
	}

	vs := vector.MustFixedCol[T](vec)
	nsp := vec.GetNulls()
	for i, v := range vs {
		if nsp.Contains(uint64(i)) {
			continue
		}
		g, err := checkGroup(gs[i])
		if err != nil {
			return err
		}
		a.state.insert(g, types.EncodeFixed(v))
	}
	return nil
}

func (a *approxCountDistinct[T]) AddIntermediateInput(groupIDs *vector.Vector, partial *vector.Vector) error {
	if a.channel >= 0 {
		return cserr.NewAggWiring("merge input on a raw-input %s aggregator",
			Names[ApproxCountDistinct])
	}
	raw, err := stateOf(partial)
	if err != nil {
		return err
	}
	src, ok := raw.(*SketchState)
	if !ok {
		return cserr.NewAggStateKind("%s cannot merge state %T",
			Names[ApproxCountDistinct], raw)
	}
	gs, err := groupIDsOf(groupIDs)
	if err != nil {
		return err
	}
	if len(gs) > src.groupCount() {
		return cserr.NewInvalidInput("merge of %d positions over a %d-group snapshot",
			len(gs), src.groupCount())
	}

	for i, id := range gs {
		g, err := checkGroup(id)
		if err != nil {
			return err
		}
		if i >= len(src.sks) || src.sks[i] == nil {
			continue
		}
		if err = a.state.mergeSketch(g, src.sks[i]); err != nil {
			return cserr.NewInternal("merge sketch of group %d: %v", g, err)
		}
	}
	return nil
}

func (a *approxCountDistinct[T]) EvaluateIntermediate() (*vector.Vector, error) {
	ns, err := a.state.clone()
	if err != nil {
		return nil, cserr.NewInternal("snapshot sketches: %v", err)
	}
	return vector.NewState(ns), nil
}

func (a *approxCountDistinct[T]) EvaluateFinal() (*vector.Vector, error) {
	n := a.state.groupCount()
	vs := make([]uint64, n)
	for i := range vs {
		vs[i] = a.state.estimate(i)
	}
	return vector.NewWithFixed(a.OutputType(), vs, nil), nil
}
