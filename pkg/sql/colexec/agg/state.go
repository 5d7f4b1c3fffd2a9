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

// ArrayState is the per-group running value of one fold aggregator: a
// growable array indexed by group id. Slots between the previous extent and
// a newly written group id are backfilled with the reduction's identity
// value, never zero; a zero fill would corrupt reductions whose identity is
// not zero (min over positives, for one).
//
// The state has exactly one owner. It is handed to another aggregator only
// as a detached snapshot.
type ArrayState[T types.OrderedT] struct {
	typ      types.Type
	boundary T
	vs       []T
	largest  int
}

func NewArrayState[T types.OrderedT](typ types.Type, boundary T) *ArrayState[T] {
	return &ArrayState[T]{
		typ:      typ,
		boundary: boundary,
		largest:  -1,
	}
}

// GetOrDefault returns the running value of group, or the identity value if
// the group has never been written.
func (s *ArrayState[T]) GetOrDefault(group int) T {
	if group < len(s.vs) {
		return s.vs[group]
	}
	return s.boundary
}

// Set stores v as the running value of group, growing the array on demand.
func (s *ArrayState[T]) Set(v T, group int) {
	for len(s.vs) <= group {
		s.vs = append(s.vs, s.boundary)
	}
	s.vs[group] = v
	if group > s.largest {
		s.largest = group
	}
}

// LargestIndex is the highest group id ever written, -1 when none.
func (s *ArrayState[T]) LargestIndex() int {
	return s.largest
}

// Values exposes the backing array for snapshot export. Read-only by
// contract.
func (s *ArrayState[T]) Values() []T {
	return s.vs
}

func (s *ArrayState[T]) groupCount() int {
	return s.largest + 1
}

func (s *ArrayState[T]) clone() *ArrayState[T] {
	ns := &ArrayState[T]{
		typ:      s.typ,
		boundary: s.boundary,
		largest:  s.largest,
	}
	if len(s.vs) > 0 {
		ns.vs = make([]T, len(s.vs))
		copy(ns.vs, s.vs)
	}
	return ns
}
