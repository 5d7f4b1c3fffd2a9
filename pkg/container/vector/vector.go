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

package vector

import (
	"fmt"

	"github.com/colstream/compute/pkg/container/nulls"
	"github.com/colstream/compute/pkg/container/types"
)

const (
	// FLAT is an uncompressed column of fixed-width elements.
	FLAT = iota
	// STATE carries one grouping-aggregator intermediate state instead of
	// column data. It is a hand-off artifact between two aggregators of the
	// same reduction, never a query result.
	STATE
)

// Vector represents a column. It is immutable once built: readers share it
// freely, writers build a new one.
type Vector struct {
	class  int
	typ    types.Type
	nsp    *nulls.Nulls
	length int

	// col holds the []T of fixed-width elements for FLAT vectors, or the
	// aggregator state object for STATE vectors.
	col any
}

// NewWithFixed builds a flat vector over vs. The slice is owned by the
// vector afterwards and must not be written again by the caller.
func NewWithFixed[T types.FixedSizeT](typ types.Type, vs []T, nsp *nulls.Nulls) *Vector {
	return &Vector{
		class:  FLAT,
		typ:    typ,
		nsp:    nsp,
		length: len(vs),
		col:    vs,
	}
}

// NewState wraps one aggregator state for transport through batch channels.
func NewState(state any) *Vector {
	return &Vector{
		class:  STATE,
		typ:    types.New(types.T_aggstate),
		length: 1,
		col:    state,
	}
}

func (v *Vector) Length() int {
	return v.length
}

func (v *Vector) GetType() types.Type {
	return v.typ
}

func (v *Vector) GetNulls() *nulls.Nulls {
	return v.nsp
}

func (v *Vector) IsState() bool {
	return v.class == STATE
}

// AggState returns the wrapped aggregator state, or nil for data vectors.
// Callers must check the vector kind first; see agg.StateOf.
func (v *Vector) AggState() any {
	if v.class != STATE {
		return nil
	}
	return v.col
}

// MustFixedCol gets the raw elements of a flat vector. Calling it with a
// type that does not match the vector's declared kind is a programming
// error and panics.
func MustFixedCol[T types.FixedSizeT](v *Vector) []T {
	return v.col.([]T)
}

func (v *Vector) String() string {
	if v.class == STATE {
		return fmt.Sprintf("aggstate(%T)", v.col)
	}
	return fmt.Sprintf("%s-%v", v.typ, v.col)
}
