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

package types

import "fmt"

type T uint8

const (
	T_any T = iota

	T_int8
	T_int16
	T_int32
	T_int64
	T_uint8
	T_uint16
	T_uint32
	T_uint64
	T_float32
	T_float64

	// T_aggstate marks a vector that carries the intermediate state of one
	// grouping aggregator instead of column data. Such vectors only move
	// between two aggregators of the same reduction, never to a user.
	T_aggstate T = 200
)

// Type describes the element kind of one column.
type Type struct {
	Oid  T
	Size int32
}

func New(oid T) Type {
	return Type{Oid: oid, Size: int32(oid.TypeLen())}
}

func (t Type) TypeSize() int {
	return int(t.Size)
}

func (t Type) String() string {
	return t.Oid.String()
}

func (t T) ToType() Type {
	return New(t)
}

func (t T) TypeLen() int {
	switch t {
	case T_int8, T_uint8:
		return 1
	case T_int16, T_uint16:
		return 2
	case T_int32, T_uint32, T_float32:
		return 4
	case T_int64, T_uint64, T_float64:
		return 8
	case T_aggstate:
		return 0
	}
	return 0
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_int8:
		return "TINYINT"
	case T_int16:
		return "SMALLINT"
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_uint8:
		return "TINYINT UNSIGNED"
	case T_uint16:
		return "SMALLINT UNSIGNED"
	case T_uint32:
		return "INT UNSIGNED"
	case T_uint64:
		return "BIGINT UNSIGNED"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_aggstate:
		return "AGGSTATE"
	}
	return fmt.Sprintf("unknown type: %d", t)
}

// OrderedT covers the fixed-width kinds that support the < operator.
type OrderedT interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// FixedSizeT covers every kind a flat vector may hold as raw fixed-width
// elements.
type FixedSizeT interface {
	OrderedT | ~bool
}
