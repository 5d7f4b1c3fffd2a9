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

// Package nulls wraps the roaring bitmap library to store the NULL rows of
// a column. A nil *Nulls means the column has no NULL rows at all.
package nulls

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/roaring64"
)

type Nulls struct {
	Np *roaring64.Bitmap
}

func NewWithRows(rows ...uint64) *Nulls {
	nsp := &Nulls{Np: roaring64.New()}
	nsp.Np.AddMany(rows)
	return nsp
}

func (nsp *Nulls) Add(rows ...uint64) {
	if nsp.Np == nil {
		nsp.Np = roaring64.New()
	}
	nsp.Np.AddMany(rows)
}

func (nsp *Nulls) Contains(row uint64) bool {
	return nsp != nil && nsp.Np != nil && nsp.Np.Contains(row)
}

func (nsp *Nulls) Any() bool {
	return nsp != nil && nsp.Np != nil && !nsp.Np.IsEmpty()
}

func (nsp *Nulls) Count() int {
	if nsp == nil || nsp.Np == nil {
		return 0
	}
	return int(nsp.Np.GetCardinality())
}

func (nsp *Nulls) Clone() *Nulls {
	if nsp == nil {
		return nil
	}
	if nsp.Np == nil {
		return &Nulls{}
	}
	return &Nulls{Np: nsp.Np.Clone()}
}

// Or stores the union of nsp and m in r.
func Or(nsp, m, r *Nulls) {
	if !nsp.Any() && !m.Any() {
		r.Np = nil
		return
	}
	r.Np = roaring64.New()
	if nsp.Any() {
		r.Np.Or(nsp.Np)
	}
	if m.Any() {
		r.Np.Or(m.Np)
	}
}

func (nsp *Nulls) String() string {
	if nsp == nil || nsp.Np == nil {
		return "[]"
	}
	return fmt.Sprintf("%v", nsp.Np.ToArray())
}
