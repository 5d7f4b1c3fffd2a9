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

package batch

import (
	"bytes"
	"fmt"

	"github.com/colstream/compute/pkg/common/cserr"
	"github.com/colstream/compute/pkg/container/vector"
)

// Batch represents a batch of rows as positionally aligned columns:
// position i of every vector belongs to the same logical row.
type Batch struct {
	// Attrs is the column name list, aligned with Vecs.
	Attrs []string
	// Vecs is the column data.
	Vecs []*vector.Vector

	rowCount int
}

func New(attrs []string) *Batch {
	return &Batch{
		Attrs: attrs,
		Vecs:  make([]*vector.Vector, len(attrs)),
	}
}

func NewWithSize(n int) *Batch {
	return &Batch{
		Vecs: make([]*vector.Vector, n),
	}
}

// SetVector installs vec as the i-th channel. Every channel of one batch
// must hold the same number of rows; the first channel fixes the count.
func (bat *Batch) SetVector(i int, vec *vector.Vector) error {
	if i < 0 || i >= len(bat.Vecs) {
		return cserr.NewInvalidInput("channel %d out of range [0, %d)", i, len(bat.Vecs))
	}
	for j, v := range bat.Vecs {
		if v != nil && j != i && v.Length() != vec.Length() {
			return cserr.NewInvalidInput(
				"channel %d has %d rows, channel %d has %d", i, vec.Length(), j, v.Length())
		}
	}
	bat.Vecs[i] = vec
	bat.rowCount = vec.Length()
	return nil
}

func (bat *Batch) GetVector(i int) *vector.Vector {
	return bat.Vecs[i]
}

func (bat *Batch) VectorCount() int {
	return len(bat.Vecs)
}

func (bat *Batch) RowCount() int {
	return bat.rowCount
}

func (bat *Batch) String() string {
	var buf bytes.Buffer
	for i, vec := range bat.Vecs {
		if len(bat.Attrs) > i {
			buf.WriteString(bat.Attrs[i])
		}
		buf.WriteString(fmt.Sprintf("\n\t%v\n", vec))
	}
	return buf.String()
}
