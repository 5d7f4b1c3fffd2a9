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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colstream/compute/pkg/container/batch"
	"github.com/colstream/compute/pkg/container/types"
	"github.com/colstream/compute/pkg/container/vector"
)

func TestSumSinglePass(t *testing.T) {
	a, err := NewSum[int64](types.New(types.T_int64), 0)
	require.NoError(t, err)

	bat := batch.NewWithSize(1)
	require.NoError(t, bat.SetVector(0,
		vector.NewWithFixed(types.New(types.T_int64), []int64{5, 2, 3}, nil)))
	require.NoError(t, a.AddRawInput(groupVec(0, 1, 0), bat))

	vec, err := a.EvaluateFinal()
	require.NoError(t, err)
	require.Equal(t, []int64{8, 2}, vector.MustFixedCol[int64](vec))
}

func TestSumSplitMerge(t *testing.T) {
	typ := types.New(types.T_int64)
	mk := func(gs []int64, vs []int64) *vector.Vector {
		p, err := NewSum[int64](typ, 0)
		require.NoError(t, err)
		bat := batch.NewWithSize(1)
		require.NoError(t, bat.SetVector(0, vector.NewWithFixed(typ, vs, nil)))
		require.NoError(t, p.AddRawInput(groupVec(gs...), bat))
		snap, err := p.EvaluateIntermediate()
		require.NoError(t, err)
		return snap
	}

	root, err := NewSum[int64](typ, MergeOnly)
	require.NoError(t, err)
	require.NoError(t, root.AddIntermediateInput(groupVec(0, 1), mk([]int64{0, 1}, []int64{5, 2})))
	require.NoError(t, root.AddIntermediateInput(groupVec(0), mk([]int64{0}, []int64{3})))

	vec, err := root.EvaluateFinal()
	require.NoError(t, err)
	require.Equal(t, []int64{8, 2}, vector.MustFixedCol[int64](vec))
}

// Sum is not idempotent: delivering the same snapshot twice overstates the
// result. The merge tree must deliver each snapshot exactly once.
func TestSumRemergeIsNotIdempotent(t *testing.T) {
	typ := types.New(types.T_int64)
	p, err := NewSum[int64](typ, 0)
	require.NoError(t, err)
	bat := batch.NewWithSize(1)
	require.NoError(t, bat.SetVector(0, vector.NewWithFixed(typ, []int64{4}, nil)))
	require.NoError(t, p.AddRawInput(groupVec(0), bat))
	snap, err := p.EvaluateIntermediate()
	require.NoError(t, err)

	root, err := NewSum[int64](typ, MergeOnly)
	require.NoError(t, err)
	require.NoError(t, root.AddIntermediateInput(groupVec(0), snap))
	require.NoError(t, root.AddIntermediateInput(groupVec(0), snap))

	vec, err := root.EvaluateFinal()
	require.NoError(t, err)
	require.Equal(t, []int64{8}, vector.MustFixedCol[int64](vec))
}
