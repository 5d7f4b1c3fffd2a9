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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colstream/compute/pkg/container/nulls"
	"github.com/colstream/compute/pkg/container/types"
)

func TestNewWithFixed(t *testing.T) {
	vec := NewWithFixed(types.New(types.T_float64), []float64{1.5, 2.5}, nil)
	require.Equal(t, 2, vec.Length())
	require.Equal(t, types.T_float64, vec.GetType().Oid)
	require.False(t, vec.IsState())
	require.Nil(t, vec.AggState())
	require.Equal(t, []float64{1.5, 2.5}, MustFixedCol[float64](vec))
}

func TestVectorNulls(t *testing.T) {
	vec := NewWithFixed(types.New(types.T_int64), []int64{1, 2, 3}, nulls.NewWithRows(1))
	require.True(t, vec.GetNulls().Contains(1))
	require.False(t, vec.GetNulls().Contains(0))
}

func TestStateVector(t *testing.T) {
	type fakeState struct{ n int }
	vec := NewState(&fakeState{n: 3})
	require.True(t, vec.IsState())
	require.Equal(t, types.T_aggstate, vec.GetType().Oid)
	require.Equal(t, 1, vec.Length())
	require.Equal(t, 3, vec.AggState().(*fakeState).n)
}

func TestMustFixedColMismatchPanics(t *testing.T) {
	vec := NewWithFixed(types.New(types.T_int64), []int64{1}, nil)
	require.Panics(t, func() { MustFixedCol[float64](vec) })
}
