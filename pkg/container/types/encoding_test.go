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

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSlice(t *testing.T) {
	vs := []int64{-1, 0, 1, 1 << 40}
	data := EncodeSlice(vs)
	require.Equal(t, len(vs)*8, len(data))
	require.Equal(t, vs, DecodeSlice[int64](data))

	fs := []float64{1.5, -2.25}
	require.Equal(t, fs, DecodeSlice[float64](EncodeSlice(fs)))

	require.Nil(t, EncodeSlice([]int32(nil)))
	require.Nil(t, DecodeSlice[int32](nil))
}

func TestEncodeDecodeFixed(t *testing.T) {
	require.Equal(t, int32(-7), DecodeFixed[int32](EncodeFixed(int32(-7))))
	require.Equal(t, 3.5, DecodeFixed[float64](EncodeFixed(3.5)))
}

func TestEncodeDecodeType(t *testing.T) {
	typ := New(T_float64)
	got := DecodeType(EncodeType(&typ))
	require.Equal(t, typ, got)
	require.Equal(t, 8, got.TypeSize())
}

func TestTypeString(t *testing.T) {
	require.Equal(t, "BIGINT", New(T_int64).String())
	require.Equal(t, "AGGSTATE", T_aggstate.String())
}
