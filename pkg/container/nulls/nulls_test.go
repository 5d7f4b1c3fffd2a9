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

package nulls

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNilNulls(t *testing.T) {
	var nsp *Nulls
	require.False(t, nsp.Any())
	require.False(t, nsp.Contains(0))
	require.Equal(t, 0, nsp.Count())
	require.Nil(t, nsp.Clone())
}

func TestAddContains(t *testing.T) {
	nsp := NewWithRows(1, 3)
	nsp.Add(5)
	require.True(t, nsp.Any())
	require.Equal(t, 3, nsp.Count())
	require.True(t, nsp.Contains(1))
	require.True(t, nsp.Contains(5))
	require.False(t, nsp.Contains(2))
}

func TestOr(t *testing.T) {
	var r Nulls
	Or(NewWithRows(0, 2), NewWithRows(2, 4), &r)
	require.Equal(t, 3, r.Count())
	require.True(t, r.Contains(4))

	Or(nil, nil, &r)
	require.False(t, r.Any())
}

func TestClone(t *testing.T) {
	nsp := NewWithRows(7)
	dup := nsp.Clone()
	dup.Add(8)
	require.False(t, nsp.Contains(8))
	require.True(t, dup.Contains(7))
}
