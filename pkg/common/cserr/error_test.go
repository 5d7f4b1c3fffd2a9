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

package cserr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	err := NewAggWiring("channel %d", 3)
	require.Equal(t, ErrAggWiring, err.ErrorCode())
	require.Contains(t, err.Error(), "aggregator wiring")
	require.Contains(t, err.Error(), "channel 3")

	require.True(t, IsErrCode(err, ErrAggWiring))
	require.False(t, IsErrCode(err, ErrAggStateKind))
}

func TestIsErrCode(t *testing.T) {
	require.True(t, IsErrCode(nil, Ok))
	require.False(t, IsErrCode(nil, ErrInternal))
	require.False(t, IsErrCode(errors.New("plain"), ErrInternal))
	require.True(t, IsErrCode(NewBadConfig("x"), ErrBadConfig))
}
