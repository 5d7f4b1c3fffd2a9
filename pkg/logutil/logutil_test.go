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

package logutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compute.log")
	SetupLogger(LogConfig{Level: "debug", Filename: path})
	defer SetupLogger(LogConfig{Level: "info"})

	Info("hello", zap.Int("n", 1))
	Debugf("world %d", 2)
	require.NoError(t, GetGlobalLogger().Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello")
	require.Contains(t, string(data), "world 2")
}

func TestBadLevelFallsBack(t *testing.T) {
	SetupLogger(LogConfig{Level: "nonsense"})
	defer SetupLogger(LogConfig{Level: "info"})
	require.True(t, GetGlobalLogger().Core().Enabled(zap.InfoLevel))
	require.False(t, GetGlobalLogger().Core().Enabled(zap.DebugLevel))
}
