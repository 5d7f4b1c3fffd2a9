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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/colstream/compute/pkg/common/cserr"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Greater(t, cfg.Pipeline.Parallelism, 0)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compute.toml")
	content := `
[pipeline]
parallelism = 4

[log]
level = "debug"
max-size = 128
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 4, cfg.Pipeline.Parallelism)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, 128, cfg.Log.MaxSize)
}

func TestLoadBadFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.True(t, cserr.IsErrCode(err, cserr.ErrBadConfig))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Pipeline.Parallelism = -1
	err := cfg.Validate()
	require.True(t, cserr.IsErrCode(err, cserr.ErrBadConfig))

	cfg.Pipeline.Parallelism = 0
	require.NoError(t, cfg.Validate())
	require.Greater(t, cfg.Pipeline.Parallelism, 0)
}
