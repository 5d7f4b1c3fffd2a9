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
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/colstream/compute/pkg/common/cserr"
	"github.com/colstream/compute/pkg/logutil"
)

// PipelineConfig drives the two-phase aggregation runtime.
type PipelineConfig struct {
	// Parallelism is the number of partial aggregators, each owned by one
	// worker. 0 means one per CPU.
	Parallelism int `toml:"parallelism"`
}

type Configuration struct {
	Pipeline PipelineConfig    `toml:"pipeline"`
	Log      logutil.LogConfig `toml:"log"`
}

func Default() Configuration {
	return Configuration{
		Pipeline: PipelineConfig{Parallelism: runtime.NumCPU()},
		Log:      logutil.LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. Keys absent from the file keep their
// default value.
func Load(path string) (Configuration, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, cserr.NewBadConfig("parse %s: %v", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	if c.Pipeline.Parallelism < 0 {
		return cserr.NewBadConfig("parallelism %d is negative", c.Pipeline.Parallelism)
	}
	if c.Pipeline.Parallelism == 0 {
		c.Pipeline.Parallelism = runtime.NumCPU()
	}
	return nil
}
