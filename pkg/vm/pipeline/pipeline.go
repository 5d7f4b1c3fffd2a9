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

// Package pipeline drives two-phase grouping aggregation: every worker owns
// one partial aggregator over a disjoint slice of the input batches, the
// partials are snapshotted, and the snapshots are merged sequentially into
// one root aggregator. Workers never share aggregator state; the snapshot
// hand-off is the only combination point, so the kernel needs no locks.
package pipeline

import (
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/colstream/compute/pkg/common/cserr"
	"github.com/colstream/compute/pkg/config"
	"github.com/colstream/compute/pkg/container/batch"
	"github.com/colstream/compute/pkg/container/types"
	"github.com/colstream/compute/pkg/container/vector"
	"github.com/colstream/compute/pkg/logutil"
	"github.com/colstream/compute/pkg/sql/colexec/agg"
)

// NewAggregator builds one aggregator instance. The pipeline calls it once
// per worker with the raw-value channel and once with agg.MergeOnly for the
// merge root, so every instance has exactly one owner.
type NewAggregator func(channel int) (agg.GroupingAggregator, error)

type Pipeline struct {
	parallelism int
	channel     int
	newAgg      NewAggregator
}

func New(cfg config.PipelineConfig, channel int, newAgg NewAggregator) (*Pipeline, error) {
	if cfg.Parallelism < 1 {
		return nil, cserr.NewBadConfig("parallelism %d", cfg.Parallelism)
	}
	if channel < 0 {
		return nil, cserr.NewBadConfig("raw-value channel %d", channel)
	}
	return &Pipeline{
		parallelism: cfg.Parallelism,
		channel:     channel,
		newAgg:      newAgg,
	}, nil
}

// Run aggregates bats, with groupIDs[i] giving the per-row group ids of
// bats[i], and returns the final result vector. The batch list is split
// round-robin over the workers; any split gives the same result because the
// reductions are associative and commutative.
func (p *Pipeline) Run(groupIDs []*vector.Vector, bats []*batch.Batch) (*vector.Vector, error) {
	if len(groupIDs) != len(bats) {
		return nil, cserr.NewInvalidInput("%d group-id vectors for %d batches",
			len(groupIDs), len(bats))
	}

	start := time.Now()
	workers := p.parallelism
	if workers > len(bats) {
		workers = len(bats)
	}
	if workers <= 1 {
		return p.runSingle(groupIDs, bats)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, cserr.NewInternal("aggregation pool: %v", err)
	}
	defer pool.Release()

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		firstErr  error
		snapshots = make([]*vector.Vector, workers)
	)
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	for w := 0; w < workers; w++ {
		w := w
		wg.Add(1)
		task := func() {
			defer wg.Done()
			partial, err := p.newAgg(p.channel)
			if err != nil {
				setErr(err)
				return
			}
			for i := w; i < len(bats); i += workers {
				if err = partial.AddRawInput(groupIDs[i], bats[i]); err != nil {
					setErr(err)
					return
				}
			}
			snap, err := partial.EvaluateIntermediate()
			if err != nil {
				setErr(err)
				return
			}
			snapshots[w] = snap
		}
		if err = pool.Submit(task); err != nil {
			wg.Done()
			setErr(cserr.NewInternal("submit aggregation task: %v", err))
			break
		}
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}

	root, err := p.newAgg(agg.MergeOnly)
	if err != nil {
		return nil, err
	}
	for _, snap := range snapshots {
		n, err := agg.SnapshotGroups(snap)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			continue
		}
		if err = root.AddIntermediateInput(identityGroups(n), snap); err != nil {
			return nil, err
		}
	}

	result, err := root.EvaluateFinal()
	if err != nil {
		return nil, err
	}
	logutil.Debug("two-phase aggregation done",
		zap.Int("batches", len(bats)),
		zap.Int("workers", workers),
		zap.Int("groups", result.Length()),
		zap.Duration("cost", time.Since(start)))
	return result, nil
}

func (p *Pipeline) runSingle(groupIDs []*vector.Vector, bats []*batch.Batch) (*vector.Vector, error) {
	a, err := p.newAgg(p.channel)
	if err != nil {
		return nil, err
	}
	for i := range bats {
		if err = a.AddRawInput(groupIDs[i], bats[i]); err != nil {
			return nil, err
		}
	}
	return a.EvaluateFinal()
}

// identityGroups maps snapshot position i to target group i, the mapping a
// full-snapshot merge uses.
func identityGroups(n int) *vector.Vector {
	gs := make([]int64, n)
	for i := range gs {
		gs[i] = int64(i)
	}
	return vector.NewWithFixed(types.New(types.T_int64), gs, nil)
}
