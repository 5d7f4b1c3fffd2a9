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

// Package agg implements grouping aggregation for the two-phase protocol:
// partial aggregators fold raw rows on their own worker, export their state
// as an intermediate snapshot, and a merge aggregator folds snapshots into
// the final per-group result. Because every reduction here is associative
// and commutative with an identity value, the final result is independent
// of row order, batch boundaries and merge order.
package agg

import (
	"github.com/colstream/compute/pkg/common/cserr"
	"github.com/colstream/compute/pkg/container/batch"
	"github.com/colstream/compute/pkg/container/types"
	"github.com/colstream/compute/pkg/container/vector"
)

const (
	Min = iota
	Max
	Sum
	ApproxCountDistinct
)

var Names = [...]string{
	Min:                 "min",
	Max:                 "max",
	Sum:                 "sum",
	ApproxCountDistinct: "approx_count_distinct",
}

// MergeOnly is the channel of an aggregator that consumes intermediate
// snapshots only and never reads raw pages.
const MergeOnly = -1

// GroupingAggregator is the contract every reduction implements.
//
// An instance is exclusively owned by one worker: no method may be called
// concurrently. An instance is constructed either with a raw-value channel
// (leaf of the merge tree, fed through AddRawInput) or merge-only (fed
// through AddIntermediateInput); crossing the two paths is a wiring defect
// reported as cserr.ErrAggWiring.
type GroupingAggregator interface {
	// OutputType is the element kind of the EvaluateFinal vector.
	OutputType() types.Type

	// AddRawInput folds, for each position i, the value of the configured
	// channel of bat into the group groupIDs[i]. Rows marked null in the
	// value vector do not fold.
	AddRawInput(groupIDs *vector.Vector, bat *batch.Batch) error

	// AddIntermediateInput folds a snapshot exported by another aggregator
	// of the same reduction: position i of the snapshot folds into the
	// group groupIDs[i]. Any vector other than a matching state carrier is
	// reported as cserr.ErrAggStateKind.
	AddIntermediateInput(groupIDs *vector.Vector, partial *vector.Vector) error

	// EvaluateIntermediate exports the current state as a detached snapshot
	// carrier. It does not mutate the aggregator.
	EvaluateIntermediate() (*vector.Vector, error)

	// EvaluateFinal materializes one value per group id in
	// [0, largest seen], in group-id order. Groups that never received a
	// value report the reduction's identity value.
	EvaluateFinal() (*vector.Vector, error)
}

// groupIDsOf checks and extracts the per-row group ids. Group ids are
// int64 and non-negative.
func groupIDsOf(groupIDs *vector.Vector) ([]int64, error) {
	if groupIDs == nil || groupIDs.IsState() || groupIDs.GetType().Oid != types.T_int64 {
		return nil, cserr.NewAggWiring("group ids must be a %s vector, got %v",
			types.T_int64, groupIDs)
	}
	return vector.MustFixedCol[int64](groupIDs), nil
}

// stateOf checks that partial is an intermediate-state carrier and unwraps
// it. The concrete state type is checked by the caller, which knows its
// reduction.
func stateOf(partial *vector.Vector) (any, error) {
	if partial == nil || !partial.IsState() {
		return nil, cserr.NewAggStateKind("expected an aggregator state vector, got %v", partial)
	}
	return partial.AggState(), nil
}

// SnapshotGroups reports how many group slots an intermediate snapshot
// carries, which is the position count a merge over the full snapshot needs.
func SnapshotGroups(partial *vector.Vector) (int, error) {
	raw, err := stateOf(partial)
	if err != nil {
		return 0, err
	}
	s, ok := raw.(interface{ groupCount() int })
	if !ok {
		return 0, cserr.NewAggStateKind("unknown aggregator state %T", raw)
	}
	return s.groupCount(), nil
}
