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
	"bytes"

	hll "github.com/axiomhq/hyperloglog"
	"github.com/pierrec/lz4"

	"github.com/colstream/compute/pkg/common/cserr"
	"github.com/colstream/compute/pkg/container/types"
	"github.com/colstream/compute/pkg/container/vector"
)

// Snapshot encoding, for carrying an intermediate state across a process
// boundary:
//
//	| kind u32 | rawLen u32 | compLen u32 | lz4 block or raw bytes |
//
// compLen == rawLen means the payload did not compress and is stored raw.
// The framing of whatever transport carries these bytes is not ours.

const (
	stateKindArray  uint32 = 1
	stateKindSketch uint32 = 2
)

type stateMarshaler interface {
	stateKind() uint32
	MarshalBinary() ([]byte, error)
}

// MarshalState encodes the state carried by an intermediate snapshot
// vector.
func MarshalState(partial *vector.Vector) ([]byte, error) {
	raw, err := stateOf(partial)
	if err != nil {
		return nil, err
	}
	m, ok := raw.(stateMarshaler)
	if !ok {
		return nil, cserr.NewAggStateKind("state %T has no encoding", raw)
	}
	payload, err := m.MarshalBinary()
	if err != nil {
		return nil, cserr.NewInternal("encode aggregator state: %v", err)
	}

	comp := make([]byte, lz4.CompressBlockBound(len(payload)))
	n, err := lz4.CompressBlock(payload, comp, nil)
	if err != nil {
		return nil, cserr.NewInternal("compress aggregator state: %v", err)
	}
	if n == 0 || n >= len(payload) {
		comp, n = payload, len(payload)
	}

	var buf bytes.Buffer
	buf.Write(types.EncodeUint32(m.stateKind()))
	buf.Write(types.EncodeUint32(uint32(len(payload))))
	buf.Write(types.EncodeUint32(uint32(n)))
	buf.Write(comp[:n])
	return buf.Bytes(), nil
}

// UnmarshalState decodes a snapshot produced by MarshalState back into a
// state carrier vector ready for AddIntermediateInput.
func UnmarshalState(data []byte) (*vector.Vector, error) {
	if len(data) < 12 {
		return nil, cserr.NewInvalidInput("aggregator snapshot of %d bytes", len(data))
	}
	kind := types.DecodeUint32(data[:4])
	rawLen := int(types.DecodeUint32(data[4:8]))
	compLen := int(types.DecodeUint32(data[8:12]))
	data = data[12:]
	if len(data) < compLen {
		return nil, cserr.NewInvalidInput("truncated aggregator snapshot")
	}

	payload := data[:compLen]
	if compLen != rawLen {
		dst := make([]byte, rawLen)
		if _, err := lz4.UncompressBlock(payload, dst); err != nil {
			return nil, cserr.NewInvalidInput("corrupt aggregator snapshot: %v", err)
		}
		payload = dst
	}

	switch kind {
	case stateKindArray:
		s, err := unmarshalAnyArrayState(payload)
		if err != nil {
			return nil, err
		}
		return vector.NewState(s), nil
	case stateKindSketch:
		s, err := unmarshalSketchState(payload)
		if err != nil {
			return nil, err
		}
		return vector.NewState(s), nil
	}
	return nil, cserr.NewInvalidInput("unknown aggregator state kind %d", kind)
}

func (s *ArrayState[T]) stateKind() uint32 {
	return stateKindArray
}

// MarshalBinary layout:
//
//	| typ | boundary T | largest i64 | n u32 | values n*T |
func (s *ArrayState[T]) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(types.EncodeType(&s.typ))
	buf.Write(types.EncodeFixed(s.boundary))
	buf.Write(types.EncodeInt64(int64(s.largest)))
	buf.Write(types.EncodeUint32(uint32(len(s.vs))))
	buf.Write(types.EncodeSlice(s.vs))
	return buf.Bytes(), nil
}

func unmarshalAnyArrayState(data []byte) (any, error) {
	if len(data) < types.TSize {
		return nil, cserr.NewInvalidInput("truncated array state")
	}
	typ := types.DecodeType(data[:types.TSize])
	switch typ.Oid {
	case types.T_int8:
		return decodeArrayState[int8](typ, data[types.TSize:])
	case types.T_int16:
		return decodeArrayState[int16](typ, data[types.TSize:])
	case types.T_int32:
		return decodeArrayState[int32](typ, data[types.TSize:])
	case types.T_int64:
		return decodeArrayState[int64](typ, data[types.TSize:])
	case types.T_uint8:
		return decodeArrayState[uint8](typ, data[types.TSize:])
	case types.T_uint16:
		return decodeArrayState[uint16](typ, data[types.TSize:])
	case types.T_uint32:
		return decodeArrayState[uint32](typ, data[types.TSize:])
	case types.T_uint64:
		return decodeArrayState[uint64](typ, data[types.TSize:])
	case types.T_float32:
		return decodeArrayState[float32](typ, data[types.TSize:])
	case types.T_float64:
		return decodeArrayState[float64](typ, data[types.TSize:])
	}
	return nil, cserr.NewInvalidInput("array state of unknown kind %s", typ)
}

func decodeArrayState[T types.OrderedT](typ types.Type, data []byte) (any, error) {
	s, err := unmarshalArrayState[T](typ, data)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func unmarshalArrayState[T types.OrderedT](typ types.Type, data []byte) (*ArrayState[T], error) {
	sz := typ.TypeSize()
	if len(data) < sz+12 {
		return nil, cserr.NewInvalidInput("truncated array state")
	}
	s := &ArrayState[T]{typ: typ}
	s.boundary = types.DecodeFixed[T](data[:sz])
	data = data[sz:]
	s.largest = int(types.DecodeInt64(data[:8]))
	n := int(types.DecodeUint32(data[8:12]))
	data = data[12:]
	if len(data) < n*sz {
		return nil, cserr.NewInvalidInput("truncated array state values")
	}
	if n > 0 {
		s.vs = make([]T, n)
		copy(s.vs, types.DecodeSlice[T](data[:n*sz]))
	}
	return s, nil
}

func (s *SketchState) stateKind() uint32 {
	return stateKindSketch
}

// MarshalBinary layout:
//
//	| largest i64 | n u32 | n * ( skLen u32 | sketch bytes ) |
//
// skLen 0 marks a group that was grown over but never written.
func (s *SketchState) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(types.EncodeInt64(int64(s.largest)))
	buf.Write(types.EncodeUint32(uint32(len(s.sks))))
	for _, sk := range s.sks {
		if sk == nil {
			buf.Write(types.EncodeUint32(0))
			continue
		}
		data, err := sk.MarshalBinary()
		if err != nil {
			return nil, err
		}
		buf.Write(types.EncodeUint32(uint32(len(data))))
		buf.Write(data)
	}
	return buf.Bytes(), nil
}

func unmarshalSketchState(data []byte) (*SketchState, error) {
	if len(data) < 12 {
		return nil, cserr.NewInvalidInput("truncated sketch state")
	}
	s := &SketchState{largest: int(types.DecodeInt64(data[:8]))}
	n := int(types.DecodeUint32(data[8:12]))
	data = data[12:]
	for i := 0; i < n; i++ {
		if len(data) < 4 {
			return nil, cserr.NewInvalidInput("truncated sketch state")
		}
		skLen := int(types.DecodeUint32(data[:4]))
		data = data[4:]
		if skLen == 0 {
			s.sks = append(s.sks, nil)
			continue
		}
		if len(data) < skLen {
			return nil, cserr.NewInvalidInput("truncated sketch %d", i)
		}
		sk := hll.New()
		if err := sk.UnmarshalBinary(data[:skLen]); err != nil {
			return nil, cserr.NewInvalidInput("corrupt sketch %d: %v", i, err)
		}
		s.sks = append(s.sks, sk)
		data = data[skLen:]
	}
	return s, nil
}
