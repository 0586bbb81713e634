package rpc

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// message is implemented by every request and response type. The encoding
// follows api/booking/v1/booking.proto field for field.
type message interface {
	marshal() []byte
	unmarshal([]byte) error
}

// Codec puts messages on the wire. Its name is "proto" so ordinary protobuf
// clients generated from booking.proto interoperate.
type Codec struct{}

func (Codec) Marshal(v any) ([]byte, error) {
	m, ok := v.(message)
	if !ok {
		return nil, fmt.Errorf("rpc: cannot marshal %T", v)
	}
	return m.marshal(), nil
}

func (Codec) Unmarshal(data []byte, v any) error {
	m, ok := v.(message)
	if !ok {
		return fmt.Errorf("rpc: cannot unmarshal into %T", v)
	}
	return m.unmarshal(data)
}

func (Codec) Name() string { return "proto" }

// fields walks b and hands each field to fn. fn returns how many bytes of
// the value it consumed, 0 to skip an unknown field, or a negative
// protowire error.
func fields(b []byte, fn func(num protowire.Number, typ protowire.Type, b []byte) int) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
		n = fn(num, typ, b)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]
	}
	return nil
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, v)
}

// appendOptString writes v even when empty, so presence survives.
func appendOptString(b []byte, num protowire.Number, v *string) []byte {
	if v == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, *v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

func appendMessage(b []byte, num protowire.Number, m message) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.marshal())
}

// appendTime encodes t as a google.protobuf.Timestamp. The zero time is
// omitted.
func appendTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	ts := timestamppb.New(t)
	var inner []byte
	if ts.Seconds != 0 {
		inner = protowire.AppendTag(inner, 1, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(ts.Seconds))
	}
	if ts.Nanos != 0 {
		inner = protowire.AppendTag(inner, 2, protowire.VarintType)
		inner = protowire.AppendVarint(inner, uint64(ts.Nanos))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func consumeString(typ protowire.Type, b []byte, dst *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*dst = v
	}
	return n
}

func consumeOptString(typ protowire.Type, b []byte, dst **string) int {
	var s string
	n := consumeString(typ, b, &s)
	if n > 0 {
		*dst = &s
	}
	return n
}

func consumeBool(typ protowire.Type, b []byte, dst *bool) int {
	if typ != protowire.VarintType {
		return 0
	}
	v, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*dst = protowire.DecodeBool(v)
	}
	return n
}

func consumeMessage(typ protowire.Type, b []byte, m message) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	if err := m.unmarshal(v); err != nil {
		return -1
	}
	return n
}

func consumeTime(typ protowire.Type, b []byte, dst *time.Time) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return n
	}
	ts := &timestamppb.Timestamp{}
	err := fields(v, func(num protowire.Number, typ protowire.Type, b []byte) int {
		if typ != protowire.VarintType {
			return 0
		}
		x, n := protowire.ConsumeVarint(b)
		switch num {
		case 1:
			ts.Seconds = int64(x)
		case 2:
			ts.Nanos = int32(x)
		}
		return n
	})
	if err != nil {
		return -1
	}
	*dst = ts.AsTime()
	return n
}

func consumeOptTime(typ protowire.Type, b []byte, dst **time.Time) int {
	var t time.Time
	n := consumeTime(typ, b, &t)
	if n > 0 {
		*dst = &t
	}
	return n
}
