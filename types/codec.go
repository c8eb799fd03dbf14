// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Message 可以存入状态数据库或者写入回执的数据结构
type Message interface {
	Marshal() []byte
	Unmarshal(b []byte) error
}

// Encode 编码
func Encode(m Message) []byte {
	return m.Marshal()
}

// Decode 解码
func Decode(data []byte, m Message) error {
	return m.Unmarshal(data)
}

// Buffer protobuf wire format writer. Zero values are skipped like proto3 does,
// so the same value always encodes to the same bytes.
type Buffer struct {
	b []byte
}

// Bytes return encoded data
func (p *Buffer) Bytes() []byte {
	return p.b
}

// EncodeInt64 writes a varint field
func (p *Buffer) EncodeInt64(num protowire.Number, v int64) {
	if v == 0 {
		return
	}
	p.b = protowire.AppendTag(p.b, num, protowire.VarintType)
	p.b = protowire.AppendVarint(p.b, uint64(v))
}

// EncodeInt32 writes a varint field
func (p *Buffer) EncodeInt32(num protowire.Number, v int32) {
	p.EncodeInt64(num, int64(v))
}

// EncodeBool writes a bool field
func (p *Buffer) EncodeBool(num protowire.Number, v bool) {
	if !v {
		return
	}
	p.b = protowire.AppendTag(p.b, num, protowire.VarintType)
	p.b = protowire.AppendVarint(p.b, protowire.EncodeBool(v))
}

// EncodeString writes a length-delimited string field
func (p *Buffer) EncodeString(num protowire.Number, s string) {
	if s == "" {
		return
	}
	p.b = protowire.AppendTag(p.b, num, protowire.BytesType)
	p.b = protowire.AppendString(p.b, s)
}

// EncodeBytes writes a length-delimited bytes field
func (p *Buffer) EncodeBytes(num protowire.Number, v []byte) {
	if len(v) == 0 {
		return
	}
	p.b = protowire.AppendTag(p.b, num, protowire.BytesType)
	p.b = protowire.AppendBytes(p.b, v)
}

// EncodeMessage writes an embedded message; nil is skipped, an empty message is kept
// so repeated fields keep their length.
func (p *Buffer) EncodeMessage(num protowire.Number, m Message) {
	if m == nil {
		return
	}
	p.b = protowire.AppendTag(p.b, num, protowire.BytesType)
	p.b = protowire.AppendBytes(p.b, m.Marshal())
}

// Field one decoded field
type Field struct {
	Num    protowire.Number
	Type   protowire.Type
	Varint uint64
	Bytes  []byte
}

// Int64 varint as int64
func (f *Field) Int64() int64 {
	return int64(f.Varint)
}

// Int32 varint as int32
func (f *Field) Int32() int32 {
	return int32(f.Varint)
}

// Bool varint as bool
func (f *Field) Bool() bool {
	return protowire.DecodeBool(f.Varint)
}

// String bytes as string
func (f *Field) String() string {
	return string(f.Bytes)
}

// CopyBytes bytes detached from the input buffer
func (f *Field) CopyBytes() []byte {
	if f.Bytes == nil {
		return nil
	}
	b := make([]byte, len(f.Bytes))
	copy(b, f.Bytes)
	return b
}

// WalkFields calls fn for every varint and length-delimited field in b, unknown wire
// types are skipped.
func WalkFields(b []byte, fn func(f *Field) error) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Wrap(ErrDecode, protowire.ParseError(n).Error())
		}
		b = b[n:]
		f := &Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return errors.Wrap(ErrDecode, protowire.ParseError(n).Error())
			}
			f.Varint = v
			b = b[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return errors.Wrap(ErrDecode, protowire.ParseError(n).Error())
			}
			f.Bytes = v
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return errors.Wrap(ErrDecode, protowire.ParseError(n).Error())
			}
			b = b[n:]
			continue
		}
		if err := fn(f); err != nil {
			return err
		}
	}
	return nil
}
