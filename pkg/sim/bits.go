package sim

import (
	"encoding/json"
	"fmt"
	"iter"
)

// Bits is a packed sequence of cell states. Bit i lives in byte i/8 at
// position i%8.
type Bits struct {
	n     int
	bytes []byte
}

// BitsFrom packs the given values in order.
func BitsFrom(values ...bool) Bits {
	var b Bits
	for _, v := range values {
		b.Push(v)
	}
	return b
}

// Len returns the number of bits stored.
func (b Bits) Len() int { return b.n }

// Push appends one bit.
func (b *Bits) Push(v bool) {
	idx := b.n / 8
	if idx == len(b.bytes) {
		b.bytes = append(b.bytes, 0)
	}
	if v {
		b.bytes[idx] |= 1 << (b.n % 8)
	}
	b.n++
}

// At returns bit i. Out of range indexes read as false.
func (b Bits) At(i int) bool {
	if i < 0 || i >= b.n {
		return false
	}
	return b.bytes[i/8]&(1<<(i%8)) != 0
}

// All yields every bit in order.
func (b Bits) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := 0; i < b.n; i++ {
			if !yield(b.At(i)) {
				return
			}
		}
	}
}

// Equal reports whether both sequences hold the same bits.
func (b Bits) Equal(o Bits) bool {
	if b.n != o.n {
		return false
	}
	for i := 0; i < b.n; i++ {
		if b.At(i) != o.At(i) {
			return false
		}
	}
	return true
}

type bitsJSON struct {
	Len  int    `json:"len"`
	Data []byte `json:"data"`
}

// MarshalJSON encodes the sequence as {"len":N,"data":"<base64>"}.
func (b Bits) MarshalJSON() ([]byte, error) {
	data := b.bytes
	if data == nil {
		data = []byte{}
	}
	return json.Marshal(bitsJSON{Len: b.n, Data: data})
}

// UnmarshalJSON decodes a sequence and rejects lengths the payload cannot hold.
func (b *Bits) UnmarshalJSON(raw []byte) error {
	var v bitsJSON
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	if v.Len < 0 || (v.Len+7)/8 != len(v.Data) {
		return fmt.Errorf("bit sequence of length %d cannot be stored in %d bytes", v.Len, len(v.Data))
	}
	b.n = v.Len
	b.bytes = v.Data
	return nil
}
