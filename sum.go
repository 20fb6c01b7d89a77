package lfsrhash

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

// Size is the length of a Sum128 in bytes.
const Size = 16

// Sum128 is a 128-bit digest. Hi is printed first.
type Sum128 struct {
	Hi, Lo uint64
}

// String renders s as 32 lowercase hex digits.
func (s Sum128) String() string { return fmt.Sprintf("%016x%016x", s.Hi, s.Lo) }

// Bytes returns s big-endian, Hi first.
func (s Sum128) Bytes() [Size]byte {
	var b [Size]byte
	binary.BigEndian.PutUint64(b[:8], s.Hi)
	binary.BigEndian.PutUint64(b[8:], s.Lo)
	return b
}

// Xor combines two digests.
func (s Sum128) Xor(o Sum128) Sum128 { return Sum128{s.Hi ^ o.Hi, s.Lo ^ o.Lo} }

// ParseSum128 reads the 32-digit form produced by String.
func ParseSum128(str string) (Sum128, error) {
	if len(str) != 2*Size {
		return Sum128{}, errors.Errorf("lfsrhash: digest %q is not %d hex digits", str, 2*Size)
	}
	var b [Size]byte
	if _, err := hex.Decode(b[:], []byte(str)); err != nil {
		return Sum128{}, errors.Wrapf(err, "lfsrhash: digest %q", str)
	}
	return Sum128{binary.BigEndian.Uint64(b[:8]), binary.BigEndian.Uint64(b[8:])}, nil
}
