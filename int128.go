package zcbuf

import (
	"math"
	"math/big"

	"lukechampine.com/uint128"
)

// Int128 is a signed 128-bit integer in two's complement: Hi holds the sign
// and the upper 64 bits, Lo the lower 64 bits.
type Int128 struct {
	Hi int64
	Lo uint64
}

var (
	MaxInt128 = Int128{Hi: math.MaxInt64, Lo: math.MaxUint64}
	MinInt128 = Int128{Hi: math.MinInt64}
)

// Int128From64 sign-extends v.
func Int128From64(v int64) Int128 {
	return Int128{Hi: v >> 63, Lo: uint64(v)}
}

// Int128FromBits reinterprets the bits of u as a signed value.
func Int128FromBits(u uint128.Uint128) Int128 {
	return Int128{Hi: int64(u.Hi), Lo: u.Lo}
}

// Bits returns the two's complement bit pattern of i.
func (i Int128) Bits() uint128.Uint128 {
	return uint128.New(i.Lo, uint64(i.Hi))
}

// Sign returns -1, 0 or +1.
func (i Int128) Sign() int {
	switch {
	case i.Hi < 0:
		return -1
	case i.Hi == 0 && i.Lo == 0:
		return 0
	default:
		return 1
	}
}

// Cmp compares i and j and returns -1, 0 or +1.
func (i Int128) Cmp(j Int128) int {
	switch {
	case i.Hi < j.Hi:
		return -1
	case i.Hi > j.Hi:
		return 1
	case i.Lo < j.Lo:
		return -1
	case i.Lo > j.Lo:
		return 1
	}
	return 0
}

// Big converts i to a big.Int.
func (i Int128) Big() *big.Int {
	b := new(big.Int).SetInt64(i.Hi)
	b.Lsh(b, 64)
	return b.Or(b, new(big.Int).SetUint64(i.Lo))
}

func (i Int128) String() string {
	return i.Big().String()
}
