//
// edaxgo - an Othello engine in GO, built in the idiom of FrankyGo
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//

// Package bits provides the 64-bit primitives and 8x8 board-geometry
// helpers the rest of edaxgo is built on: population count, bit scan,
// byte swap, CRC32C hashing and the dihedral symmetries of a board.
package bits

import (
	"math/bits"
)

// Square is a board square index, 0..63 in row-major order A1=0..H8=63.
// 64 is the pass sentinel, 65 is the "no move" sentinel.
type Square = int

const (
	// PassSquare is the synthetic "pass" move.
	PassSquare Square = 64
	// NoSquare is the "no move" sentinel used by empty TT/move slots.
	NoSquare Square = 65
)

// X_TO_BIT maps a square index to its singleton bitboard. Squares 64
// and 65 (pass/nomove) map to 0 so ORing them into a mask is a no-op.
var X_TO_BIT [66]uint64

func init() {
	for i := 0; i < 64; i++ {
		X_TO_BIT[i] = uint64(1) << uint(i)
	}
	X_TO_BIT[PassSquare] = 0
	X_TO_BIT[NoSquare] = 0
}

// Bit returns the singleton bitboard for square sq (0 for pass/nomove).
func Bit(sq Square) uint64 {
	return X_TO_BIT[sq]
}

// PopCount returns the number of set bits in b.
func PopCount(b uint64) int {
	return bits.OnesCount64(b)
}

// BitScanForward returns the index of the least significant set bit,
// or 64 if b is zero.
func BitScanForward(b uint64) int {
	return bits.TrailingZeros64(b)
}

// BitScanReverse returns the index of the most significant set bit,
// or 64 if b is zero (a zero input is handled by an explicit branch,
// since 63 - bits.LeadingZeros64(0) would be -1).
func BitScanReverse(b uint64) int {
	if b == 0 {
		return 64
	}
	return 63 - bits.LeadingZeros64(b)
}

// ByteSwap reverses the byte order of b (i.e. vertical mirror of the board).
func ByteSwap(b uint64) uint64 {
	return bits.ReverseBytes64(b)
}

// crc32cTable is the Castagnoli CRC-32 table, used for the low-collision
// 64-bit position hash (two 32-bit halves accumulated over P and O).
var crc32cTable [256]uint32

const crc32cPoly = 0x82F63B78

func init() {
	for i := uint32(0); i < 256; i++ {
		crc := i
		for j := 0; j < 8; j++ {
			if crc&1 != 0 {
				crc = (crc >> 1) ^ crc32cPoly
			} else {
				crc >>= 1
			}
		}
		crc32cTable[i] = crc
	}
}

// CRC32CByte folds a single byte into a running CRC32C checksum.
func CRC32CByte(crc uint32, b byte) uint32 {
	return crc32cTable[byte(crc)^b] ^ (crc >> 8)
}

// CRC32CWord folds all 8 bytes of a 64-bit word into a running CRC32C
// checksum, least significant byte first.
func CRC32CWord(crc uint32, w uint64) uint32 {
	for i := 0; i < 8; i++ {
		crc = CRC32CByte(crc, byte(w))
		w >>= 8
	}
	return crc
}

// VerticalMirror swaps board rows 1<->8, 2<->7, ... It is exactly a
// byte swap of the 64-bit word.
func VerticalMirror(b uint64) uint64 {
	return ByteSwap(b)
}

// reverseByteTable reverses the 8 bits within a byte; used by HorizontalMirror.
var reverseByteTable [256]byte

func init() {
	for i := 0; i < 256; i++ {
		v := byte(i)
		v = (v&0xF0)>>4 | (v&0x0F)<<4
		v = (v&0xCC)>>2 | (v&0x33)<<2
		v = (v&0xAA)>>1 | (v&0x55)<<1
		reverseByteTable[i] = v
	}
}

// HorizontalMirror reverses the bits within each byte (mirrors columns
// A<->H, B<->G, ... within every row).
func HorizontalMirror(b uint64) uint64 {
	var r uint64
	for i := 0; i < 8; i++ {
		r |= uint64(reverseByteTable[byte(b>>(8*i))]) << uint(8*i)
	}
	return r
}

// Transpose reflects the board across the A1-H8 diagonal. Implemented
// as the classic three-step bit-parallel 8x8 transpose.
func Transpose(b uint64) uint64 {
	const (
		k1 = 0x5500550055005500
		k2 = 0x3333000033330000
		k4 = 0x0f0f0f0f00000000
	)
	t := k4 & (b ^ (b << 28))
	b = b ^ t ^ (t >> 28)
	t = k2 & (b ^ (b << 14))
	b = b ^ t ^ (t >> 14)
	t = k1 & (b ^ (b << 7))
	b = b ^ t ^ (t >> 7)
	return b
}

// Symmetry applies one of the 8 dihedral symmetries of the square to a
// board. sym is interpreted as a 3-bit flag: bit 0 = horizontal mirror,
// bit 1 = vertical mirror, bit 2 = transpose. Square 64/65 are fixed
// points of every symmetry since they carry no board bits.
func Symmetry(b uint64, sym int) uint64 {
	if sym&1 != 0 {
		b = HorizontalMirror(b)
	}
	if sym&2 != 0 {
		b = VerticalMirror(b)
	}
	if sym&4 != 0 {
		b = Transpose(b)
	}
	return b
}

// SymmetrySquare maps a single square index through the same dihedral
// symmetry Symmetry() applies to a board. Pass/nomove are fixed points.
func SymmetrySquare(sq Square, sym int) Square {
	if sq == PassSquare || sq == NoSquare {
		return sq
	}
	b := Symmetry(uint64(1)<<uint(sq), sym)
	return BitScanForward(b)
}

// Unique enumerates all 8 symmetries of (p, o) and returns the
// lexicographically smallest (by (P,O) compared as a pair of uint64)
// together with the symmetry index that produced it.
func Unique(p, o uint64) (canonicalP, canonicalO uint64, sym int) {
	canonicalP, canonicalO, sym = p, o, 0
	for s := 1; s < 8; s++ {
		sp := Symmetry(p, s)
		so := Symmetry(o, s)
		if less2(sp, so, canonicalP, canonicalO) {
			canonicalP, canonicalO, sym = sp, so, s
		}
	}
	return
}

// less2 compares (p1,o1) to (p2,o2) lexicographically.
func less2(p1, o1, p2, o2 uint64) bool {
	if p1 != p2 {
		return p1 < p2
	}
	return o1 < o2
}
