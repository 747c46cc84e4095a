// Package endian provides the two byte orders the MLT wire format mixes:
// big-endian for the NONE physical integer layer and the tile-level int32
// reads, little-endian for the 32-bit words FastPFOR's bit-packed block
// bodies are assembled from.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder into a unified EndianEngine interface so
// callers can pass one value around instead of choosing functions per call.
//
// All functions and returned engines are stateless and safe for concurrent use.
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface. binary.LittleEndian and binary.BigEndian both
// satisfy it without modification.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the engine used for the cursor's Int32 reads
// and any NONE-physical-technique integer stream.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// GetLittleEndianEngine returns the engine used to read and write the
// 32-bit words of FastPFOR's bit-packed block bodies.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}
