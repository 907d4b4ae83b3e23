// internal/utils/binary/binary.go
package binary

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"lukechampine.com/uint128"
)

// Field widths of the fixed Anchor layouts used by the lock program.
const (
	BoolSize    = 1
	Uint8Size   = 1
	Uint64Size  = 8
	Uint128Size = 16
	PubKeySize  = solana.PublicKeyLength
)

// WriteUint64LittleEndian writes a uint64 to a byte slice in little-endian format
func WriteUint64LittleEndian(val uint64, data []byte, offset int) {
	binary.LittleEndian.PutUint64(data[offset:offset+Uint64Size], val)
}

// WriteUint128LittleEndian writes a u128 as two little-endian words, low word first
func WriteUint128LittleEndian(val uint128.Uint128, data []byte, offset int) {
	val.PutBytes(data[offset : offset+Uint128Size])
}

// WriteUint8 writes a uint8 (byte) to a byte slice
func WriteUint8(val uint8, data []byte, offset int) {
	data[offset] = val
}

// WriteBool writes a boolean to a byte slice (false = 0, true = 1)
func WriteBool(val bool, data []byte, offset int) {
	if val {
		data[offset] = 1
	} else {
		data[offset] = 0
	}
}

// WritePubKey writes a Solana public key to a byte slice
func WritePubKey(key solana.PublicKey, data []byte, offset int) {
	copy(data[offset:offset+PubKeySize], key[:])
}

// ReadUint64LittleEndian reads a uint64 from a byte slice in little-endian format
func ReadUint64LittleEndian(data []byte, offset int) uint64 {
	return binary.LittleEndian.Uint64(data[offset : offset+Uint64Size])
}

// ReadPubKey reads a Solana public key from a byte slice
func ReadPubKey(data []byte, offset int) solana.PublicKey {
	return solana.PublicKeyFromBytes(data[offset : offset+PubKeySize])
}
