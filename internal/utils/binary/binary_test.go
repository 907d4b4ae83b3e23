package binary

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"lukechampine.com/uint128"
)

func TestWriteUint64LittleEndian(t *testing.T) {
	data := make([]byte, 10)
	WriteUint64LittleEndian(0x0102030405060708, data, 1)

	assert.Equal(t, []byte{0, 8, 7, 6, 5, 4, 3, 2, 1, 0}, data)
	assert.Equal(t, uint64(0x0102030405060708), ReadUint64LittleEndian(data, 1))
}

func TestWriteUint128LittleEndian(t *testing.T) {
	data := make([]byte, Uint128Size)
	WriteUint128LittleEndian(uint128.New(1, 2), data, 0)

	assert.Equal(t, byte(1), data[0])
	assert.Equal(t, byte(2), data[8])
	assert.Equal(t, uint128.New(1, 2), uint128.FromBytes(data))
}

func TestWriteBool(t *testing.T) {
	data := []byte{0xFF, 0xFF}
	WriteBool(false, data, 0)
	WriteBool(true, data, 1)

	assert.Equal(t, []byte{0, 1}, data)
}

func TestPubKeyRoundTrip(t *testing.T) {
	key := solana.NewWallet().PublicKey()
	data := make([]byte, PubKeySize+4)
	WritePubKey(key, data, 4)

	assert.Equal(t, key, ReadPubKey(data, 4))
}
