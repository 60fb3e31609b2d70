package schema_registry

import (
	"encoding/binary"
	"fmt"
)

// Confluent wire format: one magic byte, a big-endian uint32 schema ID,
// then the payload.
const (
	magicByte    = 0x0
	headerLength = 5
)

// EncodeSchemaID encodes a schema ID in the Confluent wire format
// header: [magic_byte][schema_id].
func EncodeSchemaID(schemaID int) []byte {
	buf := make([]byte, headerLength)
	buf[0] = magicByte
	binary.BigEndian.PutUint32(buf[1:], uint32(schemaID))
	return buf
}

// DecodeSchemaID decodes a schema ID from the Confluent wire format.
// Returns the schema ID and the remaining payload after the header.
// The payload slice aliases data; it is not a copy.
func DecodeSchemaID(data []byte) (int, []byte, error) {
	if len(data) < headerLength {
		return 0, nil, fmt.Errorf("data too short: expected at least %d bytes, got %d", headerLength, len(data))
	}

	if data[0] != magicByte {
		return 0, nil, fmt.Errorf("invalid magic byte: expected 0x0, got 0x%x", data[0])
	}

	schemaID := int(binary.BigEndian.Uint32(data[1:headerLength]))
	return schemaID, data[headerLength:], nil
}

// Frame prepends the wire format header for schemaID to payload.
func Frame(schemaID int, payload []byte) []byte {
	framed := make([]byte, 0, headerLength+len(payload))
	framed = append(framed, EncodeSchemaID(schemaID)...)
	return append(framed, payload...)
}
