package kafka

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Aleph-Alpha/searchkit/v1/resultset"
	"github.com/Aleph-Alpha/searchkit/v1/stream"
)

// DataType values understood by SetDefaultSerializers.
const (
	DataTypeJSON  = "json"
	DataTypeBytes = "bytes"
)

// Serializer encodes a value into the message body handed to the
// broker. Produce runs every value through the installed serializer.
type Serializer func(value interface{}) ([]byte, error)

// Deserializer decodes a message body into the target the caller
// provides. The target must be a pointer of the type the paired
// Serializer produced.
type Deserializer func(data []byte, target interface{}) error

// SetDefaultSerializers installs the serializer pair matching the
// configured DataType: JSON for "json" and the empty value, raw
// passthrough for "bytes". Explicit SetSerializer and SetDeserializer
// calls override the defaults.
func (k *KafkaClient) SetDefaultSerializers() {
	switch k.cfg.DataType {
	case DataTypeBytes:
		k.SetSerializer(BytesSerializer())
		k.SetDeserializer(BytesDeserializer())
	default:
		k.SetSerializer(JSONSerializer())
		k.SetDeserializer(JSONDeserializer())
	}
}

// JSONSerializer encodes values with encoding/json.
func JSONSerializer() Serializer {
	return func(value interface{}) ([]byte, error) {
		return json.Marshal(value)
	}
}

// JSONDeserializer decodes JSON bodies into the target.
func JSONDeserializer() Deserializer {
	return func(data []byte, target interface{}) error {
		return json.Unmarshal(data, target)
	}
}

// BytesSerializer passes []byte values through unchanged, for topics
// whose bodies are already encoded.
func BytesSerializer() Serializer {
	return func(value interface{}) ([]byte, error) {
		data, ok := value.([]byte)
		if !ok {
			return nil, fmt.Errorf("bytes serializer expects []byte, got %T", value)
		}
		return data, nil
	}
}

// BytesDeserializer copies the body into a *[]byte target. The copy
// keeps the target valid after the broker buffer is reused.
func BytesDeserializer() Deserializer {
	return func(data []byte, target interface{}) error {
		out, ok := target.(*[]byte)
		if !ok {
			return fmt.Errorf("bytes deserializer expects *[]byte, got %T", target)
		}
		*out = append([]byte(nil), data...)
		return nil
	}
}

// PageSerializer encodes result pages of T in the binary wire form,
// the same layout the rabbit relay and the minio archive use. Install
// it with SetSerializer on producers for page topics:
//
//	client.SetSerializer(kafka.PageSerializer[Document](documentCodec{}))
//	err := client.Produce(ctx, query, page, nil)
func PageSerializer[T any](codec resultset.ItemCodec[T]) Serializer {
	return func(value interface{}) ([]byte, error) {
		page, ok := value.(resultset.ResultSet[T])
		if !ok {
			var zero T
			return nil, fmt.Errorf("page serializer expects resultset.ResultSet[%T], got %T", zero, value)
		}
		var buf bytes.Buffer
		if err := page.EncodeWire(stream.NewWriter(&buf), codec); err != nil {
			return nil, fmt.Errorf("failed to encode page: %w", err)
		}
		return buf.Bytes(), nil
	}
}

// PageDeserializer decodes binary page bodies into a
// *resultset.ResultSet[T] target, the counterpart of PageSerializer:
//
//	client.SetDeserializer(kafka.PageDeserializer(readDocument))
//	var page resultset.ResultSet[Document]
//	err := client.Decode(msg, &page)
func PageDeserializer[T any](itemReader resultset.WireParser[T]) Deserializer {
	return func(data []byte, target interface{}) error {
		out, ok := target.(*resultset.ResultSet[T])
		if !ok {
			var zero T
			return fmt.Errorf("page deserializer expects *resultset.ResultSet[%T], got %T", zero, target)
		}
		page, err := resultset.FromStream(stream.NewReader(bytes.NewReader(data)), itemReader)
		if err != nil {
			return fmt.Errorf("failed to decode page: %w", err)
		}
		*out = page
		return nil
	}
}
