package cache

import (
	"encoding/json"
)

// Serializer converts a typed value to and from its wire representation.
// Out-of-process backends require one; in-process backends store values
// directly. Implementations must be deterministic and round-trip safe:
// Deserialize(Serialize(v)) must be behaviorally equal to v for every value
// the calling code produces.
type Serializer[V any] interface {
	Serialize(v V) ([]byte, error)
	Deserialize(data []byte) (V, error)
}

// JSONSerializer encodes values as JSON. Suitable for any value type with a
// faithful JSON representation.
type JSONSerializer[V any] struct{}

func (JSONSerializer[V]) Serialize(v V) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONSerializer[V]) Deserialize(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// RawSerializer passes byte slices through unchanged. Get must observe
// exactly the bytes given to Put, so no copy or transform happens here.
type RawSerializer struct{}

func (RawSerializer) Serialize(v []byte) ([]byte, error) {
	return v, nil
}

func (RawSerializer) Deserialize(data []byte) ([]byte, error) {
	return data, nil
}

// StringSerializer stores strings as their UTF-8 bytes.
type StringSerializer struct{}

func (StringSerializer) Serialize(v string) ([]byte, error) {
	return []byte(v), nil
}

func (StringSerializer) Deserialize(data []byte) (string, error) {
	return string(data), nil
}
