package cache

import (
	"reflect"
	"testing"
)

type order struct {
	ID    int64    `json:"id"`
	Items []string `json:"items"`
	Total float64  `json:"total"`
}

func TestJSONSerializer_RoundTrip(t *testing.T) {
	ser := JSONSerializer[order]{}

	want := order{ID: 7, Items: []string{"a", "b"}, Total: 12.5}

	data, err := ser.Serialize(want)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	got, err := ser.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}

func TestJSONSerializer_Deterministic(t *testing.T) {
	ser := JSONSerializer[order]{}
	v := order{ID: 1, Items: []string{"x"}}

	first, err := ser.Serialize(v)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	second, err := ser.Serialize(v)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if string(first) != string(second) {
		t.Error("serialization of the same value must be deterministic")
	}
}

func TestJSONSerializer_ScalarTypes(t *testing.T) {
	intSer := JSONSerializer[int]{}
	data, err := intSer.Serialize(42)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	n, err := intSer.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if n != 42 {
		t.Errorf("expected 42, got %d", n)
	}

	mapSer := JSONSerializer[map[string]int]{}
	data, err = mapSer.Serialize(map[string]int{"a": 1})
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	m, err := mapSer.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if m["a"] != 1 {
		t.Errorf("expected map[a:1], got %v", m)
	}
}

func TestJSONSerializer_InvalidPayload(t *testing.T) {
	ser := JSONSerializer[order]{}
	if _, err := ser.Deserialize([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestRawSerializer_Transparency(t *testing.T) {
	ser := RawSerializer{}
	in := []byte{0x00, 0xff, 0x10, 0x42}

	data, err := ser.Serialize(in)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	out, err := ser.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if string(out) != string(in) {
		t.Errorf("raw serializer must be byte-for-byte transparent: got %x, want %x", out, in)
	}
}

func TestStringSerializer_RoundTrip(t *testing.T) {
	ser := StringSerializer{}

	data, err := ser.Serialize("héllo wörld")
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	got, err := ser.Deserialize(data)
	if err != nil {
		t.Fatalf("Deserialize failed: %v", err)
	}
	if got != "héllo wörld" {
		t.Errorf("expected round-tripped string, got %q", got)
	}
}
