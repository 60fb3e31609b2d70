package document

import (
	"errors"
	"testing"
)

func TestCursorWalksFlatObject(t *testing.T) {
	cur := NewBytesCursor([]byte(`{"startIndex":3,"name":"events","ok":true,"score":1.5}`))

	if err := cur.ExpectObjectStart(); err != nil {
		t.Fatalf("ExpectObjectStart: %v", err)
	}

	name, end, err := cur.FieldName()
	if err != nil || end || name != "startIndex" {
		t.Fatalf("FieldName: got (%q, %v, %v)", name, end, err)
	}
	v, err := cur.ReadInt64()
	if err != nil || v != 3 {
		t.Fatalf("ReadInt64: got (%d, %v)", v, err)
	}

	name, _, _ = cur.FieldName()
	if name != "name" {
		t.Fatalf("expected field name, got %q", name)
	}
	s, err := cur.ReadString()
	if err != nil || s != "events" {
		t.Fatalf("ReadString: got (%q, %v)", s, err)
	}

	name, _, _ = cur.FieldName()
	if name != "ok" {
		t.Fatalf("expected field ok, got %q", name)
	}
	b, err := cur.ReadBool()
	if err != nil || !b {
		t.Fatalf("ReadBool: got (%v, %v)", b, err)
	}

	name, _, _ = cur.FieldName()
	if name != "score" {
		t.Fatalf("expected field score, got %q", name)
	}
	f, err := cur.ReadFloat64()
	if err != nil || f != 1.5 {
		t.Fatalf("ReadFloat64: got (%v, %v)", f, err)
	}

	_, end, err = cur.FieldName()
	if err != nil || !end {
		t.Fatalf("expected object end, got (end=%v, err=%v)", end, err)
	}
}

func TestCursorExpectObjectStartRejectsOtherTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"array", `[1,2]`},
		{"string", `"hello"`},
		{"number", `42`},
		{"bool", `true`},
		{"null", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cur := NewBytesCursor([]byte(tt.input))
			err := cur.ExpectObjectStart()
			if err == nil {
				t.Fatalf("expected error for input %s", tt.input)
			}
			if !errors.Is(err, ErrUnexpectedToken) {
				t.Errorf("expected ErrUnexpectedToken, got %v", err)
			}
			var ute *UnexpectedTokenError
			if !errors.As(err, &ute) {
				t.Errorf("expected *UnexpectedTokenError, got %T", err)
			} else if ute.Want != "object start" {
				t.Errorf("expected want=object start, got %q", ute.Want)
			}
		})
	}
}

func TestCursorReadInt64RejectsNonInteger(t *testing.T) {
	cur := NewBytesCursor([]byte(`1.25`))
	if _, err := cur.ReadInt64(); !errors.Is(err, ErrUnexpectedToken) {
		t.Errorf("expected ErrUnexpectedToken for fractional number, got %v", err)
	}

	cur = NewBytesCursor([]byte(`"12"`))
	if _, err := cur.ReadInt64(); !errors.Is(err, ErrUnexpectedToken) {
		t.Errorf("expected ErrUnexpectedToken for string, got %v", err)
	}
}

func TestCursorSkipScalar(t *testing.T) {
	cur := NewBytesCursor([]byte(`{"a":17,"b":"keep"}`))
	mustStartObject(t, cur)
	mustField(t, cur, "a")

	if err := cur.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}

	mustField(t, cur, "b")
	s, err := cur.ReadString()
	if err != nil || s != "keep" {
		t.Fatalf("expected to land on %q, got (%q, %v)", "keep", s, err)
	}
}

func TestCursorSkipNestedSubtree(t *testing.T) {
	input := `{"junk":{"deep":[1,{"x":[true,null]},"s"],"more":{}},"after":9}`
	cur := NewBytesCursor([]byte(input))
	mustStartObject(t, cur)
	mustField(t, cur, "junk")

	if err := cur.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}

	mustField(t, cur, "after")
	v, err := cur.ReadInt64()
	if err != nil || v != 9 {
		t.Fatalf("expected to land on 9, got (%d, %v)", v, err)
	}
}

func TestCursorSkipArrayValue(t *testing.T) {
	cur := NewBytesCursor([]byte(`{"junk":[[],[1,2,[3]]],"after":"x"}`))
	mustStartObject(t, cur)
	mustField(t, cur, "junk")

	if err := cur.Skip(); err != nil {
		t.Fatalf("Skip: %v", err)
	}

	mustField(t, cur, "after")
}

func TestCursorArrayIteration(t *testing.T) {
	cur := NewBytesCursor([]byte(`[10,20,30]`))
	if err := cur.ExpectArrayStart(); err != nil {
		t.Fatalf("ExpectArrayStart: %v", err)
	}

	var got []int64
	for cur.More() {
		v, err := cur.ReadInt64()
		if err != nil {
			t.Fatalf("ReadInt64: %v", err)
		}
		got = append(got, v)
	}
	if err := cur.ExpectArrayEnd(); err != nil {
		t.Fatalf("ExpectArrayEnd: %v", err)
	}

	if len(got) != 3 || got[0] != 10 || got[1] != 20 || got[2] != 30 {
		t.Errorf("unexpected elements: %v", got)
	}
}

func TestCursorTruncatedInput(t *testing.T) {
	cur := NewBytesCursor([]byte(`{"a":`))
	mustStartObject(t, cur)
	mustField(t, cur, "a")

	if _, err := cur.ReadInt64(); err == nil {
		t.Errorf("expected error on truncated input")
	}
}

func TestCursorLargeInt64(t *testing.T) {
	cur := NewBytesCursor([]byte(`9223372036854775807`))
	v, err := cur.ReadInt64()
	if err != nil || v != 9223372036854775807 {
		t.Fatalf("expected max int64, got (%d, %v)", v, err)
	}
}

func mustStartObject(t *testing.T, cur *Cursor) {
	t.Helper()
	if err := cur.ExpectObjectStart(); err != nil {
		t.Fatalf("ExpectObjectStart: %v", err)
	}
}

func mustField(t *testing.T, cur *Cursor, want string) {
	t.Helper()
	name, end, err := cur.FieldName()
	if err != nil {
		t.Fatalf("FieldName: %v", err)
	}
	if end {
		t.Fatalf("expected field %q, got object end", want)
	}
	if name != want {
		t.Fatalf("expected field %q, got %q", want, name)
	}
}
