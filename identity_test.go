package stronghold

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestConditionParse(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	c := NewCondition("sigs", "ed25519", data)

	ext, typ, gotData, err := c.Parse()
	if err != nil {
		t.Fatalf("parse: %+v", err)
	}
	if ext != "sigs" || typ != "ed25519" || !bytes.Equal(gotData, data) {
		t.Fatalf("unexpected sections: %s/%s/%X", ext, typ, gotData)
	}

	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %+v", err)
	}
}

func TestConditionWithNewlineData(t *testing.T) {
	// 0x0a in the data section must not break parsing
	c := NewCondition("sigs", "ed25519", []byte{0x0a, 0x0b})
	if err := c.Validate(); err != nil {
		t.Fatalf("validate: %+v", err)
	}
}

func TestInvalidCondition(t *testing.T) {
	if err := Condition("no-separators").Validate(); err == nil {
		t.Fatal("malformed condition must not validate")
	}
}

func TestIdentityFromCondition(t *testing.T) {
	a := NewCondition("sigs", "ed25519", []byte("foo")).Identity()
	b := NewCondition("sigs", "ed25519", []byte("foo")).Identity()
	c := NewCondition("mult", "usage", []byte("foo")).Identity()

	if err := a.Validate(); err != nil {
		t.Fatalf("validate: %+v", err)
	}
	if !a.Equals(b) {
		t.Fatal("same condition must digest to the same identity")
	}
	if a.Equals(c) {
		t.Fatal("different conditions must digest to different identities")
	}
}

func TestIdentityJSONRoundTrip(t *testing.T) {
	id := NewCondition("sigs", "ed25519", []byte("round-trip")).Identity()

	raw, err := json.Marshal(id)
	if err != nil {
		t.Fatalf("marshal: %+v", err)
	}

	var loaded Identity
	if err := json.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("unmarshal: %+v", err)
	}
	if !id.Equals(loaded) {
		t.Fatalf("want %s, got %s", id, loaded)
	}
}

func TestConditionJSONRoundTrip(t *testing.T) {
	c := NewCondition("mint", "seat", []byte{0xca, 0xfe})

	raw, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %+v", err)
	}

	var loaded Condition
	if err := json.Unmarshal(raw, &loaded); err != nil {
		t.Fatalf("unmarshal: %+v", err)
	}
	if !c.Equals(loaded) {
		t.Fatalf("want %s, got %s", c, loaded)
	}
}

func TestParseIdentityFormats(t *testing.T) {
	id := NewCondition("sigs", "ed25519", []byte("formats")).Identity()

	cases := map[string]string{
		"implicit hex": id.String(),
		"explicit hex": "hex:" + id.String(),
		"condition":    "cond:sigs/ed25519/" + "666F726D617473",
	}
	for name, enc := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseIdentity(enc)
			if err != nil {
				t.Fatalf("parse %q: %+v", enc, err)
			}
			if !id.Equals(got) {
				t.Fatalf("want %s, got %s", id, got)
			}
		})
	}

	if _, err := ParseIdentity("base64:aaaa"); err == nil {
		t.Fatal("unknown format must fail")
	}
	if _, err := ParseIdentity("abcd"); err == nil {
		t.Fatal("wrong length hex must fail")
	}
}

func TestIdentityValidate(t *testing.T) {
	if err := Identity([]byte("too short")).Validate(); err == nil {
		t.Fatal("wrong length identity must not validate")
	}
}
