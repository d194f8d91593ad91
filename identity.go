package stronghold

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/stronghold-labs/stronghold/crypto/bech32"
	"github.com/stronghold-labs/stronghold/errors"
)

// IdentityLength is the length of all identities. You can modify it in
// init() before any identity is calculated, but it must not change
// during the lifetime of the kvstore.
var IdentityLength = 20

// it must have (?s) flags, otherwise it errors when the last section
// contains 0x20 (newline)
var perm = regexp.MustCompile(`(?s)^([a-zA-Z0-9_\-]{3,10})/([a-zA-Z0-9_\-]{3,10})/(.+)$`)

// Condition is a specially formatted byte array describing who can
// authorize an action. It is of the format:
//
//	sprintf("%s/%s/%s", extension, type, data)
//
// A condition may describe a single signature key as well as a
// threshold account aggregating many keys. The treasury and quorum
// cores never look inside a condition, they only match the identity it
// digests to.
type Condition []byte

func NewCondition(ext, typ string, data []byte) Condition {
	pre := fmt.Sprintf("%s/%s/", ext, typ)
	return append([]byte(pre), data...)
}

// Parse extracts the sections from the condition bytes and verifies it
// is properly formatted.
func (c Condition) Parse() (string, string, []byte, error) {
	chunks := perm.FindSubmatch(c)
	if len(chunks) == 0 {
		return "", "", nil, errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	// returns [all, match1, match2, match3]
	return string(chunks[1]), string(chunks[2]), chunks[3], nil
}

// Identity converts a condition into the identity it stands for.
func (c Condition) Identity() Identity {
	return NewIdentity(c)
}

// Equals checks if two conditions are the same.
func (a Condition) Equals(b Condition) bool {
	return bytes.Equal(a, b)
}

// String keeps the extension and type in ascii and hex-encodes the
// binary data.
func (c Condition) String() string {
	ext, typ, data, err := c.Parse()
	if err != nil {
		return fmt.Sprintf("Invalid Condition: %X", []byte(c))
	}
	return fmt.Sprintf("%s/%s/%X", ext, typ, data)
}

// Validate returns an error if the condition is not the proper format.
func (c Condition) Validate() error {
	if !perm.Match(c) {
		return errors.Wrapf(errors.ErrInput, "condition: %X", []byte(c))
	}
	return nil
}

func (c Condition) MarshalJSON() ([]byte, error) {
	var serialized string
	if c != nil {
		serialized = c.String()
	}
	return json.Marshal(serialized)
}

func (c *Condition) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	return c.deserialize(enc)
}

// deserialize from a human readable string.
func (c *Condition) deserialize(source string) error {
	// No value zeroes the condition.
	if len(source) == 0 {
		*c = nil
		return nil
	}

	args := strings.Split(source, "/")
	if len(args) != 3 {
		return errors.Wrap(errors.ErrInput, "invalid condition format")
	}
	data, err := hex.DecodeString(args[2])
	if err != nil {
		return errors.Wrapf(errors.ErrInput, "malformed condition data: %s", err)
	}
	*c = NewCondition(args[0], args[1], data)
	return nil
}

// Identity represents a collision-free, one-way digest of a condition.
//
// It will be of size IdentityLength. Whether the underlying condition
// is a single key or an N-of-M account is invisible at this level.
type Identity []byte

// NewIdentity hashes and truncates into the proper size.
func NewIdentity(data []byte) Identity {
	if data == nil {
		return nil
	}
	h := sha256.Sum256(data)
	return h[:IdentityLength]
}

// Equals checks if two identities are the same.
func (a Identity) Equals(b Identity) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy that can be freely modified.
func (a Identity) Clone() Identity {
	if a == nil {
		return nil
	}
	cpy := make(Identity, len(a))
	copy(cpy, a)
	return cpy
}

// String returns a human readable string. Currently hex.
func (a Identity) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return strings.ToUpper(hex.EncodeToString(a))
}

// Validate returns an error if the identity is not the valid size.
func (a Identity) Validate() error {
	if len(a) != IdentityLength {
		return errors.Wrapf(errors.ErrInput, "identity: %v", a)
	}
	return nil
}

// MarshalJSON provides a hex representation for JSON, to override the
// standard base64 []byte encoding.
func (a Identity) MarshalJSON() ([]byte, error) {
	s := strings.ToUpper(hex.EncodeToString(a))
	return json.Marshal(s)
}

func (a *Identity) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(err, "cannot decode json")
	}
	id, err := ParseIdentity(enc)
	if err != nil {
		return err
	}
	*a = id
	return nil
}

// ParseIdentity accepts an identity in one of the serialization
// formats and returns its binary representation. If the encoded string
// starts with a prefix, it is cut off and the specified decoding
// method is used instead of the default one:
//
//	hex:    hex encoded identity (the default)
//	cond:   human readable condition representation
//	bech32: bech32 encoded identity
func ParseIdentity(enc string) (Identity, error) {
	chunks := strings.SplitN(enc, ":", 2)
	format := chunks[0]
	if len(chunks) == 1 {
		format = "hex"
	} else {
		enc = chunks[1]
	}

	if len(enc) == 0 {
		return nil, nil
	}

	switch format {
	case "hex":
		val, err := hex.DecodeString(enc)
		if err != nil {
			return nil, errors.Wrap(err, "cannot decode hex")
		}
		id := Identity(val)
		if err := id.Validate(); err != nil {
			return nil, err
		}
		return id, nil
	case "cond":
		var c Condition
		if err := c.deserialize(enc); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, err
		}
		return c.Identity(), nil
	case "bech32":
		_, payload, err := bech32.Decode(enc)
		if err != nil {
			return nil, errors.Wrapf(err, "deserialize bech32: %s", err)
		}
		id := Identity(payload)
		if err := id.Validate(); err != nil {
			return nil, err
		}
		return id, nil
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown format %q", chunks[0])
	}
}
