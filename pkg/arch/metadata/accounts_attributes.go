package metadata

import (
	"fmt"
	"strings"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

const (
	AttributesAccountSize = (1 + // is_initialized
		32 + // mint
		4 + // count
		MaxAttributes*(4+MaxAttributeKeyLength+4+MaxAttributeValueLength)) // data
)

// AttributesAccount holds the extensible key/value attributes of a mint.
type AttributesAccount struct {
	IsInitialized bool
	Mint          arch.Pubkey
	Data          []Attribute
}

// Get returns the value of the first attribute with the provided key.
func (obj *AttributesAccount) Get(key string) (string, bool) {
	for _, attribute := range obj.Data {
		if attribute.Key == key {
			return attribute.Value, true
		}
	}
	return "", false
}

// Marshal returns the encoded record without trailing padding.
func (obj *AttributesAccount) Marshal() ([]byte, error) {
	if err := ValidateAttributes(obj.Data); err != nil {
		return nil, err
	}

	enc := archbinary.NewEncoder()
	if err := enc.WriteBool(obj.IsInitialized); err != nil {
		return nil, err
	}
	if err := enc.WritePubkey(obj.Mint); err != nil {
		return nil, err
	}
	if err := putAttributes(enc, obj.Data); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// MarshalPacked returns the record zero padded to AttributesAccountSize.
func (obj *AttributesAccount) MarshalPacked() ([]byte, error) {
	return pack(obj.Marshal, AttributesAccountSize)
}

// Unmarshal decodes a record, ignoring any bytes past the end of it.
func (obj *AttributesAccount) Unmarshal(data []byte) (err error) {
	dec := archbinary.NewDecoder(data)

	if obj.IsInitialized, err = dec.ReadBool("is_initialized"); err != nil {
		return err
	}
	if obj.Mint, err = dec.ReadPubkey("mint"); err != nil {
		return err
	}
	obj.Data, err = getAttributes(dec)
	return err
}

func (obj *AttributesAccount) String() string {
	pairs := make([]string, len(obj.Data))
	for i, attribute := range obj.Data {
		pairs[i] = fmt.Sprintf("%s=%s", attribute.Key, attribute.Value)
	}

	return fmt.Sprintf(
		"Attributes{is_initialized=%t,mint=%s,data=[%s]}",
		obj.IsInitialized,
		obj.Mint.String(),
		strings.Join(pairs, ","),
	)
}
