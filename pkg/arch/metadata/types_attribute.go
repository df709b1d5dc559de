package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

// Attribute is a single key/value pair. Order within a set is preserved on
// the wire.
type Attribute struct {
	Key   string
	Value string
}

// minAttributeSize is the encoded size of an attribute with an empty key and
// value.
const minAttributeSize = 4 + 4

func putAttributes(enc *archbinary.Encoder, attributes []Attribute) error {
	if err := enc.WriteUint32(uint32(len(attributes))); err != nil {
		return err
	}
	for _, attribute := range attributes {
		if err := enc.WriteString(attribute.Key); err != nil {
			return err
		}
		if err := enc.WriteString(attribute.Value); err != nil {
			return err
		}
	}
	return nil
}

func getAttributes(dec *archbinary.Decoder) ([]Attribute, error) {
	count, err := dec.ReadUint32("attributes count")
	if err != nil {
		return nil, err
	}
	if uint64(count)*minAttributeSize > uint64(dec.Remaining()) {
		return nil, arch.MalformedDataf("attributes: count %d exceeds remaining %d bytes", count, dec.Remaining())
	}

	attributes := make([]Attribute, 0, count)
	for i := uint32(0); i < count; i++ {
		key, err := dec.ReadString("attribute key")
		if err != nil {
			return nil, err
		}
		value, err := dec.ReadString("attribute value")
		if err != nil {
			return nil, err
		}
		attributes = append(attributes, Attribute{Key: key, Value: value})
	}
	return attributes, nil
}
