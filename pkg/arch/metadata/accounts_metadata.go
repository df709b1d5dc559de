package metadata

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	archbinary "github.com/code-payments/arch-token-metadata/pkg/arch/binary"
)

const (
	MetadataAccountSize = (1 + // is_initialized
		32 + // mint
		4 + MaxNameLength + // name
		4 + MaxSymbolLength + // symbol
		4 + MaxImageLength + // image
		4 + MaxDescriptionLength + // description
		1 + 32) // update_authority
)

// MetadataAccount is the core metadata record for a mint. A nil
// UpdateAuthority means the metadata is immutable.
type MetadataAccount struct {
	IsInitialized   bool
	Mint            arch.Pubkey
	Name            string
	Symbol          string
	Image           string
	Description     string
	UpdateAuthority *arch.Pubkey
}

func (obj *MetadataAccount) IsMutable() bool {
	return obj.UpdateAuthority != nil
}

// Marshal returns the encoded record without trailing padding.
func (obj *MetadataAccount) Marshal() ([]byte, error) {
	if err := ValidateMetadataFields(obj.Name, obj.Symbol, obj.Image, obj.Description); err != nil {
		return nil, err
	}

	enc := archbinary.NewEncoder()
	if err := enc.WriteBool(obj.IsInitialized); err != nil {
		return nil, err
	}
	if err := enc.WritePubkey(obj.Mint); err != nil {
		return nil, err
	}
	for _, v := range []string{obj.Name, obj.Symbol, obj.Image, obj.Description} {
		if err := enc.WriteString(v); err != nil {
			return nil, err
		}
	}
	if err := enc.WriteOptionalPubkey(obj.UpdateAuthority); err != nil {
		return nil, err
	}
	return enc.Bytes(), nil
}

// MarshalPacked returns the record zero padded to MetadataAccountSize, which
// is how it is stored on chain.
func (obj *MetadataAccount) MarshalPacked() ([]byte, error) {
	return pack(obj.Marshal, MetadataAccountSize)
}

// Unmarshal decodes a record, ignoring any bytes past the end of it.
func (obj *MetadataAccount) Unmarshal(data []byte) (err error) {
	dec := archbinary.NewDecoder(data)

	if obj.IsInitialized, err = dec.ReadBool("is_initialized"); err != nil {
		return err
	}
	if obj.Mint, err = dec.ReadPubkey("mint"); err != nil {
		return err
	}
	if obj.Name, err = dec.ReadString("name"); err != nil {
		return err
	}
	if obj.Symbol, err = dec.ReadString("symbol"); err != nil {
		return err
	}
	if obj.Image, err = dec.ReadString("image"); err != nil {
		return err
	}
	if obj.Description, err = dec.ReadString("description"); err != nil {
		return err
	}
	obj.UpdateAuthority, err = dec.ReadOptionalPubkey("update_authority")
	return err
}

func (obj *MetadataAccount) String() string {
	updateAuthority := "<nil>"
	if obj.UpdateAuthority != nil {
		updateAuthority = obj.UpdateAuthority.String()
	}

	return fmt.Sprintf(
		"Metadata{is_initialized=%t,mint=%s,name=%s,symbol=%s,image=%s,description=%s,update_authority=%s}",
		obj.IsInitialized,
		obj.Mint.String(),
		obj.Name,
		obj.Symbol,
		obj.Image,
		obj.Description,
		updateAuthority,
	)
}

func pack(marshal func() ([]byte, error), size int) ([]byte, error) {
	encoded, err := marshal()
	if err != nil {
		return nil, err
	}
	if len(encoded) > size {
		return nil, errors.Errorf("encoded record of %d bytes exceeds account size %d", len(encoded), size)
	}

	res := make([]byte, size)
	copy(res, encoded)
	return res, nil
}
