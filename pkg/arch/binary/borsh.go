package binary

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
)

const (
	optionNone uint8 = 0
	optionSome uint8 = 1
)

// Encoder writes borsh values into an in-memory buffer.
type Encoder struct {
	buf *bytes.Buffer
	enc *bin.Encoder
}

func NewEncoder() *Encoder {
	buf := new(bytes.Buffer)
	return &Encoder{
		buf: buf,
		enc: bin.NewBorshEncoder(buf),
	}
}

func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

func (e *Encoder) WriteUint8(v uint8) error {
	return e.enc.WriteUint8(v)
}

func (e *Encoder) WriteBool(v bool) error {
	return e.enc.WriteBool(v)
}

func (e *Encoder) WriteUint32(v uint32) error {
	return e.enc.WriteUint32(v, bin.LE)
}

func (e *Encoder) WriteUint64(v uint64) error {
	return e.enc.WriteUint64(v, bin.LE)
}

// WriteString writes a u32 LE byte length followed by the UTF-8 bytes.
func (e *Encoder) WriteString(v string) error {
	if err := e.enc.WriteUint32(uint32(len(v)), bin.LE); err != nil {
		return err
	}
	return e.enc.WriteBytes([]byte(v), false)
}

func (e *Encoder) WriteOptionalString(v *string) error {
	if v == nil {
		return e.enc.WriteUint8(optionNone)
	}
	if err := e.enc.WriteUint8(optionSome); err != nil {
		return err
	}
	return e.WriteString(*v)
}

func (e *Encoder) WritePubkey(v arch.Pubkey) error {
	return e.enc.WriteBytes(v[:], false)
}

func (e *Encoder) WriteOptionalPubkey(v *arch.Pubkey) error {
	if v == nil {
		return e.enc.WriteUint8(optionNone)
	}
	if err := e.enc.WriteUint8(optionSome); err != nil {
		return err
	}
	return e.WritePubkey(*v)
}

// Decoder reads borsh values and reports arch.ErrMalformedData, rather than
// panicking, when a read would pass the end of the buffer. Trailing bytes are
// left unread.
type Decoder struct {
	dec *bin.Decoder
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{
		dec: bin.NewBorshDecoder(data),
	}
}

func (d *Decoder) Remaining() int {
	return d.dec.Remaining()
}

func (d *Decoder) require(n int, what string) error {
	if n < 0 || d.dec.Remaining() < n {
		return arch.MalformedDataf("%s: need %d bytes, have %d", what, n, d.dec.Remaining())
	}
	return nil
}

func (d *Decoder) ReadUint8(what string) (uint8, error) {
	if err := d.require(1, what); err != nil {
		return 0, err
	}
	v, err := d.dec.ReadUint8()
	if err != nil {
		return 0, errors.Wrap(arch.ErrMalformedData, err.Error())
	}
	return v, nil
}

// ReadBool accepts only 0 and 1.
func (d *Decoder) ReadBool(what string) (bool, error) {
	v, err := d.ReadUint8(what)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, arch.MalformedDataf("%s: invalid bool value %d", what, v)
	}
}

func (d *Decoder) ReadUint32(what string) (uint32, error) {
	if err := d.require(4, what); err != nil {
		return 0, err
	}
	v, err := d.dec.ReadUint32(bin.LE)
	if err != nil {
		return 0, errors.Wrap(arch.ErrMalformedData, err.Error())
	}
	return v, nil
}

func (d *Decoder) ReadUint64(what string) (uint64, error) {
	if err := d.require(8, what); err != nil {
		return 0, err
	}
	v, err := d.dec.ReadUint64(bin.LE)
	if err != nil {
		return 0, errors.Wrap(arch.ErrMalformedData, err.Error())
	}
	return v, nil
}

func (d *Decoder) ReadBytes(n int, what string) ([]byte, error) {
	if err := d.require(n, what); err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	v, err := d.dec.ReadBytes(n)
	if err != nil {
		return nil, errors.Wrap(arch.ErrMalformedData, err.Error())
	}
	return v, nil
}

// ReadString reads a u32 LE length prefixed string. The declared length is
// checked against the remaining buffer before anything is allocated.
func (d *Decoder) ReadString(what string) (string, error) {
	length, err := d.ReadUint32(what + " length")
	if err != nil {
		return "", err
	}
	if uint64(length) > uint64(d.dec.Remaining()) {
		return "", arch.MalformedDataf("%s: declared length %d exceeds remaining %d bytes", what, length, d.dec.Remaining())
	}
	b, err := d.ReadBytes(int(length), what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readOption reads an option flag, treating anything other than 0 or 1 as
// malformed.
func (d *Decoder) readOption(what string) (bool, error) {
	flag, err := d.ReadUint8(what + " option")
	if err != nil {
		return false, err
	}
	switch flag {
	case optionNone:
		return false, nil
	case optionSome:
		return true, nil
	default:
		return false, arch.MalformedDataf("%s: invalid option flag %d", what, flag)
	}
}

func (d *Decoder) ReadOptionalString(what string) (*string, error) {
	present, err := d.readOption(what)
	if err != nil || !present {
		return nil, err
	}
	v, err := d.ReadString(what)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (d *Decoder) ReadPubkey(what string) (arch.Pubkey, error) {
	b, err := d.ReadBytes(arch.PublicKeySize, what)
	if err != nil {
		return arch.Pubkey{}, err
	}
	return arch.PubkeyFromSlice(b), nil
}

func (d *Decoder) ReadOptionalPubkey(what string) (*arch.Pubkey, error) {
	present, err := d.readOption(what)
	if err != nil || !present {
		return nil, err
	}
	v, err := d.ReadPubkey(what)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
