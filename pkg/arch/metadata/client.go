package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
)

// Client builds instructions for one deployment of the metadata program. It
// holds no state beyond the program id and is safe for concurrent use.
type Client struct {
	program arch.Pubkey
}

func NewClient(program arch.Pubkey) *Client {
	return &Client{program: program}
}

func (c *Client) Program() arch.Pubkey {
	return c.program
}

func (c *Client) MetadataAddress(mint arch.Pubkey) (arch.Pubkey, error) {
	address, _, err := GetMetadataAddress(c.program, mint)
	return address, err
}

func (c *Client) AttributesAddress(mint arch.Pubkey) (arch.Pubkey, error) {
	address, _, err := GetAttributesAddress(c.program, mint)
	return address, err
}

type CreateMetadataParams struct {
	Payer                 arch.Pubkey
	Mint                  arch.Pubkey
	MintOrFreezeAuthority arch.Pubkey
	Name                  string
	Symbol                string
	Image                 string
	Description           string
	Immutable             bool
}

func (c *Client) CreateMetadataInstruction(params *CreateMetadataParams) (arch.Instruction, error) {
	metadata, err := c.MetadataAddress(params.Mint)
	if err != nil {
		return arch.Instruction{}, err
	}

	return NewCreateMetadataInstruction(
		c.program,
		&CreateMetadataInstructionAccounts{
			Payer:                 params.Payer,
			Mint:                  params.Mint,
			Metadata:              metadata,
			MintOrFreezeAuthority: params.MintOrFreezeAuthority,
		},
		&CreateMetadataInstructionArgs{
			Name:        params.Name,
			Symbol:      params.Symbol,
			Image:       params.Image,
			Description: params.Description,
			Immutable:   params.Immutable,
		},
	)
}

type UpdateMetadataParams struct {
	Mint            arch.Pubkey
	UpdateAuthority arch.Pubkey
	Name            *string
	Symbol          *string
	Image           *string
	Description     *string
}

func (c *Client) UpdateMetadataInstruction(params *UpdateMetadataParams) (arch.Instruction, error) {
	metadata, err := c.MetadataAddress(params.Mint)
	if err != nil {
		return arch.Instruction{}, err
	}

	return NewUpdateMetadataInstruction(
		c.program,
		&UpdateMetadataInstructionAccounts{
			Metadata:        metadata,
			UpdateAuthority: params.UpdateAuthority,
		},
		&UpdateMetadataInstructionArgs{
			Name:        params.Name,
			Symbol:      params.Symbol,
			Image:       params.Image,
			Description: params.Description,
		},
	)
}

type CreateAttributesParams struct {
	Payer           arch.Pubkey
	Mint            arch.Pubkey
	UpdateAuthority arch.Pubkey
	Data            []Attribute
}

func (c *Client) CreateAttributesInstruction(params *CreateAttributesParams) (arch.Instruction, error) {
	metadata, err := c.MetadataAddress(params.Mint)
	if err != nil {
		return arch.Instruction{}, err
	}
	attributes, err := c.AttributesAddress(params.Mint)
	if err != nil {
		return arch.Instruction{}, err
	}

	return NewCreateAttributesInstruction(
		c.program,
		&CreateAttributesInstructionAccounts{
			Payer:           params.Payer,
			Mint:            params.Mint,
			Attributes:      attributes,
			UpdateAuthority: params.UpdateAuthority,
			Metadata:        metadata,
		},
		&CreateAttributesInstructionArgs{
			Data: params.Data,
		},
	)
}

type ReplaceAttributesParams struct {
	Mint            arch.Pubkey
	UpdateAuthority arch.Pubkey
	Data            []Attribute
}

func (c *Client) ReplaceAttributesInstruction(params *ReplaceAttributesParams) (arch.Instruction, error) {
	metadata, err := c.MetadataAddress(params.Mint)
	if err != nil {
		return arch.Instruction{}, err
	}
	attributes, err := c.AttributesAddress(params.Mint)
	if err != nil {
		return arch.Instruction{}, err
	}

	return NewReplaceAttributesInstruction(
		c.program,
		&ReplaceAttributesInstructionAccounts{
			Attributes:      attributes,
			UpdateAuthority: params.UpdateAuthority,
			Metadata:        metadata,
		},
		&ReplaceAttributesInstructionArgs{
			Data: params.Data,
		},
	)
}

type TransferAuthorityParams struct {
	Mint                   arch.Pubkey
	CurrentUpdateAuthority arch.Pubkey
	NewAuthority           arch.Pubkey
}

func (c *Client) TransferAuthorityInstruction(params *TransferAuthorityParams) (arch.Instruction, error) {
	metadata, err := c.MetadataAddress(params.Mint)
	if err != nil {
		return arch.Instruction{}, err
	}

	return NewTransferAuthorityInstruction(
		c.program,
		&TransferAuthorityInstructionAccounts{
			Metadata:               metadata,
			CurrentUpdateAuthority: params.CurrentUpdateAuthority,
		},
		&TransferAuthorityInstructionArgs{
			NewAuthority: params.NewAuthority,
		},
	)
}

type MakeImmutableParams struct {
	Mint                   arch.Pubkey
	CurrentUpdateAuthority arch.Pubkey
}

func (c *Client) MakeImmutableInstruction(params *MakeImmutableParams) (arch.Instruction, error) {
	metadata, err := c.MetadataAddress(params.Mint)
	if err != nil {
		return arch.Instruction{}, err
	}

	return NewMakeImmutableInstruction(
		c.program,
		&MakeImmutableInstructionAccounts{
			Metadata:               metadata,
			CurrentUpdateAuthority: params.CurrentUpdateAuthority,
		},
		&MakeImmutableInstructionArgs{},
	)
}
