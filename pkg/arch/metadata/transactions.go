package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/arch/computebudget"
	"github.com/code-payments/arch-token-metadata/pkg/arch/system"
	"github.com/code-payments/arch-token-metadata/pkg/arch/token"
	"github.com/code-payments/arch-token-metadata/pkg/pointer"
)

// ComputeBudgetOptions are optional compute budget requests placed ahead of
// every other instruction. The unit limit comes first unless HeapFirst is
// set.
type ComputeBudgetOptions struct {
	Units     *uint32
	HeapBytes *uint32
	HeapFirst bool
}

// Instructions returns the requested compute budget instructions in order.
func (o ComputeBudgetOptions) Instructions() ([]arch.Instruction, error) {
	var units, heap []arch.Instruction

	if o.Units != nil {
		units = append(units, computebudget.SetComputeUnitLimit(*o.Units))
	}
	if o.HeapBytes != nil {
		ix, err := computebudget.RequestHeapFrame(*o.HeapBytes)
		if err != nil {
			return nil, err
		}
		heap = append(heap, ix)
	}

	if o.HeapFirst {
		return append(heap, units...), nil
	}
	return append(units, heap...), nil
}

// Compose orders compute budget instructions, then external instructions
// built by other programs, then metadata instructions.
func Compose(budget ComputeBudgetOptions, external []arch.Instruction, metadata []arch.Instruction) ([]arch.Instruction, error) {
	res, err := budget.Instructions()
	if err != nil {
		return nil, err
	}

	res = append(res, external...)
	res = append(res, metadata...)
	return res, nil
}

// Composition is an ordered instruction list along with the derived accounts
// the caller needs to build the transaction around it.
type Composition struct {
	Instructions      []arch.Instruction
	MetadataAddress   arch.Pubkey
	AttributesAddress *arch.Pubkey
}

// Signers returns the distinct signing keys of the composition.
func (c *Composition) Signers() []arch.Pubkey {
	return arch.Signers(c.Instructions...)
}

// SignerOverrides are optional signer roles supplied by the caller.
type SignerOverrides struct {
	MintAuthority   *arch.Pubkey
	UpdateAuthority *arch.Pubkey
}

// ResolvedSigners holds explicit keys for every signer role. Roles the
// caller did not override fall back to the payer.
type ResolvedSigners struct {
	Payer           arch.Pubkey
	MintAuthority   arch.Pubkey
	UpdateAuthority arch.Pubkey
}

func ResolveSigners(payer arch.Pubkey, overrides SignerOverrides) ResolvedSigners {
	resolved := ResolvedSigners{
		Payer:           payer,
		MintAuthority:   payer,
		UpdateAuthority: payer,
	}
	if overrides.MintAuthority != nil {
		resolved.MintAuthority = *overrides.MintAuthority
	}
	if overrides.UpdateAuthority != nil {
		resolved.UpdateAuthority = *overrides.UpdateAuthority
	}
	return resolved
}

// MintAccountParams describe the token mint created ahead of its metadata.
type MintAccountParams struct {
	Payer           arch.Pubkey
	Mint            arch.Pubkey
	MintAuthority   arch.Pubkey
	FreezeAuthority *arch.Pubkey
	Decimals        uint8

	// Lamports funds the mint account, defaulting to system.MinAccountLamports.
	Lamports uint64
}

func (p *MintAccountParams) instructions() []arch.Instruction {
	lamports := p.Lamports
	if lamports == 0 {
		lamports = system.MinAccountLamports
	}

	return []arch.Instruction{
		system.CreateAccount(p.Payer, p.Mint, token.ProgramKey, lamports, token.MintSize),
		token.InitializeMint2(p.Mint, p.MintAuthority, p.FreezeAuthority, p.Decimals),
	}
}

type MetadataFields struct {
	Name        string
	Symbol      string
	Image       string
	Description string
	Immutable   bool
}

type CreateTokenWithMetadataParams struct {
	MintAccountParams
	MetadataFields
}

// CreateTokenWithMetadata returns [create mint, initialize mint, create
// metadata] signed by the mint authority.
func (c *Client) CreateTokenWithMetadata(params *CreateTokenWithMetadataParams, budget ComputeBudgetOptions) (*Composition, error) {
	createMetadata, err := c.CreateMetadataInstruction(&CreateMetadataParams{
		Payer:                 params.Payer,
		Mint:                  params.Mint,
		MintOrFreezeAuthority: params.MintAuthority,
		Name:                  params.Name,
		Symbol:                params.Symbol,
		Image:                 params.Image,
		Description:           params.Description,
		Immutable:             params.Immutable,
	})
	if err != nil {
		return nil, err
	}

	return c.compose(params.Mint, false, budget, params.MintAccountParams.instructions(), createMetadata)
}

type CreateTokenWithMetadataAndAttributesParams struct {
	MintAccountParams
	MetadataFields

	Attributes []Attribute
}

// CreateTokenWithMetadataAndAttributes is CreateTokenWithMetadata followed by
// creating the attributes account with the mint authority as update
// authority.
func (c *Client) CreateTokenWithMetadataAndAttributes(params *CreateTokenWithMetadataAndAttributesParams, budget ComputeBudgetOptions) (*Composition, error) {
	createMetadata, err := c.CreateMetadataInstruction(&CreateMetadataParams{
		Payer:                 params.Payer,
		Mint:                  params.Mint,
		MintOrFreezeAuthority: params.MintAuthority,
		Name:                  params.Name,
		Symbol:                params.Symbol,
		Image:                 params.Image,
		Description:           params.Description,
		Immutable:             params.Immutable,
	})
	if err != nil {
		return nil, err
	}

	createAttributes, err := c.CreateAttributesInstruction(&CreateAttributesParams{
		Payer:           params.Payer,
		Mint:            params.Mint,
		UpdateAuthority: params.MintAuthority,
		Data:            params.Attributes,
	})
	if err != nil {
		return nil, err
	}

	return c.compose(params.Mint, true, budget, params.MintAccountParams.instructions(), createMetadata, createAttributes)
}

type CreateTokenWithFreezeAuthMetadataParams struct {
	Payer                arch.Pubkey
	Mint                 arch.Pubkey
	InitialMintAuthority arch.Pubkey
	FreezeAuthority      arch.Pubkey
	Decimals             uint8
	Lamports             uint64

	MetadataFields
}

// CreateTokenWithFreezeAuthMetadata creates a mint with a freeze authority,
// clears the mint authority and has the freeze authority sign the metadata
// creation.
func (c *Client) CreateTokenWithFreezeAuthMetadata(params *CreateTokenWithFreezeAuthMetadataParams, budget ComputeBudgetOptions) (*Composition, error) {
	mint := &MintAccountParams{
		Payer:           params.Payer,
		Mint:            params.Mint,
		MintAuthority:   params.InitialMintAuthority,
		FreezeAuthority: pointer.Pubkey(params.FreezeAuthority),
		Decimals:        params.Decimals,
		Lamports:        params.Lamports,
	}

	external := append(
		mint.instructions(),
		token.SetAuthority(params.Mint, params.InitialMintAuthority, nil, token.AuthorityTypeMintTokens),
	)

	createMetadata, err := c.CreateMetadataInstruction(&CreateMetadataParams{
		Payer:                 params.Payer,
		Mint:                  params.Mint,
		MintOrFreezeAuthority: params.FreezeAuthority,
		Name:                  params.Name,
		Symbol:                params.Symbol,
		Image:                 params.Image,
		Description:           params.Description,
		Immutable:             params.Immutable,
	})
	if err != nil {
		return nil, err
	}

	return c.compose(params.Mint, false, budget, external, createMetadata)
}

type TransferAuthorityThenUpdateParams struct {
	Mint                   arch.Pubkey
	CurrentUpdateAuthority arch.Pubkey
	NewAuthority           arch.Pubkey
	Name                   *string
	Symbol                 *string
	Image                  *string
	Description            *string
}

// TransferAuthorityThenUpdate hands the metadata to a new authority, which
// then applies an update. Both authorities sign.
func (c *Client) TransferAuthorityThenUpdate(params *TransferAuthorityThenUpdateParams, budget ComputeBudgetOptions) (*Composition, error) {
	transfer, err := c.TransferAuthorityInstruction(&TransferAuthorityParams{
		Mint:                   params.Mint,
		CurrentUpdateAuthority: params.CurrentUpdateAuthority,
		NewAuthority:           params.NewAuthority,
	})
	if err != nil {
		return nil, err
	}

	update, err := c.UpdateMetadataInstruction(&UpdateMetadataParams{
		Mint:            params.Mint,
		UpdateAuthority: params.NewAuthority,
		Name:            params.Name,
		Symbol:          params.Symbol,
		Image:           params.Image,
		Description:     params.Description,
	})
	if err != nil {
		return nil, err
	}

	return c.compose(params.Mint, false, budget, nil, transfer, update)
}

func (c *Client) CreateAttributes(params *CreateAttributesParams, budget ComputeBudgetOptions) (*Composition, error) {
	ix, err := c.CreateAttributesInstruction(params)
	if err != nil {
		return nil, err
	}
	return c.compose(params.Mint, true, budget, nil, ix)
}

func (c *Client) ReplaceAttributes(params *ReplaceAttributesParams, budget ComputeBudgetOptions) (*Composition, error) {
	ix, err := c.ReplaceAttributesInstruction(params)
	if err != nil {
		return nil, err
	}
	return c.compose(params.Mint, true, budget, nil, ix)
}

func (c *Client) MakeImmutable(params *MakeImmutableParams, budget ComputeBudgetOptions) (*Composition, error) {
	ix, err := c.MakeImmutableInstruction(params)
	if err != nil {
		return nil, err
	}
	return c.compose(params.Mint, false, budget, nil, ix)
}

func (c *Client) compose(mint arch.Pubkey, withAttributes bool, budget ComputeBudgetOptions, external []arch.Instruction, metadata ...arch.Instruction) (*Composition, error) {
	instructions, err := Compose(budget, external, metadata)
	if err != nil {
		return nil, err
	}

	metadataAddress, err := c.MetadataAddress(mint)
	if err != nil {
		return nil, err
	}

	res := &Composition{
		Instructions:    instructions,
		MetadataAddress: metadataAddress,
	}

	if withAttributes {
		attributesAddress, err := c.AttributesAddress(mint)
		if err != nil {
			return nil, err
		}
		res.AttributesAddress = &attributesAddress
	}

	return res, nil
}
