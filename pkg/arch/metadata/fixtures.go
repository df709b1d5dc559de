package metadata

import (
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/arch/computebudget"
	"github.com/code-payments/arch-token-metadata/pkg/arch/system"
	"github.com/code-payments/arch-token-metadata/pkg/arch/token"
	"github.com/code-payments/arch-token-metadata/pkg/pointer"
)

// Fixtures is the cross implementation golden vector file. Every byte value
// is hex encoded.
type Fixtures struct {
	CreateMetadata    string `json:"CreateMetadata"`
	UpdateMetadata    string `json:"UpdateMetadata"`
	CreateAttributes  string `json:"CreateAttributes"`
	ReplaceAttributes string `json:"ReplaceAttributes"`
	TransferAuthority string `json:"TransferAuthority"`
	MakeImmutable     string `json:"MakeImmutable"`

	SystemProgram  string `json:"SystemProgram"`
	ProgramId      string `json:"ProgramId"`
	TokenProgramId string `json:"TokenProgramId"`

	PdaSamples []PdaFixture `json:"PdaSamples"`

	SystemCreateAccountMint   string `json:"SystemCreateAccountMint"`
	TokenInitializeMint2      string `json:"TokenInitializeMint2"`
	TokenSetAuthorityMintNone string `json:"TokenSetAuthorityMintNone"`
	TokenSetAuthorityMintSome string `json:"TokenSetAuthorityMintSome"`

	ComputeBudget ComputeBudgetFixture `json:"ComputeBudget"`

	Sample  AccountFixture `json:"Sample"`
	Sample2 AccountFixture `json:"Sample2"`
}

type PdaFixture struct {
	Mint       string `json:"mint"`
	Metadata   string `json:"metadata"`
	Attributes string `json:"attributes"`
}

type ComputeBudgetFixture struct {
	ProgramId                string `json:"ProgramId"`
	RequestHeapFrame64k      string `json:"RequestHeapFrame_64k"`
	SetComputeUnitLimit12000 string `json:"SetComputeUnitLimit_12000"`
}

// AccountFixture holds packed, zero padded account records.
type AccountFixture struct {
	Mint              string `json:"mint"`
	MetadataAccount   string `json:"metadata_account"`
	AttributesAccount string `json:"attributes_account"`
}

// Fixed inputs of the fixture corpus.
var (
	FixturePayer        = repeatedKey(1)
	FixtureMint         = repeatedKey(2)
	FixtureMint2        = repeatedKey(3)
	FixtureNewAuthority = repeatedKey(7)

	FixtureMetadataFields = MetadataFields{
		Name:        "Name",
		Symbol:      "SYM",
		Image:       "https://i",
		Description: "desc",
	}

	FixtureAttributes = []Attribute{
		{Key: "k1", Value: "v1"},
		{Key: "k2", Value: "v2"},
	}
)

// BuildFixtures produces the golden vectors for the provided program.
func BuildFixtures(program arch.Pubkey) (*Fixtures, error) {
	var res Fixtures
	var err error

	fields := FixtureMetadataFields
	for _, v := range []struct {
		dst  *string
		args InstructionArgs
	}{
		{&res.CreateMetadata, &CreateMetadataInstructionArgs{
			Name:        fields.Name,
			Symbol:      fields.Symbol,
			Image:       fields.Image,
			Description: fields.Description,
			Immutable:   fields.Immutable,
		}},
		{&res.UpdateMetadata, &UpdateMetadataInstructionArgs{Name: pointer.String("New")}},
		{&res.CreateAttributes, &CreateAttributesInstructionArgs{Data: FixtureAttributes}},
		{&res.ReplaceAttributes, &ReplaceAttributesInstructionArgs{Data: []Attribute{{Key: "a", Value: "1"}}}},
		{&res.TransferAuthority, &TransferAuthorityInstructionArgs{NewAuthority: FixtureNewAuthority}},
		{&res.MakeImmutable, &MakeImmutableInstructionArgs{}},
	} {
		data, err := MarshalInstructionArgs(v.args)
		if err != nil {
			return nil, errors.Wrapf(err, "error encoding %s", v.args.InstructionType())
		}
		*v.dst = hex.EncodeToString(data)
	}

	res.SystemProgram = system.ProgramKey.String()
	res.ProgramId = program.String()
	res.TokenProgramId = token.ProgramKey.String()

	for _, mint := range []arch.Pubkey{FixtureMint, FixtureMint2} {
		metadata, _, err := GetMetadataAddress(program, mint)
		if err != nil {
			return nil, err
		}
		attributes, _, err := GetAttributesAddress(program, mint)
		if err != nil {
			return nil, err
		}
		res.PdaSamples = append(res.PdaSamples, PdaFixture{
			Mint:       mint.String(),
			Metadata:   metadata.String(),
			Attributes: attributes.String(),
		})
	}

	res.SystemCreateAccountMint = hex.EncodeToString(system.CreateAccount(FixturePayer, FixtureMint, token.ProgramKey, system.MinAccountLamports, token.MintSize).Data)
	res.TokenInitializeMint2 = hex.EncodeToString(token.InitializeMint2(FixtureMint, FixturePayer, nil, 9).Data)
	res.TokenSetAuthorityMintNone = hex.EncodeToString(token.SetAuthority(FixtureMint, FixturePayer, nil, token.AuthorityTypeMintTokens).Data)
	res.TokenSetAuthorityMintSome = hex.EncodeToString(token.SetAuthority(FixtureMint, FixturePayer, pointer.Pubkey(FixtureNewAuthority), token.AuthorityTypeMintTokens).Data)

	heapFrame, err := computebudget.RequestHeapFrame(64 * 1024)
	if err != nil {
		return nil, err
	}
	res.ComputeBudget = ComputeBudgetFixture{
		ProgramId:                computebudget.ProgramKey.String(),
		RequestHeapFrame64k:      hex.EncodeToString(heapFrame.Data),
		SetComputeUnitLimit12000: hex.EncodeToString(computebudget.SetComputeUnitLimit(12000).Data),
	}

	if res.Sample, err = sampleAccounts(FixtureMint); err != nil {
		return nil, err
	}
	if res.Sample2, err = sampleAccounts(FixtureMint2); err != nil {
		return nil, err
	}

	return &res, nil
}

func sampleAccounts(mint arch.Pubkey) (AccountFixture, error) {
	payer := FixturePayer
	fields := FixtureMetadataFields

	metadata := &MetadataAccount{
		IsInitialized:   true,
		Mint:            mint,
		Name:            fields.Name,
		Symbol:          fields.Symbol,
		Image:           fields.Image,
		Description:     fields.Description,
		UpdateAuthority: &payer,
	}
	metadataData, err := metadata.MarshalPacked()
	if err != nil {
		return AccountFixture{}, err
	}

	attributes := &AttributesAccount{
		IsInitialized: true,
		Mint:          mint,
		Data:          FixtureAttributes,
	}
	attributesData, err := attributes.MarshalPacked()
	if err != nil {
		return AccountFixture{}, err
	}

	return AccountFixture{
		Mint:              mint.String(),
		MetadataAccount:   hex.EncodeToString(metadataData),
		AttributesAccount: hex.EncodeToString(attributesData),
	}, nil
}

func repeatedKey(b byte) arch.Pubkey {
	var key arch.Pubkey
	for i := range key {
		key[i] = b
	}
	return key
}
