package metadata

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/arch-token-metadata/pkg/testutil"
)

func TestMetadataAccount_RoundTrip(t *testing.T) {
	keys := testutil.GenerateArchKeys(t, 2)

	for _, expected := range []*MetadataAccount{
		{IsInitialized: true, Mint: keys[0], Name: "Name", Symbol: "SYM", Image: "https://i", Description: "desc", UpdateAuthority: &keys[1]},
		{IsInitialized: true, Mint: keys[0], Name: "Frozen"},
		{},
	} {
		data, err := expected.Marshal()
		require.NoError(t, err)

		var actual MetadataAccount
		require.NoError(t, actual.Unmarshal(data))
		assert.Equal(t, expected, &actual)
		assert.Equal(t, expected.UpdateAuthority != nil, actual.IsMutable())

		packed, err := expected.MarshalPacked()
		require.NoError(t, err)
		require.Len(t, packed, MetadataAccountSize)
		assert.Equal(t, data, packed[:len(data)])

		actual = MetadataAccount{}
		require.NoError(t, actual.Unmarshal(packed))
		assert.Equal(t, expected, &actual)
	}
}

func TestMetadataAccount_MaxLengthFits(t *testing.T) {
	keys := testutil.GenerateArchKeys(t, 2)

	account := &MetadataAccount{
		IsInitialized:   true,
		Mint:            keys[0],
		Name:            strings.Repeat("n", MaxNameLength),
		Symbol:          strings.Repeat("s", MaxSymbolLength),
		Image:           strings.Repeat("i", MaxImageLength),
		Description:     strings.Repeat("d", MaxDescriptionLength),
		UpdateAuthority: &keys[1],
	}

	data, err := account.Marshal()
	require.NoError(t, err)
	assert.Len(t, data, MetadataAccountSize)

	account.Symbol += "s"
	_, err = account.MarshalPacked()
	testutil.AssertValidationError(t, err, "symbol")
}

func TestMetadataAccount_Malformed(t *testing.T) {
	keys := testutil.GenerateArchKeys(t, 1)

	data, err := (&MetadataAccount{IsInitialized: true, Mint: keys[0], Name: "Name", UpdateAuthority: &keys[0]}).Marshal()
	require.NoError(t, err)

	for i := 0; i < len(data); i++ {
		var account MetadataAccount
		testutil.AssertMalformedData(t, account.Unmarshal(data[:i]))
	}

	corrupted := append([]byte{}, data...)
	corrupted[len(corrupted)-33] = 2
	var account MetadataAccount
	testutil.AssertMalformedData(t, account.Unmarshal(corrupted))
}

func TestAttributesAccount_RoundTrip(t *testing.T) {
	keys := testutil.GenerateArchKeys(t, 1)

	expected := &AttributesAccount{
		IsInitialized: true,
		Mint:          keys[0],
		Data: []Attribute{
			{Key: AttributeKeyWebsite, Value: "https://example.com"},
			{Key: AttributeKeyTwitter, Value: "@example"},
		},
	}

	packed, err := expected.MarshalPacked()
	require.NoError(t, err)
	require.Len(t, packed, AttributesAccountSize)

	var actual AttributesAccount
	require.NoError(t, actual.Unmarshal(packed))
	assert.Equal(t, expected, &actual)

	value, ok := actual.Get(AttributeKeyTwitter)
	assert.True(t, ok)
	assert.Equal(t, "@example", value)

	_, ok = actual.Get(AttributeKeyDiscord)
	assert.False(t, ok)

	assert.Contains(t, actual.String(), "website=https://example.com")
}

func TestAttributesAccount_MaxEntriesFit(t *testing.T) {
	keys := testutil.GenerateArchKeys(t, 1)

	account := &AttributesAccount{IsInitialized: true, Mint: keys[0]}
	for i := 0; i < MaxAttributes; i++ {
		account.Data = append(account.Data, Attribute{
			Key:   strings.Repeat(string(rune('a'+i%26)), MaxAttributeKeyLength),
			Value: strings.Repeat("v", MaxAttributeValueLength),
		})
	}

	data, err := account.Marshal()
	require.NoError(t, err)
	assert.Len(t, data, AttributesAccountSize)

	account.Data = append(account.Data, Attribute{Key: "k", Value: "v"})
	_, err = account.Marshal()
	testutil.AssertValidationError(t, err, "attributes")
}

func TestAttributesAccount_Malformed(t *testing.T) {
	keys := testutil.GenerateArchKeys(t, 1)

	data, err := (&AttributesAccount{IsInitialized: true, Mint: keys[0], Data: []Attribute{{Key: "k", Value: "v"}}}).Marshal()
	require.NoError(t, err)

	for i := 0; i < len(data); i++ {
		var account AttributesAccount
		testutil.AssertMalformedData(t, account.Unmarshal(data[:i]))
	}
}
