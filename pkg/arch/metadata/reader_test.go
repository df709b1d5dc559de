package metadata

import (
	"context"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/testutil"
)

type fakeAccountReader struct {
	mu       sync.Mutex
	accounts map[arch.Pubkey]*arch.AccountInfo
	requests [][]arch.Pubkey
	truncate bool
	err      error
}

func newFakeAccountReader() *fakeAccountReader {
	return &fakeAccountReader{
		accounts: make(map[arch.Pubkey]*arch.AccountInfo),
	}
}

func (r *fakeAccountReader) GetMultipleAccounts(_ context.Context, keys []arch.Pubkey) ([]*arch.AccountInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests = append(r.requests, append([]arch.Pubkey{}, keys...))

	if r.err != nil {
		return nil, r.err
	}

	res := make([]*arch.AccountInfo, len(keys))
	for i, key := range keys {
		res[i] = r.accounts[key]
	}
	if r.truncate {
		res = res[:len(res)-1]
	}
	return res, nil
}

type readerTestEnv struct {
	rpc    *fakeAccountReader
	reader *Reader
	client *Client
}

func setupReaderTest(t *testing.T, batchSize uint64) *readerTestEnv {
	rpc := newFakeAccountReader()
	return &readerTestEnv{
		rpc: rpc,
		reader: NewReader(rpc, withManualTestOverrides(&testOverrides{
			programId:        ProgramKey,
			maxBatchSize:     batchSize,
			addressCacheSize: 16,
		})),
		client: NewClient(ProgramKey),
	}
}

func (e *readerTestEnv) storeMetadata(t *testing.T, mint arch.Pubkey, owner arch.Pubkey) *MetadataAccount {
	authority := testutil.GenerateArchKeys(t, 1)[0]
	account := &MetadataAccount{
		IsInitialized:   true,
		Mint:            mint,
		Name:            "Name " + mint.String()[:4],
		Symbol:          "SYM",
		UpdateAuthority: &authority,
	}

	data, err := account.MarshalPacked()
	require.NoError(t, err)

	address, err := e.client.MetadataAddress(mint)
	require.NoError(t, err)
	e.rpc.accounts[address] = &arch.AccountInfo{Data: data, Owner: owner}
	return account
}

func (e *readerTestEnv) storeAttributes(t *testing.T, mint arch.Pubkey) *AttributesAccount {
	account := &AttributesAccount{
		IsInitialized: true,
		Mint:          mint,
		Data:          FixtureAttributes,
	}

	data, err := account.MarshalPacked()
	require.NoError(t, err)

	address, err := e.client.AttributesAddress(mint)
	require.NoError(t, err)
	e.rpc.accounts[address] = &arch.AccountInfo{Data: data, Owner: ProgramKey}
	return account
}

func TestReader_GetTokenMetadata(t *testing.T) {
	env := setupReaderTest(t, 100)
	ctx := context.Background()
	mints := testutil.GenerateArchKeys(t, 2)

	expected := env.storeMetadata(t, mints[0], ProgramKey)

	actual, err := env.reader.GetTokenMetadata(ctx, mints[0])
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	actual, err = env.reader.GetTokenMetadata(ctx, mints[1])
	require.NoError(t, err)
	assert.Nil(t, actual)
}

func TestReader_IgnoresForeignOwner(t *testing.T) {
	env := setupReaderTest(t, 100)
	mint := testutil.GenerateArchKeys(t, 1)[0]

	env.storeMetadata(t, mint, testutil.RepeatedKey(9))

	actual, err := env.reader.GetTokenMetadata(context.Background(), mint)
	require.NoError(t, err)
	assert.Nil(t, actual)
}

func TestReader_GetTokenDetails(t *testing.T) {
	env := setupReaderTest(t, 100)
	ctx := context.Background()
	mints := testutil.GenerateArchKeys(t, 2)

	expectedMetadata := env.storeMetadata(t, mints[0], ProgramKey)
	expectedAttributes := env.storeAttributes(t, mints[0])

	metadata, attributes, err := env.reader.GetTokenDetails(ctx, mints[0])
	require.NoError(t, err)
	assert.Equal(t, expectedMetadata, metadata)
	assert.Equal(t, expectedAttributes, attributes)
	require.Len(t, env.rpc.requests, 1)
	assert.Len(t, env.rpc.requests[0], 2)

	env.storeMetadata(t, mints[1], ProgramKey)
	metadata, attributes, err = env.reader.GetTokenDetails(ctx, mints[1])
	require.NoError(t, err)
	assert.NotNil(t, metadata)
	assert.Nil(t, attributes)

	attributesOnly, err := env.reader.GetTokenAttributes(ctx, mints[0])
	require.NoError(t, err)
	assert.Equal(t, expectedAttributes, attributesOnly)
}

func TestReader_CachesDerivedAddresses(t *testing.T) {
	env := setupReaderTest(t, 100)
	ctx := context.Background()
	mints := testutil.GenerateArchKeys(t, 2)

	for i := 0; i < 2; i++ {
		_, err := env.reader.GetTokenMetadataBatch(ctx, mints)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, env.reader.addresses.Len())

	_, _, err := env.reader.GetTokenDetails(ctx, mints[0])
	require.NoError(t, err)
	assert.Equal(t, 3, env.reader.addresses.Len())

	// Cached results are the derivations themselves.
	for _, mint := range mints {
		expected, err := env.client.MetadataAddress(mint)
		require.NoError(t, err)

		actual, ok := env.reader.addresses.Retrieve(addressCacheKey{
			prefix:  metadataSeedPrefix,
			program: ProgramKey,
			mint:    mint,
		})
		require.True(t, ok)
		assert.Equal(t, expected, actual)
	}

	require.Len(t, env.rpc.requests, 3)
	assert.Equal(t, env.rpc.requests[0], env.rpc.requests[1])
}

func TestReader_BatchPreservesOrder(t *testing.T) {
	env := setupReaderTest(t, 2)
	ctx := context.Background()
	mints := testutil.GenerateArchKeys(t, 5)

	expected := make([]*MetadataAccount, len(mints))
	for i, mint := range mints {
		if i == 2 {
			continue
		}
		expected[i] = env.storeMetadata(t, mint, ProgramKey)
	}

	actual, err := env.reader.GetTokenMetadataBatch(ctx, mints)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	require.Len(t, env.rpc.requests, 3)
	assert.Len(t, env.rpc.requests[0], 2)
	assert.Len(t, env.rpc.requests[1], 2)
	assert.Len(t, env.rpc.requests[2], 1)

	attributes, err := env.reader.GetTokenAttributesBatch(ctx, mints)
	require.NoError(t, err)
	require.Len(t, attributes, len(mints))
	for _, entry := range attributes {
		assert.Nil(t, entry)
	}
}

func TestReader_Errors(t *testing.T) {
	env := setupReaderTest(t, 100)
	ctx := context.Background()
	mint := testutil.GenerateArchKeys(t, 1)[0]

	address, err := env.client.MetadataAddress(mint)
	require.NoError(t, err)
	env.rpc.accounts[address] = &arch.AccountInfo{Data: []byte{1, 2, 3}, Owner: ProgramKey}

	_, err = env.reader.GetTokenMetadata(ctx, mint)
	testutil.AssertMalformedData(t, err)

	env.rpc.truncate = true
	_, err = env.reader.GetTokenMetadata(ctx, mint)
	assert.Error(t, err)

	env.rpc.truncate = false
	env.rpc.err = errors.New("unavailable")
	_, err = env.reader.GetTokenMetadataBatch(ctx, []arch.Pubkey{mint})
	assert.Error(t, err)
}
