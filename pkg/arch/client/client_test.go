package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/arch/metadata"
	"github.com/code-payments/arch-token-metadata/pkg/testutil"
)

type rpcRequest struct {
	ID     int             `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
}

type rpcResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      int         `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

type fakeNode struct {
	mu          sync.Mutex
	accounts    map[arch.Pubkey]*arch.AccountInfo
	failing     map[arch.Pubkey]struct{}
	throttle    int
	blockHash   string
	httpCalls   int
	lastBatchSz int
}

func newFakeNode() *fakeNode {
	return &fakeNode{
		accounts: make(map[arch.Pubkey]*arch.AccountInfo),
		failing:  make(map[arch.Pubkey]struct{}),
	}
}

func toNumbers(b []byte) []int {
	res := make([]int, len(b))
	for i, v := range b {
		res[i] = int(v)
	}
	return res
}

func (n *fakeNode) handle(req rpcRequest) rpcResponse {
	res := rpcResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case methodGetBestBlockHash:
		res.Result = n.blockHash
	case methodReadAccountInfo:
		var numbers []int
		if err := json.Unmarshal(req.Params, &numbers); err != nil || len(numbers) != arch.PublicKeySize {
			res.Error = map[string]interface{}{"code": -32602, "message": "invalid params"}
			return res
		}

		var key arch.Pubkey
		for i, v := range numbers {
			key[i] = byte(v)
		}

		if _, ok := n.failing[key]; ok {
			res.Error = map[string]interface{}{"code": -32602, "message": "invalid pubkey"}
			return res
		}

		info, ok := n.accounts[key]
		if !ok {
			res.Error = map[string]interface{}{"code": accountNotFoundCode, "message": "account not found"}
			return res
		}

		res.Result = map[string]interface{}{
			"owner":         toNumbers(info.Owner[:]),
			"data":          toNumbers(info.Data),
			"utxo":          info.Utxo,
			"is_executable": info.Executable,
		}
	default:
		res.Error = map[string]interface{}{"code": -32601, "message": "method not found"}
	}
	return res
}

func (n *fakeNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.httpCalls++
	if n.throttle > 0 {
		n.throttle--
		http.Error(w, "slow down", http.StatusTooManyRequests)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if len(body) > 0 && body[0] == '[' {
		var requests []rpcRequest
		if err := json.Unmarshal(body, &requests); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		n.lastBatchSz = len(requests)

		responses := make([]rpcResponse, len(requests))
		for i, req := range requests {
			responses[i] = n.handle(req)
		}
		_ = json.NewEncoder(w).Encode(responses)
		return
	}

	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(n.handle(req))
}

func setup(t *testing.T) (*fakeNode, Client) {
	node := newFakeNode()
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	return node, New(arch.Environment(server.URL), withManualTestOverrides(&testOverrides{
		maxAttempts:    3,
		baseBackoff:    time.Millisecond,
		maxBackoff:     time.Millisecond,
		requestTimeout: 5 * time.Second,
	}))
}

func TestGetAccountInfo(t *testing.T) {
	node, client := setup(t)
	keys := testutil.GenerateArchKeys(t, 3)

	node.accounts[keys[0]] = &arch.AccountInfo{
		Data:  []byte{1, 2, 3},
		Owner: keys[1],
		Utxo:  "abcd:0",
	}

	info, err := client.GetAccountInfo(context.Background(), keys[0])
	require.NoError(t, err)
	assert.Equal(t, node.accounts[keys[0]], info)

	_, err = client.GetAccountInfo(context.Background(), keys[2])
	assert.Equal(t, ErrAccountNotFound, err)
}

func TestGetMultipleAccounts(t *testing.T) {
	node, client := setup(t)
	keys := testutil.GenerateArchKeys(t, 4)

	node.accounts[keys[0]] = &arch.AccountInfo{Data: []byte{0xaa}, Owner: keys[3]}
	node.accounts[keys[2]] = &arch.AccountInfo{Data: []byte{}, Owner: keys[3], Executable: true}
	node.failing[keys[3]] = struct{}{}

	infos, err := client.GetMultipleAccounts(context.Background(), keys)
	require.NoError(t, err)
	require.Len(t, infos, 4)

	assert.Equal(t, []byte{0xaa}, infos[0].Data)
	assert.Equal(t, keys[3], infos[0].Owner)
	assert.Nil(t, infos[1])
	assert.True(t, infos[2].Executable)
	assert.Nil(t, infos[3])

	assert.Equal(t, 1, node.httpCalls)
	assert.Equal(t, 4, node.lastBatchSz)

	infos, err = client.GetMultipleAccounts(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, infos)
}

func TestRetriesRateLimits(t *testing.T) {
	defer testutil.DisableLogging()()

	node, client := setup(t)
	keys := testutil.GenerateArchKeys(t, 1)
	node.accounts[keys[0]] = &arch.AccountInfo{Data: []byte{1}, Owner: keys[0]}

	node.throttle = 2
	infos, err := client.GetMultipleAccounts(context.Background(), keys)
	require.NoError(t, err)
	require.NotNil(t, infos[0])
	assert.Equal(t, 3, node.httpCalls)

	node.throttle = 3
	node.httpCalls = 0
	_, err = client.GetMultipleAccounts(context.Background(), keys)
	assert.Error(t, err)
	assert.Equal(t, 3, node.httpCalls)
}

func TestCancelledContext(t *testing.T) {
	node, client := setup(t)
	keys := testutil.GenerateArchKeys(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetMultipleAccounts(ctx, keys)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, node.httpCalls)
}

func TestClientSideRateLimit(t *testing.T) {
	node := newFakeNode()
	server := httptest.NewServer(node)
	t.Cleanup(server.Close)

	client := New(arch.Environment(server.URL), withManualTestOverrides(&testOverrides{
		maxAttempts:    1,
		baseBackoff:    time.Millisecond,
		maxBackoff:     time.Millisecond,
		requestTimeout: 5 * time.Second,
		maxRps:         1,
	}))
	keys := testutil.GenerateArchKeys(t, 1)

	_, err := client.GetMultipleAccounts(context.Background(), keys)
	require.NoError(t, err)

	// The next token is a second away, so the deadline cannot be met.
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.GetMultipleAccounts(ctx, keys)
	assert.Error(t, err)
	assert.Equal(t, 1, node.httpCalls)
}

func TestGetBestBlockHash(t *testing.T) {
	node, client := setup(t)

	var expected arch.Hash
	for i := range expected {
		expected[i] = byte(i)
	}
	node.blockHash = hex.EncodeToString(expected[:])

	actual, err := client.GetBestBlockHash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, expected, actual)

	node.blockHash = "zz"
	_, err = client.GetBestBlockHash(context.Background())
	assert.Error(t, err)
}

func TestMetadataReaderOverRPC(t *testing.T) {
	node, client := setup(t)
	mint := testutil.GenerateArchKeys(t, 1)[0]

	account := &metadata.MetadataAccount{
		IsInitialized: true,
		Mint:          mint,
		Name:          "Name",
		Symbol:        "SYM",
	}
	data, err := account.MarshalPacked()
	require.NoError(t, err)

	address, _, err := metadata.GetMetadataAddress(metadata.ProgramKey, mint)
	require.NoError(t, err)
	node.accounts[address] = &arch.AccountInfo{Data: data, Owner: metadata.ProgramKey}

	reader := metadata.NewReader(client, metadata.WithEnvConfigs())

	actual, attributes, err := reader.GetTokenDetails(context.Background(), mint)
	require.NoError(t, err)
	assert.Equal(t, account, actual)
	assert.Nil(t, attributes)
}

func TestByteArray(t *testing.T) {
	var fromNumbers byteArray
	require.NoError(t, json.Unmarshal([]byte(`[1,2,255]`), &fromNumbers))
	assert.Equal(t, byteArray{1, 2, 255}, fromNumbers)

	var fromString byteArray
	require.NoError(t, json.Unmarshal([]byte(`"AQL/"`), &fromString))
	assert.Equal(t, byteArray{1, 2, 255}, fromString)

	var invalid byteArray
	assert.Error(t, json.Unmarshal([]byte(`[256]`), &invalid))
}
