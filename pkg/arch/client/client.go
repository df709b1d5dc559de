package client

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ybbus/jsonrpc"
	xrate "golang.org/x/time/rate"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/rate"
	"github.com/code-payments/arch-token-metadata/pkg/retry"
	"github.com/code-payments/arch-token-metadata/pkg/retry/backoff"
)

const (
	methodReadAccountInfo  = "read_account_info"
	methodGetBestBlockHash = "get_best_block_hash"

	rateLimitedCode = 429

	// Reference: https://www.jsonrpc.org/specification#error_object
	internalErrorCode = -32603

	// Arch node specific server errors.
	accountNotFoundCode = 404
	nodeNotReadyCode    = -32001
)

var (
	ErrAccountNotFound = errors.New("account not found")

	errRateLimited  = errors.New("rate limited")
	errServiceError = errors.New("service error")
)

// Client reads Arch node state over JSON-RPC.
type Client interface {
	// GetAccountInfo returns ErrAccountNotFound if the account does not exist.
	GetAccountInfo(ctx context.Context, account arch.Pubkey) (*arch.AccountInfo, error)

	// GetMultipleAccounts reads accounts in a single batch request. Entries the
	// node could not serve are nil.
	GetMultipleAccounts(ctx context.Context, accounts []arch.Pubkey) ([]*arch.AccountInfo, error)

	GetBestBlockHash(ctx context.Context) (arch.Hash, error)
}

type client struct {
	log     *logrus.Entry
	conf    *conf
	client  jsonrpc.RPCClient
	limiter rate.Limiter
}

// New returns a client using the specified endpoint.
func New(endpoint arch.Environment, configProvider ConfigProvider) Client {
	conf := configProvider()
	return NewWithRPCOptions(endpoint, configProvider, &jsonrpc.RPCClientOpts{
		HTTPClient: &http.Client{
			Timeout: conf.requestTimeout.Get(context.Background()),
		},
	})
}

// NewWithRPCOptions returns a client configured with the specified RPC options.
func NewWithRPCOptions(endpoint arch.Environment, configProvider ConfigProvider, opts *jsonrpc.RPCClientOpts) Client {
	conf := configProvider()

	var limiter rate.Limiter = &rate.NoLimiter{}
	if maxRps := conf.maxRps.Get(context.Background()); maxRps > 0 {
		limiter = rate.NewLocalRateLimiter(xrate.Limit(maxRps), int(maxRps))
	}

	return &client{
		log:     logrus.StandardLogger().WithField("type", "arch/client"),
		conf:    conf,
		client:  jsonrpc.NewClientWithOpts(string(endpoint), opts),
		limiter: limiter,
	}
}

func (c *client) retrier(ctx context.Context) retry.Retrier {
	maxAttempts := c.conf.maxAttempts.Get(ctx)
	if maxAttempts == 0 {
		maxAttempts = 1
	}

	return retry.NewRetrier(
		retry.Context(ctx),
		retry.RetriableErrors(errRateLimited, errServiceError),
		retry.Limit(uint(maxAttempts)),
		retry.BackoffWithJitter(backoff.BinaryExponential(c.conf.baseBackoff.Get(ctx)), c.conf.maxBackoff.Get(ctx), 0.1),
	)
}

func (c *client) call(ctx context.Context, out interface{}, method string, params ...interface{}) error {
	_, err := c.retrier(ctx).Retry(func() error {
		if err := c.limiter.Wait(ctx, method); err != nil {
			return err
		}

		err := c.client.CallFor(out, method, params...)
		if err == nil {
			return nil
		}

		return c.handleRpcError(method, err)
	})

	return err
}

func (c *client) callBatch(ctx context.Context, method string, requests jsonrpc.RPCRequests) (map[int]*jsonrpc.RPCResponse, error) {
	var returnValue map[int]*jsonrpc.RPCResponse

	_, err := c.retrier(ctx).Retry(func() error {
		if err := c.limiter.Wait(ctx, method); err != nil {
			return err
		}

		responses, err := c.client.CallBatch(requests)
		if err != nil {
			return c.handleRpcError(method, err)
		}

		responseByID := make(map[int]*jsonrpc.RPCResponse)
		for _, response := range responses {
			if response.Error != nil {
				// A throttled or failing node poisons the whole batch.
				if err := c.handleRpcError(method, response.Error); err == errRateLimited || err == errServiceError {
					return err
				}
			}

			responseByID[response.ID] = response
		}

		returnValue = responseByID
		return nil
	})

	return returnValue, err
}

func (c *client) handleRpcError(method string, err error) error {
	rpcErr, ok := err.(*jsonrpc.RPCError)
	if !ok {
		httpErr, ok := err.(*jsonrpc.HTTPError)
		if ok && httpErr.Code == http.StatusTooManyRequests {
			c.log.WithField("method", method).Warn("rate limited")
			return errRateLimited
		}
		if ok && httpErr.Code >= 500 {
			return errServiceError
		}
		return err
	}
	if rpcErr.Code == rateLimitedCode {
		c.log.WithField("method", method).Warn("rate limited")
		return errRateLimited
	}
	if rpcErr.Code >= 500 || rpcErr.Code == internalErrorCode || rpcErr.Code == nodeNotReadyCode {
		return errServiceError
	}

	return err
}

// accountInfoResult mirrors the node's account response. Byte fields are
// serialized as arrays of numbers.
type accountInfoResult struct {
	Owner        byteArray `json:"owner"`
	Data         byteArray `json:"data"`
	Utxo         string    `json:"utxo"`
	IsExecutable bool      `json:"is_executable"`
}

func (r *accountInfoResult) toAccountInfo() (*arch.AccountInfo, error) {
	owner, err := arch.PubkeyFromBytes(r.Owner)
	if err != nil {
		return nil, errors.Wrap(err, "invalid owner")
	}

	return &arch.AccountInfo{
		Data:       r.Data,
		Owner:      owner,
		Utxo:       r.Utxo,
		Executable: r.IsExecutable,
	}, nil
}

func (c *client) GetAccountInfo(ctx context.Context, account arch.Pubkey) (*arch.AccountInfo, error) {
	var result *accountInfoResult
	err := c.call(ctx, &result, methodReadAccountInfo, pubkeyParam(account))
	if err != nil {
		var rpcErr *jsonrpc.RPCError
		if errors.As(err, &rpcErr) && isAccountNotFound(rpcErr) {
			return nil, ErrAccountNotFound
		}
		return nil, errors.Wrap(err, "read_account_info() failed to send request")
	}
	if result == nil {
		return nil, ErrAccountNotFound
	}

	return result.toAccountInfo()
}

func (c *client) GetMultipleAccounts(ctx context.Context, accounts []arch.Pubkey) ([]*arch.AccountInfo, error) {
	if len(accounts) == 0 {
		return nil, nil
	}

	requests := make(jsonrpc.RPCRequests, len(accounts))
	for i, account := range accounts {
		requests[i] = jsonrpc.NewRequest(methodReadAccountInfo, pubkeyParam(account))
	}

	responses, err := c.callBatch(ctx, methodReadAccountInfo, requests)
	if err != nil {
		return nil, errors.Wrap(err, "read_account_info() batch failed to send request")
	}

	res := make([]*arch.AccountInfo, len(accounts))
	for i, account := range accounts {
		log := c.log.WithFields(logrus.Fields{
			"method":  "GetMultipleAccounts",
			"account": account.String(),
		})

		response, ok := responses[i]
		if !ok {
			log.Debug("no response for account")
			continue
		}
		if response.Error != nil {
			if !isAccountNotFound(response.Error) {
				log.WithError(response.Error).Debug("treating failed read as absent")
			}
			continue
		}

		var result *accountInfoResult
		if err := response.GetObject(&result); err != nil {
			return nil, errors.Wrapf(err, "invalid account info for %s", account)
		}
		if result == nil {
			continue
		}

		info, err := result.toAccountInfo()
		if err != nil {
			return nil, errors.Wrapf(err, "invalid account info for %s", account)
		}
		res[i] = info
	}
	return res, nil
}

func (c *client) GetBestBlockHash(ctx context.Context) (hash arch.Hash, err error) {
	var encoded string
	if err := c.call(ctx, &encoded, methodGetBestBlockHash); err != nil {
		return hash, errors.Wrap(err, "get_best_block_hash() failed to send request")
	}

	decoded, err := hex.DecodeString(encoded)
	if err != nil {
		return hash, errors.Wrap(err, "invalid hex encoded block hash")
	}
	if len(decoded) != arch.HashSize {
		return hash, errors.Errorf("invalid block hash length %d", len(decoded))
	}

	copy(hash[:], decoded)
	return hash, nil
}

func isAccountNotFound(err *jsonrpc.RPCError) bool {
	return err.Code == accountNotFoundCode || strings.Contains(strings.ToLower(err.Message), "not found")
}

// pubkeyParam encodes a key as the array of numbers the node expects. The
// jsonrpc client sends a lone slice argument as the params array itself.
func pubkeyParam(key arch.Pubkey) []int {
	res := make([]int, len(key))
	for i, b := range key {
		res[i] = int(b)
	}
	return res
}

// byteArray decodes either an array of numbers or a base64 string.
type byteArray []byte

func (b *byteArray) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return err
		}
		*b = decoded
		return nil
	}

	var numbers []int
	if err := json.Unmarshal(data, &numbers); err != nil {
		return err
	}
	values := make([]byte, len(numbers))
	for i, n := range numbers {
		if n < 0 || n > 255 {
			return errors.Errorf("byte value %d out of range", n)
		}
		values[i] = byte(n)
	}
	*b = values
	return nil
}
