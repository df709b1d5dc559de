package metadata

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/cache"
)

// AccountReader fetches accounts in request order. A nil entry means the
// account does not exist.
type AccountReader interface {
	GetMultipleAccounts(ctx context.Context, keys []arch.Pubkey) ([]*arch.AccountInfo, error)
}

// Reader fetches and decodes metadata and attributes accounts. Accounts that
// are missing, or not owned by the configured program, are reported as nil.
type Reader struct {
	log  *logrus.Entry
	conf *conf
	rpc  AccountReader

	// Derivation walks up to 256 bumps, so derived addresses are memoized.
	addresses cache.Cache[addressCacheKey, arch.Pubkey]
}

type addressCacheKey struct {
	prefix  string
	program arch.Pubkey
	mint    arch.Pubkey
}

func NewReader(rpc AccountReader, configProvider ConfigProvider) *Reader {
	conf := configProvider()
	return &Reader{
		log:       logrus.StandardLogger().WithField("type", "arch/metadata/reader"),
		conf:      conf,
		rpc:       rpc,
		addresses: cache.NewCache[addressCacheKey, arch.Pubkey](int(conf.addressCacheSize.Get(context.Background()))),
	}
}

func (r *Reader) GetTokenMetadata(ctx context.Context, mint arch.Pubkey) (*MetadataAccount, error) {
	res, err := r.GetTokenMetadataBatch(ctx, []arch.Pubkey{mint})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

func (r *Reader) GetTokenAttributes(ctx context.Context, mint arch.Pubkey) (*AttributesAccount, error) {
	res, err := r.GetTokenAttributesBatch(ctx, []arch.Pubkey{mint})
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

// GetTokenDetails reads the metadata and attributes of a mint in a single
// request.
func (r *Reader) GetTokenDetails(ctx context.Context, mint arch.Pubkey) (*MetadataAccount, *AttributesAccount, error) {
	program := r.conf.programId.Get(ctx)

	metadataAddress, err := r.deriveAddress(metadataSeedPrefix, program, mint)
	if err != nil {
		return nil, nil, err
	}
	attributesAddress, err := r.deriveAddress(attributesSeedPrefix, program, mint)
	if err != nil {
		return nil, nil, err
	}

	infos, err := r.getAccounts(ctx, []arch.Pubkey{metadataAddress, attributesAddress})
	if err != nil {
		return nil, nil, err
	}

	var metadata *MetadataAccount
	if r.isOwnedByProgram(infos[0], program) {
		metadata = &MetadataAccount{}
		if err := metadata.Unmarshal(infos[0].Data); err != nil {
			return nil, nil, errors.Wrapf(err, "error decoding metadata account %s", metadataAddress)
		}
	}

	var attributes *AttributesAccount
	if r.isOwnedByProgram(infos[1], program) {
		attributes = &AttributesAccount{}
		if err := attributes.Unmarshal(infos[1].Data); err != nil {
			return nil, nil, errors.Wrapf(err, "error decoding attributes account %s", attributesAddress)
		}
	}

	return metadata, attributes, nil
}

// GetTokenMetadataBatch returns one entry per mint, in order.
func (r *Reader) GetTokenMetadataBatch(ctx context.Context, mints []arch.Pubkey) ([]*MetadataAccount, error) {
	program := r.conf.programId.Get(ctx)

	addresses, err := r.deriveAll(metadataSeedPrefix, program, mints)
	if err != nil {
		return nil, err
	}

	infos, err := r.getAccounts(ctx, addresses)
	if err != nil {
		return nil, err
	}

	res := make([]*MetadataAccount, len(infos))
	for i, info := range infos {
		if !r.isOwnedByProgram(info, program) {
			continue
		}

		var account MetadataAccount
		if err := account.Unmarshal(info.Data); err != nil {
			return nil, errors.Wrapf(err, "error decoding metadata account %s", addresses[i])
		}
		res[i] = &account
	}
	return res, nil
}

// GetTokenAttributesBatch returns one entry per mint, in order.
func (r *Reader) GetTokenAttributesBatch(ctx context.Context, mints []arch.Pubkey) ([]*AttributesAccount, error) {
	program := r.conf.programId.Get(ctx)

	addresses, err := r.deriveAll(attributesSeedPrefix, program, mints)
	if err != nil {
		return nil, err
	}

	infos, err := r.getAccounts(ctx, addresses)
	if err != nil {
		return nil, err
	}

	res := make([]*AttributesAccount, len(infos))
	for i, info := range infos {
		if !r.isOwnedByProgram(info, program) {
			continue
		}

		var account AttributesAccount
		if err := account.Unmarshal(info.Data); err != nil {
			return nil, errors.Wrapf(err, "error decoding attributes account %s", addresses[i])
		}
		res[i] = &account
	}
	return res, nil
}

// getAccounts fetches keys in chunks of the configured batch size and checks
// that every chunk comes back with one entry per key.
func (r *Reader) getAccounts(ctx context.Context, keys []arch.Pubkey) ([]*arch.AccountInfo, error) {
	batchSize := int(r.conf.maxBatchSize.Get(ctx))
	if batchSize <= 0 {
		batchSize = len(keys)
	}

	res := make([]*arch.AccountInfo, 0, len(keys))
	for start := 0; start < len(keys); start += batchSize {
		end := start + batchSize
		if end > len(keys) {
			end = len(keys)
		}

		infos, err := r.rpc.GetMultipleAccounts(ctx, keys[start:end])
		if err != nil {
			return nil, errors.Wrap(err, "error getting accounts")
		}
		if len(infos) != end-start {
			return nil, errors.Errorf("account reader returned %d entries for %d keys", len(infos), end-start)
		}

		res = append(res, infos...)
	}
	return res, nil
}

func (r *Reader) isOwnedByProgram(info *arch.AccountInfo, program arch.Pubkey) bool {
	if info == nil {
		return false
	}
	if info.Owner != program {
		r.log.WithFields(logrus.Fields{
			"owner":   info.Owner.String(),
			"program": program.String(),
		}).Debug("ignoring account not owned by metadata program")
		return false
	}
	return true
}

func (r *Reader) deriveAll(prefix string, program arch.Pubkey, mints []arch.Pubkey) ([]arch.Pubkey, error) {
	res := make([]arch.Pubkey, len(mints))
	for i, mint := range mints {
		address, err := r.deriveAddress(prefix, program, mint)
		if err != nil {
			return nil, err
		}
		res[i] = address
	}
	return res, nil
}

func (r *Reader) deriveAddress(prefix string, program, mint arch.Pubkey) (arch.Pubkey, error) {
	key := addressCacheKey{
		prefix:  prefix,
		program: program,
		mint:    mint,
	}
	if address, ok := r.addresses.Retrieve(key); ok {
		return address, nil
	}

	address, _, err := deriveMintAddress(prefix, program, mint)
	if err != nil {
		return arch.Pubkey{}, errors.Wrapf(err, "error deriving address for mint %s", mint)
	}

	// A concurrent read may have cached the same derivation first.
	_ = r.addresses.Insert(key, address, 1)

	return address, nil
}
