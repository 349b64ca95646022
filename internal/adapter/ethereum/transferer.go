package ethereum

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"crowdfund/internal/config/configs"
	"crowdfund/internal/core/domain"
)

// Backend is the subset of *ethclient.Client needed to send value.
type Backend interface {
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
}

// Transferer pays payouts out of a hot wallet as native ETH transfers. It
// implements port.Transferer and is safe for concurrent use.
type Transferer struct {
	backend  Backend
	key      *ecdsa.PrivateKey
	from     common.Address
	signer   types.Signer
	chainID  *big.Int
	gasLimit uint64

	mu        sync.Mutex
	nextNonce *uint64
}

// Dial connects to the node at cfg.RPCURL.
func Dial(ctx context.Context, cfg configs.Chain) (*ethclient.Client, error) {
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ethereum client: %w", err)
	}
	return client, nil
}

// NewTransferer parses the wallet key from cfg and returns a transferer
// sending through backend.
func NewTransferer(backend Backend, cfg configs.Chain) (*Transferer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}
	chainID := big.NewInt(cfg.ChainID)
	return &Transferer{
		backend:  backend,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		signer:   types.LatestSignerForChainID(chainID),
		chainID:  chainID,
		gasLimit: cfg.GasLimit,
	}, nil
}

// From returns the paying account.
func (t *Transferer) From() common.Address {
	return t.from
}

// Transfer signs and submits a dynamic fee transaction moving p.Amount wei
// to p.Recipient and returns its hash. The fee cap allows the base fee to
// double before the transaction stalls.
func (t *Transferer) Transfer(ctx context.Context, p domain.Payout) (string, error) {
	if !p.Amount.IsPositive() || !p.Amount.IsInteger() {
		return "", fmt.Errorf("transfer %s: %w", p.ID, domain.ErrInvalidAmount)
	}

	tip, err := t.backend.SuggestGasTipCap(ctx)
	if err != nil {
		return "", fmt.Errorf("suggest gas tip: %w", err)
	}
	head, err := t.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("latest header: %w", err)
	}
	feeCap := new(big.Int).Set(tip)
	if head.BaseFee != nil {
		feeCap.Add(feeCap, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
	}

	// Nonces are handed out under the lock so concurrent workers never
	// reuse one.
	t.mu.Lock()
	defer t.mu.Unlock()

	nonce, err := t.nonce(ctx)
	if err != nil {
		return "", err
	}
	to := p.Recipient
	tx, err := types.SignTx(types.NewTx(&types.DynamicFeeTx{
		ChainID:   t.chainID,
		Nonce:     nonce,
		GasTipCap: tip,
		GasFeeCap: feeCap,
		Gas:       t.gasLimit,
		To:        &to,
		Value:     p.Amount.BigInt(),
	}), t.signer, t.key)
	if err != nil {
		return "", fmt.Errorf("sign transfer %s: %w", p.ID, err)
	}
	if err = t.backend.SendTransaction(ctx, tx); err != nil {
		// the node may have seen a different nonce; ask again next time
		t.nextNonce = nil
		return "", fmt.Errorf("send transfer %s: %w", p.ID, err)
	}
	next := nonce + 1
	t.nextNonce = &next
	return tx.Hash().Hex(), nil
}

func (t *Transferer) nonce(ctx context.Context) (uint64, error) {
	pending, err := t.backend.PendingNonceAt(ctx, t.from)
	if err != nil {
		return 0, fmt.Errorf("pending nonce: %w", err)
	}
	if t.nextNonce != nil && *t.nextNonce > pending {
		return *t.nextNonce, nil
	}
	return pending, nil
}
