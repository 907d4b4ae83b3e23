// internal/blockchain/solbc/client.go
package solbc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/solana-lock/internal/blockchain"
)

// Client – тонкий адаптер для взаимодействия с блокчейном Solana через solana-go.
type Client struct {
	rpc        *rpc.Client
	url        string
	commitment rpc.CommitmentType
	logger     *zap.Logger
}

// NewClient создаёт новый клиент, принимая RPC URL и логгер через dependency injection.
func NewClient(rpcURL string, commitment rpc.CommitmentType, logger *zap.Logger) *Client {
	if commitment == "" {
		commitment = rpc.CommitmentConfirmed
	}
	return &Client{
		rpc:        rpc.New(rpcURL),
		url:        rpcURL,
		commitment: commitment,
		logger:     logger.Named("solbc-client"),
	}
}

func (c *Client) wrap(method string, err error) error {
	return &Error{Err: err, NodeURL: c.url, Method: method}
}

// GetAccountData возвращает сырые данные аккаунта.
func (c *Client) GetAccountData(ctx context.Context, address solana.PublicKey) ([]byte, error) {
	result, err := c.rpc.GetAccountInfoWithOpts(ctx, address, &rpc.GetAccountInfoOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	})
	if err != nil {
		if errors.Is(err, rpc.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", blockchain.ErrAccountNotFound, address)
		}
		c.logger.Debug("GetAccountInfo error",
			zap.String("pubkey", address.String()),
			zap.Error(err))
		return nil, c.wrap("getAccountInfo", err)
	}
	if result == nil || result.Value == nil {
		return nil, fmt.Errorf("%w: %s", blockchain.ErrAccountNotFound, address)
	}
	return result.Value.Data.GetBinary(), nil
}

// GetProgramAccounts получает все аккаунты программы с фильтрами
func (c *Client) GetProgramAccounts(
	ctx context.Context,
	program solana.PublicKey,
	filters ...blockchain.Filter,
) ([]blockchain.ProgramAccount, error) {
	opts := rpc.GetProgramAccountsOpts{
		Commitment: c.commitment,
		Encoding:   solana.EncodingBase64,
	}
	for _, f := range filters {
		if len(f.Bytes) > 0 {
			opts.Filters = append(opts.Filters, rpc.RPCFilter{
				Memcmp: &rpc.RPCFilterMemcmp{
					Offset: f.Offset,
					Bytes:  f.Bytes,
				},
			})
			continue
		}
		opts.Filters = append(opts.Filters, rpc.RPCFilter{DataSize: f.DataSize})
	}

	accounts, err := c.rpc.GetProgramAccountsWithOpts(ctx, program, &opts)
	if err != nil {
		c.logger.Debug("GetProgramAccounts error",
			zap.String("program_id", program.String()),
			zap.Error(err))
		return nil, c.wrap("getProgramAccounts", err)
	}

	out := make([]blockchain.ProgramAccount, 0, len(accounts))
	for _, acc := range accounts {
		if acc == nil || acc.Account == nil {
			continue
		}
		out = append(out, blockchain.ProgramAccount{
			Address: acc.Pubkey,
			Data:    acc.Account.Data.GetBinary(),
		})
	}
	return out, nil
}

// GetLatestBlockhash получает последний blockhash.
func (c *Client) GetLatestBlockhash(ctx context.Context) (solana.Hash, error) {
	result, err := c.rpc.GetLatestBlockhash(ctx, c.commitment)
	if err != nil {
		c.logger.Error("GetLatestBlockhash error", zap.Error(err))
		return solana.Hash{}, c.wrap("getLatestBlockhash", err)
	}
	return result.Value.Blockhash, nil
}

// SendTransaction отправляет транзакцию с заданными опциями.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction, opts blockchain.TransactionOptions) (solana.Signature, error) {
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       opts.SkipPreflight,
		PreflightCommitment: c.commitment,
	})
	if err != nil {
		if pe := analyzeSendError(err); pe != nil {
			c.logger.Warn("Anchor error detected",
				zap.Int("number", pe.Number),
				zap.String("code", pe.Code),
				zap.String("message", pe.Message))
			return solana.Signature{}, c.wrap("sendTransaction", pe)
		}
		c.logger.Error("SendTransaction error", zap.Error(err))
		return solana.Signature{}, c.wrap("sendTransaction", err)
	}
	return sig, nil
}

// WaitForConfirmation опрашивает статус подписи, пока транзакция не достигнет
// уровня commitment клиента, не упадёт или не истечёт timeout.
func (c *Client) WaitForConfirmation(ctx context.Context, signature solana.Signature, timeout time.Duration) error {
	logger := c.logger.With(zap.String("signature", signature.String()))

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 400 * time.Millisecond
	policy.MaxInterval = 4 * time.Second

	op := func() (struct{}, error) {
		statuses, err := c.rpc.GetSignatureStatuses(ctx, false, signature)
		if err != nil {
			logger.Debug("GetSignatureStatuses error", zap.Error(err))
			return struct{}{}, err
		}
		if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
			return struct{}{}, errNotConfirmed
		}
		status := statuses.Value[0]
		if status.Err != nil {
			return struct{}{}, backoff.Permanent(fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err))
		}
		if reached(status.ConfirmationStatus, c.commitment) {
			return struct{}{}, nil
		}
		return struct{}{}, errNotConfirmed
	}

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(policy),
		backoff.WithMaxElapsedTime(timeout))
	if err != nil {
		if errors.Is(err, ErrTransactionFailed) || ctx.Err() != nil {
			return err
		}
		return fmt.Errorf("%w after %s: %v", ErrConfirmationTimeout, timeout, err)
	}
	logger.Debug("Transaction confirmed")
	return nil
}

func reached(status rpc.ConfirmationStatusType, want rpc.CommitmentType) bool {
	switch status {
	case rpc.ConfirmationStatusFinalized:
		return true
	case rpc.ConfirmationStatusConfirmed:
		return want != rpc.CommitmentFinalized
	case rpc.ConfirmationStatusProcessed:
		return want == rpc.CommitmentProcessed
	}
	return false
}

// Гарантируем, что Client реализует интерфейс blockchain.Client.
var _ blockchain.Client = (*Client)(nil)
