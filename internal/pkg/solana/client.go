// Package solana submits escrow settlement instructions (release, refund,
// expire-offer) to the on-chain program and waits for network confirmation.
//
// The client is deliberately decoupled from the ledger: it knows nothing about
// transaction status. Every method is a single best-effort attempt that
// returns the confirmed signature and true, or "" and false on any failure
// (build, submit, rejection, confirmation timeout). Callers must treat a false
// result as "not yet settled, retry later" - a submission can land on-chain
// even when the confirmation read times out, so the program itself is the
// final idempotency guard.
package solana

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/google/uuid"

	"github.com/forgebay/escrow/internal/pkg/logger"
	"github.com/forgebay/escrow/internal/pkg/models"
)

// PDA seed prefixes used by the escrow program
const (
	seedConfig = "config"
	seedEscrow = "escrow"
	seedOffer  = "offer"
)

// Client talks to the escrow program over JSON-RPC
type Client struct {
	rpc       *rpc.Client
	programID solana.PublicKey
	authority solana.PrivateKey
	cfg       models.SolanaConfig
	logger    *logger.ZapLogger
	enabled   bool
}

// NewClient creates a settlement client. When the program ID or RPC endpoint
// is unset the client is disabled: every submission reports not-settled and
// callers fall back to their no-chain path (e.g. offers expire without a
// refund instruction).
func NewClient(cfg models.SolanaConfig, zapLogger *logger.ZapLogger) (*Client, error) {
	if cfg.ProgramID == "" || cfg.RPCEndpoint == "" {
		zapLogger.Warn("On-chain settlement is not configured; settlement calls are disabled")
		return &Client{cfg: cfg, logger: zapLogger}, nil
	}

	programID, err := solana.PublicKeyFromBase58(cfg.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid escrow program ID: %w", err)
	}

	authority, err := solana.PrivateKeyFromBase58(cfg.AuthorityKey)
	if err != nil {
		return nil, fmt.Errorf("invalid authority key: %w", err)
	}

	return &Client{
		rpc:       rpc.New(cfg.RPCEndpoint),
		programID: programID,
		authority: authority,
		cfg:       cfg,
		logger:    zapLogger,
		enabled:   true,
	}, nil
}

// Enabled reports whether on-chain settlement is configured
func (c *Client) Enabled() bool {
	return c.enabled
}

// ReleaseEscrow releases the escrowed sale funds to the seller
func (c *Client) ReleaseEscrow(ctx context.Context, listingID, buyerID uuid.UUID, sellerWallet string) (string, bool) {
	return c.submitEscrowInstruction(ctx, "release_escrow", listingID, buyerID, sellerWallet, 0)
}

// RefundEscrow refunds the escrowed sale funds to the buyer
func (c *Client) RefundEscrow(ctx context.Context, listingID, buyerID uuid.UUID, buyerWallet string) (string, bool) {
	return c.submitEscrowInstruction(ctx, "refund_escrow", listingID, buyerID, buyerWallet, 0)
}

// RefundPartnerDeposit refunds one partner's deposit from the escrow account
func (c *Client) RefundPartnerDeposit(ctx context.Context, listingID, buyerID uuid.UUID, partnerWallet string, lamports int64) (string, bool) {
	return c.submitEscrowInstruction(ctx, "refund_partner_deposit", listingID, buyerID, partnerWallet, lamports)
}

// ExpireOffer closes an expired offer account and refunds the bid to the buyer
func (c *Client) ExpireOffer(ctx context.Context, offerID uuid.UUID, buyerWallet string) (string, bool) {
	if !c.enabled {
		return "", false
	}

	receiver, err := solana.PublicKeyFromBase58(buyerWallet)
	if err != nil {
		c.logger.Error("Invalid receiver wallet for offer expiry",
			logger.String("offer_id", offerID.String()),
			logger.Err(err))
		return "", false
	}

	offerPDA, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedOffer), offerID[:]},
		c.programID,
	)
	if err != nil {
		c.logger.Error("Failed to derive offer PDA", logger.Err(err))
		return "", false
	}

	data := instructionData("expire_offer", offerID[:])
	accounts := solana.AccountMetaSlice{
		solana.Meta(c.configPDA()).WRITE(),
		solana.Meta(offerPDA).WRITE(),
		solana.Meta(receiver).WRITE(),
		solana.Meta(c.authority.PublicKey()).SIGNER(),
	}

	return c.submit(ctx, "expire_offer", accounts, data)
}

func (c *Client) submitEscrowInstruction(ctx context.Context, name string, listingID, buyerID uuid.UUID, receiverWallet string, lamports int64) (string, bool) {
	if !c.enabled {
		return "", false
	}

	receiver, err := solana.PublicKeyFromBase58(receiverWallet)
	if err != nil {
		c.logger.Error("Invalid receiver wallet for settlement",
			logger.String("instruction", name),
			logger.Err(err))
		return "", false
	}

	escrowPDA, _, err := solana.FindProgramAddress(
		[][]byte{[]byte(seedEscrow), listingID[:], buyerID[:]},
		c.programID,
	)
	if err != nil {
		c.logger.Error("Failed to derive escrow PDA", logger.Err(err))
		return "", false
	}

	args := make([]byte, 0, 40)
	args = append(args, listingID[:]...)
	args = append(args, buyerID[:]...)
	if lamports > 0 {
		amount := make([]byte, 8)
		binary.LittleEndian.PutUint64(amount, uint64(lamports))
		args = append(args, amount...)
	}

	accounts := solana.AccountMetaSlice{
		solana.Meta(c.configPDA()),
		solana.Meta(escrowPDA).WRITE(),
		solana.Meta(receiver).WRITE(),
		solana.Meta(c.authority.PublicKey()).SIGNER(),
	}

	return c.submit(ctx, name, accounts, instructionData(name, args))
}

// submit signs and sends one instruction and blocks until the network confirms
// it or the bounded wait elapses.
func (c *Client) submit(ctx context.Context, name string, accounts solana.AccountMetaSlice, data []byte) (string, bool) {
	recent, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		c.logger.Error("Failed to fetch recent blockhash",
			logger.String("instruction", name),
			logger.Err(err))
		return "", false
	}

	instruction := solana.NewInstruction(c.programID, accounts, data)
	tx, err := solana.NewTransaction(
		[]solana.Instruction{instruction},
		recent.Value.Blockhash,
		solana.TransactionPayer(c.authority.PublicKey()),
	)
	if err != nil {
		c.logger.Error("Failed to build settlement transaction",
			logger.String("instruction", name),
			logger.Err(err))
		return "", false
	}

	_, err = tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(c.authority.PublicKey()) {
			return &c.authority
		}
		return nil
	})
	if err != nil {
		c.logger.Error("Failed to sign settlement transaction",
			logger.String("instruction", name),
			logger.Err(err))
		return "", false
	}

	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       c.cfg.SkipPreflight,
		PreflightCommitment: rpc.CommitmentProcessed,
	})
	if err != nil {
		c.logger.Error("Settlement submission rejected",
			logger.String("instruction", name),
			logger.Err(err))
		return "", false
	}

	if !c.awaitConfirmation(ctx, sig) {
		c.logger.Warn("Settlement confirmation timed out; leaving record for a later pass",
			logger.String("instruction", name),
			logger.String("signature", sig.String()))
		return "", false
	}

	c.logger.Info("Settlement confirmed",
		logger.String("instruction", name),
		logger.String("signature", sig.String()))
	return sig.String(), true
}

// awaitConfirmation polls signature status until the network confirms or
// rejects the transaction, bounded by the configured timeout.
func (c *Client) awaitConfirmation(ctx context.Context, sig solana.Signature) bool {
	timeout := time.Duration(c.cfg.ConfirmTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	poll := time.Duration(c.cfg.ConfirmPollSec) * time.Second
	if poll <= 0 {
		poll = 2 * time.Second
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
			if err != nil {
				continue
			}
			if len(out.Value) == 0 || out.Value[0] == nil {
				continue
			}
			status := out.Value[0]
			if status.Err != nil {
				c.logger.Error("Settlement transaction failed on-chain",
					logger.String("signature", sig.String()),
					logger.Any("chain_error", status.Err))
				return false
			}
			switch status.ConfirmationStatus {
			case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
				return true
			}
		}
	}
}

func (c *Client) configPDA() solana.PublicKey {
	pda, _, err := solana.FindProgramAddress([][]byte{[]byte(seedConfig)}, c.programID)
	if err != nil {
		// Only possible with a pathological program ID; caught at startup in practice.
		panic(fmt.Sprintf("failed to derive config PDA: %v", err))
	}
	return pda
}

// instructionData prefixes the 8-byte anchor discriminator for the named
// instruction to its argument bytes.
func instructionData(name string, args []byte) []byte {
	sum := sha256.Sum256([]byte("global:" + name))
	return append(sum[:8], args...)
}
