// Package session holds the process-scoped handle shared by every command:
// the node client and the operator's signing identity. A Session is built
// once at startup and never mutated, so it is safe to share without locking.
package session

import (
	"fmt"

	solanasvc "github.com/brojonat/solterm/service/solana"
	"github.com/gagliardetto/solana-go"
)

// Session bundles the node-facing client with the operator's keypair.
type Session struct {
	client *solanasvc.Client
	signer solana.PrivateKey
	pubkey solana.PublicKey
}

// New creates a Session from an already-constructed client and signer.
func New(client *solanasvc.Client, signer solana.PrivateKey) *Session {
	return &Session{
		client: client,
		signer: signer,
		pubkey: signer.PublicKey(),
	}
}

// LoadSigner reads a Solana keygen-format keypair file (the JSON byte array
// written by solana-keygen).
func LoadSigner(path string) (solana.PrivateKey, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keypair from %s: %w", path, err)
	}
	return key, nil
}

// Pubkey returns the operator's public identity, used as the fee payer for
// every transaction this session submits.
func (s *Session) Pubkey() solana.PublicKey { return s.pubkey }

// Signer returns the operator's signing key.
func (s *Session) Signer() solana.PrivateKey { return s.signer }

// RPC returns the node client.
func (s *Session) RPC() *solanasvc.Client { return s.client }
