package store

import (
	"encoding/json"
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/fortunesim/fortune-simulator-backend/internal/model"
)

// Exporter turns player snapshots into signed, encrypted tokens that
// can leave the server and be imported later. Tokens are fernet
// messages over the snapshot JSON, so a tampered or foreign token fails
// verification instead of producing garbage state.
type Exporter struct {
	key *fernet.Key
}

// NewExporter creates an Exporter from a base64 fernet key string.
func NewExporter(encodedKey string) (*Exporter, error) {
	key, err := fernet.DecodeKey(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode export key: %w", err)
	}
	return &Exporter{key: key}, nil
}

// GenerateExportKey creates a fresh base64 fernet key, for first-run setup.
func GenerateExportKey() (string, error) {
	var key fernet.Key
	if err := key.Generate(); err != nil {
		return "", fmt.Errorf("failed to generate export key: %w", err)
	}
	return key.Encode(), nil
}

// Export serializes the player and wraps it in a fernet token.
func (e *Exporter) Export(p *model.Player) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("failed to marshal player for export: %w", err)
	}

	token, err := fernet.EncryptAndSign(data, e.key)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt export token: %w", err)
	}

	return string(token), nil
}

// Import verifies a token and reconstructs the player it carries.
// Tokens do not expire; a ttl of 0 disables the age check.
func (e *Exporter) Import(token string) (*model.Player, error) {
	data := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{e.key})
	if data == nil {
		return nil, fmt.Errorf("export token failed verification")
	}

	return DecodeSnapshot(data)
}
