package document

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/factcheck/internal/model"
)

// Fingerprint returns the hex SHA3-256 digest of the document's JSON
// encoding. Documents with the same content share a fingerprint.
func Fingerprint(info *model.Information) (string, error) {
	data, err := json.Marshal(info)
	if err != nil {
		return "", fmt.Errorf("failed to encode document: %w", err)
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
