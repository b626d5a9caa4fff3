package ledger

import (
	"fmt"
	"slices"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/remixrite/remix-ledger/internal/adapter"
)

const linkKeyPrefix = "ledger_link:"

// LinkFingerprint returns the stable pairing key of a derivative link.
// Parent order does not change the fingerprint.
func LinkFingerprint(canon adapter.Canonicalizer, assetID string, parentAssetIDs []string) (string, error) {
	parents := slices.Clone(parentAssetIDs)
	slices.Sort(parents)

	payload, err := canon.Canonicalize(struct {
		AssetID string   `json:"asset_id"`
		Parents []string `json:"parents"`
	}{AssetID: assetID, Parents: parents})
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize link: %w", err)
	}

	return crypto.Keccak256Hash(payload).Hex(), nil
}

// MetadataHash returns the keccak256 of the canonical metadata JSON
func MetadataHash(canon adapter.Canonicalizer, metadata Metadata) (string, error) {
	payload, err := canon.Canonicalize(metadata)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize metadata: %w", err)
	}
	return crypto.Keccak256Hash(payload).Hex(), nil
}

func linkKey(fingerprint string) string {
	return linkKeyPrefix + fingerprint
}
