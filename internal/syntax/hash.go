package syntax

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainItem   = "asmethod/item/v1"
	DomainOutput = "asmethod/output/v1"
)

// expansionNamespace is the UUID namespace for name-based expansion IDs.
var expansionNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/roach88/asmethod"))

// hashWithDomain computes SHA-256 with domain separation:
// SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ExpansionID returns a name-based (version 5) UUID for one invocation. The
// same attribute text and item text always yield the same ID.
func ExpansionID(attr, item string) (string, error) {
	canonical, err := MarshalCanonical(map[string]any{
		"attr": attr,
		"item": item,
	})
	if err != nil {
		return "", fmt.Errorf("ExpansionID: failed to marshal: %w", err)
	}
	digest := hashWithDomain(DomainItem, canonical)
	return uuid.NewSHA1(expansionNamespace, []byte(digest)).String(), nil
}

// OutputDigest is the hex SHA-256 of emitted code, used to compare runs.
func OutputDigest(output string) string {
	return hashWithDomain(DomainOutput, []byte(output))
}
