package primitives

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
)

// ComputeVersion returns config.Version when set, else a content hash of
// the handlers: the first 8 bytes of SHA256 over their JSON encoding. The
// root ID is not part of the hash, so equal gesture sets on different roots
// share a version.
func ComputeVersion(config *RootConfig) string {
	if config.Version != "" {
		return config.Version
	}
	data, err := json.Marshal(config.Handlers)
	if err != nil {
		return "invalid"
	}
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash[:8])
}
