package mdstore

import (
	"encoding/base64"
	"strconv"
)

// encodeOffset/decodeOffset give the facade's in-memory by-context
// pagination (GetArtifactsByContext, GetExecutionsByContext) the same
// opaque-token shape as the Access Object's own listing tokens,
// without either side needing to interpret the other's encoding.
func encodeOffset(offset int) string {
	return base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(offset)))
}

func decodeOffset(token string) int {
	if token == "" {
		return 0
	}
	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
