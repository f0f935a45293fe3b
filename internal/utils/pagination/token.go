package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeCursor packs cursor fields into an opaque base64 token. List
// endpoints hand this back as nextToken; the fields are whatever keyset
// the repository orders by, for example an id or a date plus an id.
func EncodeCursor(fields ...string) string {
	return base64.StdEncoding.EncodeToString([]byte(strings.Join(fields, "|")))
}

// DecodeCursor unpacks a token back into its cursor fields.
func DecodeCursor(token string) ([]string, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}
	return strings.Split(string(decoded), "|"), nil
}
