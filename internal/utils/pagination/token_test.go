package pagination

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeCursor(t *testing.T) {
	// Single-field id cursor
	token := EncodeCursor("42")
	assert.NotEmpty(t, token, "Token should not be empty")

	fields, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, []string{"42"}, fields, "Fields should match after decode")

	// Date plus id cursor, the shape the transaction list uses
	timestampStr := time.Now().UTC().Format(time.RFC3339Nano)
	token = EncodeCursor(timestampStr, "42")

	fields, err = DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, 2, len(fields), "Should have decoded 2 fields")
	assert.Equal(t, timestampStr, fields[0], "Timestamp field should match")
	assert.Equal(t, "42", fields[1], "Id field should match")
}

func TestDecodeCursorError(t *testing.T) {
	_, err := DecodeCursor("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")
}

func TestEncodeCursorEmpty(t *testing.T) {
	token := EncodeCursor()
	fields, err := DecodeCursor(token)
	assert.NoError(t, err, "Decoding should not return an error")
	// Splitting an empty string yields a single empty field.
	assert.Equal(t, []string{""}, fields, "Should decode to slice with one empty string")
}
