package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonorRefEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		ref    DonorRef
		stored int64
	}{
		{"resolved donor keeps its user id", ResolvedDonor(1234), 1234},
		{"caged donor", CagedDonorRef(), -1},
		{"queued donor", QueuedDonorRef(), -2},
		{"unknown donor", UnknownDonor(), UnknownDonorID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.stored, tt.ref.Encode())
			assert.Equal(t, tt.ref, DecodeDonorRef(tt.stored))
		})
	}
}

func TestDonorRefPredicates(t *testing.T) {
	assert.True(t, ResolvedDonor(1234).IsResolved())
	assert.False(t, ResolvedDonor(1234).IsPending())

	assert.True(t, CagedDonorRef().IsPending())
	assert.True(t, QueuedDonorRef().IsPending())
	assert.False(t, UnknownDonor().IsPending())
	assert.False(t, UnknownDonor().IsResolved())
}
