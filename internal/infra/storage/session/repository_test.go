package session

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"exclusion violation", &pq.Error{Code: pgExclusionViolation, Message: "conflicting key value violates exclusion constraint"}, ErrSlotNotAvailable},
		{"unique violation", &pq.Error{Code: pgUniqueViolation}, ErrSlotNotAvailable},
		{"serialization failure", &pq.Error{Code: pgSerializationFailure}, ErrConcurrentModification},
		{"other pq error", &pq.Error{Code: "42P01"}, ErrExecQuery},
		{"plain error", errors.New("connection reset"), ErrExecQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classify(tc.err, "Create"), tc.want)
		})
	}
}

func TestStatusStrings(t *testing.T) {
	assert.Equal(t, []string{"scheduled", "live"}, statusStrings(domain.ActiveStatuses))
}

func TestNullString(t *testing.T) {
	assert.False(t, nullString("").Valid)
	assert.True(t, nullString("client-1").Valid)
}
