package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/borrowdesk/eventstore"
)

func Test_GetConsistencyLevel_DefaultsToStrong(t *testing.T) {
	assert.Equal(t, eventstore.StrongConsistency, eventstore.GetConsistencyLevel(t.Context()))
}

func Test_DefaultToEventualConsistency(t *testing.T) {
	testCases := []struct {
		name     string
		level    func(*testing.T) eventstore.ConsistencyLevel
		expected eventstore.ConsistencyLevel
	}{
		{
			name: "nothing set",
			level: func(t *testing.T) eventstore.ConsistencyLevel {
				return eventstore.GetConsistencyLevel(eventstore.DefaultToEventualConsistency(t.Context()))
			},
			expected: eventstore.EventualConsistency,
		},
		{
			name: "strong set explicitly",
			level: func(t *testing.T) eventstore.ConsistencyLevel {
				ctx := eventstore.WithStrongConsistency(t.Context())

				return eventstore.GetConsistencyLevel(eventstore.DefaultToEventualConsistency(ctx))
			},
			expected: eventstore.StrongConsistency,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.level(t))
			assert.Equal(t, tc.expected.String(), tc.level(t).String())
		})
	}
}
