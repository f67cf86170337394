package session

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestScoreTokenRoundTrip(t *testing.T) {
	t.Parallel()

	token, err := IssueScoreToken(3, testSecret, time.Hour)
	require.NoError(t, err)

	assert.Equal(t, 3, ReadScoreToken(token, testSecret))
}

func TestReadScoreTokenFailsOpenToZero(t *testing.T) {
	t.Parallel()

	valid, err := IssueScoreToken(5, testSecret, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	require.Len(t, parts, 3)
	// Payload swapped for another token's payload, signature kept.
	other, err := IssueScoreToken(9000, testSecret, time.Hour)
	require.NoError(t, err)
	tampered := strings.Split(other, ".")[0] + "." + strings.Split(other, ".")[1] + "." + parts[2]

	expired, err := IssueScoreToken(5, testSecret, -time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name  string
		value string
	}{
		{name: "missing", value: ""},
		{name: "garbage", value: "not-a-token"},
		{name: "tampered payload", value: tampered},
		{name: "wrong secret", value: mustIssue(t, 5, "other-secret")},
		{name: "expired", value: expired},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, 0, ReadScoreToken(tt.value, testSecret))
		})
	}
}

func mustIssue(t *testing.T, score int, secret string) string {
	t.Helper()
	token, err := IssueScoreToken(score, secret, time.Hour)
	require.NoError(t, err)
	return token
}
