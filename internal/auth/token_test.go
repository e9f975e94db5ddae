package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-catalog/internal/domain"
)

func TestNewManager_RequiresSecret(t *testing.T) {
	_, err := NewManager("  ", time.Hour)
	assert.Error(t, err)
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	user := &domain.User{ID: 42, Username: "alice"}
	token, err := m.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestVerify_IsIdempotent(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := m.Issue(&domain.User{ID: 7, Username: "bob"})
	require.NoError(t, err)

	first, err := m.Verify(token)
	require.NoError(t, err)
	second, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, first.Username, second.Username)
}

func TestVerify_Expired(t *testing.T) {
	m, err := NewManager("test-secret", -time.Minute)
	require.NoError(t, err)

	token, err := m.Issue(&domain.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	issuer, err := NewManager("correct-secret", time.Hour)
	require.NoError(t, err)
	verifier, err := NewManager("wrong-secret", time.Hour)
	require.NoError(t, err)

	token, err := issuer.Issue(&domain.User{ID: 1, Username: "alice"})
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	m, err := NewManager("test-secret", time.Hour)
	require.NoError(t, err)

	for _, token := range []string{"", "not-a-token", "still.not"} {
		_, err := m.Verify(token)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

func TestParseBearer(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"valid", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"lowercase scheme", "bearer abc", "abc", false},
		{"empty", "", "", true},
		{"no token", "Bearer ", "", true},
		{"wrong scheme", "Basic abc", "", true},
		{"bare token", "abc.def.ghi", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBearer(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
