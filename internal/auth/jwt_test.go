package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mriera/bloglist-backend/internal/apperr"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("64b5fc2e8f1b2c3d4e5f6071")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	uid, err := tm.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "64b5fc2e8f1b2c3d4e5f6071", uid)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue("someone")
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b").Verify(token)
	require.ErrorIs(t, err, apperr.ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c"} {
		_, err := tm.Verify(tok)
		require.ErrorIs(t, err, apperr.ErrMalformedToken, "token %q", tok)
	}
}

func TestVerifyMissingUserID(t *testing.T) {
	tm := NewTokenManager("test-secret")

	// A structurally valid token signed with the right secret but no
	// uid claim must not verify.
	token, err := tm.Issue("")
	require.NoError(t, err)

	_, err = tm.Verify(token)
	require.ErrorIs(t, err, apperr.ErrMalformedToken)
}
