package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVerifyPassword(t *testing.T) {
	encoded, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := VerifyPassword("s3cret", encoded)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = VerifyPassword("wrong", encoded)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	for _, enc := range []string{"", "plain", "$bcrypt$whatever", "$argon2id$v=19$m=bad$x$y"} {
		_, err := VerifyPassword("pw", enc)
		require.ErrorIs(t, err, ErrMalformedHash)
	}
}
