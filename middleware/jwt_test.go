package middleware

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-jwt-secret-32bytes-padded!!"

func TestGenerateToken_Valid(t *testing.T) {
	tok, err := GenerateToken(uuid.New(), testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
}

func TestGenerateToken_UniquePerCall(t *testing.T) {
	id := uuid.New()

	// Two tokens for the same user in the same second must differ, or a
	// refresh would revoke the session it just issued.
	first, err := GenerateToken(id, testSecret, time.Hour)
	require.NoError(t, err)
	second, err := GenerateToken(id, testSecret, time.Hour)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	claims, err := ParseToken(second, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestParseToken_Valid(t *testing.T) {
	id := uuid.New()
	tok, err := GenerateToken(id, testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, id.String(), claims.UserID)
}

func TestParseToken_WrongSecret(t *testing.T) {
	tok, err := GenerateToken(uuid.New(), testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(tok, "wrong-secret")
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	tok, err := GenerateToken(uuid.New(), testSecret, -time.Second)
	require.NoError(t, err)

	_, err = ParseToken(tok, testSecret)
	assert.Error(t, err)
}

func TestParseToken_Malformed(t *testing.T) {
	_, err := ParseToken("not.a.jwt", testSecret)
	assert.Error(t, err)
}

func TestParseToken_Empty(t *testing.T) {
	_, err := ParseToken("", testSecret)
	assert.Error(t, err)
}

func TestGenerateToken_DifferentUsers(t *testing.T) {
	id1, id2 := uuid.New(), uuid.New()
	t1, _ := GenerateToken(id1, testSecret, time.Hour)
	t2, _ := GenerateToken(id2, testSecret, time.Hour)
	assert.NotEqual(t, t1, t2)

	c1, _ := ParseToken(t1, testSecret)
	c2, _ := ParseToken(t2, testSecret)
	assert.Equal(t, id1.String(), c1.UserID)
	assert.Equal(t, id2.String(), c2.UserID)
}
