package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewAccount(t *testing.T) {
	tests := []struct {
		username, password string
		wantErr            error
		wantAcc            *Account
	}{
		{wantErr: ErrInvalidUsername},
		{username: "   ", password: "password", wantErr: ErrInvalidUsername},
		{username: "\t\n", password: "password", wantErr: ErrInvalidUsername},
		{username: "user", wantErr: ErrInvalidPassword},
		{username: "user", password: "abc", wantErr: ErrInvalidPassword},
		{username: "user", password: "äöü", wantErr: ErrInvalidPassword},
		{username: "user", password: "abcd", wantAcc: &Account{Credentials: Credentials{"user", "abcd"}}},
		{username: " user ", password: "äöüß", wantAcc: &Account{Credentials: Credentials{" user ", "äöüß"}}},
	}

	for _, tt := range tests {
		acc, err := NewAccount(tt.username, tt.password)
		assert.Equal(t, tt.wantErr, err)
		assert.Equal(t, tt.wantAcc, acc)
	}
}

func TestPlainText(t *testing.T) {
	var s PlainText

	sealed, err := s.Seal("secret")
	require.NoError(t, err)
	assert.Equal(t, "secret", sealed)

	assert.True(t, s.Verify("secret", sealed))
	assert.False(t, s.Verify("Secret", sealed))
	assert.False(t, s.Verify("secret ", sealed))
	assert.False(t, s.Verify("", sealed))
}

func TestBcrypt(t *testing.T) {
	s := Bcrypt{Cost: bcrypt.MinCost}

	sealed, err := s.Seal("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", sealed)

	assert.True(t, s.Verify("secret", sealed))
	assert.False(t, s.Verify("secret2", sealed))
	assert.False(t, s.Verify("secret", "secret"))
}

func TestBcryptAcceptsLongPasswords(t *testing.T) {
	s := Bcrypt{Cost: bcrypt.MinCost}
	long := strings.Repeat("a", 100)

	sealed, err := s.Seal(long)
	require.NoError(t, err)

	assert.True(t, s.Verify(long, sealed))
	// differs only after byte 72
	assert.False(t, s.Verify(strings.Repeat("a", 99)+"b", sealed))
}

func TestSchemeByName(t *testing.T) {
	s, err := SchemeByName("")
	require.NoError(t, err)
	assert.Equal(t, PlainText{}, s)

	s, err = SchemeByName("bcrypt")
	require.NoError(t, err)
	assert.Equal(t, Bcrypt{}, s)

	_, err = SchemeByName("md5")
	assert.Error(t, err)
}
