package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/jimiolaniyan/microboard/internal/fault"
)

const minPasswordLength = 4

type Account struct {
	ID ID `json:"accountId"`
	Credentials
}

type ID int

//Credentials holds the account's sensitive information
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

var (
	ErrInvalidUsername    = fmt.Errorf("%w: username cannot be blank", fault.InvalidInput)
	ErrInvalidPassword    = fmt.Errorf("%w: password must be at least %d characters long", fault.InvalidInput, minPasswordLength)
	ErrExistingUsername   = fmt.Errorf("%w: username already exists", fault.Conflict)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", fault.Unauthorized)
	ErrNotFound           = fmt.Errorf("%w: account not found", fault.NotFound)
)

//NewAccount validates username and password and returns a new Account if
// arguments are valid. The username is kept as supplied.
func NewAccount(username, password string) (*Account, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrInvalidUsername
	}

	if utf8.RuneCountInString(password) < minPasswordLength {
		return nil, ErrInvalidPassword
	}

	return &Account{Credentials: Credentials{Username: username, Password: password}}, nil
}

// CredentialScheme decides how passwords are kept at rest and how a claimed
// password is checked against the kept value.
type CredentialScheme interface {
	Seal(password string) (string, error)
	Verify(claimed, stored string) bool
}

// PlainText keeps passwords as supplied and compares them exactly.
type PlainText struct{}

func (PlainText) Seal(password string) (string, error) { return password, nil }

func (PlainText) Verify(claimed, stored string) bool { return claimed == stored }

// Bcrypt keeps bcrypt hashes of the SHA-256 digest of the password, so
// passwords longer than bcrypt's 72 byte input limit are accepted whole. A
// zero Cost uses bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Seal(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(prehash(password), cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func (Bcrypt) Verify(claimed, stored string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(stored), prehash(claimed))
	return err == nil
}

// prehash is base64 encoded so the bcrypt input never holds NUL bytes.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// SchemeByName resolves the configured credentials scheme.
func SchemeByName(name string) (CredentialScheme, error) {
	switch name {
	case "", "plain":
		return PlainText{}, nil
	case "bcrypt":
		return Bcrypt{}, nil
	default:
		return nil, fmt.Errorf("unknown credentials scheme %q", name)
	}
}
