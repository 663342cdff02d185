// Package hash stores passwords as salted PBKDF2 digests in the
// "pbkdf2:<digest>:<iterations>$<salt>$<hex>" form, so hashes written by the
// previous Werkzeug-based service keep verifying.
package hash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 600000
	// ImplicitIterations applies to stored hashes without an iteration
	// count ("pbkdf2:sha256$salt$hex"): the Werkzeug 2.0-2.2 default.
	ImplicitIterations = 260000

	saltLength = 16
	saltChars  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	method     = "pbkdf2"
)

var ErrMalformedHash = errors.New("malformed password hash")

func digestFunc(name string) (func() hash.Hash, int, bool) {
	switch name {
	case "sha256":
		return sha256.New, sha256.Size, true
	case "sha512":
		return sha512.New, sha512.Size, true
	}
	return nil, 0, false
}

func genSalt() (string, error) {
	max := big.NewInt(int64(len(saltChars)))
	b := make([]byte, saltLength)
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = saltChars[n.Int64()]
	}
	return string(b), nil
}

// HashPassword derives a PBKDF2-SHA256 hash with a fresh 16-byte salt.
// A non-positive iterations value selects DefaultIterations.
func HashPassword(password string, iterations int) (string, error) {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	salt, err := genSalt()
	if err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}
	dk := pbkdf2.Key([]byte(password), []byte(salt), iterations, sha256.Size, sha256.New)
	return fmt.Sprintf("%s:sha256:%d$%s$%s", method, iterations, salt, hex.EncodeToString(dk)), nil
}

type parsed struct {
	digest     func() hash.Hash
	keyLen     int
	iterations int
	salt       string
	sum        []byte
}

func parse(encoded string) (*parsed, error) {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return nil, ErrMalformedHash
	}

	head := strings.Split(parts[0], ":")
	if len(head) < 2 || len(head) > 3 || head[0] != method {
		return nil, ErrMalformedHash
	}
	digest, keyLen, ok := digestFunc(head[1])
	if !ok {
		return nil, fmt.Errorf("%w: unsupported digest %q", ErrMalformedHash, head[1])
	}

	iterations := ImplicitIterations
	if len(head) == 3 {
		n, err := strconv.Atoi(head[2])
		if err != nil || n <= 0 {
			return nil, ErrMalformedHash
		}
		iterations = n
	}

	sum, err := hex.DecodeString(parts[2])
	if err != nil || len(sum) == 0 {
		return nil, ErrMalformedHash
	}

	return &parsed{digest: digest, keyLen: keyLen, iterations: iterations, salt: parts[1], sum: sum}, nil
}

// CheckPassword reports whether password matches the encoded hash. The
// comparison runs in constant time.
func CheckPassword(encoded, password string) bool {
	p, err := parse(encoded)
	if err != nil {
		return false
	}
	dk := pbkdf2.Key([]byte(password), []byte(p.salt), p.iterations, p.keyLen, p.digest)
	return subtle.ConstantTimeCompare(dk, p.sum) == 1
}
