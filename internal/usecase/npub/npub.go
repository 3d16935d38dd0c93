// Package npub converts x-only secp256k1 public keys between hex and their
// bech32 "npub" text form.
package npub

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/bech32"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/aalvaropc/nip05/internal/domain"
	"github.com/aalvaropc/nip05/internal/ports"
)

const (
	// HRP is the human-readable prefix of an encoded public key.
	HRP = "npub"

	// KeySize is the length of an x-only public key in bytes.
	KeySize = 32

	// maxLength is the BIP-173 limit on a whole bech32 string.
	maxLength = 90

	checksumLength = 6
)

// Encoder is the ports.KeyEncoder for npub strings.
type Encoder struct{}

var _ ports.KeyEncoder = Encoder{}

func (Encoder) Encode(publicKeyHex string) (string, error) {
	return Encode(publicKeyHex)
}

// Encode validates publicKeyHex as an on-curve x-only key and returns its
// npub encoding.
func Encode(publicKeyHex string) (string, error) {
	const op = "npub.encode"

	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return "", domain.NewOpError(op, domain.KindInvalidHex, err)
	}

	key, err := parseKey(raw)
	if err != nil {
		return "", domain.NewOpError(op, domain.KindInvalidPublicKey, err)
	}

	return EncodeBytes(key)
}

// EncodeBytes encodes an already validated 32-byte key.
func EncodeBytes(key []byte) (string, error) {
	const op = "npub.encode"

	words, err := bech32.ConvertBits(key, 8, 5, true)
	if err != nil {
		return "", domain.NewOpError(op, domain.KindEncoding, err)
	}

	if n := len(HRP) + 1 + len(words) + checksumLength; n > maxLength {
		return "", domain.NewOpError(op, domain.KindEncoding, fmt.Errorf("encoded length %d exceeds %d", n, maxLength))
	}

	out, err := bech32.Encode(HRP, words)
	if err != nil {
		return "", domain.NewOpError(op, domain.KindEncoding, err)
	}
	return out, nil
}

// Decode verifies the checksum and prefix of an npub string and returns the
// 32 key bytes.
func Decode(s string) ([]byte, error) {
	const op = "npub.decode"

	hrp, words, err := bech32.Decode(s)
	if err != nil {
		return nil, domain.NewOpError(op, domain.KindEncoding, err)
	}
	if hrp != HRP {
		return nil, domain.NewOpError(op, domain.KindEncoding, fmt.Errorf("prefix %q, want %q", hrp, HRP))
	}

	raw, err := bech32.ConvertBits(words, 5, 8, false)
	if err != nil {
		return nil, domain.NewOpError(op, domain.KindEncoding, err)
	}

	key, err := parseKey(raw)
	if err != nil {
		return nil, domain.NewOpError(op, domain.KindInvalidPublicKey, err)
	}
	return key, nil
}

// DecodeHex is Decode followed by lowercase hex encoding.
func DecodeHex(s string) (string, error) {
	key, err := Decode(s)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(key), nil
}

// parseKey lifts x to the point with even y, which rejects x >= p and x
// values with no point on the curve.
func parseKey(raw []byte) ([]byte, error) {
	if len(raw) != KeySize {
		return nil, fmt.Errorf("got %d bytes, want %d", len(raw), KeySize)
	}

	compressed := make([]byte, 0, KeySize+1)
	compressed = append(compressed, secp256k1.PubKeyFormatCompressedEven)
	compressed = append(compressed, raw...)
	if _, err := secp256k1.ParsePubKey(compressed); err != nil {
		return nil, err
	}

	key := make([]byte, KeySize)
	copy(key, raw)
	return key, nil
}
