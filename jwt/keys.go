package jwt

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-jose/go-jose/v4"
)

// Keys signs and encrypts access tokens. Tokens are EdDSA-signed JWTs wrapped
// in an ECDH-ES+A256KW / A256GCM JWE.
type Keys struct {
	Signing    KeyPair
	Encryption KeyPair
	signer     jose.Signer
	encrypter  jose.Encrypter
}

func NewKeys(signing KeyPair, encryption KeyPair) (*Keys, error) {
	sig, err := jose.NewSigner(
		jose.SigningKey{Algorithm: signatureAlgoritm, Key: &signing.Private},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("Could not create signer: %w", err)
	}

	enc, err := jose.NewEncrypter(
		contentEncryption,
		jose.Recipient{Algorithm: keyAlgorithm, Key: &encryption.Public},
		(&jose.EncrypterOptions{}).WithType("JWE"),
	)
	if err != nil {
		return nil, fmt.Errorf("Could not create encrypter: %w", err)
	}

	return &Keys{
		Signing:    signing,
		Encryption: encryption,
		signer:     sig,
		encrypter:  enc,
	}, nil
}

// LoadKeys reads signing-{public,private}.json and encryption-{public,private}.json from dir.
func LoadKeys(dir string) (*Keys, error) {
	signing, err := readKeyPair(dir, "signing")
	if err != nil {
		return nil, err
	}

	encryption, err := readKeyPair(dir, "encryption")
	if err != nil {
		return nil, err
	}

	return NewKeys(signing, encryption)
}

// GenerateKeys creates a fresh random key set.
func GenerateKeys() (*Keys, error) {
	sigPub, sigKey, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("Could not generate signing key: %w", err)
	}

	encKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("Could not generate encryption key: %w", err)
	}

	signing := KeyPair{
		Public:  jose.JSONWebKey{Key: sigPub, Algorithm: string(signatureAlgoritm), Use: "sig"},
		Private: jose.JSONWebKey{Key: sigKey, Algorithm: string(signatureAlgoritm), Use: "sig"},
	}

	encryption := KeyPair{
		Public:  jose.JSONWebKey{Key: &encKey.PublicKey, Algorithm: string(keyAlgorithm), Use: "enc"},
		Private: jose.JSONWebKey{Key: encKey, Algorithm: string(keyAlgorithm), Use: "enc"},
	}

	return NewKeys(signing, encryption)
}

// Save writes the key set in the layout expected by LoadKeys.
func (k *Keys) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("Could not create key directory: %w", err)
	}

	files := map[string]jose.JSONWebKey{
		"signing-public.json":     k.Signing.Public,
		"signing-private.json":    k.Signing.Private,
		"encryption-public.json":  k.Encryption.Public,
		"encryption-private.json": k.Encryption.Private,
	}

	for name, key := range files {
		raw, err := json.Marshal(key)
		if err != nil {
			return fmt.Errorf("Could not encode %s: %w", name, err)
		}

		if err := os.WriteFile(filepath.Join(dir, name), raw, 0o600); err != nil {
			return fmt.Errorf("Could not write %s: %w", name, err)
		}
	}

	return nil
}

func readKeyPair(dir string, kind string) (KeyPair, error) {
	pub, err := readKey(filepath.Clean(filepath.Join(dir, kind+"-public.json")))
	if err != nil {
		return KeyPair{}, err
	}

	key, err := readKey(filepath.Clean(filepath.Join(dir, kind+"-private.json")))
	if err != nil {
		return KeyPair{}, err
	}

	return KeyPair{Public: pub, Private: key}, nil
}

func readKey(path string) (jose.JSONWebKey, error) {
	jwk := jose.JSONWebKey{}

	buf, err := os.ReadFile(path)
	if err != nil {
		return jwk, fmt.Errorf("Could not read key %s: %w", path, err)
	}

	if err := json.Unmarshal(buf, &jwk); err != nil {
		return jwk, fmt.Errorf("Could not decode key %s: %w", path, err)
	}

	return jwk, nil
}
