package jwt

import (
	"github.com/go-jose/go-jose/v4"
)

type KeyPair struct {
	Public  jose.JSONWebKey
	Private jose.JSONWebKey
}

const (
	keyAlgorithm      = jose.ECDH_ES_A256KW
	contentEncryption = jose.A256GCM
	signatureAlgoritm = jose.EdDSA
)

// DefaultKeyPath is where the JWK files are read from when no path is configured.
const DefaultKeyPath string = "keys"
