package model

// SecretHasher produces and verifies opaque salted password hash records.
type SecretHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, saltedHash string) (bool, error)
}

// TokenGenerator produces unguessable credential artifacts from a secure
// random source.
type TokenGenerator interface {
	GenerateLoginToken() (string, error)
	GenerateResetCode() (string, error)
}
