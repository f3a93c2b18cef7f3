package cryptography

type HashService interface {
	HashString(data string, salt []byte) ([]byte, error)
	VerifyHashData(hash string, data string) bool
}
