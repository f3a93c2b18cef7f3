package cryptography

var CryptoHasher HashService = argonHasher{}
