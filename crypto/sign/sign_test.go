package sign

import "testing"

func TestVerifySignature(t *testing.T) {
	key, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}

	message := []byte("test message")
	sig := key.Sign(message)
	if len(sig) != SignatureSize {
		t.Fatal("Unexpected signature size", len(sig))
	}

	pk, ok := key.Public()
	if !ok {
		t.Fatal("Cannot derive public key")
	}

	if !pk.Verify(message, sig) {
		t.Error("Valid signature rejected")
	}

	wrongMessage := []byte("wrong message")
	if pk.Verify(wrongMessage, sig) {
		t.Error("Signature of different message accepted")
	}
}

func TestKeySizes(t *testing.T) {
	key, err := GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(key) != PrivateKeySize {
		t.Error("Private key must be", PrivateKeySize, "bytes, got", len(key))
	}
	pk, _ := key.Public()
	if len(pk) != PublicKeySize {
		t.Error("Public key must be", PublicKeySize, "bytes, got", len(pk))
	}
}
