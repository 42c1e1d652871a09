package auth

import "testing"

func TestHashPasswordRoundTrip(t *testing.T) {
	const senha = "SenhaSecreta123!"
	hash, err := HashPassword(senha)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == senha {
		t.Fatal("hash não pode ser igual ao texto plano")
	}
	if !CheckPassword(hash, senha) {
		t.Error("senha correta deveria conferir")
	}
	if CheckPassword(hash, "outra") {
		t.Error("senha errada não deveria conferir")
	}

	// dois hashes da mesma senha diferem (salt por hash)
	outro, err := HashPassword(senha)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if outro == hash {
		t.Error("hashes repetidos indicam salt fixo")
	}
}
