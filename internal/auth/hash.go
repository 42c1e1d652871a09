package auth

import "golang.org/x/crypto/bcrypt"

// Custo 12: ~250ms por hash, suficiente contra força bruta offline sem
// atravancar o limite de requisições das rotas de credencial.
const bcryptCost = 12

func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	return string(b), err
}

// CheckPassword compara em tempo constante; nunca expõe o motivo da falha.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
