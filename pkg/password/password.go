package password

import "golang.org/x/crypto/bcrypt"

// Hash genera un hash bcrypt del password en texto plano.
// El hash resultante es lo único que se persiste; el texto plano nunca sale del proceso.
func Hash(plain string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify compara un password en texto plano contra su hash bcrypt.
// Falla cerrado: cualquier error del primitivo (hash malformado, mismatch)
// se reporta como no-coincidencia en lugar de propagarse.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
