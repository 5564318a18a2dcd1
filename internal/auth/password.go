package auth

import "golang.org/x/crypto/bcrypt"

// dummyHash is a digest of an unguessable value, compared against when a login
// targets an unknown email so both failure paths cost a bcrypt verification.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// HashPassword hashes a plaintext password with the configured cost. The salt
// is generated per call and embedded in the digest.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value in constant time.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// CompareDummy burns a bcrypt verification against a fixed digest. Always fails.
func CompareDummy(plain string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plain))
}
