package utils

import "golang.org/x/crypto/bcrypt"

// maxPasswordBytes is the bcrypt input bound. Bytes beyond it never reach the
// hash, so they cannot contribute to the digest. HashPassword and
// VerifyPassword apply the same cut so the pair stays consistent.
const maxPasswordBytes = 72

func truncatePassword(plain string) []byte {
	b := []byte(plain)
	if len(b) > maxPasswordBytes {
		b = b[:maxPasswordBytes]
	}
	return b
}

// HashPassword returns a salted bcrypt hash using the given cost.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncatePassword(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash against a plain password. A mismatch
// is (false, nil). Any other failure means the stored digest itself is
// unusable (wrong format, unknown version) and must not be reported to the
// client as bad credentials.
func VerifyPassword(hash, plain string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(plain))
	if err == nil {
		return true, nil
	}
	if err == bcrypt.ErrMismatchedHashAndPassword {
		return false, nil
	}
	return false, err
}
