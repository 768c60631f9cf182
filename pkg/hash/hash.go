package hash

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt ignores everything after 72 bytes and newer versions refuse
// longer inputs outright, so passwords are cut to that limit first.
const maxPasswordBytes = 72

// sanitize truncates the password to maxPasswordBytes. If the cut lands
// inside a multi-byte rune the trailing partial bytes are dropped, so two
// passwords that agree on their first 72 bytes hash identically.
func sanitize(password string) []byte {
	b := []byte(password)
	if len(b) <= maxPasswordBytes {
		return b
	}
	b = b[:maxPasswordBytes]
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.Valid(b[i:]) {
				b = b[:i]
			}
			break
		}
	}
	return b
}

func HashPassword(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword(sanitize(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), sanitize(password)) == nil
}
