package password

import "golang.org/x/crypto/bcrypt"

// hashCost is the bcrypt work factor, fixed so hashes stay comparable
// across deployments.
const hashCost = 10

// Hash computes a salted adaptive hash over the UTF-8 bytes of plain.
// Every call draws a fresh salt, so hashing the same plaintext twice
// yields different byte sequences.
func Hash(plain string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plain), hashCost)
}

// Compare reports whether plain matches hash, regardless of which salt the
// hash was created with.
func Compare(hash []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(plain))
}
