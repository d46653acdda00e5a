package outbound

type PasswordService interface {
	HashPassword(password string) (string, error)
	// VerifyPassword returns (false, nil) on mismatch; an error only for
	// malformed digests or empty input.
	VerifyPassword(password, hash string) (bool, error)
}
