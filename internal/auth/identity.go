package auth

// Identity is the authenticated caller as established by the token.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) Is(role string) bool {
	return i.Role == role
}
