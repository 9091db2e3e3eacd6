package service

// Identity is the acting user of a use-case. Callers currently claim it by
// username alone; no session or token backs the claim.
type Identity struct {
	Username string
}

// ClaimIdentity builds an Identity from a client-supplied username.
func ClaimIdentity(username string) Identity {
	return Identity{Username: username}
}

func (i Identity) valid() bool {
	return i.Username != ""
}
