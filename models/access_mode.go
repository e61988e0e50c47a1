package models

// AccessMode is the visibility policy of a published form.
type AccessMode string

const (
	AccessPublic   AccessMode = "public"   // anyone with the link
	AccessPrivate  AccessMode = "private"  // any authenticated account
	AccessPassword AccessMode = "password" // shared secret
)

// ParseAccessMode maps a mode path segment to its AccessMode. The second
// return value is false for anything outside the closed set.
func ParseAccessMode(s string) (AccessMode, bool) {
	switch AccessMode(s) {
	case AccessPublic, AccessPrivate, AccessPassword:
		return AccessMode(s), true
	}
	return "", false
}

func (m AccessMode) String() string {
	return string(m)
}
