package ports

// CookieSource is the document cookie store.
type CookieSource interface {
	// Cookie returns the flat "name=value; name2=value2" string.
	Cookie() string

	// SetCookie writes a single cookie, including its attributes.
	SetCookie(raw string)
}
