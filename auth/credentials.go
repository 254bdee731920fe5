package auth

import (
	"encoding/base64"
	"net/http"
	"strings"
)

const basicScheme = "basic"

// Credentials is the identifier/secret pair carried by a Basic Authorization header
type Credentials struct {
	Name     string
	Password string
}

// ExtractCredentials parses an Authorization header value of the form
// "Basic base64(name:password)". The second return value is false when the
// header is empty, uses another scheme, or is malformed.
func ExtractCredentials(header string) (Credentials, bool) {
	scheme, encoded, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || strings.ToLower(scheme) != basicScheme {
		return Credentials{}, false
	}

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return Credentials{}, false
	}

	// The password may itself contain ':'
	name, password, found := strings.Cut(string(decoded), ":")
	if !found {
		return Credentials{}, false
	}

	return Credentials{Name: name, Password: password}, true
}

// CredentialsFromRequest extracts Basic credentials from r's Authorization header
func CredentialsFromRequest(r *http.Request) (Credentials, bool) {
	return ExtractCredentials(r.Header.Get("Authorization"))
}
