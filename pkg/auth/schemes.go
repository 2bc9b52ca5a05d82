package auth

import (
	"fmt"
	"net/http"
)

// Scheme is one way of attaching an API token to a request. The fetcher tries
// the primary scheme first and walks the fallback list in order on a 401.
type Scheme struct {
	// Name labels the scheme in output rows and logs.
	Name string

	apply func(req *http.Request, token string)
}

// Apply sets the scheme's credential headers on the request.
func (s Scheme) Apply(req *http.Request, token string) {
	req.Header.Set("Content-Type", "application/json")
	s.apply(req, token)
}

// Primary returns the default Bearer-token scheme.
func Primary() Scheme {
	return Scheme{
		Name: "Bearer Token",
		apply: func(req *http.Request, token string) {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		},
	}
}

// Fallbacks returns the alternative credential schemes, in the fixed order
// they are tried after an authorization failure.
func Fallbacks() []Scheme {
	return []Scheme{
		{
			Name: "X-API-Key Header",
			apply: func(req *http.Request, token string) {
				req.Header.Set("X-API-Key", token)
			},
		},
		{
			Name: "Token Header",
			apply: func(req *http.Request, token string) {
				req.Header.Set("Authorization", fmt.Sprintf("Token %s", token))
			},
		},
		{
			Name: "Direct Token",
			apply: func(req *http.Request, token string) {
				req.Header.Set("Authorization", token)
			},
		},
	}
}
