package google

// DefaultScopes are the Google API scopes requested for service account
// token sources. Calendar access is the only scope the tools need; widening
// this list requires updating the domain-wide delegation grant as well.
var DefaultScopes = []string{
	"https://www.googleapis.com/auth/calendar",
}
