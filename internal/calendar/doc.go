// Package calendar provides a client for the Google Calendar API.
//
// A Client is an authenticated session bound to a service account and an
// optional impersonated user. Each method performs exactly one API call and
// returns a wire-independent result type; failures are wrapped in
// *RequestError so callers can inspect the HTTP status of the remote
// response.
//
// Example usage:
//
//	creds, err := google.LoadCredentials("key.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	client, err := calendar.NewClient(ctx, creds, "user@example.com")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	events, err := client.ListEvents("primary", timeMin, timeMax)
package calendar
