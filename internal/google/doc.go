// Package google provides service account credential handling for Google APIs.
//
// Credentials are loaded from a service account key file, or from the
// GOOGLE_SERVICE_ACCOUNT_CREDENTIALS environment variable containing the
// base64-encoded key JSON. With domain-wide delegation enabled, the resulting
// token source can impersonate a user in the Workspace domain.
package google
