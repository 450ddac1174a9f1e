// Package apiclient is the HTTP client every Rocket Fuel API call goes through.
//
// It applies the default headers, encodes and decodes JSON, and recovers
// from 401 Unauthorized by re-authenticating through an Authenticator and
// retrying, at most MaxReauthRetries times per request.
package apiclient
