// Package services holds the registration, login and station workflows that
// sit between the HTTP handlers and the repositories.
package services
