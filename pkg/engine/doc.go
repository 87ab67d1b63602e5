// Package engine talks to the remote coil calculation service. It never
// performs a calculation itself: requests are built by package coil and the
// responses are handed to package results untouched.
package engine
