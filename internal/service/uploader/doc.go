// Package uploader sends a mobile build to the BOWL backend and reports
// where it can be installed from.
//
// Client wraps the single multipart endpoint. Run is the command entry point:
// it validates options, uploads once, publishes the links to the lane context
// and prints a QR code of the install URL.
package uploader
