// Package lane implements the shared result context exchanged with the
// calling automation.
//
// The context is a flat map of named slots persisted as YAML. Upload reads
// the artifact paths produced by earlier build steps from it and publishes
// the install URL and version link back into it.
package lane
