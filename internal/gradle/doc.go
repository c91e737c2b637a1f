// Package gradle reads and rewrites single properties of a Gradle build file.
//
// The build file is treated as plain text. A property is the first line that
// looks like `key = "value" // comment` (the equals sign, quotes and comment
// are optional). Only the value is ever changed; everything else in the file
// is kept byte for byte.
package gradle
