// Package property implements the get-gradle-property and set-gradle-property commands.
package property
