// Package qrterm prints QR codes to a terminal as a grid of colored blocks.
package qrterm
