package qrterm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ANSI background colors and the two-character module cell.
const (
	Dark   = "\x1b[40m"
	Light  = "\x1b[107m"
	Reset  = "\x1b[49m"
	Spacer = "  "
)

// errEmptyContent is returned when there is nothing to encode.
var errEmptyContent = errors.New("encode qr code: empty content")

// Level is the error correction used for terminal codes. Low keeps the grid
// small enough for an ordinary terminal window.
const Level = qrcode.Low

// Grid encodes content and returns its module matrix without a quiet zone.
// The matrix is square; true marks a dark module.
func Grid(content string) ([][]bool, error) {
	if content == "" {
		return nil, errEmptyContent
	}

	code, err := qrcode.New(content, Level)
	if err != nil {
		return nil, fmt.Errorf("encode qr code: %w", err)
	}

	code.DisableBorder = true

	return code.Bitmap(), nil
}

// Render writes content as a QR code to w, surrounded by a one-module light border.
func Render(w io.Writer, content string) error {
	grid, err := Grid(content)
	if err != nil {
		return err
	}

	out := bufio.NewWriter(w)
	border := Light + strings.Repeat(Spacer, len(grid)+2) + Reset + "\n"

	_, _ = out.WriteString(border)

	for _, row := range grid {
		_, _ = out.WriteString(Light + Spacer)

		for _, dark := range row {
			if dark {
				_, _ = out.WriteString(Dark + Spacer)
			} else {
				_, _ = out.WriteString(Light + Spacer)
			}
		}

		_, _ = out.WriteString(Light + Spacer + Reset + "\n")
	}

	_, _ = out.WriteString(border)

	return out.Flush()
}
