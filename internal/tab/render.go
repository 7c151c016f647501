package tab

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/genaforvena/bass-taber/internal/types"
)

// Layout defaults. A 3-column slot fits two fret digits plus a separating
// dash; 200 columns matches common terminal-unfriendly but printer-friendly
// tab sheets.
const (
	DefaultSpacing  = 3
	DefaultMaxWidth = 200

	fillChar  = '-'
	labelSep  = "|"
	lineBreak = "\n"
)

// Render lays the fret assignments onto four fixed-width text lines and
// segments them into blocks of at most maxWidth columns. Each time step
// occupies a spacing-wide slot on all four lines; played steps carry the fret
// digits left-justified and dash-padded on their string's line. Lines are
// labeled G, D, A, E from highest to lowest pitch, and segments are separated
// by a blank line.
//
// spacing below 3 or a non-positive maxWidth is a caller error; nothing is
// rendered.
func Render(positions []Position, spacing, maxWidth int) (string, error) {
	if maxWidth <= 0 {
		return "", fmt.Errorf("%w: max width must be positive, got %d", types.ErrInvalidConfig, maxWidth)
	}
	if spacing < DefaultSpacing {
		return "", fmt.Errorf("%w: spacing must be at least %d, got %d", types.ErrInvalidConfig, DefaultSpacing, spacing)
	}

	var bufs [NumStrings][]byte
	for _, pos := range positions {
		for s := range bufs {
			for i := 0; i < spacing; i++ {
				bufs[s] = append(bufs[s], fillChar)
			}
		}
		if !pos.Played {
			continue
		}
		slot := bufs[pos.String][len(bufs[pos.String])-spacing:]
		copy(slot, fretToken(pos.Fret, spacing))
	}

	total := len(bufs[0])
	var lines []string
	for start := 0; start < total; start += maxWidth {
		end := start + maxWidth
		if end > total {
			end = total
		}
		// Display order is high string first.
		for s := NumStrings - 1; s >= 0; s-- {
			lines = append(lines, StringNames[s]+labelSep+string(bufs[s][start:end]))
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, lineBreak), nil
}

// fretToken renders a fret number as a spacing-wide, dash-padded token.
// Numbers wider than the slot are truncated by the padding rule; with
// spacing >= 3 and frets capped at 24 this never loses digits.
func fretToken(fret, spacing int) []byte {
	token := make([]byte, spacing)
	digits := strconv.Itoa(fret)
	if len(digits) > spacing {
		digits = digits[:spacing]
	}
	copy(token, digits)
	for i := len(digits); i < spacing; i++ {
		token[i] = fillChar
	}
	return token
}
