package hal

// LCDWidth is the number of characters per line on the 16x2 panels
const LCDWidth = 16

// Progress bar glyphs as rendered by the session engine
const (
	FilledCell = '█'
	EmptyCell  = '░'
)

// HD44780 character ROM codes
const (
	lcdFullBlock = 0xFF
	lcdEmpty     = '-'
	lcdUnknown   = '?'
)

// LCDText converts a line to HD44780 character codes, padded or cut to width.
// Bar glyphs map to the ROM full block; other non-ASCII runes become '?'.
func LCDText(line string, width int) []byte {
	out := make([]byte, 0, width)
	for _, r := range line {
		if len(out) == width {
			break
		}
		switch {
		case r == FilledCell:
			out = append(out, lcdFullBlock)
		case r == EmptyCell:
			out = append(out, lcdEmpty)
		case r >= 0x20 && r < 0x7F:
			out = append(out, byte(r))
		default:
			out = append(out, lcdUnknown)
		}
	}
	for len(out) < width {
		out = append(out, ' ')
	}
	return out
}
