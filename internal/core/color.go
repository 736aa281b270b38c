package core

// Color is a foreground color for a screen cell, expressed as an xterm
// 256-color palette index. Index 0 is reserved for the terminal default;
// use ColorBlack for black.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault     Color = 0
	ColorRed         Color = 1
	ColorGreen       Color = 2
	ColorDarkGreen   Color = 22
	ColorBrightWhite Color = 15
	ColorBlack       Color = 16
	ColorGold        Color = 220
	ColorOrange      Color = 208
	ColorGray        Color = 245
)

// RGBToColor maps an 8-bit RGB triple onto the nearest entry of the
// 6x6x6 color cube of the xterm palette.
func RGBToColor(r, g, b uint8) Color {
	level := func(v uint8) int {
		if v < 48 {
			return 0
		}
		if v < 115 {
			return 1
		}
		return int(v-35) / 40
	}
	return Color(16 + 36*level(r) + 6*level(g) + level(b))
}
