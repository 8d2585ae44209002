package plot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// defaultCycle is the tab10 palette.
var defaultCycle = []drawing.Color{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

var tabNames = []string{"blue", "orange", "green", "red", "purple", "brown", "pink", "gray", "olive", "cyan"}

var namedColors = map[string]drawing.Color{
	"b":       {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"g":       {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"r":       {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"c":       {R: 0x00, G: 0xbf, B: 0xbf, A: 0xff},
	"m":       {R: 0xbf, G: 0x00, B: 0xbf, A: 0xff},
	"y":       {R: 0xbf, G: 0xbf, B: 0x00, A: 0xff},
	"k":       {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"w":       {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"blue":    {R: 0x00, G: 0x00, B: 0xff, A: 0xff},
	"green":   {R: 0x00, G: 0x80, B: 0x00, A: 0xff},
	"red":     {R: 0xff, G: 0x00, B: 0x00, A: 0xff},
	"cyan":    {R: 0x00, G: 0xff, B: 0xff, A: 0xff},
	"magenta": {R: 0xff, G: 0x00, B: 0xff, A: 0xff},
	"yellow":  {R: 0xff, G: 0xff, B: 0x00, A: 0xff},
	"black":   {R: 0x00, G: 0x00, B: 0x00, A: 0xff},
	"white":   {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	"orange":  {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
	"purple":  {R: 0x80, G: 0x00, B: 0x80, A: 0xff},
	"brown":   {R: 0xa5, G: 0x2a, B: 0x2a, A: 0xff},
	"pink":    {R: 0xff, G: 0xc0, B: 0xcb, A: 0xff},
	"gray":    {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"grey":    {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	"olive":   {R: 0x80, G: 0x80, B: 0x00, A: 0xff},
	"navy":    {R: 0x00, G: 0x00, B: 0x80, A: 0xff},
	"teal":    {R: 0x00, G: 0x80, B: 0x80, A: 0xff},
	"lime":    {R: 0x00, G: 0xff, B: 0x00, A: 0xff},
}

// DefaultColor returns the i-th color of the default cycle.
func DefaultColor(i int) drawing.Color {
	if i < 0 {
		i = -i
	}
	return defaultCycle[i%len(defaultCycle)]
}

// ParseColor resolves a color name. Accepted forms are single-letter codes
// (b g r c m y k w), cycle references C0 through C9, tab:<name>, common color
// names, and #rgb or #rrggbb hex.
func ParseColor(name string) (drawing.Color, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return drawing.Color{}, fmt.Errorf("empty color name")
	}
	if c, ok := namedColors[key]; ok {
		return c, nil
	}
	if strings.HasPrefix(key, "#") {
		return parseHex(key)
	}
	if len(key) == 2 && key[0] == 'c' && key[1] >= '0' && key[1] <= '9' {
		return defaultCycle[key[1]-'0'], nil
	}
	if tab, ok := strings.CutPrefix(key, "tab:"); ok {
		for i, n := range tabNames {
			if n == tab || (tab == "grey" && n == "gray") {
				return defaultCycle[i], nil
			}
		}
	}
	return drawing.Color{}, fmt.Errorf("unknown color %q", name)
}

func parseHex(key string) (drawing.Color, error) {
	hex := strings.TrimPrefix(key, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return drawing.Color{}, fmt.Errorf("invalid hex color %q", key)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return drawing.Color{}, fmt.Errorf("invalid hex color %q", key)
	}
	return drawing.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
