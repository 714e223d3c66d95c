// Package analysis computes consistency scores over recorded response
// batches using perceptual CIELUV color distances.
package analysis

import (
	"math"
	"strconv"
	"strings"
)

// D65 reference white.
var refWhite = [3]float64{0.95047, 1.00000, 1.08883}

// Luv is a color in CIELUV space.
type Luv struct {
	L, U, V float64
}

// Distance returns the Euclidean distance between two Luv colors.
func (c Luv) Distance(o Luv) float64 {
	dl := c.L - o.L
	du := c.U - o.U
	dv := c.V - o.V
	return math.Sqrt(dl*dl + du*du + dv*dv)
}

// srgbToLinear converts one sRGB channel in [0,1] to its linear value.
func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// RGBToLuv converts 8-bit sRGB channels to CIELUV via linear RGB and XYZ
// (sRGB / D65 matrix).
func RGBToLuv(r, g, b uint8) Luv {
	rl := srgbToLinear(float64(r) / 255.0)
	gl := srgbToLinear(float64(g) / 255.0)
	bl := srgbToLinear(float64(b) / 255.0)

	x := 0.4124564*rl + 0.3575761*gl + 0.1804375*bl
	y := 0.2126729*rl + 0.7151522*gl + 0.0721750*bl
	z := 0.0193339*rl + 0.1191920*gl + 0.9503041*bl

	return xyzToLuv(x, y, z)
}

func xyzToLuv(x, y, z float64) Luv {
	xn, yn, zn := refWhite[0], refWhite[1], refWhite[2]

	var up, vp float64
	if denom := x + 15*y + 3*z; denom != 0 {
		up = (4 * x) / denom
		vp = (9 * y) / denom
	}
	var upn, vpn float64
	if denomN := xn + 15*yn + 3*zn; denomN != 0 {
		upn = (4 * xn) / denomN
		vpn = (9 * yn) / denomN
	}

	yr := y / yn
	var l float64
	if yr > math.Pow(6.0/29.0, 3) {
		l = 116.0*math.Cbrt(yr) - 16.0
	} else {
		l = math.Pow(29.0/3.0, 3) * yr
	}

	return Luv{
		L: l,
		U: 13.0 * l * (up - upn),
		V: 13.0 * l * (vp - vpn),
	}
}

// ParseHex parses "#ff00aa", "ff00aa", or the shorthand "f0a" into RGB
// channels. ok is false for anything else.
func ParseHex(hex string) (r, g, b uint8, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, false
	}
	rv, err := strconv.ParseUint(s[0:2], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	gv, err := strconv.ParseUint(s[2:4], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	bv, err := strconv.ParseUint(s[4:6], 16, 8)
	if err != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}
