package colorspace

import "math"

// D65 reference white (2° observer).
const (
	WhiteX = 0.95047
	WhiteY = 1.00000
	WhiteZ = 1.08883
)

// Lab companding thresholds.
const (
	labEpsilon = 6.0 / 29.0
	labDelta3  = labEpsilon * labEpsilon * labEpsilon // (6/29)^3
)

// gamutSlack absorbs float noise when deciding whether a linear channel
// escaped [0,1].
const gamutSlack = 1e-9

// rgbToXYZMatrix is the sRGB (D65) to XYZ matrix.
var rgbToXYZMatrix = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// xyzToRGBMatrix is the exact inverse of rgbToXYZMatrix, so that
// LabToRGB(RGBToLab(c)) == c for every in-gamut c.
var xyzToRGBMatrix = invert3(rgbToXYZMatrix)

// SRGBChannelToLinear decodes an 8-bit sRGB channel to linear light in [0,1].
func SRGBChannelToLinear(u uint8) float64 {
	c := float64(u) / 255
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// LinearChannelToSRGB encodes linear light to an 8-bit sRGB channel.
// The input is clamped to [0,1] first.
func LinearChannelToSRGB(v float64) uint8 {
	v = clampUnit(v)
	return uint8(math.Round(companded(v) * 255))
}

// companded applies the sRGB transfer function to v in [0,1].
func companded(v float64) float64 {
	if v <= 0.0031308 {
		return 12.92 * v
	}
	return 1.055*math.Pow(v, 1/2.4) - 0.055
}

// RGBToXYZ converts an sRGB color to XYZ.
func RGBToXYZ(c RGB) XYZ {
	r := SRGBChannelToLinear(c.R)
	g := SRGBChannelToLinear(c.G)
	b := SRGBChannelToLinear(c.B)
	m := rgbToXYZMatrix
	return XYZ{
		X: m[0][0]*r + m[0][1]*g + m[0][2]*b,
		Y: m[1][0]*r + m[1][1]*g + m[1][2]*b,
		Z: m[2][0]*r + m[2][1]*g + m[2][2]*b,
	}
}

// xyzToLinear applies the inverse matrix without clamping.
func xyzToLinear(v XYZ) (r, g, b float64) {
	m := xyzToRGBMatrix
	r = m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z
	g = m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z
	b = m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z
	return r, g, b
}

// XYZToRGB converts XYZ to sRGB. Linear values are clamped to [0,1]
// before companding, so the result is always a valid color.
func XYZToRGB(v XYZ) RGB {
	r, g, b := xyzToLinear(v)
	return RGB{
		R: LinearChannelToSRGB(r),
		G: LinearChannelToSRGB(g),
		B: LinearChannelToSRGB(b),
	}
}

// labF is the forward Lab companding function.
func labF(t float64) float64 {
	if t > labDelta3 {
		return math.Cbrt(t)
	}
	return t*(29.0/6.0)*(29.0/6.0)/3 + 4.0/29.0
}

// labFInv is the inverse of labF.
func labFInv(t float64) float64 {
	if t > labEpsilon {
		return t * t * t
	}
	return 3 * labEpsilon * labEpsilon * (t - 4.0/29.0)
}

// XYZToLab converts XYZ to CIE Lab relative to D65.
func XYZToLab(v XYZ) Lab {
	fx := labF(v.X / WhiteX)
	fy := labF(v.Y / WhiteY)
	fz := labF(v.Z / WhiteZ)
	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToXYZ converts CIE Lab back to XYZ.
func LabToXYZ(l Lab) XYZ {
	fy := (l.L + 16) / 116
	fx := fy + l.A/500
	fz := fy - l.B/200
	return XYZ{
		X: WhiteX * labFInv(fx),
		Y: WhiteY * labFInv(fy),
		Z: WhiteZ * labFInv(fz),
	}
}

// RGBToLab converts sRGB to Lab through XYZ.
func RGBToLab(c RGB) Lab {
	return XYZToLab(RGBToXYZ(c))
}

// LabToRGB converts Lab to sRGB through XYZ, clamping out-of-gamut values.
func LabToRGB(l Lab) RGB {
	return XYZToRGB(LabToXYZ(l))
}

// LabToRGBInGamut converts Lab to sRGB and reports whether the point lies
// inside the sRGB gamut. The returned color is the clamped conversion
// either way.
func LabToRGBInGamut(l Lab) (RGB, bool) {
	r, g, b := xyzToLinear(LabToXYZ(l))
	ok := inUnit(r) && inUnit(g) && inUnit(b)
	return RGB{
		R: LinearChannelToSRGB(r),
		G: LinearChannelToSRGB(g),
		B: LinearChannelToSRGB(b),
	}, ok
}

// DeltaE76 is the CIE 1976 color difference: Euclidean distance in Lab.
func DeltaE76(a, b Lab) float64 {
	dL := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dL*dL + da*da + db*db)
}

// DeltaERGB is DeltaE76 between the Lab images of two sRGB colors.
func DeltaERGB(a, b RGB) float64 {
	return DeltaE76(RGBToLab(a), RGBToLab(b))
}

func inUnit(v float64) bool {
	return !math.IsNaN(v) && v >= -gamutSlack && v <= 1+gamutSlack
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// invert3 returns the inverse of a non-singular 3x3 matrix.
func invert3(m [3][3]float64) [3][3]float64 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]

	A := e*i - f*h
	B := -(d*i - f*g)
	C := d*h - e*g
	det := a*A + b*B + c*C

	return [3][3]float64{
		{A / det, -(b*i - c*h) / det, (b*f - c*e) / det},
		{B / det, (a*i - c*g) / det, -(a*f - c*d) / det},
		{C / det, -(a*h - b*g) / det, (a*e - b*d) / det},
	}
}
