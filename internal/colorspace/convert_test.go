package colorspace

import (
	"math"
	"testing"
)

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestRGBToLabReferenceVectors(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want Lab
	}{
		{"black", RGB{0, 0, 0}, Lab{0, 0, 0}},
		{"white", RGB{255, 255, 255}, Lab{100, 0, 0}},
		{"red", RGB{255, 0, 0}, Lab{53.24, 80.09, 67.20}},
		{"green", RGB{0, 255, 0}, Lab{87.73, -86.18, 83.18}},
		{"blue", RGB{0, 0, 255}, Lab{32.30, 79.19, -107.86}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := RGBToLab(tc.in)
			if !approx(got.L, tc.want.L, 0.5) || !approx(got.A, tc.want.A, 0.5) || !approx(got.B, tc.want.B, 0.5) {
				t.Errorf("RGBToLab(%v) = %v, want ~%v", tc.in, got, tc.want)
			}
		})
	}
}

func TestLabRoundTripExact(t *testing.T) {
	// Every 5th value per channel plus the extremes covers both companding
	// branches of sRGB and Lab.
	values := []int{0, 1, 2, 3, 4, 10, 11, 254, 255}
	for v := 0; v <= 255; v += 5 {
		values = append(values, v)
	}

	for _, r := range values {
		for _, g := range values {
			for _, b := range values {
				c := NewRGB(r, g, b)
				if got := LabToRGB(RGBToLab(c)); got != c {
					t.Fatalf("LabToRGB(RGBToLab(%v)) = %v", c, got)
				}
			}
		}
	}
}

func TestGrayRampRoundTrip(t *testing.T) {
	for v := 0; v <= 255; v++ {
		c := NewRGB(v, v, v)
		got, ok := LabToRGBInGamut(RGBToLab(c))
		if !ok {
			t.Errorf("gray %d reported out of gamut", v)
		}
		if got != c {
			t.Errorf("gray %d round trip = %v", v, got)
		}
	}
}

func TestXYZRoundTrip(t *testing.T) {
	c := RGB{12, 200, 99}
	xyz := RGBToXYZ(c)
	lab := XYZToLab(xyz)
	back := LabToXYZ(lab)

	if !approx(xyz.X, back.X, 1e-12) || !approx(xyz.Y, back.Y, 1e-12) || !approx(xyz.Z, back.Z, 1e-12) {
		t.Errorf("LabToXYZ(XYZToLab(%v)) = %v", xyz, back)
	}
	if got := XYZToRGB(xyz); got != c {
		t.Errorf("XYZToRGB(RGBToXYZ(%v)) = %v", c, got)
	}
}

func TestChannelCompanding(t *testing.T) {
	tests := []struct {
		in   uint8
		want float64
	}{
		{0, 0},
		{10, 10.0 / 255 / 12.92}, // linear branch
		{255, 1},
		{128, 0.2158605},
	}

	for _, tc := range tests {
		got := SRGBChannelToLinear(tc.in)
		if !approx(got, tc.want, 1e-6) {
			t.Errorf("SRGBChannelToLinear(%d) = %f, want %f", tc.in, got, tc.want)
		}
		if back := LinearChannelToSRGB(got); back != tc.in {
			t.Errorf("LinearChannelToSRGB(%f) = %d, want %d", got, back, tc.in)
		}
	}
}

func TestLinearChannelClamps(t *testing.T) {
	if got := LinearChannelToSRGB(-0.5); got != 0 {
		t.Errorf("LinearChannelToSRGB(-0.5) = %d, want 0", got)
	}
	if got := LinearChannelToSRGB(1.7); got != 255 {
		t.Errorf("LinearChannelToSRGB(1.7) = %d, want 255", got)
	}
	if got := LinearChannelToSRGB(math.NaN()); got != 0 {
		t.Errorf("LinearChannelToSRGB(NaN) = %d, want 0", got)
	}
}

func TestLabToRGBInGamut(t *testing.T) {
	red := RGBToLab(RGB{255, 0, 0})

	if _, ok := LabToRGBInGamut(red); !ok {
		t.Error("pure red should be in gamut")
	}

	// Pushing red further along +a leaves the sRGB gamut.
	out, ok := LabToRGBInGamut(red.Offset(0, 40, 0))
	if ok {
		t.Error("over-saturated red should be out of gamut")
	}
	if out.R != 255 {
		t.Errorf("clamped conversion should saturate red, got %v", out)
	}

	// Lightness above 100 is always out of gamut.
	if _, ok := LabToRGBInGamut(Lab{L: 120}); ok {
		t.Error("L=120 should be out of gamut")
	}
}

func TestAgreesWithColorful(t *testing.T) {
	colors := []RGB{
		{255, 0, 0}, {0, 128, 255}, {30, 30, 30}, {200, 180, 20}, {90, 10, 160},
	}

	for _, c := range colors {
		got := RGBToLab(c)
		l, a, b := c.colorful().Lab()
		// go-colorful reports Lab scaled to [0,1] for L.
		want := Lab{L: l * 100, A: a * 100, B: b * 100}
		if DeltaE76(got, want) > 0.1 {
			t.Errorf("RGBToLab(%v) = %v, go-colorful says %v", c, got, want)
		}
	}
}

func TestDeltaE76(t *testing.T) {
	a := Lab{50, 10, -20}
	b := Lab{53, 14, -20}

	if got := DeltaE76(a, a); got != 0 {
		t.Errorf("DeltaE76(x, x) = %f, want 0", got)
	}
	if got := DeltaE76(a, b); !approx(got, 5, 1e-12) {
		t.Errorf("DeltaE76 = %f, want 5", got)
	}
	if DeltaE76(a, b) != DeltaE76(b, a) {
		t.Error("DeltaE76 should be symmetric")
	}
}

func TestDeltaERGB(t *testing.T) {
	black := RGB{0, 0, 0}
	white := RGB{255, 255, 255}

	if got := DeltaERGB(black, white); !approx(got, 100, 0.1) {
		t.Errorf("DeltaERGB(black, white) = %f, want ~100", got)
	}
	if DeltaERGB(black, white) != DeltaERGB(white, black) {
		t.Error("DeltaERGB should be symmetric")
	}
}

func TestInvert3(t *testing.T) {
	inv := invert3(rgbToXYZMatrix)
	for i := range 3 {
		for j := range 3 {
			var sum float64
			for k := range 3 {
				sum += rgbToXYZMatrix[i][k] * inv[k][j]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if !approx(sum, want, 1e-12) {
				t.Errorf("(M * M^-1)[%d][%d] = %g, want %g", i, j, sum, want)
			}
		}
	}
}
