package colorspace

import "testing"

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "6-digit with hash", input: "#ff8000", want: RGB{255, 128, 0}},
		{name: "6-digit without hash", input: "1e90ff", want: RGB{30, 144, 255}},
		{name: "uppercase", input: "#ABCDEF", want: RGB{0xAB, 0xCD, 0xEF}},
		{name: "3-digit", input: "#f0a", want: RGB{255, 0, 170}},
		{name: "surrounding space", input: "  #000000 ", want: RGB{0, 0, 0}},
		{name: "empty", input: "", wantErr: true},
		{name: "bad length", input: "#ffff", wantErr: true},
		{name: "non-hex", input: "#zzzzzz", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseHex(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseHex(%q) = %v, expected error", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) failed: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	colors := []RGB{{0, 0, 0}, {255, 255, 255}, {1, 2, 3}, {128, 64, 254}}
	for _, c := range colors {
		hex := c.Hex()
		if len(hex) != 7 || hex[0] != '#' {
			t.Errorf("Hex() = %q, expected #rrggbb", hex)
		}
		back, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("ParseHex(%q) failed: %v", hex, err)
		}
		if back != c {
			t.Errorf("ParseHex(%v.Hex()) = %v", c, back)
		}
	}
}

func TestNewRGBClamps(t *testing.T) {
	if got := NewRGB(-10, 300, 42); got != (RGB{0, 255, 42}) {
		t.Errorf("NewRGB(-10, 300, 42) = %v, want {0 255 42}", got)
	}
}

func TestRGBString(t *testing.T) {
	if got := (RGB{1, 2, 3}).String(); got != "rgb(1, 2, 3)" {
		t.Errorf("String() = %q", got)
	}
}
