package model

import "testing"

func TestParseHex(t *testing.T) {
	cases := []struct {
		in   string
		want RGB
	}{
		{"#FFF8E5", RGB{R: 255, G: 248, B: 229}},
		{"2c2c2c", RGB{R: 44, G: 44, B: 44}},
		{" #000 ", RGB{}},
		{"#fff", RGB{R: 255, G: 255, B: 255}},
	}
	for _, tc := range cases {
		got, err := ParseHex(tc.in)
		if err != nil {
			t.Fatalf("ParseHex(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseHex(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
	for _, bad := range []string{"", "#12", "#GGGGGG", "#1234567"} {
		if _, err := ParseHex(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestRGBFormatting(t *testing.T) {
	c := RGB{R: 203, G: 225, B: 241}
	if c.Hex() != "#CBE1F1" {
		t.Fatalf("unexpected hex %q", c.Hex())
	}
	if c.String() != "rgb(203,225,241)" {
		t.Fatalf("unexpected string %q", c.String())
	}
	back, err := ParseHex(c.Hex())
	if err != nil || back != c {
		t.Fatalf("hex did not parse back: %+v, %v", back, err)
	}
}
