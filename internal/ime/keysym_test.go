package ime

import "testing"

func TestKeyvalToRune(t *testing.T) {
	tests := []struct {
		name   string
		keyval uint32
		want   rune
	}{
		{"space", 0x20, ' '},
		{"letter A", 0x41, 'A'},
		{"letter a", 0x61, 'a'},
		{"digit 0", 0x30, '0'},
		{"tilde", 0x7e, '~'},
		{"nbsp", 0xa0, '\u00a0'},
		{"pound", 0xa3, '£'},
		{"unicode euro", 0x010020ac, '€'},
		{"unicode bangla ka", 0x01000995, 'ক'},
		{"backspace", KeyBackSpace, 0},
		{"return", KeyReturn, 0},
		{"escape", KeyEscape, 0},
		{"F1", 0xffbe, 0},
		{"out of range", 0x01200000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := keyvalToRune(tt.keyval); got != tt.want {
				t.Errorf("keyvalToRune(0x%x) = %q, want %q", tt.keyval, got, tt.want)
			}
		})
	}
}

func TestDigitIndex(t *testing.T) {
	tests := []struct {
		keyval uint32
		want   int
		ok     bool
	}{
		{Key1, 0, true},
		{Key9, 8, true},
		{Key0, 9, true},
		{'a', 0, false},
	}
	for _, tt := range tests {
		got, ok := digitIndex(tt.keyval)
		if got != tt.want || ok != tt.ok {
			t.Errorf("digitIndex(%#x) = %d, %v", tt.keyval, got, ok)
		}
	}
}

func TestPrintable(t *testing.T) {
	for _, r := range []rune{'a', '.', 'ক', '1'} {
		if !printable(r) {
			t.Errorf("%q should be printable", r)
		}
	}
	for _, r := range []rune{0, ' ', '\t', '\x1b'} {
		if printable(r) {
			t.Errorf("%q should not be printable", r)
		}
	}
}
