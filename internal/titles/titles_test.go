// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package titles

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase", "SUPER Game", "super game"},
		{"region tag erased", "Foo (USA) [!]", "foo"},
		{"multiple groups", "Bar (Europe) (Rev A) [b1][o1]", "bar"},
		{"punctuation stripped", "Dr. Robot's Quest!", "dr robots quest"},
		{"hyphen becomes space", "F-Zero", "f zero"},
		{"ampersand stripped", "Chip & Dale", "chip dale"},
		{"whitespace collapsed", "  Wide   Open\tSpaces ", "wide open spaces"},
		{"colon stripped", "Quest: The Sequel", "quest the sequel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Foo (USA) [!]",
		"Dr. Robot's Quest!",
		"F-Zero",
		"already normal",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", in, twice, once)
		}
	}
}

func TestNormalizeErasure(t *testing.T) {
	if Normalize("Foo (USA) [!]") != Normalize("foo") {
		t.Errorf("Normalize should erase region and dump tags: %q vs %q",
			Normalize("Foo (USA) [!]"), Normalize("foo"))
	}
}

func TestIsFirstPart(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Game X (Disc 1)", true},
		{"Game X (disc 1)", true},
		{"Game X (Disk 1)", true},
		{"Game X (Side 1)", true},
		{"Game X (Tape 1)", true},
		{"Game X (Disc 1) (USA)", true},
		{"Game X (Disc 2)", false},
		{"Game X (Disc 12)", false},
		{"Game X", false},
		{"Game X (Volume 1)", false},
	}
	for _, tt := range tests {
		if got := IsFirstPart(tt.name); got != tt.want {
			t.Errorf("IsFirstPart(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsAnyPart(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"Game X (Disc 1)", true},
		{"Game X (Disc 3)", true},
		{"Game X (Tape 12)", true},
		{"Game X (SIDE 2)", true},
		{"Game X", false},
		{"Game X (Disc )", false},
	}
	for _, tt := range tests {
		if got := IsAnyPart(tt.name); got != tt.want {
			t.Errorf("IsAnyPart(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Game X (Disc 1)", "Game X"},
		{"Game X (Disc 2)", "Game X"},
		{"Game X (USA) (Disc 2)", "Game X (USA)"},
		{"Game X (Disc 1) (USA)", "Game X (Disc 1) (USA)"}, // marker not trailing
		{"Game X", "Game X"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BaseName(tt.input); got != tt.want {
			t.Errorf("BaseName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBaseNameGroupsSiblings(t *testing.T) {
	if BaseName("Game X (Disc 1)") != BaseName("Game X (Disc 2)") {
		t.Error("disc 1 and disc 2 of the same title must share a base name")
	}
	if BaseName("Game X (Disc 1)") == BaseName("Game Y (Disc 2)") {
		t.Error("different titles must not share a base name")
	}
}
