package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.SetColored(5, 5, 'X', ColorRed)
	cell := s.GetCell(5, 5)
	if cell.Rune != 'X' || cell.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red 'X'", cell)
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(10, 10)
	for y := 0; y < 10; y++ {
		s.DrawHLine(0, y, 10, 'X', ColorGreen)
	}

	s.Clear()

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("After Clear, expected default space at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello", ColorDefault)

	if got := s.Row(1)[2:7]; got != "Hello" {
		t.Errorf("DrawText: row contains %q, expected Hello", got)
	}

	// Text should be clipped at boundaries
	s.DrawText(18, 0, "Hello", ColorDefault)
	if s.Get(18, 0) != 'H' || s.Get(19, 0) != 'e' {
		t.Error("Text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawText(0, 0, "★★☆", ColorYellow)

	if s.Get(0, 0) != '★' || s.Get(1, 0) != '★' || s.Get(2, 0) != '☆' {
		t.Errorf("multibyte text should occupy one cell per rune, got %q", s.Row(0))
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(NewRect(0, 0, 20, 5), 2, "Hi", ColorDefault)

	x := (20 - 2) / 2
	if s.Get(x, 2) != 'H' || s.Get(x+1, 2) != 'i' {
		t.Errorf("DrawTextCentered failed, row is %q", s.Row(2))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 5)
	s.DrawBox(NewRect(0, 0, 10, 5), ColorGray)

	if s.Get(0, 0) != '╭' || s.Get(9, 0) != '╮' || s.Get(0, 4) != '╰' || s.Get(9, 4) != '╯' {
		t.Error("DrawBox corners not drawn")
	}
	if s.Get(5, 0) != '─' || s.Get(0, 2) != '│' {
		t.Error("DrawBox edges not drawn")
	}
	if s.Get(5, 2) != ' ' {
		t.Error("DrawBox should not fill the interior")
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Set(2, 2, 'A')
	s.Set(8, 8, 'B')

	s.Resize(5, 5)

	if s.Width() != 5 || s.Height() != 5 {
		t.Fatalf("Resize: got %dx%d, expected 5x5", s.Width(), s.Height())
	}
	if s.Get(2, 2) != 'A' {
		t.Error("Resize should preserve content inside new bounds")
	}

	s.Resize(10, 10)
	if s.Get(8, 8) != ' ' {
		t.Error("Content outside the shrunken area should be gone after growing")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc", ColorDefault)
	s.DrawText(0, 1, "def", ColorDefault)

	lines := strings.Split(s.String(), "\n")
	if len(lines) != 2 || lines[0] != "abc" || lines[1] != "def" {
		t.Errorf("String() = %q", s.String())
	}
}
