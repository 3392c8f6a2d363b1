package ui

import "testing"

func TestButton_FiresOncePerPress(t *testing.T) {
	clicks := 0
	b := NewButton(10, 10, 100, 20, "Restart", func() { clicks++ })

	b.HandlePointer(50, 20, true)
	b.HandlePointer(50, 20, true) // still held
	if clicks != 1 {
		t.Fatalf("clicks = %d after one press; want 1", clicks)
	}
	b.HandlePointer(50, 20, false)
	b.HandlePointer(50, 20, true)
	if clicks != 2 {
		t.Errorf("clicks = %d after two presses; want 2", clicks)
	}
	b.HandlePointer(500, 20, true)
	if clicks != 2 {
		t.Errorf("press outside fired the button")
	}
}

func TestCheckbox_Toggles(t *testing.T) {
	c := NewCheckbox(0, 0, "Show radius", false)
	var seen []bool
	c.OnChange = func(v bool) { seen = append(seen, v) }

	c.HandlePointer(8, 8, true)
	c.HandlePointer(8, 8, true)
	c.HandlePointer(8, 8, false)
	c.HandlePointer(8, 8, true)
	if c.Value || len(seen) != 2 || !seen[0] || seen[1] {
		t.Errorf("value %v, changes %v; want false after [true false]", c.Value, seen)
	}
}

func TestPanel_StacksWidgets(t *testing.T) {
	p := NewPanel(5, 5, 200, "Run")
	b := p.AddButton("Pause", nil)
	c := p.AddCheckbox("Radius", true)
	if b.X != 15 || c.X != 15 {
		t.Errorf("widgets not indented: %v %v", b.X, c.X)
	}
	if c.Y <= b.Y+b.Height() {
		t.Errorf("checkbox at %v overlaps button ending at %v", c.Y, b.Y+b.Height())
	}
	if p.Height() < c.Y+c.Height()-p.Y {
		t.Errorf("panel height %v does not cover its widgets", p.Height())
	}
	p.HandlePointer(int(c.X+1), int(c.Y+1), true)
	if c.Value {
		t.Error("panel did not forward the pointer")
	}
}

func TestSlider(t *testing.T) {
	s := NewSlider(0, 0, 100, "Speed", 1, 9, 1)
	s.Step = 1

	s.HandlePointer(50, 5, true) // on the label
	if s.Value != 1 {
		t.Fatalf("label press moved the slider to %v", s.Value)
	}
	s.HandlePointer(50, 21, false)
	if s.Value != 1 {
		t.Fatalf("hover moved the slider to %v", s.Value)
	}
	s.HandlePointer(50, 21, true)
	if s.Value != 5 {
		t.Errorf("Value = %v after press at the middle; want 5", s.Value)
	}

	tests := []struct {
		in, want float64
	}{
		{2.4, 2},
		{2.6, 3},
		{-4, 1},
		{20, 9},
	}
	for _, tt := range tests {
		s.Set(tt.in)
		if s.Value != tt.want {
			t.Errorf("Set(%v) = %v; want %v", tt.in, s.Value, tt.want)
		}
	}
}
