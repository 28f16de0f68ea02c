package pagination

import "testing"

func TestGuard(t *testing.T) {
	c := New()
	if !c.Begin() {
		t.Fatalf("Expected first Begin to succeed")
	}
	if c.Begin() {
		t.Errorf("Expected second Begin to be dropped while loading")
	}
	c.End()
	if !c.Begin() {
		t.Errorf("Expected Begin to succeed after End")
	}
}

func TestHasMoreAndNextPage(t *testing.T) {
	c := New()
	if c.HasMore() {
		t.Errorf("Expected no more pages before any response")
	}
	c.Update(2, 3)
	next, ok := c.NextPage()
	if !ok || next != 3 {
		t.Errorf("Expected next page 3 but got %d %v", next, ok)
	}
	c.Begin()
	if _, ok := c.NextPage(); ok {
		t.Errorf("Expected no next page while loading")
	}
	c.End()
	c.Update(3, 3)
	if c.HasMore() {
		t.Errorf("Expected no more pages on last page")
	}
}

func TestUpdateKeepsInvariant(t *testing.T) {
	c := New()
	c.Update(5, 3)
	if s := c.State(); s.CurrentPage != 3 || s.TotalPages != 3 {
		t.Errorf("Expected page clamped to 3/3 but got %+v", s)
	}
	c.Update(1, 0)
	if s := c.State(); s.CurrentPage != 1 || s.TotalPages != 0 {
		t.Errorf("Expected 1/0 but got %+v", s)
	}
	c.Update(0, -1)
	if s := c.State(); s.CurrentPage != 1 || s.TotalPages != 0 {
		t.Errorf("Expected 1/0 but got %+v", s)
	}
}

func TestReset(t *testing.T) {
	c := New()
	c.Update(2, 4)
	c.Reset()
	if s := c.State(); s.CurrentPage != 1 || s.TotalPages != 4 {
		t.Errorf("Expected 1/4 but got %+v", s)
	}
}
