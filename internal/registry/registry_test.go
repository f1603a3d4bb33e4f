package registry

import (
	"testing"

	"github.com/vovakirdan/tui-flight/internal/sim"
)

func testTheme(id string) Theme {
	return Theme{
		ID:    id,
		Title: "Test " + id,
		Glyphs: sim.Glyphs{
			Actor:     '>',
			Ground:    []rune{'_'},
			Obstacles: []rune{'#'},
		},
	}
}

func TestRegisterAndGet(t *testing.T) {
	Register(testTheme("zz-test-a"))

	if !Exists("zz-test-a") {
		t.Fatal("Exists() should report a registered theme")
	}

	got, err := Get("zz-test-a")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if got.Title != "Test zz-test-a" {
		t.Errorf("Title = %q", got.Title)
	}

	if _, err := Get("zz-missing"); err == nil {
		t.Error("Get() should fail for an unknown theme")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register(testTheme("zz-test-dup"))

	defer func() {
		if recover() == nil {
			t.Error("Registering a duplicate ID should panic")
		}
	}()
	Register(testTheme("zz-test-dup"))
}

func TestRegisterInvalidPanics(t *testing.T) {
	bad := testTheme("zz-test-bad")
	bad.Glyphs.Obstacles = nil

	defer func() {
		if recover() == nil {
			t.Error("Registering a theme without obstacles should panic")
		}
	}()
	Register(bad)
}

func TestListSorted(t *testing.T) {
	Register(testTheme("zz-test-c"))
	Register(testTheme("zz-test-b"))

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List() not sorted: %q before %q", list[i-1].ID, list[i].ID)
		}
	}
}
