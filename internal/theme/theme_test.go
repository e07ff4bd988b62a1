package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/parkboard/internal/model"
)

func TestForRideFirstMatchWins(t *testing.T) {
	cases := []struct {
		name, want string
	}{
		{"Space Mountain", "scifi"},
		{"TRON Lightcycle / Run", "scifi"},
		{"Haunted Mansion", "spooky"},
		{"Pirates of the Caribbean", "pirate"},
		{"Jungle Cruise", "adventure"},
		{"Avatar Flight of Passage", "adventure"}, // "flight of passage" precedes "avatar"
		{"\"it's a small world\"", "whimsical"},
		{"Seven Dwarfs Mine Train", "fantasy"},
		{"Star Wars: Rise of the Resistance", "starwars"},
		{"Completely Unknown Attraction", "classic"},
	}
	for _, c := range cases {
		if got := ForRide(c.name); got != c.want {
			t.Errorf("ForRide(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestForRideCaseInsensitive(t *testing.T) {
	if ForRide("SPACE MOUNTAIN") != ForRide("space mountain") {
		t.Fatal("lookup is case sensitive")
	}
}

func TestSchemeForFallsBackToClassic(t *testing.T) {
	if SchemeFor("no-such-theme") != SchemeFor(DefaultTheme) {
		t.Fatal("unknown theme did not fall back to classic")
	}
}

func TestForItemClosedParkUsesClassic(t *testing.T) {
	it := model.ClosedParkItem(model.ClosedPark{Name: "EPCOT"})
	if got := ForItem(it); got != DefaultTheme {
		t.Fatalf("ForItem(closed park) = %q", got)
	}
	it = model.RideItem(model.Ride{Name: "Space Mountain"})
	if got := ForItem(it); got != "scifi" {
		t.Fatalf("ForItem(ride) = %q", got)
	}
}

func TestWaitColorsCoverAllCategories(t *testing.T) {
	for _, cat := range []model.WaitCategory{model.WaitShort, model.WaitModerate, model.WaitLong, model.WaitVeryLong} {
		if _, ok := WaitColors[cat]; !ok {
			t.Errorf("no color for category %q", cat)
		}
	}
}

func TestFolderFor(t *testing.T) {
	if got := FolderFor("Millennium Falcon: Smugglers Run"); got != "millennium_falcon" {
		t.Fatalf("FolderFor = %q", got)
	}
	if got := FolderFor("Unknown Ride"); got != genericFolder {
		t.Fatalf("FolderFor fallback = %q", got)
	}
}

func writeImages(t *testing.T, root, folder string, names ...string) {
	t.Helper()
	dir := filepath.Join(root, folder)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, n := range names {
		if err := os.WriteFile(filepath.Join(dir, n), []byte{0}, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestImageLibraryCycling(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, "space_mountain", "b.png", "a.png", "c.jpg", "notes.txt")
	lib := NewImageLibrary(root)

	// Sorted, non-image files skipped, cycle starts at the first.
	p, ok := lib.Current("Space Mountain")
	if !ok || filepath.Base(p) != "a.png" {
		t.Fatalf("Current = %q ok=%v", p, ok)
	}
	if idx := lib.CycleIndex("Space Mountain"); idx != 0 {
		t.Fatalf("CycleIndex = %d", idx)
	}

	lib.AdvanceAll()
	p, _ = lib.Current("Space Mountain")
	if filepath.Base(p) != "b.png" {
		t.Fatalf("after advance Current = %q", p)
	}

	// Wraps modulo the folder size.
	lib.AdvanceAll()
	lib.AdvanceAll()
	if idx := lib.CycleIndex("Space Mountain"); idx != 0 {
		t.Fatalf("cycle did not wrap, idx = %d", idx)
	}
}

func TestImageLibraryMissingFolder(t *testing.T) {
	lib := NewImageLibrary(t.TempDir())
	if _, ok := lib.Current("Unknown Ride"); ok {
		t.Fatal("Current reported an image for an empty folder")
	}
	if idx := lib.CycleIndex("Unknown Ride"); idx != 0 {
		t.Fatalf("CycleIndex = %d for empty folder", idx)
	}
	// AdvanceAll over empty folders must not panic or divide by zero.
	lib.AdvanceAll()
}

func TestParkImage(t *testing.T) {
	root := t.TempDir()
	writeImages(t, root, filepath.Join("parks", "epcot"), "ball.png")
	lib := NewImageLibrary(root)
	p, ok := lib.ParkImage("epcot")
	if !ok || filepath.Base(p) != "ball.png" {
		t.Fatalf("ParkImage = %q ok=%v", p, ok)
	}
	if _, ok := lib.ParkImage("nowhere"); ok {
		t.Fatal("ParkImage for missing park reported ok")
	}
}
