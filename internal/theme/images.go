package theme

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// Ride-name patterns to image folders, ordered, first match wins.
// Same matching semantics as the theme lookup.
var rideImageFolders = []pattern{
	{"space mountain", "space_mountain"},
	{"haunted mansion", "haunted_mansion"},
	{"pirates", "pirates_caribbean"},
	{"jungle cruise", "jungle_cruise"},
	{"big thunder", "big_thunder"},
	{"seven dwarfs", "seven_dwarfs"},
	{"small world", "small_world"},
	{"peter pan", "peter_pan"},
	{"tron", "tron"},
	{"tiana", "tiana"},
	{"bayou adventure", "tiana"},
	{"buzz lightyear", "buzz_lightyear"},
	{"space ranger", "buzz_lightyear"},
	{"guardians", "guardians_galaxy"},
	{"cosmic rewind", "guardians_galaxy"},
	{"frozen", "frozen"},
	{"test track", "test_track"},
	{"spaceship earth", "spaceship_earth"},
	{"soarin", "soarin"},
	{"rise of the resistance", "rise_resistance"},
	{"millennium falcon", "millennium_falcon"},
	{"smugglers run", "millennium_falcon"},
	{"tower of terror", "tower_terror"},
	{"twilight zone", "tower_terror"},
	{"slinky dog", "slinky_dog"},
	{"toy story", "toy_story"},
	{"star tours", "star_tours"},
	{"flight of passage", "flight_passage"},
	{"avatar", "flight_passage"},
	{"na'vi river", "navi_river"},
	{"expedition everest", "everest"},
	{"everest", "everest"},
	{"kilimanjaro", "kilimanjaro"},
	{"safari", "kilimanjaro"},
}

const genericFolder = "generic"

var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

// ImageLibrary maps ride names to image files on disk and tracks a
// per-folder cycle counter so long show days rotate through variants.
// Safe for concurrent use: the rotation machine advances cycles while
// the card renderer reads them.
type ImageLibrary struct {
	root string

	mu      sync.Mutex
	folders map[string][]string // folder -> sorted file paths, nil until scanned
	cycle   map[string]int
}

func NewImageLibrary(root string) *ImageLibrary {
	return &ImageLibrary{
		root:    root,
		folders: map[string][]string{},
		cycle:   map[string]int{},
	}
}

// FolderFor returns the image folder for a ride name.
func FolderFor(rideName string) string {
	lower := strings.ToLower(rideName)
	for _, p := range rideImageFolders {
		if strings.Contains(lower, p.substr) {
			return p.theme
		}
	}
	return genericFolder
}

func (l *ImageLibrary) scanLocked(folder string) []string {
	if files, ok := l.folders[folder]; ok {
		return files
	}
	var files []string
	entries, err := os.ReadDir(filepath.Join(l.root, folder))
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if imageExts[strings.ToLower(filepath.Ext(e.Name()))] {
				files = append(files, filepath.Join(l.root, folder, e.Name()))
			}
		}
		sort.Strings(files)
	}
	l.folders[folder] = files
	return files
}

// Current returns the image path for the ride's current cycle position.
func (l *ImageLibrary) Current(rideName string) (string, bool) {
	folder := FolderFor(rideName)
	l.mu.Lock()
	defer l.mu.Unlock()
	files := l.scanLocked(folder)
	if len(files) == 0 {
		return "", false
	}
	return files[l.cycle[folder]%len(files)], true
}

// CycleIndex returns the ride's current image variant index (0 when the
// folder has no images).
func (l *ImageLibrary) CycleIndex(rideName string) int {
	folder := FolderFor(rideName)
	l.mu.Lock()
	defer l.mu.Unlock()
	files := l.scanLocked(folder)
	if len(files) == 0 {
		return 0
	}
	return l.cycle[folder] % len(files)
}

// ParkImage returns the image path for a park slug, if present.
func (l *ImageLibrary) ParkImage(slug string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	files := l.scanLocked(filepath.Join("parks", slug))
	if len(files) == 0 {
		return "", false
	}
	return files[0], true
}

// AdvanceAll moves every scanned folder's cycle forward by one, modulo
// the folder's image count. Called once per full rotation lap.
func (l *ImageLibrary) AdvanceAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for folder, files := range l.folders {
		if len(files) == 0 {
			continue
		}
		l.cycle[folder] = (l.cycle[folder] + 1) % len(files)
	}
}
