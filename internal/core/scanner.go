package core

import (
	"os"
	"strings"
)

const (
	// FileKeyword must appear (case-insensitive) in a price-list file name.
	FileKeyword = "price"
	// FileExtension is the required suffix of a price-list file name.
	FileExtension = ".csv"
)

// IsPriceFile reports whether a file name qualifies as a price list.
func IsPriceFile(name string) bool {
	return strings.Contains(strings.ToLower(name), FileKeyword) &&
		strings.HasSuffix(name, FileExtension)
}

// ScanDirectory returns the names of price-list files directly inside dir,
// in the order the filesystem lists them (sorted by name). Subdirectories are
// never entered. An empty result is not an error.
func ScanDirectory(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &DiscoveryError{Dir: dir, Err: err}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsPriceFile(entry.Name()) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
