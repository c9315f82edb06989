// Package library lists the playable media files of the device. The
// rest of the player treats the scanned list as read-only for the
// session and refers to tracks by index into it.
package library

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Entry is one playable file.
type Entry struct {
	Name string // file name within the media directory
	Size int64
}

// Scan returns the playable files of dir with the given extensions
// (lower-case, dot included), sorted case-insensitively by name. A
// missing directory yields an empty list.
func Scan(dir string, exts []string) []Entry {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}

	var entries []Entry
	for _, item := range items {
		if item.IsDir() {
			continue
		}
		if !allowed[strings.ToLower(filepath.Ext(item.Name()))] {
			continue
		}
		info, err := item.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Name: item.Name(), Size: info.Size()})
	}

	sort.Slice(entries, func(i, j int) bool {
		return strings.ToLower(entries[i].Name) < strings.ToLower(entries[j].Name)
	})
	return entries
}

// Names returns just the file names of entries.
func Names(entries []Entry) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}
