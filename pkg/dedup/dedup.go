// Package dedup screens labelled screenshots for near-duplicates using
// perceptual difference hashes. Re-labelling the same screenshot twice (same
// photo, different crop or compression) silently skews evaluation metrics,
// so additions are checked against the stored corpus.
package dedup

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strconv"

	"github.com/corona10/goimagehash"
)

// DefaultMaxDistance is the Hamming distance below which two difference
// hashes are considered the same screenshot.
const DefaultMaxDistance = 10

// Entry pairs an image path with its perceptual hash.
type Entry struct {
	Path string
	Hash *goimagehash.ImageHash
}

// Match is a near-duplicate pair found in the corpus.
type Match struct {
	PathA    string
	PathB    string
	Distance int
}

// HashImage computes the difference hash of the image file at path.
func HashImage(path string) (*goimagehash.ImageHash, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	hash, err := goimagehash.DifferenceHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to hash image %s: %w", path, err)
	}
	return hash, nil
}

// HashHex formats a hash for database storage.
func HashHex(h *goimagehash.ImageHash) string {
	return fmt.Sprintf("%016x", h.GetHash())
}

// ParseHashHex rebuilds a difference hash from its stored hex form.
func ParseHashHex(s string) (*goimagehash.ImageHash, error) {
	bits, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid image hash %q: %w", s, err)
	}
	return goimagehash.NewImageHash(bits, goimagehash.DHash), nil
}

// FindNearDuplicate returns the first stored entry within maxDistance of
// hash, or nil. Entries with unloadable hashes are skipped rather than
// failing the scan.
func FindNearDuplicate(hash *goimagehash.ImageHash, entries []Entry, maxDistance int) (*Entry, int) {
	for i := range entries {
		if entries[i].Hash == nil {
			continue
		}
		dist, err := hash.Distance(entries[i].Hash)
		if err == nil && dist < maxDistance {
			return &entries[i], dist
		}
	}
	return nil, 0
}

// FindNearDuplicates scans all pairs in the corpus and returns every match.
func FindNearDuplicates(entries []Entry, maxDistance int) []Match {
	var matches []Match
	for i := 0; i < len(entries); i++ {
		if entries[i].Hash == nil {
			continue
		}
		for j := i + 1; j < len(entries); j++ {
			if entries[j].Hash == nil {
				continue
			}
			dist, err := entries[i].Hash.Distance(entries[j].Hash)
			if err == nil && dist < maxDistance {
				matches = append(matches, Match{
					PathA:    entries[i].Path,
					PathB:    entries[j].Path,
					Distance: dist,
				})
			}
		}
	}
	return matches
}
