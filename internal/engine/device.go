package engine

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

const procAsound = "/proc/asound"

// Card describes one sound card known to the kernel.
type Card struct {
	Index int
	ID    string
	Name  string
}

// String returns a display string for the card.
func (c Card) String() string {
	return fmt.Sprintf("%d [%s]: %s", c.Index, c.ID, c.Name)
}

// cardLine matches entries of /proc/asound/cards, e.g.
//
//	0 [MAX98357A      ]: MAX98357A - MAX98357A
var cardLine = regexp.MustCompile(`^\s*(\d+)\s+\[(\S+)\s*\]:\s*\S+\s+-\s+(.*)$`)

// Cards enumerates the sound cards that expose at least one playback
// stream.
func Cards() []Card {
	return cardsFrom(procAsound)
}

func cardsFrom(root string) []Card {
	f, err := os.Open(filepath.Join(root, "cards"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var cards []Card
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		m := cardLine.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		index, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		card := Card{Index: index, ID: m[2], Name: strings.TrimSpace(m[3])}
		if hasPlayback(root, index) {
			cards = append(cards, card)
		}
	}
	return cards
}

// hasPlayback checks for a pcm*p stream directory under the card.
func hasPlayback(root string, index int) bool {
	matches, err := filepath.Glob(filepath.Join(root, fmt.Sprintf("card%d", index), "pcm*p"))
	return err == nil && len(matches) > 0
}

// FindCard returns the first playback-capable card whose ID or name
// contains preferred, case-insensitively. Returns false when preferred
// is empty or nothing matches.
func FindCard(preferred string) (Card, bool) {
	return findCardFrom(procAsound, preferred)
}

func findCardFrom(root, preferred string) (Card, bool) {
	if preferred == "" {
		return Card{}, false
	}
	preferred = strings.ToLower(preferred)
	for _, card := range cardsFrom(root) {
		if strings.Contains(strings.ToLower(card.ID), preferred) ||
			strings.Contains(strings.ToLower(card.Name), preferred) {
			return card, true
		}
	}
	return Card{}, false
}
