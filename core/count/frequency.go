package count

import (
	"sort"
	"strings"
)

// Frequency maps a key (a single character or a word) to its occurrence
// count. Counts are always positive; key order carries no meaning.
type Frequency map[string]int

// Entry is one ranked key of a Frequency.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// CharacterFrequency counts every distinct rune in text in a single scan.
func CharacterFrequency(text string) Frequency {
	freq := make(Frequency)
	for _, r := range text {
		freq[string(r)]++
	}
	return freq
}

// WordFrequency tokenizes text the same way Words does and counts each
// token. Unless caseSensitive is set, tokens are folded to lower case first.
func WordFrequency(text string, caseSensitive bool) Frequency {
	freq := make(Frequency)
	for _, word := range strings.Fields(text) {
		if !caseSensitive {
			word = strings.ToLower(word)
		}
		freq[word]++
	}
	return freq
}

// Total returns the sum of all counts.
func (f Frequency) Total() int {
	total := 0
	for _, n := range f {
		total += n
	}
	return total
}

// Top returns the n most frequent entries, highest count first. Ties are
// broken by key so the ranking is deterministic. n <= 0 returns every entry.
func (f Frequency) Top(n int) []Entry {
	entries := make([]Entry, 0, len(f))
	for k, c := range f {
		entries = append(entries, Entry{Key: k, Count: c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries
}
