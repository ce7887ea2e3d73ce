package testkit

import (
	"fmt"
	"sort"
	"strings"
)

// CheckLineCount verifies that a rewrite kept the number of lines.
func CheckLineCount(in, out []string) error {
	if len(in) != len(out) {
		return fmt.Errorf("line count changed: %d in, %d out", len(in), len(out))
	}
	return nil
}

// CheckSameLineMultiset verifies that out is a permutation of in after mapping
// every identifier in in through subs. It is the strongest statement that a
// rewrite only substituted identifiers and reordered lines.
func CheckSameLineMultiset(in, out []string, subs map[string]string) error {
	if err := CheckLineCount(in, out); err != nil {
		return err
	}
	replaced := make([]string, len(in))
	for i, line := range in {
		replaced[i] = ReplaceIDs(line, subs)
	}
	a := append([]string(nil), replaced...)
	b := append([]string(nil), out...)
	sort.Strings(a)
	sort.Strings(b)
	for i := range a {
		if a[i] != b[i] {
			return fmt.Errorf("line multiset differs: %q vs %q", a[i], b[i])
		}
	}
	return nil
}

// ReplaceIDs substitutes every occurrence of every key of subs in line.
func ReplaceIDs(line string, subs map[string]string) string {
	keys := make([]string, 0, len(subs))
	for k := range subs {
		keys = append(keys, k)
	}
	// longest first so an identifier that prefixes another cannot clip it
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, subs[k])
	}
	return strings.NewReplacer(pairs...).Replace(line)
}

// IndexOf returns the index of the first line containing needle, or -1.
func IndexOf(lines []string, needle string) int {
	for i, l := range lines {
		if strings.Contains(l, needle) {
			return i
		}
	}
	return -1
}
