package critcss

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Signals is the set of tag names, class names and id values observed
// among above-fold elements. It is derived once per snapshot and reused
// for every selector match in that extraction.
type Signals struct {
	tags    map[string]struct{}
	classes map[string]struct{}
	ids     map[string]struct{}
}

// NewSignals builds a Signals set, normalizing the inputs: tags are
// lower-cased, classes lose a leading "." and ids a leading "#".
func NewSignals(tags, classes, ids []string) Signals {
	s := Signals{
		tags:    make(map[string]struct{}, len(tags)),
		classes: make(map[string]struct{}, len(classes)),
		ids:     make(map[string]struct{}, len(ids)),
	}
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			s.tags[t] = struct{}{}
		}
	}
	for _, c := range classes {
		c = strings.TrimPrefix(strings.TrimSpace(c), ".")
		if c != "" {
			s.classes[c] = struct{}{}
		}
	}
	for _, id := range ids {
		id = strings.TrimPrefix(strings.TrimSpace(id), "#")
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return s
}

// HasTag reports whether the (lower-cased) tag was observed above the fold.
func (s Signals) HasTag(tag string) bool {
	_, ok := s.tags[strings.ToLower(tag)]
	return ok
}

// HasClass reports whether the class name was observed above the fold.
func (s Signals) HasClass(class string) bool {
	_, ok := s.classes[class]
	return ok
}

// HasID reports whether the id value was observed above the fold.
func (s Signals) HasID(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Empty reports whether no signals were observed at all.
func (s Signals) Empty() bool {
	return len(s.tags) == 0 && len(s.classes) == 0 && len(s.ids) == 0
}

// Fingerprint returns a stable textual identity for cache keying:
// sorted members per kind, kinds separated by record markers.
func (s Signals) Fingerprint() string {
	var b strings.Builder
	b.WriteString("t:")
	b.WriteString(strings.Join(sortedKeys(s.tags), ","))
	b.WriteString(";c:")
	b.WriteString(strings.Join(sortedKeys(s.classes), ","))
	b.WriteString(";i:")
	b.WriteString(strings.Join(sortedKeys(s.ids), ","))
	return b.String()
}

// snapshotSignals is the wire shape produced by the DOM-snapshot
// collaborator: plain string lists per signal kind.
type snapshotSignals struct {
	Tags    []string `json:"tags"`
	Classes []string `json:"classes"`
	IDs     []string `json:"ids"`
}

// ParseSnapshot decodes a snapshot JSON document into a Signals set.
func ParseSnapshot(data []byte) (Signals, error) {
	var snap snapshotSignals
	if err := json.Unmarshal(data, &snap); err != nil {
		return Signals{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	return NewSignals(snap.Tags, snap.Classes, snap.IDs), nil
}

// LoadSnapshot reads and decodes a snapshot JSON file.
func LoadSnapshot(path string) (Signals, error) {
	// #nosec G304 - path comes from trusted configuration
	data, err := os.ReadFile(path)
	if err != nil {
		return Signals{}, fmt.Errorf("reading snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
