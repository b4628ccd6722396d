package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TagSet is an unordered collection of free-form string labels.
//
// Users carry one as their preference tags, clubs as their topic tags, and
// projects as their requirement tags. Recommendation matching is defined on
// the SET — order-independent and duplicate-safe — but the wire format and
// the storage column are both plain JSON string arrays, so TagSet keeps a
// slice underneath and preserves insertion order when serialized.
//
// WHY A NAMED TYPE AND NOT []string?
// The matching algorithm must never depend on element order or be fooled by
// duplicates. Pushing that guarantee into a value type means every call site
// gets it for free, instead of each caller re-building a map[string]bool and
// hoping it did so correctly.
type TagSet []string

// NewTagSet builds a TagSet from the given tags, dropping duplicates while
// keeping first-occurrence order.
func NewTagSet(tags ...string) TagSet {
	seen := make(map[string]struct{}, len(tags))
	set := make(TagSet, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		set = append(set, t)
	}
	return set
}

// IsEmpty reports whether the set has no tags. A nil TagSet is empty.
func (s TagSet) IsEmpty() bool {
	return len(s) == 0
}

// Contains reports whether tag is in the set. Comparison is exact and
// case-sensitive — "AI" and "ai" are different tags.
func (s TagSet) Contains(tag string) bool {
	for _, t := range s {
		if t == tag {
			return true
		}
	}
	return false
}

// Intersects reports whether the two sets share at least one tag.
// This is the whole of the recommendation match predicate.
func (s TagSet) Intersects(other TagSet) bool {
	if len(s) == 0 || len(other) == 0 {
		return false
	}
	index := make(map[string]struct{}, len(s))
	for _, t := range s {
		index[t] = struct{}{}
	}
	for _, t := range other {
		if _, ok := index[t]; ok {
			return true
		}
	}
	return false
}

// MarshalJSON implements json.Marshaler. A nil set marshals as "[]", never
// "null", so API clients always see an array.
func (s TagSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// UnmarshalJSON implements json.Unmarshaler. Duplicates in the incoming
// array are collapsed — the wire format is a sequence, the domain value is
// a set.
func (s *TagSet) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = NewTagSet(raw...)
	return nil
}

// Value and Scan round-trip a TagSet through a TEXT column as a JSON array —
// the storage boundary is the only place the set degrades to a sequence.

// Value implements driver.Valuer for database/sql writes.
func (s TagSet) Value() (driver.Value, error) {
	b, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for database/sql reads. An empty or NULL
// column scans to the empty set.
func (s *TagSet) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = nil
		return nil
	case string:
		if v == "" {
			*s = nil
			return nil
		}
		return s.UnmarshalJSON([]byte(v))
	case []byte:
		if len(v) == 0 {
			*s = nil
			return nil
		}
		return s.UnmarshalJSON(v)
	default:
		return fmt.Errorf("model: cannot scan %T into TagSet", src)
	}
}
