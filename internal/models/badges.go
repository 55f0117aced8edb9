package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	badgeDelimiter = ','
	badgeEscape    = '\\'
)

// BadgeSet is an unordered, de-duplicated set of badge identifiers. It is
// stored as a single delimited column; delimiter and escape characters
// inside values are backslash-escaped.
type BadgeSet []string

// NewBadgeSet trims, drops blanks and de-duplicates values. The result is sorted.
func NewBadgeSet(values ...string) BadgeSet {
	seen := make(map[string]struct{}, len(values))
	set := make(BadgeSet, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		set = append(set, v)
	}
	sort.Strings(set)
	return set
}

// Contains reports membership.
func (b BadgeSet) Contains(value string) bool {
	for _, v := range b {
		if v == value {
			return true
		}
	}
	return false
}

// Encode renders the storage representation.
func (b BadgeSet) Encode() string {
	var sb strings.Builder
	for i, v := range NewBadgeSet(b...) {
		if i > 0 {
			sb.WriteRune(badgeDelimiter)
		}
		for _, r := range v {
			if r == badgeDelimiter || r == badgeEscape {
				sb.WriteRune(badgeEscape)
			}
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// DecodeBadgeSet parses the storage representation produced by Encode.
func DecodeBadgeSet(raw string) BadgeSet {
	if raw == "" {
		return BadgeSet{}
	}
	var (
		values  []string
		current strings.Builder
		escaped bool
	)
	for _, r := range raw {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == badgeEscape:
			escaped = true
		case r == badgeDelimiter:
			values = append(values, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	values = append(values, current.String())
	return NewBadgeSet(values...)
}

// Value implements driver.Valuer.
func (b BadgeSet) Value() (driver.Value, error) {
	return b.Encode(), nil
}

// Scan implements sql.Scanner.
func (b *BadgeSet) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*b = BadgeSet{}
	case string:
		*b = DecodeBadgeSet(v)
	case []byte:
		*b = DecodeBadgeSet(string(v))
	default:
		return fmt.Errorf("scan badges: unsupported type %T", src)
	}
	return nil
}

// MarshalJSON always renders an array.
func (b BadgeSet) MarshalJSON() ([]byte, error) {
	if b == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(b))
}

// UnmarshalJSON accepts either an array of strings or a comma separated string.
func (b *BadgeSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*b = NewBadgeSet(list...)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("badges must be an array of strings or a string")
	}
	*b = NewBadgeSet(strings.Split(raw, ",")...)
	return nil
}
