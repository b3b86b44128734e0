package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Archive is one entry of the archive page.
type Archive struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	PublishedAt time.Time `json:"publishedAt"`
}

// YearArchives groups the archive entries of one year.
type YearArchives struct {
	Year     int
	Archives []Archive
}

// ArchiveGroups is the /api/archives payload ordered by year, newest first.
//
// The backend has encoded it both as a list of [year, entries] tuples and as
// an object keyed by year; both decode.
type ArchiveGroups []YearArchives

// UnmarshalJSON decodes either archive encoding.
func (g *ArchiveGroups) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*g = nil
		return nil
	}

	var groups ArchiveGroups
	switch trimmed[0] {
	case '{':
		var byYear map[string][]Archive
		if err := json.Unmarshal(trimmed, &byYear); err != nil {
			return err
		}
		for key, entries := range byYear {
			year, err := strconv.Atoi(key)
			if err != nil {
				return fmt.Errorf("archive year %q: %w", key, err)
			}
			groups = append(groups, YearArchives{Year: year, Archives: entries})
		}
	case '[':
		var tuples [][2]json.RawMessage
		if err := json.Unmarshal(trimmed, &tuples); err != nil {
			return err
		}
		for _, tuple := range tuples {
			var ya YearArchives
			if err := json.Unmarshal(tuple[0], &ya.Year); err != nil {
				return err
			}
			if err := json.Unmarshal(tuple[1], &ya.Archives); err != nil {
				return err
			}
			groups = append(groups, ya)
		}
	default:
		return fmt.Errorf("archives: unexpected json %.20q", trimmed)
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Year > groups[j].Year })
	*g = groups
	return nil
}

// Count returns the number of entries across all years.
func (g ArchiveGroups) Count() int {
	n := 0
	for _, ya := range g {
		n += len(ya.Archives)
	}
	return n
}
