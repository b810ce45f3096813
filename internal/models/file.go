package models

import (
	"fmt"
	"strings"
	"time"
)

type Visibility string

const (
	VisibilityPrivate Visibility = "private"
	VisibilityPublic  Visibility = "public"
)

func VisibilityFromPrivate(isPrivate bool) Visibility {
	if isPrivate {
		return VisibilityPrivate
	}
	return VisibilityPublic
}

func ParseVisibility(s string) (Visibility, error) {
	switch Visibility(strings.ToLower(strings.TrimSpace(s))) {
	case VisibilityPrivate:
		return VisibilityPrivate, nil
	case VisibilityPublic:
		return VisibilityPublic, nil
	}
	return "", fmt.Errorf("unknown visibility %q", s)
}

func (v Visibility) IsPrivate() bool {
	return v == VisibilityPrivate
}

// File is the metadata record of one uploaded table. Path is the storage key
// returned by the file store, never an absolute filesystem path.
type File struct {
	ID         int64      `json:"id"`
	Name       string     `json:"name"`
	Delimiter  string     `json:"delimiter"`
	CreatedAt  time.Time  `json:"created_date"`
	Visibility Visibility `json:"visibility"`
	OwnerID    int64      `json:"owner_id"`
	OwnerName  string     `json:"user"`
	Path       string     `json:"-"`
}

func (f *File) IsPrivate() bool {
	return f.Visibility.IsPrivate()
}

// DelimiterRune returns the first rune of the recorded delimiter, or ';' for
// records written before the delimiter was mandatory.
func (f *File) DelimiterRune() rune {
	for _, r := range f.Delimiter {
		return r
	}
	return ';'
}
