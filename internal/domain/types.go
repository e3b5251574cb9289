/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany..
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// This file defines the slide data model. The JSON names are the persisted
// format and must not change; older decks are read back with them.

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Kind is the layout kind of a slide.
type Kind string

const (
	KindHero    Kind = "hero"
	KindGrid    Kind = "grid"
	KindSplit   Kind = "split"
	KindQuote   Kind = "quote"
	KindStats   Kind = "stats"
	KindImage   Kind = "image"
	KindProcess Kind = "process"
	KindFooter  Kind = "footer"
)

// Kinds lists every layout kind in declaration order.
func Kinds() []Kind {
	return []Kind{KindHero, KindGrid, KindSplit, KindQuote, KindStats, KindImage, KindProcess, KindFooter}
}

// Valid reports whether k is one of the known layout kinds.
func (k Kind) Valid() bool { return slices.Contains(Kinds(), k) }

// Slide is one unit of presentation content with a declared layout kind.
type Slide struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Subtitle    string   `json:"subtitle,omitempty"`
	Content     string   `json:"content"`
	Type        Kind     `json:"type"`
	Tags        []string `json:"tags,omitempty"` // hero only
	ImageURL    string   `json:"imageUrl,omitempty"`
	AccentColor string   `json:"accentColor"`

	// Declared for the grid, stats and process kinds; the default deck does not use them.
	Stats        []Stat     `json:"stats,omitempty"`
	GridInfo     []GridCell `json:"gridInfo,omitempty"`
	ProcessSteps []Step     `json:"processSteps,omitempty"`
}

type Stat struct {
	Val   string `json:"val"`
	Label string `json:"label"`
}

type GridCell struct {
	Title string `json:"title"`
	Label string `json:"label"`
}

type Step struct {
	Step string `json:"step"`
	Desc string `json:"desc"`
}

// Equal compares two slides field by field.
func (s Slide) Equal(o Slide) bool {
	return s.ID == o.ID &&
		s.Title == o.Title &&
		s.Subtitle == o.Subtitle &&
		s.Content == o.Content &&
		s.Type == o.Type &&
		slices.Equal(s.Tags, o.Tags) &&
		s.ImageURL == o.ImageURL &&
		s.AccentColor == o.AccentColor &&
		slices.Equal(s.Stats, o.Stats) &&
		slices.Equal(s.GridInfo, o.GridInfo) &&
		slices.Equal(s.ProcessSteps, o.ProcessSteps)
}

// HasEmbeddedImage reports whether ImageURL carries the image bytes inline.
func (s Slide) HasEmbeddedImage() bool { return strings.HasPrefix(s.ImageURL, "data:") }

// Field names an editable slide field. Values are the JSON names.
type Field string

const (
	FieldTitle       Field = "title"
	FieldSubtitle    Field = "subtitle"
	FieldContent     Field = "content"
	FieldType        Field = "type"
	FieldTags        Field = "tags"
	FieldImageURL    Field = "imageUrl"
	FieldAccentColor Field = "accentColor"
)

// EditableFields lists the fields an inline editor may change, in display order.
func EditableFields() []Field {
	return []Field{FieldTitle, FieldSubtitle, FieldContent, FieldTags, FieldImageURL, FieldAccentColor, FieldType}
}

var (
	ErrUnknownField = errors.New("unknown slide field")
	ErrFieldType    = errors.New("value has the wrong type for field")
)

// ParseField maps a JSON field name (case-insensitive) to a Field.
func ParseField(name string) (Field, error) {
	n := strings.TrimSpace(name)
	for _, f := range EditableFields() {
		if strings.EqualFold(string(f), n) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the current value of a field: string for text fields,
// []string for tags and Kind for type.
func (s Slide) Get(f Field) (any, error) {
	switch f {
	case FieldTitle:
		return s.Title, nil
	case FieldSubtitle:
		return s.Subtitle, nil
	case FieldContent:
		return s.Content, nil
	case FieldType:
		return s.Type, nil
	case FieldTags:
		return slices.Clone(s.Tags), nil
	case FieldImageURL:
		return s.ImageURL, nil
	case FieldAccentColor:
		return s.AccentColor, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownField, f)
}

// With returns a copy of s with field f replaced by value. s is not modified.
func (s Slide) With(f Field, value any) (Slide, error) {
	out := s
	switch f {
	case FieldTitle, FieldSubtitle, FieldContent, FieldImageURL, FieldAccentColor:
		v, ok := value.(string)
		if !ok {
			return s, fmt.Errorf("%w: %s wants string, got %T", ErrFieldType, f, value)
		}
		switch f {
		case FieldTitle:
			out.Title = v
		case FieldSubtitle:
			out.Subtitle = v
		case FieldContent:
			out.Content = v
		case FieldImageURL:
			out.ImageURL = v
		case FieldAccentColor:
			out.AccentColor = v
		}
	case FieldTags:
		v, ok := value.([]string)
		if !ok {
			return s, fmt.Errorf("%w: %s wants []string, got %T", ErrFieldType, f, value)
		}
		out.Tags = slices.Clone(v)
	case FieldType:
		var k Kind
		switch v := value.(type) {
		case Kind:
			k = v
		case string:
			k = Kind(strings.ToLower(strings.TrimSpace(v)))
		default:
			return s, fmt.Errorf("%w: %s wants Kind, got %T", ErrFieldType, f, value)
		}
		if !k.Valid() {
			return s, fmt.Errorf("%w: unknown layout kind %q", ErrFieldType, k)
		}
		out.Type = k
	default:
		return s, fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return out, nil
}

// SlideList is an ordered deck; insertion order is display order.
type SlideList []Slide

// With returns a new list whose record at index has field replaced by value.
// All other records are shared with the receiver. An out-of-range index
// returns the receiver unchanged and no error.
func (l SlideList) With(index int, f Field, value any) (SlideList, error) {
	if index < 0 || index >= len(l) {
		return l, nil
	}
	updated, err := l[index].With(f, value)
	if err != nil {
		return l, err
	}
	out := make(SlideList, len(l))
	copy(out, l)
	out[index] = updated
	return out, nil
}

// Clone returns a copy of the list that shares no slices with the receiver.
func (l SlideList) Clone() SlideList {
	if l == nil {
		return nil
	}
	out := make(SlideList, len(l))
	for i, s := range l {
		s.Tags = slices.Clone(s.Tags)
		s.Stats = slices.Clone(s.Stats)
		s.GridInfo = slices.Clone(s.GridInfo)
		s.ProcessSteps = slices.Clone(s.ProcessSteps)
		out[i] = s
	}
	return out
}

// Equal compares two lists structurally.
func (l SlideList) Equal(o SlideList) bool {
	return slices.EqualFunc(l, o, Slide.Equal)
}

// Validate checks the invariants a loaded deck must hold: non-empty, unique
// ids and known layout kinds. Text fields are not checked for content; a user
// may have cleared one on purpose.
func (l SlideList) Validate() error {
	if len(l) == 0 {
		return errors.New("deck is empty")
	}
	seen := make(map[int]struct{}, len(l))
	for i, s := range l {
		if _, dup := seen[s.ID]; dup {
			return fmt.Errorf("slide %d: duplicate id %d", i, s.ID)
		}
		seen[s.ID] = struct{}{}
		if !s.Type.Valid() {
			return fmt.Errorf("slide %d: unknown type %q", i, s.Type)
		}
	}
	return nil
}

// ParseValue converts user-typed text into the value Slide.With expects for f.
// Tags are comma separated; blanks are dropped.
func ParseValue(f Field, text string) any {
	switch f {
	case FieldTags:
		parts := strings.Split(text, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	case FieldType:
		return Kind(strings.ToLower(strings.TrimSpace(text)))
	}
	return text
}

// FormatValue renders a field value as editable text; the inverse of ParseValue.
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case Kind:
		return string(x)
	case []string:
		return strings.Join(x, ", ")
	case nil:
		return ""
	}
	return fmt.Sprint(v)
}
