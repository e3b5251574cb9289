/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSlidesShape(t *testing.T) {
	d := DefaultSlides()
	require.Len(t, d, 7)
	require.NoError(t, d.Validate())
	kinds := make([]Kind, len(d))
	for i, s := range d {
		kinds[i] = s.Type
	}
	assert.Equal(t, []Kind{KindHero, KindSplit, KindImage, KindSplit, KindSplit, KindSplit, KindFooter}, kinds)
	assert.Equal(t, []string{"SIKAP DASAR", "PANDUAN ETIKA", "LEVEL UP"}, d[0].Tags)
}

func TestDefaultSlidesReturnsIndependentCopies(t *testing.T) {
	a := DefaultSlides()
	a[0].Title = "changed"
	a[0].Tags[0] = "changed"
	b := DefaultSlides()
	assert.Equal(t, "SOPAN & ETIKA", b[0].Title)
	assert.Equal(t, "SIKAP DASAR", b[0].Tags[0])
}

func TestSlideListWithChangesOnlyTarget(t *testing.T) {
	before := DefaultSlides()
	snapshot := before.Clone()

	after, err := before.With(2, FieldTitle, "New Title")
	require.NoError(t, err)

	assert.Equal(t, "New Title", after[2].Title)
	// The input list is untouched.
	if diff := cmp.Diff(snapshot, before); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
	for i := range after {
		if i == 2 {
			continue
		}
		assert.Truef(t, after[i].Equal(before[i]), "slide %d changed", i)
	}
	want := before[2]
	want.Title = "New Title"
	if diff := cmp.Diff(want, after[2]); diff != "" {
		t.Fatalf("unexpected change on target (-want +got):\n%s", diff)
	}
}

func TestSlideListWithOutOfRangeIsNoop(t *testing.T) {
	l := DefaultSlides()
	for _, idx := range []int{-1, len(l), 99} {
		got, err := l.With(idx, FieldTitle, "x")
		require.NoError(t, err)
		assert.True(t, got.Equal(l))
	}
}

func TestSlideWithTypeChecks(t *testing.T) {
	s := DefaultSlides()[0]

	_, err := s.With(FieldTitle, 42)
	assert.True(t, errors.Is(err, ErrFieldType))

	_, err = s.With(FieldTags, "a,b")
	assert.True(t, errors.Is(err, ErrFieldType))

	_, err = s.With(FieldType, "carousel")
	assert.True(t, errors.Is(err, ErrFieldType))

	_, err = s.With(Field("id"), 3)
	assert.True(t, errors.Is(err, ErrUnknownField))

	got, err := s.With(FieldType, " Quote ")
	require.NoError(t, err)
	assert.Equal(t, KindQuote, got.Type)

	got, err = s.With(FieldTags, []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got.Tags)
}

func TestParseField(t *testing.T) {
	f, err := ParseField("ImageURL")
	require.NoError(t, err)
	assert.Equal(t, FieldImageURL, f)

	_, err = ParseField("id")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSlideJSONFieldNames(t *testing.T) {
	b, err := json.Marshal(DefaultSlides()[1])
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, k := range []string{"id", "title", "subtitle", "content", "type", "imageUrl", "accentColor"} {
		assert.Contains(t, m, k)
	}
	assert.NotContains(t, m, "tags")
	assert.NotContains(t, m, "stats")
}

func TestValidateRejectsBrokenDecks(t *testing.T) {
	assert.Error(t, SlideList{}.Validate())

	dup := DefaultSlides()
	dup[1].ID = dup[0].ID
	assert.Error(t, dup.Validate())

	bad := DefaultSlides()
	bad[3].Type = "carousel"
	assert.Error(t, bad.Validate())

	blank := DefaultSlides()
	blank[0].Title = ""
	assert.NoError(t, blank.Validate(), "cleared text is a legitimate edit")
}

func TestParseAndFormatValue(t *testing.T) {
	assert.Equal(t, []string{"a", "b c"}, ParseValue(FieldTags, " a, ,b c ,"))
	assert.Equal(t, []string{}, ParseValue(FieldTags, ""))
	assert.Equal(t, KindQuote, ParseValue(FieldType, " Quote "))
	assert.Equal(t, "  keep spaces ", ParseValue(FieldContent, "  keep spaces "))

	assert.Equal(t, "a, b c", FormatValue([]string{"a", "b c"}))
	assert.Equal(t, "hero", FormatValue(KindHero))
	assert.Equal(t, "", FormatValue(nil))

	s := DefaultSlides()[0]
	v, err := s.Get(FieldTags)
	require.NoError(t, err)
	back, err := s.With(FieldTags, ParseValue(FieldTags, FormatValue(v)))
	require.NoError(t, err)
	assert.True(t, back.Equal(s))
}

func TestParseHexColor(t *testing.T) {
	c, ok := ParseHexColor("#FF3B30")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 0xff, G: 0x3b, B: 0x30}, c)
	assert.Equal(t, "#ff3b30", c.Hex())

	c, ok = ParseHexColor("0f8")
	require.True(t, ok)
	assert.Equal(t, RGB{R: 0x00, G: 0xff, B: 0x88}, c)

	for v := 0; v < 256; v += 17 {
		want := RGB{R: uint8(v), G: uint8(255 - v), B: uint8(v / 2)}
		got, ok := ParseHexColor(want.Hex())
		require.True(t, ok)
		assert.Equal(t, want, got)
	}

	for _, bad := range []string{"", "#12345", "#gggggg", "red", "#ff 3b3", "#ff3b30ff"} {
		_, ok := ParseHexColor(bad)
		assert.False(t, ok, bad)
	}
	fallback := RGB{R: 1, G: 2, B: 3}
	assert.Equal(t, fallback, Slide{AccentColor: "tomato"}.Accent(fallback))
}
