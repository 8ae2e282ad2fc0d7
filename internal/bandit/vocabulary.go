// WhatNow - Contextual Activity Recommendation Engine
// Copyright 2026 The WhatNow Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/whatnowai/whatnow

package bandit

import (
	"fmt"
	"sort"
)

// Builtin vocabulary names accepted by Builtin and by the engine
// configuration.
const (
	// VocabularyV1 is the legacy 40-dimension tag table.
	VocabularyV1 = "v1"

	// VocabularyV2 is the current 43-dimension tag table covering weather,
	// time of day, season, and mood tags. This is the default.
	VocabularyV2 = "v2"
)

// DefaultVocabulary is the builtin vocabulary used when none is configured.
const DefaultVocabulary = VocabularyV2

// vocabularyV2Index is the current tag table. Index assignments are part of
// the persisted model format and must never be reordered.
var vocabularyV2Index = map[string]int{
	// Weather
	"sunny": 0, "cloudy": 1, "raining": 2, "snowy": 3, "stormy": 4,
	// Time of day
	"morning": 5, "afternoon": 6, "evening": 7, "night": 8,
	// Season
	"spring": 9, "summer": 10, "autumn": 11, "winter": 12,
	// Mood and intensity
	"chill": 13, "tired": 14, "exciting": 15, "energetic": 16,
	"intense": 17, "stressed": 18, "motivated": 19, "adventurous": 20,
	"nostalgic": 21, "romantic": 22, "playful": 23, "focused": 24,
	"distracted": 25, "inspired": 26, "friendly": 27, "shy": 28,
	"curious": 29, "analytical": 30, "emotional": 31, "burnt_out": 32,
	"artistic": 33, "practical": 34, "hungry": 35, "natural": 36,
	"urban": 37, "anxious": 38, "overwhelmed": 39, "upset": 40,
	"happy": 41, "festive": 42,
}

// vocabularyV1Index is the legacy tag table. Its source listed "social"
// twice and the later index won, so slot 5 carries no tag while the
// dimension stays 40. Models trained against v1 depend on these exact
// assignments.
var vocabularyV1Index = map[string]int{
	"arty": 0, "chill": 1, "energetic": 2, "creative": 3, "relaxed": 4,
	"introverted": 6,
	"sunny": 7, "rainy": 8, "cloudy": 9, "snowy": 10, "windy": 11,
	"morning": 12, "afternoon": 13, "evening": 14, "night": 15,
	"weekend": 16, "weekday": 17,
	"indoor": 18, "outdoor": 19, "home": 20, "cafe": 21, "park": 22,
	"beach": 23,
	"alone": 24, "with_friends": 25, "with_family": 26, "with_partner": 27,
	"group_activity": 28,
	"low_energy": 29, "medium_energy": 30, "high_energy": 31,
	"physical": 32, "mental": 33, "artistic": 34, "social": 35,
	"learning": 36, "entertainment": 37, "productive": 38, "mindful": 39,
}

const vocabularyV1Dim = 40

// Vocabulary is a fixed mapping from context tags to vector indices in
// [0, Dim). It defines the dimension of every context vector the engine
// encodes and every model it trains.
type Vocabulary struct {
	name  string
	index map[string]int
	tags  []string // index -> tag, "" for unassigned slots
}

// Builtin returns one of the shipped vocabularies by name.
func Builtin(name string) (*Vocabulary, error) {
	switch name {
	case VocabularyV1:
		return newIndexedVocabulary(VocabularyV1, vocabularyV1Index, vocabularyV1Dim), nil
	case VocabularyV2:
		return newIndexedVocabulary(VocabularyV2, vocabularyV2Index, len(vocabularyV2Index)), nil
	default:
		return nil, fmt.Errorf("unknown builtin vocabulary %q", name)
	}
}

// NewVocabulary builds a vocabulary from an ordered tag list: tags[i] maps
// to index i. The list must be non-empty and free of blanks and duplicates.
func NewVocabulary(name string, tags []string) (*Vocabulary, error) {
	if name == "" {
		return nil, fmt.Errorf("vocabulary name is empty")
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("vocabulary %q has no tags", name)
	}

	index := make(map[string]int, len(tags))
	ordered := make([]string, len(tags))
	for i, tag := range tags {
		if tag == "" {
			return nil, fmt.Errorf("vocabulary %q: tags[%d] is empty", name, i)
		}
		if prev, ok := index[tag]; ok {
			return nil, fmt.Errorf("vocabulary %q: tag %q at index %d duplicates index %d", name, tag, i, prev)
		}
		index[tag] = i
		ordered[i] = tag
	}

	return &Vocabulary{name: name, index: index, tags: ordered}, nil
}

// newIndexedVocabulary builds a vocabulary from an explicit index table.
// The dimension may exceed the number of assigned tags.
func newIndexedVocabulary(name string, index map[string]int, dim int) *Vocabulary {
	ordered := make([]string, dim)
	for tag, i := range index {
		ordered[i] = tag
	}
	return &Vocabulary{name: name, index: index, tags: ordered}
}

// Name returns the vocabulary identifier.
func (v *Vocabulary) Name() string {
	return v.name
}

// Dim returns the context vector dimension.
func (v *Vocabulary) Dim() int {
	return len(v.tags)
}

// Index returns the vector index for a tag and whether the tag is known.
func (v *Vocabulary) Index(tag string) (int, bool) {
	i, ok := v.index[tag]
	return i, ok
}

// Tags returns the known tags ordered by index. Unassigned slots are
// omitted, so the result can be shorter than Dim.
func (v *Vocabulary) Tags() []string {
	out := make([]string, 0, len(v.index))
	for _, tag := range v.tags {
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// SortedTags returns the known tags in lexical order, for display.
func (v *Vocabulary) SortedTags() []string {
	out := v.Tags()
	sort.Strings(out)
	return out
}

// Encode maps tags onto a one-hot context vector of length Dim. Known tags
// set their slot to 1.0; unknown tags contribute nothing. The second return
// value counts the unknown tags. Encode never mutates the vocabulary and
// never fails.
func (v *Vocabulary) Encode(tags []string) ([]float64, int) {
	vec := make([]float64, len(v.tags))
	unknown := 0
	for _, tag := range tags {
		i, ok := v.index[tag]
		if !ok {
			unknown++
			continue
		}
		vec[i] = 1.0
	}
	return vec, unknown
}
