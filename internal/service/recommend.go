// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-layer shape: handlers parse HTTP and
// write responses, services enforce the domain rules, repositories talk to
// SQLite.
// Services receive repository interfaces (never *sqlite.DB directly) plus a
// *slog.Logger, and return apperror values that the handler layer maps to
// status codes.
package service

import "github.com/sakif/clubmonkey/internal/model"

// Recommend computes club recommendations by tag-set intersection.
//
// A club is recommended when it is not in the exclude set and its Tags share
// at least one tag with prefs. Matching is exact-string and case-sensitive.
// The result preserves catalog order — no relevance ranking is applied — and
// is never nil, so it always serializes as a JSON array.
//
// Recommend is a stateless pure function. The two call sites deliberately
// disagree about empty preference sets and that policy lives with THEM, not
// here: the standalone endpoint (ClubService.RecommendedFor) returns the full
// catalog before ever calling Recommend, while the profile aggregator calls
// Recommend unconditionally and therefore gets an empty result, since
// intersecting with the empty set matches nothing.
func Recommend(prefs model.TagSet, clubs []model.Club, exclude map[int64]bool) []model.Club {
	recommended := []model.Club{}
	for _, club := range clubs {
		if exclude[club.ID] {
			continue
		}
		if prefs.Intersects(club.Tags) {
			recommended = append(recommended, club)
		}
	}
	return recommended
}
