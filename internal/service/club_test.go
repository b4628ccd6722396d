package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/model"
)

func newTestClubService(t *testing.T) (*ClubService, *mockClubRepo, *mockPostRepo, *mockUserRepo) {
	t.Helper()
	clubs := newMockClubRepo()
	posts := newMockPostRepo()
	users := newMockUserRepo()
	svc := NewClubService(clubs, posts, users, testLogger())
	return svc, clubs, posts, users
}

func TestClubCreate_RequiresName(t *testing.T) {
	svc, _, _, _ := newTestClubService(t)

	_, err := svc.Create(context.Background(), &model.Club{Name: "   "})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestClubJoin_UnknownClub(t *testing.T) {
	svc, _, _, users := newTestClubService(t)
	addUser(t, users, "u1")

	_, err := svc.Join(context.Background(), "u1", 999, "")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestClubJoin_DuplicateMembership(t *testing.T) {
	svc, clubs, _, users := newTestClubService(t)
	addUser(t, users, "u1")
	club := addClub(t, clubs, "Chess Club", "chess")

	if _, err := svc.Join(context.Background(), "u1", club.ID, ""); err != nil {
		t.Fatalf("first Join() error = %v", err)
	}

	_, err := svc.Join(context.Background(), "u1", club.ID, "")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("second Join() error = %v, want ErrConflict", err)
	}
}

func TestClubJoin_DefaultRole(t *testing.T) {
	svc, clubs, _, users := newTestClubService(t)
	addUser(t, users, "u1")
	club := addClub(t, clubs, "Chess Club")

	m, err := svc.Join(context.Background(), "u1", club.ID, "")
	if err != nil {
		t.Fatalf("Join() error = %v", err)
	}
	if m.Role != model.DefaultMemberRole {
		t.Errorf("Role = %q, want %q", m.Role, model.DefaultMemberRole)
	}
}

func TestClubDetails_NotFound(t *testing.T) {
	svc, _, _, _ := newTestClubService(t)

	_, err := svc.Details(context.Background(), 42)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestCreatePost_RequiresContent(t *testing.T) {
	svc, clubs, _, _ := newTestClubService(t)
	club := addClub(t, clubs, "News Club")

	_, err := svc.CreatePost(context.Background(), &model.Post{ClubID: club.ID, Content: " "})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

func TestCreatePost_UnknownClub(t *testing.T) {
	svc, _, _, _ := newTestClubService(t)

	_, err := svc.CreatePost(context.Background(), &model.Post{ClubID: 7, Content: "hello"})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// STANDALONE RECOMMENDATION PATH
// =========================================================================
//
// The standalone endpoint's empty-preference policy is "no signal → show
// everything". The profile aggregator does the opposite (see profile_test.go);
// the asymmetry is intentional and both sides are pinned here.

func TestRecommendedFor_FiltersByPreferences(t *testing.T) {
	svc, clubs, _, users := newTestClubService(t)
	addUser(t, users, "u1", "robotics", "ai")
	c1 := addClub(t, clubs, "Music AI Lab", "ai", "music")
	addClub(t, clubs, "Chess Club", "chess")

	got, err := svc.RecommendedFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecommendedFor() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != c1.ID {
		t.Errorf("RecommendedFor() = %v, want just the AI club", clubIDs(got))
	}
}

func TestRecommendedFor_EmptyPreferencesReturnsFullCatalog(t *testing.T) {
	svc, clubs, _, users := newTestClubService(t)
	addUser(t, users, "u1") // no preferences
	addClub(t, clubs, "Music AI Lab", "ai", "music")
	addClub(t, clubs, "Chess Club", "chess")

	got, err := svc.RecommendedFor(context.Background(), "u1")
	if err != nil {
		t.Fatalf("RecommendedFor() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("RecommendedFor(no prefs) = %v, want the whole catalog", clubIDs(got))
	}
}

func TestRecommendedFor_UnknownUserReturnsFullCatalog(t *testing.T) {
	svc, clubs, _, _ := newTestClubService(t)
	addClub(t, clubs, "Music AI Lab", "ai")
	addClub(t, clubs, "Chess Club", "chess")

	got, err := svc.RecommendedFor(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("RecommendedFor() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("RecommendedFor(unknown user) = %v, want the whole catalog", clubIDs(got))
	}
}
