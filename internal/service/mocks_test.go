package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"testing"

	"github.com/sakif/clubmonkey/internal/apperror"
	"github.com/sakif/clubmonkey/internal/model"
)

// Hand-written in-memory mocks for the repository interfaces. They keep the
// same error contracts as the sqlite implementation (apperror sentinels for
// not-found and duplicates) so service behavior is tested against the real
// taxonomy.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ---- users ----

type mockUserRepo struct {
	users map[string]*model.User
	next  int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return apperror.Duplicate("user", user.Email)
		}
	}
	if user.ID == "" {
		m.next++
		user.ID = fmt.Sprintf("mock-%d", m.next)
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	result := make([]model.User, 0, len(m.users))
	for _, u := range m.users {
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) UpdatePreferences(_ context.Context, id string, prefs model.TagSet) error {
	u, ok := m.users[id]
	if !ok {
		return apperror.NotFound("user", id)
	}
	u.Preferences = prefs
	return nil
}

// ---- clubs ----

type mockClubRepo struct {
	clubs   []model.Club // slice, not map: catalog order matters
	members map[string]map[int64]string
	nextID  int64
}

func newMockClubRepo() *mockClubRepo {
	return &mockClubRepo{members: make(map[string]map[int64]string)}
}

func (m *mockClubRepo) Create(_ context.Context, club *model.Club) error {
	m.nextID++
	club.ID = m.nextID
	if club.PrimaryColor == "" {
		club.PrimaryColor = model.DefaultPrimaryColor
	}
	if club.AccentColor == "" {
		club.AccentColor = model.DefaultAccentColor
	}
	m.clubs = append(m.clubs, *club)
	return nil
}

func (m *mockClubRepo) GetByID(_ context.Context, id int64) (*model.Club, error) {
	for _, c := range m.clubs {
		if c.ID == id {
			result := c
			return &result, nil
		}
	}
	return nil, apperror.NotFound("club", strconv.FormatInt(id, 10))
}

func (m *mockClubRepo) List(_ context.Context) ([]model.Club, error) {
	return append([]model.Club{}, m.clubs...), nil
}

func (m *mockClubRepo) Delete(_ context.Context, id int64) error {
	for i, c := range m.clubs {
		if c.ID == id {
			m.clubs = append(m.clubs[:i], m.clubs[i+1:]...)
			for _, joined := range m.members {
				delete(joined, id)
			}
			return nil
		}
	}
	return apperror.NotFound("club", strconv.FormatInt(id, 10))
}

func (m *mockClubRepo) AddMember(_ context.Context, mem *model.Membership) error {
	joined := m.members[mem.UserID]
	if joined == nil {
		joined = make(map[int64]string)
		m.members[mem.UserID] = joined
	}
	if _, ok := joined[mem.ClubID]; ok {
		return apperror.Duplicate("membership",
			fmt.Sprintf("user %s in club %d", mem.UserID, mem.ClubID))
	}
	if mem.Role == "" {
		mem.Role = model.DefaultMemberRole
	}
	joined[mem.ClubID] = mem.Role
	return nil
}

func (m *mockClubRepo) ClubsOf(_ context.Context, userID string) ([]model.Club, error) {
	result := []model.Club{}
	for _, c := range m.clubs {
		if _, ok := m.members[userID][c.ID]; ok {
			result = append(result, c)
		}
	}
	return result, nil
}

// ---- posts ----

type mockPostRepo struct {
	posts  []model.Post
	nextID int64
}

func newMockPostRepo() *mockPostRepo { return &mockPostRepo{} }

func (m *mockPostRepo) Create(_ context.Context, post *model.Post) error {
	m.nextID++
	post.ID = m.nextID
	m.posts = append(m.posts, *post)
	return nil
}

func (m *mockPostRepo) ListByClub(_ context.Context, clubID int64) ([]model.Post, error) {
	result := []model.Post{}
	// newest first: mock inserts append, so walk backwards
	for i := len(m.posts) - 1; i >= 0; i-- {
		if m.posts[i].ClubID == clubID {
			result = append(result, m.posts[i])
		}
	}
	return result, nil
}

// ---- projects ----

type mockProjectRepo struct {
	projects []model.Project
	collabs  map[int64]map[string]bool
	nextID   int64
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{collabs: make(map[int64]map[string]bool)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	m.nextID++
	project.ID = m.nextID
	if project.Status == "" {
		project.Status = model.DefaultProjectStatus
	}
	m.projects = append(m.projects, *project)
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	for _, p := range m.projects {
		if p.ID == id {
			result := p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("project", strconv.FormatInt(id, 10))
}

func (m *mockProjectRepo) List(_ context.Context) ([]model.Project, error) {
	return append([]model.Project{}, m.projects...), nil
}

func (m *mockProjectRepo) AddCollaborator(_ context.Context, c *model.Collaboration) error {
	team := m.collabs[c.ProjectID]
	if team == nil {
		team = make(map[string]bool)
		m.collabs[c.ProjectID] = team
	}
	if team[c.UserID] {
		return apperror.Duplicate("collaboration",
			fmt.Sprintf("user %s on project %d", c.UserID, c.ProjectID))
	}
	team[c.UserID] = true
	return nil
}

func (m *mockProjectRepo) AuthoredBy(_ context.Context, userID string) ([]model.Project, error) {
	result := []model.Project{}
	for _, p := range m.projects {
		if p.AuthorID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) CollaboratedOnBy(_ context.Context, userID string) ([]model.Project, error) {
	result := []model.Project{}
	for _, p := range m.projects {
		if m.collabs[p.ID][userID] {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockProjectRepo) CountCollaborators(_ context.Context, projectID int64) (int, error) {
	return len(m.collabs[projectID]), nil
}

// addUser seeds a user directly, bypassing signup.
func addUser(t *testing.T, repo *mockUserRepo, id string, prefs ...string) *model.User {
	t.Helper()
	user := &model.User{
		ID:          id,
		Name:        "User " + id,
		Email:       id + "@example.com",
		Preferences: model.NewTagSet(prefs...),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// addClub seeds a club into the catalog.
func addClub(t *testing.T, repo *mockClubRepo, name string, tags ...string) *model.Club {
	t.Helper()
	club := &model.Club{Name: name, Tags: model.NewTagSet(tags...)}
	if err := repo.Create(context.Background(), club); err != nil {
		t.Fatalf("failed to seed club: %v", err)
	}
	return club
}
