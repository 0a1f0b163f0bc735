package content

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T, opts ...Option) (*Store, func()) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "portfolio.db")
	store, err := Open(context.Background(), path, opts...)
	require.NoError(t, err)
	return store, func() { store.Close() }
}

func projectIDs(projects []Project) []string {
	ids := make([]string, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids
}

func postIDs(posts []Post) []string {
	ids := make([]string, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestOpen_RequiresPath(t *testing.T) {
	_, err := Open(context.Background(), "")
	require.Error(t, err)
}

func TestOpen_Reopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "portfolio.db")

	store, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, store.Posts().Remove(ctx, "hello-world"))
	require.NoError(t, store.Close())

	store, err = Open(ctx, path)
	require.NoError(t, err)
	defer store.Close()
	assert.Equal(t, path, store.Path())

	posts, err := store.Posts().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"unity-combo-system"}, postIDs(posts))
}

func TestProjects_DefaultsNewestFirst(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	projects, err := store.Projects().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"project-4", "project-3", "project-2", "project-1"}, projectIDs(projects))
	assert.Equal(t, "3D Action Game", projects[3].Title)
	assert.Equal(t, []string{"Unity", "C#", "Blender", "Game Design"}, projects[3].Tags)
}

func TestProjects_UpsertAppendsAndReplaces(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	projects := store.Projects()

	added := Project{ID: "project-5", Title: "Rhythm Game", Tags: []string{"Godot"}, SourceURL: "https://example.com/src"}
	require.NoError(t, projects.Upsert(ctx, added))

	list, err := projects.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "project-5", list[0].ID)

	edited, err := projects.Get(ctx, "project-2")
	require.NoError(t, err)
	edited.Title = "Pixel Art RPG (remastered)"
	require.NoError(t, projects.Upsert(ctx, edited))

	list, err = projects.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"project-5", "project-4", "project-3", "project-2", "project-1"}, projectIDs(list))
	assert.Equal(t, "Pixel Art RPG (remastered)", list[3].Title)
}

func TestProjects_Validation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	tests := []struct {
		name    string
		project Project
		ok      bool
	}{
		{name: "placeholder project url", project: Project{ID: "p", Title: "T", ProjectURL: "#"}, ok: true},
		{name: "missing title", project: Project{ID: "p"}},
		{name: "missing id", project: Project{Title: "T"}},
		{name: "bad source url", project: Project{ID: "p", Title: "T", SourceURL: "not a url"}},
		{name: "empty tag", project: Project{ID: "p", Title: "T", Tags: []string{"Go", ""}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := store.Projects().Upsert(ctx, tc.project)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestPosts_InsertionOrder(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	posts := store.Posts()
	require.NoError(t, posts.Upsert(ctx, Post{ID: "third", Title: "Third", Date: "2024-07-01", Content: "# Hi"}))

	list, err := posts.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello-world", "unity-combo-system", "third"}, postIDs(list))
}

func TestPosts_Validation(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	bad := []Post{
		{ID: "x", Title: "T", Date: "01/02/2024"},
		{ID: "x", Title: "T"},
		{ID: "x", Title: "T", Date: "2024-01-02", Content: "bin\x00ary"},
		{ID: "x", Title: "T", Date: "2024-01-02", Content: string([]byte{0xff, 0xfe})},
	}
	for _, p := range bad {
		assert.ErrorIs(t, store.Posts().Upsert(ctx, p), ErrInvalid, "post %#v", p)
	}
}

func TestPosts_UpsertStripsEscapes(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.Posts().Upsert(ctx, Post{
		ID: "esc", Title: "Esc\x1b[31m", Date: "2024-01-02", Content: "hello \x1b[2J\x1b]0;title\x07 world\n",
	}))
	got, err := store.Posts().Get(ctx, "esc")
	require.NoError(t, err)
	assert.Equal(t, "Esc[31m", got.Title)
	assert.Equal(t, "hello [2J]0;title world\n", got.Content)

	err = store.Projects().Upsert(ctx, Project{ID: "p", Title: "\x1b\x07", Tags: []string{"Go"}})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCollection_GetAndRemoveMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := store.Posts().Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, store.Projects().Remove(ctx, "nope"), ErrNotFound)
}

func TestCollection_RemoveAndReset(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	projects := store.Projects()
	require.NoError(t, projects.Remove(ctx, "project-1"))
	require.NoError(t, projects.Remove(ctx, "project-3"))

	list, err := projects.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"project-4", "project-2"}, projectIDs(list))

	require.NoError(t, projects.ResetToDefault(ctx))
	list, err = projects.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestCollection_RemoveEverything(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	posts := store.Posts()
	require.NoError(t, posts.Remove(ctx, "hello-world"))
	require.NoError(t, posts.Remove(ctx, "unity-combo-system"))

	list, err := posts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCollection_CorruptFallsBackToDefaults(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	store, cleanup := setupTestStore(t, WithLogger(logger))
	defer cleanup()

	ctx := context.Background()
	require.NoError(t, store.writeCollection(ctx, postsKey, "{not json"))

	list, err := store.Posts().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello-world", "unity-combo-system"}, postIDs(list))
	assert.Contains(t, logs.String(), "corrupt")
}

func TestDefaultsAreCopies(t *testing.T) {
	first := defaultProjects()
	first[0].Tags[0] = "mutated"
	assert.Equal(t, "Unity", defaultProjects()[0].Tags[0])
}

func TestSettings(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	_, err := store.GetSetting(ctx, "password_hash")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.PutSetting(ctx, "password_hash", "one"))
	require.NoError(t, store.PutSetting(ctx, "password_hash", "two"))
	got, err := store.GetSetting(ctx, "password_hash")
	require.NoError(t, err)
	assert.Equal(t, "two", got)
}

func TestNewIDs(t *testing.T) {
	assert.Equal(t, "unity-combo-system", NewPostID("Unity Combo System"))
	assert.Regexp(t, `^post-[0-9a-f-]{36}$`, NewPostID("!!!"))
	assert.Regexp(t, `^project-[0-9a-f-]{36}$`, NewProjectID())
	assert.NotEqual(t, NewProjectID(), NewProjectID())
}

func TestDefaultsValidate(t *testing.T) {
	for _, p := range defaultPosts() {
		assert.NoError(t, p.Validate(), p.ID)
	}
	for _, p := range defaultProjects() {
		assert.NoError(t, p.Validate(), p.ID)
	}
}
