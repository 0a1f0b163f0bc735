package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
	"golang.org/x/term"

	portfolio "github.com/Nemesis62542/nemesis-portfolio"
	"github.com/Nemesis62542/nemesis-portfolio/auth"
	"github.com/Nemesis62542/nemesis-portfolio/content"
)

const (
	passwordEnv    = "PORTFOLIO_PASSWORD"
	newPasswordEnv = "PORTFOLIO_NEW_PASSWORD"
	excerptWidth   = 120
	idColumn       = 24
)

var errIncorrectPassword = errors.New("login: incorrect password")

func (c *cli) admin(ctx context.Context, store *content.Store) error {
	gate, err := auth.New(ctx, store, auth.WithLogger(c.logger))
	if err != nil {
		return err
	}
	password, err := c.readPassword("Password: ", passwordEnv)
	if err != nil {
		return err
	}
	ok, err := gate.Login(ctx, password)
	if err != nil {
		return err
	}
	if !ok {
		return errIncorrectPassword
	}
	defer gate.Logout()

	if c.changePassword {
		next, err := c.readNewPassword()
		if err != nil {
			return err
		}
		if err := gate.ChangePassword(ctx, password, next); err != nil {
			return err
		}
		c.logger.Info("password changed")
	}
	if c.reset {
		if err := store.Projects().ResetToDefault(ctx); err != nil {
			return err
		}
		if err := store.Posts().ResetToDefault(ctx); err != nil {
			return err
		}
		c.logger.Info("catalogue reset to defaults")
	}
	if c.deleteProject != "" {
		if err := store.Projects().Remove(ctx, c.deleteProject); err != nil {
			return err
		}
		c.logger.Info("deleted project", "id", c.deleteProject)
	}
	if c.deletePost != "" {
		if err := store.Posts().Remove(ctx, c.deletePost); err != nil {
			return err
		}
		c.logger.Info("deleted post", "id", c.deletePost)
	}
	if c.importPost != "" {
		post, err := loadPost(c.importPost, time.Now())
		if err != nil {
			return err
		}
		if err := store.Posts().Upsert(ctx, post); err != nil {
			return err
		}
		c.logger.Info("imported post", "id", post.ID, "title", post.Title)
	}
	if c.importProject != "" {
		project, err := loadProject(c.importProject)
		if err != nil {
			return err
		}
		if err := store.Projects().Upsert(ctx, project); err != nil {
			return err
		}
		c.logger.Info("imported project", "id", project.ID, "title", project.Title)
	}
	return nil
}

func (c *cli) readPassword(prompt, env string) (string, error) {
	if value, ok := os.LookupEnv(env); ok {
		return value, nil
	}
	f, ok := c.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no terminal to read the password from; set %s", env)
	}
	fmt.Fprint(c.stderr, prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(c.stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(b), nil
}

func (c *cli) readNewPassword() (string, error) {
	if value, ok := os.LookupEnv(newPasswordEnv); ok {
		return value, nil
	}
	next, err := c.readPassword("New password: ", newPasswordEnv)
	if err != nil {
		return "", err
	}
	again, err := c.readPassword("Repeat new password: ", newPasswordEnv)
	if err != nil {
		return "", err
	}
	if next != again {
		return "", errors.New("new passwords do not match")
	}
	return next, nil
}

func (c *cli) printProjects(ctx context.Context, store *content.Store) error {
	projects, err := store.Projects().List(ctx)
	if err != nil {
		return err
	}
	for _, p := range projects {
		line := runewidth.FillRight(p.ID, idColumn) + " " + p.Title
		if len(p.Tags) > 0 {
			line += " [" + strings.Join(p.Tags, ", ") + "]"
		}
		fmt.Fprintln(c.stdout, line)
	}
	return nil
}

func (c *cli) printPosts(ctx context.Context, store *content.Store) error {
	posts, err := store.Posts().List(ctx)
	if err != nil {
		return err
	}
	for _, p := range posts {
		fmt.Fprintln(c.stdout, runewidth.FillRight(p.ID, idColumn)+" "+p.Date+"  "+p.Title)
	}
	return nil
}

func postMarkdown(p content.Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n*%s*\n\n", p.Title, p.Date)
	b.WriteString(p.Content)
	return b.String()
}

func projectMarkdown(p content.Project) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.ImageURL != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", p.Title, p.ImageURL)
	}
	if p.Description != "" {
		b.WriteString(p.Description + "\n\n")
	}
	if len(p.Tags) > 0 {
		tags := make([]string, len(p.Tags))
		for i, tag := range p.Tags {
			tags[i] = "`" + tag + "`"
		}
		b.WriteString(strings.Join(tags, " ") + "\n\n")
	}
	if p.ProjectURL != "" && p.ProjectURL != "#" {
		fmt.Fprintf(&b, "- [Project](%s)\n", p.ProjectURL)
	}
	if p.SourceURL != "" {
		fmt.Fprintf(&b, "- [Source](%s)\n", p.SourceURL)
	}
	return b.String()
}

type postMeta struct {
	ID      string `toml:"id"`
	Title   string `toml:"title"`
	Date    any    `toml:"date"`
	Excerpt string `toml:"excerpt"`
}

// loadPost reads a Markdown file whose +++ TOML front matter carries the
// post metadata. Missing id, date and excerpt are derived from the title,
// now and the first paragraph.
func loadPost(path string, now time.Time) (content.Post, error) {
	data, err := os.ReadFile(normalizePath(path))
	if err != nil {
		return content.Post{}, err
	}
	if err := portfolio.ValidateInput(data); err != nil {
		return content.Post{}, fmt.Errorf("%s: %w", path, err)
	}
	fm, body, ok := portfolio.SplitFrontMatter(string(data))
	if !ok || fm.Delimiter != "+++" {
		return content.Post{}, fmt.Errorf("%s: expected +++ TOML front matter", path)
	}
	var meta postMeta
	md, err := toml.Decode(fm.Raw, &meta)
	if err != nil {
		return content.Post{}, fmt.Errorf("%s: front matter: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return content.Post{}, fmt.Errorf("%s: unknown front matter key %s", path, undecoded[0])
	}

	post := content.Post{
		ID:      meta.ID,
		Title:   meta.Title,
		Excerpt: meta.Excerpt,
		Content: strings.TrimLeft(portfolio.Sanitize(body), "\n"),
	}
	switch d := meta.Date.(type) {
	case nil:
		post.Date = now.Format(time.DateOnly)
	case string:
		post.Date = d
	case time.Time:
		post.Date = d.Format(time.DateOnly)
	default:
		return content.Post{}, fmt.Errorf("%s: date must be YYYY-MM-DD", path)
	}
	if post.ID == "" {
		post.ID = content.NewPostID(post.Title)
	}
	if post.Excerpt == "" {
		post.Excerpt = excerpt(post.Content)
	}
	return post, nil
}

// loadProject reads a project from a TOML file using the content.Project
// keys. A missing id gets a fresh one, so the import adds a new project;
// an existing id replaces that project.
func loadProject(path string) (content.Project, error) {
	data, err := os.ReadFile(normalizePath(path))
	if err != nil {
		return content.Project{}, err
	}
	if err := portfolio.ValidateInput(data); err != nil {
		return content.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	var project content.Project
	md, err := toml.Decode(string(data), &project)
	if err != nil {
		return content.Project{}, fmt.Errorf("%s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return content.Project{}, fmt.Errorf("%s: unknown key %s", path, undecoded[0])
	}
	if project.ID == "" {
		project.ID = content.NewProjectID()
	}
	return project, nil
}

// excerpt returns the plain text of the first paragraph.
func excerpt(markdown string) string {
	for _, b := range portfolio.Render(markdown) {
		if p, ok := b.(portfolio.Paragraph); ok {
			return truncate.StringWithTail(portfolio.PlainText(p.Spans), excerptWidth, "…")
		}
	}
	return ""
}
