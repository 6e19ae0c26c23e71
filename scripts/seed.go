package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/postboard/postboard/internal/model"
	"github.com/postboard/postboard/internal/repository"
)

type seedPost struct {
	Title     string
	Content   string
	Published bool
}

type seedUser struct {
	Email string
	Name  string
	Posts []seedPost
}

var fixtures = []seedUser{
	{
		Email: "alice@prisma.io",
		Name:  "Alice",
		Posts: []seedPost{
			{Title: "Join the Prisma Discord", Content: "https://pris.ly/discord", Published: true},
		},
	},
	{
		Email: "nilu@prisma.io",
		Name:  "Nilu",
		Posts: []seedPost{
			{Title: "Follow Prisma on Twitter", Content: "https://www.twitter.com/prisma", Published: true},
		},
	},
	{
		Email: "mahmoud@prisma.io",
		Name:  "Mahmoud",
		Posts: []seedPost{
			{Title: "Ask a question about Prisma on GitHub", Content: "https://www.github.com/prisma/prisma/discussions", Published: true},
			{Title: "Prisma on YouTube", Content: "https://pris.ly/youtube"},
		},
	},
}

type output struct {
	UserID  int64   `json:"user_id"`
	Email   string  `json:"email"`
	Existed bool    `json:"existed"`
	Posts   []int64 `json:"post_ids"`
}

func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		format      = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL, repository.Options{MaxConns: 2, MinConns: 1})
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	results := make([]output, 0, len(fixtures))
	for _, fixture := range fixtures {
		res, err := seed(ctx, repo, fixture)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		results = append(results, res)
	}

	switch *format {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(1)
		}
	default:
		for _, res := range results {
			if res.Existed {
				fmt.Printf("user %d (%s): already seeded\n", res.UserID, res.Email)
				continue
			}
			fmt.Printf("user %d (%s): posts %v\n", res.UserID, res.Email, res.Posts)
		}
	}
}

// seed creates the fixture user and its posts. A user that already exists
// is left alone, posts included, so re-running is a no-op.
func seed(ctx context.Context, repo *repository.Repository, fixture seedUser) (output, error) {
	name := fixture.Name
	user, created, err := repo.GetOrCreateUser(ctx, &model.User{Email: fixture.Email, Name: &name})
	if err != nil {
		return output{}, fmt.Errorf("ensure user %s: %w", fixture.Email, err)
	}

	res := output{UserID: user.ID, Email: user.Email, Existed: !created, Posts: []int64{}}
	if !created {
		return res, nil
	}
	for _, p := range fixture.Posts {
		title, content := p.Title, p.Content
		post, err := repo.CreatePost(ctx, repository.NewPost{
			Title:       &title,
			Content:     &content,
			AuthorEmail: user.Email,
		})
		if err != nil {
			return output{}, fmt.Errorf("create post %q: %w", p.Title, err)
		}

		if p.Published {
			published := true
			if _, err := repo.UpdatePost(ctx, post.ID, repository.PostUpdate{Published: &published}); err != nil {
				return output{}, fmt.Errorf("publish post %d: %w", post.ID, err)
			}
		}
		res.Posts = append(res.Posts, post.ID)
	}

	return res, nil
}
