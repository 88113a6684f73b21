package command_test

import (
	"context"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/MrSnakeDoc/seeyoulater/internal/command"
	"github.com/MrSnakeDoc/seeyoulater/internal/config"
	"github.com/MrSnakeDoc/seeyoulater/internal/domain"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver"
	"github.com/MrSnakeDoc/seeyoulater/internal/httpserver/deps"
	"github.com/MrSnakeDoc/seeyoulater/internal/logger"
	"github.com/MrSnakeDoc/seeyoulater/internal/store/sqlite"
)

func newLocal(t *testing.T) command.Commands {
	t.Helper()
	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "syl.db"), nil)
	if err != nil {
		t.Fatalf("sqlite.Open() error = %v", err)
	}
	l := command.NewLocal(store, nil, nil)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

// newRemote serves a fresh local backend through the real HTTP handler.
func newRemote(t *testing.T) command.Commands {
	t.Helper()
	backend := command.NewGuarded(newLocal(t))

	handler := httpserver.NewHandler(&config.ServerConfig{RequestTimeout: 5 * time.Second}, deps.Deps{
		Logger:    logger.NewNop(),
		StartTime: time.Now(),
		Commands:  backend,
		Username:  "alice",
		Password:  "s3cret",
	})
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	r, err := command.NewRemote(config.RemoteConfig{URL: srv.URL, Username: "alice", Password: "s3cret"}, 5*time.Second, nil)
	if err != nil {
		t.Fatalf("NewRemote() error = %v", err)
	}
	return r
}

// script runs the same sequence of operations and records every result.
func script(t *testing.T, c command.Commands) []any {
	t.Helper()
	ctx := context.Background()
	var out []any

	for _, req := range []domain.AddRequest{
		{URL: "https://one.example", Tags: []string{"a", "b"}, Title: domain.StringPtr("One")},
		{URL: "https://two.example", Tags: []string{"a"}, Description: domain.StringPtr("second 100%")},
		{URL: "https://three.example", Tags: []string{"b"}, Title: domain.StringPtr("Three")},
		{URL: "https://one.example", Tags: []string{"c"}, Title: domain.StringPtr("ignored")},
	} {
		res, err := c.Add(ctx, req)
		if err != nil {
			t.Fatalf("Add(%s) error = %v", req.URL, err)
		}
		res.Bookmark.CreatedAt = time.Time{}
		out = append(out, *res)
	}

	for _, q := range []domain.SearchQuery{
		{},
		{Tags: []string{"a", "b"}, Match: domain.MatchAny},
		{Tags: []string{"a", "b"}, Match: domain.MatchAll},
		{Query: domain.StringPtr("100%")},
		{Tags: []string{"missing"}},
	} {
		found, err := c.Find(ctx, q)
		if err != nil {
			t.Fatalf("Find(%+v) error = %v", q, err)
		}
		out = append(out, normalize(found))
	}

	for _, q := range []domain.TagsQuery{{}, {SortByCount: true, Reverse: true}} {
		tags, err := c.Tags(ctx, q)
		if err != nil {
			t.Fatalf("Tags() error = %v", err)
		}
		out = append(out, tags)
	}

	n, err := c.RenameTag(ctx, "a", "b")
	if err != nil {
		t.Fatalf("RenameTag() error = %v", err)
	}
	out = append(out, n)

	n, err = c.Delete(ctx, domain.SearchQuery{Query: domain.StringPtr("three")})
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	out = append(out, n)

	found, err := c.Find(ctx, domain.SearchQuery{})
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	return append(out, normalize(found))
}

// normalize drops creation times and fixes the order, which is unspecified.
func normalize(list []domain.Bookmark) []domain.Bookmark {
	out := make([]domain.Bookmark, len(list))
	for i, b := range list {
		b.CreatedAt = time.Time{}
		out[i] = b
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func TestLocalAndRemoteAgree(t *testing.T) {
	local := script(t, newLocal(t))
	remote := script(t, newRemote(t))

	if len(local) != len(remote) {
		t.Fatalf("result count differs: local %d, remote %d", len(local), len(remote))
	}
	for i := range local {
		if !reflect.DeepEqual(local[i], remote[i]) {
			t.Errorf("step %d differs:\nlocal  %#v\nremote %#v", i, local[i], remote[i])
		}
	}
}

func TestRemoteErrorsMatchLocal(t *testing.T) {
	ctx := context.Background()
	for name, c := range map[string]command.Commands{"local": newLocal(t), "remote": newRemote(t)} {
		t.Run(name, func(t *testing.T) {
			if _, err := c.Add(ctx, domain.AddRequest{URL: "  "}); command.KindOf(err) != command.KindInvalid {
				t.Errorf("Add(blank) error = %v, want invalid argument", err)
			}
			if _, err := c.RenameTag(ctx, "", "x"); command.KindOf(err) != command.KindInvalid {
				t.Errorf("RenameTag(blank) error = %v, want invalid argument", err)
			}
		})
	}
}
