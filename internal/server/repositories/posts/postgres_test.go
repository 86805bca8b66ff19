package posts

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var postColumns = []string{"id", "title", "text", "author_id", "created_at", "updated_at"}

func TestList_NewestFirstWithNullableAuthor(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^SELECT .* FROM posts\s+ORDER BY created_at DESC, id DESC\s*$`).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(int64(2), "second", "b", int64(5), now, now).
			AddRow(int64(1), "first", "a", nil, now, now))

	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 posts, got %d", len(got))
	}
	if got[0].AuthorID == nil || *got[0].AuthorID != 5 {
		t.Fatalf("author not mapped: %+v", got[0])
	}
	if got[1].AuthorID != nil {
		t.Fatalf("null author must stay nil: %+v", got[1])
	}
}

func TestFindByTitle_EscapesWildcards(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT .* FROM posts\s+WHERE title ILIKE '%' \|\| \$1 \|\| '%'`).
		WithArgs(`50\%`).
		WillReturnRows(sqlmock.NewRows(postColumns))

	got, err := repo.FindByTitle(context.Background(), "50%")
	if err != nil {
		t.Fatalf("FindByTitle error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindByID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT .* FROM posts\s+WHERE id = \$1\s*$`
	now := time.Now()
	mock.ExpectQuery(q).WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(postColumns).AddRow(int64(1), "t", "x", nil, now, now))
	mock.ExpectQuery(q).WithArgs(int64(2)).WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(q).WithArgs(int64(3)).WillReturnError(errors.New("db err"))

	got, err := repo.FindByID(context.Background(), 1)
	if err != nil || got.Title != "t" {
		t.Fatalf("unexpected result: %+v, %v", got, err)
	}

	_, err = repo.FindByID(context.Background(), 2)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}

	_, err = repo.FindByID(context.Background(), 3)
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	author := int64(4)
	mock.ExpectQuery(`(?s)^INSERT INTO posts \(title, text, author_id\)\s+VALUES \(\$1, \$2, \$3\)\s+RETURNING id, created_at, updated_at\s*$`).
		WithArgs("hello", "world", int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(10), now, now))

	got, err := repo.Create(context.Background(), &models.Post{Title: "hello", Text: "world", AuthorID: &author})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 10 || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected post: %+v", got)
	}
}

func TestUpdate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE posts SET title = \$2, text = \$3, updated_at = now\(\)\s+WHERE id = \$1\s+RETURNING author_id, created_at, updated_at\s*$`
	now := time.Now()
	mock.ExpectQuery(q).WithArgs(int64(1), "t2", "x2").
		WillReturnRows(sqlmock.NewRows([]string{"author_id", "created_at", "updated_at"}).AddRow(int64(4), now, now))
	mock.ExpectQuery(q).WithArgs(int64(2), "t2", "x2").WillReturnError(sql.ErrNoRows)

	got, err := repo.Update(context.Background(), &models.Post{ID: 1, Title: "t2", Text: "x2"})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got.AuthorID == nil || *got.AuthorID != 4 {
		t.Fatalf("author not refreshed: %+v", got)
	}

	_, err = repo.Update(context.Background(), &models.Post{ID: 2, Title: "t2", Text: "x2"})
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE FROM posts WHERE id = \$1$`
	mock.ExpectExec(q).WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(int64(2)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(q).WithArgs(int64(3)).WillReturnError(errors.New("db err"))

	if err := repo.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Delete(context.Background(), 2); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
	if err := repo.Delete(context.Background(), 3); err == nil {
		t.Fatal("expected error")
	}
}

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"plain":  "plain",
		"50%":    `50\%`,
		"a_b":    `a\_b`,
		`c:\dir`: `c:\\dir`,
	}
	for in, want := range cases {
		if got := escapeLike(in); got != want {
			t.Fatalf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}
