package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/redesocial/internal/common"
	"github.com/dmitrijs2005/redesocial/internal/dbx"
	"github.com/dmitrijs2005/redesocial/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query :=
		`SELECT id, title, text, author_id, created_at, updated_at FROM posts
		 ORDER BY created_at DESC, id DESC
		 `
	return r.selectMany(ctx, query)
}

func (r *PostgresRepository) FindByTitle(ctx context.Context, fragment string) ([]*models.Post, error) {
	query :=
		`SELECT id, title, text, author_id, created_at, updated_at FROM posts
		 WHERE title ILIKE '%' || $1 || '%'
		 ORDER BY created_at DESC, id DESC
		 `
	return r.selectMany(ctx, query, escapeLike(fragment))
}

func (r *PostgresRepository) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	query :=
		`SELECT id, title, text, author_id, created_at, updated_at FROM posts
		 WHERE id = $1
		 `

	p := &models.Post{}
	var author sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Title, &p.Text, &author, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	p.AuthorID = authorPtr(author)

	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (title, text, author_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, post.Title, post.Text, authorArg(post.AuthorID)).
		Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`UPDATE posts SET title = $2, text = $3, updated_at = now()
		 WHERE id = $1
		 RETURNING author_id, created_at, updated_at
		 `

	var author sql.NullInt64
	err := r.db.QueryRowContext(ctx, query, post.ID, post.Title, post.Text).
		Scan(&author, &post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	post.AuthorID = authorPtr(author)

	return post, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) selectMany(ctx context.Context, query string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		p := &models.Post{}
		var author sql.NullInt64
		if err := rows.Scan(&p.ID, &p.Title, &p.Text, &author, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.AuthorID = authorPtr(author)
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func authorPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

func authorArg(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}

// escapeLike makes % and _ in user input match literally.
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
