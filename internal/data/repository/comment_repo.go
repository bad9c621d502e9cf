package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Comment, error)
	FindByUserAndMovie(ctx context.Context, userID, movieID int64) (*entity.Comment, error)
	CountByMovieID(ctx context.Context, movieID int64) (int64, error)
	Delete(ctx context.Context, id int64) error
}

type commentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCommentRepository(db database.PgxIface, log *zap.Logger) CommentRepository {
	return &commentRepository{
		db:  db,
		log: log.With(zap.String("repository", "comment")),
	}
}

const selectComments = `
	SELECT c.id, c.text, c.rating, c.author_id, c.movie_id, c.created_at, u.name
	FROM comments c
	JOIN users u ON u.id = c.author_id
`

func scanComment(row pgx.Row) (*entity.Comment, error) {
	var (
		comment entity.Comment
		rating  pgtype.Int4
	)
	err := row.Scan(
		&comment.ID,
		&comment.Text,
		&rating,
		&comment.AuthorID,
		&comment.MovieID,
		&comment.CreatedAt,
		&comment.AuthorName,
	)
	if err != nil {
		return nil, err
	}
	if rating.Valid {
		v := int(rating.Int32)
		comment.Rating = &v
	}
	return &comment, nil
}

// Create inserts the comment. A second comment by the same author on the
// same movie violates comments_author_movie_key and yields ErrDuplicateEntry.
func (r *commentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	query := `
		INSERT INTO comments (text, rating, author_id, movie_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var rating pgtype.Int4
	if comment.Rating != nil {
		rating = pgtype.Int4{Int32: int32(*comment.Rating), Valid: true}
	}

	err := r.db.QueryRow(ctx, query,
		comment.Text,
		rating,
		comment.AuthorID,
		comment.MovieID,
		comment.CreatedAt,
	).Scan(&comment.ID)

	if err != nil {
		err = mapPgError(err)
		r.log.Error("Failed to create comment",
			zap.Error(err),
			zap.Int64("user_id", comment.AuthorID),
			zap.Int64("movie_id", comment.MovieID),
		)
		return fmt.Errorf("create comment on movie %d by user %d: %w",
			comment.MovieID, comment.AuthorID, err)
	}

	return nil
}

func (r *commentRepository) FindByID(ctx context.Context, id int64) (*entity.Comment, error) {
	query := selectComments + `WHERE c.id = $1`

	comment, err := scanComment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by ID",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return nil, fmt.Errorf("find comment by ID %d: %w", id, err)
	}

	return comment, nil
}

// FindByMovieID returns the comments on a movie in insertion order.
func (r *commentRepository) FindByMovieID(ctx context.Context, movieID int64) ([]*entity.Comment, error) {
	query := selectComments + `
		WHERE c.movie_id = $1
		ORDER BY c.id
	`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find comments by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find comments by movie ID %d: %w", movieID, err)
	}
	defer rows.Close()

	var comments []*entity.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			r.log.Error("Failed to scan comment row", zap.Error(err))
			return nil, fmt.Errorf("scan comment row: %w", err)
		}
		comments = append(comments, comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comment rows: %w", err)
	}

	return comments, nil
}

func (r *commentRepository) FindByUserAndMovie(ctx context.Context, userID, movieID int64) (*entity.Comment, error) {
	query := selectComments + `
		WHERE c.author_id = $1 AND c.movie_id = $2
		LIMIT 1
	`

	comment, err := scanComment(r.db.QueryRow(ctx, query, userID, movieID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find comment by user and movie",
			zap.Error(err),
			zap.Int64("user_id", userID),
			zap.Int64("movie_id", movieID),
		)
		return nil, fmt.Errorf("find comment by user %d and movie %d: %w", userID, movieID, err)
	}

	return comment, nil
}

func (r *commentRepository) CountByMovieID(ctx context.Context, movieID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM comments WHERE movie_id = $1`

	var count int64
	if err := r.db.QueryRow(ctx, query, movieID).Scan(&count); err != nil {
		r.log.Error("Failed to count comments by movie ID",
			zap.Error(err),
			zap.Int64("movie_id", movieID),
		)
		return 0, fmt.Errorf("count comments by movie ID %d: %w", movieID, err)
	}

	return count, nil
}

func (r *commentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM comments WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete comment",
			zap.Error(err),
			zap.Int64("comment_id", id),
		)
		return fmt.Errorf("delete comment %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete comment %d: %w", id, ErrNotFound)
	}

	r.log.Info("Comment deleted", zap.Int64("comment_id", id))
	return nil
}
