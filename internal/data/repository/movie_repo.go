package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type MovieRepository interface {
	Create(ctx context.Context, movie *entity.Movie) error
	FindByID(ctx context.Context, id int64) (*entity.Movie, error)
	FindAll(ctx context.Context) ([]*entity.Movie, error)
	CountAll(ctx context.Context) (int64, error)
	// Delete removes the movie and every comment on it.
	Delete(ctx context.Context, id int64) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

// selectMovies joins the contributor and aggregates comment ratings.
const selectMovies = `
	SELECT m.id, m.title, m.year, m.img_url, m.description, m.author_id, m.created_at,
	       u.name, COALESCE(AVG(c.rating), 0)::float8
	FROM movies m
	JOIN users u ON u.id = m.author_id
	LEFT JOIN comments c ON c.movie_id = m.id
`

func scanMovie(row pgx.Row) (*entity.Movie, error) {
	var movie entity.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.Year,
		&movie.ImgURL,
		&movie.Description,
		&movie.AuthorID,
		&movie.CreatedAt,
		&movie.AuthorName,
		&movie.AverageRating,
	)
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie) error {
	query := `
		INSERT INTO movies (title, year, img_url, description, author_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		movie.Title,
		movie.Year,
		movie.ImgURL,
		movie.Description,
		movie.AuthorID,
		movie.CreatedAt,
	).Scan(&movie.ID)

	if err != nil {
		err = mapPgError(err)
		if errors.Is(err, ErrDuplicateEntry) {
			r.log.Warn("Movie already in catalog", zap.String("title", movie.Title), zap.Error(err))
		} else {
			r.log.Error("Failed to create movie",
				zap.Error(err),
				zap.String("title", movie.Title),
			)
		}
		return fmt.Errorf("create movie %q: %w", movie.Title, err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id int64) (*entity.Movie, error) {
	query := selectMovies + `
		WHERE m.id = $1
		GROUP BY m.id, u.name
	`

	movie, err := scanMovie(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return nil, fmt.Errorf("find movie %d: %w", id, err)
	}

	return movie, nil
}

// FindAll returns the whole catalog in insertion order.
func (r *movieRepository) FindAll(ctx context.Context) ([]*entity.Movie, error) {
	query := selectMovies + `
		GROUP BY m.id, u.name
		ORDER BY m.id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find all movies", zap.Error(err))
		return nil, fmt.Errorf("find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate movie rows: %w", err)
	}

	r.log.Debug("Movies found", zap.Int("count", len(movies)))

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM movies`

	var total int64
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("count movies: %w", err)
	}

	return total, nil
}

// Delete runs in one transaction so the comments and the movie go together,
// whatever cascade rules the schema carries.
func (r *movieRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin delete transaction", zap.Error(err), zap.Int64("movie_id", id))
		return fmt.Errorf("delete movie %d: begin: %w", id, err)
	}

	comments, err := tx.Exec(ctx, `DELETE FROM comments WHERE movie_id = $1`, id)
	if err != nil {
		tx.Rollback(ctx)
		r.log.Error("Failed to delete movie comments",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete comments of movie %d: %w", id, err)
	}

	result, err := tx.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		tx.Rollback(ctx)
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.Int64("movie_id", id),
		)
		return fmt.Errorf("delete movie %d: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		tx.Rollback(ctx)
		return fmt.Errorf("delete movie %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit movie delete", zap.Error(err), zap.Int64("movie_id", id))
		return fmt.Errorf("delete movie %d: commit: %w", id, err)
	}

	r.log.Info("Movie deleted",
		zap.Int64("movie_id", id),
		zap.Int64("comments_deleted", comments.RowsAffected()),
	)
	return nil
}
