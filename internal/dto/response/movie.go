package response

import (
	"fmt"
	"time"

	"movie-catalog/internal/data/entity"
)

type MovieResponse struct {
	ID            int64
	Title         string
	Year          int
	ImgURL        string
	Description   string
	AuthorID      int64
	AuthorName    string
	AverageRating float64
	CreatedAt     time.Time
}

// Rating formats the average with one decimal.
func (m MovieResponse) Rating() string {
	return fmt.Sprintf("%.1f", m.AverageRating)
}

type MovieDetailResponse struct {
	MovieResponse
	Comments []CommentResponse
	// Commented is true when the viewer already reviewed this movie.
	Commented bool
}

// CandidateResponse is a provider search result offered for selection.
type CandidateResponse struct {
	ProviderID int
	Title      string
	Year       int
	Overview   string
	PosterURL  string
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:            movie.ID,
		Title:         movie.Title,
		Year:          movie.Year,
		ImgURL:        movie.ImgURL,
		Description:   movie.Description,
		AuthorID:      movie.AuthorID,
		AuthorName:    movie.AuthorName,
		AverageRating: movie.AverageRating,
		CreatedAt:     movie.CreatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	resp := make([]MovieResponse, 0, len(movies))
	for _, m := range movies {
		resp = append(resp, MovieToResponse(m))
	}
	return resp
}

// MovieToDetailResponse renders a movie with its comments as seen by viewerID
// (0 for anonymous visitors).
func MovieToDetailResponse(movie *entity.Movie, comments []*entity.Comment, viewerID int64) MovieDetailResponse {
	detail := MovieDetailResponse{
		MovieResponse: MovieToResponse(movie),
		Comments:      make([]CommentResponse, 0, len(comments)),
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, CommentToResponse(c, viewerID))
		if viewerID != 0 && c.AuthorID == viewerID {
			detail.Commented = true
		}
	}
	return detail
}
