package response

import (
	"html/template"
	"time"

	"movie-catalog/internal/data/entity"
	"movie-catalog/pkg/utils"
)

type CommentResponse struct {
	ID         int64
	Text       template.HTML
	Rating     *int
	AuthorID   int64
	AuthorName string
	CreatedAt  time.Time
	CanDelete  bool
}

// CommentToResponse re-sanitizes the stored rich text before it is marked
// safe for the template.
func CommentToResponse(comment *entity.Comment, viewerID int64) CommentResponse {
	return CommentResponse{
		ID:         comment.ID,
		Text:       template.HTML(utils.SanitizeHTML(comment.Text)),
		Rating:     comment.Rating,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		CreatedAt:  comment.CreatedAt,
		CanDelete:  viewerID != 0 && comment.AuthorID == viewerID,
	}
}
