package request

// CommentRequest carries the rich text produced by the editor and a score.
type CommentRequest struct {
	Text   string `form:"text" validate:"required"`
	Rating *int   `form:"rating" validate:"required,min=0,max=10" message:"Rating must be between 0 and 10" parse:"Rating must be a whole number"`
}
