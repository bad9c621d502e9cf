package request

type FindMovieRequest struct {
	Name string `form:"name" validate:"required"`
}
