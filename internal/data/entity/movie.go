package entity

type Movie struct {
	Base
	Title       string `db:"title"`
	Year        int    `db:"year"`
	ImgURL      string `db:"img_url"`
	Description string `db:"description"`
	AuthorID    int64  `db:"author_id"`

	// Filled by joins, not stored on the row.
	AuthorName    string  `db:"-"`
	AverageRating float64 `db:"-"`
}
