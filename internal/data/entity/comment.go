package entity

type Comment struct {
	Base
	Text     string `db:"text"`
	Rating   *int   `db:"rating"`
	AuthorID int64  `db:"author_id"`
	MovieID  int64  `db:"movie_id"`

	AuthorName string `db:"-"`
}

// AverageRating is the mean of the ratings present on comments, or 0 when
// none of them carries a rating.
func AverageRating(comments []*Comment) float64 {
	var sum, count int
	for _, c := range comments {
		if c == nil || c.Rating == nil {
			continue
		}
		sum += *c.Rating
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}
