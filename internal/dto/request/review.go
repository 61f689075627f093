package request

type BookReviewsRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

type UserReviewsRequest struct {
	Username string `json:"username"`
}

type CreateReviewRequest struct {
	Title   string `json:"title"`
	Author  string `json:"author"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// UpdateReviewRequest requires all three fields before any lookup happens.
// A zero rating counts as missing.
type UpdateReviewRequest struct {
	ReviewID  string `json:"review_id" validate:"required,uuid4"`
	NewRating int    `json:"new_rating" validate:"required,min=1,max=5"`
	NewReview string `json:"new_review" validate:"required"`
}

type DeleteReviewRequest struct {
	ReviewID string `json:"review_id"`
}
