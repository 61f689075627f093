package adaptor

import (
	"encoding/json"
	"net/http"

	"book-review/internal/dto/request"
	"book-review/internal/usecase"
	"book-review/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// GetBookReviews handles POST /reviews/book (public)
func (h *ReviewHandler) GetBookReviews(w http.ResponseWriter, r *http.Request) {
	var req request.BookReviewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reviews, err := h.service.GetBookReviews(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get book reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// GetUserReviews handles POST /reviews/user (public)
func (h *ReviewHandler) GetUserReviews(w http.ResponseWriter, r *http.Request) {
	var req request.UserReviewsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	reviews, err := h.service.GetUserReviews(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "get user reviews")
		return
	}

	utils.ResponseSuccess(w, "success", reviews)
}

// CreateReview handles POST /review (protected). Any workflow failure,
// including a catalog miss, surfaces as 500: a review request for a book the
// catalog cannot resolve has no dedicated status here.
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please log in.")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseInternalError(w, "Invalid request body")
		return
	}

	review, err := h.service.CreateReview(r.Context(), identity.UserID, &req)
	if err != nil {
		h.log.Error("Failed to create review", zap.Error(err))
		utils.ResponseInternalError(w, err.Error())
		return
	}

	utils.ResponseCreated(w, "success", review)
}

// UpdateReview handles PUT /review (protected, owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please log in.")
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), identity.UserID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "success", review)
}

// DeleteReview handles DELETE /review (protected, owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	identity, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please log in.")
		return
	}

	var req request.DeleteReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.DeleteReview(r.Context(), identity.UserID, req.ReviewID); err != nil {
		writeServiceError(w, h.log, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted successfully.", nil)
}
