package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"book-review/internal/apperror"
	"book-review/internal/data/entity"
	"book-review/internal/dto/request"
	"book-review/internal/openlibrary"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type reviewFixture struct {
	users    *mockUserRepo
	books    *mockBookRepo
	reviews  *mockReviewRepo
	sessions *mockSessionRepo
	catalog  *mockCatalog
	service  ReviewService
}

func newReviewFixture() *reviewFixture {
	users := newMockUserRepo()
	books := newMockBookRepo()
	reviews := newMockReviewRepo(users, books)
	sessions := newMockSessionRepo()
	catalog := &mockCatalog{}

	repo := newTestRepository(users, books, reviews, sessions)

	return &reviewFixture{
		users:    users,
		books:    books,
		reviews:  reviews,
		sessions: sessions,
		catalog:  catalog,
		service:  NewReviewService(repo, catalog, zap.NewNop()),
	}
}

func (f *reviewFixture) addUser(username string) *entity.User {
	user := &entity.User{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		Email:      username + "@example.com",
		Username:   username,
	}
	f.users.users[user.ID] = user
	return user
}

func (f *reviewFixture) addBook(title, author string) *entity.Book {
	olid := "OL-" + title
	book := &entity.Book{
		ID:            uuid.New(),
		OpenLibraryID: &olid,
		Title:         title,
		Author:        author,
	}
	f.books.books[book.ID] = book
	return book
}

func (f *reviewFixture) addReview(user *entity.User, book *entity.Book, rating int, text string) *entity.Review {
	now := time.Now()
	review := &entity.Review{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		UserID:       user.ID,
		BookID:       book.ID,
		Rating:       rating,
		ReviewText:   text,
	}
	f.reviews.reviews[review.ID] = review
	return review
}

func TestCreateReview_KnownBookSkipsCatalog(t *testing.T) {
	f := newReviewFixture()
	user := f.addUser("alice")
	book := f.addBook("Dune", "Frank Herbert")

	resp, err := f.service.CreateReview(context.Background(), user.ID, &request.CreateReviewRequest{
		Title:   "Dune",
		Author:  "Frank Herbert",
		Rating:  5,
		Content: "great",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, f.catalog.lookups, "existing book must not trigger a catalog lookup")
	assert.Equal(t, book.ID.String(), resp.BookID)
	assert.Equal(t, 5, resp.Rating)
	assert.Len(t, f.reviews.reviews, 1)
	assert.Len(t, f.books.books, 1, "no new book row")
}

func TestCreateReview_UnknownBookCreatesBookAndReview(t *testing.T) {
	f := newReviewFixture()
	user := f.addUser("alice")

	resp, err := f.service.CreateReview(context.Background(), user.ID, &request.CreateReviewRequest{
		Title:   "Dune",
		Author:  "Herbert",
		Rating:  5,
		Content: "great",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.catalog.lookups, "exactly one catalog lookup")
	assert.Len(t, f.books.books, 1, "exactly one book created")
	assert.Len(t, f.reviews.reviews, 1, "exactly one review created")

	created, err := f.books.FindByOpenLibraryID(context.Background(), "OL27448W")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created.ID.String(), resp.BookID)
}

func TestCreateReview_RecheckFindsConcurrentlyCreatedBook(t *testing.T) {
	f := newReviewFixture()
	user := f.addUser("alice")

	// A row with the catalog's canonical id already exists under a
	// different title spelling; the re-check by external id must find it
	// instead of inserting a duplicate.
	olid := "OL27448W"
	existing := &entity.Book{
		ID:            uuid.New(),
		OpenLibraryID: &olid,
		Title:         "Dune",
		Author:        "Frank Herbert",
	}
	f.books.books[existing.ID] = existing

	resp, err := f.service.CreateReview(context.Background(), user.ID, &request.CreateReviewRequest{
		Title:   "dune",
		Author:  "herbert",
		Rating:  4,
		Content: "still great",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, f.catalog.lookups)
	assert.Len(t, f.books.books, 1, "re-check must reuse the existing row")
	assert.Equal(t, existing.ID.String(), resp.BookID)
}

func TestCreateReview_CatalogMissAbortsWorkflow(t *testing.T) {
	f := newReviewFixture()
	user := f.addUser("alice")
	f.catalog.err = apperror.NotFoundMsg("No books found in Open Library search.")

	_, err := f.service.CreateReview(context.Background(), user.ID, &request.CreateReviewRequest{
		Title:   "No Such Book",
		Author:  "Nobody",
		Rating:  1,
		Content: "n/a",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	assert.Len(t, f.books.books, 0, "no book row on catalog miss")
	assert.Len(t, f.reviews.reviews, 0, "no review row on catalog miss")
}

func TestCreateReview_CatalogFailureAbortsWorkflow(t *testing.T) {
	f := newReviewFixture()
	user := f.addUser("alice")
	f.catalog.err = errors.New("open library returned status 502")

	_, err := f.service.CreateReview(context.Background(), user.ID, &request.CreateReviewRequest{
		Title:  "Dune",
		Author: "Herbert",
		Rating: 5,
	})
	require.Error(t, err)
	assert.Len(t, f.books.books, 0)
	assert.Len(t, f.reviews.reviews, 0)
}

func TestUpdateReview(t *testing.T) {
	f := newReviewFixture()
	alice := f.addUser("alice")
	bob := f.addUser("bob")
	book := f.addBook("Dune", "Frank Herbert")
	review := f.addReview(alice, book, 5, "great")

	tests := []struct {
		name       string
		userID     uuid.UUID
		req        *request.UpdateReviewRequest
		wantTarget error
	}{
		{
			name:   "owner updates successfully",
			userID: alice.ID,
			req: &request.UpdateReviewRequest{
				ReviewID:  review.ID.String(),
				NewRating: 4,
				NewReview: "good",
			},
		},
		{
			name:   "missing fields fail before any lookup",
			userID: alice.ID,
			req: &request.UpdateReviewRequest{
				ReviewID:  review.ID.String(),
				NewReview: "no rating",
			},
			wantTarget: apperror.ErrValidation,
		},
		{
			name:   "non-owner is forbidden",
			userID: bob.ID,
			req: &request.UpdateReviewRequest{
				ReviewID:  review.ID.String(),
				NewRating: 1,
				NewReview: "hijack attempt",
			},
			wantTarget: apperror.ErrForbidden,
		},
		{
			name:   "unknown review id is not found",
			userID: alice.ID,
			req: &request.UpdateReviewRequest{
				ReviewID:  uuid.NewString(),
				NewRating: 2,
				NewReview: "whatever",
			},
			wantTarget: apperror.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.service.UpdateReview(context.Background(), tt.userID, tt.req)

			if tt.wantTarget != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantTarget))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.req.NewRating, resp.Rating)
			assert.Equal(t, tt.req.NewReview, resp.ReviewText)
		})
	}

	// The forbidden attempt must not have touched the stored review.
	stored := f.reviews.reviews[review.ID]
	assert.Equal(t, 4, stored.Rating)
	assert.Equal(t, "good", stored.ReviewText)
}

func TestDeleteReview(t *testing.T) {
	f := newReviewFixture()
	alice := f.addUser("alice")
	bob := f.addUser("bob")
	book := f.addBook("Dune", "Frank Herbert")
	review := f.addReview(alice, book, 5, "great")

	// Non-owner is rejected and the review survives.
	err := f.service.DeleteReview(context.Background(), bob.ID, review.ID.String())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrForbidden))
	assert.Len(t, f.reviews.reviews, 1)

	// Unknown id.
	err = f.service.DeleteReview(context.Background(), alice.ID, uuid.NewString())
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	// Malformed id behaves like a missing review.
	err = f.service.DeleteReview(context.Background(), alice.ID, "not-a-uuid")
	assert.True(t, errors.Is(err, apperror.ErrNotFound))

	// Owner deletes.
	err = f.service.DeleteReview(context.Background(), alice.ID, review.ID.String())
	require.NoError(t, err)
	assert.Len(t, f.reviews.reviews, 0)
}

func TestGetBookReviews(t *testing.T) {
	f := newReviewFixture()
	alice := f.addUser("alice")
	book := f.addBook("Dune", "Frank Herbert")
	f.addReview(alice, book, 5, "great")

	reviews, err := f.service.GetBookReviews(context.Background(), &request.BookReviewsRequest{
		Title:  "Dune",
		Author: "Frank Herbert",
	})
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	_, err = f.service.GetBookReviews(context.Background(), &request.BookReviewsRequest{
		Title:  "Unknown",
		Author: "Unknown",
	})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestGetUserReviews(t *testing.T) {
	f := newReviewFixture()
	alice := f.addUser("alice")
	f.addUser("bob")
	book := f.addBook("Dune", "Frank Herbert")
	f.addReview(alice, book, 5, "great")

	reviews, err := f.service.GetUserReviews(context.Background(), &request.UserReviewsRequest{Username: "alice"})
	require.NoError(t, err)
	assert.Len(t, reviews, 1)

	// A registered user with no reviews yet still reads as empty.
	_, err = f.service.GetUserReviews(context.Background(), &request.UserReviewsRequest{Username: "bob"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

var _ BookCatalog = (*openlibrary.Client)(nil)
