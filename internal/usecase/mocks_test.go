package usecase

import (
	"context"
	"errors"
	"fmt"

	"book-review/internal/data/entity"
	"book-review/internal/data/repository"
	"book-review/internal/openlibrary"

	"github.com/google/uuid"
)

// Hand-written in-memory mocks. The services only see the repository
// interfaces, so these swap in without touching the code under test.

type mockUserRepo struct {
	users     map[uuid.UUID]*entity.User
	createErr error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *entity.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user %s: duplicate key value violates unique constraint", user.Email)
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, nil
}

type mockBookRepo struct {
	books     map[uuid.UUID]*entity.Book
	createErr error
}

func newMockBookRepo() *mockBookRepo {
	return &mockBookRepo{books: make(map[uuid.UUID]*entity.Book)}
}

func (m *mockBookRepo) Create(_ context.Context, book *entity.Book) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *book
	m.books[book.ID] = &stored
	return nil
}

func (m *mockBookRepo) FindByOpenLibraryID(_ context.Context, openLibraryID string) (*entity.Book, error) {
	for _, b := range m.books {
		if b.OpenLibraryID != nil && *b.OpenLibraryID == openLibraryID {
			result := *b
			return &result, nil
		}
	}
	return nil, nil
}

func (m *mockBookRepo) FindByTitleAuthor(_ context.Context, title, author string) (*entity.Book, error) {
	for _, b := range m.books {
		if b.Title == title && b.Author == author {
			result := *b
			return &result, nil
		}
	}
	return nil, nil
}

type mockReviewRepo struct {
	reviews   map[uuid.UUID]*entity.Review
	users     *mockUserRepo
	books     *mockBookRepo
	createErr error
}

func newMockReviewRepo(users *mockUserRepo, books *mockBookRepo) *mockReviewRepo {
	return &mockReviewRepo{
		reviews: make(map[uuid.UUID]*entity.Review),
		users:   users,
		books:   books,
	}
}

func (m *mockReviewRepo) Create(_ context.Context, review *entity.Review) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *review
	m.reviews[review.ID] = &stored
	return nil
}

func (m *mockReviewRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Review, error) {
	review, ok := m.reviews[id]
	if !ok {
		return nil, nil
	}
	result := *review
	return &result, nil
}

func (m *mockReviewRepo) FindByBook(ctx context.Context, title, author string) ([]*entity.Review, error) {
	book, err := m.books.FindByTitleAuthor(ctx, title, author)
	if err != nil || book == nil {
		return nil, err
	}
	var out []*entity.Review
	for _, r := range m.reviews {
		if r.BookID == book.ID {
			result := *r
			out = append(out, &result)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) FindByUsername(ctx context.Context, username string) ([]*entity.Review, error) {
	user, err := m.users.FindByUsername(ctx, username)
	if err != nil || user == nil {
		return nil, err
	}
	var out []*entity.Review
	for _, r := range m.reviews {
		if r.UserID == user.ID {
			result := *r
			out = append(out, &result)
		}
	}
	return out, nil
}

func (m *mockReviewRepo) Update(_ context.Context, review *entity.Review) error {
	stored, ok := m.reviews[review.ID]
	if !ok || stored.UserID != review.UserID {
		return fmt.Errorf("review %s not found for user %s", review.ID, review.UserID)
	}
	updated := *review
	m.reviews[review.ID] = &updated
	return nil
}

func (m *mockReviewRepo) Delete(_ context.Context, id, userID uuid.UUID) error {
	stored, ok := m.reviews[id]
	if !ok || stored.UserID != userID {
		return fmt.Errorf("review %s not found for user %s", id, userID)
	}
	delete(m.reviews, id)
	return nil
}

type mockSessionRepo struct {
	sessions  map[string]*entity.Session
	createErr error
	revokeErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (m *mockSessionRepo) Create(_ context.Context, session *entity.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	stored := *session
	m.sessions[session.Token.String()] = &stored
	return nil
}

func (m *mockSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	session, ok := m.sessions[token]
	if !ok || session.RevokedAt != nil {
		return nil, nil
	}
	result := *session
	return &result, nil
}

func (m *mockSessionRepo) Revoke(_ context.Context, token string) error {
	if m.revokeErr != nil {
		return m.revokeErr
	}
	session, ok := m.sessions[token]
	if !ok || session.RevokedAt != nil {
		return errors.New("session not found or already revoked")
	}
	now := session.CreatedAt
	session.RevokedAt = &now
	return nil
}

func (m *mockSessionRepo) CleanExpiredSessions(_ context.Context) error {
	return nil
}

// mockCatalog counts lookups so the tests can assert the catalog is only
// consulted for unknown title/author pairs.
type mockCatalog struct {
	book    *openlibrary.Book
	err     error
	lookups int
}

func (m *mockCatalog) Lookup(_ context.Context, title, author string) (*openlibrary.Book, error) {
	m.lookups++
	if m.err != nil {
		return nil, m.err
	}
	if m.book != nil {
		return m.book, nil
	}
	cover := "https://covers.openlibrary.org/b/id/1-M.jpg"
	return &openlibrary.Book{
		OpenLibraryID: "OL27448W",
		Title:         title,
		Author:        author,
		CoverURL:      &cover,
	}, nil
}

func newTestRepository(users *mockUserRepo, books *mockBookRepo, reviews *mockReviewRepo, sessions *mockSessionRepo) *repository.Repository {
	return &repository.Repository{
		User:    users,
		Session: sessions,
		Book:    books,
		Review:  reviews,
	}
}
