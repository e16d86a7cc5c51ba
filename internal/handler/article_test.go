package handler_test

import (
	"context"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/repairhub/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type memArticles struct {
	mu       sync.Mutex
	nextID   uint
	articles map[uint]*model.Article
}

func newMemArticles() *memArticles {
	return &memArticles{nextID: 1, articles: make(map[uint]*model.Article)}
}

func (s *memArticles) GetByID(ctx context.Context, id uint) (*model.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	article, ok := s.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *article
	return &copied, nil
}

func (s *memArticles) GetAll(ctx context.Context, limit, offset int) ([]model.Article, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.Article
	for _, article := range s.articles {
		all = append(all, *article)
	}
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (s *memArticles) Create(ctx context.Context, article *model.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	article.ID = s.nextID
	s.nextID++
	copied := *article
	s.articles[article.ID] = &copied
	return nil
}

func (s *memArticles) Update(ctx context.Context, id uint, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	article, ok := s.articles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if title, ok := fields["title"].(string); ok {
		article.Title = title
	}
	if description, ok := fields["description"].(string); ok {
		article.Description = description
	}
	if price, ok := fields["price"].(float64); ok {
		article.Price = price
	}
	return nil
}

func (s *memArticles) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.articles, id)
	return nil
}

type memRepairs struct {
	mu       sync.Mutex
	nextID   uint
	requests map[uint]*model.RepairRequest
}

func newMemRepairs() *memRepairs {
	return &memRepairs{nextID: 1, requests: make(map[uint]*model.RepairRequest)}
}

func (s *memRepairs) GetByID(ctx context.Context, id uint) (*model.RepairRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *request
	return &copied, nil
}

func (s *memRepairs) GetAll(ctx context.Context, limit, offset int) ([]model.RepairRequest, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var all []model.RepairRequest
	for _, request := range s.requests {
		all = append(all, *request)
	}
	return all, int64(len(all)), nil
}

func (s *memRepairs) GetByUser(ctx context.Context, userID uint, limit, offset int) ([]model.RepairRequest, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var mine []model.RepairRequest
	for _, request := range s.requests {
		if request.UserID == userID {
			mine = append(mine, *request)
		}
	}
	return mine, int64(len(mine)), nil
}

func (s *memRepairs) Create(ctx context.Context, request *model.RepairRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	request.ID = s.nextID
	s.nextID++
	copied := *request
	s.requests[request.ID] = &copied
	return nil
}

func (s *memRepairs) UpdateStatus(ctx context.Context, id uint, status model.RepairStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	request, ok := s.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	request.Status = status
	return nil
}

// seedAccount inserts a user with the given role directly into the store.
func seedAccount(t *testing.T, users *memUsers, email, password string, role model.Role) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	if err := users.Create(context.Background(), &model.User{
		FirstName: "Seeded",
		LastName:  "Account",
		Email:     email,
		Password:  string(hash),
		Role:      role,
	}); err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestArticleMutationRequiresAdmin(t *testing.T) {
	env := newTestEnv(t)
	seedAccount(t, env.users, "admin@example.com", "admin-password1", model.RoleAdmin)
	env.register(t, "user@example.com", "user-password1")

	adminToken := env.login(t, "admin@example.com", "admin-password1")
	userToken := env.login(t, "user@example.com", "user-password1")

	payload := gin.H{"title": "Screen kit", "price": 49.99}

	// Anonymous and non-admin writes are rejected.
	if w := env.doJSON(t, http.MethodPost, "/api/v1/articles", "", payload); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create: status %d, want 401", w.Code)
	}
	if w := env.doJSON(t, http.MethodPost, "/api/v1/articles", userToken, payload); w.Code != http.StatusForbidden {
		t.Errorf("non-admin create: status %d, want 403", w.Code)
	}

	w := env.doJSON(t, http.MethodPost, "/api/v1/articles", adminToken, payload)
	if w.Code != http.StatusCreated {
		t.Fatalf("admin create: status %d body %s", w.Code, w.Body.String())
	}

	// Reads are public.
	if w := env.doJSON(t, http.MethodGet, "/api/v1/articles", "", nil); w.Code != http.StatusOK {
		t.Errorf("anonymous list: status %d, want 200", w.Code)
	}
	if w := env.doJSON(t, http.MethodGet, "/api/v1/articles/1", "", nil); w.Code != http.StatusOK {
		t.Errorf("anonymous get: status %d, want 200", w.Code)
	}

	if w := env.doJSON(t, http.MethodDelete, "/api/v1/articles/1", userToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("non-admin delete: status %d, want 403", w.Code)
	}
	if w := env.doJSON(t, http.MethodDelete, "/api/v1/articles/1", adminToken, nil); w.Code != http.StatusOK {
		t.Errorf("admin delete: status %d, want 200", w.Code)
	}
	if w := env.doJSON(t, http.MethodGet, "/api/v1/articles/1", "", nil); w.Code != http.StatusNotFound {
		t.Errorf("get deleted article: status %d, want 404", w.Code)
	}
}

func TestRepairWorkflowRoles(t *testing.T) {
	env := newTestEnv(t)
	seedAccount(t, env.users, "staff@example.com", "staff-password1", model.RoleEmployee)
	env.register(t, "customer@example.com", "customer-pass1")

	staffToken := env.login(t, "staff@example.com", "staff-password1")
	customerToken := env.login(t, "customer@example.com", "customer-pass1")

	w := env.doJSON(t, http.MethodPost, "/api/v1/repairs", customerToken, gin.H{
		"subject": "Cracked screen",
		"details": gin.H{"device": "phone", "model": "X200"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create repair: status %d body %s", w.Code, w.Body.String())
	}

	// Customers see their own requests but not the staff list.
	if w := env.doJSON(t, http.MethodGet, "/api/v1/repairs/mine", customerToken, nil); w.Code != http.StatusOK {
		t.Errorf("own repairs: status %d, want 200", w.Code)
	}
	if w := env.doJSON(t, http.MethodGet, "/api/v1/repairs", customerToken, nil); w.Code != http.StatusForbidden {
		t.Errorf("customer staff-list: status %d, want 403", w.Code)
	}

	if w := env.doJSON(t, http.MethodGet, "/api/v1/repairs", staffToken, nil); w.Code != http.StatusOK {
		t.Errorf("staff list: status %d, want 200", w.Code)
	}

	// Status transitions are staff-only and validated.
	if w := env.doJSON(t, http.MethodPatch, "/api/v1/repairs/1/status", customerToken, gin.H{"status": "done"}); w.Code != http.StatusForbidden {
		t.Errorf("customer status change: status %d, want 403", w.Code)
	}
	if w := env.doJSON(t, http.MethodPatch, "/api/v1/repairs/1/status", staffToken, gin.H{"status": "nonsense"}); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("invalid status: status %d, want 422", w.Code)
	}
	if w := env.doJSON(t, http.MethodPatch, "/api/v1/repairs/1/status", staffToken, gin.H{"status": "in_progress"}); w.Code != http.StatusOK {
		t.Errorf("staff status change: status %d, want 200", w.Code)
	}
}
