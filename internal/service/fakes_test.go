package service

import (
	"context"
	"sort"
	"time"

	"github.com/KehaoC/GF/internal/model"
	"github.com/KehaoC/GF/internal/repository"
	"github.com/KehaoC/GF/internal/storage"
)

// In-memory repository fakes. They mirror the sentinel-error behavior of the
// MySQL repositories so the services under test see the same surface.

type fakeUserRepo struct {
	nextID int64
	users  map[int64]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*model.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range r.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *model.User) error {
	u, ok := r.users[user.ID]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.Email = user.Email
	u.PasswordHash = user.PasswordHash
	u.IsActive = user.IsActive
	u.UpdatedAt = time.Now()
	return nil
}

type fakeProjectRepo struct {
	nextID   int64
	projects map[int64]*model.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[int64]*model.Project)}
}

func (r *fakeProjectRepo) Create(_ context.Context, p *model.Project) error {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	r.projects[p.ID] = &cp
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id int64) (*model.Project, error) {
	p, ok := r.projects[id]
	if !ok {
		return nil, repository.ErrProjectNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProjectRepo) ListByOwner(_ context.Context, ownerID int64, offset, limit int) ([]model.Project, error) {
	var result []model.Project
	for _, p := range r.projects {
		if p.OwnerID == ownerID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return page(result, offset, limit), nil
}

func (r *fakeProjectRepo) ListExamples(_ context.Context, offset, limit int) ([]model.Project, error) {
	var result []model.Project
	for _, p := range r.projects {
		if p.IsExample {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return page(result, offset, limit), nil
}

func (r *fakeProjectRepo) Update(_ context.Context, p *model.Project) error {
	existing, ok := r.projects[p.ID]
	if !ok {
		return repository.ErrProjectNotFound
	}
	existing.Title = p.Title
	existing.Thumbnail = p.Thumbnail
	existing.Elements = p.Elements
	existing.IsExample = p.IsExample
	existing.UpdatedAt = time.Now()
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.projects[id]; !ok {
		return repository.ErrProjectNotFound
	}
	delete(r.projects, id)
	return nil
}

type fakeCardRepo struct {
	nextID int64
	cards  map[int64]*model.CustomCard
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{cards: make(map[int64]*model.CustomCard)}
}

func (r *fakeCardRepo) Create(_ context.Context, c *model.CustomCard) error {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	cp := *c
	r.cards[c.ID] = &cp
	return nil
}

func (r *fakeCardRepo) GetByID(_ context.Context, id int64) (*model.CustomCard, error) {
	c, ok := r.cards[id]
	if !ok {
		return nil, repository.ErrCardNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCardRepo) ListByOwner(_ context.Context, ownerID int64) ([]model.CustomCard, error) {
	var result []model.CustomCard
	for _, c := range r.cards {
		if c.OwnerID == ownerID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeCardRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.cards[id]; !ok {
		return repository.ErrCardNotFound
	}
	delete(r.cards, id)
	return nil
}

type fakeBlobStore struct {
	blobs map[string][]byte
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{blobs: make(map[string][]byte)}
}

func (s *fakeBlobStore) Put(name string, data []byte) error {
	s.blobs[name] = append([]byte(nil), data...)
	return nil
}

func (s *fakeBlobStore) Get(name string) ([]byte, error) {
	data, ok := s.blobs[name]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (s *fakeBlobStore) Delete(name string) error {
	if _, ok := s.blobs[name]; !ok {
		return storage.ErrNotFound
	}
	delete(s.blobs, name)
	return nil
}

func page(items []model.Project, offset, limit int) []model.Project {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit < len(items) {
		items = items[:limit]
	}
	return items
}
