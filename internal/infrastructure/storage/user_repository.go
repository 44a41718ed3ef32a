package storage

import (
	"context"
	"maps"
	"slices"
	"strings"

	"github.com/jhoicas/Gestion-api/internal/domain"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
	"github.com/jhoicas/Gestion-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.UserCodeRepository = (*UserCodeRepo)(nil)
	_ repository.SessionRepository  = (*SessionRepo)(nil)
)

// UserRepo usuarios (app_users).
type UserRepo struct {
	docs docs[entity.User]
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	var out []*entity.User
	r.docs.read(func(items []entity.User) {
		out = make([]*entity.User, 0, len(items))
		for i := range items {
			u := items[i]
			out = append(out, &u)
		}
	})
	return out, nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.find(func(u entity.User) bool { return u.ID == id }), nil
}

func (r *UserRepo) FindByName(_ context.Context, name string) (*entity.User, error) {
	name = strings.TrimSpace(name)
	return r.find(func(u entity.User) bool { return strings.EqualFold(u.Name, name) }), nil
}

func (r *UserRepo) find(match func(entity.User) bool) *entity.User {
	var out *entity.User
	r.docs.read(func(items []entity.User) {
		if i := slices.IndexFunc(items, match); i >= 0 {
			u := items[i]
			out = &u
		}
	})
	return out
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	return r.docs.write(ctx, func(items []entity.User) ([]entity.User, error) {
		return append(items, *user), nil
	})
}

func (r *UserRepo) Update(ctx context.Context, user *entity.User) error {
	return r.docs.write(ctx, func(items []entity.User) ([]entity.User, error) {
		i := slices.IndexFunc(items, func(u entity.User) bool { return u.ID == user.ID })
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		items[i] = *user
		return items, nil
	})
}

func (r *UserRepo) Delete(ctx context.Context, id string) error {
	return r.docs.write(ctx, func(items []entity.User) ([]entity.User, error) {
		i := slices.IndexFunc(items, func(u entity.User) bool { return u.ID == id })
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		return slices.Delete(items, i, i+1), nil
	})
}

func (r *UserRepo) UpdateFunc(ctx context.Context, id string, fn func(user *entity.User, all []entity.User) error) (*entity.User, error) {
	var out *entity.User
	err := r.docs.write(ctx, func(items []entity.User) ([]entity.User, error) {
		i := slices.IndexFunc(items, func(u entity.User) bool { return u.ID == id })
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		u := items[i]
		if err := fn(&u, slices.Clone(items)); err != nil {
			return nil, err
		}
		items[i] = u
		out = &u
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *UserRepo) DeleteFunc(ctx context.Context, id string, check func(user entity.User, all []entity.User) error) error {
	return r.docs.write(ctx, func(items []entity.User) ([]entity.User, error) {
		i := slices.IndexFunc(items, func(u entity.User) bool { return u.ID == id })
		if i < 0 {
			return nil, domain.ErrUserNotFound
		}
		if err := check(items[i], slices.Clone(items)); err != nil {
			return nil, err
		}
		return slices.Delete(items, i, i+1), nil
	})
}

// UserCodeRepo mapa userID → hash bcrypt del código (app_user_codes).
type UserCodeRepo struct {
	doc *document[map[string]string]
}

func (r *UserCodeRepo) GetHash(_ context.Context, userID string) (string, error) {
	codes := r.doc.get()
	if codes == nil {
		return "", nil
	}
	return (*codes)[userID], nil
}

func (r *UserCodeRepo) SetHash(ctx context.Context, userID, hash string) error {
	return r.doc.update(ctx, func(cur *map[string]string) (map[string]string, error) {
		next := map[string]string{}
		if cur != nil {
			next = maps.Clone(*cur)
		}
		next[userID] = hash
		return next, nil
	})
}

func (r *UserCodeRepo) Delete(ctx context.Context, userID string) error {
	return r.doc.update(ctx, func(cur *map[string]string) (map[string]string, error) {
		if cur == nil {
			return nil, errSkip
		}
		if _, ok := (*cur)[userID]; !ok {
			return nil, errSkip
		}
		next := maps.Clone(*cur)
		delete(next, userID)
		return next, nil
	})
}

// SessionRepo usuario de la última sesión abierta (app_current_user).
type SessionRepo struct {
	doc *document[entity.Session]
}

func (r *SessionRepo) Current(_ context.Context) (*entity.Session, error) {
	return r.doc.get(), nil
}

func (r *SessionRepo) Save(ctx context.Context, session *entity.Session) error {
	return r.doc.set(ctx, *session)
}

func (r *SessionRepo) Clear(ctx context.Context) error {
	return r.doc.clear(ctx)
}
