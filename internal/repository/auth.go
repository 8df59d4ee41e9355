package repository

import (
	"context"

	"github.com/mange/backend/internal/domain"
)

func (r *Repos) InsertGroup(ctx context.Context, g *domain.Group) error {
	err := r.db.GetContext(ctx, &g.ID,
		`INSERT INTO groups (name) VALUES ($1) RETURNING id`, g.Name)
	return translate(err)
}

func (r *Repos) GroupByID(ctx context.Context, id int64) (*domain.Group, error) {
	var g domain.Group
	err := r.db.GetContext(ctx, &g, `SELECT * FROM groups WHERE id = $1`, id)
	if err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r *Repos) ListGroups(ctx context.Context) ([]domain.Group, error) {
	var out []domain.Group
	err := r.db.SelectContext(ctx, &out, `SELECT * FROM groups ORDER BY id`)
	return out, translate(err)
}

func (r *Repos) UpdateGroup(ctx context.Context, g *domain.Group) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE groups SET name = $2 WHERE id = $1`, g.ID, g.Name)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (r *Repos) DeleteGroup(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM groups WHERE id = $1`, id)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

func (r *Repos) InsertUser(ctx context.Context, u *domain.User) error {
	err := r.db.GetContext(ctx, &u.ID,
		`INSERT INTO users (group_id, name, password_hash) VALUES ($1, $2, $3) RETURNING id`,
		u.GroupID, u.Name, u.PasswordHash)
	return translate(err)
}

func (r *Repos) UserByName(ctx context.Context, name string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, `SELECT * FROM users WHERE name = $1`, name)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *Repos) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := r.db.SelectContext(ctx, &out, `SELECT * FROM users ORDER BY id`)
	return out, translate(err)
}

func (r *Repos) AssignUserToGroup(ctx context.Context, userID, groupID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET group_id = $2 WHERE id = $1`, userID, groupID)
	if err != nil {
		return translate(err)
	}
	return requireRow(res)
}

// ReplaceToken issues value as the user's only token, replacing any earlier
// one. The unique user_id constraint keeps the relation one-to-one.
func (r *Repos) ReplaceToken(ctx context.Context, userID int64, value string) (*domain.Token, error) {
	t := domain.Token{UserID: userID, Value: value}
	err := r.db.GetContext(ctx, &t.ID,
		`INSERT INTO tokens (user_id, value) VALUES ($1, $2) ON CONFLICT (user_id) DO UPDATE SET value = EXCLUDED.value RETURNING id`,
		userID, value)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *Repos) TokenByUser(ctx context.Context, userID int64) (*domain.Token, error) {
	var t domain.Token
	err := r.db.GetContext(ctx, &t, `SELECT * FROM tokens WHERE user_id = $1`, userID)
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// UserByToken resolves an opaque token value back to its user. Used by the
// HTTP auth middleware.
func (r *Repos) UserByToken(ctx context.Context, value string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u,
		`SELECT users.* FROM users JOIN tokens ON tokens.user_id = users.id WHERE tokens.value = $1`, value)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
