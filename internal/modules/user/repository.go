package user

import "context"

// Repository defines data access for staff profiles.
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByUID(ctx context.Context, uid string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	List(ctx context.Context) ([]*Profile, error)
	Delete(ctx context.Context, uid string) error
}
