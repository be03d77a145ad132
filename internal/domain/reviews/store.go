package reviews

import "context"

type Store interface {
	ListAll(ctx context.Context) ([]Review, error)
	Create(ctx context.Context, in CreateInput) (*Review, error)
	GetByID(ctx context.Context, id string) (*Review, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Review, error)
	Delete(ctx context.Context, id string) error
}

