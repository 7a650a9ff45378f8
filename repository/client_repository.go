//go:generate go run go.uber.org/mock/mockgen -source=client_repository.go -destination=mocks/mock_client_repository.go -package=mocks
package repository

import (
	"context"

	"credit-score/domain"
)

// ClientRepository stores clients together with their messages and debts.
// Lookups of a missing client return domain.ErrClientNotFound.
type ClientRepository interface {
	List(ctx context.Context) ([]domain.Client, error)
	FindByID(ctx context.Context, id int64) (domain.Client, error)
	Create(ctx context.Context, client domain.Client) (domain.Client, error)
	Delete(ctx context.Context, id int64) error
	Ping(ctx context.Context) error
}
