package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credit-score/domain"
)

func sampleClient(name string) domain.Client {
	at := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	return domain.Client{
		Name:    name,
		Rut:     "11.111.111-1",
		Salary:  900_000,
		Savings: 100_000,
		Messages: []domain.Message{
			{Text: "hola", Role: domain.RoleClient, SentAt: at},
			{Text: "buenas", Role: domain.RoleAdvisor, SentAt: at.Add(time.Minute)},
		},
		Debts: []domain.Debt{
			{Institution: "Retail", Amount: 50_000, DueDate: at},
		},
	}
}

func TestClientRepositoryMemory(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns ids on create", func(t *testing.T) {
		repo := NewClientRepositoryMemory()

		first, err := repo.Create(ctx, sampleClient("a"))
		require.NoError(t, err)
		second, err := repo.Create(ctx, sampleClient("b"))
		require.NoError(t, err)

		assert.Equal(t, int64(1), first.ID)
		assert.Equal(t, int64(2), second.ID)
		assert.NotZero(t, first.Messages[0].ID)
		assert.NotEqual(t, first.Messages[0].ID, first.Messages[1].ID)
		assert.NotZero(t, first.Debts[0].ID)
	})

	t.Run("lists clients in id order", func(t *testing.T) {
		repo := NewClientRepositoryMemory()
		for _, name := range []string{"a", "b", "c"} {
			_, err := repo.Create(ctx, sampleClient(name))
			require.NoError(t, err)
		}

		clients, err := repo.List(ctx)

		require.NoError(t, err)
		require.Len(t, clients, 3)
		assert.Equal(t, "a", clients[0].Name)
		assert.Equal(t, "c", clients[2].Name)
	})

	t.Run("keeps message order", func(t *testing.T) {
		repo := NewClientRepositoryMemory()
		created, err := repo.Create(ctx, sampleClient("a"))
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created, found)
		assert.Equal(t, domain.RoleClient, found.Messages[0].Role)
	})

	t.Run("returned clients do not alias stored data", func(t *testing.T) {
		repo := NewClientRepositoryMemory()
		created, err := repo.Create(ctx, sampleClient("a"))
		require.NoError(t, err)

		created.Messages[0].Text = "changed"
		found, err := repo.FindByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, "hola", found.Messages[0].Text)
	})

	t.Run("delete removes the client and its records", func(t *testing.T) {
		repo := NewClientRepositoryMemory()
		created, err := repo.Create(ctx, sampleClient("a"))
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, created.ID))

		_, err = repo.FindByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrClientNotFound)
		assert.ErrorIs(t, repo.Delete(ctx, created.ID), domain.ErrClientNotFound)
	})
}
