package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"credit-score/domain"
)

// PostgresClientRepository implements ClientRepository on PostgreSQL.
// Messages and debts reference their client with ON DELETE CASCADE.
type PostgresClientRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresClientRepository(pool *pgxpool.Pool) *PostgresClientRepository {
	return &PostgresClientRepository{pool: pool}
}

func (r *PostgresClientRepository) List(ctx context.Context) ([]domain.Client, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, rut, salary, savings
		FROM clients
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	index := make(map[int64]int)
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Rut, &c.Salary, &c.Savings); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		c.Messages, c.Debts = []domain.Message{}, []domain.Debt{}
		index[c.ID] = len(clients)
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = r.loadMessages(ctx, `
		SELECT client_id, id, text, role, sent_at
		FROM messages
		ORDER BY id
	`, nil, func(clientID int64, m domain.Message) {
		if i, ok := index[clientID]; ok {
			clients[i].Messages = append(clients[i].Messages, m)
		}
	})
	if err != nil {
		return nil, err
	}

	err = r.loadDebts(ctx, `
		SELECT client_id, id, institution, amount, due_date
		FROM debts
		ORDER BY id
	`, nil, func(clientID int64, d domain.Debt) {
		if i, ok := index[clientID]; ok {
			clients[i].Debts = append(clients[i].Debts, d)
		}
	})
	if err != nil {
		return nil, err
	}

	return clients, nil
}

func (r *PostgresClientRepository) FindByID(ctx context.Context, id int64) (domain.Client, error) {
	var c domain.Client
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, rut, salary, savings
		FROM clients
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Rut, &c.Salary, &c.Savings)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Client{}, domain.ErrClientNotFound
	}
	if err != nil {
		return domain.Client{}, fmt.Errorf("find client %d: %w", id, err)
	}
	c.Messages, c.Debts = []domain.Message{}, []domain.Debt{}

	err = r.loadMessages(ctx, `
		SELECT client_id, id, text, role, sent_at
		FROM messages
		WHERE client_id = $1
		ORDER BY id
	`, []any{id}, func(_ int64, m domain.Message) {
		c.Messages = append(c.Messages, m)
	})
	if err != nil {
		return domain.Client{}, err
	}

	err = r.loadDebts(ctx, `
		SELECT client_id, id, institution, amount, due_date
		FROM debts
		WHERE client_id = $1
		ORDER BY id
	`, []any{id}, func(_ int64, d domain.Debt) {
		c.Debts = append(c.Debts, d)
	})
	if err != nil {
		return domain.Client{}, err
	}

	return c, nil
}

// Create inserts the client, its messages and its debts in one transaction.
func (r *PostgresClientRepository) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.Client{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	c := cloneClient(client)
	err = tx.QueryRow(ctx, `
		INSERT INTO clients (name, rut, salary, savings)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, c.Name, c.Rut, c.Salary, c.Savings).Scan(&c.ID)
	if err != nil {
		return domain.Client{}, fmt.Errorf("insert client: %w", err)
	}

	for i, m := range c.Messages {
		err = tx.QueryRow(ctx, `
			INSERT INTO messages (client_id, text, role, sent_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.ID, m.Text, string(m.Role), m.SentAt).Scan(&c.Messages[i].ID)
		if err != nil {
			return domain.Client{}, fmt.Errorf("insert message: %w", err)
		}
	}

	for i, d := range c.Debts {
		err = tx.QueryRow(ctx, `
			INSERT INTO debts (client_id, institution, amount, due_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id
		`, c.ID, d.Institution, d.Amount, d.DueDate).Scan(&c.Debts[i].ID)
		if err != nil {
			return domain.Client{}, fmt.Errorf("insert debt: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Client{}, fmt.Errorf("commit client: %w", err)
	}
	return c, nil
}

func (r *PostgresClientRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete client %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrClientNotFound
	}
	return nil
}

func (r *PostgresClientRepository) Ping(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check: %w", err)
	}
	return nil
}

func (r *PostgresClientRepository) loadMessages(
	ctx context.Context,
	query string,
	args []any,
	add func(clientID int64, m domain.Message),
) error {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			clientID int64
			m        domain.Message
			role     string
		)
		if err := rows.Scan(&clientID, &m.ID, &m.Text, &role, &m.SentAt); err != nil {
			return fmt.Errorf("scan message: %w", err)
		}
		m.Role = domain.Role(role)
		add(clientID, m)
	}
	return rows.Err()
}

func (r *PostgresClientRepository) loadDebts(
	ctx context.Context,
	query string,
	args []any,
	add func(clientID int64, d domain.Debt),
) error {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("query debts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			clientID int64
			d        domain.Debt
		)
		if err := rows.Scan(&clientID, &d.ID, &d.Institution, &d.Amount, &d.DueDate); err != nil {
			return fmt.Errorf("scan debt: %w", err)
		}
		add(clientID, d)
	}
	return rows.Err()
}
