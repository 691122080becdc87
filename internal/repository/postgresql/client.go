package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pierreiost/quadracerta/internal/domain/client"
	"github.com/pierreiost/quadracerta/internal/pkg/database"
)

type clientRepositoryImpl struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepositoryImpl{db: db}
}

const clientColumns = `id, complex_id, full_name, phone, email, cpf, notes, created_at, updated_at`

func scanClient(row pgx.Row) (client.Client, error) {
	var c client.Client
	err := row.Scan(&c.ID, &c.ComplexID, &c.FullName, &c.Phone, &c.Email, &c.CPF, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create implements client.ClientRepository.
func (r *clientRepositoryImpl) Create(ctx context.Context, c client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	id, err := newID()
	if err != nil {
		return client.Client{}, err
	}

	query := `
		INSERT INTO clients (id, complex_id, full_name, phone, email, cpf, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + clientColumns

	created, err := scanClient(q.QueryRow(ctx, query, id, c.ComplexID, c.FullName, c.Phone, c.Email, c.CPF, c.Notes))
	if err != nil {
		if isUniqueViolation(err) {
			return client.Client{}, client.ErrPhoneExists
		}
		return client.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return created, nil
}

// GetByID implements client.ClientRepository.
func (r *clientRepositoryImpl) GetByID(ctx context.Context, id string, complexID string) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1 AND complex_id = $2`

	found, err := scanClient(q.QueryRow(ctx, query, id, complexID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, err
	}
	return found, nil
}

// List implements client.ClientRepository.
func (r *clientRepositoryImpl) List(ctx context.Context, filter client.ListClientsFilter) ([]client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + clientColumns + ` FROM clients WHERE complex_id = $1`
	args := []interface{}{filter.ComplexID}
	if filter.Search != "" {
		query += ` AND (full_name ILIKE $2 OR phone ILIKE $2)`
		args = append(args, "%"+filter.Search+"%")
	}
	query += ` ORDER BY full_name`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]client.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

// Update implements client.ClientRepository.
func (r *clientRepositoryImpl) Update(ctx context.Context, req client.UpdateClientRequest) error {
	q := GetQuerier(ctx, r.db)

	updates := make(map[string]interface{})
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.CPF != nil {
		updates["cpf"] = *req.CPF
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	set, args, i := buildSet(updates, 1)
	sql := "UPDATE clients SET " + set + fmt.Sprintf(" WHERE id = $%d AND complex_id = $%d", i, i+1)
	args = append(args, req.ID, req.ComplexID)

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return client.ErrPhoneExists
		}
		return fmt.Errorf("failed to update client with id %s: %w", req.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

// Delete implements client.ClientRepository.
func (r *clientRepositoryImpl) Delete(ctx context.Context, id string, complexID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM clients WHERE id = $1 AND complex_id = $2`, id, complexID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

// ExistsByPhone implements client.ClientRepository.
func (r *clientRepositoryImpl) ExistsByPhone(ctx context.Context, complexID string, phone string, excludeID string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM clients
			WHERE complex_id = $1 AND phone = $2 AND ($3 = '' OR id::text <> $3)
		)
	`, complexID, phone, excludeID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
