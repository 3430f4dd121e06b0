package usecase

import (
	"context"

	in "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/in"
	out "github.com/ibrahimalsalim/tracker-api/internal/cargo/application/ports/out"
	"github.com/ibrahimalsalim/tracker-api/internal/cargo/domain"
	"github.com/ibrahimalsalim/tracker-api/internal/shared/pagination"
)

type clientQueries struct {
	clients out.ClientRepository
}

func NewClientQueries(clients out.ClientRepository) in.ClientQueries {
	return &clientQueries{clients: clients}
}

// Create registers a client directly, outside any cargo intake. Unlike the
// intake's find-or-create, a duplicate national id is an error here.
func (q *clientQueries) Create(ctx context.Context, input in.ClientInput) (*domain.Client, error) {
	client := &domain.Client{
		NationalID:  input.NationalID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		DateOfBirth: input.DateOfBirth,
		Address:     input.Address,
		PhoneNumber: input.PhoneNumber,
	}
	if err := q.clients.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (q *clientQueries) List(ctx context.Context, page, limit int) ([]domain.Client, pagination.Meta, error) {
	total, err := q.clients.Count(ctx)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	meta, offset, err := pagination.Paginate(page, limit, total)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	clients, err := q.clients.List(ctx, limit, offset)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return clients, meta, nil
}

func (q *clientQueries) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	return q.clients.FindByID(ctx, id)
}

func (q *clientQueries) GetByNationalID(ctx context.Context, nationalID string) (*domain.Client, error) {
	return q.clients.FindByNationalID(ctx, nationalID)
}

// Update replaces the client's mutable fields. The national id is the
// client's identity and never changes.
func (q *clientQueries) Update(ctx context.Context, id int64, input in.UpdateClientInput) error {
	client, err := q.clients.FindByID(ctx, id)
	if err != nil {
		return err
	}

	client.FirstName = input.FirstName
	client.LastName = input.LastName
	client.DateOfBirth = input.DateOfBirth
	client.Address = input.Address
	client.PhoneNumber = input.PhoneNumber

	return q.clients.Update(ctx, client)
}

func (q *clientQueries) Delete(ctx context.Context, id int64) error {
	return q.clients.Delete(ctx, id)
}
