package artprint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstock/internal/core/apperror"
	"printstock/internal/core/id"
)

// fakeTxManager records how each call was wrapped.
type fakeTxManager struct {
	writeCalls    int
	readOnlyCalls int
}

func (f *fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.writeCalls++
	return fn(ctx)
}

func (f *fakeTxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.readOnlyCalls++
	return fn(ctx)
}

type fakeRepo struct {
	byName map[string]*Print
	items  []Print

	created []*Print
	updated []*Print
}

func (f *fakeRepo) Create(ctx context.Context, p *Print) error {
	f.created = append(f.created, p)
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, p *Print) error {
	f.updated = append(f.updated, p)
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, printID id.ID) (*Print, error) {
	for i := range f.items {
		if f.items[i].ID == printID {
			return &f.items[i], nil
		}
	}
	return nil, apperror.NewNotFound("print", printID)
}

func (f *fakeRepo) FindByName(ctx context.Context, name string) (*Print, error) {
	if p, ok := f.byName[name]; ok {
		return p, nil
	}
	return nil, apperror.NewNotFound("print", name)
}

func (f *fakeRepo) List(ctx context.Context) ([]Print, error) {
	return f.items, nil
}

func TestCreate_UniqueInsideTransaction(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{byName: map[string]*Print{}}
	txm := &fakeTxManager{}
	svc := NewService(repo, txm)

	p := NewPrint("Cowes Race Day", 50)
	require.NoError(t, svc.Create(ctx, p))
	assert.Len(t, repo.created, 1)
	assert.Equal(t, 1, txm.writeCalls)

	// A second print with the same name is rejected before the insert.
	repo.byName[p.Name] = p
	dup := NewPrint("Cowes Race Day", 20)
	err := svc.Create(ctx, dup)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	assert.Len(t, repo.created, 1)
}

func TestUpdate_SameRecordKeepsItsName(t *testing.T) {
	ctx := context.Background()
	p := NewPrint("Quay Rocks", 30)
	repo := &fakeRepo{byName: map[string]*Print{p.Name: p}}
	txm := &fakeTxManager{}
	svc := NewService(repo, txm)

	require.NoError(t, svc.Update(ctx, p))
	assert.Len(t, repo.updated, 1)
	assert.Equal(t, 1, txm.writeCalls)
}

func TestReads_UseReadOnlyTransactions(t *testing.T) {
	ctx := context.Background()
	p := NewPrint("Nerthek", 10)
	repo := &fakeRepo{items: []Print{*p}}
	txm := &fakeTxManager{}
	svc := NewService(repo, txm)

	prints, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, prints, 1)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, got.Name)

	assert.Equal(t, 2, txm.readOnlyCalls)
	assert.Equal(t, 0, txm.writeCalls)
}
