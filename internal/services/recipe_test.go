package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/mthstanley/stockpot/internal/domain"
	domainagg "github.com/mthstanley/stockpot/internal/domain/aggregates"
	"github.com/mthstanley/stockpot/internal/platform/logger"
)

func TestRecipeServiceCreateSetsAuthor(t *testing.T) {
	fakeAgg := newFakeRecipeAggregate()
	svc := NewRecipeService(logger.Nop(), fakeAgg, nil)

	actor := types.User{ID: 3, Name: "Julia"}
	out, err := svc.Create(context.Background(), &types.Recipe{ID: 99, Title: "Soup"}, actor)
	require.NoError(t, err)
	assert.Equal(t, 1, fakeAgg.createCalls)
	assert.Equal(t, 3, fakeAgg.lastCreate.AuthorID)
	assert.Equal(t, 0, fakeAgg.lastCreate.ID)
	assert.Equal(t, actor, out.Author)
}

func TestRecipeServiceRejectsNonAuthor(t *testing.T) {
	fakeAgg := newFakeRecipeAggregate()
	fakeAgg.stored[7] = &types.Recipe{ID: 7, Title: "Stew", AuthorID: 1, Author: types.User{ID: 1, Name: "Julia"}}
	svc := NewRecipeService(logger.Nop(), fakeAgg, nil)
	intruder := types.User{ID: 2, Name: "Jacques"}

	_, err := svc.Update(context.Background(), &types.Recipe{ID: 7, Title: "Mine now"}, intruder)
	require.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized), "got %v", err)
	assert.Equal(t, "Unable to update recipe belonging to another user Julia", domainagg.MessageOf(err))

	_, err = svc.Delete(context.Background(), 7, intruder)
	require.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized), "got %v", err)
	assert.Equal(t, "Unable to delete recipe belonging to another user Julia", domainagg.MessageOf(err))

	assert.Zero(t, fakeAgg.updateCalls)
	assert.Zero(t, fakeAgg.deleteCalls)
	assert.Equal(t, "Stew", fakeAgg.stored[7].Title)
}

func TestRecipeServiceAuthorMutates(t *testing.T) {
	fakeAgg := newFakeRecipeAggregate()
	author := types.User{ID: 1, Name: "Julia"}
	fakeAgg.stored[7] = &types.Recipe{ID: 7, Title: "Stew", AuthorID: 1, Author: author}
	svc := NewRecipeService(logger.Nop(), fakeAgg, nil)

	updated, err := svc.Update(context.Background(), &types.Recipe{ID: 7, Title: "Beef Stew"}, author)
	require.NoError(t, err)
	assert.Equal(t, "Beef Stew", updated.Title)
	assert.Equal(t, 1, fakeAgg.lastUpdate.AuthorID)

	deleted, err := svc.Delete(context.Background(), 7, author)
	require.NoError(t, err)
	assert.Equal(t, "Beef Stew", deleted.Title)
	assert.Equal(t, 1, fakeAgg.deleteCalls)
}

func TestRecipeServicePropagatesNotFound(t *testing.T) {
	fakeAgg := newFakeRecipeAggregate()
	svc := NewRecipeService(logger.Nop(), fakeAgg, nil)

	_, err := svc.Get(context.Background(), 5)
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "got %v", err)
	assert.Equal(t, "recipe with id `5` not found", domainagg.MessageOf(err))

	_, err = svc.Delete(context.Background(), 5, types.User{ID: 1})
	require.True(t, domainagg.IsCode(err, domainagg.CodeNotFound), "got %v", err)
}

func TestRecipeServiceHidesInternalErrors(t *testing.T) {
	fakeAgg := newFakeRecipeAggregate()
	fakeAgg.listErr = domainagg.NewError(domainagg.CodeInternal, "Recipe.RecipeAggregate.List", "connection reset by peer", errors.New("connection reset by peer"))
	svc := NewRecipeService(logger.Nop(), fakeAgg, nil)

	_, err := svc.List(context.Background())
	require.True(t, domainagg.IsCode(err, domainagg.CodeInternal), "got %v", err)
	assert.Equal(t, "unexpected error occurred", domainagg.MessageOf(err))
}

type denyAllPolicy struct{}

func (denyAllPolicy) CanMutate(types.User, *types.Recipe) bool { return false }

func TestRecipeServiceUsesPolicy(t *testing.T) {
	fakeAgg := newFakeRecipeAggregate()
	author := types.User{ID: 1, Name: "Julia"}
	fakeAgg.stored[7] = &types.Recipe{ID: 7, Title: "Stew", AuthorID: 1, Author: author}
	svc := NewRecipeService(logger.Nop(), fakeAgg, denyAllPolicy{})

	_, err := svc.Delete(context.Background(), 7, author)
	require.True(t, domainagg.IsCode(err, domainagg.CodeUnauthorized), "got %v", err)
}

type fakeRecipeAggregate struct {
	stored  map[int]*types.Recipe
	listErr error

	createCalls int
	updateCalls int
	deleteCalls int
	lastCreate  types.Recipe
	lastUpdate  types.Recipe
}

func newFakeRecipeAggregate() *fakeRecipeAggregate {
	return &fakeRecipeAggregate{stored: map[int]*types.Recipe{}}
}

func (f *fakeRecipeAggregate) Contract() domainagg.Contract {
	return domainagg.RecipeAggregateContract
}

func (f *fakeRecipeAggregate) List(context.Context) ([]*types.Recipe, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*types.Recipe{}
	for _, r := range f.stored {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRecipeAggregate) Get(_ context.Context, id int) (*types.Recipe, error) {
	r, ok := f.stored[id]
	if !ok {
		return nil, domainagg.NewError(domainagg.CodeNotFound, "Recipe.RecipeAggregate.Get", fmt.Sprintf("recipe with id `%d` not found", id), nil)
	}
	return r, nil
}

func (f *fakeRecipeAggregate) Create(_ context.Context, in *types.Recipe) (*types.Recipe, error) {
	f.createCalls++
	f.lastCreate = *in
	out := *in
	out.ID = len(f.stored) + 1
	f.stored[out.ID] = &out
	return &out, nil
}

func (f *fakeRecipeAggregate) Update(_ context.Context, in *types.Recipe) (*types.Recipe, error) {
	f.updateCalls++
	f.lastUpdate = *in
	out := *in
	f.stored[in.ID] = &out
	return &out, nil
}

func (f *fakeRecipeAggregate) Delete(_ context.Context, id int) (*types.Recipe, error) {
	f.deleteCalls++
	r := f.stored[id]
	delete(f.stored, id)
	return r, nil
}
