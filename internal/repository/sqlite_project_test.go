package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/planline/internal/testutil"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Harbor Expansion",
		testutil.WithProjectDates(testutil.Date(2024, time.March, 1), testutil.Date(2024, time.September, 30)))
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, proj.ID, fetched.ID)
	assert.Equal(t, "Harbor Expansion", fetched.Name)
	assert.Equal(t, "2024-03-01", fetched.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-09-30", fetched.EndDate.Format("2006-01-02"))
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "nonexistent")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectRepo_List_OrderedByName(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Bravo")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject("Alpha")))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Alpha", list[0].Name)
	assert.Equal(t, "Bravo", list[1].Name)
}

func TestProjectRepo_UpdateDates(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Depot")
	require.NoError(t, repo.Create(ctx, proj))

	require.NoError(t, repo.UpdateDates(ctx, proj.ID, "2024-04-01", "2024-05-15"))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-04-01", fetched.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-05-15", fetched.EndDate.Format("2006-01-02"))
}

func TestProjectRepo_UpdateDates_MissingRow(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	err := repo.UpdateDates(ctx, "ghost", "2024-04-01", "2024-05-15")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestProjectRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)
	ctx := context.Background()

	proj := testutil.NewTestProject("Short Lived")
	require.NoError(t, repo.Create(ctx, proj))
	require.NoError(t, repo.Delete(ctx, proj.ID))

	_, err := repo.GetByID(ctx, proj.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
}
