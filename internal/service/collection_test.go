package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/renatomh/gorestaurant-web/internal/api"
	"github.com/renatomh/gorestaurant-web/internal/food"
)

// fakeRemote records calls and answers from canned data.
type fakeRemote struct {
	mu      sync.Mutex
	list    []food.Food
	nextID  int64
	err     error
	created []food.Food
	updated []food.Food
	deleted []int64
	echo    func(food.Food) food.Food
}

func (r *fakeRemote) List(ctx context.Context) ([]food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	out := make([]food.Food, len(r.list))
	copy(out, r.list)
	return out, nil
}

func (r *fakeRemote) Create(ctx context.Context, f food.Food) (food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, f)
	if r.err != nil {
		return food.Food{}, r.err
	}
	r.nextID++
	f.ID = r.nextID
	return f, nil
}

func (r *fakeRemote) Update(ctx context.Context, id int64, f food.Food) (food.Food, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updated = append(r.updated, f)
	if r.err != nil {
		return food.Food{}, r.err
	}
	if r.echo != nil {
		return r.echo(f), nil
	}
	return f, nil
}

func (r *fakeRemote) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return r.err
}

func seeded(t *testing.T, list ...food.Food) (*Collection, *fakeRemote) {
	t.Helper()
	remote := &fakeRemote{list: list, nextID: 1}
	c := NewCollection(remote, nil)
	require.NoError(t, c.Load(context.Background()))
	return c, remote
}

var plate1 = food.Food{ID: 1, Name: "X", Image: "img", Price: "10.00", Description: "d", Available: true}

func TestLoadReplacesStateWholesale(t *testing.T) {
	c, remote := seeded(t, plate1)
	require.Equal(t, []food.Food{plate1}, c.Snapshot())

	remote.list = []food.Food{{ID: 5, Name: "Z"}}
	require.NoError(t, c.Load(context.Background()))
	require.Equal(t, []food.Food{{ID: 5, Name: "Z"}}, c.Snapshot())
}

func TestLoadFailureKeepsStateAndSurfacesError(t *testing.T) {
	c, remote := seeded(t, plate1)
	remote.err = &api.RemoteError{Op: "list", Err: api.ErrUnavailable}
	err := c.Load(context.Background())
	require.ErrorIs(t, err, api.ErrUnavailable)
	require.Equal(t, []food.Food{plate1}, c.Snapshot())
}

func TestAddAppendsServerRecord(t *testing.T) {
	c, remote := seeded(t, plate1)
	got, err := c.Add(context.Background(), food.Draft{
		Name: food.String("Pizza"), Image: food.String("u"), Price: food.String("19.90"), Description: food.String("d"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), got.ID)
	require.True(t, got.Available)
	require.True(t, remote.created[0].Available)
	require.Zero(t, remote.created[0].ID)

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	require.Equal(t, plate1, snap[0])
	require.Equal(t, got, snap[1])
}

func TestAddFailureLeavesStateUnchanged(t *testing.T) {
	c, remote := seeded(t, plate1)
	remote.err = errors.New("boom")
	_, err := c.Add(context.Background(), food.Draft{Name: food.String("Pizza")})
	require.Error(t, err)
	require.Equal(t, []food.Food{plate1}, c.Snapshot())
}

func TestAddWithRepeatedIDKeepsIdsUnique(t *testing.T) {
	c, remote := seeded(t, plate1)
	remote.nextID = 0
	_, err := c.Add(context.Background(), food.Draft{Name: food.String("Dup")})
	require.NoError(t, err)
	snap := c.Snapshot()
	require.Len(t, snap, 1)
	require.Equal(t, "Dup", snap[0].Name)
}

func TestUpdateReplacesOnlyTarget(t *testing.T) {
	other := food.Food{ID: 2, Name: "Y", Price: "5.00", Available: true}
	c, remote := seeded(t, plate1, other)
	got, err := c.Update(context.Background(), 1, food.Draft{Price: food.String("12.00")})
	require.NoError(t, err)
	require.Equal(t, "12.00", got.Price)

	// the request body is the previous record merged with the draft
	want := plate1
	want.Price = "12.00"
	require.Equal(t, []food.Food{want}, remote.updated)

	require.Equal(t, []food.Food{want, other}, c.Snapshot())
}

func TestUpdateUsesServerResponse(t *testing.T) {
	c, remote := seeded(t, plate1)
	remote.echo = func(f food.Food) food.Food {
		f.Name = "normalized"
		return f
	}
	_, err := c.Update(context.Background(), 1, food.Draft{Name: food.String("raw")})
	require.NoError(t, err)
	f, ok := c.Find(1)
	require.True(t, ok)
	require.Equal(t, "normalized", f.Name)
}

func TestUpdateFailureLeavesStateUnchanged(t *testing.T) {
	c, remote := seeded(t, plate1)
	remote.err = &api.RemoteError{Op: "update", Status: 404, Err: api.ErrNotFound}
	_, err := c.Update(context.Background(), 1, food.Draft{Price: food.String("99.00")})
	require.ErrorIs(t, err, api.ErrNotFound)
	require.Equal(t, []food.Food{plate1}, c.Snapshot())
}

func TestUpdateUnknownItemSkipsRemote(t *testing.T) {
	c, remote := seeded(t, plate1)
	_, err := c.Update(context.Background(), 42, food.Draft{Price: food.String("1.00")})
	require.ErrorIs(t, err, ErrUnknownItem)
	require.Empty(t, remote.updated)
}

func TestToggleAvailable(t *testing.T) {
	c, remote := seeded(t, plate1)
	got, err := c.ToggleAvailable(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, got.Available)
	require.False(t, remote.updated[0].Available)
	require.Equal(t, plate1.Name, remote.updated[0].Name)
}

func TestDeleteRemovesAndIsIdempotent(t *testing.T) {
	two := food.Food{ID: 2, Name: "Pizza", Available: true}
	c, remote := seeded(t, plate1, two)
	require.NoError(t, c.Delete(context.Background(), 2))
	require.Equal(t, []food.Food{plate1}, c.Snapshot())

	require.NoError(t, c.Delete(context.Background(), 2))
	require.Equal(t, []food.Food{plate1}, c.Snapshot())
	require.Equal(t, []int64{2, 2}, remote.deleted)
}

func TestDuplicateIDsAreUpdatedAndDeletedTogether(t *testing.T) {
	a := food.Food{ID: 1, Name: "A", Price: "1.00"}
	b := food.Food{ID: 1, Name: "B", Price: "2.00"}
	other := food.Food{ID: 2, Name: "C", Price: "3.00"}
	c, remote := seeded(t, a, b, other)

	updated, err := c.Update(context.Background(), 1, food.Draft{Name: food.String("A2")})
	require.NoError(t, err)
	require.Equal(t, "A2", updated.Name)
	require.Equal(t, []food.Food{updated, updated, other}, c.Snapshot())
	require.Len(t, remote.updated, 1)

	require.NoError(t, c.Delete(context.Background(), 1))
	require.Equal(t, []food.Food{other}, c.Snapshot())
	require.Equal(t, []int64{1}, remote.deleted)
}

func TestDeleteFailureKeepsItem(t *testing.T) {
	c, remote := seeded(t, plate1)
	remote.err = errors.New("offline")
	require.Error(t, c.Delete(context.Background(), 1))
	require.Equal(t, []food.Food{plate1}, c.Snapshot())
}

func TestScenarioFullSession(t *testing.T) {
	c, _ := seeded(t, plate1)
	require.Equal(t, 1, c.Len())

	added, err := c.Add(context.Background(), food.Draft{
		Name: food.String("Pizza"), Image: food.String("u"), Price: food.String("19.90"), Description: food.String("d"),
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), added.ID)

	_, err = c.Update(context.Background(), 1, food.Draft{Price: food.String("12.00")})
	require.NoError(t, err)
	one, _ := c.Find(1)
	require.Equal(t, "12.00", one.Price)
	two, _ := c.Find(2)
	require.Equal(t, "19.90", two.Price)

	require.NoError(t, c.Delete(context.Background(), 2))
	_, ok := c.Find(2)
	require.False(t, ok)
	_, ok = c.Find(1)
	require.True(t, ok)
}

func TestSnapshotIsACopy(t *testing.T) {
	c, _ := seeded(t, plate1)
	snap := c.Snapshot()
	snap[0].Name = "mutated"
	f, _ := c.Find(1)
	require.Equal(t, "X", f.Name)
}

func TestConcurrentMutations(t *testing.T) {
	c, _ := seeded(t)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Add(context.Background(), food.Draft{Name: food.String("n")})
		}()
	}
	wg.Wait()
	require.Equal(t, 20, c.Len())
}
