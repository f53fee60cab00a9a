// ABOUTME: Contract tests run against every in-process record store
// ABOUTME: Covers create, get, update merge, delete and copy isolation
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crmview/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func stores(t *testing.T) map[string]RecordStore[models.Contact] {
	t.Helper()

	db, err := OpenBadger("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]RecordStore[models.Contact]{
		"memory": NewMemory(models.ContactKind, WithClock(clock)),
		"badger": NewBadger(db, models.ContactKind, WithClock(clock)),
	}
}

func TestCreateAssignsIdentityAndTimestamps(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.Create(ctx, models.Contact{Name: "Ada Lovelace"})
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, created.ID)
			assert.True(t, created.CreatedAt.Equal(fixedNow))
			assert.True(t, created.UpdatedAt.Equal(fixedNow))

			got, err := s.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Ada Lovelace", got.Name)
		})
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), uuid.New())
			assert.True(t, errors.Is(err, models.ErrNotFound))

			var nf *models.NotFoundError
			require.ErrorAs(t, err, &nf)
			assert.Equal(t, "contact", nf.Entity)
		})
	}
}

func TestUpdateAppliesChanges(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.Create(ctx, models.Contact{Name: "Grace", Email: "grace@navy.mil"})
			require.NoError(t, err)

			updated, err := s.Update(ctx, created.ID, func(c *models.Contact) error {
				c.Position = "Rear Admiral"
				return nil
			})
			require.NoError(t, err)
			assert.Equal(t, "Rear Admiral", updated.Position)
			assert.Equal(t, "grace@navy.mil", updated.Email)

			_, err = s.Update(ctx, uuid.New(), func(*models.Contact) error { return nil })
			assert.True(t, errors.Is(err, models.ErrNotFound))
		})
	}
}

func TestUpdateAbortsOnApplyError(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.Create(ctx, models.Contact{Name: "Alan"})
			require.NoError(t, err)

			boom := errors.New("rejected")
			_, err = s.Update(ctx, created.ID, func(c *models.Contact) error {
				c.Name = "changed"
				return boom
			})
			assert.ErrorIs(t, err, boom)

			got, err := s.Get(ctx, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "Alan", got.Name)
		})
	}
}

func TestDeleteReportsPresence(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			created, err := s.Create(ctx, models.Contact{Name: "Edsger"})
			require.NoError(t, err)

			ok, err := s.Delete(ctx, created.ID)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = s.Delete(ctx, created.ID)
			require.NoError(t, err)
			assert.False(t, ok)

			page, err := s.List(ctx, models.ListParams{})
			require.NoError(t, err)
			assert.Empty(t, page.Records)
			assert.Equal(t, 0, page.Total)
		})
	}
}

func TestListPagesAndTotals(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, n := range []string{"a", "b", "c"} {
				_, err := s.Create(ctx, models.Contact{Name: n})
				require.NoError(t, err)
			}

			page, err := s.List(ctx, models.ListParams{Page: 1, Limit: 2})
			require.NoError(t, err)
			assert.Len(t, page.Records, 1)
			assert.Equal(t, 3, page.Total)
		})
	}
}

func TestListSearchesAndSortsBeforePaging(t *testing.T) {
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			for _, n := range []string{"Zed Webb", "Amy", "Kim Webster", "bob"} {
				_, err := s.Create(ctx, models.Contact{Name: n})
				require.NoError(t, err)
			}

			page, err := s.List(ctx, models.ListParams{Search: "WEB", SortBy: "name", Limit: 1})
			require.NoError(t, err)
			assert.True(t, page.Queried)
			assert.Equal(t, 2, page.Total)
			require.Len(t, page.Records, 1)
			assert.Equal(t, "Kim Webster", page.Records[0].Name)

			page, err = s.List(ctx, models.ListParams{SortBy: "name", Desc: true, Page: 1, Limit: 2})
			require.NoError(t, err)
			assert.Equal(t, 4, page.Total)
			require.Len(t, page.Records, 2)
			assert.Equal(t, "bob", page.Records[0].Name)
			assert.Equal(t, "Amy", page.Records[1].Name)
		})
	}
}

func TestMemoryListKeepsInsertionOrder(t *testing.T) {
	s := NewMemory(models.ContactKind)
	ctx := context.Background()
	for _, n := range []string{"zed", "amy", "kim"} {
		_, err := s.Create(ctx, models.Contact{Name: n})
		require.NoError(t, err)
	}

	page, err := s.List(ctx, models.ListParams{})
	require.NoError(t, err)
	require.Len(t, page.Records, 3)
	assert.Equal(t, "zed", page.Records[0].Name)
	assert.Equal(t, "kim", page.Records[2].Name)
}

func TestReadsAreIsolatedCopies(t *testing.T) {
	s := NewMemory(models.ActivityKind)
	ctx := context.Background()
	contactID := uuid.New()

	created, err := s.Create(ctx, models.Activity{
		ContactID:   &contactID,
		Description: "kickoff",
		Tags:        []string{"vip"},
	})
	require.NoError(t, err)

	created.Tags[0] = "mutated"
	*created.ContactID = uuid.New()

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"vip"}, got.Tags)
	assert.Equal(t, contactID, *got.ContactID)
}

func TestCancelledContext(t *testing.T) {
	s := NewMemory(models.ContactKind)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.List(ctx, models.ListParams{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	for _, tc := range []struct{ backend, path string }{
		{BackendSQLite, dir + "/crm.db"},
		{BackendBadger, dir + "/kv"},
		{BackendMemory, ""},
	} {
		t.Run(tc.backend, func(t *testing.T) {
			set, err := Open(tc.backend, tc.path, nil)
			require.NoError(t, err)
			defer set.Close()

			ctx := context.Background()
			contact, err := set.Contacts.Create(ctx, models.Contact{Name: "Linus"})
			require.NoError(t, err)

			_, err = set.Deals.Create(ctx, models.Deal{Title: "Kernel support", Stage: models.StageLead, ContactID: &contact.ID})
			require.NoError(t, err)

			deals, err := set.Deals.List(ctx, models.ListParams{})
			require.NoError(t, err)
			assert.Len(t, deals.Records, 1)

			contacts, err := set.Contacts.List(ctx, models.ListParams{})
			require.NoError(t, err)
			assert.Len(t, contacts.Records, 1, "kinds sharing one database must not see each other's records")
		})
	}

	_, err := Open("postgres", "", nil)
	assert.Error(t, err)
}
