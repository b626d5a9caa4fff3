package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixrite/remix-ledger/internal/domain"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func ownerAddress(n int) string {
	return fmt.Sprintf("0x%040x", n)
}

func buildTestClip(title string, owner int) CreateClipInput {
	return CreateClipInput{
		Title:     title,
		SourceURL: "https://gateway.pinata.cloud/ipfs/bafy" + title,
		Metadata: domain.ClipMetadata{
			Duration:    "0:30",
			Kind:        domain.MediaKindAudio,
			Artist:      "artist-" + title,
			Tags:        []string{"lofi", "chill"},
			FileSize:    1024,
			ContentHash: "bafy" + title,
		},
		OwnerAddress:  ownerAddress(owner),
		LedgerAssetID: "0xasset-" + title,
	}
}

func buildTestRemixDraft(creator string, clipIDs ...string) domain.RemixDraft {
	return domain.RemixDraft{
		CreatorID:       creator,
		Title:           "Remix by " + creator,
		OriginalClipIDs: clipIDs,
		OutputURL:       "https://gateway.pinata.cloud/ipfs/remix",
		LedgerAssetID:   "0xremix",
		LedgerTxHash:    "0xtx",
		Fee:             decimal.RequireFromString("0.50"),
	}
}

func mustCreateClip(t *testing.T, store Store, title string, owner int) *domain.Clip {
	t.Helper()
	clip, err := store.CreateClip(context.Background(), buildTestClip(title, owner))
	require.NoError(t, err)
	require.NotNil(t, clip)
	return clip
}

// =============================================================================
// Test: Clips
// =============================================================================

func testClips(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("create and find clip", func(t *testing.T) {
		created := mustCreateClip(t, store, "beat", 1)
		assert.NotEmpty(t, created.ID)

		found, err := store.FindClip(ctx, created.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "beat", found.Title)
		assert.Equal(t, ownerAddress(1), found.OwnerAddress)
		assert.Equal(t, "0xasset-beat", found.LedgerAssetID)
		assert.Equal(t, domain.MediaKindAudio, found.Metadata.Kind)
		assert.Equal(t, []string{"lofi", "chill"}, found.Metadata.Tags)
		assert.Equal(t, int64(1024), found.Metadata.FileSize)
		assert.False(t, found.CreatedAt.IsZero())
	})

	t.Run("unknown clip returns nil", func(t *testing.T) {
		found, err := store.FindClip(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("malformed id returns nil", func(t *testing.T) {
		found, err := store.FindClip(ctx, "not-a-uuid")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

// =============================================================================
// Test: Remixes
// =============================================================================

func testRemixes(t *testing.T, store Store) {
	ctx := context.Background()

	a := mustCreateClip(t, store, "a", 1)
	b := mustCreateClip(t, store, "b", 2)

	t.Run("insert and get remix", func(t *testing.T) {
		remix, err := store.InsertRemix(ctx, buildTestRemixDraft("creator-1", a.ID, b.ID))
		require.NoError(t, err)
		require.NotNil(t, remix)
		assert.NotEmpty(t, remix.ID)

		found, err := store.GetRemix(ctx, remix.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "creator-1", found.CreatorID)
		assert.Equal(t, []string{a.ID, b.ID}, found.OriginalClipIDs)
		assert.True(t, decimal.RequireFromString("0.50").Equal(found.Fee))
		assert.Equal(t, "0xtx", found.LedgerTxHash)
	})

	t.Run("remix without clips is rejected", func(t *testing.T) {
		_, err := store.InsertRemix(ctx, buildTestRemixDraft("creator-1"))
		assert.Error(t, err)
	})

	t.Run("unknown remix returns nil", func(t *testing.T) {
		found, err := store.GetRemix(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Nil(t, found)

		found, err = store.GetRemix(ctx, "bogus")
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("list by creator newest first", func(t *testing.T) {
		first, err := store.InsertRemix(ctx, buildTestRemixDraft("creator-list", a.ID))
		require.NoError(t, err)
		second, err := store.InsertRemix(ctx, buildTestRemixDraft("creator-list", b.ID))
		require.NoError(t, err)
		_, err = store.InsertRemix(ctx, buildTestRemixDraft("someone-else", a.ID))
		require.NoError(t, err)

		remixes, err := store.ListRemixesByCreator(ctx, "creator-list")
		require.NoError(t, err)
		require.Len(t, remixes, 2)
		assert.Equal(t, second.ID, remixes[0].ID)
		assert.Equal(t, first.ID, remixes[1].ID)

		none, err := store.ListRemixesByCreator(ctx, "nobody")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("list all includes every creator", func(t *testing.T) {
		remixes, err := store.ListAllRemixes(ctx)
		require.NoError(t, err)

		creators := map[string]bool{}
		for _, r := range remixes {
			creators[r.CreatorID] = true
		}
		assert.True(t, creators["creator-list"])
		assert.True(t, creators["someone-else"])

		for i := 1; i < len(remixes); i++ {
			assert.False(t, remixes[i].CreatedAt.After(remixes[i-1].CreatedAt))
		}
	})
}

// =============================================================================
// Test: Royalty distributions
// =============================================================================

func testDistributions(t *testing.T, store Store) {
	ctx := context.Background()

	a := mustCreateClip(t, store, "a", 1)
	b := mustCreateClip(t, store, "b", 1)

	remix, err := store.InsertRemix(ctx, buildTestRemixDraft("creator-1", a.ID, b.ID))
	require.NoError(t, err)

	t.Run("insert distributions for duplicate owners", func(t *testing.T) {
		d1, err := store.InsertDistribution(ctx, CreateDistributionInput{
			RemixID: remix.ID, ClipID: a.ID, OwnerAddress: a.OwnerAddress, Amount: decimal.RequireFromString("0.25"),
		})
		require.NoError(t, err)
		d2, err := store.InsertDistribution(ctx, CreateDistributionInput{
			RemixID: remix.ID, ClipID: b.ID, OwnerAddress: b.OwnerAddress, Amount: decimal.RequireFromString("0.25"),
		})
		require.NoError(t, err)
		assert.NotEqual(t, d1.ID, d2.ID)

		rows, err := store.DistributionsFor(ctx, remix.ID)
		require.NoError(t, err)
		require.Len(t, rows, 2)

		total := decimal.Zero
		for _, r := range rows {
			total = total.Add(r.Amount)
			assert.Equal(t, ownerAddress(1), r.OwnerAddress)
		}
		assert.True(t, remix.Fee.Equal(total))
	})

	t.Run("replayed distribution returns existing row", func(t *testing.T) {
		before, err := store.DistributionsFor(ctx, remix.ID)
		require.NoError(t, err)

		again, err := store.InsertDistribution(ctx, CreateDistributionInput{
			RemixID: remix.ID, ClipID: a.ID, OwnerAddress: a.OwnerAddress, Amount: decimal.RequireFromString("0.25"),
		})
		require.NoError(t, err)

		after, err := store.DistributionsFor(ctx, remix.ID)
		require.NoError(t, err)
		assert.Len(t, after, len(before))

		ids := make([]string, 0, len(before))
		for _, d := range before {
			ids = append(ids, d.ID)
		}
		assert.Contains(t, ids, again.ID)
	})

	t.Run("no distributions for unknown remix", func(t *testing.T) {
		rows, err := store.DistributionsFor(ctx, uuid.NewString())
		require.NoError(t, err)
		assert.Empty(t, rows)

		rows, err = store.DistributionsFor(ctx, "bogus")
		require.NoError(t, err)
		assert.Empty(t, rows)
	})
}

// =============================================================================
// Test: Unsettled remixes
// =============================================================================

func testUnsettledRemixes(t *testing.T, store Store) {
	ctx := context.Background()

	a := mustCreateClip(t, store, "a", 1)
	b := mustCreateClip(t, store, "b", 2)

	settled, err := store.InsertRemix(ctx, buildTestRemixDraft("creator-1", a.ID))
	require.NoError(t, err)
	_, err = store.InsertDistribution(ctx, CreateDistributionInput{
		RemixID: settled.ID, ClipID: a.ID, OwnerAddress: a.OwnerAddress, Amount: settled.Fee,
	})
	require.NoError(t, err)

	partial, err := store.InsertRemix(ctx, buildTestRemixDraft("creator-1", a.ID, b.ID))
	require.NoError(t, err)
	_, err = store.InsertDistribution(ctx, CreateDistributionInput{
		RemixID: partial.ID, ClipID: a.ID, OwnerAddress: a.OwnerAddress, Amount: decimal.RequireFromString("0.25"),
	})
	require.NoError(t, err)

	t.Run("lists only partially settled remixes", func(t *testing.T) {
		remixes, err := store.ListUnsettledRemixes(ctx, time.Now().Add(time.Minute), nil, 100)
		require.NoError(t, err)

		ids := make([]string, 0, len(remixes))
		for _, r := range remixes {
			ids = append(ids, r.ID)
		}
		assert.Contains(t, ids, partial.ID)
		assert.NotContains(t, ids, settled.ID)
	})

	t.Run("pages after the cursor", func(t *testing.T) {
		created := make([]string, 0, 3)
		for i := 0; i < 3; i++ {
			r, err := store.InsertRemix(ctx, buildTestRemixDraft("creator-page", a.ID, b.ID))
			require.NoError(t, err)
			created = append(created, r.ID)
		}

		seen := make(map[string]bool)
		var cursor *RemixCursor
		for {
			page, err := store.ListUnsettledRemixes(ctx, time.Now().Add(time.Minute), cursor, 1)
			require.NoError(t, err)
			if len(page) == 0 {
				break
			}
			require.Len(t, page, 1)
			if cursor != nil {
				assert.False(t, page[0].CreatedAt.Before(cursor.CreatedAt))
			}
			assert.False(t, seen[page[0].ID], "remix %s listed twice", page[0].ID)
			seen[page[0].ID] = true
			cursor = CursorOf(page[0])
		}

		assert.True(t, seen[partial.ID])
		for _, id := range created {
			assert.True(t, seen[id])
		}
		assert.False(t, seen[settled.ID])
	})

	t.Run("respects the age cutoff", func(t *testing.T) {
		remixes, err := store.ListUnsettledRemixes(ctx, time.Now().Add(-time.Hour), nil, 100)
		require.NoError(t, err)
		for _, r := range remixes {
			assert.NotEqual(t, partial.ID, r.ID)
		}
	})
}

// =============================================================================
// Test: Key-value store
// =============================================================================

func testKeyValueStore(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.SetKeyValue(ctx, "ledger_link:abc", "0xtx1"))

		value, err := store.GetKeyValue(ctx, "ledger_link:abc")
		require.NoError(t, err)
		assert.Equal(t, "0xtx1", value)
	})

	t.Run("overwrite existing key", func(t *testing.T) {
		require.NoError(t, store.SetKeyValue(ctx, "ledger_link:def", "0xtx1"))
		require.NoError(t, store.SetKeyValue(ctx, "ledger_link:def", "0xtx2"))

		value, err := store.GetKeyValue(ctx, "ledger_link:def")
		require.NoError(t, err)
		assert.Equal(t, "0xtx2", value)
	})

	t.Run("missing key returns empty string", func(t *testing.T) {
		value, err := store.GetKeyValue(ctx, "ledger_link:missing")
		require.NoError(t, err)
		assert.Equal(t, "", value)
	})
}

// RunStoreTests runs every store test against a fresh store from initDB
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"Clips", testClips},
		{"Remixes", testRemixes},
		{"Distributions", testDistributions},
		{"UnsettledRemixes", testUnsettledRemixes},
		{"KeyValueStore", testKeyValueStore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.fn(t, initDB(t))
		})
	}
}
