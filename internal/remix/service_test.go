package remix_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/ledger"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/messaging"
	"github.com/remixrite/remix-ledger/internal/mocks"
	"github.com/remixrite/remix-ledger/internal/remix"
	"github.com/remixrite/remix-ledger/internal/resolver"
	"github.com/remixrite/remix-ledger/internal/royalty"
	"github.com/remixrite/remix-ledger/internal/settlement"
	"github.com/remixrite/remix-ledger/internal/storage"
	"github.com/remixrite/remix-ledger/internal/store"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testServiceMocks contains all the mocks needed for testing the service
type testServiceMocks struct {
	ctrl        *gomock.Controller
	content     *mocks.MockContentStore
	settlements *mocks.MockSettlementStore
	uploader    *mocks.MockUploader
	registrar   *mocks.MockRegistrar
	tagger      *mocks.MockTagGenerator
	publisher   *mocks.MockPublisher
	service     remix.Service
}

// setupTestService wires the real resolver, royalty split and settlement recorder over mocked stores
func setupTestService(t *testing.T) *testServiceMocks {
	ctrl := gomock.NewController(t)

	tm := &testServiceMocks{
		ctrl:        ctrl,
		content:     mocks.NewMockContentStore(ctrl),
		settlements: mocks.NewMockSettlementStore(ctrl),
		uploader:    mocks.NewMockUploader(ctrl),
		registrar:   mocks.NewMockRegistrar(ctrl),
		tagger:      mocks.NewMockTagGenerator(ctrl),
		publisher:   mocks.NewMockPublisher(ctrl),
	}

	tm.service = remix.NewService(remix.Config{
		Fee:                   decimal.RequireFromString("0.50"),
		RoyaltyRate:           domain.DEFAULT_ROYALTY_RATE,
		EnrichmentConcurrency: 4,
		UploadTimeout:         time.Second,
		StoreTimeout:          time.Second,
		MaxFileSize:           1 << 20,
	}, remix.Deps{
		Content:     tm.content,
		Settlements: tm.settlements,
		Resolver:    resolver.New(resolver.Config{Concurrency: 4, LookupTimeout: time.Second}, tm.content),
		Tagger:      tm.tagger,
		Uploader:    tm.uploader,
		Registrar:   tm.registrar,
		Strategy:    royalty.NewEqualSplit(),
		Recorder:    settlement.NewRecorder(settlement.Config{StoreTimeout: time.Second}, tm.settlements),
		Publisher:   tm.publisher,
		Clock:       adapter.NewClock(),
	})

	return tm
}

func (tm *testServiceMocks) tearDown() {
	tm.ctrl.Finish()
}

func ownerAddress(n int) string {
	return fmt.Sprintf("0x%040x", n)
}

func testClip(id string, owner int) *domain.Clip {
	return &domain.Clip{
		ID:            id,
		Title:         "Clip " + id,
		SourceURL:     "https://gateway.pinata.cloud/ipfs/bafy" + id,
		Metadata:      domain.ClipMetadata{Kind: domain.MediaKindAudio},
		OwnerAddress:  ownerAddress(owner),
		LedgerAssetID: "0xasset-" + id,
	}
}

// expectClips makes the content store resolve the given clips
func (tm *testServiceMocks) expectClips(clips ...*domain.Clip) {
	for _, c := range clips {
		tm.content.EXPECT().FindClip(gomock.Any(), c.ID).Return(c, nil)
	}
}

func (tm *testServiceMocks) expectDescribe(title string, tags ...string) {
	tm.tagger.EXPECT().GenerateTitles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{title}, nil).AnyTimes()
	tm.tagger.EXPECT().GenerateTags(gomock.Any(), gomock.Any(), gomock.Any(), domain.MediaKindVideo).Return(tags, nil)
}

func (tm *testServiceMocks) expectUpload() {
	tm.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&storage.UploadResult{URL: "https://gateway.pinata.cloud/ipfs/bafyremix", ContentHash: "bafyremix"}, nil)
}

func (tm *testServiceMocks) expectRegistration() {
	tm.registrar.EXPECT().RegisterDerivative(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ledger.Registration{AssetID: "0xchild", TxHash: "0xlink", Stage: domain.RegistrationCommitted}, nil)
}

// expectSettlement stores the remix and echoes each distribution back
func (tm *testServiceMocks) expectSettlement(t *testing.T, distributions int) *[]store.CreateDistributionInput {
	var written []store.CreateDistributionInput

	tm.settlements.EXPECT().InsertRemix(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d domain.RemixDraft) (*domain.Remix, error) {
			return &domain.Remix{
				ID:              "remix-1",
				CreatorID:       d.CreatorID,
				Title:           d.Title,
				OriginalClipIDs: d.OriginalClipIDs,
				OutputURL:       d.OutputURL,
				LedgerAssetID:   d.LedgerAssetID,
				LedgerTxHash:    d.LedgerTxHash,
				Fee:             d.Fee,
				CreatedAt:       time.Now(),
			}, nil
		})
	tm.settlements.EXPECT().InsertDistribution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in store.CreateDistributionInput) (*domain.RoyaltyDistribution, error) {
			written = append(written, in)
			return &domain.RoyaltyDistribution{
				ID:           fmt.Sprintf("dist-%d", len(written)),
				RemixID:      in.RemixID,
				ClipID:       in.ClipID,
				OwnerAddress: in.OwnerAddress,
				Amount:       in.Amount,
				Timestamp:    time.Now(),
			}, nil
		}).Times(distributions)

	return &written
}

func amounts(distributions []domain.RoyaltyDistribution) []string {
	out := make([]string, len(distributions))
	for i, d := range distributions {
		out[i] = d.Amount.StringFixed(2)
	}
	return out
}

func TestCreateRemix_ThreeParents(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	a, b, c := testClip("a", 0xA), testClip("b", 0xB), testClip("c", 0xC)
	tm.expectClips(a, b, c)
	tm.expectDescribe("Neon Nights", "synthwave", "night")

	tm.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, artifact storage.Artifact, opts storage.UploadOptions) (*storage.UploadResult, error) {
			assert.Equal(t, "Neon Nights", artifact.Name)
			assert.Equal(t, "application/json", artifact.ContentType)

			var m map[string]any
			require.NoError(t, json.Unmarshal(artifact.Data, &m))
			assert.Equal(t, "remix", m["type"])
			assert.Len(t, m["clips"], 3)

			assert.Equal(t, map[string]string{
				"type":          "remix",
				"creator":       "creator-1",
				"originalClips": "a,b,c",
				"platform":      domain.PLATFORM_NAME,
			}, opts.KeyValues)

			return &storage.UploadResult{URL: "https://gateway.pinata.cloud/ipfs/bafyremix"}, nil
		})

	tm.registrar.EXPECT().RegisterDerivative(gomock.Any(), []string{"0xasset-a", "0xasset-b", "0xasset-c"}, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, md ledger.Metadata) (*ledger.Registration, error) {
			assert.Equal(t, "Neon Nights", md.Title)
			assert.Equal(t, "Remix created from 3 original clips", md.Description)
			assert.Equal(t, "https://gateway.pinata.cloud/ipfs/bafyremix", md.MediaURL)
			assert.Equal(t, []string{"a", "b", "c"}, md.Attributes["originalClips"])
			assert.Equal(t, []string{"synthwave", "night"}, md.Attributes["tags"])
			return &ledger.Registration{AssetID: "0xchild", TxHash: "0xlink"}, nil
		})

	written := tm.expectSettlement(t, 3)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.Event) error {
			assert.Equal(t, messaging.EventRemixCreated, event.Type)
			assert.Equal(t, "remix-1", event.EntityID)
			assert.NotEmpty(t, event.ID)
			return nil
		})

	result, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:   []string{"a", "b", "c"},
		CreatorID: "creator-1",
		Style:     "synthwave",
	})
	require.NoError(t, err)

	assert.Equal(t, "remix-1", result.ID)
	assert.Equal(t, "Neon Nights", result.Title)
	assert.Equal(t, "0xchild", result.LedgerAssetID)
	assert.Equal(t, "0xlink", result.LedgerTxHash)
	assert.Equal(t, []string{"synthwave", "night"}, result.Tags)
	require.Len(t, result.OriginalClips, 3)
	assert.Equal(t, ownerAddress(0xB), result.OriginalClips[1].Owner)

	assert.Equal(t, []string{"0.16", "0.16", "0.18"}, amounts(result.RoyaltyDistributions))
	require.Len(t, *written, 3)
	assert.Equal(t, ownerAddress(0xC), (*written)[2].OwnerAddress)
}

func clipIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("clip-%d", i)
	}
	return ids
}

func TestCreateRemix_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input remix.CreateRemixInput
		field string
	}{
		{name: "no clips", input: remix.CreateRemixInput{ClipIDs: []string{}, CreatorID: "creator-1"}, field: "clipIds"},
		{name: "blank clips", input: remix.CreateRemixInput{ClipIDs: []string{" "}, CreatorID: "creator-1"}, field: "clipIds"},
		{name: "no creator", input: remix.CreateRemixInput{ClipIDs: []string{"a"}}, field: "creatorId"},
		{name: "bad remix data", input: remix.CreateRemixInput{ClipIDs: []string{"a"}, CreatorID: "c", RemixData: "%%%"}, field: "remixData"},
		{name: "too many clips", input: remix.CreateRemixInput{ClipIDs: clipIDs(domain.MAX_CLIPS_PER_REMIX + 1), CreatorID: "c"}, field: "clipIds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestService(t)
			defer tm.tearDown()

			result, err := tm.service.CreateRemix(context.Background(), tt.input)
			assert.Nil(t, result)

			var validationErr *domain.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestCreateRemix_PartiallyResolved(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	a := testClip("a", 0xA)
	tm.expectClips(a)
	tm.content.EXPECT().FindClip(gomock.Any(), "ghost").Return(nil, nil)
	tm.expectDescribe("Solo", "lofi")
	tm.expectUpload()

	tm.registrar.EXPECT().RegisterDerivative(gomock.Any(), []string{"0xasset-a"}, gomock.Any()).
		Return(&ledger.Registration{AssetID: "0xchild", TxHash: "0xlink"}, nil)

	written := tm.expectSettlement(t, 1)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:   []string{"a", "ghost"},
		CreatorID: "creator-1",
	})
	require.NoError(t, err)

	require.Len(t, result.OriginalClips, 1)
	assert.Equal(t, "a", result.OriginalClips[0].ID)
	require.Len(t, result.RoyaltyDistributions, 1)
	assert.True(t, result.RoyaltyDistributions[0].Amount.Equal(decimal.RequireFromString("0.50")))
	assert.Equal(t, "a", (*written)[0].ClipID)
}

func TestCreateRemix_NothingResolved(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.content.EXPECT().FindClip(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	_, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:   []string{"x", "y"},
		CreatorID: "creator-1",
	})

	var resolutionErr *domain.ResolutionError
	require.True(t, errors.As(err, &resolutionErr))
	assert.Equal(t, 2, resolutionErr.Requested)
	assert.ErrorIs(t, err, domain.ErrNoClipsResolved)
}

func TestCreateRemix_LedgerFailure(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.expectClips(testClip("a", 0xA), testClip("b", 0xB))
	tm.expectDescribe("Duo", "lofi")
	tm.expectUpload()

	tm.registrar.EXPECT().RegisterDerivative(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &domain.RegistrationError{
			Stage:         domain.RegistrationDerivativeLinked,
			LastCompleted: domain.RegistrationAssetRegistered,
			Err:           errors.New("parent not licensed"),
		})
	tm.settlements.EXPECT().InsertRemix(gomock.Any(), gomock.Any()).Times(0)
	tm.settlements.EXPECT().InsertDistribution(gomock.Any(), gomock.Any()).Times(0)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Times(0)

	result, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:   []string{"a", "b"},
		CreatorID: "creator-1",
	})
	assert.Nil(t, result)

	var serviceErr *domain.ExternalServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, domain.StageLedger, serviceErr.Stage)

	var regErr *domain.RegistrationError
	require.True(t, errors.As(err, &regErr))
	assert.Equal(t, domain.RegistrationDerivativeLinked, regErr.Stage)
	assert.Contains(t, err.Error(), "derivative_linked")
}

func TestCreateRemix_UploadFailure(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.expectClips(testClip("a", 0xA))
	tm.expectDescribe("Solo", "lofi")
	tm.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("pinata unavailable"))
	tm.registrar.EXPECT().RegisterDerivative(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:   []string{"a"},
		CreatorID: "creator-1",
	})

	var serviceErr *domain.ExternalServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, domain.StageUpload, serviceErr.Stage)
}

func TestCreateRemix_PartialSettlement(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.expectClips(testClip("a", 0xA), testClip("b", 0xB))
	tm.expectDescribe("Duo", "lofi")
	tm.expectUpload()
	tm.expectRegistration()

	tm.settlements.EXPECT().InsertRemix(gomock.Any(), gomock.Any()).
		Return(&domain.Remix{ID: "remix-1", CreatorID: "creator-1", OriginalClipIDs: []string{"a", "b"}, Fee: decimal.RequireFromString("0.50")}, nil)
	tm.settlements.EXPECT().InsertDistribution(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in store.CreateDistributionInput) (*domain.RoyaltyDistribution, error) {
			if in.ClipID == "b" {
				return nil, errors.New("connection reset")
			}
			return &domain.RoyaltyDistribution{ID: "dist-a", RemixID: in.RemixID, ClipID: in.ClipID, OwnerAddress: in.OwnerAddress, Amount: in.Amount}, nil
		}).Times(2)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.Event) error {
			assert.Equal(t, messaging.EventSettlementPartial, event.Type)
			return errors.New("broker down")
		})

	result, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:   []string{"a", "b"},
		CreatorID: "creator-1",
	})
	require.NotNil(t, result)
	assert.Equal(t, "remix-1", result.ID)
	assert.Len(t, result.RoyaltyDistributions, 1)

	var partial *domain.PartialSettlementError
	require.True(t, errors.As(err, &partial))
	assert.Equal(t, "remix-1", partial.RemixID)
	require.Len(t, partial.Failed, 1)
	assert.Equal(t, "b", partial.Failed[0].ClipID)
}

func TestCreateRemix_TitleAndRenderedData(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	rendered := []byte("rendered remix bytes")

	tm.expectClips(testClip("a", 0xA))
	tm.tagger.EXPECT().GenerateTitles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	tm.tagger.EXPECT().GenerateTags(gomock.Any(), "My Title", "my description", domain.MediaKindVideo).Return([]string{"mine"}, nil)
	tm.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, artifact storage.Artifact, _ storage.UploadOptions) (*storage.UploadResult, error) {
			assert.Equal(t, rendered, artifact.Data)
			assert.Equal(t, "My Title", artifact.Name)
			return &storage.UploadResult{URL: "https://cdn.example.com/remix"}, nil
		})
	tm.registrar.EXPECT().RegisterDerivative(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ []string, md ledger.Metadata) (*ledger.Registration, error) {
			assert.Equal(t, "my description", md.Description)
			return &ledger.Registration{AssetID: "0xchild", TxHash: "0xlink"}, nil
		})
	tm.expectSettlement(t, 1)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:     []string{"a"},
		CreatorID:   "creator-1",
		Title:       " My Title ",
		Description: "my description",
		RemixData:   base64.StdEncoding.EncodeToString(rendered),
	})
	require.NoError(t, err)
	assert.Equal(t, "My Title", result.Title)
}

func TestCreateRemix_GeneratorFailureFallsBack(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.expectClips(testClip("a", 0xA))
	tm.tagger.EXPECT().GenerateTitles(gomock.Any(), []string{"Clip a"}, "", "").Return(nil, errors.New("quota exceeded"))
	tm.tagger.EXPECT().GenerateTags(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("quota exceeded"))
	tm.expectUpload()
	tm.expectRegistration()
	tm.expectSettlement(t, 1)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:   []string{"a"},
		CreatorID: "creator-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Remix of Clip a", result.Title)
	assert.NotEmpty(t, result.Tags)
}

func TestCreateRemix_GeneratorPanicFallsBack(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.expectClips(testClip("a", 0xA))
	tm.tagger.EXPECT().GenerateTitles(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []string, string, string) ([]string, error) {
			panic("generator crashed")
		}).AnyTimes()
	tm.tagger.EXPECT().GenerateTags(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"synth"}, nil).AnyTimes()
	tm.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, artifact storage.Artifact, _ storage.UploadOptions) (*storage.UploadResult, error) {
			assert.Equal(t, "Remix of Clip a", artifact.Name)
			return &storage.UploadResult{URL: "https://gateway.pinata.cloud/ipfs/bafyremix", ContentHash: "bafyremix"}, nil
		})
	tm.expectRegistration()
	tm.expectSettlement(t, 1)
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	result, err := tm.service.CreateRemix(context.Background(), remix.CreateRemixInput{
		ClipIDs:   []string{"a"},
		CreatorID: "creator-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Remix of Clip a", result.Title)
	assert.NotEmpty(t, result.Tags)
}

func TestListRemixes(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	remixes := []domain.Remix{
		{ID: "remix-2", CreatorID: "creator-1", OriginalClipIDs: []string{"a", "gone"}, Fee: decimal.RequireFromString("0.50")},
		{ID: "remix-1", CreatorID: "creator-1", OriginalClipIDs: []string{"b"}, Fee: decimal.RequireFromString("0.50")},
	}
	tm.content.EXPECT().ListRemixesByCreator(gomock.Any(), "creator-1").Return(remixes, nil)
	tm.expectClips(testClip("a", 0xA), testClip("b", 0xB))
	tm.content.EXPECT().FindClip(gomock.Any(), "gone").Return(nil, errors.New("malformed metadata"))

	tm.settlements.EXPECT().DistributionsFor(gomock.Any(), "remix-2").
		Return([]domain.RoyaltyDistribution{{ID: "d1", RemixID: "remix-2", ClipID: "a", Amount: decimal.RequireFromString("0.50")}}, nil)
	tm.settlements.EXPECT().DistributionsFor(gomock.Any(), "remix-1").Return(nil, errors.New("timeout"))

	result, err := tm.service.ListRemixes(context.Background(), "creator-1")
	require.NoError(t, err)
	require.Len(t, result, 2)

	assert.Equal(t, "remix-2", result[0].ID)
	require.Len(t, result[0].OriginalClips, 1)
	assert.Equal(t, "a", result[0].OriginalClips[0].ID)
	assert.Len(t, result[0].RoyaltyDistributions, 1)

	assert.Equal(t, "remix-1", result[1].ID)
	assert.Len(t, result[1].OriginalClips, 1)
	assert.NotNil(t, result[1].RoyaltyDistributions)
	assert.Empty(t, result[1].RoyaltyDistributions)
}

func TestListRemixes_All(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.content.EXPECT().ListAllRemixes(gomock.Any()).Return(nil, nil)

	result, err := tm.service.ListRemixes(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestListRemixes_StoreFailure(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.content.EXPECT().ListRemixesByCreator(gomock.Any(), gomock.Any()).Return(nil, errors.New("database is down"))

	_, err := tm.service.ListRemixes(context.Background(), "creator-1")

	var persistenceErr *domain.PersistenceError
	assert.True(t, errors.As(err, &persistenceErr))
}

func TestGetRemix(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.content.EXPECT().GetRemix(gomock.Any(), "missing").Return(nil, nil)
	_, err := tm.service.GetRemix(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrRemixNotFound)

	tm.content.EXPECT().GetRemix(gomock.Any(), "remix-1").
		Return(&domain.Remix{ID: "remix-1", OriginalClipIDs: []string{"a"}, Fee: decimal.RequireFromString("0.50")}, nil)
	tm.expectClips(testClip("a", 0xA))
	tm.settlements.EXPECT().DistributionsFor(gomock.Any(), "remix-1").Return(nil, nil)

	result, err := tm.service.GetRemix(context.Background(), "remix-1")
	require.NoError(t, err)
	assert.Equal(t, "remix-1", result.ID)
	assert.Len(t, result.OriginalClips, 1)
}

func mp3Data() []byte {
	return append([]byte("ID3\x03\x00\x00\x00\x00\x00\x00"), make([]byte, 64)...)
}

func TestUploadClip(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	owner := "0x00000000000000000000000000000000000000a1"

	tm.uploader.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, artifact storage.Artifact, opts storage.UploadOptions) (*storage.UploadResult, error) {
			assert.Equal(t, "beat.mp3", artifact.Name)
			assert.Equal(t, "audio", opts.KeyValues["type"])
			return &storage.UploadResult{URL: "https://gateway.pinata.cloud/ipfs/bafybeat", ContentHash: "bafybeat", Size: 74}, nil
		})
	tm.tagger.EXPECT().GenerateTags(gomock.Any(), "Beat", "a beat", domain.MediaKindAudio).Return([]string{"beat"}, nil)
	tm.registrar.EXPECT().RegisterOriginal(gomock.Any(), gomock.Any(), domain.DefaultLicenseTerms(domain.DEFAULT_ROYALTY_RATE)).
		DoAndReturn(func(_ context.Context, md ledger.Metadata, _ domain.LicenseTerms) (*ledger.Registration, error) {
			assert.Equal(t, "Beat", md.Title)
			assert.Equal(t, "https://gateway.pinata.cloud/ipfs/bafybeat", md.MediaURL)
			return &ledger.Registration{AssetID: "0xbeat", TxHash: "0xtx", LicenseTermsID: "7"}, nil
		})
	tm.content.EXPECT().CreateClip(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in store.CreateClipInput) (*domain.Clip, error) {
			assert.Equal(t, "0xbeat", in.LedgerAssetID)
			assert.Equal(t, domain.NormalizeOwnerAddress(owner), in.OwnerAddress)
			assert.Equal(t, domain.MediaKindAudio, in.Metadata.Kind)
			assert.Equal(t, []string{"beat"}, in.Metadata.Tags)
			assert.Equal(t, "bafybeat", in.Metadata.ContentHash)
			return &domain.Clip{ID: "clip-1", Title: in.Title, OwnerAddress: in.OwnerAddress, LedgerAssetID: in.LedgerAssetID}, nil
		})
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, event *messaging.Event) error {
			assert.Equal(t, messaging.EventClipRegistered, event.Type)
			return nil
		})

	clip, err := tm.service.UploadClip(context.Background(), remix.UploadClipInput{
		FileName:     "uploads/beat.mp3",
		Data:         mp3Data(),
		Title:        "Beat",
		Description:  "a beat",
		OwnerAddress: owner,
	})
	require.NoError(t, err)
	assert.Equal(t, "clip-1", clip.ID)
	assert.Equal(t, "0xbeat", clip.LedgerAssetID)
}

func TestUploadClip_Validation(t *testing.T) {
	valid := remix.UploadClipInput{
		FileName:     "beat.mp3",
		Data:         mp3Data(),
		Title:        "Beat",
		OwnerAddress: "0x00000000000000000000000000000000000000a1",
	}

	tests := []struct {
		name   string
		mutate func(in *remix.UploadClipInput)
		field  string
	}{
		{name: "no title", mutate: func(in *remix.UploadClipInput) { in.Title = " " }, field: "title"},
		{name: "no data", mutate: func(in *remix.UploadClipInput) { in.Data = nil }, field: "file"},
		{name: "too large", mutate: func(in *remix.UploadClipInput) { in.Data = make([]byte, 2<<20) }, field: "file"},
		{name: "bad owner", mutate: func(in *remix.UploadClipInput) { in.OwnerAddress = "alice" }, field: "ownerAddress"},
		{name: "not media", mutate: func(in *remix.UploadClipInput) { in.Data = []byte(`{"json":true}`) }, field: "file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestService(t)
			defer tm.tearDown()

			in := valid
			tt.mutate(&in)

			_, err := tm.service.UploadClip(context.Background(), in)
			var validationErr *domain.ValidationError
			require.True(t, errors.As(err, &validationErr))
			assert.Equal(t, tt.field, validationErr.Field)
		})
	}
}

func TestUploadClip_TaggerFailureFallsBack(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.expectUpload()
	tm.tagger.EXPECT().GenerateTags(gomock.Any(), "Night Drive", "", domain.MediaKindAudio).Return(nil, errors.New("quota exceeded"))
	tm.registrar.EXPECT().RegisterOriginal(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&ledger.Registration{AssetID: "0xbeat", TxHash: "0xtx"}, nil)
	tm.content.EXPECT().CreateClip(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in store.CreateClipInput) (*domain.Clip, error) {
			assert.Contains(t, in.Metadata.Tags, "audio")
			assert.Contains(t, in.Metadata.Tags, "night")
			assert.Contains(t, in.Metadata.Tags, "drive")
			return &domain.Clip{ID: "clip-1", Title: in.Title, LedgerAssetID: in.LedgerAssetID, Metadata: in.Metadata}, nil
		})
	tm.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil)

	clip, err := tm.service.UploadClip(context.Background(), remix.UploadClipInput{
		Data:         mp3Data(),
		Title:        "Night Drive",
		OwnerAddress: "0x00000000000000000000000000000000000000a1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, clip.Metadata.Tags)
}

func TestUploadClip_LedgerFailure(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.expectUpload()
	tm.tagger.EXPECT().GenerateTags(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return([]string{"beat"}, nil)
	tm.registrar.EXPECT().RegisterOriginal(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &domain.RegistrationError{Stage: domain.RegistrationLicenseAttached, LastCompleted: domain.RegistrationAssetRegistered})
	tm.content.EXPECT().CreateClip(gomock.Any(), gomock.Any()).Times(0)

	_, err := tm.service.UploadClip(context.Background(), remix.UploadClipInput{
		Data:         mp3Data(),
		Title:        "Beat",
		OwnerAddress: "0x00000000000000000000000000000000000000a1",
	})

	var serviceErr *domain.ExternalServiceError
	require.True(t, errors.As(err, &serviceErr))
	assert.Equal(t, domain.StageLedger, serviceErr.Stage)
}

func TestGetClip(t *testing.T) {
	tm := setupTestService(t)
	defer tm.tearDown()

	tm.content.EXPECT().FindClip(gomock.Any(), "missing").Return(nil, nil)
	_, err := tm.service.GetClip(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrClipNotFound)

	tm.content.EXPECT().FindClip(gomock.Any(), "clip-1").Return(testClip("clip-1", 1), nil)
	clip, err := tm.service.GetClip(context.Background(), "clip-1")
	require.NoError(t, err)
	assert.Equal(t, "clip-1", clip.ID)
}
