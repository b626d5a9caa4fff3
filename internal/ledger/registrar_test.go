package ledger_test

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/ledger"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/mocks"
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

// testRegistrarMocks contains all the mocks needed for testing the registrar
type testRegistrarMocks struct {
	ctrl      *gomock.Controller
	client    *mocks.MockLedgerClient
	kv        *mocks.MockKeyValueStore
	registrar ledger.Registrar
}

func testConfig() ledger.Config {
	return ledger.Config{
		Timeout:           time.Second,
		LinkRetries:       3,
		LinkRetryInterval: time.Millisecond,
		NFTContract:       "0xclips",
		RemixNFTContract:  "0xremixes",
	}
}

// setupTestRegistrar creates all the mocks and the registrar for testing
func setupTestRegistrar(t *testing.T, cfg ledger.Config) *testRegistrarMocks {
	ctrl := gomock.NewController(t)

	tm := &testRegistrarMocks{
		ctrl:   ctrl,
		client: mocks.NewMockLedgerClient(ctrl),
		kv:     mocks.NewMockKeyValueStore(ctrl),
	}
	tm.registrar = ledger.NewRegistrar(cfg, tm.client, tm.kv, adapter.NewCanonicalizer())
	return tm
}

func (tm *testRegistrarMocks) tearDown() {
	tm.ctrl.Finish()
}

func testMetadata() ledger.Metadata {
	return ledger.Metadata{
		Title:       "Night Drive",
		Description: "Remix created from 2 original clips",
		MediaURL:    "https://gateway.pinata.cloud/ipfs/bafyremix",
		Attributes:  map[string]any{"platform": domain.PLATFORM_NAME},
	}
}

// expectStaged sets up a successful metadata upload and asset registration
func (tm *testRegistrarMocks) expectStaged(t *testing.T, contract string) {
	tm.client.EXPECT().UploadMetadata(gomock.Any(), testMetadata()).Return("ipfs://bafymeta", nil)
	tm.client.EXPECT().RegisterAsset(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ledger.AssetRequest) (*ledger.Asset, error) {
			assert.Equal(t, contract, req.TokenContract)
			assert.NotEmpty(t, req.TokenID)
			assert.Equal(t, "ipfs://bafymeta", req.MetadataURI)
			assert.True(t, strings.HasPrefix(req.MetadataHash, "0x"))
			return &ledger.Asset{AssetID: "0xchild", TxHash: "0xregister"}, nil
		})
}

func requireRegistrationError(t *testing.T, err error, stage, last domain.RegistrationStage) *domain.RegistrationError {
	t.Helper()
	var regErr *domain.RegistrationError
	require.True(t, errors.As(err, &regErr), "expected RegistrationError, got %v", err)
	assert.Equal(t, stage, regErr.Stage)
	assert.Equal(t, last, regErr.LastCompleted)
	return regErr
}

func TestRegisterDerivative_Success(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	tm.expectStaged(t, "0xremixes")
	tm.kv.EXPECT().GetKeyValue(gomock.Any(), gomock.Any()).Return("", nil)
	tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ledger.LinkRequest) (string, error) {
			assert.Equal(t, "0xchild", req.ChildAssetID)
			assert.ElementsMatch(t, []string{"0xa", "0xb"}, req.ParentAssetIDs)
			assert.True(t, strings.HasPrefix(req.IdempotencyKey, "0x"))
			return "0xlink", nil
		})
	tm.kv.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), "0xlink").
		DoAndReturn(func(_ context.Context, key, _ string) error {
			assert.True(t, strings.HasPrefix(key, "ledger_link:0x"))
			return nil
		})

	reg, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa", "0xb", "0xa"}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "0xchild", reg.AssetID)
	assert.Equal(t, "0xlink", reg.TxHash)
	assert.Equal(t, "ipfs://bafymeta", reg.MetadataURI)
	assert.Equal(t, domain.RegistrationCommitted, reg.Stage)
}

func TestRegisterDerivative_RecordedLinkIsNotResubmitted(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	tm.expectStaged(t, "0xremixes")
	tm.kv.EXPECT().GetKeyValue(gomock.Any(), gomock.Any()).Return("0xearlier", nil)
	tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).Times(0)

	reg, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa"}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "0xearlier", reg.TxHash)
}

func TestRegisterDerivative_FingerprintLookupFailureStillLinks(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	tm.expectStaged(t, "0xremixes")
	tm.kv.EXPECT().GetKeyValue(gomock.Any(), gomock.Any()).Return("", errors.New("connection reset"))
	tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).Return("0xlink", nil)
	tm.kv.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), "0xlink").Return(errors.New("connection reset"))

	reg, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa"}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "0xlink", reg.TxHash)
}

func TestRegisterDerivative_LinkRetriesTransientFailures(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	tm.expectStaged(t, "0xremixes")
	tm.kv.EXPECT().GetKeyValue(gomock.Any(), gomock.Any()).Return("", nil)

	var keys []string
	gomock.InOrder(
		tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req ledger.LinkRequest) (string, error) {
				keys = append(keys, req.IdempotencyKey)
				return "", &adapter.StatusError{StatusCode: http.StatusBadGateway}
			}),
		tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req ledger.LinkRequest) (string, error) {
				keys = append(keys, req.IdempotencyKey)
				return "", errors.New("connection reset by peer")
			}),
		tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req ledger.LinkRequest) (string, error) {
				keys = append(keys, req.IdempotencyKey)
				return "0xlink", nil
			}),
	)
	tm.kv.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), "0xlink").Return(nil)

	reg, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa", "0xb"}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "0xlink", reg.TxHash)

	require.Len(t, keys, 3)
	assert.Equal(t, keys[0], keys[1])
	assert.Equal(t, keys[1], keys[2])
}

func TestRegisterDerivative_LinkRateLimitedIsResubmitted(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	tm.expectStaged(t, "0xremixes")
	tm.kv.EXPECT().GetKeyValue(gomock.Any(), gomock.Any()).Return("", nil)
	gomock.InOrder(
		tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).
			Return("", &adapter.StatusError{StatusCode: http.StatusTooManyRequests}),
		tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).Return("0xlink", nil),
	)
	tm.kv.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), "0xlink").Return(nil)

	reg, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa"}, testMetadata())
	require.NoError(t, err)
	assert.Equal(t, "0xlink", reg.TxHash)
}

func TestRegisterDerivative_LinkRetriesExhausted(t *testing.T) {
	cfg := testConfig()
	cfg.LinkRetries = 2
	tm := setupTestRegistrar(t, cfg)
	defer tm.tearDown()

	tm.expectStaged(t, "0xremixes")
	tm.kv.EXPECT().GetKeyValue(gomock.Any(), gomock.Any()).Return("", nil)
	tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).
		Return("", &adapter.StatusError{StatusCode: http.StatusServiceUnavailable}).Times(3)

	reg, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa"}, testMetadata())
	assert.Nil(t, reg)
	requireRegistrationError(t, err, domain.RegistrationDerivativeLinked, domain.RegistrationAssetRegistered)
	assert.True(t, adapter.IsStatus(err, http.StatusServiceUnavailable))
}

func TestRegisterDerivative_LinkRejectedIsNotRetried(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	tm.expectStaged(t, "0xremixes")
	tm.kv.EXPECT().GetKeyValue(gomock.Any(), gomock.Any()).Return("", nil)
	tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).
		Return("", &adapter.StatusError{StatusCode: http.StatusConflict, Body: "parent not licensed"}).Times(1)

	_, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa"}, testMetadata())
	requireRegistrationError(t, err, domain.RegistrationDerivativeLinked, domain.RegistrationAssetRegistered)
	assert.True(t, adapter.IsStatus(err, http.StatusConflict))
}

func TestRegisterDerivative_StepFailures(t *testing.T) {
	t.Run("metadata upload", func(t *testing.T) {
		tm := setupTestRegistrar(t, testConfig())
		defer tm.tearDown()

		tm.client.EXPECT().UploadMetadata(gomock.Any(), gomock.Any()).Return("", errors.New("gateway down"))

		_, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa"}, testMetadata())
		requireRegistrationError(t, err, domain.RegistrationMetadataStaged, domain.RegistrationIdle)
	})

	t.Run("asset registration", func(t *testing.T) {
		tm := setupTestRegistrar(t, testConfig())
		defer tm.tearDown()

		tm.client.EXPECT().UploadMetadata(gomock.Any(), gomock.Any()).Return("ipfs://bafymeta", nil)
		tm.client.EXPECT().RegisterAsset(gomock.Any(), gomock.Any()).Return(nil, errors.New("reverted"))

		_, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa"}, testMetadata())
		requireRegistrationError(t, err, domain.RegistrationAssetRegistered, domain.RegistrationMetadataStaged)
	})
}

func TestRegisterDerivative_NoParents(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	_, err := tm.registrar.RegisterDerivative(context.Background(), []string{"", "  "}, testMetadata())

	var validationErr *domain.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestRegisterDerivative_CancelledBeforeStart(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := tm.registrar.RegisterDerivative(ctx, []string{"0xa"}, testMetadata())
	requireRegistrationError(t, err, domain.RegistrationMetadataStaged, domain.RegistrationIdle)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, domain.ErrUnknownOutcome)
}

func TestRegisterDerivative_CancelledMidway(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.client.EXPECT().UploadMetadata(gomock.Any(), gomock.Any()).
		DoAndReturn(func(callCtx context.Context, _ ledger.Metadata) (string, error) {
			cancel()
			// the in-flight call is detached from the caller
			assert.NoError(t, callCtx.Err())
			return "ipfs://bafymeta", nil
		})
	tm.client.EXPECT().RegisterAsset(gomock.Any(), gomock.Any()).Times(0)

	_, err := tm.registrar.RegisterDerivative(ctx, []string{"0xa"}, testMetadata())
	requireRegistrationError(t, err, domain.RegistrationAssetRegistered, domain.RegistrationMetadataStaged)
	assert.ErrorIs(t, err, domain.ErrUnknownOutcome)
}

func TestRegisterDerivative_CancelledDuringLastStep(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tm.expectStaged(t, "0xremixes")
	tm.kv.EXPECT().GetKeyValue(gomock.Any(), gomock.Any()).Return("", nil)
	tm.client.EXPECT().LinkDerivative(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, ledger.LinkRequest) (string, error) {
			cancel()
			return "0xlink", nil
		})
	tm.kv.EXPECT().SetKeyValue(gomock.Any(), gomock.Any(), "0xlink").Return(nil)

	_, err := tm.registrar.RegisterDerivative(ctx, []string{"0xa"}, testMetadata())
	requireRegistrationError(t, err, domain.RegistrationCommitted, domain.RegistrationDerivativeLinked)
	assert.ErrorIs(t, err, domain.ErrUnknownOutcome)
}

func TestRegisterDerivative_StepTimeout(t *testing.T) {
	cfg := testConfig()
	cfg.Timeout = 20 * time.Millisecond
	tm := setupTestRegistrar(t, cfg)
	defer tm.tearDown()

	tm.client.EXPECT().UploadMetadata(gomock.Any(), gomock.Any()).
		DoAndReturn(func(callCtx context.Context, _ ledger.Metadata) (string, error) {
			<-callCtx.Done()
			return "", callCtx.Err()
		})

	_, err := tm.registrar.RegisterDerivative(context.Background(), []string{"0xa"}, testMetadata())
	requireRegistrationError(t, err, domain.RegistrationMetadataStaged, domain.RegistrationIdle)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRegisterOriginal_Success(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	terms := domain.DefaultLicenseTerms(domain.DEFAULT_ROYALTY_RATE)

	tm.expectStaged(t, "0xclips")
	tm.client.EXPECT().AttachLicense(gomock.Any(), "0xchild", terms).Return("7", nil)

	reg, err := tm.registrar.RegisterOriginal(context.Background(), testMetadata(), terms)
	require.NoError(t, err)
	assert.Equal(t, "0xchild", reg.AssetID)
	assert.Equal(t, "0xregister", reg.TxHash)
	assert.Equal(t, "7", reg.LicenseTermsID)
	assert.Equal(t, domain.RegistrationCommitted, reg.Stage)
}

func TestRegisterOriginal_LicenseFailure(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	tm.expectStaged(t, "0xclips")
	tm.client.EXPECT().AttachLicense(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("reverted"))

	_, err := tm.registrar.RegisterOriginal(context.Background(), testMetadata(), domain.DefaultLicenseTerms(10))
	requireRegistrationError(t, err, domain.RegistrationLicenseAttached, domain.RegistrationAssetRegistered)
}

func TestRegisterOriginal_InvalidRate(t *testing.T) {
	tm := setupTestRegistrar(t, testConfig())
	defer tm.tearDown()

	_, err := tm.registrar.RegisterOriginal(context.Background(), testMetadata(), domain.DefaultLicenseTerms(150))

	var validationErr *domain.ValidationError
	assert.True(t, errors.As(err, &validationErr))
}
