package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/stackpine/saleor-payment-apps/internal/application"
	"github.com/stackpine/saleor-payment-apps/internal/domain"
	"github.com/stackpine/saleor-payment-apps/internal/infrastructure/persistence/postgres"
	"github.com/stackpine/saleor-payment-apps/internal/infrastructure/persistence/testhelpers"
)

type TransactionRecorderTestSuite struct {
	suite.Suite
	testDB   *testhelpers.TestDatabase
	recorder *postgres.TransactionRecorder
}

func TestTransactionRecorderSuite(t *testing.T) {
	suite.Run(t, new(TransactionRecorderTestSuite))
}

func (suite *TransactionRecorderTestSuite) SetupSuite() {
	suite.testDB = testhelpers.SetupTestDatabase(suite.T())
	suite.recorder = postgres.NewTransactionRecorder(suite.testDB.DB)
}

func (suite *TransactionRecorderTestSuite) TearDownSuite() {
	suite.testDB.Cleanup(suite.T())
}

func (suite *TransactionRecorderTestSuite) SetupTest() {
	suite.testDB.CleanTables(suite.T())
}

func paymentContext() domain.PaymentContext {
	return domain.PaymentContext{
		SaleorAPIURL: "https://shop.example.com/graphql/",
		AppID:        "app-stripe",
	}
}

func sampleRecord() domain.TransactionRecord {
	return domain.TransactionRecord{
		SaleorTransactionID: "tx-1",
		ProviderPaymentID:   "pi_1",
		ResolvedFlow:        domain.FlowAuthorization,
		SaleorFlow:          domain.FlowAuthorization,
		PaymentMethod:       "card",
	}
}

func (suite *TransactionRecorderTestSuite) Test_RecordAndGet() {
	ctx := context.Background()
	t := suite.T()
	pc := paymentContext()
	record := sampleRecord()

	require.NoError(t, suite.recorder.RecordTransaction(ctx, pc, record))

	got, err := suite.recorder.GetTransactionByID(ctx, pc, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, record, *got)
}

func (suite *TransactionRecorderTestSuite) Test_Record_LastWriteWins() {
	ctx := context.Background()
	t := suite.T()
	pc := paymentContext()

	require.NoError(t, suite.recorder.RecordTransaction(ctx, pc, sampleRecord()))

	updated := sampleRecord()
	updated.ProviderPaymentID = "pi_2"
	updated.PaymentMethod = "card"
	require.NoError(t, suite.recorder.RecordTransaction(ctx, pc, updated))

	got, err := suite.recorder.GetTransactionByID(ctx, pc, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_2", got.ProviderPaymentID)

	var count int
	err = suite.testDB.DB.Pool.QueryRow(ctx, "SELECT count(*) FROM transaction_records").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count, "a redelivered initialize must not create a second row")
}

func (suite *TransactionRecorderTestSuite) Test_Get_MissingRecord() {
	ctx := context.Background()
	t := suite.T()

	_, err := suite.recorder.GetTransactionByID(ctx, paymentContext(), "tx-unknown")
	assert.ErrorIs(t, err, application.ErrTransactionMissing)
}

func (suite *TransactionRecorderTestSuite) Test_Records_ScopedPerContext() {
	ctx := context.Background()
	t := suite.T()
	pc := paymentContext()

	require.NoError(t, suite.recorder.RecordTransaction(ctx, pc, sampleRecord()))

	otherApp := domain.PaymentContext{SaleorAPIURL: pc.SaleorAPIURL, AppID: "app-atobarai"}
	_, err := suite.recorder.GetTransactionByID(ctx, otherApp, "tx-1")
	assert.ErrorIs(t, err, application.ErrTransactionMissing)

	otherInstance := domain.PaymentContext{SaleorAPIURL: "https://other.example.com/graphql/", AppID: pc.AppID}
	_, err = suite.recorder.GetTransactionByID(ctx, otherInstance, "tx-1")
	assert.ErrorIs(t, err, application.ErrTransactionMissing)
}

func (suite *TransactionRecorderTestSuite) Test_SameTransactionID_AcrossContexts() {
	ctx := context.Background()
	t := suite.T()
	pc := paymentContext()
	other := domain.PaymentContext{SaleorAPIURL: pc.SaleorAPIURL, AppID: "app-atobarai"}

	require.NoError(t, suite.recorder.RecordTransaction(ctx, pc, sampleRecord()))

	npRecord := domain.TransactionRecord{
		SaleorTransactionID: "tx-1",
		ProviderPaymentID:   "np-1",
		ResolvedFlow:        domain.FlowCharge,
		SaleorFlow:          domain.FlowCharge,
		PaymentMethod:       "atobarai",
	}
	require.NoError(t, suite.recorder.RecordTransaction(ctx, other, npRecord))

	got, err := suite.recorder.GetTransactionByID(ctx, pc, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "pi_1", got.ProviderPaymentID)

	got, err = suite.recorder.GetTransactionByID(ctx, other, "tx-1")
	require.NoError(t, err)
	assert.Equal(t, "np-1", got.ProviderPaymentID)
}
