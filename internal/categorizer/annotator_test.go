package categorizer

import (
	"context"
	"errors"
	"testing"

	"fjacquet/bill-csv/internal/config"
	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/parsererror"
	"fjacquet/bill-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batch() []models.Transaction {
	return []models.Transaction{
		{Counterparty: "星巴克", TransactionType: models.TypeExpense, Amount: models.MustAmount("37"), Category: "tag"},
		{Counterparty: "公司", TransactionType: models.TypeIncome, Amount: models.MustAmount("1000")},
		{Counterparty: "滴滴", TransactionType: models.TypeExpense, Amount: models.MustAmount("25.5")},
	}
}

func TestAnnotator_Annotate(t *testing.T) {
	stub := &StubClassifier{
		ByCounterparty: map[string]int{"星巴克": models.CategoryFood, "公司": models.CategoryIncome},
		Default:        models.CategoryTransport,
	}
	logger := logging.NewMockLogger()

	annotated, err := NewAnnotator(stub, config.ProviderOllama, logger).Annotate(context.Background(), batch())

	require.NoError(t, err)
	require.Len(t, annotated, 3)
	assert.Equal(t, "餐饮", annotated[0].Category, "category column is overwritten")
	assert.Equal(t, models.CategoryFood, annotated[0].CategoryID)
	assert.Equal(t, "收入", annotated[1].CategoryName)
	assert.Equal(t, "交通", annotated[2].CategoryName)
	assert.Equal(t, "stub", annotated[2].CategoryReason)
	assert.Len(t, stub.Calls, 3)

	infos := logger.EntriesByLevel("INFO")
	assert.Len(t, infos, 4)
	assert.True(t, logger.HasEntry("INFO", "Annotation complete"))
}

func TestAnnotator_FailsFast(t *testing.T) {
	stub := &StubClassifier{FailOn: "公司", Err: errors.New("boom")}

	annotated, err := NewAnnotator(stub, config.ProviderGemini, nil).Annotate(context.Background(), batch())

	require.Error(t, err)
	assert.Nil(t, annotated)
	assert.Len(t, stub.Calls, 2, "no classification after the failing record")
	assert.Contains(t, err.Error(), "record 2")
	var classErr *parsererror.ClassificationError
	require.True(t, errors.As(err, &classErr))
	assert.Equal(t, config.ProviderGemini, classErr.Provider)
	assert.Contains(t, classErr.Transaction, "公司")
}

func TestAnnotator_KeepsClassificationErrors(t *testing.T) {
	inner := &parsererror.ClassificationError{Transaction: "t", Provider: config.ProviderOllama, Err: errors.New("x")}
	stub := &StubClassifier{FailOn: "星巴克", Err: inner}

	_, err := NewAnnotator(stub, "other", nil).Annotate(context.Background(), batch())

	var classErr *parsererror.ClassificationError
	require.True(t, errors.As(err, &classErr))
	assert.Same(t, inner, classErr)
}

func TestAnnotator_FlushesCacheOnlyOnSuccess(t *testing.T) {
	s := &store.MockClassificationStore{}
	failing, err := NewCachingClassifier(&StubClassifier{FailOn: "滴滴"}, s, nil)
	require.NoError(t, err)

	_, err = NewAnnotator(failing, config.ProviderOllama, nil).Annotate(context.Background(), batch())
	require.Error(t, err)
	assert.Zero(t, s.Saves)

	ok, err := NewCachingClassifier(&StubClassifier{}, s, nil)
	require.NoError(t, err)
	_, err = NewAnnotator(ok, config.ProviderOllama, nil).Annotate(context.Background(), batch())
	require.NoError(t, err)
	assert.Equal(t, 1, s.Saves)
	assert.Len(t, s.Classifications, 3)
}

func TestAnnotator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stub := &StubClassifier{}

	_, err := NewAnnotator(stub, config.ProviderOllama, nil).Annotate(ctx, batch())

	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, stub.Calls)
}

func TestAnnotator_EmptyBatch(t *testing.T) {
	annotated, err := NewAnnotator(&StubClassifier{}, config.ProviderOllama, nil).Annotate(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, annotated)
	assert.Empty(t, annotated)
}

func TestAnnotator_ClassifierFunc(t *testing.T) {
	var seen []string
	classify := ClassifierFunc(func(_ context.Context, tx models.Transaction) (models.Classification, error) {
		seen = append(seen, tx.Counterparty)
		return models.Classification{CategoryID: models.CategoryTransport, CategoryName: "交通", Reason: "func"}, nil
	})

	annotated, err := NewAnnotator(classify, config.ProviderOllama, nil).Annotate(context.Background(), batch())

	require.NoError(t, err)
	assert.Equal(t, []string{"星巴克", "公司", "滴滴"}, seen)
	for _, row := range annotated {
		assert.Equal(t, "交通", row.Category)
		assert.Equal(t, "func", row.CategoryReason)
	}
}
