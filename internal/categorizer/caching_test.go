package categorizer

import (
	"context"
	"errors"
	"testing"

	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachingClassifier_HitAndMiss(t *testing.T) {
	s := &store.MockClassificationStore{Classifications: map[string]models.Classification{
		"星巴克": {CategoryID: models.CategoryFood, CategoryName: "stale", Reason: "cached"},
	}}
	stub := &StubClassifier{Default: models.CategoryShopping}

	c, err := NewCachingClassifier(stub, s, &logging.MockLogger{})
	require.NoError(t, err)

	hit, err := c.Classify(context.Background(), models.Transaction{Counterparty: " 星巴克 "})
	require.NoError(t, err)
	assert.Equal(t, "餐饮", hit.CategoryName)
	assert.Equal(t, "cached", hit.Reason)
	assert.Empty(t, stub.Calls)

	miss, err := c.Classify(context.Background(), models.Transaction{Counterparty: "优衣库"})
	require.NoError(t, err)
	assert.Equal(t, "购物", miss.CategoryName)
	assert.Len(t, stub.Calls, 1)

	again, err := c.Classify(context.Background(), models.Transaction{Counterparty: "优衣库"})
	require.NoError(t, err)
	assert.Equal(t, miss, again)
	assert.Len(t, stub.Calls, 1)

	require.NoError(t, c.Flush())
	assert.Equal(t, 1, s.Saves)
	assert.Contains(t, s.Classifications, "优衣库")

	require.NoError(t, c.Flush())
	assert.Equal(t, 1, s.Saves, "unchanged cache is not saved again")
}

func TestCachingClassifier_BlankCounterpartyIsNotCached(t *testing.T) {
	s := &store.MockClassificationStore{}
	stub := &StubClassifier{Default: models.CategoryOther}
	c, err := NewCachingClassifier(stub, s, nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := c.Classify(context.Background(), models.Transaction{Counterparty: "  "})
		require.NoError(t, err)
	}
	assert.Len(t, stub.Calls, 2)
	require.NoError(t, c.Flush())
	assert.Zero(t, s.Saves)
}

func TestCachingClassifier_InvalidCachedIDFallsThrough(t *testing.T) {
	s := &store.MockClassificationStore{Classifications: map[string]models.Classification{
		"x": {CategoryID: 99},
	}}
	stub := &StubClassifier{Default: models.CategoryTransport}
	c, err := NewCachingClassifier(stub, s, nil)
	require.NoError(t, err)

	result, err := c.Classify(context.Background(), models.Transaction{Counterparty: "x"})
	require.NoError(t, err)
	assert.Equal(t, "交通", result.CategoryName)
	assert.Len(t, stub.Calls, 1)
}

func TestCachingClassifier_Errors(t *testing.T) {
	_, err := NewCachingClassifier(&StubClassifier{}, &store.MockClassificationStore{LoadError: errors.New("disk")}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk")

	stub := &StubClassifier{FailOn: "bad"}
	c, err := NewCachingClassifier(stub, &store.MockClassificationStore{}, nil)
	require.NoError(t, err)
	_, err = c.Classify(context.Background(), models.Transaction{Counterparty: "bad"})
	require.Error(t, err)
}
