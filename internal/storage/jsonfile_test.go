package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestJSONStorage(t *testing.T) *JSONStorage {
	t.Helper()
	store, err := NewJSONStorage(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return store
}

func createTestTransactions() []model.Transaction {
	day := func(d int) time.Time {
		return time.Date(2024, time.March, d, 0, 0, 0, 0, time.Local)
	}
	return []model.Transaction{
		{Amount: decimal.RequireFromString("1000"), Category: "Salary", Kind: model.KindIncome, Date: day(1)},
		{Amount: decimal.RequireFromString("300"), Category: "Food", Kind: model.KindExpense, Date: day(3)},
		{Amount: decimal.RequireFromString("19.99"), Category: "Fast Food", Kind: model.KindExpense, Date: day(2)},
	}
}

func assertSameTransactions(t *testing.T, want, got []model.Transaction) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "transaction %d: want %+v, got %+v", i, want[i], got[i])
	}
}

func TestJSONStorageMissingFile(t *testing.T) {
	store := createTestJSONStorage(t)
	ctx := context.Background()

	_, err := store.LoadTransactions(ctx)
	require.ErrorIs(t, err, common.ErrNoSavedData)

	_, err = store.LoadBudget(ctx)
	require.ErrorIs(t, err, common.ErrNoSavedData)
}

func TestJSONStorageRoundTrip(t *testing.T) {
	store := createTestJSONStorage(t)
	ctx := context.Background()
	txns := createTestTransactions()

	require.NoError(t, store.SaveTransactions(ctx, txns))

	loaded, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	assertSameTransactions(t, txns, loaded)
}

func TestJSONStorageFormat(t *testing.T) {
	store := createTestJSONStorage(t)
	ctx := context.Background()

	txns := []model.Transaction{{
		Amount:   decimal.RequireFromString("42.5"),
		Category: "Food",
		Kind:     model.KindExpense,
		Date:     time.Date(2024, time.January, 5, 0, 0, 0, 0, time.Local),
	}}
	require.NoError(t, store.SaveTransactions(ctx, txns))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	want := "[\n" +
		"    {\n" +
		"        \"amount\": 42.5,\n" +
		"        \"category\": \"Food\",\n" +
		"        \"trans_type\": \"expense\",\n" +
		"        \"date\": \"2024-01-05\"\n" +
		"    }\n" +
		"]\n"
	assert.Equal(t, want, string(data))
}

func TestJSONStorageOverwrites(t *testing.T) {
	store := createTestJSONStorage(t)
	ctx := context.Background()
	txns := createTestTransactions()

	require.NoError(t, store.SaveTransactions(ctx, txns))
	require.NoError(t, store.SaveTransactions(ctx, txns[:1]))

	loaded, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	assertSameTransactions(t, txns[:1], loaded)

	require.NoError(t, store.SaveTransactions(ctx, nil))
	loaded, err = store.LoadTransactions(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestJSONStorageReadsExternalFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr error
	}{
		{
			name:    "float amounts and no dates",
			content: `[{"amount": 300.0, "category": "Food", "trans_type": "expense"}]`,
			want:    1,
		},
		{
			name:    "empty file",
			content: "",
			want:    0,
		},
		{
			name:    "malformed json",
			content: `[{"amount": `,
			wantErr: common.ErrPersistenceUnavailable,
		},
		{
			name:    "unknown kind",
			content: `[{"amount": 1, "category": "Food", "trans_type": "refund"}]`,
			wantErr: common.ErrInvalidArgument,
		},
		{
			name:    "bad date",
			content: `[{"amount": 1, "category": "Food", "trans_type": "income", "date": "03/01/2024"}]`,
			wantErr: common.ErrPersistenceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := createTestJSONStorage(t)
			require.NoError(t, os.WriteFile(store.Path(), []byte(tt.content), 0600))

			loaded, err := store.LoadTransactions(context.Background())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, loaded, tt.want)
		})
	}
}

func TestJSONStorageUndatedRecord(t *testing.T) {
	store := createTestJSONStorage(t)
	content := `[{"amount": 300.0, "category": "food", "trans_type": "expense"}]`
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0600))

	loaded, err := store.LoadTransactions(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.True(t, loaded[0].Date.IsZero())
	assert.True(t, loaded[0].Amount.Equal(decimal.NewFromInt(300)))
	assert.Equal(t, "food", loaded[0].Category, "storage does not normalize; the ledger does")
}

func TestJSONStorageUnwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0600))

	store, err := NewJSONStorage(filepath.Join(blocker, "data.json"))
	require.NoError(t, err)

	err = store.SaveTransactions(context.Background(), createTestTransactions())
	require.ErrorIs(t, err, common.ErrPersistenceUnavailable)
}

func TestJSONStorageBudget(t *testing.T) {
	store := createTestJSONStorage(t)
	ctx := context.Background()

	limits := []model.BudgetLimit{
		{Category: "Food", Limit: decimal.RequireFromString("400")},
		{Category: "Rent", Limit: decimal.RequireFromString("1250.50")},
	}
	require.NoError(t, store.SaveBudget(ctx, limits))

	_, err := os.Stat(filepath.Join(filepath.Dir(store.Path()), "data.budget.json"))
	require.NoError(t, err)

	loaded, err := store.LoadBudget(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	got := make(map[string]decimal.Decimal)
	for _, l := range loaded {
		got[l.Category] = l.Limit
	}
	assert.True(t, got["Food"].Equal(decimal.NewFromInt(400)))
	assert.True(t, got["Rent"].Equal(decimal.RequireFromString("1250.5")))
}

func TestJSONStorageRejectsInvalidInput(t *testing.T) {
	store := createTestJSONStorage(t)
	ctx := context.Background()

	err := store.SaveTransactions(ctx, []model.Transaction{{Amount: decimal.NewFromInt(1), Kind: "bogus", Date: time.Now()}})
	require.ErrorIs(t, err, ErrInvalidTransaction)

	err = store.SaveBudget(ctx, []model.BudgetLimit{{Category: "Food", Limit: decimal.Zero}})
	require.ErrorIs(t, err, ErrInvalidBudgetLimit)

	_, err = NewJSONStorage("  ")
	require.ErrorIs(t, err, ErrEmptyString)
}

func TestBudgetPathFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "data.json", want: "data.budget.json"},
		{path: "/tmp/ledger", want: "/tmp/ledger.budget.json"},
		{path: "dir/my.ledger.json", want: "dir/my.ledger.budget.json"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, budgetPathFor(tt.path))
		})
	}
}
