package repository_test

import (
	"context"
	"math"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/repository"
)

type orderRepositorySuite struct {
	suite.Suite

	repo      port.OrderRepository
	pool      *pgxpool.Pool
	container *postgres.PostgresContainer
}

// entry point to run the tests in the suite
func TestOrderRepositorySuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed suite in short mode")
	}
	suite.Run(t, new(orderRepositorySuite))
}

// before all tests in the suite
func (suite *orderRepositorySuite) SetupSuite() {
	ctx := context.Background()

	var (
		connStr string
		err     error
	)
	suite.container, connStr, err = startPostgres(ctx)
	suite.Require().NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.Require().NoError(err)

	suite.repo = repository.NewOrder(suite.pool)
}

// after all tests in the suite
func (suite *orderRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
	if suite.container != nil {
		suite.NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *orderRepositorySuite) TestSaveOrder() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		order     domain.Order
		wantError string
	}{
		{
			name:  "save order with lines: ok",
			order: randomOrder(3),
		},
		{
			name: "save order with zero price line: ok",
			order: func() domain.Order {
				o := randomOrder(1)
				o.Lines[0].UnitPrice = domain.NewMoney(decimal.Zero)
				o.Total = domain.NewMoney(decimal.Zero)
				return o
			}(),
		},
		{
			name: "save order with empty ID: error",
			order: func() domain.Order {
				o := randomOrder(1)
				o.ID = uuid.Nil
				return o
			}(),
			wantError: "orderID is empty",
		},
		{
			name: "save order with empty session: error",
			order: func() domain.Order {
				o := randomOrder(1)
				o.SessionID = ""
				return o
			}(),
			wantError: "sessionID is empty",
		},
		{
			name: "save order without lines: error",
			order: func() domain.Order {
				o := randomOrder(0)
				return o
			}(),
			wantError: "order has no lines",
		},
		{
			name: "save order with quantity above int32: error",
			order: func() domain.Order {
				o := randomOrder(1)
				o.Lines[0].Quantity = math.MaxInt32 + 1
				return o
			}(),
			wantError: "line[0]: quantity 2147483648 is out of range",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := context.Background()

			saved, err := suite.repo.SaveOrder(ctx, tt.order)
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
			assert.False(t, saved.CreatedAt.IsZero())

			got, err := suite.repo.GetOrder(ctx, tt.order.ID)
			require.NoError(t, err)
			assertOrder(t, tt.order, got)
		})
	}
}

func (suite *orderRepositorySuite) TestSaveOrder_DuplicateID() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := context.Background()

	order := randomOrder(2)
	_, err := suite.repo.SaveOrder(ctx, order)
	require.NoError(t, err)

	dup := randomOrder(1)
	dup.ID = order.ID
	_, err = suite.repo.SaveOrder(ctx, dup)
	require.Error(t, err)

	// the failed insert must not leave lines behind
	got, err := suite.repo.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assertOrder(t, order, got)
}

func (suite *orderRepositorySuite) TestGetOrder() {
	defer suite.deleteAll()

	tests := []struct {
		name      string
		orderID   uuid.UUID
		wantErrIs error
		wantError string
	}{
		{
			name:      "unknown order: not found",
			orderID:   uuid.New(),
			wantErrIs: domain.ErrOrderNotFound,
		},
		{
			name:      "nil order ID: error",
			orderID:   uuid.Nil,
			wantError: "orderID is empty",
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			_, err := suite.repo.GetOrder(context.Background(), tt.orderID)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.EqualError(t, err, tt.wantError)
		})
	}
}

func (suite *orderRepositorySuite) TestSaveOrder_OuterTxRollback() {
	defer suite.deleteAll()

	t := suite.T()
	ctx := context.Background()

	tx, err := suite.pool.Begin(ctx)
	require.NoError(t, err)

	order := randomOrder(2)
	_, err = repository.NewOrderWithTx(tx).SaveOrder(ctx, order)
	require.NoError(t, err)

	require.NoError(t, tx.Rollback(ctx))

	_, err = suite.repo.GetOrder(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestSaveOrder_LineOutOfRange(t *testing.T) {
	repo := repository.NewOrder(nil)

	tests := []struct {
		name      string
		mutate    func(line *domain.OrderLine)
		wantError string
	}{
		{
			name:      "quantity above int32",
			mutate:    func(line *domain.OrderLine) { line.Quantity = math.MaxInt32 + 1 },
			wantError: "line[0]: quantity 2147483648 is out of range",
		},
		{
			name:      "zero quantity",
			mutate:    func(line *domain.OrderLine) { line.Quantity = 0 },
			wantError: "line[0]: quantity 0 is out of range",
		},
		{
			name:      "product ID above int32",
			mutate:    func(line *domain.OrderLine) { line.ProductID = math.MaxInt32 + 1 },
			wantError: "line[0]: productID 2147483648 is out of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := randomOrder(1)
			tt.mutate(&order.Lines[0])

			_, err := repo.SaveOrder(context.Background(), order)
			require.EqualError(t, err, tt.wantError)
		})
	}
}

func (suite *orderRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(context.Background(), "TRUNCATE TABLE orders CASCADE")
	suite.NoError(err)
}

func randomOrder(lines int) domain.Order {
	order := domain.Order{
		ID:        uuid.New(),
		SessionID: gofakeit.UUID(),
		Lines:     make([]domain.OrderLine, 0, lines),
	}

	total := decimal.Zero
	for i := 0; i < lines; i++ {
		line := domain.OrderLine{
			ProductID: gofakeit.IntRange(1, 10_000),
			Title:     gofakeit.ProductName(),
			UnitPrice: domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2)),
			Quantity:  gofakeit.IntRange(1, 5),
		}
		total = total.Add(line.UnitPrice.Amount.Mul(decimal.NewFromInt(int64(line.Quantity))))
		order.Lines = append(order.Lines, line)
	}
	order.Total = domain.NewMoney(total)

	return order
}

func assertOrder(t *testing.T, expected, actual domain.Order) {
	t.Helper()

	currencyComparer := cmp.Comparer(func(x, y currency.Unit) bool {
		return x.String() == y.String()
	})

	// Ignore the CreatedAt field in Order
	opts := cmp.Options{
		cmpopts.IgnoreFields(domain.Order{}, "CreatedAt"),
		currencyComparer,
	}

	diff := cmp.Diff(expected, actual, opts)
	assert.Empty(t, diff)

	assert.False(t, actual.CreatedAt.IsZero())
}
