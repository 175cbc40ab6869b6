package rfm_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/rfm/internal/rfm"
)

func TestRun_Ledger(t *testing.T) {
	res, err := rfm.Run(ledger(), asOf)
	require.NoError(t, err)

	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, len(ledger()), res.Stats.Transactions)
	assert.Equal(t, 57, res.Stats.LineItems)
	assert.Equal(t, 11, res.Stats.Aggregated)
	assert.Equal(t, 1, res.Stats.NonPositive)
	assert.Equal(t, 10, res.Stats.Scored)
	require.Len(t, res.Customers, 10)

	want := []rfm.Segment{
		rfm.SegmentHibernating, rfm.SegmentHibernating,
		rfm.SegmentHibernating, rfm.SegmentHibernating,
		rfm.SegmentNeedAttention, rfm.SegmentNeedAttention,
		rfm.SegmentLoyalCustomers, rfm.SegmentLoyalCustomers,
		rfm.SegmentChampions, rfm.SegmentChampions,
	}

	for i, c := range res.Customers {
		assert.Equal(t, int64(12346+i), c.CustomerID)
		assert.Equal(t, want[i], c.Segment, "customer %d", c.CustomerID)
	}
}

func TestRun_OutputInvariants(t *testing.T) {
	res, err := rfm.Run(ledger(), asOf)
	require.NoError(t, err)

	for _, c := range res.Customers {
		assert.GreaterOrEqual(t, c.Recency, 0)
		assert.GreaterOrEqual(t, c.Frequency, 1)
		assert.True(t, c.Monetary.IsPositive(), "customer %d monetary %s", c.CustomerID, c.Monetary)
		assert.NotEqual(t, int64(99999), c.CustomerID)
	}
}

func TestRun_CancellationIgnored(t *testing.T) {
	res, err := rfm.Run(ledger(), asOf)
	require.NoError(t, err)

	first := res.Customers[0]
	assert.Equal(t, int64(12346), first.CustomerID)
	assert.Equal(t, 100, first.Recency)
	assert.Equal(t, 1, first.Frequency)
	assert.Equal(t, "3", first.Monetary.String())
}

func TestRun_Idempotent(t *testing.T) {
	render := func() []byte {
		res, err := rfm.Run(ledger(), asOf)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, rfm.WriteCSV(&buf, res.Customers))

		return buf.Bytes()
	}

	assert.Equal(t, render(), render())
}

func TestRun_NothingToScore(t *testing.T) {
	txs := ledger()[len(ledger())-2:]

	_, err := rfm.Run(txs, asOf)
	assert.ErrorIs(t, err, rfm.ErrNoCustomers)
}

func TestService_Segment(t *testing.T) {
	type testCase struct {
		name      string
		setupMock func(m *rfm.MockSource)
		wantLen   int
		wantErr   bool
	}

	tests := []testCase{
		{
			name: "Success",
			setupMock: func(m *rfm.MockSource) {
				m.EXPECT().LoadTransactions(gomock.Any()).Return(ledger(), nil)
			},
			wantLen: 10,
		},
		{
			name: "SourceError",
			setupMock: func(m *rfm.MockSource) {
				m.EXPECT().LoadTransactions(gomock.Any()).Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			src := rfm.NewMockSource(ctrl)
			tt.setupMock(src)

			svc := rfm.NewService(src)
			got, err := svc.Segment(context.Background(), asOf)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Len(t, got.Customers, tt.wantLen)
		})
	}
}
