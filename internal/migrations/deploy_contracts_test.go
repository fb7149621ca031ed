package migrations_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/scubr/scubr-migrate/internal/domain/models"
	"github.com/scubr/scubr-migrate/internal/migrations"
)

// MockDeployer is a mock implementation of migrations.Deployer
type MockDeployer struct {
	mock.Mock
}

func (m *MockDeployer) Deploy(ctx context.Context, artifact string, args ...any) (*models.Deployment, error) {
	ret := m.Called(ctx, artifact, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.Deployment), ret.Error(1)
}

func (m *MockDeployer) Deployed(ctx context.Context, artifact string) (*models.Deployment, error) {
	ret := m.Called(ctx, artifact)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(*models.Deployment), ret.Error(1)
}

var tokenAddr = common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")

func TestDeployContracts(t *testing.T) {
	ctx := context.Background()

	t.Run("passes engagement token address to video token", func(t *testing.T) {
		token := &models.Deployment{ContractName: migrations.ScubrEngagementToken, Address: tokenAddr}
		video := &models.Deployment{ContractName: migrations.ScubrVideoToken, Address: common.HexToAddress("0xBB")}

		d := new(MockDeployer)
		first := d.On("Deploy", ctx, migrations.ScubrEngagementToken, []any(nil)).Return(token, nil).Once()
		lookup := d.On("Deployed", ctx, migrations.ScubrEngagementToken).Return(token, nil).Once().NotBefore(first)
		d.On("Deploy", ctx, migrations.ScubrVideoToken, []any{tokenAddr}).Return(video, nil).Once().NotBefore(lookup)

		require.NoError(t, migrations.DeployContracts(ctx, d))
		d.AssertExpectations(t)
	})

	t.Run("engagement token failure stops the run", func(t *testing.T) {
		boom := errors.New("insufficient funds")

		d := new(MockDeployer)
		d.On("Deploy", ctx, migrations.ScubrEngagementToken, []any(nil)).Return(nil, boom).Once()

		err := migrations.DeployContracts(ctx, d)
		require.ErrorIs(t, err, boom)
		d.AssertNotCalled(t, "Deployed", mock.Anything, mock.Anything)
		d.AssertNotCalled(t, "Deploy", mock.Anything, migrations.ScubrVideoToken, mock.Anything)
	})

	t.Run("video token failure is reported without retry", func(t *testing.T) {
		token := &models.Deployment{ContractName: migrations.ScubrEngagementToken, Address: tokenAddr}
		revert := errors.New("execution reverted")

		d := new(MockDeployer)
		d.On("Deploy", ctx, migrations.ScubrEngagementToken, []any(nil)).Return(token, nil).Once()
		d.On("Deployed", ctx, migrations.ScubrEngagementToken).Return(token, nil).Once()
		d.On("Deploy", ctx, migrations.ScubrVideoToken, []any{tokenAddr}).Return(nil, revert).Once()

		err := migrations.DeployContracts(ctx, d)
		require.ErrorIs(t, err, revert)
		d.AssertNumberOfCalls(t, "Deploy", 2)
		d.AssertExpectations(t)
	})

	t.Run("lookup failure is wrapped", func(t *testing.T) {
		token := &models.Deployment{ContractName: migrations.ScubrEngagementToken, Address: tokenAddr}
		missing := errors.New("not deployed")

		d := new(MockDeployer)
		d.On("Deploy", ctx, migrations.ScubrEngagementToken, []any(nil)).Return(token, nil).Once()
		d.On("Deployed", ctx, migrations.ScubrEngagementToken).Return(nil, missing).Once()

		err := migrations.DeployContracts(ctx, d)
		require.ErrorIs(t, err, missing)
		assert.Contains(t, err.Error(), "lookup ScubrEngagementToken")
		d.AssertNumberOfCalls(t, "Deploy", 1)
	})
}

func TestSelect(t *testing.T) {
	list := []migrations.Migration{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}, {ID: 5, Name: "c"}}

	tests := []struct {
		name    string
		from    int
		to      int
		want    []int
		wantErr bool
	}{
		{name: "unbounded", want: []int{1, 2, 5}},
		{name: "from only", from: 2, want: []int{2, 5}},
		{name: "to only", to: 2, want: []int{1, 2}},
		{name: "single", from: 5, to: 5, want: []int{5}},
		{name: "inverted range", from: 5, to: 1, wantErr: true},
		{name: "empty range", from: 3, to: 4, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := migrations.Select(list, tt.from, tt.to)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			ids := make([]int, len(got))
			for i, m := range got {
				ids[i] = m.ID
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestAll(t *testing.T) {
	all := migrations.All()
	require.NotEmpty(t, all)
	assert.Equal(t, "2_deploy_contracts", all[0].FullName())
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}
