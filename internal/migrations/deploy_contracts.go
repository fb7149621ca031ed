package migrations

import (
	"context"
	"fmt"
)

const (
	ScubrEngagementToken = "ScubrEngagementToken"
	ScubrVideoToken      = "ScubrVideoToken"
)

// DeployContracts deploys the engagement token and hands its address to the video token constructor.
func DeployContracts(ctx context.Context, d Deployer) error {
	if _, err := d.Deploy(ctx, ScubrEngagementToken); err != nil {
		return err
	}

	token, err := d.Deployed(ctx, ScubrEngagementToken)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", ScubrEngagementToken, err)
	}

	if _, err := d.Deploy(ctx, ScubrVideoToken, token.Address); err != nil {
		return err
	}
	return nil
}
