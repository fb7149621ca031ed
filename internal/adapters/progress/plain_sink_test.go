package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/scubr/scubr-migrate/internal/usecase"
	"github.com/stretchr/testify/assert"
)

func TestPlainSink(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	sink := NewPlainSinkTo(&buf)

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageResolving, Current: 1, Total: 1, Message: "Running migration 2_deploy_contracts"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeploying, Spinner: true, Message: "Deploying ScubrEngagementToken"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeployed, Message: "ScubrEngagementToken deployed at 0xAA"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageFailed, Message: "ScubrVideoToken failed"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageCompleted, Current: 2, Total: 2, Message: "Deployments loaded"})
	sink.Error("boom")

	assert.Equal(t,
		"[1/1] Running migration 2_deploy_contracts\n"+
			"ScubrEngagementToken deployed at 0xAA\n"+
			"FAILED ScubrVideoToken failed\n"+
			"error: boom\n",
		buf.String())
}
