package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/scubr/scubr-migrate/internal/usecase"
)

func TestSpinnerSink(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()

	var buf bytes.Buffer
	sink := NewSpinnerSinkTo(&buf)

	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageResolving, Current: 1, Total: 1, Message: "Running migration 2_deploy_contracts"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeploying, Spinner: true, Message: "Deploying ScubrEngagementToken"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeployed, Message: "ScubrEngagementToken deployed at 0xAA"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageDeploying, Spinner: true, Message: "Deploying ScubrVideoToken"})
	sink.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageFailed, Message: "ScubrVideoToken failed"})
	sink.Error("boom")

	out := buf.String()
	assert.Contains(t, out, "[1/1] Running migration 2_deploy_contracts")
	assert.Contains(t, out, "✓ ScubrEngagementToken deployed at 0xAA")
	assert.Contains(t, out, "✗ ScubrVideoToken failed")
	assert.Contains(t, out, "boom")
	assert.False(t, sink.spinner.Active())
}
