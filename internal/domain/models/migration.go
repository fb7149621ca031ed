package models

import "time"

// MigrationStatus is the outcome of one migration run
type MigrationStatus string

const (
	MigrationStatusSucceeded MigrationStatus = "SUCCEEDED"
	MigrationStatusFailed    MigrationStatus = "FAILED"
)

// MigrationRecord is the history entry written for every migration executed
type MigrationRecord struct {
	MigrationID   int             `json:"migrationId"`
	Name          string          `json:"name"`
	Namespace     string          `json:"namespace"`
	Network       string          `json:"network"`
	ChainID       uint64          `json:"chainId"`
	Status        MigrationStatus `json:"status"`
	Error         string          `json:"error,omitempty"`
	DeploymentIDs []string        `json:"deploymentIds"`
	StartedAt     time.Time       `json:"startedAt"`
	FinishedAt    time.Time       `json:"finishedAt"`
}

// Duration returns how long the migration ran
func (r *MigrationRecord) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
