package domain

// DeploymentFilter defines filtering options for deployments
type DeploymentFilter struct {
	Namespace    string
	ChainID      uint64
	ContractName string
}

// Matches reports whether the given fields pass the filter. Zero values match everything.
func (f DeploymentFilter) Matches(namespace string, chainID uint64, contract string) bool {
	if f.Namespace != "" && f.Namespace != namespace {
		return false
	}
	if f.ChainID != 0 && f.ChainID != chainID {
		return false
	}
	if f.ContractName != "" && f.ContractName != contract {
		return false
	}
	return true
}
