package models

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// ArtifactFormat identifies the compiler toolchain that produced an artifact file
type ArtifactFormat string

const (
	ArtifactFormatTruffle ArtifactFormat = "truffle"
	ArtifactFormatFoundry ArtifactFormat = "foundry"
)

// Artifact is a compiled contract resolved by name
type Artifact struct {
	Name            string         `json:"name"`
	SourcePath      string         `json:"sourcePath,omitempty"`
	ArtifactPath    string         `json:"artifactPath"`
	Format          ArtifactFormat `json:"format"`
	CompilerVersion string         `json:"compilerVersion,omitempty"`
	ABI             abi.ABI        `json:"-"`
	Bytecode        []byte         `json:"-"`
}

// Key returns the "path:Name" form used to disambiguate artifacts with the same name
func (a *Artifact) Key() string {
	if a.SourcePath == "" {
		return a.Name
	}
	return a.SourcePath + ":" + a.Name
}

// HasConstructor reports whether the ABI declares a constructor with inputs
func (a *Artifact) HasConstructor() bool {
	return len(a.ABI.Constructor.Inputs) > 0
}

// ConstructorSignature renders the constructor as "constructor(address token)"
func (a *Artifact) ConstructorSignature() string {
	parts := make([]string, 0, len(a.ABI.Constructor.Inputs))
	for _, in := range a.ABI.Constructor.Inputs {
		p := in.Type.String()
		if in.Name != "" {
			p += " " + in.Name
		}
		parts = append(parts, p)
	}
	return "constructor(" + strings.Join(parts, ", ") + ")"
}

// IsDeployable reports whether there is creation code to send
func (a *Artifact) IsDeployable() bool {
	return len(a.Bytecode) > 0
}
