package models

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/trebuchet-org/rt-deploy/internal/domain"
)

// ArtifactFormat identifies the toolchain that produced an artifact
type ArtifactFormat string

const (
	ArtifactFormatHardhat ArtifactFormat = "hardhat"
	ArtifactFormatFoundry ArtifactFormat = "foundry"
)

// Blueprint is a compiled contract that can be deployed by name
type Blueprint struct {
	Name         string         `json:"name"`
	Path         string         `json:"path"`
	ArtifactPath string         `json:"artifactPath,omitempty"`
	Format       ArtifactFormat `json:"format"`
	Artifact     *Artifact      `json:"artifact,omitempty"`
}

// FullyQualifiedName returns "path:Name"
func (b *Blueprint) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", b.Path, b.Name)
}

// ParsedABI decodes the artifact ABI. A missing ABI is treated as empty.
func (b *Blueprint) ParsedABI() (*abi.ABI, error) {
	raw := b.Artifact.ABI
	if len(bytes.TrimSpace(raw)) == 0 || string(raw) == "null" {
		raw = json.RawMessage("[]")
	}
	parsed, err := abi.JSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI for %s: %w", b.FullyQualifiedName(), err)
	}
	return &parsed, nil
}

// CreationCode returns the decoded creation bytecode
func (b *Blueprint) CreationCode() ([]byte, error) {
	if b.Artifact.HasLinkReferences() || strings.Contains(b.Artifact.Bytecode.Object, "__") {
		return nil, fmt.Errorf("%s: %w", b.FullyQualifiedName(), domain.ErrUnlinkedBytecode)
	}

	object := strings.TrimPrefix(b.Artifact.Bytecode.Object, "0x")
	if object == "" {
		return nil, fmt.Errorf("%s has no creation bytecode", b.FullyQualifiedName())
	}

	code, err := hex.DecodeString(object)
	if err != nil {
		return nil, fmt.Errorf("failed to decode bytecode for %s: %w", b.FullyQualifiedName(), err)
	}
	return code, nil
}

// Validate checks that the blueprint can be deployed without constructor arguments
func (b *Blueprint) Validate() error {
	if b.Artifact == nil {
		return fmt.Errorf("%s has no artifact", b.FullyQualifiedName())
	}
	if _, err := b.CreationCode(); err != nil {
		return err
	}
	parsed, err := b.ParsedABI()
	if err != nil {
		return err
	}
	if n := len(parsed.Constructor.Inputs); n > 0 {
		return fmt.Errorf("%s expects %d constructor argument(s): %w",
			b.FullyQualifiedName(), n, domain.ErrConstructorArgsUnsupported)
	}
	return nil
}

// BytecodeObject holds creation or runtime bytecode. Hardhat writes a plain
// hex string, Foundry writes an object with the hex under "object".
type BytecodeObject struct {
	Object         string         `json:"object"`
	SourceMap      string         `json:"sourceMap,omitempty"`
	LinkReferences map[string]any `json:"linkReferences,omitempty"`
}

func (b *BytecodeObject) UnmarshalJSON(data []byte) error {
	var object string
	if err := json.Unmarshal(data, &object); err == nil {
		b.Object = object
		return nil
	}

	type bytecodeObject BytecodeObject
	var raw bytecodeObject
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*b = BytecodeObject(raw)
	return nil
}

// Artifact is a Hardhat or Foundry compilation artifact
type Artifact struct {
	HardhatFormat    string          `json:"_format,omitempty"`
	ContractName     string          `json:"contractName,omitempty"`
	SourceName       string          `json:"sourceName,omitempty"`
	ABI              json.RawMessage `json:"abi"`
	Bytecode         BytecodeObject  `json:"bytecode"`
	DeployedBytecode BytecodeObject  `json:"deployedBytecode"`
	LinkReferences   map[string]any  `json:"linkReferences,omitempty"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
}

// Format reports which toolchain produced the artifact
func (a *Artifact) Format() ArtifactFormat {
	if a.HardhatFormat != "" || a.ContractName != "" {
		return ArtifactFormatHardhat
	}
	return ArtifactFormatFoundry
}

// HasLinkReferences reports whether any library must be linked before deployment
func (a *Artifact) HasLinkReferences() bool {
	return len(a.LinkReferences) > 0 || len(a.Bytecode.LinkReferences) > 0
}

// CompilationTarget returns the source and contract name recorded in Foundry
// metadata, if present.
func (a *Artifact) CompilationTarget() (source, name string, ok bool) {
	if len(a.Metadata) == 0 {
		return "", "", false
	}
	var metadata struct {
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	}
	// older forge versions write metadata as a string
	if err := json.Unmarshal(a.Metadata, &metadata); err != nil {
		return "", "", false
	}
	for source, name := range metadata.Settings.CompilationTarget {
		return source, name, true
	}
	return "", "", false
}
