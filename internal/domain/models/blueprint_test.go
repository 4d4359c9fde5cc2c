package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/rt-deploy/internal/domain"
)

func TestBytecodeObjectUnmarshal(t *testing.T) {
	t.Run("hardhat string", func(t *testing.T) {
		var artifact Artifact
		require.NoError(t, json.Unmarshal([]byte(`{"contractName":"RTT","bytecode":"0x6000"}`), &artifact))
		assert.Equal(t, "0x6000", artifact.Bytecode.Object)
		assert.Equal(t, ArtifactFormatHardhat, artifact.Format())
	})

	t.Run("foundry object", func(t *testing.T) {
		var artifact Artifact
		require.NoError(t, json.Unmarshal([]byte(`{"bytecode":{"object":"0x6000","linkReferences":{"src/Lib.sol":{"Lib":[]}}}}`), &artifact))
		assert.Equal(t, "0x6000", artifact.Bytecode.Object)
		assert.True(t, artifact.HasLinkReferences())
		assert.Equal(t, ArtifactFormatFoundry, artifact.Format())
	})

	t.Run("invalid type", func(t *testing.T) {
		var artifact Artifact
		assert.Error(t, json.Unmarshal([]byte(`{"bytecode":42}`), &artifact))
	})
}

func TestCompilationTarget(t *testing.T) {
	var artifact Artifact
	require.NoError(t, json.Unmarshal([]byte(`{"metadata":{"settings":{"compilationTarget":{"src/RTT.sol":"RTT"}}}}`), &artifact))

	source, name, ok := artifact.CompilationTarget()
	assert.True(t, ok)
	assert.Equal(t, "src/RTT.sol", source)
	assert.Equal(t, "RTT", name)

	var legacy Artifact
	require.NoError(t, json.Unmarshal([]byte(`{"metadata":"{\"compiler\":{}}"}`), &legacy))
	_, _, ok = legacy.CompilationTarget()
	assert.False(t, ok)
}

func newBlueprint(abiJSON, bytecode string) *Blueprint {
	return &Blueprint{
		Name: "RTT",
		Path: "contracts/RTT.sol",
		Artifact: &Artifact{
			ABI:      json.RawMessage(abiJSON),
			Bytecode: BytecodeObject{Object: bytecode},
		},
	}
}

func TestBlueprintValidate(t *testing.T) {
	tests := []struct {
		name     string
		abi      string
		bytecode string
		wantErr  error
		errText  string
	}{
		{
			name:     "zero argument constructor",
			abi:      `[{"type":"constructor","inputs":[],"stateMutability":"nonpayable"}]`,
			bytecode: "0x6001600c60003960016000f300",
		},
		{
			name:     "no abi",
			abi:      ``,
			bytecode: "6001600c60003960016000f300",
		},
		{
			name:     "constructor arguments",
			abi:      `[{"type":"constructor","inputs":[{"name":"owner","type":"address"}],"stateMutability":"nonpayable"}]`,
			bytecode: "0x6000",
			wantErr:  domain.ErrConstructorArgsUnsupported,
		},
		{
			name:     "unlinked library placeholder",
			abi:      `[]`,
			bytecode: "0x6000__$1234567890abcdef1234567890abcdef12$__6000",
			wantErr:  domain.ErrUnlinkedBytecode,
		},
		{
			name:     "empty bytecode",
			abi:      `[]`,
			bytecode: "0x",
			errText:  "has no creation bytecode",
		},
		{
			name:     "invalid hex",
			abi:      `[]`,
			bytecode: "0xzz",
			errText:  "failed to decode bytecode",
		},
		{
			name:     "invalid abi",
			abi:      `{"type":`,
			bytecode: "0x6000",
			errText:  "failed to parse ABI",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := newBlueprint(tt.abi, tt.bytecode).Validate()
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestFullyQualifiedName(t *testing.T) {
	assert.Equal(t, "contracts/RTT.sol:RTT", newBlueprint("[]", "0x00").FullyQualifiedName())
}
