package metadata

import (
	"github.com/code-payments/arch-token-metadata/pkg/arch"
	"github.com/code-payments/arch-token-metadata/pkg/arch/system"
)

var (
	// ProgramKey is the default deployment of the token metadata program.
	ProgramKey = arch.PubkeyFromSlice([]byte("arch-metadata000000000000000000"))

	SystemProgramKey = system.ProgramKey
)
