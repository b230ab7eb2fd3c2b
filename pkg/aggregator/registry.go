package aggregator

import (
	"fmt"

	"github.com/dexcore-labs/solswap/pkg"
	"github.com/dexcore-labs/solswap/pkg/pool/aldrin"
	"github.com/dexcore-labs/solswap/pkg/pool/crema"
	"github.com/dexcore-labs/solswap/pkg/pool/cropper"
	"github.com/dexcore-labs/solswap/pkg/pool/mercurial"
	"github.com/dexcore-labs/solswap/pkg/pool/orcav1"
	"github.com/dexcore-labs/solswap/pkg/pool/raydium"
	"github.com/dexcore-labs/solswap/pkg/pool/saber"
	"github.com/dexcore-labs/solswap/pkg/pool/saros"
	"github.com/dexcore-labs/solswap/pkg/pool/whirlpool"
)

// BuilderFor maps a protocol tag to its instruction builder. The switch is
// exhaustive over the closed protocol set so a new protocol that is added to
// the enum without a builder fails here rather than at dispatch time.
func BuilderFor(p pkg.Protocol) (pkg.InstructionBuilder, error) {
	switch p {
	case pkg.ProtocolSaber:
		return saber.NewBuilder(), nil
	case pkg.ProtocolMercurial:
		return mercurial.NewBuilder(), nil
	case pkg.ProtocolCropper:
		return cropper.NewBuilder(), nil
	case pkg.ProtocolOrca:
		return orcav1.NewBuilder(), nil
	case pkg.ProtocolSaros:
		return saros.NewBuilder(), nil
	case pkg.ProtocolAldrin:
		return aldrin.NewBuilder(), nil
	case pkg.ProtocolCrema:
		return crema.NewBuilder(), nil
	case pkg.ProtocolRaydium:
		return raydium.NewBuilder(), nil
	case pkg.ProtocolWhirlpool:
		return whirlpool.NewBuilder(), nil
	default:
		return nil, fmt.Errorf("%w: %d", pkg.ErrUnsupportedProtocol, p)
	}
}
