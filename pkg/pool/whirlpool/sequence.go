package whirlpool

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	pkg "github.com/dexcore-labs/solswap/pkg"
)

// TickArrayIndex addresses a single initializable tick as (array, offset).
type TickArrayIndex struct {
	ArrayIndex  int
	OffsetIndex int
	TickSpacing int
}

// TickArrayIndexFromTick locates the array and in-array offset holding tick.
func TickArrayIndexFromTick(tick, tickSpacing int) TickArrayIndex {
	arrayIndex := floorDiv(floorDiv(tick, tickSpacing), TickArraySize)
	offset := floorDiv(tick%(tickSpacing*TickArraySize), tickSpacing)
	if offset < 0 {
		offset += TickArraySize
	}
	return TickArrayIndex{ArrayIndex: arrayIndex, OffsetIndex: offset, TickSpacing: tickSpacing}
}

// ToTickIndex maps the (array, offset) pair back to a tick index.
func (t TickArrayIndex) ToTickIndex() int {
	return t.ArrayIndex*TickArraySize*t.TickSpacing + t.OffsetIndex*t.TickSpacing
}

func (t TickArrayIndex) toNextInitializableTickIndex() TickArrayIndex {
	return TickArrayIndexFromTick(t.ToTickIndex()+t.TickSpacing, t.TickSpacing)
}

func (t TickArrayIndex) toPrevInitializableTickIndex() TickArrayIndex {
	return TickArrayIndexFromTick(t.ToTickIndex()-t.TickSpacing, t.TickSpacing)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// TickArrayData pairs a fetched tick array with its account address. Data is
// nil when the array account does not exist on chain.
type TickArrayData struct {
	Address solana.PublicKey
	Data    *TickArrayState
}

// TickArraySequence walks a fixed window of tick arrays in swap direction,
// recording which arrays the traversal actually touched.
type TickArraySequence struct {
	tickArrays      []TickArrayData
	tickSpacing     int
	aToB            bool
	touchedArrays   []bool
	startArrayIndex int
}

// NewTickArraySequence builds a sequence over the fetched arrays. The first
// array must hold data since the traversal starts inside it.
func NewTickArraySequence(tickArrays []TickArrayData, tickSpacing int, aToB bool) (*TickArraySequence, error) {
	if len(tickArrays) == 0 || tickArrays[0].Data == nil {
		return nil, fmt.Errorf("%w: tick array sequence has no starting array", pkg.ErrAccountNotFound)
	}
	return &TickArraySequence{
		tickArrays:      tickArrays,
		tickSpacing:     tickSpacing,
		aToB:            aToB,
		touchedArrays:   make([]bool, len(tickArrays)),
		startArrayIndex: TickArrayIndexFromTick(int(tickArrays[0].Data.StartTickIndex), tickSpacing).ArrayIndex,
	}, nil
}

func (s *TickArraySequence) isValidTickArrayIndex(index TickArrayIndex) bool {
	local := s.getLocalArrayIndex(index.ArrayIndex)
	return local >= 0 && local < len(s.tickArrays)
}

func (s *TickArraySequence) getLocalArrayIndex(arrayIndex int) int {
	if s.aToB {
		return s.startArrayIndex - arrayIndex
	}
	return arrayIndex - s.startArrayIndex
}

func (s *TickArraySequence) arrayContainsTick(localIndex, tick int) bool {
	ta := s.tickArrays[localIndex].Data
	if ta == nil {
		return false
	}
	start := int(ta.StartTickIndex)
	upper := start + s.tickSpacing*TickArraySize
	return tick >= start && tick <= upper
}

// GetTick returns the tick at the given index and marks its array touched.
func (s *TickArraySequence) GetTick(tick int) (*Tick, error) {
	index := TickArrayIndexFromTick(tick, s.tickSpacing)
	if !s.isValidTickArrayIndex(index) {
		return nil, fmt.Errorf("%w: tick %d outside the fetched tick arrays", pkg.ErrOutOfBounds, tick)
	}
	local := s.getLocalArrayIndex(index.ArrayIndex)
	data := s.tickArrays[local].Data
	if data == nil {
		return nil, fmt.Errorf("%w: tick array %s has no data",
			pkg.ErrAccountNotFound, s.tickArrays[local].Address)
	}
	if !s.arrayContainsTick(local, tick) {
		return nil, fmt.Errorf("%w: tick %d not covered by array starting at %d",
			pkg.ErrOutOfBounds, tick, data.StartTickIndex)
	}
	s.touchedArrays[local] = true
	return &data.Ticks[index.OffsetIndex], nil
}

// FindNextInitializedTickIndex scans from currIndex in swap direction for the
// next initialized tick. When the fetched window has no further initialized
// tick it returns the window boundary with a nil tick.
func (s *TickArraySequence) FindNextInitializedTickIndex(currIndex int) (int, *Tick, error) {
	searchIndex := currIndex
	if !s.aToB {
		searchIndex += s.tickSpacing
	}

	next := TickArrayIndexFromTick(searchIndex, s.tickSpacing)
	if !s.isValidTickArrayIndex(next) {
		return 0, nil, fmt.Errorf("%w: swap traversed beyond %d tick arrays",
			pkg.ErrOutOfBounds, len(s.tickArrays))
	}

	for s.isValidTickArrayIndex(next) {
		tick, err := s.GetTick(next.ToTickIndex())
		if err != nil {
			return 0, nil, err
		}
		if tick.Initialized {
			return next.ToTickIndex(), tick, nil
		}
		if s.aToB {
			next = next.toPrevInitializableTickIndex()
		} else {
			next = next.toNextInitializableTickIndex()
		}
	}

	// No initialized tick left in the window, stop at its boundary.
	boundary := next.ToTickIndex()
	if s.aToB {
		boundary += s.tickSpacing
	} else {
		boundary--
	}
	if boundary > MaxTickIndex {
		boundary = MaxTickIndex
	}
	if boundary < MinTickIndex {
		boundary = MinTickIndex
	}
	return boundary, nil, nil
}

// TouchedArrays returns the addresses of the arrays the traversal touched,
// padded with the last touched address up to minLen entries.
func (s *TickArraySequence) TouchedArrays(minLen int) []solana.PublicKey {
	out := make([]solana.PublicKey, 0, minLen)
	for i, touched := range s.touchedArrays {
		if touched {
			out = append(out, s.tickArrays[i].Address)
		}
	}
	if len(out) == 0 {
		return out
	}
	for len(out) < minLen {
		out = append(out, out[len(out)-1])
	}
	return out
}
