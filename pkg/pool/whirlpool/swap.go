package whirlpool

import (
	"fmt"

	cosmath "cosmossdk.io/math"
	"github.com/gagliardetto/solana-go"

	pkg "github.com/dexcore-labs/solswap/pkg"
)

// SwapParams describes one simulated swap against a whirlpool.
type SwapParams struct {
	Amount                 cosmath.Int
	SqrtPriceLimit         cosmath.Int
	OtherAmountThreshold   cosmath.Int
	AmountSpecifiedIsInput bool
	AToB                   bool
}

// SwapQuote is the outcome of a simulated swap, including the tick arrays the
// on-chain program will need to traverse.
type SwapQuote struct {
	EstimatedAmountIn  cosmath.Int
	EstimatedAmountOut cosmath.Int
	EndSqrtPrice       cosmath.Int
	EndTickIndex       int
	EndLiquidity       cosmath.Int
	TotalFee           cosmath.Int
	ProtocolFee        cosmath.Int
	TickArrays         []solana.PublicKey
}

type swapStep struct {
	amountIn      cosmath.Int
	amountOut     cosmath.Int
	nextSqrtPrice cosmath.Int
	feeAmount     cosmath.Int
}

func getAmountFixedDelta(currSqrtPrice, targetSqrtPrice, liquidity cosmath.Int, amountSpecifiedIsInput, aToB bool) cosmath.Int {
	if aToB == amountSpecifiedIsInput {
		return GetAmountDeltaA(currSqrtPrice, targetSqrtPrice, liquidity, amountSpecifiedIsInput)
	}
	return GetAmountDeltaB(currSqrtPrice, targetSqrtPrice, liquidity, amountSpecifiedIsInput)
}

func getAmountUnfixedDelta(currSqrtPrice, targetSqrtPrice, liquidity cosmath.Int, amountSpecifiedIsInput, aToB bool) cosmath.Int {
	if aToB == amountSpecifiedIsInput {
		return GetAmountDeltaB(currSqrtPrice, targetSqrtPrice, liquidity, !amountSpecifiedIsInput)
	}
	return GetAmountDeltaA(currSqrtPrice, targetSqrtPrice, liquidity, !amountSpecifiedIsInput)
}

// computeSwapStep advances the price toward targetSqrtPrice within a single
// liquidity region, consuming at most amountRemaining.
func computeSwapStep(amountRemaining, feeRate, currLiquidity, currSqrtPrice, targetSqrtPrice cosmath.Int, amountSpecifiedIsInput, aToB bool) swapStep {
	amountFixedDelta := getAmountFixedDelta(currSqrtPrice, targetSqrtPrice, currLiquidity, amountSpecifiedIsInput, aToB)

	amountCalc := amountRemaining
	if amountSpecifiedIsInput {
		amountCalc = amountRemaining.Mul(FeeRateMulValue.Sub(feeRate)).Quo(FeeRateMulValue)
	}

	var nextSqrtPrice cosmath.Int
	if amountCalc.GTE(amountFixedDelta) {
		nextSqrtPrice = targetSqrtPrice
	} else {
		nextSqrtPrice = GetNextSqrtPrice(currSqrtPrice, currLiquidity, amountCalc, amountSpecifiedIsInput, aToB)
	}
	isMaxSwap := nextSqrtPrice.Equal(targetSqrtPrice)

	amountUnfixedDelta := getAmountUnfixedDelta(currSqrtPrice, nextSqrtPrice, currLiquidity, amountSpecifiedIsInput, aToB)
	if !isMaxSwap {
		amountFixedDelta = getAmountFixedDelta(currSqrtPrice, nextSqrtPrice, currLiquidity, amountSpecifiedIsInput, aToB)
	}

	amountIn, amountOut := amountFixedDelta, amountUnfixedDelta
	if !amountSpecifiedIsInput {
		amountIn, amountOut = amountUnfixedDelta, amountFixedDelta
	}
	if !amountSpecifiedIsInput && amountOut.GT(amountRemaining) {
		amountOut = amountRemaining
	}

	var feeAmount cosmath.Int
	if amountSpecifiedIsInput && !isMaxSwap {
		feeAmount = amountRemaining.Sub(amountIn)
	} else {
		feeAmount = amountIn.Mul(feeRate).Quo(FeeRateMulValue.Sub(feeRate)).AddRaw(1)
	}

	return swapStep{
		amountIn:      amountIn,
		amountOut:     amountOut,
		nextSqrtPrice: nextSqrtPrice,
		feeAmount:     feeAmount,
	}
}

// ComputeSwap runs the tick-crossing swap loop over the fetched tick arrays.
func ComputeSwap(pool *WhirlpoolState, seq *TickArraySequence, amount, sqrtPriceLimit cosmath.Int, amountSpecifiedIsInput, aToB bool) (*SwapQuote, error) {
	feeRate := cosmath.NewInt(int64(pool.FeeRate))
	protocolFeeRate := cosmath.NewInt(int64(pool.ProtocolFeeRate))

	remaining := amount
	calculated := cosmath.ZeroInt()
	currLiquidity := cosmath.NewIntFromBigInt(pool.Liquidity.Big())
	currSqrtPrice := cosmath.NewIntFromBigInt(pool.SqrtPrice.Big())
	currTickIndex := int(pool.TickCurrentIndex)
	totalFee := cosmath.ZeroInt()
	protocolFee := cosmath.ZeroInt()

	for remaining.IsPositive() && !sqrtPriceLimit.Equal(currSqrtPrice) {
		nextTickIndex, nextTick, err := seq.FindNextInitializedTickIndex(currTickIndex)
		if err != nil {
			return nil, err
		}
		nextTickPrice, err := SqrtPriceFromTickIndex(nextTickIndex)
		if err != nil {
			return nil, err
		}

		targetSqrtPrice := nextTickPrice
		if aToB {
			if sqrtPriceLimit.GT(targetSqrtPrice) {
				targetSqrtPrice = sqrtPriceLimit
			}
		} else {
			if sqrtPriceLimit.LT(targetSqrtPrice) {
				targetSqrtPrice = sqrtPriceLimit
			}
		}

		step := computeSwapStep(remaining, feeRate, currLiquidity, currSqrtPrice, targetSqrtPrice, amountSpecifiedIsInput, aToB)

		if protocolFeeRate.IsPositive() && step.feeAmount.IsPositive() {
			delta := step.feeAmount.Mul(protocolFeeRate).Quo(ProtocolFeeRateMulValue)
			protocolFee = protocolFee.Add(delta)
		}
		totalFee = totalFee.Add(step.feeAmount)

		if amountSpecifiedIsInput {
			remaining = remaining.Sub(step.amountIn).Sub(step.feeAmount)
			calculated = calculated.Add(step.amountOut)
		} else {
			remaining = remaining.Sub(step.amountOut)
			calculated = calculated.Add(step.amountIn).Add(step.feeAmount)
		}

		if step.nextSqrtPrice.Equal(nextTickPrice) {
			if nextTick != nil {
				if aToB {
					currLiquidity = currLiquidity.Sub(nextTick.LiquidityNet)
				} else {
					currLiquidity = currLiquidity.Add(nextTick.LiquidityNet)
				}
			}
			if aToB {
				currTickIndex = nextTickIndex - 1
			} else {
				currTickIndex = nextTickIndex
			}
		} else {
			currTickIndex = TickIndexFromSqrtPrice(step.nextSqrtPrice)
		}
		currSqrtPrice = step.nextSqrtPrice
	}

	estTokenA, estTokenB := calculated, amount.Sub(remaining)
	if aToB == amountSpecifiedIsInput {
		estTokenA, estTokenB = amount.Sub(remaining), calculated
	}

	quote := &SwapQuote{
		EstimatedAmountIn:  estTokenB,
		EstimatedAmountOut: estTokenA,
		EndSqrtPrice:       currSqrtPrice,
		EndTickIndex:       currTickIndex,
		EndLiquidity:       currLiquidity,
		TotalFee:           totalFee,
		ProtocolFee:        protocolFee,
	}
	if aToB {
		quote.EstimatedAmountIn = estTokenA
		quote.EstimatedAmountOut = estTokenB
	}
	return quote, nil
}

// SimulateSwap validates the swap parameters, runs the swap loop, checks the
// threshold against the estimate and reports the touched tick arrays.
func SimulateSwap(pool *WhirlpoolState, seq *TickArraySequence, params SwapParams) (*SwapQuote, error) {
	limit := params.SqrtPriceLimit
	if limit.LT(MinSqrtPriceX64) || limit.GT(MaxSqrtPriceX64) {
		return nil, fmt.Errorf("%w: sqrt price limit %s", pkg.ErrOutOfBounds, limit)
	}

	currSqrtPrice := cosmath.NewIntFromBigInt(pool.SqrtPrice.Big())
	if params.AToB && limit.GT(currSqrtPrice) {
		return nil, fmt.Errorf("%w: sqrt price limit above current price on an a-to-b swap", pkg.ErrOutOfBounds)
	}
	if !params.AToB && limit.LT(currSqrtPrice) {
		return nil, fmt.Errorf("%w: sqrt price limit below current price on a b-to-a swap", pkg.ErrOutOfBounds)
	}

	if params.Amount.IsNil() || !params.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: swap amount must be positive", pkg.ErrZeroAmount)
	}

	quote, err := ComputeSwap(pool, seq, params.Amount, limit, params.AmountSpecifiedIsInput, params.AToB)
	if err != nil {
		return nil, err
	}

	if params.AmountSpecifiedIsInput {
		if quote.EstimatedAmountOut.LT(params.OtherAmountThreshold) {
			return nil, fmt.Errorf("%w: estimated out %s below threshold %s",
				pkg.ErrSlippageViolation, quote.EstimatedAmountOut, params.OtherAmountThreshold)
		}
	} else {
		if quote.EstimatedAmountIn.GT(params.OtherAmountThreshold) {
			return nil, fmt.Errorf("%w: estimated in %s above threshold %s",
				pkg.ErrSlippageViolation, quote.EstimatedAmountIn, params.OtherAmountThreshold)
		}
	}

	quote.TickArrays = seq.TouchedArrays(MaxSwapTickArrays)
	return quote, nil
}
