package core

import (
	"context"
	"time"
)

// BlockchainMode selects whether block helpers track the irreversible or the
// latest head of the chain.
type BlockchainMode int

const (
	ModeIrreversible BlockchainMode = iota
	ModeLatest
)

// blockPollInterval is the chain's block cadence.
const blockPollInterval = 3 * time.Second

// StreamOptions bound a block or operation stream. A nil From starts at the
// current block; a nil To streams forever.
type StreamOptions struct {
	From *uint32
	To   *uint32
	Mode BlockchainMode
}

// Blockchain offers head-tracking helpers and polling streams over
// condenser_api block lookups.
type Blockchain struct {
	client *Client
}

// GetCurrentBlockNum returns the current block number under the given mode.
func (b *Blockchain) GetCurrentBlockNum(ctx context.Context, mode BlockchainMode) (uint32, error) {
	var props DynamicGlobalProperties
	if err := b.client.callInto(ctx, "condenser_api", "get_dynamic_global_properties", []any{}, &props); err != nil {
		return 0, err
	}
	if mode == ModeLatest {
		return props.HeadBlockNumber, nil
	}
	return props.LastIrreversibleBlockNum, nil
}

// GetCurrentBlockHeader fetches the header at the current block.
func (b *Blockchain) GetCurrentBlockHeader(ctx context.Context, mode BlockchainMode) (*BlockHeader, error) {
	blockNum, err := b.GetCurrentBlockNum(ctx, mode)
	if err != nil {
		return nil, err
	}
	header, err := b.client.Database.GetBlockHeader(ctx, blockNum)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, serializationErrorf("block header %d not returned by node", blockNum)
	}
	return header, nil
}

// GetCurrentBlock fetches the full block at the current height.
func (b *Blockchain) GetCurrentBlock(ctx context.Context, mode BlockchainMode) (*SignedBlock, error) {
	blockNum, err := b.GetCurrentBlockNum(ctx, mode)
	if err != nil {
		return nil, err
	}
	block, err := b.client.Database.GetBlock(ctx, blockNum)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, serializationErrorf("block %d not returned by node", blockNum)
	}
	return block, nil
}

// BlockNumbers streams consecutive block numbers on the value channel,
// polling the head every three seconds. The error channel receives at most
// one error; both channels close when the stream ends or ctx is cancelled.
func (b *Blockchain) BlockNumbers(ctx context.Context, options StreamOptions) (<-chan uint32, <-chan error) {
	numbers := make(chan uint32)
	errs := make(chan error, 1)

	go func() {
		defer close(numbers)
		defer close(errs)

		current, err := b.GetCurrentBlockNum(ctx, options.Mode)
		if err != nil {
			errs <- err
			return
		}

		seen := current
		if options.From != nil {
			if *options.From > current {
				errs <- serializationErrorf("from cannot be larger than current block num (%d)", current)
				return
			}
			seen = *options.From
		}

		for {
			for current > seen {
				next := seen
				seen++
				select {
				case numbers <- next:
				case <-ctx.Done():
					return
				}
				if options.To != nil && seen > *options.To {
					return
				}
			}

			if err := sleepContext(ctx, blockPollInterval); err != nil {
				return
			}
			current, err = b.GetCurrentBlockNum(ctx, options.Mode)
			if err != nil {
				errs <- err
				return
			}
		}
	}()

	return numbers, errs
}

// Blocks streams full blocks for the configured range.
func (b *Blockchain) Blocks(ctx context.Context, options StreamOptions) (<-chan *SignedBlock, <-chan error) {
	blocks := make(chan *SignedBlock)
	errs := make(chan error, 1)

	go func() {
		defer close(blocks)
		defer close(errs)

		numbers, numberErrs := b.BlockNumbers(ctx, options)
		for number := range numbers {
			block, err := b.client.Database.GetBlock(ctx, number)
			if err != nil {
				errs <- err
				return
			}
			if block == nil {
				continue
			}
			select {
			case blocks <- block:
			case <-ctx.Done():
				return
			}
		}
		if err := <-numberErrs; err != nil {
			errs <- err
		}
	}()

	return blocks, errs
}

// Operations streams the applied operations of every block in the range.
func (b *Blockchain) Operations(ctx context.Context, options StreamOptions) (<-chan AppliedOperation, <-chan error) {
	operations := make(chan AppliedOperation)
	errs := make(chan error, 1)

	go func() {
		defer close(operations)
		defer close(errs)

		numbers, numberErrs := b.BlockNumbers(ctx, options)
		for number := range numbers {
			applied, err := b.client.Database.GetOpsInBlock(ctx, number, false)
			if err != nil {
				errs <- err
				return
			}
			for _, op := range applied {
				select {
				case operations <- op:
				case <-ctx.Done():
					return
				}
			}
		}
		if err := <-numberErrs; err != nil {
			errs <- err
		}
	}()

	return operations, errs
}
