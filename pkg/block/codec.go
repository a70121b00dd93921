package block

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// codecVersion is bumped whenever the encoded layout changes so stale cache
// entries decode as errors instead of garbage.
const codecVersion = 1

type envelope struct {
	Version int   `msgpack:"v"`
	Block   Block `msgpack:"b"`
}

// Encode serializes b for persistent storage.
func Encode(b Block) ([]byte, error) {
	data, err := msgpack.Marshal(envelope{Version: codecVersion, Block: b})
	if err != nil {
		return nil, fmt.Errorf("encode block: %w", err)
	}
	return data, nil
}

// Decode restores a Block produced by Encode.
// The declared size must match the lines or the data is rejected.
func Decode(data []byte) (Block, error) {
	var env envelope
	if err := msgpack.Unmarshal(data, &env); err != nil {
		return Block{}, fmt.Errorf("decode block: %w", err)
	}
	if env.Version != codecVersion {
		return Block{}, fmt.Errorf("decode block: unsupported version %d", env.Version)
	}
	if env.Block.Height != len(env.Block.Lines) {
		return Block{}, fmt.Errorf("decode block: height %d does not match %d lines", env.Block.Height, len(env.Block.Lines))
	}
	return env.Block, nil
}
