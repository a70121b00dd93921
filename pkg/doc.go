// Package pkg provides the core libraries for leftysay terminal greetings.
//
// # Overview
//
// leftysay prints a speech bubble next to an image rendered for the current
// terminal. The pkg directory is organized into three areas:
//
//  1. Core - capability resolution ([term]), bubble layout ([bubble]),
//     image rendering ([chafa]), composition ([compose]) and orchestration
//     ([pipeline])
//  2. Infrastructure - the render cache ([cache]), line blocks and their
//     codec ([block]), structured errors ([errors]) and instrumentation
//     hooks ([observability])
//  3. Collaborators - configuration ([config]), directories ([paths]),
//     image packs ([pack]) and build metadata ([buildinfo])
//
// # Architecture
//
// The data flow of one greeting:
//
//	config.toml + flags + pack
//	         ↓
//	    [pipeline.Request]
//	         ↓
//	    [term] (resolve format, colors, size)
//	         ↓
//	    [bubble] ∥ [cache] → [chafa]
//	         ↓
//	    [compose] (vertical or side by side)
//	         ↓
//	    lines on stdout
//
// # Quick Start
//
//	renderCache := cache.NewRenderCache(store, true, logger)
//	runner := pipeline.NewRunner(chafa.New(chafa.Options{}), renderCache, nil, logger)
//	result, err := runner.Execute(ctx, term.Probe(os.Stdout), pipeline.Request{
//	    Message:       "Hello from leftysay!",
//	    ImagePath:     "wave.png",
//	    BubbleEnabled: true,
//	})
//
// The leftysay command in cmd/leftysay wires these packages together.
package pkg
