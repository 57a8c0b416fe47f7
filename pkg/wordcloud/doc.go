// Package wordcloud defines the core data model and the pure word
// preparation steps of the layout pipeline.
//
// This package is deliberately side-effect free: it ranks and truncates
// the input word list, maps word weights to font sizes, assigns rotation
// angles, and combines the three into layout-ready word records. The
// iterative packing loop that consumes these records lives in pkg/layout;
// the collision-avoidance placement itself lives in pkg/engine.
//
// # Pipeline
//
// The preparation steps run in dependency order:
//
//  1. SelectWords: rank by weight and truncate to the configured maximum
//  2. FontScale: build a value → font-size mapping for the selection
//  3. Format: attach size, rotation, and font styling to each word
//
// All randomness is drawn from an explicitly passed *rand.Rand so that
// deterministic mode (fixed seed) reproduces identical rotation and size
// assignments across runs.
//
// # Usage
//
//	opts := wordcloud.Options{Deterministic: true}.Merged()
//	rng := wordcloud.NewRand(opts)
//	selected := wordcloud.SelectWords(words, wordcloud.DefaultMaxWords)
//	formatted := wordcloud.Format(selected, opts, rng)
package wordcloud
