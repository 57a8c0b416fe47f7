// Package layout drives the iterative placement process: it feeds sized
// and rotated words to a layout engine, shrinks the font-size bounds when
// not everything fits, and retries until the attempt budget runs out.
//
// Two pieces make up the package:
//
//   - Controller owns one retry chain. It holds the active engine handle,
//     stops it before every new attempt, and accepts the best result after
//     at most MaxAttempts engine invocations. Running out of attempts is
//     not an error: the partial placement is accepted and a single warning
//     is logged.
//
//   - Scheduler wraps the whole pipeline (selection → formatting → retry
//     loop → completion handoff) in a debounced, cancellable unit. Rapid
//     input changes within the debounce window coalesce into one run using
//     the latest inputs; Cancel synchronously guarantees that a superseded
//     run produces no further side effects.
package layout
