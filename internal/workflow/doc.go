// Package workflow orchestrates article production runs using Temporal
// workflows. A run fans out one child workflow per configured style; each
// child drives a single variant through generation, judgment, and the bounded
// revision pass. All workflow code is deterministic: external calls happen in
// activities, revision decisions come from a pure policy, and identifiers are
// derived from workflow inputs.
//
// Control flow per variant:
//
//	generate (round 1) -> judge (round 1) -> decide
//	    decide: pass            -> reviewed
//	    decide: revise/review   -> revise (round 2) -> re-judge -> reviewed
//
// A variant that fails any step terminates with a failure marker instead of
// failing the run; the parent collects one result per style in request order
// regardless of individual outcomes.
package workflow
