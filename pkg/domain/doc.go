// Package domain holds the value objects for an exploration, its states, and
// their constituents.
//
// An exploration is a branching, parameterized interactive activity graph:
// named states connected by answer-driven transitions. Domain objects capture
// domain-specific logic and are agnostic of how they are stored; everything in
// this package is independent of any specific persistence model.
//
// External capabilities (interaction/gadget/trigger type registries, the HTML
// sanitizer) are injected through the Capabilities bundle rather than looked
// up globally, so the model is independently testable with fake registries.
package domain
