// Package pipeline runs the generate and validate flows over a loaded config
// and watches the docs tree for regeneration.
//
// Generation collects each docs directory once, renders every enabled
// profile, removes stale outputs and writes the new files. A failing profile
// records its error on its own Result and does not stop the others.
package pipeline
