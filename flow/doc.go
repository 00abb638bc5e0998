// Package flow contains the onboarding flow's state orchestration.
//
// Allowed here:
// - stage, gallery, and dossier state machines and their timers
// - the media session (stream registry and looping policy)
// - collaborator contracts the flow consumes (Clock, Player, Resolver)
//
// Not allowed here:
// - rendering or terminal concerns
// - decoding or file-format knowledge beyond candidate extensions
package flow
