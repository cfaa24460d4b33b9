// Package preview renders poster previews for a media folder.
//
// A source image is scaled to a fixed width, centred on a dark canvas and
// saved once per video. Series copies are stamped with their episode number.
// File removal is left to the caller so it can apply busy-file retries.
package preview
