// Package paths implements the path service: containment checks, path
// normalization, project and asset detection, and package file naming for
// Stride game projects.
//
// Every method is total. Invalid input, missing files and filesystem faults
// produce the zero value of the result type (false, "", AssetUnknown) and are
// recorded on the service logger; nothing is returned as an error and
// nothing panics out of the service.
//
// Containment compares canonical path segments, never string prefixes, so a
// sibling such as /games/Hero2 is not inside /games/Hero:
//
//	svc := paths.New()
//	svc.IsWithin("/games/Hero/Assets/Sword.sdprefab", "/games/Hero") // true
//	svc.IsWithin("/games/Hero2/Game.sdpkg", "/games/Hero")           // false
package paths
