//go:build !windows

package platform

// Native returns the platform of the build target.
func Native() Platform {
	return NewPosix()
}
