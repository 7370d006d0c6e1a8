package version

// This is updated when we cut a release.
const v = "0.4.0"

// This is injected with the correct value when building a release.
var h = "devbuild"

// Version returns the current version of cheers.
func Version() string {
	return v + "+" + h
}
