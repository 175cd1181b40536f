package rawvol

import "github.com/janelia-flyem/go/semver"

const versionString = "0.2.0"

// Version is the semantic version of rawvol, stamped into the metadata of
// serialized volumes.
var Version semver.Version

func init() {
	ver, err := semver.Make(versionString)
	if err != nil {
		Errorf("Unable to make semver for rawvol: %v\n", err)
	}
	Version = ver
}
