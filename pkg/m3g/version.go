package m3g

import (
	"fmt"

	"github.com/mobigfx/m3gexport/pkg/scene"
)

// Version is the format version written into the file header.
type Version struct {
	Major uint8
	Minor uint8
}

// Format versions. The zero value selects the lowest version the scene
// content allows.
var (
	VersionAuto = Version{}
	Version10   = Version{1, 0}
	Version11   = Version{1, 1}
)

// String returns the version as "Major.Minor".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// AtLeast returns true if version is >= major.minor.
func (v Version) AtLeast(major, minor uint8) bool {
	if v.Major > major {
		return true
	}
	return v.Major == major && v.Minor >= minor
}

// selectVersion resolves the requested version against the registered
// scene content. Fog is the one object kind requiring 1.1; a pinned 1.0
// with fog present fails before any output is produced.
func selectVersion(requested Version, objects []scene.Object) (Version, error) {
	required := Version10
	for _, obj := range objects {
		if _, ok := obj.(*scene.Fog); ok {
			required = Version11
			break
		}
	}
	if requested == VersionAuto {
		return required, nil
	}
	if !requested.AtLeast(required.Major, required.Minor) {
		return Version{}, fmt.Errorf("%w: fog requires %s, pinned %s",
			ErrIncompatibleFeature, required, requested)
	}
	return requested, nil
}
