package sat

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/satgraph/errors"
)

// ACISVersion is the kernel release that wrote the file, e.g. 33.0.1.
type ACISVersion struct {
	Major uint64 `json:"major"`
	Minor uint64 `json:"minor"`
	Point uint64 `json:"point"`
}

// ParseACISVersion reads a dotted kernel version. Short forms such as "7.0"
// are accepted. Anything semver cannot coerce yields nil.
func ParseACISVersion(s string) *ACISVersion {
	v, err := semver.NewVersion(s)
	if err != nil {
		return nil
	}
	return &ACISVersion{Major: v.Major(), Minor: v.Minor(), Point: v.Patch()}
}

func (v ACISVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Point)
}

// AtLeast reports whether v is the same as or newer than major.minor.
func (v ACISVersion) AtLeast(major, minor uint64) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

// Satisfies checks v against a constraint such as ">= 20" or "7.x".
func (v ACISVersion) Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, errors.Wrapf(errors.ErrInvalidRequest, "ACIS version constraint %q: %v", constraint, err)
	}
	return c.Check(semver.New(v.Major, v.Minor, v.Point, "", "")), nil
}
