package lyonkit

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is the current SDK version.
//
// This version follows semantic versioning (https://semver.org/).
const Version = "0.1.0"

// APIVersion is the Lyonkit API version this SDK was built for.
const APIVersion = "0.1.0"

// APIVersionRange is the semver constraint of server versions this SDK
// is known to work with.
const APIVersionRange = ">=0.1.0-0, <0.2.0-0"

var targetVersion = semver.MustParse(APIVersion)

// CompatibilityStatus is the outcome of a version check.
type CompatibilityStatus int

const (
	// Unknown means the server version could not be parsed.
	Unknown CompatibilityStatus = iota
	// Compatible means the server version is within APIVersionRange.
	Compatible
	// Incompatible means the server version is outside APIVersionRange.
	Incompatible
)

func (s CompatibilityStatus) String() string {
	switch s {
	case Compatible:
		return "compatible"
	case Incompatible:
		return "incompatible"
	default:
		return "unknown"
	}
}

// CompatibilityResult describes how a server version relates to this SDK.
type CompatibilityResult struct {
	Status           CompatibilityStatus
	ServerVersion    string
	SDKVersion       string
	TargetAPIVersion string
	SupportedRange   string
	Message          string
}

// IsCompatible returns true if Status is Compatible.
func (r CompatibilityResult) IsCompatible() bool {
	return r.Status == Compatible
}

// CheckCompatibility checks serverVersion against APIVersionRange.
//
// The Lyonkit API does not report its own version (Ping only returns a
// greeting), so serverVersion comes from the deployment: the release tag
// of the server image or binary, usually passed in through configuration.
func CheckCompatibility(serverVersion string) CompatibilityResult {
	result := CompatibilityResult{
		ServerVersion:    serverVersion,
		SDKVersion:       Version,
		TargetAPIVersion: APIVersion,
		SupportedRange:   APIVersionRange,
	}

	v, err := semver.NewVersion(serverVersion)
	if err != nil {
		result.Status = Unknown
		result.Message = fmt.Sprintf("cannot parse server version %q: %v", serverVersion, err)
		return result
	}

	constraint, err := semver.NewConstraint(APIVersionRange)
	if err != nil {
		result.Status = Unknown
		result.Message = fmt.Sprintf("invalid supported range %q: %v", APIVersionRange, err)
		return result
	}

	if constraint.Check(v) {
		result.Status = Compatible
		result.Message = fmt.Sprintf("server version %s is compatible with SDK %s", v, Version)
		return result
	}

	result.Status = Incompatible
	if v.LessThan(targetVersion) {
		result.Message = fmt.Sprintf("server version %s is not compatible: older than %s", v, APIVersion)
	} else {
		result.Message = fmt.Sprintf("server version %s is not compatible: outside %s", v, APIVersionRange)
	}
	return result
}

// IsCompatible reports whether serverVersion is within APIVersionRange.
func IsCompatible(serverVersion string) bool {
	return CheckCompatibility(serverVersion).IsCompatible()
}

// MustBeCompatible panics if serverVersion is not compatible.
func MustBeCompatible(serverVersion string) {
	if r := CheckCompatibility(serverVersion); !r.IsCompatible() {
		panic("lyonkit: " + r.Message)
	}
}
