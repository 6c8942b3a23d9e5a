package registry

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/glenum/errors"
)

// Family is a target API family.
type Family string

const (
	FamilyGL    Family = "gl"    // desktop OpenGL
	FamilyGLES  Family = "gles"  // OpenGL ES 1.x and 2.0+
	FamilyGLSC2 Family = "glsc2" // OpenGL SC 2.0
)

// Families lists every supported family in display order.
var Families = []Family{FamilyGL, FamilyGLES, FamilyGLSC2}

// apiFamilies maps registry api attribute tokens to families.
// Tokens not listed here never match any configured family.
var apiFamilies = map[string]Family{
	"gl":    FamilyGL,
	"gles1": FamilyGLES,
	"gles2": FamilyGLES,
	"glsc2": FamilyGLSC2,
}

// FamilyForAPI resolves a registry api token to its family.
func FamilyForAPI(token string) (Family, bool) {
	f, ok := apiFamilies[token]
	return f, ok
}

// ParseFamily accepts a family name or any registry api token.
func ParseFamily(s string) (Family, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range Families {
		if string(f) == s {
			return f, nil
		}
	}
	if f, ok := apiFamilies[s]; ok {
		return f, nil
	}
	return "", errors.WrapInvalidConfig("unknown API family %q (supported: gl, gles, glsc2)", s)
}

// Profile is the target context profile.
type Profile string

const (
	ProfileCore          Profile = "core"
	ProfileCompatibility Profile = "compatibility"
)

// ParseProfile accepts "core", "compatibility" or the short "compat".
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "core", "":
		return ProfileCore, nil
	case "compatibility", "compat":
		return ProfileCompatibility, nil
	default:
		return "", errors.WrapInvalidConfig("unknown profile %q (supported: core, compatibility)", s)
	}
}

// EntryPolicy decides what happens when a single enum entry is invalid.
type EntryPolicy string

const (
	// PolicyAbort fails the build on the first invalid entry.
	PolicyAbort EntryPolicy = "abort"
	// PolicySkip drops the invalid entry, logs a warning and continues.
	PolicySkip EntryPolicy = "skip"
)

// ParseEntryPolicy accepts "abort" or "skip".
func ParseEntryPolicy(s string) (EntryPolicy, error) {
	switch EntryPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicyAbort, "":
		return PolicyAbort, nil
	case PolicySkip:
		return PolicySkip, nil
	default:
		return "", errors.WrapInvalidConfig("unknown entry policy %q (supported: abort, skip)", s)
	}
}

// Options is the immutable build configuration handed to Walk.
//
// Version and Profile are recorded on the resulting Spec but do not gate
// which enumerants are included; only the API family does.
type Options struct {
	API         Family
	Version     *semver.Version
	Profile     Profile
	EntryPolicy EntryPolicy
}

// NewOptions validates raw option strings and builds Options.
func NewOptions(api, version, profile, policy string) (Options, error) {
	family, err := ParseFamily(api)
	if err != nil {
		return Options{}, err
	}
	v, err := semver.NewVersion(strings.TrimSpace(version))
	if err != nil {
		return Options{}, errors.WithHint(
			errors.WrapInvalidConfig("invalid API version %q: %v", version, err),
			"use a dotted version such as 4.6 or 3.2")
	}
	p, err := ParseProfile(profile)
	if err != nil {
		return Options{}, err
	}
	pol, err := ParseEntryPolicy(policy)
	if err != nil {
		return Options{}, err
	}
	return Options{API: family, Version: v, Profile: p, EntryPolicy: pol}, nil
}

// Accepts reports whether an entry with the given api attribute applies to
// the configured family. An absent or empty attribute applies everywhere.
func (o Options) Accepts(api string, present bool) bool {
	if !present || api == "" {
		return true
	}
	f, ok := FamilyForAPI(api)
	return ok && f == o.API
}

// VersionString returns "major.minor" for the configured version, or "" if unset.
func (o Options) VersionString() string {
	if o.Version == nil {
		return ""
	}
	return semverShort(o.Version)
}

func semverShort(v *semver.Version) string {
	if v.Patch() != 0 {
		return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}
