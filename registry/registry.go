package registry

import (
	"sort"
	"strconv"
	"strings"
)

// Flag bits carried by a LicenseID or ExceptionID.
const (
	IsFSFLibre uint8 = 1 << iota
	IsOSIApproved
	IsDeprecated
	IsCopyleft
	IsGNU
)

// GNUVariant classifies how a GNU-family identifier spells its
// "or later version" semantics. Non-GNU licenses are always VariantNone
// and instead use LicenseReq.OrLater / the trailing "+".
type GNUVariant int

const (
	// VariantNone is used for non-GNU licenses, and for the deprecated
	// bare GNU identifiers ("GPL-2.0") that predate the -only/-or-later split.
	VariantNone GNUVariant = iota
	// VariantOnly is the "-only" suffix: exactly this version.
	VariantOnly
	// VariantOrLater is the "-or-later" suffix.
	VariantOrLater
	// VariantLegacyPlus is the deprecated "GPL-2.0+" trailing-plus spelling.
	VariantLegacyPlus
)

// LicenseID is an opaque handle into the license table. Two LicenseIDs
// are equal iff they were looked up for the same short name.
type LicenseID struct {
	index int
}

// ExceptionID is an opaque handle into the exception table.
type ExceptionID struct {
	index int
}

type licenseEntry struct {
	name       string
	fullName   string
	flags      uint8
	base       string // e.g. "GPL-2.0", "Apache"; the GNULicenseID lookup key
	family     string // e.g. "GPL"; the version-less root, GNU licenses only
	version    [2]int // (major, minor); only meaningful when hasVersion
	hasVersion bool
	gnuVariant GNUVariant
}

type exceptionEntry struct {
	name  string
	flags uint8
}

// ShortName returns the canonical SPDX short identifier, e.g. "MIT".
func (id LicenseID) ShortName() string { return licenses[id.index].name }

// FullName returns the human-readable license name.
func (id LicenseID) FullName() string { return licenses[id.index].fullName }

// IsDeprecated reports whether the SPDX list marks this identifier deprecated.
func (id LicenseID) IsDeprecated() bool { return licenses[id.index].flags&IsDeprecated != 0 }

// IsOSIApproved reports whether the license is OSI approved.
func (id LicenseID) IsOSIApproved() bool { return licenses[id.index].flags&IsOSIApproved != 0 }

// IsFSFLibre reports whether the FSF considers the license free/libre.
func (id LicenseID) IsFSFLibre() bool { return licenses[id.index].flags&IsFSFLibre != 0 }

// IsCopyleft reports whether the license is copyleft.
func (id LicenseID) IsCopyleft() bool { return licenses[id.index].flags&IsCopyleft != 0 }

// IsGNU reports whether this is a member of the GPL/LGPL/AGPL/GFDL family.
func (id LicenseID) IsGNU() bool { return licenses[id.index].flags&IsGNU != 0 }

// IsNoAssertion reports whether id is the NOASSERTION sentinel: accepted
// by the parser, but never satisfied by any Licensee.
func (id LicenseID) IsNoAssertion() bool { return licenses[id.index].flags&IsSentinel != 0 }

// Base returns the exact family-and-version root, e.g. "GPL-2.0" for
// "GPL-2.0-only", "Apache" for "Apache-2.0" (non-GNU licenses have no
// separate version component in their base). Empty if this license carries
// no version semantics at all. Used as the GNULicenseID lookup key and,
// for non-GNU licenses, as the same-or-later family identity.
func (id LicenseID) Base() string { return licenses[id.index].base }

// Family returns the version-less GNU family root, e.g. "GPL" for both
// "GPL-2.0-only" and "GPL-3.0-only", so satisfaction checks can compare
// family identity independently of version. Empty for non-GNU licenses;
// use Base for those instead.
func (id LicenseID) Family() string { return licenses[id.index].family }

// Version returns the (major, minor) version embedded in the identifier,
// and false if the identifier carries no version semantics.
func (id LicenseID) Version() (major, minor int, ok bool) {
	e := licenses[id.index]
	if !e.hasVersion {
		return 0, 0, false
	}
	return e.version[0], e.version[1], true
}

// GNUVariant returns how a GNU-family identifier spells its or-later
// semantics. Always VariantNone for non-GNU licenses.
func (id LicenseID) GNUVariant() GNUVariant { return licenses[id.index].gnuVariant }

// Equal reports whether two handles name the same license.
func (id LicenseID) Equal(o LicenseID) bool { return id.index == o.index }

// Index is the position of this identifier in the sorted license table.
// Exposed for deterministic ordering (e.g. canonical sort of Licensee sets).
func (id LicenseID) Index() int { return id.index }

// IsDeprecated reports whether the SPDX list marks this exception deprecated.
func (id ExceptionID) IsDeprecated() bool { return exceptions[id.index].flags&IsDeprecated != 0 }

// ShortName returns the canonical SPDX short identifier for the exception.
func (id ExceptionID) ShortName() string { return exceptions[id.index].name }

// Equal reports whether two handles name the same exception.
func (id ExceptionID) Equal(o ExceptionID) bool { return id.index == o.index }

// Lookup is the interface the rest of the module consumes to resolve
// bare identifiers against the SPDX registry. The zero-value-friendly
// default implementation, Default, is backed by the curated table in
// this package. LicenseID and ExceptionID handles always index that
// table, so another implementation can change which names resolve to
// which entries but cannot add identifiers the table does not hold.
type Lookup interface {
	License(name string) (LicenseID, bool)
	Exception(name string) (ExceptionID, bool)
	Imprecise(name string) (canonical string, ok bool)
	GNULicenseID(base string, variant GNUVariant) (LicenseID, bool)
}

type table struct{}

// Default returns the built-in Lookup implementation, backed by the
// curated license/exception table compiled into this package.
func Default() Lookup { return table{} }

// License resolves an exact (case-sensitive) short name to a LicenseID.
func (table) License(name string) (LicenseID, bool) {
	i := sort.Search(len(licenses), func(i int) bool { return licenses[i].name >= name })
	if i < len(licenses) && licenses[i].name == name {
		return LicenseID{index: i}, true
	}
	return LicenseID{}, false
}

// Exception resolves an exact (case-sensitive) short name to an ExceptionID.
func (table) Exception(name string) (ExceptionID, bool) {
	i := sort.Search(len(exceptions), func(i int) bool { return exceptions[i].name >= name })
	if i < len(exceptions) && exceptions[i].name == name {
		return ExceptionID{index: i}, true
	}
	return ExceptionID{}, false
}

// Imprecise maps a common misspelling/alias (case-insensitive) to the
// canonical short name it stands for, e.g. "Apache 2.0" -> "Apache-2.0".
func (table) Imprecise(name string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	canonical, ok := impreciseNames[lower]
	return canonical, ok
}

// GNULicenseID looks up the LicenseID for a given GNU family root and
// variant, e.g. GNULicenseID("GPL-2.0", VariantOrLater) -> GPL-2.0-or-later.
func (table) GNULicenseID(base string, variant GNUVariant) (LicenseID, bool) {
	i, ok := gnuIndex[gnuKey{base: base, variant: variant}]
	if !ok {
		return LicenseID{}, false
	}
	return LicenseID{index: i}, true
}

type gnuKey struct {
	base    string
	variant GNUVariant
}

var gnuIndex map[gnuKey]int

func init() {
	if !sort.SliceIsSorted(licenses, func(i, j int) bool { return licenses[i].name < licenses[j].name }) {
		sort.Slice(licenses, func(i, j int) bool { return licenses[i].name < licenses[j].name })
	}
	if !sort.SliceIsSorted(exceptions, func(i, j int) bool { return exceptions[i].name < exceptions[j].name }) {
		sort.Slice(exceptions, func(i, j int) bool { return exceptions[i].name < exceptions[j].name })
	}

	gnuIndex = make(map[gnuKey]int, len(licenses))
	for i, e := range licenses {
		if e.flags&IsGNU == 0 {
			continue
		}
		gnuIndex[gnuKey{base: e.base, variant: e.gnuVariant}] = i
	}
}

// gnuFamily generates the deprecated-bare, -only, -or-later (and, for
// families that carry one, the legacy trailing-"+") identifiers for a
// single GNU license version, the way the upstream SPDX list lays them
// out. Expressing this as a small generator rather than hand-writing
// every row keeps the GNU table honest: every version of every family
// gets exactly the variants it should, and every row carries both its
// exact base (family+version, for GNULicenseID lookups) and its bare
// family root (for cross-version satisfaction comparisons).
func gnuFamily(root, fullNamePrefix, version string, legacyPlus bool, extraFlags uint8) []licenseEntry {
	major, minor := splitVersion(version)
	base := root + "-" + version
	deprecatedFlags := IsDeprecated | IsGNU | extraFlags
	currentFlags := IsGNU | extraFlags

	entries := []licenseEntry{
		{
			name:     base,
			fullName: fullNamePrefix + " v" + version + " only",
			flags:    deprecatedFlags,
			base:     base, family: root, version: [2]int{major, minor}, hasVersion: true,
			gnuVariant: VariantNone,
		},
		{
			name:     base + "-only",
			fullName: fullNamePrefix + " v" + version + " only",
			flags:    currentFlags,
			base:     base, family: root, version: [2]int{major, minor}, hasVersion: true,
			gnuVariant: VariantOnly,
		},
		{
			name:     base + "-or-later",
			fullName: fullNamePrefix + " v" + version + " or later",
			flags:    currentFlags,
			base:     base, family: root, version: [2]int{major, minor}, hasVersion: true,
			gnuVariant: VariantOrLater,
		},
	}

	if legacyPlus {
		entries = append(entries, licenseEntry{
			name:     base + "+",
			fullName: fullNamePrefix + " v" + version + " or later",
			flags:    deprecatedFlags,
			base:     base, family: root, version: [2]int{major, minor}, hasVersion: true,
			gnuVariant: VariantLegacyPlus,
		})
	}

	return entries
}

func splitVersion(version string) (major, minor int) {
	parts := strings.SplitN(version, ".", 2)
	major, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}
