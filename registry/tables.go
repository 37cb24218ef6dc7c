package registry

// IsSentinel marks the NOASSERTION license identifier: accepted by the
// parser, but never satisfied by any Licensee (spec.md §3, §9).
const IsSentinel uint8 = 1 << 5

// licenses is the curated license table, built once at package init from
// the literal entries below plus the generated GNU-family rows. It is
// kept sorted by name for binary search (registry.table.License).
//
// This is a representative subset of the upstream SPDX license-list data
// (https://github.com/spdx/license-list-data), not a full mirror: large
// enough to exercise every lexer/parser/satisfaction rule this module
// implements, not the several-hundred-entry upstream list. Regenerating
// the full list is the job of a separate updater tool, out of scope here.
var licenses = buildLicenses()

func buildLicenses() []licenseEntry {
	var entries []licenseEntry

	// --- Non-GNU licenses with no version semantics ------------------------
	plain := []licenseEntry{
		{name: "0BSD", fullName: "BSD Zero Clause License", flags: IsOSIApproved},
		{name: "MIT", fullName: "MIT License", flags: IsOSIApproved | IsFSFLibre},
		{name: "ISC", fullName: "ISC License", flags: IsOSIApproved | IsFSFLibre},
		{name: "Zlib", fullName: "zlib License", flags: IsOSIApproved | IsFSFLibre},
		{name: "Unlicense", fullName: "The Unlicense", flags: IsOSIApproved | IsFSFLibre},
		{name: "CC0-1.0", fullName: "Creative Commons Zero v1.0 Universal", flags: IsFSFLibre},
		{name: "BSD-2-Clause", fullName: "BSD 2-Clause \"Simplified\" License", flags: IsOSIApproved | IsFSFLibre},
		{name: "BSD-3-Clause", fullName: "BSD 3-Clause \"New\" or \"Revised\" License", flags: IsOSIApproved | IsFSFLibre},
		{name: "BSD-3-Clause-Clear", fullName: "BSD 3-Clause Clear License", flags: IsFSFLibre},
		{name: "BSL-1.0", fullName: "Boost Software License 1.0", flags: IsOSIApproved | IsFSFLibre},
		{name: "WTFPL", fullName: "Do What The F*ck You Want To Public License", flags: IsFSFLibre},
		{name: "X11", fullName: "X11 License", flags: IsFSFLibre},
		{name: "wxWindows", fullName: "wxWindows Library License", flags: IsDeprecated | IsFSFLibre},
		{name: "Unicode-DFS-2016", fullName: "Unicode License Agreement - Data Files and Software (2016)", flags: 0},
	}
	entries = append(entries, plain...)

	// --- Non-GNU license families with version semantics --------------------
	versioned := func(base, fullName string, major, minor int, flags uint8) licenseEntry {
		return licenseEntry{
			name:     base + "-" + verString(major, minor),
			fullName: fullName,
			flags:    flags,
			base:     base,
			version:  [2]int{major, minor},
			hasVersion: true,
		}
	}
	entries = append(entries,
		versioned("Apache", "Apache License 1.0", 1, 0, IsFSFLibre),
		versioned("Apache", "Apache License 1.1", 1, 1, IsOSIApproved|IsFSFLibre),
		versioned("Apache", "Apache License 2.0", 2, 0, IsOSIApproved|IsFSFLibre),
		versioned("MPL", "Mozilla Public License 1.0", 1, 0, IsOSIApproved),
		versioned("MPL", "Mozilla Public License 1.1", 1, 1, IsOSIApproved|IsFSFLibre),
		versioned("MPL", "Mozilla Public License 2.0", 2, 0, IsOSIApproved|IsFSFLibre),
		versioned("OFL", "SIL Open Font License 1.0", 1, 0, 0),
		versioned("OFL", "SIL Open Font License 1.1", 1, 1, IsOSIApproved|IsFSFLibre),
		versioned("BitTorrent", "BitTorrent Open Source License v1.0", 1, 0, 0),
		versioned("BitTorrent", "BitTorrent Open Source License v1.1", 1, 1, 0),
		versioned("PHP", "PHP License v3.0", 3, 0, IsOSIApproved),
		versioned("PHP", "PHP License v3.01", 3, 1, IsOSIApproved|IsFSFLibre),
	)

	// --- GNU families, generated --------------------------------------------
	entries = append(entries, gnuFamily("AGPL", "Affero General Public License", "1.0", false, IsCopyleft|IsFSFLibre)...)
	entries = append(entries, gnuFamily("AGPL", "GNU Affero General Public License", "3.0", false, IsCopyleft|IsFSFLibre|IsOSIApproved)...)

	entries = append(entries, gnuFamily("GPL", "GNU General Public License", "1.0", true, IsCopyleft)...)
	entries = append(entries, gnuFamily("GPL", "GNU General Public License", "2.0", true, IsCopyleft|IsFSFLibre|IsOSIApproved)...)
	entries = append(entries, gnuFamily("GPL", "GNU General Public License", "3.0", true, IsCopyleft|IsFSFLibre|IsOSIApproved)...)

	entries = append(entries, gnuFamily("LGPL", "GNU Library General Public License", "2.0", true, IsCopyleft|IsOSIApproved)...)
	entries = append(entries, gnuFamily("LGPL", "GNU Lesser General Public License", "2.1", true, IsCopyleft|IsFSFLibre|IsOSIApproved)...)
	entries = append(entries, gnuFamily("LGPL", "GNU Lesser General Public License", "3.0", true, IsCopyleft|IsFSFLibre|IsOSIApproved)...)

	entries = append(entries, gnuFamily("GFDL", "GNU Free Documentation License", "1.1", false, IsFSFLibre)...)
	entries = append(entries, gnuFamily("GFDL", "GNU Free Documentation License", "1.2", false, IsFSFLibre)...)
	entries = append(entries, gnuFamily("GFDL", "GNU Free Documentation License", "1.3", false, IsFSFLibre)...)

	// --- Sentinel ------------------------------------------------------------
	entries = append(entries, licenseEntry{
		name:     "NOASSERTION",
		fullName: "No assertion is made about the licensing terms",
		flags:    IsSentinel,
	})

	return entries
}

func verString(major, minor int) string {
	const digits = "0123456789"
	itoa := func(n int) string {
		if n == 0 {
			return "0"
		}
		var b []byte
		for n > 0 {
			b = append([]byte{digits[n%10]}, b...)
			n /= 10
		}
		return string(b)
	}
	return itoa(major) + "." + itoa(minor)
}

// exceptions is the curated exception table, kept sorted by name.
var exceptions = []exceptionEntry{
	{name: "389-exception", flags: 0},
	{name: "Classpath-exception-2.0", flags: 0},
	{name: "GCC-exception-2.0", flags: 0},
	{name: "LLVM-exception", flags: 0},
	{name: "LGPL-3.0-linking-exception", flags: 0},
	{name: "Nokia-Qt-exception-1.1", flags: IsDeprecated},
	{name: "OpenSSL-exception", flags: 0},
	{name: "Qwt-exception-1.0", flags: 0},
	{name: "Universal-FOSS-exception-1.0", flags: 0},
}

// impreciseNames maps common, non-canonical spellings (lower-cased) to the
// canonical short name they stand for, at a representative scale rather
// than the full upstream alias table.
var impreciseNames = map[string]string{
	"apache 2.0":             "Apache-2.0",
	"apache2":                "Apache-2.0",
	"apache-2":               "Apache-2.0",
	"agplv3":                 "AGPL-3.0-or-later",
	"gplv2":                  "GPL-2.0-or-later",
	"gplv3":                  "GPL-3.0-or-later",
	"lgplv2.1":               "LGPL-2.1-or-later",
	"wxwindows":              "wxWindows",
	"the mit license":        "MIT",
	"bsd simplified":         "BSD-2-Clause",
	"simplified bsd license": "BSD-2-Clause",
	"new bsd license":        "BSD-3-Clause",
}
