/*
Package registry is the external collaborator for package spdx: a static,
sorted lookup table of SPDX license and exception short-identifiers,
together with the metadata flags (deprecated, OSI-approved, FSF-libre,
copyleft, GNU-family) the rest of the module needs to parse, canonicalize,
and satisfy license expressions.

The table here is a curated subset of the upstream SPDX license-list data,
large enough to exercise every rule in the expression grammar and the GNU
satisfaction table, not a full mirror of the several-hundred-entry upstream
list. Regenerating the full list from upstream data is the job of a
separate updater tool and is explicitly out of scope for this package.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package registry
