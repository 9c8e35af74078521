// Package dds parses the narrow subset of the DDS header the packer
// needs (spec.md §4.4) and splits a texture into a small resident
// "tail" (patched header + low-resolution mips) and a larger streamable
// "payload" (the remaining high-resolution mips).
//
// Grounded on the block-table / chunk-stream handling style of the
// EDDS packer in other_examples (WoozyMasta-imageset-packer), adapted
// to parse a real Microsoft DDS header rather than the Enfusion-specific
// EDDS container.
package dds
