package packer

import (
	"github.com/hashicorp/go-hclog"

	"github.com/kilazz/gpck/pkg/codec"
	"github.com/kilazz/gpck/pkg/dds"
	"github.com/kilazz/gpck/pkg/gpck"
)

const (
	// DefaultStreamingThreshold is the file size at or above which the
	// packer mandates the streaming chunk layout (spec.md §4.8).
	DefaultStreamingThreshold = 250 * 1024 * 1024

	// DefaultAlignment is the alignment applied to non-GPU-method files.
	DefaultAlignment = 16

	// DefaultGPUAlignment is the alignment applied to GDeflate-method
	// files, matching GPU DMA transfer granularity.
	DefaultGPUAlignment = 4096

	// DefaultMaxTailDim is the mip-split threshold passed to pkg/dds
	// when MipSplit is enabled and a caller does not override it.
	DefaultMaxTailDim = dds.DefaultMaxTailDim
)

// Dependency is a caller-supplied dependency edge between two virtual
// paths, resolved to asset ids at pack time.
type Dependency struct {
	Source string              `json:"source"`
	Target string              `json:"target"`
	Type   gpck.DependencyType `json:"type"`
}

// Options is the JSON-tagged manifest a caller supplies to Pack. A
// caller MAY load it from a file via encoding/json, following the
// teacher's own manifest-struct convention.
type Options struct {
	// Files maps each package-relative virtual path to the source file
	// path on the build machine.
	Files map[string]string `json:"files"`

	// Method pins every file to one compression method. When zero-value
	// Store is not desired, set Auto instead; when Auto is set, Method is
	// ignored.
	Method Method `json:"method,omitempty"`
	// Auto selects codec.Auto per file by extension instead of a single
	// pinned method.
	Auto bool `json:"auto,omitempty"`
	// Level is the compression level hint passed to the chosen codec.
	Level int `json:"level,omitempty"`

	// Key is the 32-byte AEAD key. A nil/empty Key disables encryption
	// for the whole package. Not serialized: callers supply it out of
	// band, never inline in a manifest file.
	Key []byte `json:"-"`

	// Dedup enables content-fingerprint deduplication during layout.
	Dedup bool `json:"dedup,omitempty"`
	// MipSplit enables DDS texture splitting for .dds files.
	MipSplit bool `json:"mip_split,omitempty"`
	// MaxTailDim overrides pkg/dds's default tail-threshold dimension.
	MaxTailDim int `json:"max_tail_dim,omitempty"`
	// IncludeNames controls whether a name table is written. Defaults
	// to true; set false to omit the original paths from the package.
	IncludeNames *bool `json:"include_names,omitempty"`

	// Dependencies lists edges between virtual paths, resolved to
	// asset ids at write time.
	Dependencies []Dependency `json:"dependencies,omitempty"`

	// Alignment overrides DefaultAlignment for non-GPU-method files.
	Alignment int `json:"alignment,omitempty"`
	// GPUAlignment overrides DefaultGPUAlignment for GDeflate files.
	GPUAlignment int `json:"gpu_alignment,omitempty"`
	// StreamingThreshold overrides DefaultStreamingThreshold.
	StreamingThreshold int64 `json:"streaming_threshold,omitempty"`

	Logger hclog.Logger `json:"-"`
}

// Method is a JSON-friendly alias of codec.Method so manifests can name
// a method by its numeric id without importing pkg/codec themselves.
type Method = codec.Method

func (o *Options) includeNames() bool {
	return o.IncludeNames == nil || *o.IncludeNames
}

func (o *Options) alignment() int {
	if o.Alignment > 0 {
		return o.Alignment
	}
	return DefaultAlignment
}

func (o *Options) gpuAlignment() int {
	if o.GPUAlignment > 0 {
		return o.GPUAlignment
	}
	return DefaultGPUAlignment
}

func (o *Options) streamingThreshold() int64 {
	if o.StreamingThreshold > 0 {
		return o.StreamingThreshold
	}
	return DefaultStreamingThreshold
}

func (o *Options) maxTailDim() int {
	if o.MaxTailDim > 0 {
		return o.MaxTailDim
	}
	return DefaultMaxTailDim
}

func (o *Options) logger() hclog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return hclog.NewNullLogger()
}
