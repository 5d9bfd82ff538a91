//go:build embed_onnx && darwin && arm64

package onnxlib

import "embed"

//go:embed lib/darwin-arm64/libonnxruntime.dylib
var bundle embed.FS
