//go:build embed_onnx && linux && arm64

package onnxlib

import "embed"

//go:embed lib/linux-arm64/libonnxruntime.so
var bundle embed.FS
