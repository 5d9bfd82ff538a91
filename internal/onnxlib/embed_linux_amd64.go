//go:build embed_onnx && linux && amd64

package onnxlib

import "embed"

//go:embed lib/linux-amd64/libonnxruntime.so
var bundle embed.FS
