//go:build embed_onnx && windows && amd64

package onnxlib

import "embed"

//go:embed lib/windows-amd64/onnxruntime.dll
var bundle embed.FS
