//go:build !embed_onnx || !((linux && (amd64 || arm64)) || (darwin && arm64) || (windows && amd64))

package onnxlib

import "embed"

// bundle is empty: build with -tags embed_onnx to ship the runtime.
var bundle embed.FS
