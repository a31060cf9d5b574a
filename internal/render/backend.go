package render

import "fmt"

// Fixed resource sizing for the render backend fleet. Submission and polling
// both derive the function name from these constants, which is what lets a
// poll address the right backend without any persisted job-to-backend
// mapping.
const (
	DiskSizeMB     = 2048
	MemorySizeMB   = 3009
	TimeoutSeconds = 240

	functionPrefix = "scenecast-render"
)

// ResolveFunctionName maps resource sizing to the deterministic backend
// function name. Pure: same inputs always yield the same identifier.
func ResolveFunctionName(diskSizeMB, memorySizeMB, timeoutSeconds int) string {
	return fmt.Sprintf("%s-mem%dmb-disk%dmb-%dsec",
		functionPrefix, memorySizeMB, diskSizeMB, timeoutSeconds)
}

// FunctionName resolves the backend for the fixed process-wide sizing.
func FunctionName() string {
	return ResolveFunctionName(DiskSizeMB, MemorySizeMB, TimeoutSeconds)
}
