// Package version holds build metadata set through -ldflags:
//
//	go build -ldflags "\
//	  -X github.com/teamops/dashboard/version.Version=1.2.3 \
//	  -X github.com/teamops/dashboard/version.Revision=abc123 \
//	  -X 'github.com/teamops/dashboard/version.BuiltAt=$(date)'" ./cmd/teamops
//
// Unset values fall back to the VCS data embedded by the Go toolchain.
package version
