// Package version reports the build identity of accountkit binaries.
//
// Version is set at link time:
//
//	go build -ldflags "-X github.com/kbukum/accountkit/version.Version=1.2.0" ./cmd/account-client
//
// The VCS revision and Go version are read from the embedded build info.
package version
