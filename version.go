package seess

// Version is the semantic version of seess. It is set at build time via ldflags:
//
//	go build -ldflags "-X github.com/yacobolo/seess.Version=1.0.0" ./cmd/seess
var Version = "0.1.0"
