package build

// Version is the plugin version reported to the host toolchain.
const Version = "1.2.0"

// Capabilities describes this plugin to the host documentation toolchain.
// Reads may run in parallel; writes rewrite content files in place and must
// be serialized by the host.
type Capabilities struct {
	Version           string
	ParallelReadSafe  bool
	ParallelWriteSafe bool
}

// Setup is the registration entry point the host toolchain calls once per
// build.
func Setup() Capabilities {
	return Capabilities{
		Version:           Version,
		ParallelReadSafe:  true,
		ParallelWriteSafe: false,
	}
}
