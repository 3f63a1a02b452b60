package calc

// Version and BuildDate are stamped by the release build; the defaults
// identify a from-source build.
var (
	Version   = "0.3.0"
	BuildDate = "unknown"
)
