package cache

import "os"

// KeyFor builds a cache Key from a file's current on-disk identity plus
// the adapter/grouping/version dimensions that distinguish one processed
// blob from another. mtime is taken in nanoseconds; callers on platforms
// where ModTime() lacks
// nanosecond resolution get seconds * 1e9, which Go's time package
// already does transparently via UnixNano.
func KeyFor(info os.FileInfo, absolutePath, adapterName, adapterConfigFingerprint string, groupSize int, toolVersion string) Key {
	return Key{
		AbsolutePath:             absolutePath,
		ModTimeNanos:             info.ModTime().UnixNano(),
		Size:                     info.Size(),
		AdapterName:              adapterName,
		AdapterConfigFingerprint: adapterConfigFingerprint,
		GroupSize:                groupSize,
		ToolVersion:              toolVersion,
	}
}
