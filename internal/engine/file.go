package engine

import "os"

// writeFile implements §4.1's writeTestcase: atomically replace path's
// contents by writing a sibling temporary file and renaming it over
// path, so a reader never sees a partially written testcase.
func writeFile(path, content string) error {
	tmp := path + ".lithium-tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
