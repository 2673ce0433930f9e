package report

import (
	"path/filepath"
	"strings"
)

// DefaultFileName is offered when the caller supplies no name.
const DefaultFileName = "call_logs.pdf"

// ResolveFileName returns the name a rendered document is offered under:
// blank names fall back to DefaultFileName and names without a ".pdf"
// suffix (compared case-insensitively) get one appended.
func ResolveFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return DefaultFileName
	}
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}
