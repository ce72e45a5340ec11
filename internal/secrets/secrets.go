// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text
// files: the filename is the key name, the trimmed contents the value.
//
// Supported key files: contact-email (sent in the User-Agent so site
// operators can reach us) and search-api-key (reserved for API-backed
// search engines).
package secrets

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Well-known key names.
const (
	ContactEmail = "contact-email"
	SearchAPIKey = "search-api-key"
)

// Load reads all files in dir and returns a map of filename to trimmed
// contents. A missing directory is not an error; collection works fine
// without credentials. Unreadable files are logged and skipped.
func Load(dir string, log *zap.Logger) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, eris.Wrapf(err, "reading secrets directory %s", dir)
	}

	out := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.Warn("could not read secret",
				zap.String("name", entry.Name()),
				zap.Error(err))
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[entry.Name()] = value
		}
	}
	return out, nil
}
