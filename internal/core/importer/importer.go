package importer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/studiodesk/studiodesk/internal/core/db"
	"github.com/studiodesk/studiodesk/pkg/studioexport"
)

// Importer loads studio export files into the database
type Importer struct {
	db *db.DB
}

// New creates a new importer
func New(database *db.DB) *Importer {
	return &Importer{db: database}
}

// Result summarises one import run
type Result struct {
	FilesFound    int
	FilesImported int
	FilesSkipped  int // unchanged since a previous import
	FilesFailed   int
	Records       int
	Sessions      int
}

// ImportExport writes a parsed export in one transaction. It reports
// false when a file with the same content was imported before.
func (i *Importer) ImportExport(export *studioexport.Export) (bool, error) {
	hash, err := computeFileHash(export.FilePath)
	if err != nil {
		return false, fmt.Errorf("failed to hash file: %w", err)
	}

	exists, err := i.db.HasImported(hash)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	err = i.db.WithTx(func(w *db.Writer) error {
		// Definitions first so sessions can reference them
		known := make(map[string]bool)
		for _, def := range export.Statuses {
			if err := w.UpsertStatusDefinition(def); err != nil {
				return err
			}
			known[def.ID] = true
		}
		for _, s := range export.Sessions {
			def := s.StatusDefinition
			if def == nil || known[def.ID] || def.Validate() != nil {
				continue
			}
			if err := w.UpsertStatusDefinition(*def); err != nil {
				return err
			}
			known[def.ID] = true
		}

		for _, l := range export.Leads {
			if err := w.UpsertLead(l); err != nil {
				return err
			}
		}
		for _, p := range export.Projects {
			if err := w.UpsertProject(p); err != nil {
				return err
			}
		}
		for _, t := range export.Templates {
			if err := w.UpsertTemplate(t); err != nil {
				return err
			}
		}

		for _, s := range export.Sessions {
			if s.StatusDefinition != nil && !known[s.StatusDefinition.ID] {
				ok, err := w.StatusExists(s.StatusDefinition.ID)
				if err != nil {
					return err
				}
				if !ok {
					// Fall back to the legacy label rather than failing the FK
					fmt.Fprintf(os.Stderr, "Warning: %s: session %s references unknown status %s\n",
						export.FilePath, s.ID, s.StatusDefinition.ID)
					s.StatusDefinition = nil
				} else {
					known[s.StatusDefinition.ID] = true
				}
			}
			if err := w.UpsertSession(s); err != nil {
				return err
			}
		}

		return w.RecordImport(export.FilePath, hash, export.Records(), len(export.Sessions))
	})
	if err != nil {
		return false, err
	}

	return true, nil
}

// FindExports returns the export files under path. A file path is
// returned as is.
func FindExports(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(p) == ".jsonl" {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}
	return files, nil
}

// ImportPath imports every export file found under path. Files that fail
// to parse or import are warned about and counted, not fatal.
func (i *Importer) ImportPath(path string, progress ProgressCallback) (*Result, error) {
	files, err := FindExports(path)
	if err != nil {
		return nil, err
	}

	result := &Result{FilesFound: len(files)}
	for _, file := range files {
		export, err := studioexport.ParseFile(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse %s: %v\n", file, err)
			result.FilesFailed++
			continue
		}

		imported, err := i.ImportExport(export)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to import %s: %v\n", file, err)
			result.FilesFailed++
			continue
		}

		if imported {
			result.FilesImported++
			result.Records += export.Records()
			result.Sessions += len(export.Sessions)
		} else {
			result.FilesSkipped++
		}

		if progress != nil {
			progress.Update(filepath.Base(file), len(export.Sessions))
		}
	}

	return result, nil
}

func computeFileHash(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = file.Close()
	}()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
