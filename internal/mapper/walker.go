package mapper

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"codemap/internal/model"
)

// Mapper walks a project tree and produces a CodeMap: every directory
// and file that survives the ignore rules, with signature annotations
// on recognised source files.
type Mapper struct {
	cfg Config
	ext *Extractor
}

func New(cfg Config) *Mapper {
	return &Mapper{cfg: cfg, ext: NewExtractor(cfg.MaxSignatures)}
}

// Build maps the tree rooted at root. The only hard failure is a root
// that cannot be stat'ed or is not a directory; trouble further down
// (unreadable subdirectories, vanished files) is recorded as a warning
// on the result instead of aborting a half-finished map.
func (m *Mapper) Build(root string) (*model.CodeMap, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot map %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot map %s: not a directory", root)
	}

	cm := &model.CodeMap{Root: root}
	m.walk(root, "", 0, cm)
	return cm, nil
}

// child is one directory entry scheduled for output after the files of
// its parent. link marks a symlink whose target is a directory: those
// are listed but never entered, so a link cycle cannot hang the walk.
type child struct {
	name string
	link bool
}

// walk appends the entry for dir itself, then its files, then each
// subdirectory's block in turn. dir is the absolute path, rel the
// slash-separated path from the root ("" for the root itself).
func (m *Mapper) walk(dir, rel string, depth int, cm *model.CodeMap) {
	cm.Entries = append(cm.Entries, model.MapEntry{
		Path:  rel,
		Name:  filepath.Base(dir),
		Depth: depth,
		IsDir: true,
	})

	entries, err := os.ReadDir(dir)
	if err != nil {
		cm.Warnings = append(cm.Warnings, fmt.Sprintf("cannot read %s: %v", dir, err))
		return
	}

	// os.ReadDir sorts by file name, which is what keeps two runs over
	// the same tree byte-identical. Files are emitted before any
	// subdirectory block, so a directory reads as one contiguous chunk.
	var subdirs []child
	var files []string
	for _, ent := range entries {
		name := ent.Name()
		switch {
		case ent.IsDir():
			if m.cfg.IgnoreDirs[name] {
				cm.Ignored = append(cm.Ignored, path.Join(rel, name)+"/")
				continue
			}
			subdirs = append(subdirs, child{name: name})
		case ent.Type()&fs.ModeSymlink != 0:
			// IsDir above is lstat-based, so links need a second look.
			// A link to a directory is shown in its place; a link to a
			// file (or a broken one) is just another file line.
			if target, serr := os.Stat(filepath.Join(dir, name)); serr == nil && target.IsDir() {
				if m.cfg.IgnoreDirs[name] {
					cm.Ignored = append(cm.Ignored, path.Join(rel, name)+"/")
					continue
				}
				subdirs = append(subdirs, child{name: name, link: true})
				continue
			}
			files = append(files, name)
		default:
			files = append(files, name)
		}
	}

	for _, name := range files {
		if m.cfg.IgnoreFiles[name] {
			cm.Ignored = append(cm.Ignored, path.Join(rel, name))
			continue
		}
		entry := model.MapEntry{
			Path:  path.Join(rel, name),
			Name:  name,
			Depth: depth + 1,
		}
		if m.cfg.CodeExtensions[filepath.Ext(name)] {
			entry.Sigs = m.ext.ExtractFile(filepath.Join(dir, name))
		}
		cm.Entries = append(cm.Entries, entry)
	}

	for _, d := range subdirs {
		if d.link {
			cm.Entries = append(cm.Entries, model.MapEntry{
				Path:  path.Join(rel, d.name),
				Name:  d.name,
				Depth: depth + 1,
				IsDir: true,
			})
			continue
		}
		m.walk(filepath.Join(dir, d.name), path.Join(rel, d.name), depth+1, cm)
	}
}
