package tracers

import (
	"os"
	"path/filepath"
	"strings"
)

// StdlibRoot is the virtual directory of the embedded library files
const StdlibRoot = "@stdlib"

// IgnoreSpec marks modules and directories as infrastructure. It is immutable after construction.
type IgnoreSpec struct {
	modules []string
	dirs    []string
}

// NewIgnoreSpec splits module lists on commas and directory lists on the path list separator.
// $name references in directories are looked up in replacements before the environment.
func NewIgnoreSpec(modules []string, dirs []string, replacements map[string]string) IgnoreSpec {
	var spec IgnoreSpec
	for _, list := range modules {
		for mod := range strings.SplitSeq(list, ",") {
			mod = strings.TrimSpace(mod)
			if mod == "" {
				continue
			}
			spec.modules = append(spec.modules, mod)
		}
	}
	for _, list := range dirs {
		for dir := range strings.SplitSeq(list, string(os.PathListSeparator)) {
			dir = strings.TrimSpace(dir)
			if dir == "" {
				continue
			}
			spec.dirs = append(spec.dirs, expandDir(dir, replacements))
		}
	}
	return spec
}

func expandDir(dir string, replacements map[string]string) string {
	dir = os.Expand(dir, func(name string) string {
		if v, ok := replacements[name]; ok {
			return v
		}
		return os.Getenv(name)
	})
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = home + dir[1:]
		}
	}
	return normalizePath(dir)
}

func normalizePath(path string) string {
	if strings.HasPrefix(path, "@") {
		return filepath.ToSlash(filepath.Clean(path))
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

func (s IgnoreSpec) Modules() []string {
	return s.modules
}

func (s IgnoreSpec) Dirs() []string {
	return s.dirs
}

// ShouldIgnore reports whether code in file belongs to infrastructure.
// An empty module name means the module could not be resolved and is ignored.
func (s IgnoreSpec) ShouldIgnore(file string, module string) bool {
	if module == "" {
		return true
	}

	for _, pattern := range s.modules {
		if module == pattern ||
			strings.HasPrefix(module, pattern+".") ||
			lastComponent(module) == pattern {
			return true
		}
	}

	if file == "" {
		return true
	}
	file = normalizePath(file)
	for _, dir := range s.dirs {
		if underDir(file, dir) {
			return true
		}
	}

	return false
}

func lastComponent(module string) string {
	if i := strings.LastIndexByte(module, '.'); i >= 0 {
		return module[i+1:]
	}
	return module
}

func underDir(path, dir string) bool {
	if path == dir {
		return true
	}
	sep := string(filepath.Separator)
	if strings.HasPrefix(dir, "@") {
		sep = "/"
	}
	return strings.HasPrefix(path, strings.TrimSuffix(dir, sep)+sep)
}

// ModuleName derives a dotted module name from a file path relative to root.
// Pseudo files like "<stdin>" have no module name.
func ModuleName(path string, root string) string {
	if path == "" || strings.HasPrefix(path, "<") {
		return ""
	}

	if rest, ok := strings.CutPrefix(filepath.ToSlash(path), StdlibRoot+"/"); ok {
		return "stdlib." + dotted(rest)
	}

	rel := filepath.Base(path)
	if root != "" {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	return dotted(filepath.ToSlash(rel))
}

func dotted(rel string) string {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	if rel == "" || rel == "." {
		return ""
	}
	return strings.ReplaceAll(rel, "/", ".")
}

// DisplayPath returns path relative to dir when path lies under it
func DisplayPath(path string, dir string) string {
	if dir == "" || strings.HasPrefix(path, "@") || strings.HasPrefix(path, "<") {
		return path
	}
	if !filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
