package arch_test

import (
	"strings"
	"testing"
)

// layers orders the internal packages. A package may import packages on its
// own layer or below.
var layers = map[string]int{
	"ansi":      0,
	"genealogy": 0,
	"sector":    0,
	"telemetry": 0,
	"textfit":   0,
	"watch":     0,

	"pedigree":    1,
	"srctemplate": 1,

	"palette": 2,
	"store":   2,

	"fan": 3,

	"config":   4,
	"interact": 4,
	"render":   4,

	"ui": 5,

	"tui": 6,
}

func TestDependencyLayering(t *testing.T) {
	t.Parallel()
	for _, pkg := range packages(t) {
		layer, ok := layers[pkg]
		if !ok {
			t.Errorf("package %s has no layer; add it to the layers map", pkg)
			continue
		}
		for _, imp := range imports(t, pkg) {
			dep := internalName(imp)
			if dep == "" {
				continue
			}
			if layers[dep] > layer {
				t.Errorf("%s (layer %d) imports %s (layer %d)", pkg, layer, dep, layers[dep])
			}
		}
	}
}

// leaves must not import any other internal package.
var leaves = []string{"ansi", "genealogy", "sector", "telemetry", "textfit", "watch"}

func TestLeafPackages(t *testing.T) {
	t.Parallel()
	for _, pkg := range leaves {
		for _, imp := range imports(t, pkg) {
			if dep := internalName(imp); dep != "" {
				t.Errorf("%s imports internal/%s", pkg, dep)
			}
		}
	}
}

// forbidden lists internal edges that the layering alone would allow.
var forbidden = map[string][]string{
	"fan":      {"store", "srctemplate"},
	"palette":  {"store"},
	"render":   {"interact", "store"},
	"interact": {"render", "store"},
}

func TestForbiddenEdges(t *testing.T) {
	t.Parallel()
	for pkg, deps := range forbidden {
		for _, imp := range imports(t, pkg) {
			for _, dep := range deps {
				if internalName(imp) == dep {
					t.Errorf("%s must not import internal/%s", pkg, dep)
				}
			}
		}
	}
}

// confined maps a third-party import prefix to the only internal package
// allowed to use it.
var confined = map[string]string{
	"modernc.org/sqlite":              "store",
	"github.com/pelletier/go-toml":    "store",
	"github.com/charmbracelet/":       "tui",
	"github.com/atotto/clipboard":     "tui",
	"github.com/fogleman/gg":          "render",
	"github.com/golang/freetype":      "textfit",
	"github.com/rivo/uniseg":          "textfit",
	"golang.org/x/image/font/gofont/": "textfit",
	"github.com/fsnotify/fsnotify":    "watch",
	"github.com/bep/debounce":         "watch",
	"github.com/spf13/viper":          "config",
}

func TestThirdPartyConfinement(t *testing.T) {
	t.Parallel()
	for _, pkg := range packages(t) {
		for _, imp := range imports(t, pkg) {
			for prefix, owner := range confined {
				if strings.HasPrefix(imp, prefix) && pkg != owner {
					t.Errorf("%s imports %s; only %s may", pkg, imp, owner)
				}
			}
		}
	}
}
