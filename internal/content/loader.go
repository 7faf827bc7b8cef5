package content

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed packs/builtin.yaml
var builtinFS embed.FS

type FSLoader struct{}

func NewLoader() *FSLoader { return &FSLoader{} }

// LoadPacks reads every *.yaml pack under root. A missing root is not
// an error; the engine then runs on the built-in pack alone.
func (l *FSLoader) LoadPacks(ctx context.Context, root string) ([]Pack, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	packs := make([]Pack, 0)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(root, entry.Name())
		pack, err := readPack(path)
		if err != nil {
			return nil, fmt.Errorf("load pack %s: %w", path, err)
		}
		pack.Path = path
		packs = append(packs, pack)
	}

	sort.Slice(packs, func(i, j int) bool { return packs[i].PackID < packs[j].PackID })
	return packs, nil
}

func readPack(path string) (Pack, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Pack{}, err
	}
	return parsePack(b)
}

func parsePack(b []byte) (Pack, error) {
	var pack Pack
	if err := yaml.Unmarshal(b, &pack); err != nil {
		return pack, err
	}
	if err := pack.Validate(); err != nil {
		return pack, err
	}
	return pack, nil
}

// Builtin returns the embedded arithmetic pack. It is validated like
// any other pack; a broken embed is a programming error.
func Builtin() (Pack, error) {
	b, err := builtinFS.ReadFile("packs/builtin.yaml")
	if err != nil {
		return Pack{}, err
	}
	pack, err := parsePack(b)
	if err != nil {
		return Pack{}, fmt.Errorf("builtin pack: %w", err)
	}
	return pack, nil
}
