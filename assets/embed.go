package assets

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed shaders/*.kage
var assetsFS embed.FS

var (
	shadersMu sync.Mutex
	shaders   = make(map[string]*ebiten.Shader)
)

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadShader compiles an embedded Kage shader. Compiled shaders are cached by
// path.
func LoadShader(path string) (*ebiten.Shader, error) {
	clean := cleanAssetPath(path)

	shadersMu.Lock()
	defer shadersMu.Unlock()
	if s, ok := shaders[clean]; ok {
		return s, nil
	}

	src, err := assetsFS.ReadFile(clean)
	if err != nil {
		return nil, err
	}
	s, err := ebiten.NewShader(src)
	if err != nil {
		return nil, fmt.Errorf("compile shader %q: %w", path, err)
	}
	shaders[clean] = s
	return s, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		s = strings.TrimPrefix(s, "assets/")
	}
	if !strings.Contains(s, "/") && strings.HasSuffix(s, ".kage") {
		return "shaders/" + s
	}
	return s
}
