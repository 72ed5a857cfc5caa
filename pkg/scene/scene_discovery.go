package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by NewByName
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath"`    // Path to the JSON file (file type only)
}

// RandomBallsSeed fixes the layout of the random-balls scene when built by name
const RandomBallsSeed = 42

type builtinScene struct {
	info  SceneInfo
	build func() *Scene
}

var builtinScenes = []builtinScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default Scene",
			Description: "Diffuse, hollow glass and metal spheres on a ground sphere",
			Type:        "builtin",
		},
		build: NewDefaultScene,
	},
	{
		info: SceneInfo{
			ID:          "random-balls",
			DisplayName: "Random Balls",
			Description: "Three large spheres surrounded by a grid of small random balls",
			Type:        "builtin",
		},
		build: func() *Scene { return NewRandomBallsScene(RandomBallsSeed) },
	},
	{
		info: SceneInfo{
			ID:          "single-sphere",
			DisplayName: "Single Sphere",
			Description: "A diffuse sphere silhouetted against a white background",
			Type:        "builtin",
		},
		build: NewSingleSphereScene,
	},
}

// ListScenes returns the built-in scenes followed by the JSON scenes found in dir,
// sorted by display name. A missing dir yields only the built-ins.
func ListScenes(dir string) ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		scenes = append(scenes, b.info)
	}

	fileScenes, err := listFileScenes(dir)
	if err != nil {
		return nil, err
	}
	return append(scenes, fileScenes...), nil
}

func listFileScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		scenes = append(scenes, parseSceneMetadata(filePath))
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// parseSceneMetadata reads the name and description of a JSON scene,
// falling back to values derived from the file name
func parseSceneMetadata(filePath string) SceneInfo {
	nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:          nameWithoutExt,
		DisplayName: titleCase(nameWithoutExt),
		Type:        "file",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info
	}
	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info
	}
	if header.Name != "" {
		info.DisplayName = header.Name
	}
	info.Description = header.Description
	return info
}

// NewByName builds a built-in scene, a JSON scene from dir by file name
// (with or without the .json extension), or a JSON scene at an explicit path
func NewByName(name, dir string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.build(), nil
		}
	}

	candidates := []string{name}
	if dir != "" {
		base := strings.TrimSuffix(name, ".json")
		candidates = append(candidates, filepath.Join(dir, base+".json"))
	}
	for _, path := range candidates {
		if !strings.HasSuffix(path, ".json") {
			continue
		}
		if _, err := os.Stat(path); err == nil {
			return LoadSceneFile(path)
		}
	}

	return nil, fmt.Errorf("unknown scene: %s", name)
}

// NewListedScene builds a scene only if its ID is a built-in or a JSON file
// listed directly in dir. Paths are never resolved.
func NewListedScene(id, dir string) (*Scene, error) {
	for _, b := range builtinScenes {
		if b.info.ID == id {
			return b.build(), nil
		}
	}

	fileScenes, err := listFileScenes(dir)
	if err != nil {
		return nil, err
	}
	for _, info := range fileScenes {
		if info.ID == id {
			return LoadSceneFile(info.FilePath)
		}
	}

	return nil, fmt.Errorf("unknown scene: %s", id)
}

// titleCase converts a filename-style string to title case
// e.g., "three-spheres" -> "Three Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		first, size := utf8.DecodeRuneInString(word)
		words[i] = string(unicode.ToUpper(first)) + strings.ToLower(word[size:])
	}

	return strings.Join(words, " ")
}
