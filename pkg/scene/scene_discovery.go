package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const builtInGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by ByName
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete scene listing
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// sceneMetadata holds the optional descriptive fields of a scene file.
// Load ignores them.
type sceneMetadata struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Group       string `json:"group"`
}

var builtInScenes = []SceneInfo{
	{
		ID:          "default",
		DisplayName: "Three Spheres",
		Description: "Red, green and blue mirrors lit by three point lights",
		Group:       builtInGroup,
		Type:        "builtin",
	},
	{
		ID:          "single",
		DisplayName: "Single Sphere",
		Description: "One red sphere and one white light",
		Group:       builtInGroup,
		Type:        "builtin",
	},
}

// ByName resolves a built-in scene name or a .json scene path, enlarged by scale
func ByName(name string, scale int) (*Scene, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %d", scale)
	}

	switch {
	case name == "default":
		return NewDefaultScene(scale), nil
	case name == "single":
		return NewSingleSphereScene().Scale(float32(scale)), nil
	case strings.EqualFold(filepath.Ext(name), ".json"):
		sc, err := Load(name)
		if err != nil {
			return nil, err
		}
		return sc.Scale(float32(scale)), nil
	default:
		return nil, fmt.Errorf("unknown scene: %q (use 'default', 'single' or a .json file)", name)
	}
}

// FindScenesDir returns the first scenes directory found relative to the
// working directory, or "" when there is none
func FindScenesDir() string {
	for _, path := range []string{"scenes", "../scenes"} {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return ""
}

// ListJSONScenes scans dir for .json scene files, skipping files that cannot
// be parsed. An empty dir yields no scenes.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if dir == "" {
		return []SceneInfo{}, nil
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := []SceneInfo{}
	for _, filePath := range files {
		info, err := ParseSceneMetadata(filePath)
		if err != nil {
			// A broken file must not hide the rest of the listing
			fmt.Printf("Warning: skipping scene file %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})
	return scenes, nil
}

// ParseSceneMetadata reads the descriptive fields of a scene file, falling
// back to values derived from the file name
func ParseSceneMetadata(filePath string) (SceneInfo, error) {
	stem := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:          filePath,
		DisplayName: titleCase(stem),
		Group:       "Scene Files",
		Type:        "json",
		FilePath:    filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, fmt.Errorf("failed to read scene file: %w", err)
	}
	var meta sceneMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return info, fmt.Errorf("failed to parse scene file %s: %w", filePath, err)
	}

	if meta.Name != "" {
		info.DisplayName = meta.Name
	}
	if meta.Group != "" {
		info.Group = meta.Group
	}
	info.Description = meta.Description
	return info, nil
}

// ListAllScenes returns the built-in scenes and the scene files in dir,
// grouped by category with the built-in group first
func ListAllScenes(dir string) (ScenesResponse, error) {
	var response ScenesResponse

	fileScenes, err := ListJSONScenes(dir)
	if err != nil {
		return response, fmt.Errorf("failed to list scene files: %w", err)
	}

	allScenes := append(append([]SceneInfo{}, builtInScenes...), fileScenes...)

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, info := range allScenes {
		if _, exists := groupMap[info.Group]; !exists && info.Group != builtInGroup {
			groupNames = append(groupNames, info.Group)
		}
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}
	sort.Strings(groupNames)

	response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: groupMap[builtInGroup]})
	for _, name := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: name, Scenes: groupMap[name]})
	}
	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "mirror-row" -> "Mirror Row"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
