package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is the file format of a map. Each layer is a list of rows, one
// character per 8 px tile. Liftables are world objects, not map entities.
type Level struct {
	Name      string              `json:"name"`
	Width     int                 `json:"width"`
	Height    int                 `json:"height"`
	Spawn     Spawn               `json:"spawn"`
	Layers    map[string][]string `json:"layers"`
	Entities  []Entity            `json:"entities,omitempty"`
	Liftables []Entity            `json:"liftables,omitempty"`
}

type Spawn struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Layer string `json:"layer,omitempty"`
}

type Entity struct {
	Type  string                 `json:"type"`
	Name  string                 `json:"name,omitempty"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	W     int                    `json:"w"`
	H     int                    `json:"h"`
	Layer string                 `json:"layer,omitempty"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// LoadLevelFromFS reads an embedded level.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parse(data)
}

// LoadLevel reads a level from disk.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("invalid level dimensions: %dx%d", lvl.Width, lvl.Height)
	}
	return &lvl, nil
}
