// Package plugin runs external actions when a gesture turns on or off.
//
// A plugin is a directory holding a plugin.json manifest and an executable.
// For every action the executable is started once, receives a Request as JSON
// on stdin and answers with a Response as JSON on stdout.
package plugin

import "encoding/json"

// ManifestFile is the manifest name looked up in every plugin directory.
const ManifestFile = "plugin.json"

// Manifest describes a plugin's metadata and capabilities.
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Executable  string   `json:"executable"`
	Actions     []string `json:"actions"`
}

// Supports reports whether the manifest lists action.
func (m Manifest) Supports(action string) bool {
	for _, a := range m.Actions {
		if a == action {
			return true
		}
	}
	return false
}

// Request represents a request sent to a plugin for execution.
type Request struct {
	Action    string          `json:"action"`
	Gesture   string          `json:"gesture"`
	Active    bool            `json:"active"`
	Frame     int64           `json:"frame"`
	SessionID string          `json:"session_id,omitempty"`
	Params    json.RawMessage `json:"params,omitempty"`
}

// Response represents the response from a plugin execution.
type Response struct {
	Success bool            `json:"success"`
	Error   string          `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Plugin represents a discovered plugin with its manifest and location.
type Plugin struct {
	Manifest   Manifest
	Path       string
	Executable string
}
