// Command keyboard is a mudra plugin that sends keystrokes.
//
// It uses xdotool on Linux and System Events through osascript on macOS.
// Build it next to its manifest:
//
//	go build -o ~/.mudra/plugins/keyboard/keyboard ./plugins/keyboard
//	cp plugins/keyboard/plugin.json ~/.mudra/plugins/keyboard/
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/ayusman/mudra/internal/plugin"
)

// KeystrokeParams defines parameters for keystroke and shortcut actions.
type KeystrokeParams struct {
	Key       string   `json:"key"`
	Modifiers []string `json:"modifiers"`
}

var errNoKey = errors.New("key is required")

// modifierAliases maps accepted modifier names to canonical ones.
var modifierAliases = map[string]string{
	"command": "command",
	"cmd":     "command",
	"super":   "command",
	"option":  "option",
	"alt":     "option",
	"control": "control",
	"ctrl":    "control",
	"shift":   "shift",
}

var xdotoolModifiers = map[string]string{
	"command": "super",
	"option":  "alt",
	"control": "ctrl",
	"shift":   "shift",
}

func main() {
	resp := handle(os.Stdin, runtime.GOOS, run)
	if err := json.NewEncoder(os.Stdout).Encode(resp); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handle(in io.Reader, goos string, send func(name string, args ...string) error) plugin.Response {
	var req plugin.Request
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return failure(fmt.Errorf("decode request: %w", err))
	}

	switch req.Action {
	case "keystroke", "shortcut":
	default:
		return failure(fmt.Errorf("unknown action: %s", req.Action))
	}

	var p KeystrokeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &p); err != nil {
			return failure(fmt.Errorf("parse params: %w", err))
		}
	}

	name, args, err := command(goos, p)
	if err != nil {
		return failure(fmt.Errorf("%s for %s: %w", req.Action, req.Gesture, err))
	}
	if err := send(name, args...); err != nil {
		return failure(fmt.Errorf("%s for %s: %w", req.Action, req.Gesture, err))
	}

	return plugin.Response{Success: true}
}

// command returns the program and arguments that send p on goos.
func command(goos string, p KeystrokeParams) (string, []string, error) {
	if p.Key == "" {
		return "", nil, errNoKey
	}

	mods, err := canonicalModifiers(p.Modifiers)
	if err != nil {
		return "", nil, err
	}

	switch goos {
	case "darwin":
		return "osascript", []string{"-e", appleScript(p.Key, mods)}, nil
	case "linux":
		combo := make([]string, 0, len(mods)+1)
		for _, m := range mods {
			combo = append(combo, xdotoolModifiers[m])
		}
		combo = append(combo, p.Key)
		return "xdotool", []string{"key", "--clearmodifiers", strings.Join(combo, "+")}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform %s", goos)
	}
}

func canonicalModifiers(in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, m := range in {
		c, ok := modifierAliases[strings.ToLower(strings.TrimSpace(m))]
		if !ok {
			return nil, fmt.Errorf("unknown modifier %q", m)
		}
		out = append(out, c)
	}
	return out, nil
}

func appleScript(key string, mods []string) string {
	key = strings.ReplaceAll(key, `"`, `\"`)
	if len(mods) == 0 {
		return fmt.Sprintf(`tell application "System Events" to keystroke "%s"`, key)
	}

	using := make([]string, len(mods))
	for i, m := range mods {
		using[i] = m + " down"
	}
	return fmt.Sprintf(`tell application "System Events" to keystroke "%s" using {%s}`, key, strings.Join(using, ", "))
}

func run(name string, args ...string) error {
	out, err := exec.Command(name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func failure(err error) plugin.Response {
	return plugin.Response{Error: err.Error()}
}
