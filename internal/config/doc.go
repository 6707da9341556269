// Package config defines mudra's settings and loads them from built-in
// defaults, an optional YAML file and MUDRA_-prefixed environment variables,
// in increasing order of precedence.
//
// Per-gesture overrides live under the gestures key, addressed by the
// lowercase symbol name (stop, peace, fist, one_finger, thumbs_up, thumbs_down).
// The same names key actions.bindings, which lists the plugin actions a
// gesture triggers when it turns on (or off, with on_release).
package config
