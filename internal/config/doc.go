// Package config resolves the settings for a single howoldami invocation.
//
// Settings are layered with precedence CLI flags > environment variables >
// configuration file > defaults. The configuration file is looked up in the
// per-user configuration directory reported by os.UserConfigDir:
//
//   - Linux: $XDG_CONFIG_HOME/howoldami/config.toml or $HOME/.config/howoldami/config.toml
//   - macOS: $HOME/Library/Application Support/howoldami/config.toml
//   - Windows: %AppData%\howoldami\config.toml
//
// config.yaml and config.yml are accepted in the same directory when no
// config.toml exists. HOWOLDAMI_CONFIG or the --config flag point at a file
// explicitly.
package config
