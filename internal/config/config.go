package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the coordinator configuration, loaded from YAML with environment
// overrides applied on top.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Game   GameConfig   `yaml:"game"`
	Boards BoardsConfig `yaml:"boards"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type GameConfig struct {
	Quorum           int     `yaml:"quorum"`
	BuzzWindowSec    int     `yaml:"buzz_window_sec"`
	AnswerWindowSec  int     `yaml:"answer_window_sec"`
	AudioFallbackSec int     `yaml:"audio_fallback_sec"`
	FinalCollectSec  float64 `yaml:"final_collect_sec"`
	MinWager         int     `yaml:"min_wager"`
	WagerFloor       int     `yaml:"wager_floor"`
}

type BoardsConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration. Every value can be overridden
// by the YAML file or the environment.
func Default() Config {
	return Config{
		Server: ServerConfig{Addr: ":8080"},
		Game: GameConfig{
			Quorum:           3,
			BuzzWindowSec:    5,
			AnswerWindowSec:  7,
			AudioFallbackSec: 8,
			FinalCollectSec:  5.5,
			MinWager:         5,
			WagerFloor:       1000,
		},
		Boards: BoardsConfig{Dir: "game_data"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path (missing file is not an error) and applies
// environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Run on defaults + env.
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.Server.Addr = getEnv("JEOPARDY_ADDR", cfg.Server.Addr)
	cfg.Boards.Dir = getEnv("JEOPARDY_BOARDS_DIR", cfg.Boards.Dir)
	cfg.Log.Level = getEnv("JEOPARDY_LOG_LEVEL", cfg.Log.Level)
	cfg.Game.Quorum = getEnvAsInt("JEOPARDY_QUORUM", cfg.Game.Quorum)
	cfg.Game.BuzzWindowSec = getEnvAsInt("JEOPARDY_BUZZ_WINDOW_SEC", cfg.Game.BuzzWindowSec)
	cfg.Game.AnswerWindowSec = getEnvAsInt("JEOPARDY_ANSWER_WINDOW_SEC", cfg.Game.AnswerWindowSec)
	cfg.Game.AudioFallbackSec = getEnvAsInt("JEOPARDY_AUDIO_FALLBACK_SEC", cfg.Game.AudioFallbackSec)

	if cfg.Game.Quorum < 1 {
		return Config{}, fmt.Errorf("quorum must be at least 1, got %d", cfg.Game.Quorum)
	}
	return cfg, nil
}

// BuzzWindow returns the buzz-in window as a duration.
func (g GameConfig) BuzzWindow() time.Duration {
	return time.Duration(g.BuzzWindowSec) * time.Second
}

// AnswerWindow returns the default answer window as a duration.
func (g GameConfig) AnswerWindow() time.Duration {
	return time.Duration(g.AnswerWindowSec) * time.Second
}

// AudioFallback returns the audio-gate fallback timeout as a duration.
func (g GameConfig) AudioFallback() time.Duration {
	return time.Duration(g.AudioFallbackSec) * time.Second
}

// FinalCollect returns the final-round wager collection window.
func (g GameConfig) FinalCollect() time.Duration {
	return time.Duration(g.FinalCollectSec * float64(time.Second))
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
