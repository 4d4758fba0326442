package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server  ServerConfig  `toml:"server"`
	Logging LoggingConfig `toml:"logging"`
	Timing  TimingConfig  `toml:"timing"`
	Game    GameConfig    `toml:"game"`
}

type ServerConfig struct {
	BindAddress string `toml:"bind_address"`
	ReplayDir   string `toml:"replay_dir"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" или "text"
}

// TimingConfig - параметры стоимости действий. Это баланс, а не код:
// делитель ожидания исторически равен 2 (ждать вдвое дешевле шага),
// но он настраивается.
type TimingConfig struct {
	WaitDivisor int `toml:"wait_divisor"`
}

type GameConfig struct {
	// Seed - мастер-зерно мира. 0 означает "случайное при старте".
	Seed        int64 `toml:"seed"`
	MapWidth    int   `toml:"map_width"`
	MapHeight   int   `toml:"map_height"`
	PlayerSpeed int   `toml:"player_speed"`
	NPCSpeed    int   `toml:"npc_speed"`
	NPCCount    int   `toml:"npc_count"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			BindAddress: ":8080",
			ReplayDir:   "replays",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Timing: TimingConfig{
			WaitDivisor: 2,
		},
		Game: GameConfig{
			Seed:        0,
			MapWidth:    30,
			MapHeight:   20,
			PlayerSpeed: 100,
			NPCSpeed:    120, // враги медленнее игрока
			NPCCount:    3,
		},
	}
}

// Default возвращает конфиг по умолчанию (для запуска без файла и для тестов)
func Default() *Config {
	return defaults()
}

// Load читает TOML-файл поверх дефолтов
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
