package config

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	once     sync.Once
	instance *Config
)

// ComponentConfig содержит базовые сетевые настройки для запуска сервиса
type ComponentConfig struct {
	Protocol string `yaml:"protocol"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Debug    bool   `yaml:"debug"`
}

// SourceConfig описывает апстрим с документом журналов (journals.json)
type SourceConfig struct {
	URL        string  `yaml:"url"`
	TimeoutSec int     `yaml:"timeout_sec"`
	RatePerSec float64 `yaml:"rate_per_sec"`
	Burst      int     `yaml:"burst"`
	Debug      bool    `yaml:"debug"`
}

// Timeout отдаёт таймаут как Duration (yaml.v3 не умеет строки вида "10s")
func (s SourceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSec) * time.Second
}

// RankingConfig внешний рейтинговый сайт, на который ведут плитки
type RankingConfig struct {
	SearchURL string `yaml:"search_url"`
	ThumbURL  string `yaml:"thumb_url"`
}

// CLIConfig настройки для CLI (не сервис)
type CLIConfig struct {
	Debug bool `yaml:"debug"`
}

// MetricsConfig настройки для экспортера метрик
type MetricsConfig struct {
	Port           int    `yaml:"port"`
	PushgatewayURL string `yaml:"pushgateway_url"`
}

// Config корень дерева конфигурации, строго соответствующий zhurnal.yaml
type Config struct {
	Source  SourceConfig    `yaml:"source"`
	Ranking RankingConfig   `yaml:"ranking"`
	Wall    ComponentConfig `yaml:"wall"`
	CLI     CLIConfig       `yaml:"cli"`
	Metrics MetricsConfig   `yaml:"metrics"`
}

// Get возвращает инициализированный объект конфигурации (Singleton)
func Get() *Config {
	once.Do(func() {
		path := os.Getenv("ZHURNAL_CONFIG")
		if path == "" {
			path = "zhurnal.yaml"
		}

		f, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("[CONFIG ERROR] Could not read %s: %v", path, err)
		}

		instance = &Config{}
		if err := yaml.Unmarshal(f, instance); err != nil {
			log.Fatalf("[CONFIG ERROR] Failed to parse YAML: %v", err)
		}
		instance.ApplyDefaults()
	})
	return instance
}

// ApplyDefaults заполняет незаданные поля безопасными значениями
func (c *Config) ApplyDefaults() {
	if c.Source.TimeoutSec == 0 {
		c.Source.TimeoutSec = 10
	}
	if c.Source.RatePerSec == 0 {
		c.Source.RatePerSec = 5
	}
	if c.Source.Burst == 0 {
		c.Source.Burst = 5
	}
	if c.Ranking.SearchURL == "" {
		c.Ranking.SearchURL = "https://www.scimagojr.com/journalsearch.php"
	}
	if c.Ranking.ThumbURL == "" {
		c.Ranking.ThumbURL = "https://www.scimagojr.com/journal_img.php"
	}
}

// Address возвращает строку host:port (удобно для net.Listen)
func (c ComponentConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// FullURL возвращает строку protocol://host:port (удобно для HTTP/URL)
func (c ComponentConfig) FullURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Protocol, c.Host, c.Port)
}
