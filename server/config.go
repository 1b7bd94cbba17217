package server

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	show "github.com/magoslive/show-core/core"
)

// Config is the environment-driven server configuration.
type Config struct {
	Port        int    `env:"PORT" envDefault:"3000"`
	BaseURL     string `env:"BASE_URL" envDefault:"http://localhost:3000"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	AudioDir    string `env:"AUDIO_DIR"`

	GroqAPIKey string `env:"GROQ_API_KEY"`
	GroqModel  string `env:"GROQ_MODEL"`
	TTSVoice   string `env:"TTS_VOICE"`

	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	SweepInterval time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`

	// AssetTimeout bounds how long session creation waits for the
	// pre-synthesis pipeline before publishing with partial assets.
	AssetTimeout time.Duration `env:"ASSET_TIMEOUT" envDefault:"30s"`

	AnswerHold time.Duration `env:"ANSWER_HOLD" envDefault:"12s"`

	// QuestionWindowTimeout forces a turn onward when no question
	// arrives. Zero keeps the window open until the host intervenes.
	QuestionWindowTimeout time.Duration `env:"QUESTION_WINDOW_TIMEOUT" envDefault:"0"`

	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"10485760"`
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Timings derives the state machine's elapsed-time gates from the
// configuration.
func (c Config) Timings() show.Timings {
	timings := show.DefaultTimings()
	if c.AnswerHold > 0 {
		timings.AnswerHold = c.AnswerHold
	}
	timings.QuestionWindowTimeout = c.QuestionWindowTimeout
	return timings
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
